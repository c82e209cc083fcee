package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"trailhub/internal/database"
	"trailhub/internal/domain"
	"trailhub/internal/repository"
)

func main() {
	db, err := database.Connect("trailhub.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM carpool_requests")
	db.Exec("DELETE FROM events")
	db.Exec("DELETE FROM admins")
	db.Exec("DELETE FROM participants")

	ctx := context.Background()
	participants := repository.NewParticipantRepository(db)
	events := repository.NewEventRepository(db)

	// ================== PARTICIPANTS ==================
	log.Println("Creating participants...")
	names := []string{"Aina", "Daniel", "Mei Ling", "Hafiz", "Sarah"}
	ids := make([]string, 0, len(names))
	for i, name := range names {
		id := fmt.Sprintf("user-%03d", i+1)
		p := &domain.Participant{
			ID:    id,
			Name:  name,
			Email: fmt.Sprintf("%s@example.com", id),
		}
		if err := participants.Upsert(ctx, p); err != nil {
			log.Fatal("participant seed failed:", err)
		}
		ids = append(ids, id)
	}

	// Admin account gating the mail actions
	if err := db.Create(&domain.Admin{ID: "admin-001", Name: "Platform Admin"}).Error; err != nil {
		log.Fatal("admin seed failed:", err)
	}
	log.Println("Admin created: admin-001")

	// ================== EVENTS ==================
	log.Println("Creating events...")
	now := time.Now().UTC()
	deadline := now.AddDate(0, 0, 2)

	sunrise := &domain.Event{
		ID:              "event-001",
		Name:            "Sunrise Hike at Broga Hill",
		Location:        "Broga, Selangor",
		Description:     "Easy trail, bring water and a headlamp.",
		Date:            now.AddDate(0, 0, 5),
		Status:          domain.EventApproved,
		OrganizerID:     "org-001",
		MaxParticipants: 10,
		PaymentDeadline: &deadline,
		Participants: map[string]domain.ParticipantEntry{
			ids[0]: {Name: names[0], Role: domain.RoleParticipant, Payment: &domain.PaymentDetails{Paid: true, Amount: 25}},
			ids[1]: {Name: names[1], Role: domain.RoleParticipant},
			"org-001": {Name: "Trail Leader", Role: domain.RoleOrganizer},
		},
	}
	if err := events.Upsert(ctx, sunrise); err != nil {
		log.Fatal("event seed failed:", err)
	}

	tomorrow := &domain.Event{
		ID:              "event-002",
		Name:            "Night Walk at FRIM",
		Location:        "Kepong, Kuala Lumpur",
		Description:     "Guided canopy walk.",
		Date:            now.AddDate(0, 0, 1),
		Status:          domain.EventActive,
		OrganizerID:     "org-001",
		MaxParticipants: 6,
		Participants: map[string]domain.ParticipantEntry{
			ids[2]: {Name: names[2], Role: domain.RoleParticipant},
			ids[3]: {Name: names[3], Role: domain.RoleParticipant},
		},
	}
	if err := events.Upsert(ctx, tomorrow); err != nil {
		log.Fatal("event seed failed:", err)
	}

	log.Println("Seed completed!")
	log.Printf("Participants: %v", ids)
	log.Println("Events: event-001 (in 5 days), event-002 (tomorrow)")
}
