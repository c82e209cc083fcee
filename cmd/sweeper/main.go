package main

import (
	"context"
	"flag"
	"log"
	"time"

	"trailhub/internal/config"
	"trailhub/internal/database"
	"trailhub/internal/modules/sweep"
	"trailhub/internal/repository"
)

// One-shot timer sweeps, invoked from cron. Each run processes the
// current window and exits; countdown writes are deduplicated so an
// accidental double invocation is harmless.
func main() {
	job := flag.String("job", "all", "sweep to run: reminders|organizer|countdown|all")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	svc := sweep.NewService(
		repository.NewEventRepository(db),
		repository.NewNotificationRepository(db),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	now := time.Now().UTC()

	switch *job {
	case "reminders":
		runReminders(ctx, svc, now)
	case "organizer":
		runOrganizer(ctx, svc, now)
	case "countdown":
		runCountdown(ctx, svc, now)
	case "all":
		runReminders(ctx, svc, now)
		runOrganizer(ctx, svc, now)
		runCountdown(ctx, svc, now)
	default:
		log.Fatalf("unknown job %q", *job)
	}
}

func runReminders(ctx context.Context, svc *sweep.Service, now time.Time) {
	n, err := svc.RunEventReminders(ctx, now)
	if err != nil {
		log.Fatalf("event reminders failed: %v", err)
	}
	log.Printf("event reminders completed: written=%d", n)
}

func runOrganizer(ctx context.Context, svc *sweep.Service, now time.Time) {
	n, err := svc.RunOrganizerReminders(ctx, now)
	if err != nil {
		log.Fatalf("organizer reminders failed: %v", err)
	}
	log.Printf("organizer reminders completed: written=%d", n)
}

func runCountdown(ctx context.Context, svc *sweep.Service, now time.Time) {
	n, err := svc.RunDailyCountdown(ctx, now)
	if err != nil {
		log.Fatalf("daily countdown failed: %v", err)
	}
	log.Printf("daily countdown completed: written=%d", n)
}
