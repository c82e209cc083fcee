package repository

import (
	"context"
	"encoding/json"
	"time"

	"trailhub/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) DB() *gorm.DB {
	return r.db
}

type eventModel struct {
	ID              string     `gorm:"column:id;primaryKey"`
	Name            string     `gorm:"column:name"`
	Location        string     `gorm:"column:location"`
	Description     string     `gorm:"column:description"`
	Date            time.Time  `gorm:"column:date;index"`
	Status          string     `gorm:"column:status;index"`
	OrganizerID     string     `gorm:"column:organizer_id;index"`
	MaxParticipants int        `gorm:"column:max_participants"`
	PaymentDeadline *time.Time `gorm:"column:payment_deadline"`
	Participants    []byte     `gorm:"column:participants"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (eventModel) TableName() string { return "events" }

func toDomainEvent(m eventModel) (*domain.Event, error) {
	participants := map[string]domain.ParticipantEntry{}
	if len(m.Participants) > 0 {
		if err := json.Unmarshal(m.Participants, &participants); err != nil {
			return nil, err
		}
	}

	return &domain.Event{
		ID:              m.ID,
		Name:            m.Name,
		Location:        m.Location,
		Description:     m.Description,
		Date:            m.Date,
		Status:          domain.EventStatus(m.Status),
		OrganizerID:     m.OrganizerID,
		MaxParticipants: m.MaxParticipants,
		PaymentDeadline: m.PaymentDeadline,
		Participants:    participants,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}, nil
}

func toEventModel(e *domain.Event) (eventModel, error) {
	var raw []byte
	if len(e.Participants) > 0 {
		b, err := json.Marshal(e.Participants)
		if err != nil {
			return eventModel{}, err
		}
		raw = b
	}

	return eventModel{
		ID:              e.ID,
		Name:            e.Name,
		Location:        e.Location,
		Description:     e.Description,
		Date:            e.Date,
		Status:          string(e.Status),
		OrganizerID:     e.OrganizerID,
		MaxParticipants: e.MaxParticipants,
		PaymentDeadline: e.PaymentDeadline,
		Participants:    raw,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	var m eventModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return toDomainEvent(m)
}

// Upsert stores the latest snapshot of an event. The change feed calls
// this with the "after" half so sweeps always see current state.
func (r *EventRepository) Upsert(ctx context.Context, e *domain.Event) error {
	m, err := toEventModel(e)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "location", "description", "date", "status",
				"organizer_id", "max_participants", "payment_deadline",
				"participants", "updated_at",
			}),
		}).
		Create(&m).Error
}

// ListUpcoming returns events with a date inside (from, to] filtered by
// status, ordered by date.
func (r *EventRepository) ListUpcoming(ctx context.Context, from, to time.Time, statuses []domain.EventStatus) ([]domain.Event, error) {
	raw := make([]string, 0, len(statuses))
	for _, s := range statuses {
		raw = append(raw, string(s))
	}

	var models []eventModel
	if err := r.db.WithContext(ctx).
		Where("date > ? AND date <= ?", from, to).
		Where("status IN ?", raw).
		Order("date ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	return toDomainEvents(models)
}

// ListBatch pages through all events in id order; pass the last id of
// the previous batch to continue.
func (r *EventRepository) ListBatch(ctx context.Context, afterID string, limit int) ([]domain.Event, error) {
	if limit <= 0 {
		limit = 200
	}

	var models []eventModel
	if err := r.db.WithContext(ctx).
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, err
	}

	return toDomainEvents(models)
}

func toDomainEvents(models []eventModel) ([]domain.Event, error) {
	out := make([]domain.Event, 0, len(models))
	for _, m := range models {
		e, err := toDomainEvent(m)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, nil
}

// Migrate brings the schema up to date for every persisted entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&eventModel{},
		&domain.Participant{},
		&domain.Admin{},
		&domain.CarpoolRequest{},
		&domain.Notification{},
	)
}
