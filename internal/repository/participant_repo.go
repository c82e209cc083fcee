package repository

import (
	"context"

	"trailhub/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ParticipantRepository struct {
	db *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

func (r *ParticipantRepository) DB() *gorm.DB {
	return r.db
}

// ListIDs returns every registered participant identity. This is the
// fan-out set for the event-created broadcast.
func (r *ParticipantRepository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&domain.Participant{}).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *ParticipantRepository) Upsert(ctx context.Context, p *domain.Participant) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "email"}),
		}).
		Create(p).Error
}
