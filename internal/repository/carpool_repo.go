package repository

import (
	"context"

	"trailhub/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CarpoolRepository struct {
	db *gorm.DB
}

func NewCarpoolRepository(db *gorm.DB) *CarpoolRepository {
	return &CarpoolRepository{db: db}
}

func (r *CarpoolRepository) DB() *gorm.DB {
	return r.db
}

func (r *CarpoolRepository) Upsert(ctx context.Context, c *domain.CarpoolRequest) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"event_id", "driver_name"}),
		}).
		Create(c).Error
}
