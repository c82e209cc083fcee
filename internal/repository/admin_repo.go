package repository

import (
	"context"

	"trailhub/internal/domain"

	"gorm.io/gorm"
)

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) DB() *gorm.DB {
	return r.db
}

// Exists reports whether the user is in the admin registry.
func (r *AdminRepository) Exists(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Admin{}).
		Where("id = ?", userID).
		Count(&count).Error
	return count > 0, err
}
