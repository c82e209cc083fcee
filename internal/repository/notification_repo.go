package repository

import (
	"context"
	"time"

	"trailhub/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) DB() *gorm.DB {
	return r.db
}

func prepare(n *domain.Notification) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
}

// Append writes one notification. When a dedupe key is set, a conflict
// on it is silently ignored so retried sweeps do not duplicate.
func (r *NotificationRepository) Append(ctx context.Context, n *domain.Notification) error {
	prepare(n)

	tx := r.db.WithContext(ctx)
	if n.DedupeKey != nil {
		tx = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "dedupe_key"}},
			DoNothing: true,
		})
	}
	return tx.Create(n).Error
}

// AppendBatch writes all notifications of one handler invocation in a
// single transaction: all commit or none do.
func (r *NotificationRepository) AppendBatch(ctx context.Context, ns []*domain.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	for _, n := range ns {
		prepare(n)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, n := range ns {
			if err := tx.Create(n).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID string, kind domain.RecipientKind, limit int) ([]domain.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var out []domain.Notification
	err := r.db.WithContext(ctx).
		Where("recipient_id = ? AND recipient_kind = ?", recipientID, kind).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID string, kind domain.RecipientKind) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("recipient_id = ? AND recipient_kind = ? AND read = ?", recipientID, kind, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, id, recipientID string) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, recipientID string, kind domain.RecipientKind) error {
	return r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("recipient_id = ? AND recipient_kind = ? AND read = ?", recipientID, kind, false).
		Update("read", true).Error
}
