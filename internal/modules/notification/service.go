package notification

import (
	"context"

	"trailhub/internal/domain"
)

// Store is the persistence surface the read API needs.
type Store interface {
	ListByRecipient(ctx context.Context, recipientID string, kind domain.RecipientKind, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, recipientID string, kind domain.RecipientKind) (int64, error)
	MarkAsRead(ctx context.Context, id, recipientID string) error
	MarkAllAsRead(ctx context.Context, recipientID string, kind domain.RecipientKind) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) GetForRecipient(ctx context.Context, recipientID string, kind domain.RecipientKind, limit int) ([]domain.Notification, int64, error) {
	list, err := s.store.ListByRecipient(ctx, recipientID, kind, limit)
	if err != nil {
		return nil, 0, err
	}

	unread, err := s.store.CountUnread(ctx, recipientID, kind)
	if err != nil {
		return nil, 0, err
	}
	return list, unread, nil
}

func (s *Service) MarkAsRead(ctx context.Context, id, recipientID string) error {
	return s.store.MarkAsRead(ctx, id, recipientID)
}

func (s *Service) MarkAllAsRead(ctx context.Context, recipientID string, kind domain.RecipientKind) error {
	return s.store.MarkAllAsRead(ctx, recipientID, kind)
}
