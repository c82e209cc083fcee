package dispatch

import (
	"context"

	"trailhub/internal/domain"
)

// EventRepository resolves event records referenced by other documents.
type EventRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Event, error)
}

// ParticipantRegistry supplies the global participant identity set.
type ParticipantRegistry interface {
	ListIDs(ctx context.Context) ([]string, error)
}

// NotificationSink appends notifications to recipients' logs.
// AppendBatch commits all entries of one handler invocation atomically.
type NotificationSink interface {
	Append(ctx context.Context, n *domain.Notification) error
	AppendBatch(ctx context.Context, ns []*domain.Notification) error
}
