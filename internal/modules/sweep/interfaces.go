package sweep

import (
	"context"
	"time"

	"trailhub/internal/domain"
)

// EventSource reads event records for the timer-driven jobs.
type EventSource interface {
	ListUpcoming(ctx context.Context, from, to time.Time, statuses []domain.EventStatus) ([]domain.Event, error)
	ListBatch(ctx context.Context, afterID string, limit int) ([]domain.Event, error)
}

// NotificationSink appends reminders to recipients' logs.
type NotificationSink interface {
	Append(ctx context.Context, n *domain.Notification) error
	AppendBatch(ctx context.Context, ns []*domain.Notification) error
}
