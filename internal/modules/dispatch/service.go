package dispatch

import (
	"context"
	"errors"
	"log"
	"sort"

	"trailhub/internal/domain"

	"gorm.io/gorm"
)

// Service hosts the reactive trigger handlers. Each handler is a pure
// predicate over a before/after snapshot pair followed by a batched
// fan-out; handlers are commutative and never read each other's writes.
// Missing snapshot halves, missing organizer identities and empty
// recipient sets are steady-state conditions handled as silent no-ops;
// store write failures propagate so the host can retry the invocation.
type Service struct {
	events       EventRepository
	participants ParticipantRegistry
	sink         NotificationSink
}

func NewService(events EventRepository, participants ParticipantRegistry, sink NotificationSink) *Service {
	return &Service{
		events:       events,
		participants: participants,
		sink:         sink,
	}
}

// EventCreated notifies every registered participant about a new event.
// The fan-out is deliberately global, not scoped to the event's own
// participant map (new offerings are broadcast).
func (s *Service) EventCreated(ctx context.Context, after *domain.Event) error {
	if after == nil {
		return nil
	}

	ids, err := s.participants.ListIDs(ctx)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	batch := make([]*domain.Notification, 0, len(ids))
	for _, id := range ids {
		batch = append(batch, composeEventCreated(id, after))
	}

	if err := s.sink.AppendBatch(ctx, batch); err != nil {
		return err
	}

	log.Printf("dispatch event_created event=%s recipients=%d", after.ID, len(batch))
	return nil
}

// EventUpdated runs every update-driven rule against the snapshot pair.
func (s *Service) EventUpdated(ctx context.Context, before, after *domain.Event) error {
	if before == nil || after == nil {
		return nil
	}

	delta := NewDelta(before, after)

	rules := []func(context.Context, *Delta, *domain.Event, *domain.Event) error{
		s.notifyImportantChange,
		s.notifyCancellation,
		s.notifyJoined,
		s.notifyCapacityReached,
		s.notifyOrganizerJoined,
		s.notifyOrganizerCancelled,
		s.notifyOrganizerCapacity,
		s.notifyOrganizerAlmostFull,
		s.notifyOrganizerPayment,
	}
	for _, rule := range rules {
		if err := rule(ctx, delta, before, after); err != nil {
			return err
		}
	}
	return nil
}

// CarpoolCreated notifies the organizer of the referenced event. A
// dangling event reference aborts silently.
func (s *Service) CarpoolCreated(ctx context.Context, carpool *domain.CarpoolRequest) error {
	if carpool == nil || carpool.EventID == "" {
		return nil
	}

	event, err := s.events.GetByID(ctx, carpool.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if event.OrganizerID == "" {
		return nil
	}

	return s.sink.Append(ctx, composeCarpoolRequest(event, carpool.DisplayDriverName()))
}

func (s *Service) notifyImportantChange(ctx context.Context, delta *Delta, _, after *domain.Event) error {
	if !delta.AnyImportantFieldChanged() {
		return nil
	}
	return s.fanOutToParticipants(ctx, after, composeEventUpdated)
}

func (s *Service) notifyCancellation(ctx context.Context, _ *Delta, before, after *domain.Event) error {
	wasActive := before.Status == domain.EventApproved || before.Status == domain.EventActive
	if !wasActive || after.Status != domain.EventCancelled {
		return nil
	}
	return s.fanOutToParticipants(ctx, after, composeEventCancelled)
}

func (s *Service) notifyJoined(ctx context.Context, delta *Delta, _, after *domain.Event) error {
	added := delta.AddedParticipants()
	if len(added) == 0 {
		return nil
	}

	batch := make([]*domain.Notification, 0, len(added))
	for _, id := range added {
		batch = append(batch, composeEventJoined(id, after))
	}
	return s.sink.AppendBatch(ctx, batch)
}

func (s *Service) notifyCapacityReached(ctx context.Context, _ *Delta, before, after *domain.Event) error {
	if !CapacityCrossed(before.ParticipantCount(), after.ParticipantCount(), after.MaxParticipants) {
		return nil
	}
	return s.fanOutToParticipants(ctx, after, composeEventFull)
}

func (s *Service) notifyOrganizerJoined(ctx context.Context, delta *Delta, _, after *domain.Event) error {
	if after.OrganizerID == "" {
		return nil
	}

	var batch []*domain.Notification
	for _, id := range delta.AddedParticipants() {
		entry := after.Participants[id]
		if entry.Role == domain.RoleOrganizer {
			continue
		}
		batch = append(batch, composeNewParticipant(after, participantDisplayName(entry)))
	}
	if len(batch) == 0 {
		return nil
	}
	return s.sink.AppendBatch(ctx, batch)
}

func (s *Service) notifyOrganizerCancelled(ctx context.Context, delta *Delta, before, after *domain.Event) error {
	if after.OrganizerID == "" {
		return nil
	}

	var batch []*domain.Notification
	for _, id := range delta.RemovedParticipants() {
		entry := before.Participants[id]
		if entry.Role == domain.RoleOrganizer {
			continue
		}
		batch = append(batch, composeParticipantCancelled(after, participantDisplayName(entry)))
	}
	if len(batch) == 0 {
		return nil
	}
	return s.sink.AppendBatch(ctx, batch)
}

func (s *Service) notifyOrganizerCapacity(ctx context.Context, _ *Delta, before, after *domain.Event) error {
	if after.OrganizerID == "" {
		return nil
	}
	if !CapacityCrossed(before.ParticipantCount(), after.ParticipantCount(), after.MaxParticipants) {
		return nil
	}
	return s.sink.Append(ctx, composeOrganizerEventFull(after))
}

func (s *Service) notifyOrganizerAlmostFull(ctx context.Context, _ *Delta, before, after *domain.Event) error {
	if after.OrganizerID == "" {
		return nil
	}
	if !PercentCrossed(before.ParticipantCount(), after.ParticipantCount(), after.MaxParticipants, 80) {
		return nil
	}
	spotsLeft := after.MaxParticipants - after.ParticipantCount()
	return s.sink.Append(ctx, composeEventAlmostFull(after, spotsLeft))
}

func (s *Service) notifyOrganizerPayment(ctx context.Context, delta *Delta, _, after *domain.Event) error {
	if after.OrganizerID == "" {
		return nil
	}

	var batch []*domain.Notification
	for _, id := range delta.NewlyPaid() {
		entry := after.Participants[id]
		var amount float64
		if entry.Payment != nil {
			amount = entry.Payment.Amount
		}
		batch = append(batch, composePaymentReceived(after, participantDisplayName(entry), amount))
	}
	if len(batch) == 0 {
		return nil
	}
	return s.sink.AppendBatch(ctx, batch)
}

func (s *Service) fanOutToParticipants(ctx context.Context, e *domain.Event, composeFn func(string, *domain.Event) *domain.Notification) error {
	if e.ParticipantCount() == 0 {
		return nil
	}

	ids := make([]string, 0, len(e.Participants))
	for id := range e.Participants {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	batch := make([]*domain.Notification, 0, len(ids))
	for _, id := range ids {
		batch = append(batch, composeFn(id, e))
	}
	return s.sink.AppendBatch(ctx, batch)
}
