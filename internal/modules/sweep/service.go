package sweep

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"sync/atomic"
	"time"

	"trailhub/internal/domain"
	"trailhub/internal/modules/dispatch"

	"golang.org/x/sync/errgroup"
)

const (
	// countdownBatchSize bounds each keyset page of the full-table scan.
	countdownBatchSize = 200
	// countdownWorkers bounds concurrent per-recipient writes.
	countdownWorkers = 8
)

// Service hosts the timer-driven jobs. Each Run* method performs one
// full sweep and returns the number of notifications written.
type Service struct {
	events EventSource
	sink   NotificationSink
}

func NewService(events EventSource, sink NotificationSink) *Service {
	return &Service{events: events, sink: sink}
}

// RunEventReminders notifies participants of approved or active events
// happening within the next seven days, with urgency tiers. All
// reminders of one sweep commit as a single batch.
func (s *Service) RunEventReminders(ctx context.Context, now time.Time) (int, error) {
	events, err := s.events.ListUpcoming(ctx, now, now.Add(7*24*time.Hour),
		[]domain.EventStatus{domain.EventApproved, domain.EventActive})
	if err != nil {
		return 0, err
	}

	var batch []*domain.Notification
	for i := range events {
		e := &events[i]
		if e.ParticipantCount() == 0 {
			continue
		}

		title, body, ok := reminderCopy(e, dispatch.DaysUntil(e.Date, now))
		if !ok {
			continue
		}

		ids := participantIDs(e)
		for _, id := range ids {
			batch = append(batch, &domain.Notification{
				RecipientID:   id,
				RecipientKind: domain.KindParticipant,
				Type:          domain.TypeEventReminder,
				Title:         title,
				Body:          body,
				EventID:       e.ID,
			})
		}
	}

	if err := s.sink.AppendBatch(ctx, batch); err != nil {
		return 0, err
	}

	log.Printf("sweep event_reminders events=%d notifications=%d", len(events), len(batch))
	return len(batch), nil
}

func reminderCopy(e *domain.Event, daysUntil int) (title, body string, ok bool) {
	switch {
	case daysUntil == 1:
		return "Event Tomorrow!",
			fmt.Sprintf("Your event %q is tomorrow! Don't forget to prepare and attend.", e.DisplayName()),
			true
	case daysUntil <= 3:
		return "Event Coming Soon",
			fmt.Sprintf("Your event %q is in %d days. Start getting ready!", e.DisplayName(), daysUntil),
			true
	case daysUntil <= 7:
		return "Event Reminder",
			fmt.Sprintf("Your event %q is in %d days. Mark your calendar!", e.DisplayName(), daysUntil),
			true
	default:
		return "", "", false
	}
}

// RunOrganizerReminders notifies each organizer whose event starts
// within the next 24 hours. Writes go one at a time, as each event is
// an independent reminder.
func (s *Service) RunOrganizerReminders(ctx context.Context, now time.Time) (int, error) {
	events, err := s.events.ListUpcoming(ctx, now, now.Add(24*time.Hour),
		[]domain.EventStatus{domain.EventApproved, domain.EventActive})
	if err != nil {
		return 0, err
	}

	written := 0
	for i := range events {
		e := &events[i]
		if e.OrganizerID == "" {
			continue
		}

		hours := dispatch.HoursUntil(e.Date, now)
		if hours <= 0 || hours > 24 {
			continue
		}

		n := &domain.Notification{
			RecipientID:   e.OrganizerID,
			RecipientKind: domain.KindOrganizer,
			Type:          domain.TypeEventStartingSoon,
			Title:         "Event Starting Soon",
			Body:          fmt.Sprintf("Your event %q starts in %d hours. Make sure everything is ready!", e.DisplayName(), hours),
			EventID:       e.ID,
		}
		if err := s.sink.Append(ctx, n); err != nil {
			return written, err
		}
		written++
	}

	log.Printf("sweep organizer_reminders events=%d notifications=%d", len(events), written)
	return written, nil
}

// RunDailyCountdown walks the whole record set in keyset batches and
// emits payment and event countdowns per participant. Every write
// carries a day-bucket dedupe key, so a repeated run within the same
// day is a no-op; writes are independent and partial completion is
// acceptable.
func (s *Service) RunDailyCountdown(ctx context.Context, now time.Time) (int, error) {
	var written atomic.Int64
	afterID := ""

	for {
		events, err := s.events.ListBatch(ctx, afterID, countdownBatchSize)
		if err != nil {
			return int(written.Load()), err
		}
		if len(events) == 0 {
			break
		}
		afterID = events[len(events)-1].ID

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(countdownWorkers)

		for i := range events {
			e := &events[i]
			for _, id := range participantIDs(e) {
				id := id
				entry := e.Participants[id]
				g.Go(func() error {
					n, err := s.countdownWrites(gctx, e, id, entry, now)
					if err != nil {
						log.Printf("sweep countdown write failed event=%s recipient=%s err=%v", e.ID, id, err)
						return err
					}
					written.Add(int64(n))
					return nil
				})
			}
		}

		if err := g.Wait(); err != nil {
			return int(written.Load()), err
		}

		if len(events) < countdownBatchSize {
			break
		}
	}

	log.Printf("sweep daily_countdown notifications=%d", written.Load())
	return int(written.Load()), nil
}

func (s *Service) countdownWrites(ctx context.Context, e *domain.Event, participantID string, entry domain.ParticipantEntry, now time.Time) (int, error) {
	written := 0

	if e.PaymentDeadline != nil && !entry.Paid() {
		daysLeft := dispatch.DaysUntil(*e.PaymentDeadline, now)
		if daysLeft >= 0 {
			n := countdownNotification(e, participantID, domain.TypePaymentReminder,
				"Payment Reminder",
				fmt.Sprintf("Your payment for %q is due in %d day(s).", e.DisplayName(), daysLeft),
				now, map[string]any{"daysLeft": daysLeft})
			if err := s.sink.Append(ctx, n); err != nil {
				return written, err
			}
			written++
		}
	}

	if !e.Date.IsZero() {
		daysToEvent := dispatch.DaysUntil(e.Date, now)
		if daysToEvent > 0 {
			n := countdownNotification(e, participantID, domain.TypeEventCountdown,
				"Event Countdown",
				fmt.Sprintf("%q starts in %d day(s).", e.DisplayName(), daysToEvent),
				now, map[string]any{"daysToEvent": daysToEvent})
			if err := s.sink.Append(ctx, n); err != nil {
				return written, err
			}
			written++
		}
	}

	return written, nil
}

func countdownNotification(e *domain.Event, participantID, typ, title, body string, now time.Time, data map[string]any) *domain.Notification {
	var raw []byte
	if data != nil {
		raw, _ = json.Marshal(data)
	}

	key := fmt.Sprintf("%s:%s:%s:%s", typ, e.ID, participantID, now.UTC().Format("2006-01-02"))
	return &domain.Notification{
		RecipientID:   participantID,
		RecipientKind: domain.KindParticipant,
		Type:          typ,
		Title:         title,
		Body:          body,
		EventID:       e.ID,
		Data:          raw,
		DedupeKey:     &key,
	}
}

func participantIDs(e *domain.Event) []string {
	ids := make([]string, 0, len(e.Participants))
	for id := range e.Participants {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
