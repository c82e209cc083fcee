package domain

import "time"

type EventStatus string

const (
	EventDraft     EventStatus = "draft"
	EventPending   EventStatus = "pending"
	EventApproved  EventStatus = "approved"
	EventActive    EventStatus = "active"
	EventCancelled EventStatus = "cancelled"
	EventCompleted EventStatus = "completed"
)

type ParticipantRole string

const (
	RoleParticipant ParticipantRole = "participant"
	RoleOrganizer   ParticipantRole = "organizer"
)

type PaymentDetails struct {
	Paid   bool    `json:"paid"`
	Amount float64 `json:"amount"`
}

type ParticipantEntry struct {
	Name    string          `json:"name"`
	Role    ParticipantRole `json:"role"`
	Payment *PaymentDetails `json:"paymentDetails,omitempty"`
}

// Paid reports whether the entry has a settled payment.
func (p ParticipantEntry) Paid() bool {
	return p.Payment != nil && p.Payment.Paid
}

// Event is the record participants join and organizers manage.
// MaxParticipants is the single normalized capacity field; the ingest
// layer folds the legacy nested spelling into it.
type Event struct {
	ID              string
	Name            string
	Location        string
	Description     string
	Date            time.Time
	Status          EventStatus
	OrganizerID     string
	MaxParticipants int
	PaymentDeadline *time.Time
	Participants    map[string]ParticipantEntry
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DisplayName returns the event name with the fallback used in
// user-facing copy.
func (e *Event) DisplayName() string {
	if e == nil || e.Name == "" {
		return "Event"
	}
	return e.Name
}

func (e *Event) ParticipantCount() int {
	if e == nil {
		return 0
	}
	return len(e.Participants)
}
