package domain

import "time"

// Notification type constants, one per dispatch rule.
const (
	TypeEventCreated         = "event.created"
	TypeEventUpdated         = "event.updated"
	TypeEventCancelled       = "event.cancelled"
	TypeEventJoined          = "event.joined"
	TypeEventFull            = "event.full"
	TypeNewParticipant       = "organizer.new_participant"
	TypeParticipantCancelled = "organizer.participant_cancelled"
	TypeOrganizerEventFull   = "organizer.event_full"
	TypeEventAlmostFull      = "organizer.event_almost_full"
	TypePaymentReceived      = "organizer.payment_received"
	TypeEventStartingSoon    = "organizer.event_starting_soon"
	TypeCarpoolRequest       = "organizer.carpool_request"
	TypeEventReminder        = "reminder.event"
	TypePaymentReminder      = "reminder.payment"
	TypeEventCountdown       = "reminder.countdown"
)

type RecipientKind string

const (
	KindParticipant RecipientKind = "participant"
	KindOrganizer   RecipientKind = "organizer"
)

// Notification is one entry in a recipient's notification log. Created
// once, immutable afterwards except for the read flag. DedupeKey is set
// only by the countdown sweep; a unique index on it turns re-delivery
// within the same day bucket into a no-op insert.
type Notification struct {
	ID            string        `gorm:"column:id;primaryKey" json:"id"`
	RecipientID   string        `gorm:"column:recipient_id;index" json:"recipient_id"`
	RecipientKind RecipientKind `gorm:"column:recipient_kind;index" json:"recipient_kind"`
	Type          string        `gorm:"column:type;index" json:"type"`
	Title         string        `gorm:"column:title" json:"title"`
	Body          string        `gorm:"column:body" json:"body"`
	EventID       string        `gorm:"column:event_id" json:"event_id,omitempty"`
	Data          []byte        `gorm:"column:data" json:"data,omitempty"`
	Read          bool          `gorm:"column:read" json:"read"`
	DedupeKey     *string       `gorm:"column:dedupe_key;uniqueIndex" json:"-"`
	CreatedAt     time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
