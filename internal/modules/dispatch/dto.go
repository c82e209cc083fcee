package dispatch

import (
	"time"

	"trailhub/internal/domain"
)

type paymentDetailsDTO struct {
	Paid   bool    `json:"paid"`
	Amount float64 `json:"amount"`
}

type participantEntryDTO struct {
	Name           string             `json:"name"`
	Role           string             `json:"role"`
	PaymentDetails *paymentDetailsDTO `json:"paymentDetails"`
}

type eventDetailsDTO struct {
	MaxParticipants int `json:"maxParticipants"`
}

type pricingDTO struct {
	PaymentDeadline *time.Time `json:"paymentDeadline"`
}

// EventSnapshotDTO is one half of a change-feed payload. It accepts the
// legacy document shape, including the capacity field living either at
// the top level or nested under details; the nested value wins when
// both are present.
type EventSnapshotDTO struct {
	ID              string                         `json:"eventId"`
	Name            string                         `json:"name"`
	Location        string                         `json:"location"`
	Description     string                         `json:"description"`
	Date            time.Time                      `json:"date"`
	Status          string                         `json:"status"`
	OrganizerID     string                         `json:"organizerId"`
	MaxParticipants int                            `json:"maxParticipants"`
	Details         *eventDetailsDTO               `json:"details"`
	Pricing         *pricingDTO                    `json:"pricing"`
	Participants    map[string]participantEntryDTO `json:"participants"`
}

func (d *EventSnapshotDTO) toDomain(eventID string) *domain.Event {
	if d == nil {
		return nil
	}

	maxParticipants := d.MaxParticipants
	if d.Details != nil && d.Details.MaxParticipants > 0 {
		maxParticipants = d.Details.MaxParticipants
	}

	var deadline *time.Time
	if d.Pricing != nil {
		deadline = d.Pricing.PaymentDeadline
	}

	id := d.ID
	if id == "" {
		id = eventID
	}

	participants := make(map[string]domain.ParticipantEntry, len(d.Participants))
	for pid, entry := range d.Participants {
		var payment *domain.PaymentDetails
		if entry.PaymentDetails != nil {
			payment = &domain.PaymentDetails{
				Paid:   entry.PaymentDetails.Paid,
				Amount: entry.PaymentDetails.Amount,
			}
		}
		participants[pid] = domain.ParticipantEntry{
			Name:    entry.Name,
			Role:    domain.ParticipantRole(entry.Role),
			Payment: payment,
		}
	}

	return &domain.Event{
		ID:              id,
		Name:            d.Name,
		Location:        d.Location,
		Description:     d.Description,
		Date:            d.Date,
		Status:          domain.EventStatus(d.Status),
		OrganizerID:     d.OrganizerID,
		MaxParticipants: maxParticipants,
		PaymentDeadline: deadline,
		Participants:    participants,
	}
}

type EventChangeRequest struct {
	EventID string            `json:"eventId" binding:"required"`
	Before  *EventSnapshotDTO `json:"before"`
	After   *EventSnapshotDTO `json:"after"`
}

type CarpoolChangeRequest struct {
	CarpoolID  string `json:"carpoolId" binding:"required"`
	EventID    string `json:"eventId"`
	DriverName string `json:"driverName"`
}
