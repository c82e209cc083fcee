package dispatch

import (
	"encoding/json"
	"fmt"

	"trailhub/internal/domain"
)

func compose(recipientID string, kind domain.RecipientKind, typ, title, body, eventID string, data map[string]any) *domain.Notification {
	var raw []byte
	if data != nil {
		raw, _ = json.Marshal(data)
	}
	return &domain.Notification{
		RecipientID:   recipientID,
		RecipientKind: kind,
		Type:          typ,
		Title:         title,
		Body:          body,
		EventID:       eventID,
		Data:          raw,
	}
}

func composeEventCreated(participantID string, e *domain.Event) *domain.Notification {
	return compose(participantID, domain.KindParticipant, domain.TypeEventCreated,
		"New Event Available",
		fmt.Sprintf("A new event %q has been created!", e.DisplayName()),
		e.ID, nil)
}

func composeEventUpdated(participantID string, e *domain.Event) *domain.Notification {
	return compose(participantID, domain.KindParticipant, domain.TypeEventUpdated,
		"Event Updated",
		fmt.Sprintf("The event %q has been updated. Check the new details!", e.DisplayName()),
		e.ID, nil)
}

func composeEventCancelled(participantID string, e *domain.Event) *domain.Notification {
	return compose(participantID, domain.KindParticipant, domain.TypeEventCancelled,
		"Event Cancelled",
		fmt.Sprintf("The event %q has been cancelled. We apologize for any inconvenience.", e.DisplayName()),
		e.ID, nil)
}

func composeEventJoined(participantID string, e *domain.Event) *domain.Notification {
	return compose(participantID, domain.KindParticipant, domain.TypeEventJoined,
		"Welcome to Event!",
		fmt.Sprintf("You have successfully joined %q. Get ready for an amazing adventure!", e.DisplayName()),
		e.ID, nil)
}

func composeEventFull(participantID string, e *domain.Event) *domain.Notification {
	return compose(participantID, domain.KindParticipant, domain.TypeEventFull,
		"Event is Full!",
		fmt.Sprintf("The event %q has reached maximum capacity. You're lucky to have secured your spot!", e.DisplayName()),
		e.ID, nil)
}

func composeNewParticipant(e *domain.Event, participantName string) *domain.Notification {
	return compose(e.OrganizerID, domain.KindOrganizer, domain.TypeNewParticipant,
		"New Participant",
		fmt.Sprintf("%s has registered for %q.", participantName, e.DisplayName()),
		e.ID, map[string]any{"participantName": participantName})
}

func composeParticipantCancelled(e *domain.Event, participantName string) *domain.Notification {
	return compose(e.OrganizerID, domain.KindOrganizer, domain.TypeParticipantCancelled,
		"Participant Cancelled",
		fmt.Sprintf("%s has cancelled their registration for %q.", participantName, e.DisplayName()),
		e.ID, map[string]any{"participantName": participantName})
}

func composeOrganizerEventFull(e *domain.Event) *domain.Notification {
	return compose(e.OrganizerID, domain.KindOrganizer, domain.TypeOrganizerEventFull,
		"Event Full!",
		fmt.Sprintf("Your event %q has reached maximum capacity.", e.DisplayName()),
		e.ID, nil)
}

func composeEventAlmostFull(e *domain.Event, spotsLeft int) *domain.Notification {
	return compose(e.OrganizerID, domain.KindOrganizer, domain.TypeEventAlmostFull,
		"Event Almost Full",
		fmt.Sprintf("Your event %q has only %d spots remaining.", e.DisplayName(), spotsLeft),
		e.ID, map[string]any{"spotsLeft": spotsLeft})
}

func composePaymentReceived(e *domain.Event, participantName string, amount float64) *domain.Notification {
	return compose(e.OrganizerID, domain.KindOrganizer, domain.TypePaymentReceived,
		"Payment Received",
		fmt.Sprintf("%s has paid RM%.2f for %q.", participantName, amount, e.DisplayName()),
		e.ID, map[string]any{"participantName": participantName, "amount": amount})
}

func composeCarpoolRequest(e *domain.Event, driverName string) *domain.Notification {
	return compose(e.OrganizerID, domain.KindOrganizer, domain.TypeCarpoolRequest,
		"Carpool Request",
		fmt.Sprintf("%s has applied to be a driver for %q.", driverName, e.DisplayName()),
		e.ID, map[string]any{"driverName": driverName})
}

func participantDisplayName(entry domain.ParticipantEntry) string {
	if entry.Name == "" {
		return "A participant"
	}
	return entry.Name
}
