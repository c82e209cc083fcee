package dispatch

import (
	"bytes"
	"encoding/json"
	"sort"

	"trailhub/internal/domain"
)

// Delta is a field-level view over a before/after snapshot pair.
type Delta struct {
	before *domain.Event
	after  *domain.Event
}

func NewDelta(before, after *domain.Event) *Delta {
	return &Delta{before: before, after: after}
}

// Important fields watched by the generic "event updated" rule.
var importantFields = []string{"name", "date", "location", "description", "maxParticipants"}

// AnyImportantFieldChanged reports whether at least one of the watched
// fields differs by deep value comparison.
func (d *Delta) AnyImportantFieldChanged() bool {
	if d.before == nil || d.after == nil {
		return false
	}
	for _, field := range importantFields {
		if !deepEqual(fieldValue(d.before, field), fieldValue(d.after, field)) {
			return true
		}
	}
	return false
}

// AddedParticipants returns identities present after but not before,
// sorted for deterministic fan-out order.
func (d *Delta) AddedParticipants() []string {
	if d.before == nil || d.after == nil {
		return nil
	}
	var added []string
	for id := range d.after.Participants {
		if _, ok := d.before.Participants[id]; !ok {
			added = append(added, id)
		}
	}
	sort.Strings(added)
	return added
}

// RemovedParticipants returns identities present before but not after.
func (d *Delta) RemovedParticipants() []string {
	if d.before == nil || d.after == nil {
		return nil
	}
	var removed []string
	for id := range d.before.Participants {
		if _, ok := d.after.Participants[id]; !ok {
			removed = append(removed, id)
		}
	}
	sort.Strings(removed)
	return removed
}

// NewlyPaid returns identities whose payment flipped from unpaid to
// paid between the snapshots, excluding organizer entries. Entries
// missing on either side never qualify.
func (d *Delta) NewlyPaid() []string {
	if d.before == nil || d.after == nil {
		return nil
	}
	var paid []string
	for id, after := range d.after.Participants {
		before, ok := d.before.Participants[id]
		if !ok {
			continue
		}
		if before.Paid() || !after.Paid() {
			continue
		}
		if after.Role == domain.RoleOrganizer {
			continue
		}
		paid = append(paid, id)
	}
	sort.Strings(paid)
	return paid
}

func fieldValue(e *domain.Event, field string) any {
	switch field {
	case "name":
		return e.Name
	case "date":
		return e.Date
	case "location":
		return e.Location
	case "description":
		return e.Description
	case "maxParticipants":
		return e.MaxParticipants
	default:
		return nil
	}
}

// deepEqual compares two values by content through their canonical JSON
// form, so nested structures are compared by value, not reference.
func deepEqual(a, b any) bool {
	ab, errA := json.Marshal(a)
	bb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(ab, bb)
}
