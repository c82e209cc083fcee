package dispatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCapacityCrossed(t *testing.T) {
	tests := []struct {
		name     string
		before   int
		after    int
		max      int
		expected bool
	}{
		{"crosses capacity", 4, 5, 5, true},
		{"already at capacity", 5, 5, 5, false},
		{"drops below capacity", 5, 4, 5, false},
		{"jumps past capacity", 3, 7, 5, true},
		{"zero max never fires", 4, 5, 0, false},
		{"negative max never fires", 4, 5, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CapacityCrossed(tt.before, tt.after, tt.max))
		})
	}
}

func TestPercentCrossed(t *testing.T) {
	// 10 slots, 80% threshold: 7 -> 8 crosses, 8 -> 9 does not.
	assert.True(t, PercentCrossed(7, 8, 10, 80))
	assert.False(t, PercentCrossed(8, 9, 10, 80))
	assert.False(t, PercentCrossed(8, 7, 10, 80))
	assert.False(t, PercentCrossed(7, 8, 0, 80))
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, DaysUntil(now.Add(2*time.Hour), now), "partial day rounds up")
	assert.Equal(t, 1, DaysUntil(now.Add(24*time.Hour), now))
	assert.Equal(t, 2, DaysUntil(now.Add(25*time.Hour), now))
	assert.Equal(t, 0, DaysUntil(now, now))
	assert.Equal(t, -1, DaysUntil(now.Add(-25*time.Hour), now))
}

func TestHoursUntil(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, HoursUntil(now.Add(10*time.Minute), now))
	assert.Equal(t, 24, HoursUntil(now.Add(24*time.Hour), now))
	assert.Equal(t, 0, HoursUntil(now, now))
}
