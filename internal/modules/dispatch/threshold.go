package dispatch

import (
	"math"
	"time"
)

// Crossed reports a one-directional threshold crossing: the before
// value does not satisfy the threshold and the after value does.
// Dropping back below never fires.
func Crossed(before, after, threshold float64) bool {
	return before < threshold && after >= threshold
}

// CapacityCrossed reports whether the participant count reached the
// maximum between the snapshots. A zero or absent maximum never fires.
func CapacityCrossed(beforeCount, afterCount, max int) bool {
	if max <= 0 {
		return false
	}
	return beforeCount < max && afterCount >= max
}

// PercentCrossed reports whether the fill percentage crossed pct
// upward. A zero or absent maximum never fires.
func PercentCrossed(beforeCount, afterCount, max int, pct float64) bool {
	if max <= 0 {
		return false
	}
	beforePct := 100 * float64(beforeCount) / float64(max)
	afterPct := 100 * float64(afterCount) / float64(max)
	return Crossed(beforePct, afterPct, pct)
}

// DaysUntil counts whole days remaining with ceiling rounding, so 0.1
// days remaining reports as 1.
func DaysUntil(target, now time.Time) int {
	return int(math.Ceil(target.Sub(now).Hours() / 24))
}

// HoursUntil counts whole hours remaining with ceiling rounding.
func HoursUntil(target, now time.Time) int {
	return int(math.Ceil(target.Sub(now).Minutes() / 60))
}
