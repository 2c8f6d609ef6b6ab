// Package schedule holds the pure watering-schedule rules: computing the
// next due date from a watering event and classifying plants by urgency.
package schedule

import "time"

// Status classifies a plant's watering urgency for the dashboard.
type Status string

const (
	StatusOverdue Status = "OVERDUE"
	StatusDueSoon Status = "DUE_SOON"
	StatusOK      Status = "OK"
)

// A plant counts as due soon up to this many days before its due date.
const dueSoonWindowDays = 2

// Date truncates t to a civil date at UTC midnight. All schedule math
// operates on civil dates, not instants.
func Date(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// NextWaterAt computes the next due date from the last watering date and
// the plant's interval. A plant that has never been watered has no schedule.
func NextWaterAt(lastWateredAt *time.Time, intervalDays int) *time.Time {
	if lastWateredAt == nil {
		return nil
	}
	next := Date(*lastWateredAt).AddDate(0, 0, intervalDays)
	return &next
}

// DaysUntil returns the signed number of calendar days from today until
// target. Negative means target already passed.
func DaysUntil(target, today time.Time) int {
	return int(Date(target).Sub(Date(today)).Hours() / 24)
}

// Classify buckets a scheduled plant by urgency. Callers must skip plants
// with no next due date; they are never classified.
func Classify(nextWaterAt, today time.Time) (Status, int) {
	dueInDays := DaysUntil(nextWaterAt, today)
	switch {
	case dueInDays < 0:
		return StatusOverdue, dueInDays
	case dueInDays <= dueSoonWindowDays:
		return StatusDueSoon, dueInDays
	default:
		return StatusOK, dueInDays
	}
}

// NeedsWater reports whether the plant's due date has arrived. This is a
// coarser rule than Classify: it also counts the day the plant becomes due,
// so it is not equivalent to status == OVERDUE. Keep the two separate.
func NeedsWater(nextWaterAt *time.Time, today time.Time) bool {
	if nextWaterAt == nil {
		return false
	}
	return !Date(*nextWaterAt).After(Date(today))
}
