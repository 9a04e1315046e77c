package models

import "time"

// DateOf truncates t to its calendar date, normalized to UTC midnight.
// Plan dates and per-day aggregation keys all go through this so map
// lookups and range queries compare equal.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
