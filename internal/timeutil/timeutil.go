package timeutil

import "time"

// Now returns the current time in UTC. All persisted timestamps use UTC;
// display conversion happens in the clients.
func Now() time.Time {
	return time.Now().UTC()
}

// StartOfDay returns the start of day (00:00:00) in UTC for the given time.
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns the end of day (23:59:59.999999999) in UTC for the given time.
func EndOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 23, 59, 59, 999999999, time.UTC)
}

// Common layouts
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	DateTimeLayout = "2006-01-02 15:04:05"
)
