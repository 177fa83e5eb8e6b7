package utils

import (
	"time"
)

// NormalizeDate truncates a timestamp to midnight UTC. All booking date
// arithmetic works on normalized dates so timezone and intraday drift cannot
// shift night boundaries.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Nights returns the list of nights covered by a stay, end-exclusive: the
// night of end is not part of the stay. Returns nil when end <= start.
func Nights(start, end time.Time) []time.Time {
	start = NormalizeDate(start)
	end = NormalizeDate(end)

	if !end.After(start) {
		return nil
	}

	var nights []time.Time
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		nights = append(nights, d)
	}
	return nights
}

// DaysUntil returns the calendar-day distance between from and to, both
// normalized to midnight, so "tomorrow" is always 1 regardless of clock time.
func DaysUntil(from, to time.Time) int {
	from = NormalizeDate(from)
	to = NormalizeDate(to)
	return int(to.Sub(from) / (24 * time.Hour))
}
