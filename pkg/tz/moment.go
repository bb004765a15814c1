package tz

import "time"

// Moment is a time that may or may not carry zone information.
// When ZoneKnown is false only the wall clock (Date and Clock) of Time is
// meaningful; its location is ignored.
type Moment struct {
	time.Time
	ZoneKnown bool
}

// Instant returns a zone-aware moment.
func Instant(t time.Time) Moment {
	return Moment{Time: t, ZoneKnown: true}
}

// WallClock returns a naive moment for the given local date and time.
func WallClock(year int, month time.Month, day, hour, min, sec int) Moment {
	return Moment{Time: time.Date(year, month, day, hour, min, sec, 0, time.UTC)}
}

// wallSeconds returns the wall clock of t as if it were UTC, in Unix seconds.
func wallSeconds(t time.Time) int64 {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	return time.Date(y, mo, d, h, mi, s, 0, time.UTC).Unix()
}
