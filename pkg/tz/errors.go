package tz

import "errors"

var (
	// ErrMalformedOffset is returned for offset text not in "±HH:MM" form.
	ErrMalformedOffset = errors.New("malformed UTC offset")
	// ErrNonExistentTime is returned for a wall clock inside a forward DST gap.
	ErrNonExistentTime = errors.New("non-existent local time")
	// ErrAmbiguousTime is returned for a wall clock inside a backward DST overlap.
	ErrAmbiguousTime = errors.New("ambiguous local time")
	// ErrUnknownZone is returned when no timezone covers a coordinate.
	ErrUnknownZone = errors.New("unknown timezone")
)
