package geotag

import (
	"errors"

	"github.com/tstromberg/geotag/pkg/tz"
)

// ErrStructural marks failures that abort a whole run: unusable location
// history, an unreadable input, a bad default offset.
var ErrStructural = errors.New("structural failure")

// Kind classifies an error.
type Kind int

const (
	KindNone Kind = iota
	KindStructural
	KindMalformedOffset
	KindNonExistentTime
	KindAmbiguousTime
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindMalformedOffset:
		return "malformed offset"
	case KindNonExistentTime:
		return "non-existent time"
	case KindAmbiguousTime:
		return "ambiguous time"
	default:
		return "structural"
	}
}

// Classify returns the Kind of err. Errors that are not one of the time or
// offset failures are structural.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, tz.ErrMalformedOffset):
		return KindMalformedOffset
	case errors.Is(err, tz.ErrNonExistentTime):
		return KindNonExistentTime
	case errors.Is(err, tz.ErrAmbiguousTime):
		return KindAmbiguousTime
	default:
		return KindStructural
	}
}
