// Package tz resolves location and date dependent UTC offsets, and encodes
// offsets in the EXIF "±HH:MM" form.
package tz

import (
	"fmt"
	"sync"
	"time"
)

// ZoneFinder maps coordinates to an IANA timezone name such as "Europe/Paris".
type ZoneFinder interface {
	ZoneName(lat, lng float64) (string, error)
}

// Resolver computes UTC offsets for a moment at a location.
type Resolver struct {
	finder ZoneFinder

	mu   sync.Mutex
	locs map[string]*time.Location
}

// NewResolver returns a Resolver. A nil finder uses LatLong.
func NewResolver(f ZoneFinder) *Resolver {
	if f == nil {
		f = LatLong{}
	}
	return &Resolver{finder: f, locs: map[string]*time.Location{}}
}

// Location returns the timezone covering the given coordinates.
func (r *Resolver) Location(lat, lng float64) (*time.Location, error) {
	name, err := r.finder.ZoneName(lat, lng)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if loc, ok := r.locs[name]; ok {
		return loc, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", name, err)
	}
	r.locs[name] = loc
	return loc, nil
}

// OffsetMinutes returns the UTC offset in minutes in effect at m for the
// given coordinates.
//
// A zone-aware moment is first converted to the wall clock of the
// coordinates' timezone. A naive moment is taken to already be that wall
// clock. Wall clocks inside a DST gap return ErrNonExistentTime, wall clocks
// inside a DST overlap return ErrAmbiguousTime.
func (r *Resolver) OffsetMinutes(m Moment, lat, lng float64) (int, error) {
	loc, err := r.Location(lat, lng)
	if err != nil {
		return 0, err
	}

	wall := m.Time
	if m.ZoneKnown {
		wall = m.Time.In(loc)
	}

	secs, err := WallOffset(loc, wall)
	if err != nil {
		return 0, fmt.Errorf("%s in %s: %w", wall.Format("2006-01-02 15:04:05"), loc, err)
	}
	return floorDiv(secs, 60), nil
}

// WallOffset returns the offset in seconds of loc for the wall clock of t.
// The location of t is ignored.
func WallOffset(loc *time.Location, t time.Time) (int, error) {
	w := wallSeconds(t)

	// A wall clock w is valid for offset o when the instant w-o observes o.
	// Transitions are at least a day apart, so the offsets a day either side
	// cover every candidate.
	var valid []int
	for _, o := range candidateOffsets(loc, w) {
		if offsetAt(loc, w-int64(o)) == o {
			valid = append(valid, o)
		}
	}

	switch len(valid) {
	case 0:
		return 0, ErrNonExistentTime
	case 1:
		return valid[0], nil
	default:
		return 0, ErrAmbiguousTime
	}
}

func candidateOffsets(loc *time.Location, w int64) []int {
	var cs []int
	for _, d := range []int64{-86400, 0, 86400} {
		o := offsetAt(loc, w+d)
		dup := false
		for _, c := range cs {
			if c == o {
				dup = true
				break
			}
		}
		if !dup {
			cs = append(cs, o)
		}
	}
	return cs
}

func offsetAt(loc *time.Location, unix int64) int {
	_, o := time.Unix(unix, 0).In(loc).Zone()
	return o
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
