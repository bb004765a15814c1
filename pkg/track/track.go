// Package track holds location history samples and the tools to load and clean them.
package track

import (
	"sort"
	"time"
)

// Sample is a single location fix.
type Sample struct {
	// Timestamp is in seconds since the Unix epoch.
	Timestamp int64
	Latitude  float64
	Longitude float64
}

// Time returns the sample timestamp in UTC.
func (s Sample) Time() time.Time {
	return time.Unix(s.Timestamp, 0).UTC()
}

// Track is a sequence of samples sorted by timestamp.
type Track []Sample

// Sort orders samples by timestamp, keeping the input order of equal timestamps.
func Sort(t Track) {
	sort.SliceStable(t, func(i, j int) bool {
		return t[i].Timestamp < t[j].Timestamp
	})
}

// Timestamps returns the sample timestamps in track order.
func (t Track) Timestamps() []int64 {
	ts := make([]int64, len(t))
	for i, s := range t {
		ts[i] = s.Timestamp
	}
	return ts
}

// Bounds returns the first and last timestamps. It panics on an empty track.
func (t Track) Bounds() (first, last int64) {
	return t[0].Timestamp, t[len(t)-1].Timestamp
}
