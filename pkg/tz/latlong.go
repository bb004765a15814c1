package tz

import (
	"fmt"

	"github.com/bradfitz/latlong"
)

// LatLong finds zones using the tables embedded in github.com/bradfitz/latlong.
type LatLong struct{}

// ZoneName implements ZoneFinder.
func (LatLong) ZoneName(lat, lng float64) (string, error) {
	name := latlong.LookupZoneName(lat, lng)
	if name == "" {
		return "", fmt.Errorf("%w at %.6f,%.6f", ErrUnknownZone, lat, lng)
	}
	return name, nil
}

// Fixed always returns the same zone name.
type Fixed string

// ZoneName implements ZoneFinder.
func (f Fixed) ZoneName(_, _ float64) (string, error) {
	return string(f), nil
}
