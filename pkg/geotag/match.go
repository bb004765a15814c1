package geotag

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/tstromberg/geotag/pkg/track"
	"github.com/tstromberg/geotag/pkg/tz"
)

const (
	// ExifDate is the EXIF DateTimeOriginal layout.
	ExifDate = "2006:01:02 15:04:05"
	// MaxDelta is the furthest (in seconds) a matched sample may be from the capture time.
	MaxDelta = 60 * 60

	gpsDateTime  = "2006:01:02 15:04:05Z"
	gpsDateStamp = "2006:01:02"
	gpsTimeStamp = "15:04:05"
)

// Reason explains why an asset was not patched.
type Reason string

// Skip reasons, in the order the matcher checks them.
const (
	NoDateTime  Reason = "could not find date/time metadata"
	HasGPS      Reason = "gps info already present"
	BadOffset   Reason = "invalid UTC offset"
	BadDateTime Reason = "invalid date/time"
	OutOfRange  Reason = "out of location history range"
	TooFar      Reason = "too far from the closest location sample"
)

// Skip records an asset that produced no patch.
type Skip struct {
	SourceFile string
	Reason     Reason
	Detail     string
}

// Report is the outcome of matching a set of assets.
type Report struct {
	Seen    int
	Patches []Patch
	Skips   []Skip
}

// Partial returns the number of GPS-only patches.
func (r *Report) Partial() int {
	n := 0
	for _, p := range r.Patches {
		if p.Partial() {
			n++
		}
	}
	return n
}

// OffsetResolver returns the UTC offset in minutes for a moment at a location.
type OffsetResolver interface {
	OffsetMinutes(m tz.Moment, lat, lng float64) (int, error)
}

// Matcher pairs asset capture times with location samples.
type Matcher struct {
	Resolver OffsetResolver
	Log      Logger
}

// NewMatcher returns a Matcher. Nil arguments use tz.NewResolver(nil) and Klog.
func NewMatcher(r OffsetResolver, log Logger) *Matcher {
	if r == nil {
		r = tz.NewResolver(nil)
	}
	if log == nil {
		log = Klog{}
	}
	return &Matcher{Resolver: r, Log: log}
}

// BuildPatches returns a patch for each asset that could be matched to t,
// in asset order.
func (m *Matcher) BuildPatches(assets []Asset, t track.Track, defaultOffset int, sidecar bool) ([]Patch, error) {
	r, err := m.Match(assets, t, defaultOffset, sidecar)
	if err != nil {
		return nil, err
	}
	return r.Patches, nil
}

// Match is BuildPatches, also reporting skipped assets.
//
// defaultOffset (minutes) is used to interpret capture times of assets
// without an OffsetTimeOriginal tag. With sidecar set, patches target the
// XMP sidecar of each asset.
func (m *Matcher) Match(assets []Asset, t track.Track, defaultOffset int, sidecar bool) (*Report, error) {
	if len(t) < 2 {
		return nil, fmt.Errorf("%w: location history has %d samples, need at least 2", ErrStructural, len(t))
	}
	m.Log.Infof("matching %d assets against %d location samples ...", len(assets), len(t))

	ts := t.Timestamps()
	first, last := t.Bounds()
	r := &Report{Seen: len(assets), Patches: []Patch{}}

	skip := func(a Asset, reason Reason, format string, args ...any) {
		detail := fmt.Sprintf(format, args...)
		m.Log.Warningf("skipping %q, %s: %s", a.SourceFile, reason, detail)
		r.Skips = append(r.Skips, Skip{SourceFile: a.SourceFile, Reason: reason, Detail: detail})
	}

	for _, a := range assets {
		if a.DateTimeOriginal == "" {
			skip(a, NoDateTime, "no DateTimeOriginal tag")
			continue
		}
		if a.HasGPS {
			skip(a, HasGPS, "GPSPosition tag present")
			continue
		}

		offset := defaultOffset
		if a.OffsetTimeOriginal != "" {
			o, err := tz.ParseOffset(a.OffsetTimeOriginal)
			if err != nil {
				skip(a, BadOffset, "%v", err)
				continue
			}
			offset = o
		}

		taken, err := time.ParseInLocation(ExifDate, a.DateTimeOriginal, time.FixedZone("", offset*60))
		if err != nil {
			skip(a, BadDateTime, "%v", err)
			continue
		}

		unix := taken.Unix()
		if unix < first || unix >= last {
			skip(a, OutOfRange, "%s not in [%s, %s)", taken.Format(time.RFC3339), t[0].Time().Format(time.RFC3339), t[len(t)-1].Time().Format(time.RFC3339))
			continue
		}

		s, delta := nearest(t, ts, unix)
		if delta > MaxDelta {
			skip(a, TooFar, "capture time %d is %ds from the closest sample", unix, delta)
			continue
		}

		r.Patches = append(r.Patches, m.patch(a, taken, s, sidecar))
	}

	m.Log.Infof("matched %d/%d assets (%d without local time)", len(r.Patches), len(assets), r.Partial())
	return r, nil
}

// nearest returns whichever neighbor of the insertion point of unix is
// closest in time, and its distance in seconds. Ties go to the earlier sample.
// unix must be within [ts[0], ts[len(ts)-1]).
func nearest(t track.Track, ts []int64, unix int64) (track.Sample, int64) {
	i := sort.Search(len(ts), func(k int) bool { return ts[k] >= unix })
	best := t[i]
	if i > 0 && abs(unix-ts[i-1]) <= abs(ts[i]-unix) {
		best = t[i-1]
	}
	return best, abs(best.Timestamp - unix)
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

func (m *Matcher) patch(a Asset, taken time.Time, s track.Sample, sidecar bool) Patch {
	p := Patch{SourceFile: a.SourceFile}
	if sidecar {
		p.SourceFile = SidecarPath(a.SourceFile)
	}

	// The offset used to read the capture time is the camera's clock setting;
	// the one written back is the legal time at the photo location.
	local, err := m.Resolver.OffsetMinutes(tz.Instant(taken), s.Latitude, s.Longitude)
	switch {
	case err == nil:
		p.DateTimeOriginal = taken.In(time.FixedZone("", local*60)).Format(ExifDate)
		p.OffsetTimeOriginal = tz.FormatOffset(local)
	case errors.Is(err, tz.ErrAmbiguousTime):
		m.Log.Warningf("skipping %q date/time/utc offset update, encountered an ambiguous time: %v", a.SourceFile, err)
	default:
		m.Log.Warningf("skipping %q date/time/utc offset update: %v", a.SourceFile, err)
	}

	gps := s.Time()
	p.GPSDateTime = gps.Format(gpsDateTime)
	p.GPSDateStamp = gps.Format(gpsDateStamp)
	p.GPSTimeStamp = gps.Format(gpsTimeStamp)
	p.Latitude = s.Latitude
	p.Longitude = s.Longitude
	return p
}
