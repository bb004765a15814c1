package track

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type recorder struct {
	infos    []string
	warnings []string
}

func (r *recorder) Infof(format string, args ...any) {
	r.infos = append(r.infos, fmt.Sprintf(format, args...))
}

func (r *recorder) Warningf(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func TestDistance(t *testing.T) {
	paris := Sample{Latitude: 48.8566, Longitude: 2.3522}
	london := Sample{Latitude: 51.5074, Longitude: -0.1278}

	got := Distance(paris, london) / 1000
	if math.Abs(got-343.5) > 1.0 {
		t.Errorf("Distance(paris, london) = %.2f km, want ~343.5 km", got)
	}
	if d := Distance(paris, paris); d != 0 {
		t.Errorf("Distance(paris, paris) = %f, want 0", d)
	}
}

func TestSpeed(t *testing.T) {
	a := Sample{Timestamp: 100, Latitude: 0, Longitude: 0}
	b := Sample{Timestamp: 100, Latitude: 1, Longitude: 0}
	if s := Speed(a, b); s != 0 {
		t.Errorf("Speed with equal timestamps = %f, want 0", s)
	}

	// One degree of latitude is ~111.19 km; covering it in an hour.
	b.Timestamp = 3700
	got := SpeedKMH(a, b)
	if math.Abs(got-111.19) > 0.1 {
		t.Errorf("SpeedKMH = %f, want ~111.19", got)
	}
	if SpeedKMH(b, a) != got {
		t.Errorf("SpeedKMH is not symmetric")
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   Track
		want Track
	}{
		{
			name: "lonely outlier",
			in: Track{
				{Timestamp: 0, Latitude: 0, Longitude: 0},
				{Timestamp: 60, Latitude: 1, Longitude: 0},
				{Timestamp: 120, Latitude: 0.0001, Longitude: 0},
			},
			want: Track{
				{Timestamp: 0, Latitude: 0, Longitude: 0},
				{Timestamp: 120, Latitude: 0.0001, Longitude: 0},
			},
		},
		{
			name: "slow walk",
			in: Track{
				{Timestamp: 0, Latitude: 0, Longitude: 0},
				{Timestamp: 600, Latitude: 0.005, Longitude: 0},
				{Timestamp: 1200, Latitude: 0.010, Longitude: 0},
				{Timestamp: 1800, Latitude: 0.015, Longitude: 0.001},
			},
			want: Track{
				{Timestamp: 0, Latitude: 0, Longitude: 0},
				{Timestamp: 600, Latitude: 0.005, Longitude: 0},
				{Timestamp: 1200, Latitude: 0.010, Longitude: 0},
				{Timestamp: 1800, Latitude: 0.015, Longitude: 0.001},
			},
		},
		{
			name: "burst of two",
			in: Track{
				{Timestamp: 0, Latitude: 0, Longitude: 0},
				{Timestamp: 60, Latitude: 2, Longitude: 0},
				{Timestamp: 120, Latitude: 2, Longitude: 0.0001},
				{Timestamp: 180, Latitude: 0.0001, Longitude: 0},
				{Timestamp: 240, Latitude: 0.0002, Longitude: 0},
			},
			want: Track{
				{Timestamp: 0, Latitude: 0, Longitude: 0},
				{Timestamp: 180, Latitude: 0.0001, Longitude: 0},
				{Timestamp: 240, Latitude: 0.0002, Longitude: 0},
			},
		},
		{
			name: "fast but consistent",
			in: Track{
				{Timestamp: 0, Latitude: 0, Longitude: 0},
				{Timestamp: 60, Latitude: 0.02, Longitude: 0},
				{Timestamp: 120, Latitude: 0.04, Longitude: 0},
			},
			want: Track{
				{Timestamp: 0, Latitude: 0, Longitude: 0},
				{Timestamp: 60, Latitude: 0.02, Longitude: 0},
				{Timestamp: 120, Latitude: 0.04, Longitude: 0},
			},
		},
		{
			// ~60 km/h: only the next raw sample counts, so the close
			// sample two ahead does not make this one an outlier.
			name: "moderate speed ignores lookahead",
			in: Track{
				{Timestamp: 0, Latitude: 0, Longitude: 0},
				{Timestamp: 60, Latitude: 0.009, Longitude: 0},
				{Timestamp: 120, Latitude: -0.1, Longitude: 0},
				{Timestamp: 180, Latitude: 0.0001, Longitude: 0},
			},
			want: Track{
				{Timestamp: 0, Latitude: 0, Longitude: 0},
				{Timestamp: 60, Latitude: 0.009, Longitude: 0},
				{Timestamp: 180, Latitude: 0.0001, Longitude: 0},
			},
		},
		{
			// The only sample near the start is six ahead, past the window.
			name: "lookahead stops at five samples",
			in: Track{
				{Timestamp: 0, Latitude: 0, Longitude: 0},
				{Timestamp: 60, Latitude: 1, Longitude: 0},
				{Timestamp: 61, Latitude: 1, Longitude: 0},
				{Timestamp: 62, Latitude: 1, Longitude: 0},
				{Timestamp: 63, Latitude: 1, Longitude: 0},
				{Timestamp: 64, Latitude: 1, Longitude: 0},
				{Timestamp: 65, Latitude: 1, Longitude: 0},
				{Timestamp: 66, Latitude: 0.0001, Longitude: 0},
			},
			want: Track{
				{Timestamp: 0, Latitude: 0, Longitude: 0},
				{Timestamp: 60, Latitude: 1, Longitude: 0},
				{Timestamp: 61, Latitude: 1, Longitude: 0},
				{Timestamp: 62, Latitude: 1, Longitude: 0},
				{Timestamp: 63, Latitude: 1, Longitude: 0},
				{Timestamp: 64, Latitude: 1, Longitude: 0},
				{Timestamp: 65, Latitude: 1, Longitude: 0},
				{Timestamp: 66, Latitude: 0.0001, Longitude: 0},
			},
		},
		{
			name: "first sample far away",
			in: Track{
				{Timestamp: 0, Latitude: 5, Longitude: 5},
				{Timestamp: 60, Latitude: 0, Longitude: 0},
				{Timestamp: 120, Latitude: 0.0001, Longitude: 0},
			},
			want: Track{
				{Timestamp: 0, Latitude: 5, Longitude: 5},
				{Timestamp: 60, Latitude: 0, Longitude: 0},
				{Timestamp: 120, Latitude: 0.0001, Longitude: 0},
			},
		},
		{
			name: "last sample far away",
			in: Track{
				{Timestamp: 0, Latitude: 0, Longitude: 0},
				{Timestamp: 60, Latitude: 0.0001, Longitude: 0},
				{Timestamp: 120, Latitude: 5, Longitude: 5},
			},
			want: Track{
				{Timestamp: 0, Latitude: 0, Longitude: 0},
				{Timestamp: 60, Latitude: 0.0001, Longitude: 0},
				{Timestamp: 120, Latitude: 5, Longitude: 5},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			orig := append(Track(nil), tc.in...)
			got := Clean(tc.in, nil)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Clean() mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(orig, tc.in); diff != "" {
				t.Errorf("Clean() modified its input (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCleanReportsDiscards(t *testing.T) {
	r := &recorder{}
	Clean(Track{
		{Timestamp: 0, Latitude: 0, Longitude: 0},
		{Timestamp: 60, Latitude: 1, Longitude: 0},
		{Timestamp: 120, Latitude: 0.0001, Longitude: 0},
	}, r)

	if len(r.warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(r.warnings), r.warnings)
	}
	if want := "discarded 1/3 (33.33%)"; !strings.Contains(r.warnings[0], want) {
		t.Errorf("warning %q does not contain %q", r.warnings[0], want)
	}
}

func TestCleanShortTracks(t *testing.T) {
	if got := Clean(nil, nil); len(got) != 0 {
		t.Errorf("Clean(nil) = %v, want empty", got)
	}
	two := Track{{Timestamp: 0}, {Timestamp: 1, Latitude: 10}}
	if diff := cmp.Diff(two, Clean(two, nil)); diff != "" {
		t.Errorf("Clean() mismatch (-want +got):\n%s", diff)
	}
}

func TestBounds(t *testing.T) {
	tr := Track{{Timestamp: 10}, {Timestamp: 20}, {Timestamp: 30}}
	first, last := tr.Bounds()
	if first != 10 || last != 30 {
		t.Errorf("Bounds() = (%d, %d), want (10, 30)", first, last)
	}
	if diff := cmp.Diff([]int64{10, 20, 30}, tr.Timestamps()); diff != "" {
		t.Errorf("Timestamps() mismatch (-want +got):\n%s", diff)
	}
}
