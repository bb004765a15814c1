package track

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Load reads a location history file, picking the format from its extension.
// The returned track is sorted by timestamp.
func Load(path string) (Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	var t Track
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gpx":
		t, err = ReadGPX(f)
	default:
		t, err = ReadTakeout(f)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

type takeoutHistory struct {
	Locations []takeoutLocation `json:"locations"`
}

type takeoutLocation struct {
	TimestampMs string `json:"timestampMs"`
	Timestamp   string `json:"timestamp"`
	LatitudeE7  *int64 `json:"latitudeE7"`
	LongitudeE7 *int64 `json:"longitudeE7"`
	Accuracy    int    `json:"accuracy"`
}

// ReadTakeout parses a Google Takeout location history export
// ("Records.json" or the older "Location History.json").
func ReadTakeout(r io.Reader) (Track, error) {
	var h takeoutHistory
	if err := json.NewDecoder(r).Decode(&h); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	t := make(Track, 0, len(h.Locations))
	for i, l := range h.Locations {
		ts, err := l.unix()
		if err != nil {
			return nil, fmt.Errorf("location %d: %w", i, err)
		}
		if l.LatitudeE7 == nil || l.LongitudeE7 == nil {
			return nil, fmt.Errorf("location %d: missing latitudeE7 or longitudeE7", i)
		}
		t = append(t, Sample{
			Timestamp: ts,
			Latitude:  e7(*l.LatitudeE7, 900000000),
			Longitude: e7(*l.LongitudeE7, 1800000000),
		})
	}

	Sort(t)
	return t, nil
}

func (l takeoutLocation) unix() (int64, error) {
	if l.TimestampMs != "" {
		ms, err := strconv.ParseInt(l.TimestampMs, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse timestampMs %q: %w", l.TimestampMs, err)
		}
		return ms / 1000, nil
	}
	if l.Timestamp != "" {
		ts, err := time.Parse(time.RFC3339Nano, l.Timestamp)
		if err != nil {
			return 0, fmt.Errorf("parse timestamp %q: %w", l.Timestamp, err)
		}
		return ts.Unix(), nil
	}
	return 0, fmt.Errorf("no timestamp")
}

// e7 converts an E7 fixed point coordinate to degrees. Some exports store
// southern and western coordinates as unsigned 32-bit values.
func e7(v int64, limit int64) float64 {
	if v > limit {
		v -= 1 << 32
	}
	return float64(v) / 1e7
}

type gpxFile struct {
	Tracks []struct {
		Segments []struct {
			Points []gpxPoint `xml:"trkpt"`
		} `xml:"trkseg"`
	} `xml:"trk"`
}

type gpxPoint struct {
	Lat  float64 `xml:"lat,attr"`
	Lon  float64 `xml:"lon,attr"`
	Time string  `xml:"time"`
}

// ReadGPX parses the track points of a GPX file. Points without a time are ignored.
func ReadGPX(r io.Reader) (Track, error) {
	var g gpxFile
	if err := xml.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	t := Track{}
	for _, trk := range g.Tracks {
		for _, seg := range trk.Segments {
			for _, p := range seg.Points {
				if p.Time == "" {
					continue
				}
				ts, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(p.Time))
				if err != nil {
					return nil, fmt.Errorf("parse time %q: %w", p.Time, err)
				}
				t = append(t, Sample{Timestamp: ts.Unix(), Latitude: p.Lat, Longitude: p.Lon})
			}
		}
	}

	Sort(t)
	return t, nil
}
