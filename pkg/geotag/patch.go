package geotag

import (
	"encoding/json"
	"fmt"
	"io"
)

// Patch is the set of tags to write to one file.
type Patch struct {
	SourceFile string

	// DateTimeOriginal and OffsetTimeOriginal hold the local capture time at
	// the matched location. Both are empty when it could not be resolved.
	DateTimeOriginal   string
	OffsetTimeOriginal string

	GPSDateTime  string
	GPSDateStamp string
	GPSTimeStamp string
	Latitude     float64
	Longitude    float64
}

// Partial reports whether only the GPS tags are set.
func (p Patch) Partial() bool {
	return p.DateTimeOriginal == ""
}

// Tags returns the exiftool tags to write, keyed by tag name. GPS
// coordinates are written to both EXIF and XMP.
func (p Patch) Tags() map[string]any {
	latRef, lngRef := "N", "E"
	if p.Latitude < 0 {
		latRef = "S"
	}
	if p.Longitude < 0 {
		lngRef = "W"
	}

	t := map[string]any{
		"GPSDateTime":          p.GPSDateTime,
		"GPSDateStamp":         p.GPSDateStamp,
		"GPSTimeStamp":         p.GPSTimeStamp,
		"EXIF:GPSLatitude":     p.Latitude,
		"EXIF:GPSLatitudeRef":  latRef,
		"EXIF:GPSLongitude":    p.Longitude,
		"EXIF:GPSLongitudeRef": lngRef,
		"XMP:GPSLatitude":      p.Latitude,
		"XMP:GPSLongitude":     p.Longitude,
	}
	if !p.Partial() {
		t["DateTimeOriginal"] = p.DateTimeOriginal
		t["OffsetTimeOriginal"] = p.OffsetTimeOriginal
	}
	return t
}

// MarshalJSON encodes the patch in exiftool "-json=" form.
func (p Patch) MarshalJSON() ([]byte, error) {
	t := p.Tags()
	t["SourceFile"] = p.SourceFile
	return json.Marshal(t)
}

// WriteDiff writes patches as an exiftool "-json=" batch.
func WriteDiff(w io.Writer, patches []Patch) error {
	if patches == nil {
		patches = []Patch{}
	}
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	if err := e.Encode(patches); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
