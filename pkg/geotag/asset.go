package geotag

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Asset is the metadata of a photo or video, as reported by exiftool.
// Empty strings mean the tag is absent.
type Asset struct {
	SourceFile         string
	DateTimeOriginal   string
	OffsetTimeOriginal string
	HasGPS             bool
}

// AssetFromFields builds an Asset from an exiftool tag map.
func AssetFromFields(path string, fields map[string]any) Asset {
	a := Asset{SourceFile: path}
	if a.SourceFile == "" {
		a.SourceFile = str(fields["SourceFile"])
	}
	a.DateTimeOriginal = str(fields["DateTimeOriginal"])
	a.OffsetTimeOriginal = str(fields["OffsetTimeOriginal"])
	_, a.HasGPS = fields["GPSPosition"]
	return a
}

func str(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// ReadAssets decodes an "exiftool -json" listing.
func ReadAssets(r io.Reader) ([]Asset, error) {
	var fields []map[string]any
	if err := json.NewDecoder(r).Decode(&fields); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	as := make([]Asset, 0, len(fields))
	for i, f := range fields {
		a := AssetFromFields("", f)
		if a.SourceFile == "" {
			return nil, fmt.Errorf("entry %d: missing SourceFile", i)
		}
		as = append(as, a)
	}
	return as, nil
}

// ReadAssetsFile is ReadAssets for a file on disk.
func ReadAssetsFile(path string) ([]Asset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	as, err := ReadAssets(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return as, nil
}
