package geotag

import (
	"path/filepath"
	"strings"
)

// SidecarExt is the extension of XMP sidecar files.
const SidecarExt = ".xmp"

// IsSidecar reports whether path names an XMP sidecar.
func IsSidecar(path string) bool {
	return strings.EqualFold(filepath.Ext(path), SidecarExt)
}

// SidecarPath returns the sidecar for path by replacing its extension.
func SidecarPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + SidecarExt
}

// MergeSidecars folds sidecar records into primary records and returns the
// primaries in their original order. A sidecar merges into every primary
// whose SourceFile starts with the sidecar path minus its extension, so
// "IMG_1.xmp" also merges into "IMG_1.jpg.mov". Sidecar values only fill
// tags the primary lacks; GPS presence in either counts.
func MergeSidecars(assets []Asset) []Asset {
	var primaries, sidecars []Asset
	for _, a := range assets {
		if IsSidecar(a.SourceFile) {
			sidecars = append(sidecars, a)
			continue
		}
		primaries = append(primaries, a)
	}

	for _, s := range sidecars {
		base := strings.TrimSuffix(s.SourceFile, filepath.Ext(s.SourceFile))
		for i := range primaries {
			if !strings.HasPrefix(primaries[i].SourceFile, base) {
				continue
			}
			p := &primaries[i]
			if p.DateTimeOriginal == "" {
				p.DateTimeOriginal = s.DateTimeOriginal
			}
			if p.OffsetTimeOriginal == "" {
				p.OffsetTimeOriginal = s.OffsetTimeOriginal
			}
			p.HasGPS = p.HasGPS || s.HasGPS
		}
	}
	return primaries
}
