package exifio

import (
	"path/filepath"
	"strings"

	"github.com/karrick/godirwalk"
	"k8s.io/klog/v2"

	"github.com/tstromberg/geotag/pkg/geotag"
)

// MediaExts are the extensions (lowercase) of files considered for tagging.
var MediaExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".heic": true, ".heif": true, ".png": true,
	".tif": true, ".tiff": true, ".dng": true, ".cr2": true, ".cr3": true,
	".nef": true, ".arw": true, ".orf": true, ".rw2": true, ".raf": true,
	".mp4": true, ".mov": true, ".m4v": true, ".3gp": true,
}

// Find returns the media files under root in lexical order, skipping hidden
// files and directories. XMP sidecars are included when sidecars is set.
func Find(root string, sidecars bool) ([]string, error) {
	found := []string{}

	err := godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if path != root && strings.HasPrefix(filepath.Base(path), ".") {
				return godirwalk.SkipThis
			}

			isDir, err := de.IsDirOrSymlinkToDir()
			if err != nil || isDir {
				return err
			}

			ext := strings.ToLower(filepath.Ext(path))
			if MediaExts[ext] || (sidecars && ext == geotag.SidecarExt) {
				klog.V(1).Infof("found %s", path)
				found = append(found, path)
			}
			return nil
		},
	})

	return found, err
}
