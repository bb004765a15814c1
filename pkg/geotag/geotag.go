// Package geotag adds GPS metadata to photos and videos from a location history.
package geotag

import (
	"fmt"
	"os"

	"github.com/otiai10/copy"

	"github.com/tstromberg/geotag/pkg/track"
	"github.com/tstromberg/geotag/pkg/tz"
)

// Reader lists the metadata of the assets under a root directory.
// XMP sidecars are included when sidecars is set.
type Reader interface {
	Read(root string, sidecars bool) ([]Asset, error)
}

// Writer applies patches. With perFile set the targets may not exist yet
// and are written one by one.
type Writer interface {
	Write(patches []Patch, perFile bool) error
}

// Pipeline runs a complete geotagging pass.
type Pipeline struct {
	Reader   Reader
	Writer   Writer
	Resolver OffsetResolver
	Log      Logger
}

// Run loads and cleans the location history, matches the assets under
// c.Root and writes the resulting patches.
func (p *Pipeline) Run(c *Config) (*Report, error) {
	log := p.Log
	if log == nil {
		log = Klog{}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStructural, err)
	}

	offset, err := tz.ParseOffset(c.UTCOffsetDefault)
	if err != nil {
		return nil, fmt.Errorf("%w: default offset: %w", ErrStructural, err)
	}

	log.Infof("reading location history from %s ...", c.LocationHistory)
	raw, err := track.Load(c.LocationHistory)
	if err != nil {
		return nil, fmt.Errorf("%w: location history: %w", ErrStructural, err)
	}
	t := track.Clean(raw, log)

	root := c.Root
	if c.OutDir != "" {
		log.Infof("copying %s to %s ...", c.Root, c.OutDir)
		if err := copy.Copy(c.Root, c.OutDir); err != nil {
			return nil, fmt.Errorf("%w: copy: %w", ErrStructural, err)
		}
		root = c.OutDir
	}

	assets, err := p.assets(c, root)
	if err != nil {
		return nil, fmt.Errorf("%w: assets: %w", ErrStructural, err)
	}
	assets = MergeSidecars(assets)

	r, err := NewMatcher(p.Resolver, log).Match(assets, t, offset, c.UseSidecar)
	if err != nil {
		return nil, err
	}

	if c.DiffPath != "" {
		if err := writeDiffFile(c.DiffPath, r.Patches); err != nil {
			return r, fmt.Errorf("write diff: %w", err)
		}
		log.Infof("wrote %d patches to %s", len(r.Patches), c.DiffPath)
	}

	if c.DryRun || len(r.Patches) == 0 {
		return r, nil
	}

	log.Infof("writing metadata to %d files ...", len(r.Patches))
	if err := p.Writer.Write(r.Patches, c.UseSidecar); err != nil {
		return r, fmt.Errorf("write metadata: %w", err)
	}
	return r, nil
}

func (p *Pipeline) assets(c *Config, root string) ([]Asset, error) {
	if c.AssetsJSON != "" {
		return ReadAssetsFile(c.AssetsJSON)
	}
	return p.Reader.Read(root, c.UseSidecar)
}

func writeDiffFile(path string, patches []Patch) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteDiff(f, patches); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
