package geotag

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/tstromberg/geotag/pkg/tz"
)

// Config holds configuration for a geotagging run.
type Config struct {
	// LocationHistory is a Google Takeout location history JSON or a GPX file.
	LocationHistory string `toml:"location_history"`
	// Root is the directory of photos and videos to tag.
	Root string `toml:"root"`
	// UTCOffsetDefault ("±HH:MM") is the camera clock offset for assets
	// without an OffsetTimeOriginal tag.
	UTCOffsetDefault string `toml:"utc_offset_default"`
	// UseSidecar reads XMP sidecars and writes to them instead of the assets.
	UseSidecar bool `toml:"use_sidecar"`

	OutDir       string `toml:"out_dir"`
	DiffPath     string `toml:"diff_path"`
	AssetsJSON   string `toml:"assets_json"`
	ExiftoolPath string `toml:"exiftool_path"`
	DryRun       bool   `toml:"dry_run"`
}

// DefaultConfig returns a Config populated with defaults.
func DefaultConfig() Config {
	return Config{UTCOffsetDefault: "+00:00"}
}

// LoadConfig reads a TOML config file over the defaults.
func LoadConfig(path string) (*Config, error) {
	c := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	d := toml.NewDecoder(f)
	d.DisallowUnknownFields()
	if err := d.Decode(&c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &c, nil
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.LocationHistory == "" {
		return errors.New("location history path must be set")
	}
	if c.Root == "" {
		return errors.New("root path must be set")
	}
	if _, err := tz.ParseOffset(c.UTCOffsetDefault); err != nil {
		return fmt.Errorf("utc_offset_default: %w", err)
	}
	if c.OutDir != "" && c.AssetsJSON != "" {
		return errors.New("out_dir cannot be combined with assets_json")
	}
	return nil
}
