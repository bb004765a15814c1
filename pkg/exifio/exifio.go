// Package exifio reads and writes photo metadata through exiftool.
package exifio

import (
	"errors"
	"fmt"
	"os"

	"github.com/barasher/go-exiftool"
	"k8s.io/klog/v2"

	"github.com/tstromberg/geotag/pkg/geotag"
)

// batchSize is the number of files passed to exiftool per extraction.
const batchSize = 64

// emptyXMP is written to sidecars that do not exist yet so exiftool can update them.
const emptyXMP = `<?xpacket begin='` + "\ufeff" + `' id='W5M0MpCehiHzreSzNTczkc9d'?>
<x:xmpmeta xmlns:x='adobe:ns:meta/'>
<rdf:RDF xmlns:rdf='http://www.w3.org/1999/02/22-rdf-syntax-ns#'>
</rdf:RDF>
</x:xmpmeta>
<?xpacket end='w'?>
`

// Client wraps a long-running exiftool process.
type Client struct {
	et *exiftool.Exiftool
}

// New starts exiftool. An empty binary uses exiftool from $PATH.
func New(binary string) (*Client, error) {
	opts := []func(*exiftool.Exiftool) error{}
	if binary != "" {
		opts = append(opts, exiftool.SetExiftoolBinaryPath(binary))
	}

	et, err := exiftool.NewExiftool(opts...)
	if err != nil {
		return nil, fmt.Errorf("exiftool: %w", err)
	}
	return &Client{et: et}, nil
}

// Close stops exiftool.
func (c *Client) Close() error {
	return c.et.Close()
}

// Read implements geotag.Reader.
func (c *Client) Read(root string, sidecars bool) ([]geotag.Asset, error) {
	klog.Infof("reading metadata under %s using exiftool ...", root)
	paths, err := Find(root, sidecars)
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}

	as := make([]geotag.Asset, 0, len(paths))
	for start := 0; start < len(paths); start += batchSize {
		end := min(start+batchSize, len(paths))
		for _, fm := range c.et.ExtractMetadata(paths[start:end]...) {
			if fm.Err != nil {
				klog.Warningf("skipping %q, extract failed: %v", fm.File, fm.Err)
				continue
			}
			for k, v := range fm.Fields {
				klog.V(2).Infof("%s: %q=%v", fm.File, k, v)
			}
			as = append(as, geotag.AssetFromFields(fm.File, fm.Fields))
		}
	}

	klog.Infof("read metadata of %d files", len(as))
	return as, nil
}

// Write implements geotag.Writer. Missing sidecar targets are created when
// perFile is set.
func (c *Client) Write(patches []geotag.Patch, perFile bool) error {
	var errs []error
	fms := make([]exiftool.FileMetadata, 0, len(patches))

	for _, p := range patches {
		if perFile {
			if err := ensureFile(p.SourceFile); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", p.SourceFile, err))
				continue
			}
		}
		fms = append(fms, fileMetadata(p))
	}

	c.et.WriteMetadata(fms)
	for _, fm := range fms {
		if fm.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", fm.File, fm.Err))
			continue
		}
		klog.V(1).Infof("wrote %s", fm.File)
	}
	return errors.Join(errs...)
}

func fileMetadata(p geotag.Patch) exiftool.FileMetadata {
	fm := exiftool.EmptyFileMetadata()
	fm.File = p.SourceFile
	for k, v := range p.Tags() {
		switch v := v.(type) {
		case float64:
			fm.SetFloat(k, v)
		case string:
			fm.SetString(k, v)
		default:
			fm.SetString(k, fmt.Sprint(v))
		}
	}
	return fm
}

func ensureFile(path string) error {
	_, err := os.Stat(path)
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		return err
	}
	klog.Infof("creating sidecar %s", path)
	return os.WriteFile(path, []byte(emptyXMP), 0o644)
}
