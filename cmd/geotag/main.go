// geotag adds GPS coordinates to photos and videos using a location history.
//
//	geotag [flags] <location-history> <root>
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "time/tzdata"

	"github.com/fsnotify/fsnotify"
	"github.com/mattn/go-isatty"
	"k8s.io/klog/v2"

	"github.com/tstromberg/geotag/pkg/exifio"
	"github.com/tstromberg/geotag/pkg/geotag"
)

var (
	configPath    = flag.String("config", "", "TOML config file; command-line flags take precedence")
	offsetDefault = flag.String("utc-offset-default", "+00:00", "UTC offset (±HH:MM) for assets without OffsetTimeOriginal")
	useSidecar    = flag.Bool("use-sidecar", false, "read and write XMP sidecars instead of the assets")
	outDir        = flag.String("out", "", "copy root here and tag the copy")
	dryRun        = flag.Bool("dry-run", false, "match assets without writing metadata")
	diffPath      = flag.String("diff", "", "write planned patches as JSON to this path")
	exiftoolPath  = flag.String("exiftool", "", "path to the exiftool binary")
	assetsJSON    = flag.String("assets-json", "", "read asset metadata from an 'exiftool -json' dump instead of scanning root")
	watchFlag     = flag.Bool("watch", false, "watch the location history and re-run when it changes")
)

func main() {
	klog.InitFlags(nil)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <location-history> <root>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	c, err := config()
	if err != nil {
		klog.Exitf("config: %v", err)
	}
	if err := c.Validate(); err != nil {
		flag.Usage()
		klog.Exitf("invalid arguments: %v", err)
	}

	lock, err := lockRoot(c.Root)
	if err != nil {
		klog.Exitf("lock: %v", err)
	}
	defer lock.Unlock()

	ex, err := exifio.New(c.ExiftoolPath)
	if err != nil {
		lock.Unlock()
		klog.Exitf("%v", err)
	}
	defer ex.Close()

	p := &geotag.Pipeline{Reader: ex, Writer: ex, Log: geotag.Klog{}}
	if err := run(p, c); err != nil {
		ex.Close()
		lock.Unlock()
		klog.Exitf("geotag failed: %v", err)
	}

	if *watchFlag {
		if err := watch(p, c); err != nil {
			ex.Close()
			lock.Unlock()
			klog.Exitf("watch failed: %v", err)
		}
	}
}

// config merges the config file, positional arguments and flags set on the
// command line, in increasing order of precedence.
func config() (*geotag.Config, error) {
	c := geotag.DefaultConfig()
	if *configPath != "" {
		fc, err := geotag.LoadConfig(*configPath)
		if err != nil {
			return nil, err
		}
		c = *fc
	}

	switch flag.NArg() {
	case 0:
	case 2:
		c.LocationHistory = flag.Arg(0)
		c.Root = flag.Arg(1)
	default:
		return nil, errors.New("expected <location-history> <root>")
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "utc-offset-default":
			c.UTCOffsetDefault = *offsetDefault
		case "use-sidecar":
			c.UseSidecar = *useSidecar
		case "out":
			c.OutDir = *outDir
		case "dry-run":
			c.DryRun = *dryRun
		case "diff":
			c.DiffPath = *diffPath
		case "exiftool":
			c.ExiftoolPath = *exiftoolPath
		case "assets-json":
			c.AssetsJSON = *assetsJSON
		}
	})
	return &c, nil
}

func run(p *geotag.Pipeline, c *geotag.Config) error {
	r, err := p.Run(c)
	if r != nil {
		fmt.Println(geotag.SummaryTable(r, !terminal(os.Stdout)))
	}
	if err != nil {
		return fmt.Errorf("%s: %w", geotag.Classify(err), err)
	}
	if c.DryRun {
		klog.Infof("dry run: %d patches not written", len(r.Patches))
	}
	return nil
}

func terminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// settleTime is how long the location history must stay untouched before a
// rerun, so exports written in chunks are read once complete.
const settleTime = 2 * time.Second

// watch re-runs the pipeline whenever the location history is replaced or
// rewritten. Tagged assets carry GPS afterwards, so reruns only pick up
// the remainder.
func watch(p *geotag.Pipeline, c *geotag.Config) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("new watcher: %w", err)
	}
	defer w.Close()

	history, err := filepath.Abs(c.LocationHistory)
	if err != nil {
		return err
	}
	dir := filepath.Dir(history)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	klog.Infof("watching %s for changes ...", history)

	changed := make(chan struct{})
	go func() {
		defer close(changed)
		for {
			select {
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				klog.V(1).Infof("event: %v", event)
				if filepath.Clean(event.Name) != history {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					changed <- struct{}{}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				klog.Warningf("watch error: %v", err)
			}
		}
	}()

	debounce(changed, settleTime, func() {
		if err := run(p, c); err != nil {
			klog.Errorf("rerun failed: %v", err)
		}
	})
	return nil
}

// debounce calls fn after in has been quiet for the given duration following one
// or more signals. A pending call is flushed when in is closed.
func debounce(in <-chan struct{}, quiet time.Duration, fn func()) {
	var fire <-chan time.Time
	for {
		select {
		case _, ok := <-in:
			if !ok {
				if fire != nil {
					fn()
				}
				return
			}
			fire = time.After(quiet)
		case <-fire:
			fire = nil
			fn()
		}
	}
}
