package main

import (
	"errors"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// lockRoot takes an exclusive lock for root so concurrent runs, including
// --watch reruns, cannot write the same files.
func lockRoot(root string) (*flock.Flock, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	h := fnv.New32a()
	h.Write([]byte(abs))

	l := flock.New(filepath.Join(os.TempDir(), fmt.Sprintf("geotag-%08x.lock", h.Sum32())))
	ok, err := l.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another geotag run is using " + abs)
	}
	return l, nil
}
