package world

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
)

// LoadFile opens and parses a world file. The file handle is released on
// every exit path, including parse failures.
func LoadFile(path string, opts Options) (*World, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("open world %s: %w", path, err)
	}
	defer f.Close()

	w, err := Parse(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Printf("[WORLD] loaded %s: variant=%s dots=%d obstacles=%d circles=%d warnings=%d",
		path, w.Variant, len(w.Points), len(w.Obstacles), len(w.Circles), len(w.Warnings))
	return w, nil
}
