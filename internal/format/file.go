package format

import (
	"fmt"
	"os"

	"github.com/san-kum/bitgrid/internal/grid"
)

// Load decodes the grid file at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Save overwrites path with g. Options are checked before the file is
// touched. There is no temp file or backup; an interrupted write leaves a
// truncated file.
func Save(path string, g *grid.Grid, opts ...Option) error {
	if _, err := resolve(opts); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, g, opts...); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
