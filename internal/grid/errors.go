package grid

import (
	"errors"
	"fmt"
)

// ErrMalformedGrid indicates rows that cannot form a rectangular grid.
var ErrMalformedGrid = errors.New("grid: malformed grid")

// MalformedGridError describes why a set of rows was rejected.
type MalformedGridError struct {
	Row    int // index of the offending row, -1 when the input is empty
	Want   int
	Got    int
	Reason string
}

func (e *MalformedGridError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("grid: malformed grid: %s", e.Reason)
	}
	return fmt.Sprintf("grid: malformed grid: row %d has %d cells, want %d", e.Row, e.Got, e.Want)
}

func (e *MalformedGridError) Unwrap() error {
	return ErrMalformedGrid
}
