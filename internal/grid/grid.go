// Package grid holds the in-memory on/off cell matrix edited by bitgrid.
//
// Cells are addressed by (col, row) with col on the horizontal axis. Storage
// is row-major, which is also the order of [Grid.BitString] and of the rows
// written by the format package.
package grid

import (
	"fmt"
	"strings"
)

type Grid struct {
	width  int
	height int
	cells  []bool
}

// New returns a width x height grid with every cell off.
func New(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("grid: invalid dimensions %dx%d", width, height))
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]bool, width*height),
	}
}

// FromRows builds a grid from row-major data. The width is taken from the
// first row and every other row must match it.
func FromRows(rows [][]bool) (*Grid, error) {
	if len(rows) == 0 {
		return nil, &MalformedGridError{Row: -1, Reason: "no rows"}
	}
	width := len(rows[0])
	if width == 0 {
		return nil, &MalformedGridError{Row: -1, Reason: "first row is empty"}
	}
	for i, r := range rows {
		if len(r) != width {
			return nil, &MalformedGridError{Row: i, Want: width, Got: len(r)}
		}
	}

	g := New(width, len(rows))
	for y, r := range rows {
		copy(g.cells[y*width:(y+1)*width], r)
	}
	return g, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.width && row >= 0 && row < g.height
}

func (g *Grid) index(col, row int) int {
	if !g.InBounds(col, row) {
		panic(fmt.Sprintf("grid: cell (%d,%d) outside %dx%d", col, row, g.width, g.height))
	}
	return row*g.width + col
}

func (g *Grid) Get(col, row int) bool {
	return g.cells[g.index(col, row)]
}

func (g *Grid) Set(col, row int, on bool) {
	g.cells[g.index(col, row)] = on
}

// Toggle flips the cell and returns its new state.
func (g *Grid) Toggle(col, row int) bool {
	i := g.index(col, row)
	g.cells[i] = !g.cells[i]
	return g.cells[i]
}

// Rows returns a copy of the cells, one slice per row.
func (g *Grid) Rows() [][]bool {
	rows := make([][]bool, g.height)
	for y := range rows {
		rows[y] = make([]bool, g.width)
		copy(rows[y], g.cells[y*g.width:(y+1)*g.width])
	}
	return rows
}

func (g *Grid) Clone() *Grid {
	c := &Grid{width: g.width, height: g.height, cells: make([]bool, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

func (g *Grid) Equal(o *Grid) bool {
	if o == nil || g.width != o.width || g.height != o.height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Count returns the number of lit cells.
func (g *Grid) Count() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

// ColumnCounts returns the number of lit cells in each column.
func (g *Grid) ColumnCounts() []int {
	counts := make([]int, g.width)
	for i, c := range g.cells {
		if c {
			counts[i%g.width]++
		}
	}
	return counts
}

// RowCounts returns the number of lit cells in each row.
func (g *Grid) RowCounts() []int {
	counts := make([]int, g.height)
	for i, c := range g.cells {
		if c {
			counts[i/g.width]++
		}
	}
	return counts
}

// BitString flattens the grid row by row into '1' and '0' characters.
func (g *Grid) BitString() string {
	var b strings.Builder
	b.Grow(len(g.cells))
	for _, c := range g.cells {
		if c {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
