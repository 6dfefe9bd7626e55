// Package preview renders grids as text for the terminal: braille dots,
// full-size block characters and lit-cell density plots.
package preview

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/bitgrid/internal/grid"
)

// Blocks draws one character per cell.
func Blocks(g *grid.Grid, on, off rune) string {
	var b strings.Builder
	for _, row := range g.Rows() {
		for _, lit := range row {
			if lit {
				b.WriteRune(on)
			} else {
				b.WriteRune(off)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Density plots lit cells per column and per row.
func Density(g *grid.Grid, height int) string {
	cols := toFloats(g.ColumnCounts())
	rows := toFloats(g.RowCounts())

	var b strings.Builder
	b.WriteString(asciigraph.Plot(cols,
		asciigraph.Height(height),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(float64(g.Height())),
		asciigraph.Caption(fmt.Sprintf("lit cells per column (%d columns)", g.Width())),
	))
	b.WriteString("\n\n")
	b.WriteString(asciigraph.Plot(rows,
		asciigraph.Height(height),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(float64(g.Width())),
		asciigraph.Caption(fmt.Sprintf("lit cells per row (%d rows)", g.Height())),
	))
	b.WriteString("\n")
	return b.String()
}

func toFloats(counts []int) []float64 {
	data := make([]float64, len(counts))
	for i, c := range counts {
		data[i] = float64(c)
	}
	// asciigraph needs two points to draw a line
	if len(data) == 1 {
		data = append(data, data[0])
	}
	return data
}
