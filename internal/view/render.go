package view

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Surface receives the draw calls of one frame in display units.
type Surface interface {
	Clear(c color.RGBA)
	FillRect(x, y, w, h int, c color.RGBA)
	Line(x0, y0, x1, y1 int, c color.RGBA)
}

// Palette holds the four colours used to draw the grid.
type Palette struct {
	Background color.RGBA
	On         color.RGBA
	Off        color.RGBA
	Grid       color.RGBA
}

// DefaultPalette is a yellow-on-black grid with blue lines on a dark gray
// background.
var DefaultPalette = Palette{
	Background: color.RGBA{50, 50, 50, 255},
	On:         color.RGBA{255, 255, 0, 255},
	Off:        color.RGBA{0, 0, 0, 255},
	Grid:       color.RGBA{0, 150, 255, 255},
}

// Cell returns the fill color for a cell state.
func (p Palette) Cell(on bool) color.RGBA {
	if on {
		return p.On
	}
	return p.Off
}

// ParseColor reads a "#rrggbb" hex color.
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("view: color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 255}, nil
}

// PaletteFromHex parses the four palette colors.
func PaletteFromHex(background, on, off, grid string) (Palette, error) {
	var p Palette
	for _, f := range []struct {
		dst *color.RGBA
		hex string
	}{
		{&p.Background, background},
		{&p.On, on},
		{&p.Off, off},
		{&p.Grid, grid},
	} {
		c, err := ParseColor(f.hex)
		if err != nil {
			return Palette{}, err
		}
		*f.dst = c
	}
	return p, nil
}

// Render draws every cell at its panned position with grid lines along the
// top and left edge of each cell.
func (e *Editor) Render(s Surface, p Palette) {
	s.Clear(p.Background)

	scale := e.state.Scale
	for col := 0; col < e.grid.Width(); col++ {
		for row := 0; row < e.grid.Height(); row++ {
			x := col*scale + e.state.PanX
			y := row*scale + e.state.PanY
			s.FillRect(x, y, scale, scale, p.Cell(e.grid.Get(col, row)))
			s.Line(x, y, x+scale, y, p.Grid)
			s.Line(x, y, x, y+scale, p.Grid)
		}
	}
}
