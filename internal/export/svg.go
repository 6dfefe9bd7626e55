package export

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/san-kum/bitgrid/internal/grid"
	"github.com/san-kum/bitgrid/internal/view"
)

// GridToSVG draws g with one scale x scale square per cell and a one unit
// grid line along the top and left edge of every cell, as in the editor.
func GridToSVG(g *grid.Grid, scale int, p view.Palette) string {
	if g == nil || scale <= 0 {
		return ""
	}

	width := g.Width() * scale
	height := g.Height() * scale

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="%d" height="%d" fill="%s"/>
`, width, height, width, height, width, height, hex(p.Background)))

	for _, on := range []bool{false, true} {
		sb.WriteString(fmt.Sprintf("<g fill=\"%s\">\n", hex(p.Cell(on))))
		for y := 0; y < g.Height(); y++ {
			for x := 0; x < g.Width(); x++ {
				if g.Get(x, y) == on {
					sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d"/>
`, x*scale, y*scale, scale, scale))
				}
			}
		}
		sb.WriteString("</g>\n")
	}

	// grid lines as one unit wide rects so every renderer draws them alike
	sb.WriteString(fmt.Sprintf("<g fill=\"%s\">\n", hex(p.Grid)))
	for y := 0; y < g.Height(); y++ {
		sb.WriteString(fmt.Sprintf(`<rect x="0" y="%d" width="%d" height="1"/>
`, y*scale, width))
	}
	for x := 0; x < g.Width(); x++ {
		sb.WriteString(fmt.Sprintf(`<rect x="%d" y="0" width="1" height="%d"/>
`, x*scale, height))
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
