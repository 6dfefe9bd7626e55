package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/san-kum/bitgrid/internal/grid"
	"github.com/san-kum/bitgrid/internal/view"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// RenderImage rasterises the SVG rendering of g.
func RenderImage(g *grid.Grid, scale int, p view.Palette) (*image.RGBA, error) {
	svg := GridToSVG(g, scale, p)
	if svg == "" {
		return nil, fmt.Errorf("export: nothing to render (scale %d)", scale)
	}

	icon, err := oksvg.ReadIconStream(strings.NewReader(svg))
	if err != nil {
		return nil, fmt.Errorf("export: parse svg: %w", err)
	}

	w, h := g.Width()*scale, g.Height()*scale
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return img, nil
}

func WritePNG(w io.Writer, g *grid.Grid, scale int, p view.Palette) error {
	img, err := RenderImage(g, scale, p)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
