package tui

import "image/color"

// textSurface rasterises editor draw calls at one terminal cell pair per
// display unit. Grid lines have no room at that size and are dropped.
type textSurface struct {
	w, h   int
	colors []color.RGBA
	filled []bool
}

func newTextSurface(w, h int) *textSurface {
	return &textSurface{
		w:      w,
		h:      h,
		colors: make([]color.RGBA, w*h),
		filled: make([]bool, w*h),
	}
}

func (s *textSurface) Clear(c color.RGBA) {
	for i := range s.colors {
		s.colors[i] = c
		s.filled[i] = false
	}
}

func (s *textSurface) FillRect(x, y, w, h int, c color.RGBA) {
	for yy := max(y, 0); yy < min(y+h, s.h); yy++ {
		for xx := max(x, 0); xx < min(x+w, s.w); xx++ {
			s.colors[yy*s.w+xx] = c
			s.filled[yy*s.w+xx] = true
		}
	}
}

func (s *textSurface) Line(x0, y0, x1, y1 int, c color.RGBA) {}

func (s *textSurface) at(x, y int) color.RGBA {
	return s.colors[y*s.w+x]
}

func (s *textSurface) glyph(x, y int) string {
	if s.filled[y*s.w+x] {
		return "██"
	}
	return "  "
}
