package view

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/bitgrid/internal/grid"
)

func TestScaleFor(t *testing.T) {
	tests := []struct {
		name                   string
		screenW, screenH, w, h int
		want                   int
	}{
		{"capped", 1920, 1080, 16, 8, 20},
		{"width bound", 1920, 1080, 200, 10, 9},
		{"height bound", 1920, 1080, 10, 100, 9},
		{"too large", 800, 600, 5000, 5000, 1},
		{"small screen", 300, 300, 10, 10, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScaleFor(tt.screenW, tt.screenH, tt.w, tt.h, 100, 20))
		})
	}
}

func TestClickTogglesCell(t *testing.T) {
	e := NewEditor(grid.New(2, 2), 10, nil)

	out, err := e.Handle(ButtonDown{Button: ButtonLeft, X: 5, Y: 5})
	require.NoError(t, err)

	assert.Equal(t, OutcomeToggled, out)
	assert.Equal(t, "1000", e.Grid().BitString())
}

func TestClickOutsideGridIsIgnored(t *testing.T) {
	e := NewEditor(grid.New(2, 2), 10, nil)
	e.Pan(15, 15)

	clicks := [][2]int{{5, 5}, {14, 30}, {35, 20}, {20, 35}, {-100, -100}, {14, 14}}
	for _, c := range clicks {
		out, err := e.Handle(ButtonDown{Button: ButtonLeft, X: c[0], Y: c[1]})
		require.NoError(t, err)
		assert.Equal(t, OutcomeNone, out, "click at %v", c)
	}
	assert.Equal(t, 0, e.Grid().Count())
}

func TestCellAtAccountsForPan(t *testing.T) {
	e := NewEditor(grid.New(4, 4), 10, nil)
	e.Pan(-15, 5)

	col, row, ok := e.CellAt(0, 5)
	assert.True(t, ok)
	assert.Equal(t, 1, col)
	assert.Equal(t, 0, row)

	// just above the grid must not round to row 0
	_, row, ok = e.CellAt(0, 4)
	assert.False(t, ok)
	assert.Equal(t, -1, row)
}

func TestRightDragPans(t *testing.T) {
	e := NewEditor(grid.New(4, 4), 10, nil)

	out, _ := e.Handle(Motion{X: 50, Y: 50})
	assert.Equal(t, OutcomeNone, out, "motion without panning")

	e.Handle(ButtonDown{Button: ButtonRight, X: 10, Y: 10})
	assert.True(t, e.State().Panning)

	out, _ = e.Handle(Motion{X: 13, Y: 8})
	assert.Equal(t, OutcomePanned, out)
	e.Handle(Motion{X: 20, Y: 20})

	e.Handle(ButtonUp{Button: ButtonRight, X: 20, Y: 20})
	e.Handle(Motion{X: 100, Y: 100})

	st := e.State()
	assert.False(t, st.Panning)
	assert.Equal(t, 10, st.PanX)
	assert.Equal(t, 10, st.PanY)
	assert.Equal(t, 0, e.Grid().Count())
}

func TestLeftButtonUpDoesNotStopPanning(t *testing.T) {
	e := NewEditor(grid.New(4, 4), 10, nil)
	e.Handle(ButtonDown{Button: ButtonRight})
	e.Handle(ButtonUp{Button: ButtonLeft})

	assert.True(t, e.State().Panning)
}

func TestSaveRequestSnapshotsGrid(t *testing.T) {
	var saved *grid.Grid
	e := NewEditor(grid.New(2, 2), 10, func(g *grid.Grid) error {
		saved = g
		return nil
	})
	e.Handle(ButtonDown{Button: ButtonLeft, X: 1, Y: 1})
	assert.True(t, e.Dirty())

	out, err := e.Handle(SaveRequest{})
	require.NoError(t, err)
	assert.Equal(t, OutcomeSaved, out)
	assert.Equal(t, "1000", saved.BitString())
	assert.False(t, e.Dirty())

	e.Handle(ButtonDown{Button: ButtonLeft, X: 1, Y: 1})
	assert.Equal(t, "1000", saved.BitString(), "snapshot must not follow later edits")
}

func TestSaveErrors(t *testing.T) {
	boom := errors.New("disk full")
	e := NewEditor(grid.New(1, 1), 1, func(*grid.Grid) error { return boom })
	e.Handle(ButtonDown{Button: ButtonLeft})
	_, err := e.Handle(SaveRequest{})
	assert.ErrorIs(t, err, boom)
	assert.True(t, e.Dirty(), "failed save keeps changes pending")

	e = NewEditor(grid.New(1, 1), 1, nil)
	_, err = e.Handle(SaveRequest{})
	assert.ErrorIs(t, err, ErrNoSaver)
}

func TestQuit(t *testing.T) {
	e := NewEditor(grid.New(1, 1), 1, nil)
	out, err := e.Handle(Quit{})
	require.NoError(t, err)
	assert.Equal(t, OutcomeQuit, out)
}

func TestWindowSize(t *testing.T) {
	e := NewEditor(grid.New(16, 8), 20, nil)
	w, h := e.WindowSize()
	assert.Equal(t, 320, w)
	assert.Equal(t, 160, h)
}

type rect struct {
	x, y, w, h int
	c          color.RGBA
}

type line struct {
	x0, y0, x1, y1 int
}

type recorder struct {
	clear color.RGBA
	rects []rect
	lines []line
}

func (r *recorder) Clear(c color.RGBA) { r.clear = c }
func (r *recorder) FillRect(x, y, w, h int, c color.RGBA) {
	r.rects = append(r.rects, rect{x, y, w, h, c})
}
func (r *recorder) Line(x0, y0, x1, y1 int, c color.RGBA) {
	r.lines = append(r.lines, line{x0, y0, x1, y1})
}

func TestRender(t *testing.T) {
	g := grid.New(2, 1)
	g.Set(1, 0, true)
	e := NewEditor(g, 10, nil)
	e.Pan(3, 4)

	var r recorder
	e.Render(&r, DefaultPalette)

	assert.Equal(t, DefaultPalette.Background, r.clear)
	assert.Equal(t, []rect{
		{3, 4, 10, 10, DefaultPalette.Off},
		{13, 4, 10, 10, DefaultPalette.On},
	}, r.rects)
	assert.Equal(t, []line{
		{3, 4, 13, 4}, {3, 4, 3, 14},
		{13, 4, 23, 4}, {13, 4, 13, 14},
	}, r.lines)
}

func TestPaletteFromHex(t *testing.T) {
	p, err := PaletteFromHex("#323232", "#ffff00", "#000000", "#0096ff")
	require.NoError(t, err)
	assert.Equal(t, DefaultPalette, p)

	_, err = PaletteFromHex("#323232", "yellow", "#000000", "#0096ff")
	assert.Error(t, err)
}
