package view

import (
	"errors"

	"github.com/san-kum/bitgrid/internal/grid"
)

// ErrNoSaver is returned for a save request when the editor has no Saver.
var ErrNoSaver = errors.New("view: no saver configured")

// Saver persists a snapshot of the grid.
type Saver func(g *grid.Grid) error

// State is the view transform and pointer mode.
type State struct {
	Scale   int
	PanX    int
	PanY    int
	Panning bool
	AnchorX int
	AnchorY int
}

// ScaleFor picks the cell edge length so a width x height grid fits on a
// screen with margin to spare, capped at maxScale. The result is at least 1.
func ScaleFor(screenW, screenH, width, height, margin, maxScale int) int {
	scale := min((screenW-margin)/width, (screenH-margin)/height, maxScale)
	if scale < 1 {
		return 1
	}
	return scale
}

// Editor applies input events to a grid and tracks the view transform,
// the panning gesture and unsaved changes.
type Editor struct {
	grid  *grid.Grid
	state State
	save  Saver
	dirty bool
}

// NewEditor edits g in place at scale display units per cell. A scale below
// 1 is raised to 1. save may be nil, in which case save requests fail with
// ErrNoSaver.
func NewEditor(g *grid.Grid, scale int, save Saver) *Editor {
	if scale < 1 {
		scale = 1
	}
	return &Editor{grid: g, state: State{Scale: scale}, save: save}
}

// Grid returns the grid being edited.
func (e *Editor) Grid() *grid.Grid { return e.grid }

// State returns the current view transform and pointer mode.
func (e *Editor) State() State { return e.state }

// Dirty reports whether cells changed since the last successful save.
func (e *Editor) Dirty() bool { return e.dirty }

// WindowSize returns the display size of the unpanned grid.
func (e *Editor) WindowSize() (int, int) {
	return e.grid.Width() * e.state.Scale, e.grid.Height() * e.state.Scale
}

// CellAt maps a display position to grid coordinates. ok is false when the
// position falls outside the grid.
func (e *Editor) CellAt(x, y int) (col, row int, ok bool) {
	col = floorDiv(x-e.state.PanX, e.state.Scale)
	row = floorDiv(y-e.state.PanY, e.state.Scale)
	return col, row, e.grid.InBounds(col, row)
}

// Handle applies one event. The error is only non-nil for a failed save.
func (e *Editor) Handle(ev Event) (Outcome, error) {
	switch ev := ev.(type) {
	case Quit:
		return OutcomeQuit, nil
	case SaveRequest:
		if e.save == nil {
			return OutcomeNone, ErrNoSaver
		}
		if err := e.save(e.grid.Clone()); err != nil {
			return OutcomeNone, err
		}
		e.dirty = false
		return OutcomeSaved, nil
	case ButtonDown:
		switch ev.Button {
		case ButtonLeft:
			if col, row, ok := e.CellAt(ev.X, ev.Y); ok {
				e.grid.Toggle(col, row)
				e.dirty = true
				return OutcomeToggled, nil
			}
		case ButtonRight:
			e.state.Panning = true
			e.state.AnchorX, e.state.AnchorY = ev.X, ev.Y
		}
	case ButtonUp:
		if ev.Button == ButtonRight {
			e.state.Panning = false
		}
	case Motion:
		if !e.state.Panning {
			return OutcomeNone, nil
		}
		e.state.PanX += ev.X - e.state.AnchorX
		e.state.PanY += ev.Y - e.state.AnchorY
		e.state.AnchorX, e.state.AnchorY = ev.X, ev.Y
		return OutcomePanned, nil
	}
	return OutcomeNone, nil
}

// Pan shifts the grid by dx, dy display units.
func (e *Editor) Pan(dx, dy int) {
	e.state.PanX += dx
	e.state.PanY += dy
}

// floorDiv rounds toward negative infinity so positions left of or above a
// panned grid never land on column or row 0.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
