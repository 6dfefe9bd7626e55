package gui

import (
	"fmt"
	"image/color"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/bitgrid/internal/grid"
	"github.com/san-kum/bitgrid/internal/view"
	"github.com/sirupsen/logrus"
)

var (
	ColStatusBg  = rl.NewColor(10, 10, 10, 200)
	ColStatusOK  = rl.NewColor(180, 180, 180, 255)
	ColStatusErr = rl.NewColor(255, 80, 80, 255)
)

const (
	statusFontSize = 10
	statusTTL      = 3 * time.Second
)

// Options configures the window editor. A nil Log uses the standard logger.
type Options struct {
	File     string
	Margin   int
	MaxScale int
	// FPS caps the frame rate; 0 leaves the loop uncapped.
	FPS     int
	Palette view.Palette
	Log     *logrus.Logger
}

// App owns the raylib window and feeds input to an Editor.
type App struct {
	Editor  *view.Editor
	Palette view.Palette
	File    string
	Log     *logrus.Logger

	status    status
	lastMouse [2]int
	title     string
}

var mouseButtons = []struct {
	native rl.MouseButton
	btn    view.Button
}{
	{rl.MouseLeftButton, view.ButtonLeft},
	{rl.MouseRightButton, view.ButtonRight},
}

// initWindow opens a hidden window to query the monitor, sizes the grid to
// fit it, then shows the window centred.
func initWindow(g *grid.Grid, opts Options) int {
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(1, 1, "bitgrid")
	rl.SetExitKey(0)
	if opts.FPS > 0 {
		rl.SetTargetFPS(int32(opts.FPS))
	}

	mon := rl.GetCurrentMonitor()
	screenW, screenH := rl.GetMonitorWidth(mon), rl.GetMonitorHeight(mon)
	scale := view.ScaleFor(screenW, screenH, g.Width(), g.Height(), opts.Margin, opts.MaxScale)

	w, h := g.Width()*scale, g.Height()*scale
	rl.SetWindowSize(w, h)
	rl.SetWindowPosition((screenW-w)/2, (screenH-h)/2)
	rl.ClearWindowState(rl.FlagWindowHidden)
	return scale
}

// Run opens the editor window for g and blocks until it is closed.
func Run(g *grid.Grid, save view.Saver, opts Options) {
	scale := initWindow(g, opts)
	defer rl.CloseWindow()

	app := NewApp(view.NewEditor(g, scale, save), opts)
	app.Log.WithFields(logrus.Fields{
		"file":   opts.File,
		"width":  g.Width(),
		"height": g.Height(),
		"scale":  scale,
	}).Info("editor window open")
	app.RunLoop()
}

// NewApp wraps ed for drawing. The window must already be open.
func NewApp(ed *view.Editor, opts Options) *App {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &App{
		Editor:  ed,
		Palette: opts.Palette,
		File:    opts.File,
		Log:     log,
	}
}

// RunLoop polls input, applies it and draws one frame per iteration until
// the window is closed.
func (a *App) RunLoop() {
	for {
		if rl.WindowShouldClose() && a.handle(view.Quit{}) {
			return
		}
		for _, ev := range a.pollEvents() {
			a.handle(ev)
		}
		a.Draw()
	}
}

// pollEvents turns this frame's raylib input state into editor events.
func (a *App) pollEvents() []view.Event {
	var evs []view.Event

	ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
	if ctrl && rl.IsKeyPressed(rl.KeyS) {
		evs = append(evs, view.SaveRequest{})
	}

	pos := rl.GetMousePosition()
	x, y := int(pos.X), int(pos.Y)
	for _, b := range mouseButtons {
		if rl.IsMouseButtonPressed(b.native) {
			evs = append(evs, view.ButtonDown{Button: b.btn, X: x, Y: y})
		}
		if rl.IsMouseButtonReleased(b.native) {
			evs = append(evs, view.ButtonUp{Button: b.btn, X: x, Y: y})
		}
	}
	if x != a.lastMouse[0] || y != a.lastMouse[1] {
		evs = append(evs, view.Motion{X: x, Y: y})
		a.lastMouse = [2]int{x, y}
	}
	return evs
}

// handle applies ev and reports whether the loop should stop.
func (a *App) handle(ev view.Event) bool {
	out, err := a.Editor.Handle(ev)
	now := time.Now()
	switch {
	case err != nil:
		a.Log.WithError(err).WithField("file", a.File).Error("save failed")
		a.status.set(fmt.Sprintf("save failed: %v", err), true, now)
	case out == view.OutcomeSaved:
		a.Log.WithField("file", a.File).Info("grid saved")
		a.status.set("saved "+filepath.Base(a.File), false, now)
	case out == view.OutcomeToggled:
		a.Log.WithField("lit", a.Editor.Grid().Count()).Debug("cell toggled")
	}
	return out == view.OutcomeQuit
}

// Draw renders the grid and the status line for the current frame.
func (a *App) Draw() {
	a.updateTitle()

	rl.BeginDrawing()
	a.Editor.Render(surface{}, a.Palette)
	a.drawStatus()
	rl.EndDrawing()
}

func (a *App) updateTitle() {
	title := "bitgrid :: " + filepath.Base(a.File)
	if a.Editor.Dirty() {
		title += " *"
	}
	if title != a.title {
		rl.SetWindowTitle(title)
		a.title = title
	}
}

func (a *App) drawStatus() {
	msg, isErr, ok := a.status.text(time.Now())
	if !ok {
		return
	}
	col := ColStatusOK
	if isErr {
		col = ColStatusErr
	}
	y := int32(rl.GetScreenHeight()) - statusFontSize - 4
	rl.DrawRectangle(0, y-2, int32(rl.GetScreenWidth()), statusFontSize+6, ColStatusBg)
	rl.DrawText(msg, 4, y, statusFontSize, col)
}

// surface draws straight to the current raylib frame.
type surface struct{}

func (surface) Clear(c color.RGBA) {
	rl.ClearBackground(c)
}

func (surface) FillRect(x, y, w, h int, c color.RGBA) {
	rl.DrawRectangle(int32(x), int32(y), int32(w), int32(h), c)
}

func (surface) Line(x0, y0, x1, y1 int, c color.RGBA) {
	rl.DrawLine(int32(x0), int32(y0), int32(x1), int32(y1), c)
}
