package tui

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/bitgrid/internal/grid"
	"github.com/san-kum/bitgrid/internal/view"
	"github.com/sirupsen/logrus"
)

var (
	title  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	cursor = lipgloss.NewStyle().Reverse(true)
)

const (
	// cellCols is the number of terminal columns used per grid cell.
	cellCols   = 2
	headerRows = 1
	footerRows = 2
)

type model struct {
	editor  *view.Editor
	palette view.Palette
	file    string
	log     *logrus.Logger

	cursorCol int
	cursorRow int

	status    string
	statusErr bool

	width  int
	height int

	styles map[color.RGBA]lipgloss.Style
}

func newModel(ed *view.Editor, palette view.Palette, file string, log *logrus.Logger) model {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return model{
		editor:  ed,
		palette: palette,
		file:    file,
		log:     log,
		width:   80,
		height:  24,
		styles:  make(map[color.RGBA]lipgloss.Style),
	}
}

// Run starts the terminal editor on g and blocks until the user quits.
func Run(g *grid.Grid, save view.Saver, palette view.Palette, file string, log *logrus.Logger) error {
	m := newModel(view.NewEditor(g, 1, save), palette, file, log)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.apply(view.Quit{})
		return m, tea.Quit
	case "ctrl+s":
		m = m.apply(view.SaveRequest{})
	case "up", "k":
		if m.cursorRow > 0 {
			m.cursorRow--
		}
	case "down", "j":
		if m.cursorRow < m.editor.Grid().Height()-1 {
			m.cursorRow++
		}
	case "left", "h":
		if m.cursorCol > 0 {
			m.cursorCol--
		}
	case "right", "l":
		if m.cursorCol < m.editor.Grid().Width()-1 {
			m.cursorCol++
		}
	case "K":
		m.editor.Pan(0, -1)
	case "J":
		m.editor.Pan(0, 1)
	case "H":
		m.editor.Pan(-1, 0)
	case "L":
		m.editor.Pan(1, 0)
	case " ", "enter":
		st := m.editor.State()
		m = m.apply(view.ButtonDown{Button: view.ButtonLeft, X: m.cursorCol + st.PanX, Y: m.cursorRow + st.PanY})
	}
	return m, nil
}

func (m model) handleMouse(msg tea.MouseMsg) model {
	x, y := msg.X/cellCols, msg.Y-headerRows

	var btn view.Button
	switch msg.Button {
	case tea.MouseButtonLeft:
		btn = view.ButtonLeft
	case tea.MouseButtonRight:
		btn = view.ButtonRight
	default:
		switch msg.Action {
		case tea.MouseActionRelease:
			// X10 mouse reporting does not say which button was released
			btn = view.ButtonRight
		case tea.MouseActionMotion:
		default:
			return m
		}
	}

	switch msg.Action {
	case tea.MouseActionPress:
		m = m.apply(view.ButtonDown{Button: btn, X: x, Y: y})
		if col, row, ok := m.editor.CellAt(x, y); ok && btn == view.ButtonLeft {
			m.cursorCol, m.cursorRow = col, row
		}
	case tea.MouseActionRelease:
		m = m.apply(view.ButtonUp{Button: btn, X: x, Y: y})
	case tea.MouseActionMotion:
		m = m.apply(view.Motion{X: x, Y: y})
	}
	return m
}

func (m model) apply(ev view.Event) model {
	out, err := m.editor.Handle(ev)
	switch {
	case err != nil:
		m.log.WithError(err).WithField("file", m.file).Error("save failed")
		m.status, m.statusErr = "save failed: "+err.Error(), true
	case out == view.OutcomeSaved:
		m.log.WithField("file", m.file).Info("grid saved")
		m.status, m.statusErr = "saved "+filepath.Base(m.file), false
	}
	return m
}

func (m model) View() string {
	var b strings.Builder

	name := filepath.Base(m.file)
	if m.editor.Dirty() {
		name += " *"
	}
	g := m.editor.Grid()
	b.WriteString(title.Render("bitgrid") + dim.Render(fmt.Sprintf(" :: %s  %dx%d  lit %d", name, g.Width(), g.Height(), g.Count())))
	b.WriteString("\n")

	cols := max(m.width/cellCols, 1)
	rows := max(m.height-headerRows-footerRows, 1)
	s := newTextSurface(cols, rows)
	m.editor.Render(s, m.palette)

	st := m.editor.State()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			style := m.style(s.at(x, y))
			if x == m.cursorCol+st.PanX && y == m.cursorRow+st.PanY {
				style = style.Inherit(cursor)
			}
			b.WriteString(style.Render(s.glyph(x, y)))
		}
		b.WriteString("\n")
	}

	switch {
	case m.status == "":
		b.WriteString("\n")
	case m.statusErr:
		b.WriteString(red.Render(m.status) + "\n")
	default:
		b.WriteString(green.Render(m.status) + "\n")
	}
	b.WriteString(dim.Render("click/space toggle  right-drag/HJKL pan  ctrl+s save  q quit"))
	return b.String()
}

func (m model) style(c color.RGBA) lipgloss.Style {
	if s, ok := m.styles[c]; ok {
		return s
	}
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)))
	m.styles[c] = s
	return s
}
