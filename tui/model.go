// Package tui presents a sections controller in the terminal with Bubble Tea.
// The mouse wheel and the keyboard drive the same controller the graphical
// surface does; a 60 Hz tick advances it.
package tui

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/livetwice/sections"
)

// frameInterval is the tick period that drives Controller.Update.
const frameInterval = time.Second / 60

// wheelStep is how many cells one wheel notch scrolls natively.
const wheelStep = 3

// chromeRows is the number of rows outside the section strip: header,
// dots, help and the strip's border.
const chromeRows = 5

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the Bubble Tea model. The controller is shared, not copied.
type Model struct {
	ctrl   *sections.Controller
	keys   keyMap
	help   help.Model
	styles *Styles
	width  int
	height int
}

// New returns a model for ctrl.
func New(ctrl *sections.Controller) Model {
	return Model{
		ctrl:   ctrl,
		keys:   defaultKeyMap(),
		help:   help.New(),
		styles: NewStyles(),
	}
}

// Init starts the frame tick.
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.ctrl.Update()
		return m, tick()

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		w, h := m.stripSize()
		extent := float64(w)
		if m.ctrl.Config().PagingAxis == sections.AxisVertical {
			extent = float64(h)
		}
		m.ctrl.Resize(extent)
		return m, nil

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.ctrl.HandleWheel(0, -wheelStep)
		case tea.MouseButtonWheelDown:
			m.ctrl.HandleWheel(0, wheelStep)
		case tea.MouseButtonWheelLeft:
			m.ctrl.HandleWheel(-wheelStep, 0)
		case tea.MouseButtonWheelRight:
			m.ctrl.HandleWheel(wheelStep, 0)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Next):
			m.ctrl.HandleKey(sections.KeyNext)
		case key.Matches(msg, m.keys.Prev):
			m.ctrl.HandleKey(sections.KeyPrev)
		case key.Matches(msg, m.keys.First):
			m.ctrl.HandleKey(sections.KeyFirst)
		case key.Matches(msg, m.keys.Last):
			m.ctrl.HandleKey(sections.KeyLast)
		case key.Matches(msg, m.keys.Jump):
			n := int(msg.String()[0] - '1')
			m.ctrl.RequestSection(n, true)
		}
		return m, nil
	}
	return m, nil
}

// stripSize returns the inner size of the section strip.
func (m Model) stripSize() (int, int) {
	return max(m.width-2, 1), max(m.height-chromeRows, 1)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}
	w, h := m.stripSize()

	header := m.renderHeader(w + 2)
	strip := m.styles.Strip.Width(w).Height(h).Render(m.renderStrip(w, h))
	dots := lipgloss.PlaceHorizontal(w+2, lipgloss.Center, m.renderDots())
	return lipgloss.JoinVertical(lipgloss.Left, header, strip, dots, m.help.View(m.keys))
}

func (m Model) renderHeader(width int) string {
	logo := m.styles.Logo.Render("LIVE TWICE")
	label := m.styles.Label.Render(m.ctrl.Label())
	gap := max(width-lipgloss.Width(logo)-lipgloss.Width(label), 1)
	return logo + strings.Repeat(" ", gap) + label
}

func (m Model) renderDots() string {
	current := m.ctrl.Current()
	dots := make([]string, m.ctrl.Total())
	for i := range dots {
		if i == current {
			dots[i] = m.styles.DotActive.Render("●")
		} else {
			dots[i] = m.styles.Dot.Render("○")
		}
	}
	return strings.Join(dots, " ")
}

// renderStrip draws the part of the section strip under the viewport:
// a rule at each section boundary and each title centred in its section.
func (m Model) renderStrip(w, h int) string {
	grid := make([][]rune, h)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", w))
	}
	put := func(row, col int, s string) {
		if row < 0 || row >= h {
			return
		}
		for i, r := range []rune(s) {
			if c := col + i; c >= 0 && c < w {
				grid[row][c] = r
			}
		}
	}

	view := m.ctrl.Viewport()
	vertical := view.Axis == sections.AxisVertical
	for i, label := range m.ctrl.Labels() {
		p := view.Position(i)
		if vertical {
			top := int(math.Round(p.Y))
			if top > 0 && top < h {
				put(top, 0, strings.Repeat("─", w))
			}
			put(top+h/2, (w-len([]rune(label)))/2, label)
			continue
		}
		left := int(math.Round(p.X))
		if left > 0 && left < w {
			for r := 0; r < h; r++ {
				grid[r][left] = '│'
			}
		}
		put(h/2, left+(w-len([]rune(label)))/2, label)
	}

	lines := make([]string, h)
	for r := range grid {
		lines[r] = string(grid[r])
	}
	return strings.Join(lines, "\n")
}
