// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-starfield/internal/backdrop"
	"github.com/litescript/ls-starfield/internal/canvas"
	"github.com/litescript/ls-starfield/internal/theme"
)

// DefaultFrameInterval is used when Options leaves it unset.
const DefaultFrameInterval = time.Second / 30

// Msg types for Bubble Tea
type (
	// FrameMsg triggers one animation frame.
	FrameMsg time.Time

	// ThemeChangedMsg signals the shared theme flag changed.
	ThemeChangedMsg struct {
		Mode theme.Mode
	}
)

// Options configures the model.
type Options struct {
	FrameInterval time.Duration
	CellWidth     float64
	CellHeight    float64
	// Clock stamps key-triggered spawns; defaults to time.Now.
	Clock func() time.Time
}

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	backdrop *backdrop.Backdrop
	signal   *theme.Signal
	clock    func() time.Time

	// UI state
	width     int
	height    int
	ready     bool
	paused    bool
	showHelp  bool
	statusMsg string
	interval  time.Duration

	grid *canvas.Grid
	keys KeyMap
	help help.Model

	// Theme subscription
	themeCh <-chan theme.Mode
}

// New creates the root model drawing b.
func New(b *backdrop.Backdrop, opts Options) Model {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultFrameInterval
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	signal := b.Theme()
	return Model{
		backdrop: b,
		signal:   signal,
		clock:    opts.Clock,
		interval: opts.FrameInterval,
		grid:     canvas.NewGrid(0, 0, opts.CellWidth, opts.CellHeight),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		themeCh:  signal.Subscribe(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		frameCmd(m.interval),
		m.watchTheme,
	)
}

// watchTheme waits for the next theme change.
func (m Model) watchTheme() tea.Msg {
	if m.themeCh == nil {
		return nil
	}
	mode, ok := <-m.themeCh
	if !ok {
		return nil
	}
	return ThemeChangedMsg{Mode: mode}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()

	case FrameMsg:
		if !m.paused {
			m.backdrop.Frame(time.Time(msg), m.grid)
		}
		return m, frameCmd(m.interval)

	case ThemeChangedMsg:
		m.statusMsg = "theme: " + msg.Mode.String()
		return m, m.watchTheme
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.shutdown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.layout()

	case key.Matches(msg, m.keys.ToggleTheme):
		m.signal.Toggle()

	case key.Matches(msg, m.keys.Spawn):
		if _, err := m.backdrop.SpawnNow(m.clock()); err != nil {
			m.statusMsg = "spawn: " + err.Error()
		}

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
	}
	return m, nil
}

// layout sizes the grid to the space above the footer and mounts or
// resizes the backdrop to match.
func (m *Model) layout() {
	if !m.ready {
		return
	}
	rows := m.height - lipgloss.Height(m.renderFooter())
	if rows < 0 {
		rows = 0
	}
	cols := m.width
	if cols < 0 {
		cols = 0
	}
	m.grid.Resize(cols, rows)

	w, h := m.grid.Bounds()
	if m.backdrop.Mounted() {
		m.backdrop.Resize(w, h)
		return
	}
	m.backdrop.Mount(w, h, m.clock())
}

// shutdown releases the backdrop and the theme subscription. It is safe to
// call more than once.
func (m *Model) shutdown() {
	m.backdrop.Unmount()
	if m.themeCh != nil {
		m.signal.Unsubscribe(m.themeCh)
		m.themeCh = nil
	}
}

// Paused reports whether the animation is frozen.
func (m Model) Paused() bool {
	return m.paused
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	_, rows := m.grid.Size()
	if rows == 0 {
		return m.renderFooter()
	}
	return m.grid.Render(true) + "\n" + m.renderFooter()
}

func frameCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// Status returns the footer text without styling.
func (m Model) Status() string {
	st := m.backdrop.Stats()
	s := fmt.Sprintf("%s · %s · %s · frame %s",
		st.Mode, plural(st.Stars, "star"), plural(st.Meteors, "meteor"), commaU(st.Frames))
	if m.paused {
		s += " · paused"
	}
	return s
}
