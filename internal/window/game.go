// Package window renders the backdrop in a resizable desktop window using
// ebiten.
package window

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/litescript/ls-starfield/internal/backdrop"
	"github.com/litescript/ls-starfield/internal/logging"
)

// Default window geometry.
const (
	DefaultWidth  = 1280
	DefaultHeight = 720
	DefaultTitle  = "ls-starfield"
)

type action int

const (
	actionNone action = iota
	actionToggleTheme
	actionSpawn
	actionPause
	actionInfo
	actionQuit
)

// keyActions maps keys to actions, checked in order every tick.
var keyActions = []struct {
	key    ebiten.Key
	action action
}{
	{ebiten.KeyT, actionToggleTheme},
	{ebiten.KeySpace, actionSpawn},
	{ebiten.KeyP, actionPause},
	{ebiten.KeyI, actionInfo},
	{ebiten.KeyQ, actionQuit},
	{ebiten.KeyEscape, actionQuit},
}

// Options configures the window.
type Options struct {
	Width, Height int
	Title         string
	Logger        *logging.Logger
	// Clock supplies frame timestamps; defaults to time.Now.
	Clock func() time.Time
}

// Game implements ebiten.Game for the backdrop.
type Game struct {
	backdrop *backdrop.Backdrop
	logger   *logging.Logger
	clock    func() time.Time

	width, height int
	surface       *Surface

	paused   bool
	showInfo bool
	status   string
}

// NewGame creates a game drawing b.
func NewGame(b *backdrop.Backdrop, opts Options) *Game {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return &Game{
		backdrop: b,
		logger:   opts.Logger.With("window"),
		clock:    opts.Clock,
		surface:  NewSurface(nil),
	}
}

// Update handles key presses.
func (g *Game) Update() error {
	for _, ka := range keyActions {
		if inpututil.IsKeyJustPressed(ka.key) {
			if err := g.apply(ka.action); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Game) apply(a action) error {
	switch a {
	case actionToggleTheme:
		mode := g.backdrop.Theme().Toggle()
		g.status = "theme: " + mode.String()
	case actionSpawn:
		if _, err := g.backdrop.SpawnNow(g.clock()); err != nil {
			g.status = "spawn: " + err.Error()
		}
	case actionPause:
		g.paused = !g.paused
	case actionInfo:
		g.showInfo = !g.showInfo
	case actionQuit:
		return ebiten.Termination
	}
	return nil
}

// Draw renders one frame. While paused the screen keeps the last frame.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.paused {
		return
	}
	g.surface.img = screen
	g.backdrop.Frame(g.clock(), g.surface)

	if g.showInfo {
		ebitenutil.DebugPrintAt(screen, g.Info(), 10, 10)
	}
}

// Info returns the overlay text.
func (g *Game) Info() string {
	st := g.backdrop.Stats()
	info := fmt.Sprintf("%s  %d stars  %d meteors  frame %d  %.0f TPS",
		st.Mode, st.Stars, st.Meteors, st.Frames, ebiten.ActualTPS())
	if g.status != "" {
		info += "\n" + g.status
	}
	return info
}

// Layout tracks the window size and mounts or resizes the backdrop to it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		w, h := float64(outsideWidth), float64(outsideHeight)
		if g.backdrop.Mounted() {
			g.backdrop.Resize(w, h)
		} else {
			g.backdrop.Mount(w, h, g.clock())
		}
		g.logger.Debug("layout %dx%d", outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Paused reports whether drawing is frozen.
func (g *Game) Paused() bool {
	return g.paused
}

// Run opens the window and blocks until it is closed or the user quits.
// The backdrop is unmounted on return.
func Run(g *Game, opts Options) error {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}

	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err := ebiten.RunGame(g)
	g.backdrop.Unmount()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}
