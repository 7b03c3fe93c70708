// Package backdrop composes the star field and the shooting star layer
// behind a single frame clock.
package backdrop

import (
	"encoding/binary"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/litescript/ls-starfield/internal/canvas"
	"github.com/litescript/ls-starfield/internal/field"
	"github.com/litescript/ls-starfield/internal/logging"
	"github.com/litescript/ls-starfield/internal/meteor"
	"github.com/litescript/ls-starfield/internal/theme"
)

// ErrNotMounted is returned by operations that need a live viewport.
var ErrNotMounted = errors.New("backdrop not mounted")

// seedMix decorrelates the PCG words derived from one seed.
const seedMix = 0x9E3779B97F4A7C15

// Per-subsystem stream selectors. The field and the spawner draw from
// separate sources so neither perturbs the other.
const (
	fieldStream  = 1
	meteorStream = 2
)

// Config holds configuration for a backdrop.
type Config struct {
	Policy    meteor.Policy
	Seed      uint64 // 0 picks a seed from the clock
	MaxEvents int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Policy:    meteor.AnglePolicy,
		MaxEvents: 32,
	}
}

// Backdrop drives one star field and one spawner. It is owned by a single
// frame loop and is not safe for concurrent use; only the theme signal is
// shared.
type Backdrop struct {
	cfg       Config
	signal    *theme.Signal
	logger    *logging.Logger
	starRng   *rand.Rand
	meteorRng *rand.Rand
	entropy   *rand.ChaCha8

	field   *field.Field
	spawner *meteor.Spawner
	mounted bool

	frames    uint64
	lastMode  theme.Mode
	mountedAt time.Time
	lastDraw  time.Time

	// Lifecycle log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int
}

// New creates an unmounted backdrop reading its theme from signal.
func New(cfg Config, signal *theme.Signal, logger *logging.Logger) *Backdrop {
	if signal == nil {
		signal = theme.NewSignal(theme.Dark)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 32
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	return &Backdrop{
		cfg:       cfg,
		signal:    signal,
		logger:    logger.With("backdrop"),
		starRng:   newStream(seed, fieldStream),
		meteorRng: newStream(seed, meteorStream),
		entropy:   rand.NewChaCha8(key),
		maxEvents: maxEvents,
		events:    make([]Event, 0, maxEvents),
		lastMode:  signal.Mode(),
	}
}

func newStream(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, (seed^seedMix)+stream*seedMix))
}

// Theme returns the theme signal the backdrop reads every frame.
func (b *Backdrop) Theme() *theme.Signal {
	return b.signal
}

// Mount creates fresh subsystems for a w x h viewport and starts the spawn
// clock at now. A non-positive viewport leaves the backdrop unmounted and
// returns false. Mounting again replaces the previous subsystems.
func (b *Backdrop) Mount(w, h float64, now time.Time) bool {
	if w <= 0 || h <= 0 {
		b.logger.Debug("skipping mount for %.0fx%.0f viewport", w, h)
		return false
	}
	if b.mounted {
		b.spawner.Stop()
	}

	b.field = field.New(w, h, b.starRng)
	b.spawner = meteor.NewSpawner(b.cfg.Policy, b.meteorRng,
		meteor.WithLogger(b.logger),
		meteor.WithEntropy(b.entropy),
		meteor.WithViewport(w, h),
	)
	b.spawner.Advance(now)
	b.mounted = true
	b.mountedAt = now
	b.lastDraw = time.Time{}
	b.lastMode = b.signal.Mode()

	b.addEvent(Event{Type: EventMounted, Timestamp: now, Width: w, Height: h, Mode: b.lastMode})
	b.logger.Info("mounted %.0fx%.0f with %d stars, %s policy", w, h, b.field.Len(), b.spawner.Policy().Name)
	return true
}

// Mounted reports whether the backdrop has live subsystems.
func (b *Backdrop) Mounted() bool {
	return b.mounted
}

// Resize re-seeds the star field and retargets meteor trajectories. It does
// nothing while unmounted.
func (b *Backdrop) Resize(w, h float64) {
	if !b.mounted {
		return
	}
	if fw, fh := b.field.Size(); fw == w && fh == h {
		return
	}
	b.field.Resize(w, h)
	b.spawner.Resize(w, h)
	b.addEvent(Event{Type: EventResized, Timestamp: b.clock(), Width: w, Height: h, Mode: b.signal.Mode()})
	b.logger.Debug("resized to %.0fx%.0f, %d stars", w, h, b.field.Len())
}

// clock is the latest time the backdrop has seen: the last frame, or the
// mount time before any frame was drawn.
func (b *Backdrop) clock() time.Time {
	if b.lastDraw.IsZero() {
		return b.mountedAt
	}
	return b.lastDraw
}

// Frame draws one frame for now: background, star field, then meteors.
// An unmounted backdrop or unusable surface draws nothing.
func (b *Backdrop) Frame(now time.Time, s canvas.Surface) {
	if !b.mounted || !canvas.Usable(s) {
		return
	}

	mode := b.signal.Mode()
	if mode != b.lastMode {
		b.addEvent(Event{Type: EventThemeChanged, Timestamp: now, Mode: mode})
		b.logger.Debug("theme changed to %s", mode)
		b.lastMode = mode
	}

	s.Clear(theme.PaletteFor(mode).Background)
	b.field.Frame(now, s, mode)
	b.spawner.Advance(now)
	b.spawner.Draw(s, now, mode)

	b.frames++
	b.lastDraw = now
}

// SpawnNow launches a shooting star immediately.
func (b *Backdrop) SpawnNow(now time.Time) (meteor.ShootingStar, error) {
	if !b.mounted {
		return meteor.ShootingStar{}, ErrNotMounted
	}
	return b.spawner.Spawn(now)
}

// Meteors returns the active shooting stars.
func (b *Backdrop) Meteors() []meteor.ShootingStar {
	if !b.mounted {
		return nil
	}
	return b.spawner.Active()
}

// HasMeteor reports whether a shooting star with id is active.
func (b *Backdrop) HasMeteor(id ulid.ULID) bool {
	return b.mounted && b.spawner.Has(id)
}

// Unmount stops the spawner and drops both subsystems. It is safe to call
// more than once.
func (b *Backdrop) Unmount() {
	if !b.mounted {
		return
	}
	b.spawner.Stop()
	b.spawner = nil
	b.field = nil
	b.mounted = false
	b.addEvent(Event{Type: EventUnmounted, Timestamp: b.clock(), Mode: b.signal.Mode()})
	b.logger.Info("unmounted after %d frames", b.frames)
}

// Stats is a point-in-time summary of the backdrop.
type Stats struct {
	Mounted bool
	Width   float64
	Height  float64
	Stars   int
	Meteors int
	Frames  uint64
	Mode    theme.Mode
	Policy  string
}

// Stats returns a summary of the current state.
func (b *Backdrop) Stats() Stats {
	st := Stats{
		Mounted: b.mounted,
		Frames:  b.frames,
		Mode:    b.signal.Mode(),
		Policy:  b.cfg.Policy.Name,
	}
	if b.mounted {
		st.Width, st.Height = b.field.Size()
		st.Stars = b.field.Len()
		st.Meteors = b.spawner.Len()
		st.Policy = b.spawner.Policy().Name
	}
	return st
}
