package meteor

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/litescript/ls-starfield/internal/logging"
)

// Spawner errors.
var (
	ErrStopped     = errors.New("spawner stopped")
	ErrDuplicateID = errors.New("shooting star id already active")
)

// Angle trajectory shape.
const (
	angleStartXMargin = 0.1 // start x in [10%, 90%) of the width
	angleStartYSpan   = 0.3 // start y in the top 30%
	angleDistanceMin  = 300.0
	angleDistanceSpan = 400.0
	angleDegMin       = 30.0
	angleDegSpan      = 45.0
)

// Offset trajectory shape.
const (
	offsetStartYSpan = 0.5
	offsetDXMin      = 200.0
	offsetDXSpan     = 300.0
	offsetDYMin      = 100.0
	offsetDYSpan     = 200.0
)

// maxCatchUpTicks bounds how many missed interval ticks are replayed after
// a stall; older ticks are dropped.
const maxCatchUpTicks = 3

// Rand is the random source for spawn decisions and trajectories.
type Rand interface {
	Float64() float64
}

// Option configures a Spawner.
type Option func(*Spawner)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Spawner) {
		if l != nil {
			s.logger = l.With("meteor")
		}
	}
}

// WithEntropy sets the entropy source for ids. It is wrapped in a
// monotonic reader so ids minted in the same millisecond stay ordered.
func WithEntropy(r io.Reader) Option {
	return func(s *Spawner) {
		s.entropy = ulid.Monotonic(r, 0)
	}
}

// WithViewport sets the initial spawn area.
func WithViewport(w, h float64) Option {
	return func(s *Spawner) {
		s.Resize(w, h)
	}
}

// Spawner owns the active set of shooting stars. It is driven entirely by
// the timestamps passed to Advance and is not safe for concurrent use.
type Spawner struct {
	policy  Policy
	rng     Rand
	entropy io.Reader
	logger  *logging.Logger

	width, height float64

	active   map[ulid.ULID]ShootingStar
	expiries expiryQueue

	started  bool
	nextTick time.Time
	stopped  bool
}

// NewSpawner creates a spawner with an empty active set. An invalid policy
// falls back to AnglePolicy.
func NewSpawner(policy Policy, rng Rand, opts ...Option) *Spawner {
	if err := policy.Validate(); err != nil {
		policy = AnglePolicy
	}
	s := &Spawner{
		policy:  policy,
		rng:     rng,
		entropy: ulid.Monotonic(crand.Reader, 0),
		logger:  logging.Discard(),
		active:  make(map[ulid.ULID]ShootingStar),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Policy returns the active policy.
func (s *Spawner) Policy() Policy {
	return s.policy
}

// Resize sets the area trajectories are generated for.
func (s *Spawner) Resize(w, h float64) {
	s.width = math.Max(w, 0)
	s.height = math.Max(h, 0)
}

// Advance fires every interval tick due by now, then drops expired stars.
// The first call starts the interval clock.
func (s *Spawner) Advance(now time.Time) {
	if s.stopped {
		return
	}
	if !s.started {
		s.started = true
		s.nextTick = now.Add(s.policy.Interval)
	}

	if backlog := now.Sub(s.nextTick); backlog > maxCatchUpTicks*s.policy.Interval {
		s.logger.Debug("dropping %v of missed spawn ticks", backlog)
		s.nextTick = now.Add(-(maxCatchUpTicks - 1) * s.policy.Interval)
	}

	for !now.Before(s.nextTick) {
		tick := s.nextTick
		s.nextTick = s.nextTick.Add(s.policy.Interval)
		if s.rng.Float64() < s.policy.Probability {
			if _, err := s.Spawn(tick); err != nil {
				s.logger.Warn("spawn failed: %v", err)
			}
		}
	}

	s.Expire(now)
}

// Spawn creates a shooting star at now regardless of the spawn probability.
func (s *Spawner) Spawn(now time.Time) (ShootingStar, error) {
	if s.stopped {
		return ShootingStar{}, ErrStopped
	}

	id, err := ulid.New(ulid.Timestamp(now), s.entropy)
	if err != nil {
		return ShootingStar{}, fmt.Errorf("generate id: %w", err)
	}
	if _, exists := s.active[id]; exists {
		return ShootingStar{}, fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}

	star := s.trajectory()
	star.ID = id
	star.SpawnedAt = now
	star.Duration = s.duration()

	s.active[id] = star
	s.expiries.schedule(star.ExpiresAt(s.policy.RemovalBuffer), id)

	s.logger.Debug("spawned %s (%.0f,%.0f)->(%.0f,%.0f) over %v",
		id, star.StartX, star.StartY, star.EndX, star.EndY, star.Duration)
	return star, nil
}

// Expire removes every star whose removal time is at or before now.
func (s *Spawner) Expire(now time.Time) int {
	if s.stopped {
		return 0
	}
	ids := s.expiries.due(now)
	for _, id := range ids {
		delete(s.active, id)
	}
	return len(ids)
}

func (s *Spawner) trajectory() ShootingStar {
	w, h := s.width, s.height
	var st ShootingStar

	switch s.policy.Trajectory {
	case TrajectoryOffset:
		st.StartX = s.rng.Float64() * w
		st.StartY = s.rng.Float64() * h * offsetStartYSpan
		st.EndX = st.StartX + s.rng.Float64()*offsetDXSpan + offsetDXMin
		st.EndY = st.StartY + s.rng.Float64()*offsetDYSpan + offsetDYMin
	default:
		st.StartX = s.rng.Float64()*(w*(1-2*angleStartXMargin)) + w*angleStartXMargin
		st.StartY = s.rng.Float64() * (h * angleStartYSpan)
		distance := s.rng.Float64()*angleDistanceSpan + angleDistanceMin
		rad := (s.rng.Float64()*angleDegSpan + angleDegMin) * math.Pi / 180
		st.EndX = st.StartX + distance*math.Cos(rad)
		st.EndY = st.StartY + distance*math.Sin(rad)
	}
	return st
}

func (s *Spawner) duration() time.Duration {
	span := s.policy.MaxDuration - s.policy.MinDuration
	d := s.policy.MinDuration + time.Duration(s.rng.Float64()*float64(span))
	return d.Round(time.Millisecond)
}

// Active returns the live stars ordered by id (and therefore by spawn time).
func (s *Spawner) Active() []ShootingStar {
	out := make([]ShootingStar, 0, len(s.active))
	for _, st := range s.active {
		out = append(out, st)
	}
	slices.SortFunc(out, func(a, b ShootingStar) int {
		return a.ID.Compare(b.ID)
	})
	return out
}

// Has reports whether a star with id is active.
func (s *Spawner) Has(id ulid.ULID) bool {
	_, ok := s.active[id]
	return ok
}

// Len returns the number of active stars.
func (s *Spawner) Len() int {
	return len(s.active)
}

// Pending returns the number of scheduled removals.
func (s *Spawner) Pending() int {
	return s.expiries.Len()
}

// Stop cancels the spawn clock and every pending removal. It is safe to
// call more than once; later Advance, Spawn and Expire calls do nothing.
func (s *Spawner) Stop() {
	if s.stopped {
		return
	}
	s.stopped = true
	s.expiries = nil
	clear(s.active)
	s.logger.Debug("stopped")
}

// Stopped reports whether Stop was called.
func (s *Spawner) Stopped() bool {
	return s.stopped
}
