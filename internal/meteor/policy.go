package meteor

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Trajectory selects how a shooting star's end point is derived.
type Trajectory int

const (
	// TrajectoryAngle travels a random distance along a random downward angle.
	TrajectoryAngle Trajectory = iota
	// TrajectoryOffset adds independent random x and y offsets to the start.
	TrajectoryOffset
)

func (t Trajectory) String() string {
	switch t {
	case TrajectoryAngle:
		return "angle"
	case TrajectoryOffset:
		return "offset"
	default:
		return "unknown"
	}
}

// DefaultRemovalBuffer is how long a star outlives its animation before it
// is dropped from the active set.
const DefaultRemovalBuffer = 500 * time.Millisecond

// Policy holds the tunable spawn parameters.
type Policy struct {
	Name          string
	Interval      time.Duration
	Probability   float64
	Trajectory    Trajectory
	MinDuration   time.Duration
	MaxDuration   time.Duration
	RemovalBuffer time.Duration
}

// Built-in policies.
var (
	AnglePolicy = Policy{
		Name:          "angle",
		Interval:      1500 * time.Millisecond,
		Probability:   0.6,
		Trajectory:    TrajectoryAngle,
		MinDuration:   800 * time.Millisecond,
		MaxDuration:   2300 * time.Millisecond,
		RemovalBuffer: DefaultRemovalBuffer,
	}
	OffsetPolicy = Policy{
		Name:          "offset",
		Interval:      3 * time.Second,
		Probability:   0.7,
		Trajectory:    TrajectoryOffset,
		MinDuration:   1000 * time.Millisecond,
		MaxDuration:   3000 * time.Millisecond,
		RemovalBuffer: DefaultRemovalBuffer,
	}
)

// Policy validation errors.
var (
	ErrInvalidInterval    = errors.New("spawn interval must be positive")
	ErrInvalidProbability = errors.New("spawn probability must be within [0, 1]")
	ErrInvalidDuration    = errors.New("duration range must be positive and ordered")
)

// PolicyByName returns the built-in policy called name.
func PolicyByName(name string) (Policy, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "angle":
		return AnglePolicy, true
	case "offset":
		return OffsetPolicy, true
	default:
		return Policy{}, false
	}
}

// Validate checks that the policy can drive a spawner.
func (p Policy) Validate() error {
	if p.Interval <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidInterval, p.Interval)
	}
	if p.Probability < 0 || p.Probability > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidProbability, p.Probability)
	}
	if p.MinDuration <= 0 || p.MaxDuration < p.MinDuration {
		return fmt.Errorf("%w: [%v, %v]", ErrInvalidDuration, p.MinDuration, p.MaxDuration)
	}
	if p.RemovalBuffer < 0 {
		return fmt.Errorf("%w: removal buffer %v", ErrInvalidDuration, p.RemovalBuffer)
	}
	return nil
}
