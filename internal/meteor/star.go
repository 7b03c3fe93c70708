// Package meteor spawns and expires shooting stars.
package meteor

import (
	"math"
	"time"

	"github.com/oklog/ulid/v2"
)

// ShootingStar is a transient streak crossing the surface.
type ShootingStar struct {
	ID        ulid.ULID
	StartX    float64
	StartY    float64
	EndX      float64
	EndY      float64
	Duration  time.Duration
	SpawnedAt time.Time
}

// Angle is the direction of travel in radians.
func (s ShootingStar) Angle() float64 {
	return math.Atan2(s.EndY-s.StartY, s.EndX-s.StartX)
}

// Progress returns how far along its trajectory the star is at now, in [0, 1].
func (s ShootingStar) Progress(now time.Time) float64 {
	if s.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(s.SpawnedAt)) / float64(s.Duration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Position interpolates linearly from start to end.
func (s ShootingStar) Position(now time.Time) (x, y float64) {
	t := s.Progress(now)
	return lerp(s.StartX, s.EndX, t), lerp(s.StartY, s.EndY, t)
}

// ExpiresAt is when the star leaves the active set.
func (s ShootingStar) ExpiresAt(buffer time.Duration) time.Time {
	return s.SpawnedAt.Add(s.Duration + buffer)
}

// lerp linear interpolation
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
