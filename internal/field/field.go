// Package field implements the drifting, twinkling background star field.
package field

import (
	"image/color"
	"math"
	"time"

	"github.com/litescript/ls-starfield/internal/canvas"
	"github.com/litescript/ls-starfield/internal/theme"
)

const (
	// PixelsPerStar is the surface area that holds one star.
	PixelsPerStar = 8000.0

	// WrapMargin is how far past the left edge a star travels before it
	// re-enters at the right edge.
	WrapMargin = 10.0

	sizeMin, sizeSpan       = 0.5, 2.0
	speedMin, speedSpan     = 0.1, 0.5
	opacityMin, opacitySpan = 0.2, 0.8
	twinkleMin, twinkleSpan = 0.005, 0.02

	twinkleStep = 0.01

	drawnAlphaMin = 0.1
	drawnAlphaMax = 1.0

	accentChance      = 0.7
	lightFillFactor   = 0.4
	glowFactor        = 1.5
	sparkleThreshold  = 1.5
	sparkleReach      = 2.0
	sparkleAlphaScale = 0.3
	sparkleLineWidth  = 0.5
)

// Rand is the random source used for seeding, wrapping and color picks.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
}

// Star is one point of the field. Opacity drifts without bound; only the
// drawn alpha is clamped.
type Star struct {
	X, Y        float64
	Size        float64
	Speed       float64
	Opacity     float64
	TwinkleRate float64
}

// Count returns the population for a w x h surface.
func Count(w, h float64) int {
	if w <= 0 || h <= 0 {
		return 0
	}
	return int(math.Floor(w * h / PixelsPerStar))
}

// Field owns the star population for one surface size.
type Field struct {
	width, height float64
	stars         []Star
	rng           Rand
}

// New seeds a field for a w x h surface.
func New(w, h float64, rng Rand) *Field {
	f := &Field{rng: rng}
	f.Resize(w, h)
	return f
}

// Resize adopts new dimensions and re-seeds the population for them.
func (f *Field) Resize(w, h float64) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	f.width, f.height = w, h

	n := Count(w, h)
	f.stars = make([]Star, n)
	for i := range f.stars {
		f.stars[i] = Star{
			X:           f.rng.Float64() * w,
			Y:           f.rng.Float64() * h,
			Size:        f.rng.Float64()*sizeSpan + sizeMin,
			Speed:       f.rng.Float64()*speedSpan + speedMin,
			Opacity:     f.rng.Float64()*opacitySpan + opacityMin,
			TwinkleRate: f.rng.Float64()*twinkleSpan + twinkleMin,
		}
	}
}

// Size returns the surface dimensions the field was seeded for.
func (f *Field) Size() (w, h float64) {
	return f.width, f.height
}

// Len returns the number of stars.
func (f *Field) Len() int {
	return len(f.stars)
}

// Stars returns a copy of the population.
func (f *Field) Stars() []Star {
	out := make([]Star, len(f.stars))
	copy(out, f.stars)
	return out
}

// SetStar replaces star i. Out of range indexes are ignored.
func (f *Field) SetStar(i int, s Star) {
	if i >= 0 && i < len(f.stars) {
		f.stars[i] = s
	}
}

// Advance moves every star one frame: drift left, wrap past the left
// margin, and apply the twinkle term for the given time.
func (f *Field) Advance(now time.Time) {
	ms := float64(now.UnixMilli())
	for i := range f.stars {
		s := &f.stars[i]
		s.X -= s.Speed
		if s.X < -WrapMargin {
			s.X = f.width + WrapMargin
			s.Y = f.rng.Float64() * f.height
		}
		s.Opacity += math.Sin(ms*s.TwinkleRate) * twinkleStep
	}
}

// Draw paints every star for mode. Star state is not modified.
func (f *Field) Draw(s canvas.Surface, mode theme.Mode) {
	if !canvas.Usable(s) {
		return
	}
	for _, star := range f.stars {
		st := f.StyleFor(star, mode)
		s.FillCircle(star.X, star.Y, star.Size, st.Fill, st.Alpha, st.Glow)
		if st.Sparkle {
			reach := star.Size * sparkleReach
			s.StrokeLine(star.X-reach, star.Y, star.X+reach, star.Y, sparkleLineWidth, st.SparkleColor, st.SparkleAlpha)
			s.StrokeLine(star.X, star.Y-reach, star.X, star.Y+reach, sparkleLineWidth, st.SparkleColor, st.SparkleAlpha)
		}
	}
}

// Frame advances the field and draws it.
func (f *Field) Frame(now time.Time, s canvas.Surface, mode theme.Mode) {
	f.Advance(now)
	f.Draw(s, mode)
}

// Style is how one star is painted on one frame.
type Style struct {
	Fill  color.NRGBA
	Alpha float64 // drawn alpha, always within [0.1, 1]
	Glow  canvas.Glow

	Sparkle      bool
	SparkleColor color.NRGBA
	SparkleAlpha float64
}

// StyleFor picks the paint for star in mode. In dark mode the fill color
// is random per call, so consecutive frames shimmer between palette colors.
func (f *Field) StyleFor(star Star, mode theme.Mode) Style {
	pal := theme.PaletteFor(mode)

	st := Style{
		Alpha: DrawnAlpha(star.Opacity),
		Glow: canvas.Glow{
			Blur:  star.Size * glowFactor,
			Color: pal.Glow,
		},
	}

	if mode.IsDark() {
		st.Fill = pal.Accent
		if f.rng.Float64() >= accentChance {
			idx := int(f.rng.Float64() * float64(len(pal.Stars)))
			if idx >= len(pal.Stars) {
				idx = len(pal.Stars) - 1
			}
			st.Fill = pal.Stars[idx]
		}
	} else {
		st.Fill = theme.WithAlpha(pal.Accent, star.Opacity*lightFillFactor)
	}

	if star.Size > sparkleThreshold {
		st.Sparkle = true
		st.SparkleColor = pal.Sparkle
		st.SparkleAlpha = clamp(star.Opacity*sparkleAlphaScale, 0, 1)
	}
	return st
}

// DrawnAlpha clamps a stored opacity to the drawable range.
func DrawnAlpha(opacity float64) float64 {
	return clamp(opacity, drawnAlphaMin, drawnAlphaMax)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
