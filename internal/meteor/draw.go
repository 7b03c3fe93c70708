package meteor

import (
	"image/color"
	"math"
	"time"

	"github.com/litescript/ls-starfield/internal/canvas"
	"github.com/litescript/ls-starfield/internal/theme"
)

// trailLayer is one gradient streak behind the head: transparent at the
// tail, mid alpha halfway, tip alpha at the head.
type trailLayer struct {
	length  float64
	mid     float64
	tip     float64
	opacity float64
}

var trailLayers = []trailLayer{
	{length: 80, mid: 0.6, tip: 0.9, opacity: 0.8},
	{length: 48, mid: 0.4, tip: 0.7, opacity: 0.6},
}

const (
	trailSegments = 6
	trailWidth    = 2.0

	auraRadius  = 16.0
	middleGlow  = 8.0
	coreRadius  = 4.0
	coreOpacity = 0.95

	// Stars fade over the last part of their flight.
	fadeStart = 0.7
)

// Draw paints every active star at its position for now. Stars that have
// finished their flight but are still awaiting removal are not drawn.
func (s *Spawner) Draw(surface canvas.Surface, now time.Time, mode theme.Mode) {
	if s.stopped || !canvas.Usable(surface) {
		return
	}
	accent := theme.PaletteFor(mode).Accent
	for _, st := range s.Active() {
		drawStar(surface, st, now, accent)
	}
}

func drawStar(surface canvas.Surface, st ShootingStar, now time.Time, accent color.NRGBA) {
	p := st.Progress(now)
	if p >= 1 || now.Before(st.SpawnedAt) {
		return
	}
	fade := 1.0
	if p > fadeStart {
		fade = (1 - p) / (1 - fadeStart)
	}

	x, y := st.Position(now)
	ux, uy := math.Cos(st.Angle()), math.Sin(st.Angle())

	for _, layer := range trailLayers {
		for i := 0; i < trailSegments; i++ {
			t0 := float64(i) / trailSegments
			t1 := float64(i+1) / trailSegments
			// t runs from the tail (0) to the head (1).
			ax, ay := x-ux*layer.length*(1-t0), y-uy*layer.length*(1-t0)
			bx, by := x-ux*layer.length*(1-t1), y-uy*layer.length*(1-t1)
			a := layer.gradient((t0+t1)/2) * layer.opacity * fade
			surface.StrokeLine(ax, ay, bx, by, trailWidth, accent, a)
		}
	}

	surface.FillCircle(x, y, auraRadius, theme.WithAlpha(accent, 0.3), fade,
		canvas.Glow{Blur: 12, Color: theme.WithAlpha(accent, 0.15)})
	surface.FillCircle(x, y, middleGlow, theme.WithAlpha(accent, 0.5), fade,
		canvas.Glow{Blur: 4, Color: theme.WithAlpha(accent, 0.25)})
	surface.FillCircle(x, y, coreRadius, accent, coreOpacity*fade,
		canvas.Glow{Blur: 8, Color: theme.WithAlpha(accent, 0.5)})
}

func (l trailLayer) gradient(t float64) float64 {
	if t <= 0.5 {
		return l.mid * t / 0.5
	}
	return l.mid + (l.tip-l.mid)*(t-0.5)/0.5
}
