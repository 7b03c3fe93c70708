// Package canvas defines the drawing surface the backdrop paints on, with a
// terminal cell implementation and a recording implementation for tests.
package canvas

import (
	"fmt"
	"image/color"
)

// Glow is a soft halo drawn around a filled shape.
type Glow struct {
	Blur  float64
	Color color.NRGBA
}

// Surface is a 2D drawing target in pixel space.
//
// alpha is a global opacity multiplied with the color's own alpha channel,
// the same way a canvas context combines globalAlpha with an rgba fill.
type Surface interface {
	Bounds() (w, h float64)
	Clear(bg color.NRGBA)
	FillCircle(x, y, r float64, fill color.NRGBA, alpha float64, glow Glow)
	StrokeLine(x0, y0, x1, y1, width float64, stroke color.NRGBA, alpha float64)
}

// Usable reports whether s can be drawn on.
func Usable(s Surface) bool {
	if s == nil {
		return false
	}
	w, h := s.Bounds()
	return w > 0 && h > 0
}

// EffectiveAlpha combines a global alpha with the color's alpha channel.
func EffectiveAlpha(c color.NRGBA, alpha float64) float64 {
	a := alpha * float64(c.A) / 255
	if a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}

// Blend composites fg at alpha over an opaque bg.
func Blend(fg, bg color.NRGBA, alpha float64) color.NRGBA {
	if alpha <= 0 {
		return color.NRGBA{R: bg.R, G: bg.G, B: bg.B, A: 0xFF}
	}
	if alpha > 1 {
		alpha = 1
	}
	mix := func(f, b uint8) uint8 {
		return uint8(float64(f)*alpha + float64(b)*(1-alpha) + 0.5)
	}
	return color.NRGBA{R: mix(fg.R, bg.R), G: mix(fg.G, bg.G), B: mix(fg.B, bg.B), A: 0xFF}
}

// Hex formats c as #RRGGBB, ignoring alpha.
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
