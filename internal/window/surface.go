package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/litescript/ls-starfield/internal/canvas"
)

// glowLayers is how many translucent rings approximate a blur.
const glowLayers = 3

// Surface draws onto an ebiten image.
type Surface struct {
	img *ebiten.Image
}

// NewSurface wraps img. A nil image gives a surface with zero bounds.
func NewSurface(img *ebiten.Image) *Surface {
	return &Surface{img: img}
}

// Bounds implements canvas.Surface.
func (s *Surface) Bounds() (float64, float64) {
	if s == nil || s.img == nil {
		return 0, 0
	}
	b := s.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// Clear implements canvas.Surface.
func (s *Surface) Clear(bg color.NRGBA) {
	bg.A = 0xFF
	s.img.Fill(bg)
}

// FillCircle implements canvas.Surface.
func (s *Surface) FillCircle(x, y, r float64, fill color.NRGBA, alpha float64, glow canvas.Glow) {
	for _, ring := range glowRings(r, glow, alpha) {
		vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(ring.radius), ring.color, true)
	}
	a := canvas.EffectiveAlpha(fill, alpha)
	if a <= 0 || r <= 0 {
		return
	}
	vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(r), withAlpha(fill, a), true)
}

// StrokeLine implements canvas.Surface.
func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, stroke color.NRGBA, alpha float64) {
	a := canvas.EffectiveAlpha(stroke, alpha)
	if a <= 0 || width <= 0 {
		return
	}
	vector.StrokeLine(s.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), withAlpha(stroke, a), true)
}

type ring struct {
	radius float64
	color  color.NRGBA
}

// glowRings returns the halo rings drawn under a circle, outermost first.
// Outer rings are fainter so the stack fades toward the blur radius.
func glowRings(r float64, glow canvas.Glow, alpha float64) []ring {
	if glow.Blur <= 0 {
		return nil
	}
	base := canvas.EffectiveAlpha(glow.Color, alpha)
	if base <= 0 {
		return nil
	}
	rings := make([]ring, 0, glowLayers)
	for i := glowLayers; i >= 1; i-- {
		frac := float64(i) / glowLayers
		rings = append(rings, ring{
			radius: r + glow.Blur*frac,
			color:  withAlpha(glow.Color, base*(1-frac+1.0/glowLayers)/glowLayers),
		})
	}
	return rings
}

func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	c.A = uint8(a*255 + 0.5)
	return c
}
