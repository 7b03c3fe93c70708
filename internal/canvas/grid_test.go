package canvas

import (
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.NRGBA{A: 255}
)

func TestBlend(t *testing.T) {
	tests := []struct {
		alpha float64
		want  uint8
	}{
		{0, 0},
		{1, 255},
		{0.5, 128},
		{2, 255}, // clamped
	}

	for _, tt := range tests {
		got := Blend(white, black, tt.alpha)
		assert.Equal(t, tt.want, got.R, "Blend(white, black, %v)", tt.alpha)
		assert.Equal(t, uint8(255), got.A)
	}
}

func TestHex(t *testing.T) {
	c := color.NRGBA{R: 0x8B, G: 0xE9, B: 0xFD, A: 0x10}
	assert.Equal(t, "#8BE9FD", Hex(c))
}

func TestEffectiveAlpha(t *testing.T) {
	half := color.NRGBA{A: 128}
	assert.InDelta(t, 0.5, EffectiveAlpha(half, 1), 0.01)
	assert.Equal(t, 0.0, EffectiveAlpha(white, -3), "negative alpha clamps to 0")
	assert.Equal(t, 1.0, EffectiveAlpha(white, 3), "alpha above 1 clamps to 1")
}

func TestUsable(t *testing.T) {
	assert.False(t, Usable(nil))
	assert.False(t, Usable(NewGrid(0, 10, 0, 0)), "zero-width grid")
	assert.True(t, Usable(NewGrid(10, 10, 0, 0)))
}

func TestGrid_Bounds(t *testing.T) {
	g := NewGrid(200, 50, 0, 0)
	w, h := g.Bounds()
	assert.Equal(t, 1600.0, w)
	assert.Equal(t, 800.0, h)
}

func TestGrid_DotGlyphs(t *testing.T) {
	tests := []struct {
		radius float64
		want   rune
	}{
		{0.5, '·'},
		{1.5, '•'},
		{2.5, '●'},
	}

	for _, tt := range tests {
		g := NewGrid(4, 4, 8, 16)
		g.FillCircle(12, 20, tt.radius, white, 1, Glow{})
		assert.Equal(t, tt.want, g.Glyph(1, 1), "radius %v", tt.radius)
	}
}

func TestGrid_SparkleCross(t *testing.T) {
	g := NewGrid(4, 4, 8, 16)
	g.FillCircle(12, 24, 2, white, 1, Glow{})
	g.StrokeLine(10, 24, 14, 24, 0.5, white, 0.3)
	g.StrokeLine(12, 22, 12, 26, 0.5, white, 0.3)

	assert.Equal(t, '✦', g.Glyph(1, 1))
}

func TestGrid_LineOrientation(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 float64
		want           rune
	}{
		{"horizontal", 0, 8, 31, 8, '─'},
		{"vertical", 4, 0, 4, 63, '│'},
		{"down-right", 0, 0, 31, 40, '╲'},
		{"up-right", 0, 40, 31, 0, '╱'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(4, 4, 8, 16)
			g.StrokeLine(tt.x0, tt.y0, tt.x1, tt.y1, 1, white, 1)
			assert.Contains(t, strings.Join(g.Lines(), "\n"), string(tt.want))
		})
	}
}

func TestGrid_OutOfBoundsIgnored(t *testing.T) {
	g := NewGrid(2, 2, 8, 16)
	g.FillCircle(-5, 3, 1, white, 1, Glow{})
	g.FillCircle(100, 3, 1, white, 1, Glow{})
	g.StrokeLine(-50, -50, -10, -10, 1, white, 1)

	for _, line := range g.Lines() {
		assert.Empty(t, strings.TrimSpace(line))
	}
}

func TestGrid_StrongestColorWins(t *testing.T) {
	g := NewGrid(1, 1, 8, 16)
	g.Clear(black)
	g.FillCircle(4, 8, 1, white, 1, Glow{})
	g.FillCircle(4, 8, 1, color.NRGBA{R: 255, A: 255}, 0.2, Glow{})

	assert.Equal(t, white, g.cells[0].fg)
}

func TestGrid_WideGlowTintsNeighbors(t *testing.T) {
	g := NewGrid(5, 3, 8, 16)
	g.Clear(black)
	g.FillCircle(20, 24, 4, white, 1, Glow{Blur: 16, Color: white})

	center := g.cells[1*5+2].bg
	far := g.cells[0*5+0].bg
	assert.NotZero(t, center.R, "center cell background should be tinted")
	assert.Zero(t, far.R, "corner cell should be untouched")
}

func TestGrid_RenderPlainAndStyled(t *testing.T) {
	g := NewGrid(3, 2, 8, 16)
	g.FillCircle(12, 8, 0.5, white, 1, Glow{})

	assert.Equal(t, " · \n   ", g.Render(false))

	styled := g.Render(true)
	assert.Contains(t, styled, "·")
	assert.Equal(t, 1, strings.Count(styled, "\n"), "styled render should have 2 rows")
}

func TestRecorder(t *testing.T) {
	r := NewRecorder(100, 50)
	r.FillCircle(1, 2, 3, white, 1, Glow{})
	r.Clear(black)
	r.FillCircle(1, 2, 3, white, 1, Glow{})
	r.StrokeLine(0, 0, 1, 1, 0.5, white, 0.3)

	assert.Equal(t, 1, r.Count(OpClear))
	assert.Equal(t, 1, r.Count(OpCircle))
	assert.Equal(t, 1, r.Count(OpLine))

	lines := r.Filter(OpLine)
	require.Len(t, lines, 1)
	assert.Equal(t, 0.5, lines[0].Width)
}
