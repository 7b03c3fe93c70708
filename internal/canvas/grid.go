package canvas

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Default pixel size of one terminal cell.
const (
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0
)

// Shape bits accumulated per cell; the glyph is resolved at render time.
const (
	shapeDot uint8 = 1 << iota
	shapeHorizontal
	shapeVertical
	shapeDiagDown // ╲
	shapeDiagUp   // ╱
)

type cell struct {
	shape  uint8
	radius float64     // largest dot radius in pixels
	fg     color.NRGBA // composited foreground
	weight float64     // alpha of the strongest contributor
	bg     color.NRGBA
}

// Grid is a Surface backed by terminal cells. Pixel coordinates map onto
// cells of cellW x cellH pixels.
type Grid struct {
	cols, rows   int
	cellW, cellH float64
	background   color.NRGBA
	cells        []cell
}

// NewGrid creates a grid of cols x rows cells. Non-positive cell sizes fall
// back to the defaults.
func NewGrid(cols, rows int, cellW, cellH float64) *Grid {
	if cellW <= 0 {
		cellW = DefaultCellWidth
	}
	if cellH <= 0 {
		cellH = DefaultCellHeight
	}
	g := &Grid{cellW: cellW, cellH: cellH}
	g.Resize(cols, rows)
	return g
}

// Resize changes the grid dimensions and clears it.
func (g *Grid) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	g.cols, g.rows = cols, rows
	g.cells = make([]cell, cols*rows)
	g.Clear(g.background)
}

// Size returns the grid size in cells.
func (g *Grid) Size() (cols, rows int) {
	return g.cols, g.rows
}

// Bounds implements Surface.
func (g *Grid) Bounds() (float64, float64) {
	return float64(g.cols) * g.cellW, float64(g.rows) * g.cellH
}

// Clear implements Surface.
func (g *Grid) Clear(bg color.NRGBA) {
	bg.A = 0xFF
	g.background = bg
	for i := range g.cells {
		g.cells[i] = cell{fg: bg, bg: bg}
	}
}

func (g *Grid) at(x, y float64) *cell {
	if x < 0 || y < 0 {
		return nil
	}
	col := int(x / g.cellW)
	row := int(y / g.cellH)
	if col >= g.cols || row >= g.rows {
		return nil
	}
	return &g.cells[row*g.cols+col]
}

func (c *cell) paint(fill color.NRGBA, a float64) {
	if a < c.weight {
		return
	}
	c.weight = a
	c.fg = Blend(fill, c.bg, a)
}

// FillCircle implements Surface. A dot occupies the cell holding its center;
// glows wider than a cell tint the background of the surrounding cells.
func (g *Grid) FillCircle(x, y, r float64, fill color.NRGBA, alpha float64, glow Glow) {
	if glow.Blur >= g.cellW {
		g.tint(x, y, r+glow.Blur, glow.Color, alpha)
	}

	c := g.at(x, y)
	if c == nil {
		return
	}
	a := EffectiveAlpha(fill, alpha)
	if a <= 0 {
		return
	}
	c.shape |= shapeDot
	if r > c.radius {
		c.radius = r
	}
	c.paint(fill, a)
}

// tint blends glow into the background of every cell whose center lies
// within radius of (x, y), fading linearly with distance.
func (g *Grid) tint(x, y, radius float64, glow color.NRGBA, alpha float64) {
	a := EffectiveAlpha(glow, alpha)
	if a <= 0 || radius <= 0 {
		return
	}
	c0 := int(math.Floor((x - radius) / g.cellW))
	c1 := int(math.Floor((x + radius) / g.cellW))
	r0 := int(math.Floor((y - radius) / g.cellH))
	r1 := int(math.Floor((y + radius) / g.cellH))

	for row := max(r0, 0); row <= r1 && row < g.rows; row++ {
		for col := max(c0, 0); col <= c1 && col < g.cols; col++ {
			cx := (float64(col) + 0.5) * g.cellW
			cy := (float64(row) + 0.5) * g.cellH
			d := math.Hypot(cx-x, cy-y)
			if d > radius {
				continue
			}
			cl := &g.cells[row*g.cols+col]
			cl.bg = Blend(glow, cl.bg, a*(1-d/radius))
		}
	}
}

// StrokeLine implements Surface. The line is sampled at half-cell steps and
// every touched cell records the stroke orientation.
func (g *Grid) StrokeLine(x0, y0, x1, y1, width float64, stroke color.NRGBA, alpha float64) {
	a := EffectiveAlpha(stroke, alpha)
	if a <= 0 {
		return
	}

	dx, dy := x1-x0, y1-y0
	var shape uint8
	switch {
	case math.Abs(dx) >= 2*math.Abs(dy):
		shape = shapeHorizontal
	case math.Abs(dy) >= 2*math.Abs(dx):
		shape = shapeVertical
	case (dx > 0) == (dy > 0):
		shape = shapeDiagDown // screen y grows downward
	default:
		shape = shapeDiagUp
	}

	step := math.Min(g.cellW, g.cellH) / 2
	n := int(math.Ceil(math.Hypot(dx, dy)/step)) + 1
	var last *cell
	for i := 0; i < n; i++ {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		c := g.at(x0+dx*t, y0+dy*t)
		if c == nil || c == last {
			continue
		}
		last = c
		c.shape |= shape
		c.paint(stroke, a)
	}
}

// Glyph resolution for accumulated shapes.
func (c cell) glyph() rune {
	cross := c.shape&shapeHorizontal != 0 && c.shape&shapeVertical != 0
	switch {
	case c.shape&shapeDot != 0 && cross:
		return '✦'
	case c.shape&shapeDot != 0:
		switch {
		case c.radius < 1.2:
			return '·'
		case c.radius < 2.2:
			return '•'
		default:
			return '●'
		}
	case cross:
		return '┼'
	case c.shape&shapeHorizontal != 0:
		return '─'
	case c.shape&shapeVertical != 0:
		return '│'
	case c.shape&shapeDiagDown != 0 && c.shape&shapeDiagUp != 0:
		return '╳'
	case c.shape&shapeDiagDown != 0:
		return '╲'
	case c.shape&shapeDiagUp != 0:
		return '╱'
	default:
		return ' '
	}
}

// Glyph returns the resolved glyph at a cell, or ' ' out of range.
func (g *Grid) Glyph(col, row int) rune {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return ' '
	}
	return g.cells[row*g.cols+col].glyph()
}

// Lines returns the grid as plain text rows.
func (g *Grid) Lines() []string {
	lines := make([]string, g.rows)
	var b strings.Builder
	for row := 0; row < g.rows; row++ {
		b.Reset()
		for col := 0; col < g.cols; col++ {
			b.WriteRune(g.cells[row*g.cols+col].glyph())
		}
		lines[row] = b.String()
	}
	return lines
}

// Render returns the grid as text. With styled set, each run of cells that
// share colors is wrapped in a lipgloss style.
func (g *Grid) Render(styled bool) string {
	if !styled {
		return strings.Join(g.Lines(), "\n")
	}

	var b strings.Builder
	var run strings.Builder
	for row := 0; row < g.rows; row++ {
		var curFg, curBg string
		flush := func() {
			if run.Len() == 0 {
				return
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(curFg)).
				Background(lipgloss.Color(curBg))
			b.WriteString(style.Render(run.String()))
			run.Reset()
		}
		for col := 0; col < g.cols; col++ {
			c := g.cells[row*g.cols+col]
			fg, bg := Hex(c.fg), Hex(c.bg)
			if fg != curFg || bg != curBg {
				flush()
				curFg, curBg = fg, bg
			}
			run.WriteRune(c.glyph())
		}
		flush()
		if row < g.rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
