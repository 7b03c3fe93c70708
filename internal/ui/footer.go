package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/litescript/ls-starfield/internal/canvas"
	"github.com/litescript/ls-starfield/internal/theme"
)

const brand = "ls-starfield"

func (m Model) renderFooter() string {
	palette := theme.PaletteFor(m.signal.Mode())
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(canvas.Hex(palette.Muted)))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(canvas.Hex(palette.Accent)))

	footer := "  " + renderBrand() + "  " + accentStyle.Render(m.Status())
	if m.statusMsg != "" {
		footer += "  " + dimStyle.Render(m.statusMsg)
	}

	if m.showHelp {
		m.help.ShowAll = true
		footer += "\n" + m.help.View(m.keys)
	} else {
		footer += "  " + dimStyle.Render("|") + "  " + m.help.View(m.keys)
	}
	return footer
}

// renderBrand renders the program name with a horizontal gradient.
func renderBrand() string {
	var b strings.Builder
	runes := []rune(brand)
	for col, r := range runes {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(gradientColor(col, len(runes))))
		b.WriteString(style.Render(string(r)))
	}
	return b.String()
}

// gradientColor returns a hex color for a position in the brand gradient:
// cyan -> purple -> pink.
func gradientColor(col, width int) string {
	xRatio := 0.0
	if width > 1 {
		xRatio = float64(col) / float64(width-1)
	}

	var r, g, b float64
	if xRatio < 0.5 {
		// Cyan to Purple
		t := xRatio / 0.5
		r = lerp(139, 189, t)
		g = lerp(233, 147, t)
		b = lerp(253, 249, t)
	} else {
		// Purple to Pink
		t := (xRatio - 0.5) / 0.5
		r = lerp(189, 255, t)
		g = lerp(147, 121, t)
		b = lerp(249, 198, t)
	}

	return fmt.Sprintf("#%02X%02X%02X", clampByte(r), clampByte(g), clampByte(b))
}

// lerp linear interpolation
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clampByte(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return int(v)
}

func plural(n int, noun string) string {
	s := humanize.Comma(int64(n)) + " " + noun
	if n != 1 {
		s += "s"
	}
	return s
}

func commaU(n uint64) string {
	return humanize.Comma(int64(n))
}
