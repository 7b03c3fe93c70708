// Package theme provides the dark/light display mode flag and its palettes.
package theme

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

// ErrUnknownMode is returned when a mode string is neither dark nor light.
var ErrUnknownMode = errors.New("unknown theme mode")

// Mode is the display mode.
type Mode int

const (
	Dark Mode = iota
	Light
)

func (m Mode) String() string {
	switch m {
	case Dark:
		return "dark"
	case Light:
		return "light"
	default:
		return "unknown"
	}
}

// IsDark reports whether m is the dark mode.
func (m Mode) IsDark() bool {
	return m == Dark
}

// Toggle returns the opposite mode.
func (m Mode) Toggle() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// ParseMode parses "dark" or "light" (case-insensitive, surrounding space ignored).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dark":
		return Dark, nil
	case "light":
		return Light, nil
	default:
		return Dark, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Dracula colors.
var (
	Cyan   = color.NRGBA{R: 0x8B, G: 0xE9, B: 0xFD, A: 0xFF}
	Purple = color.NRGBA{R: 0xBD, G: 0x93, B: 0xF9, A: 0xFF}
	Green  = color.NRGBA{R: 0x50, G: 0xFA, B: 0x7B, A: 0xFF}
	Orange = color.NRGBA{R: 0xFF, G: 0xB8, B: 0x6C, A: 0xFF}
	Yellow = color.NRGBA{R: 0xF1, G: 0xFA, B: 0x8C, A: 0xFF}

	SpaceBackground = color.NRGBA{R: 0x0D, G: 0x11, B: 0x17, A: 0xFF} // #0D1117
	LightBackground = color.NRGBA{R: 0xF8, G: 0xF8, B: 0xF2, A: 0xFF} // #F8F8F2
)

// Palette holds the colors used to paint one mode.
type Palette struct {
	Background color.NRGBA
	Accent     color.NRGBA
	// Stars is the variety pool used for the minority of stars in dark mode.
	Stars   []color.NRGBA
	Glow    color.NRGBA
	Sparkle color.NRGBA
	// Muted is used for footer and status text.
	Muted color.NRGBA
}

var (
	darkPalette = Palette{
		Background: SpaceBackground,
		Accent:     Cyan,
		Stars:      []color.NRGBA{Cyan, Purple, Green, Orange, Yellow},
		Glow:       Cyan,
		Sparkle:    Cyan,
		Muted:      color.NRGBA{R: 0x62, G: 0x72, B: 0xA4, A: 0xFF},
	}
	lightPalette = Palette{
		Background: LightBackground,
		Accent:     Cyan,
		Stars:      []color.NRGBA{Cyan},
		Glow:       WithAlpha(Cyan, 0.3),
		Sparkle:    WithAlpha(Cyan, 0.5),
		Muted:      color.NRGBA{R: 0x6B, G: 0x72, B: 0x80, A: 0xFF},
	}
)

// PaletteFor returns the palette for mode.
func PaletteFor(m Mode) Palette {
	if m == Light {
		return lightPalette
	}
	return darkPalette
}

// WithAlpha returns c with its alpha channel set to a (clamped to [0,1]).
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	c.A = uint8(a*255 + 0.5)
	return c
}
