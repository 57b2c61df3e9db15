package core

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorKind distinguishes how a Color is interpreted.
type ColorKind uint8

const (
	// ColorNone means the color is unset and the channel inherits from
	// whatever is underneath it.
	ColorNone ColorKind = iota
	// ColorReset is the terminal's own default color.
	ColorReset
	// ColorRGB is a 24-bit true color.
	ColorRGB
	// ColorIndexed is a palette color (0-255).
	ColorIndexed
)

// Color is a terminal color. The zero value is unset.
type Color struct {
	Kind    ColorKind
	R, G, B uint8
	Index   uint8
}

// ColorDefault is the terminal's default color.
var ColorDefault = Color{Kind: ColorReset}

// Common colors.
var (
	ColorBlack    = ColorFromRGB(0, 0, 0)
	ColorWhite    = ColorFromRGB(255, 255, 255)
	ColorRed      = ColorFromRGB(205, 49, 49)
	ColorGreen    = ColorFromRGB(13, 188, 121)
	ColorYellow   = ColorFromRGB(229, 229, 16)
	ColorBlue     = ColorFromRGB(36, 114, 200)
	ColorDarkGray = ColorFromRGB(102, 102, 102)
	ColorGray     = ColorFromRGB(128, 128, 128)
)

// ColorFromRGB creates a true color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{Kind: ColorRGB, R: r, G: g, B: b}
}

// ColorFromIndex creates an indexed palette color.
func ColorFromIndex(index uint8) Color {
	return Color{Kind: ColorIndexed, Index: index}
}

// ColorFromHex parses "#RGB", "#RRGGBB", "RGB" or "RRGGBB".
func ColorFromHex(hex string) (Color, error) {
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return fromColorful(c), nil
}

// IsSet reports whether the color carries a value.
func (c Color) IsSet() bool {
	return c.Kind != ColorNone
}

// IsDefault reports whether this is the terminal default color.
func (c Color) IsDefault() bool {
	return c.Kind == ColorReset
}

// Or returns c if it is set, otherwise fallback.
func (c Color) Or(fallback Color) Color {
	if c.IsSet() {
		return c
	}
	return fallback
}

// String returns a representation used in logs and debug output.
func (c Color) String() string {
	switch c.Kind {
	case ColorReset:
		return "default"
	case ColorRGB:
		return c.ToHex()
	case ColorIndexed:
		return fmt.Sprintf("idx(%d)", c.Index)
	default:
		return "none"
	}
}

// ToHex returns "#RRGGBB" for true colors and "" otherwise.
func (c Color) ToHex() string {
	if c.Kind != ColorRGB {
		return ""
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Lighten moves an RGB color toward white. Other kinds are returned as is.
func (c Color) Lighten(amount float64) Color {
	return c.Blend(ColorWhite, amount)
}

// Darken moves an RGB color toward black. Other kinds are returned as is.
func (c Color) Darken(amount float64) Color {
	return c.Blend(ColorBlack, amount)
}

// Blend mixes two RGB colors in RGB space; 0 is c, 1 is other.
func (c Color) Blend(other Color, amount float64) Color {
	if c.Kind != ColorRGB || other.Kind != ColorRGB {
		return c
	}
	amount = max(0, min(1, amount))
	return fromColorful(c.colorful().BlendRgb(other.colorful(), amount))
}

// Dimmed returns a low-intensity variant used for filler glyphs. Unlike the
// DIM attribute it is a concrete color and cannot bleed into cells painted
// later on top of it.
func (c Color) Dimmed() Color {
	switch c.Kind {
	case ColorRGB:
		return ColorFromRGB(c.R/2, c.G/2, c.B/2)
	case ColorIndexed:
		if c.Index < 16 {
			return ColorFromRGB(50, 50, 50)
		}
		return ColorFromRGB(40, 40, 40)
	default:
		return ColorFromRGB(50, 50, 50)
	}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return ColorFromRGB(r, g, b)
}
