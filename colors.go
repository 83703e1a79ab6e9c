package termselect

import (
	"fmt"
	"image/color"

	"github.com/danielgatis/go-ansicode"
)

// DefaultPalette is the standard 256-color palette: 16 named colors (0-15), 216 color cube (16-231), 24 grayscale (232-255).
var DefaultPalette = [256]color.RGBA{
	// Standard colors (0-7)
	{0, 0, 0, 255},       // Black
	{205, 49, 49, 255},   // Red
	{13, 188, 121, 255},  // Green
	{229, 229, 16, 255},  // Yellow
	{36, 114, 200, 255},  // Blue
	{188, 63, 188, 255},  // Magenta
	{17, 168, 205, 255},  // Cyan
	{229, 229, 229, 255}, // White

	// Bright colors (8-15)
	{102, 102, 102, 255}, // Bright Black
	{241, 76, 76, 255},   // Bright Red
	{35, 209, 139, 255},  // Bright Green
	{245, 245, 67, 255},  // Bright Yellow
	{59, 142, 234, 255},  // Bright Blue
	{214, 112, 214, 255}, // Bright Magenta
	{41, 184, 219, 255},  // Bright Cyan
	{255, 255, 255, 255}, // Bright White
}

func init() {
	// 216 color cube (16-231)
	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				DefaultPalette[i] = color.RGBA{R: uint8(r * 51), G: uint8(g * 51), B: uint8(b * 51), A: 255}
				i++
			}
		}
	}

	// Grayscale (232-255)
	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		DefaultPalette[232+j] = color.RGBA{gray, gray, gray, 255}
	}
}

// DefaultForeground is the default text color (light gray).
var DefaultForeground = color.RGBA{229, 229, 229, 255}

// DefaultBackground is the default background color (black).
var DefaultBackground = color.RGBA{0, 0, 0, 255}

// Named color indices reported by the decoder beyond the 16 ANSI colors.
const (
	namedColorForeground       = 256
	namedColorBackground       = 257
	namedColorCursor           = 258
	namedColorDimBlack         = 259
	namedColorDimWhite         = 266
	namedColorBrightForeground = 267
	namedColorDimForeground    = 268
)

var dimColorNames = [...]string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// namedColorValue returns the string form kept for a named color that is neither a palette
// entry nor the default. Returns "" for names it does not know.
func namedColorValue(name int) string {
	switch {
	case name == namedColorCursor:
		return "named:cursor"
	case name >= namedColorDimBlack && name <= namedColorDimWhite:
		return "named:dim-" + dimColorNames[name-namedColorDimBlack]
	case name == namedColorBrightForeground:
		return "named:bright-foreground"
	case name == namedColorDimForeground:
		return "named:dim-foreground"
	default:
		return ""
	}
}

// classifyColor decides the Color form of an SGR color attribute once, at ingestion.
// RGB and 256-color values map directly, the 16 ANSI colors become palette indices, the
// default foreground and background become ColorNone, and any other named color is kept
// as an unclassified value.
func classifyColor(attr ansicode.TerminalCharAttribute) Color {
	switch {
	case attr.RGBColor != nil:
		return RGB(attr.RGBColor.R, attr.RGBColor.G, attr.RGBColor.B)

	case attr.IndexedColor != nil:
		return Indexed(int(attr.IndexedColor.Index))

	case attr.NamedColor != nil:
		name := int(*attr.NamedColor)
		switch {
		case name >= 0 && name < 16:
			return Indexed(name)
		case name == namedColorForeground, name == namedColorBackground:
			return Color{}
		}
		if value := namedColorValue(name); value != "" {
			return UnknownColor(value)
		}
		return UnknownColor(fmt.Sprintf("named:%d", name))
	}

	return Color{}
}

// resolveColor converts a Color to RGBA for rendering.
func resolveColor(c Color, fg bool, palette *[256]color.RGBA, defaultFG, defaultBG color.RGBA) color.RGBA {
	def := defaultBG
	if fg {
		def = defaultFG
	}

	switch c.Kind {
	case ColorRGB:
		return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
	case ColorIndexed:
		if c.Index >= 0 && c.Index < 256 {
			return palette[c.Index]
		}
		return def
	case ColorUnknown:
		return resolveUnknownColor(c.Value, palette, defaultFG, def)
	default:
		return def
	}
}

// resolveUnknownColor maps the named values produced by classifyColor back to RGBA.
func resolveUnknownColor(value string, palette *[256]color.RGBA, defaultFG, def color.RGBA) color.RGBA {
	switch value {
	case "named:cursor":
		return defaultFG
	case "named:bright-foreground":
		return palette[15]
	case "named:dim-foreground":
		return dim(defaultFG)
	}
	for i, name := range dimColorNames {
		if value == "named:dim-"+name {
			return dim(palette[i])
		}
	}
	return def
}

// dim darkens a color to 66% as faint text is drawn.
func dim(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.66),
		G: uint8(float64(c.G) * 0.66),
		B: uint8(float64(c.B) * 0.66),
		A: c.A,
	}
}
