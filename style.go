package termselect

import (
	"encoding/json"
	"fmt"
)

// ColorKind tags the form a Color was classified into when host data was ingested.
type ColorKind uint8

const (
	// ColorNone means no explicit color (the terminal default). Encodes as JSON null.
	ColorNone ColorKind = iota
	// ColorRGB is an explicit 24-bit color.
	ColorRGB
	// ColorIndexed references the 256-color palette by position.
	ColorIndexed
	// ColorUnknown is a color the host reported in a form that is neither RGB nor
	// palette-indexed. Value keeps its string form for diagnostics.
	ColorUnknown
)

// String returns the JSON type tag of the kind.
func (k ColorKind) String() string {
	switch k {
	case ColorRGB:
		return "rgb"
	case ColorIndexed:
		return "indexed"
	case ColorUnknown:
		return "unknown"
	default:
		return "none"
	}
}

// Color is a tagged union over the color forms a host can report.
// Only the fields belonging to Kind are set, so two colors compare equal with == exactly
// when they have the same kind and the same value for that kind.
type Color struct {
	Kind  ColorKind
	R     uint8
	G     uint8
	B     uint8
	Index int
	Value string
}

// RGB returns an explicit 24-bit color.
func RGB(r, g, b uint8) Color {
	return Color{Kind: ColorRGB, R: r, G: g, B: b}
}

// Indexed returns a palette color.
func Indexed(index int) Color {
	return Color{Kind: ColorIndexed, Index: index}
}

// UnknownColor returns an unclassified color carrying its string form.
func UnknownColor(value string) Color {
	return Color{Kind: ColorUnknown, Value: value}
}

// IsNone returns true if the color is absent.
func (c Color) IsNone() bool {
	return c.Kind == ColorNone
}

// String formats the color for humans (console output, logs).
func (c Color) String() string {
	switch c.Kind {
	case ColorRGB:
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	case ColorIndexed:
		return fmt.Sprintf("indexed(%d)", c.Index)
	case ColorUnknown:
		return c.Value
	default:
		return "default"
	}
}

type rgbJSON struct {
	Type  string `json:"type"`
	Red   uint8  `json:"red"`
	Green uint8  `json:"green"`
	Blue  uint8  `json:"blue"`
}

type indexedJSON struct {
	Type  string `json:"type"`
	Index int    `json:"index"`
}

type unknownJSON struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// MarshalJSON encodes the color as {type:"rgb",red,green,blue}, {type:"indexed",index},
// {type:"unknown",value} or null.
func (c Color) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case ColorRGB:
		return json.Marshal(rgbJSON{Type: "rgb", Red: c.R, Green: c.G, Blue: c.B})
	case ColorIndexed:
		return json.Marshal(indexedJSON{Type: "indexed", Index: c.Index})
	case ColorUnknown:
		return json.Marshal(unknownJSON{Type: "unknown", Value: c.Value})
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes the forms produced by MarshalJSON.
func (c *Color) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = Color{}
		return nil
	}

	var raw struct {
		Type  string `json:"type"`
		Red   uint8  `json:"red"`
		Green uint8  `json:"green"`
		Blue  uint8  `json:"blue"`
		Index int    `json:"index"`
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch raw.Type {
	case "rgb":
		*c = RGB(raw.Red, raw.Green, raw.Blue)
	case "indexed":
		*c = Indexed(raw.Index)
	case "unknown":
		*c = UnknownColor(raw.Value)
	default:
		return fmt.Errorf("unknown color type %q", raw.Type)
	}
	return nil
}

// Style is the rendering state of one character cell.
// Style is comparable: two styles are equal when every attribute and both colors match.
type Style struct {
	Bold          bool  `json:"bold"`
	Italic        bool  `json:"italic"`
	Underline     bool  `json:"underline"`
	Strikethrough bool  `json:"strikethrough"`
	Faint         bool  `json:"faint"`
	Inverse       bool  `json:"inverse"`
	Invisible     bool  `json:"invisible"`
	Blink         bool  `json:"blink"`
	Fg            Color `json:"fg_color"`
	Bg            Color `json:"bg_color"`
}

// StylesEqual reports whether two styles are equal. An absent (nil) style is equal only
// to another absent style.
func StylesEqual(a, b *Style) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Attributes returns the JSON names of the boolean attributes set on the style,
// in field order. Colors are not included.
func (s *Style) Attributes() []string {
	if s == nil {
		return nil
	}

	var names []string
	flags := []struct {
		name string
		set  bool
	}{
		{"bold", s.Bold},
		{"italic", s.Italic},
		{"underline", s.Underline},
		{"strikethrough", s.Strikethrough},
		{"faint", s.Faint},
		{"inverse", s.Inverse},
		{"invisible", s.Invisible},
		{"blink", s.Blink},
	}
	for _, f := range flags {
		if f.set {
			names = append(names, f.name)
		}
	}
	return names
}
