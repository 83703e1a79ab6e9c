package termselect

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ScreenshotConfig controls how selected runs are rendered to an image.
type ScreenshotConfig struct {
	// Font face to use for rendering. If nil, uses basicfont.Face7x13.
	Font font.Face

	// CellWidth and CellHeight override the cell dimensions.
	// If zero, derived from font metrics.
	CellWidth  int
	CellHeight int

	// Palette is the 256-color palette. If nil, uses DefaultPalette.
	Palette *[256]color.RGBA

	// DefaultFG is the default foreground color. If nil, uses DefaultForeground.
	DefaultFG *color.RGBA

	// DefaultBG is the default background color. If nil, uses DefaultBackground.
	DefaultBG *color.RGBA
}

// LoadFont loads a TrueType or OpenType font from a file path.
func LoadFont(path string, size float64) (font.Face, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}

	return opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// cellSize returns the cell dimensions for cfg and face.
func (cfg *ScreenshotConfig) cellSize(face font.Face) (width, height int) {
	width, height = cfg.CellWidth, cfg.CellHeight
	if width == 0 {
		adv, _ := face.GlyphAdvance('M')
		width = adv.Ceil()
		if width == 0 {
			width = 7 // fallback for basicfont
		}
	}
	if height == 0 {
		height = face.Metrics().Height.Ceil()
	}
	return width, height
}

// RenderScreenshot draws the selected runs of each line, one line per row, starting at
// the selection start column of the line.
func RenderScreenshot(lines []LineResult, cfg *ScreenshotConfig) *image.RGBA {
	if cfg == nil {
		cfg = &ScreenshotConfig{}
	}

	face := cfg.Font
	if face == nil {
		face = basicfont.Face7x13
	}
	cellWidth, cellHeight := cfg.cellSize(face)

	palette := cfg.Palette
	if palette == nil {
		palette = &DefaultPalette
	}
	defaultFG := DefaultForeground
	if cfg.DefaultFG != nil {
		defaultFG = *cfg.DefaultFG
	}
	defaultBG := DefaultBackground
	if cfg.DefaultBG != nil {
		defaultBG = *cfg.DefaultBG
	}

	cols := 1
	for _, line := range lines {
		for _, run := range line.Runs {
			cols = max(cols, run.End)
		}
	}
	rows := max(len(lines), 1)

	img := image.NewRGBA(image.Rect(0, 0, cols*cellWidth, rows*cellHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(defaultBG), image.Point{}, draw.Src)

	ascent := face.Metrics().Ascent.Ceil()
	for row, line := range lines {
		for _, run := range line.Runs {
			fg, bg := defaultFG, defaultBG
			style := run.Style
			if style != nil {
				fg = resolveColor(style.Fg, true, palette, defaultFG, defaultBG)
				bg = resolveColor(style.Bg, false, palette, defaultFG, defaultBG)
				if style.Inverse {
					fg, bg = bg, fg
				}
				if style.Faint {
					fg = dim(fg)
				}
			}

			for i, ch := range []rune(run.Text) {
				x := (run.Start + i) * cellWidth
				y := row * cellHeight
				cell := image.Rect(x, y, x+cellWidth, y+cellHeight)
				draw.Draw(img, cell, image.NewUniform(bg), image.Point{}, draw.Src)

				if style != nil && style.Invisible {
					continue
				}

				baseline := y + ascent
				if ch != ' ' {
					d := &font.Drawer{
						Dst:  img,
						Src:  image.NewUniform(fg),
						Face: face,
						Dot:  fixed.P(x, baseline),
					}
					d.DrawString(string(ch))
				}

				if style != nil && style.Underline {
					hline(img, x, x+cellWidth, min(baseline+2, y+cellHeight-1), fg)
				}
				if style != nil && style.Strikethrough {
					hline(img, x, x+cellWidth, y+cellHeight/2, fg)
				}
			}
		}
	}

	return img
}

func hline(img *image.RGBA, x0, x1, y int, c color.RGBA) {
	for x := x0; x < x1; x++ {
		img.SetRGBA(x, y, c)
	}
}

// WriteScreenshot renders lines and writes the PNG to path.
func WriteScreenshot(path string, lines []LineResult, cfg *ScreenshotConfig) error {
	img := RenderScreenshot(lines, cfg)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create screenshot directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create screenshot: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode screenshot: %w", err)
	}
	return f.Close()
}
