package termselect

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestRenderScreenshotSize(t *testing.T) {
	lines := []LineResult{
		{Runs: []StyleRun{{Text: "abc", Start: 2, End: 5}}},
		{Runs: []StyleRun{{Text: "d", Start: 0, End: 1}}},
	}

	img := RenderScreenshot(lines, &ScreenshotConfig{CellWidth: 8, CellHeight: 16})
	if got := img.Bounds().Dx(); got != 5*8 {
		t.Errorf("width = %d, want %d", got, 5*8)
	}
	if got := img.Bounds().Dy(); got != 2*16 {
		t.Errorf("height = %d, want %d", got, 2*16)
	}
}

func TestRenderScreenshotEmpty(t *testing.T) {
	img := RenderScreenshot(nil, nil)
	if img.Bounds().Empty() {
		t.Error("expected a non-empty image for an empty selection")
	}
}

func TestRenderScreenshotBackground(t *testing.T) {
	lines := []LineResult{
		{Runs: []StyleRun{{Text: " ", Start: 0, End: 1, Style: &Style{Bg: RGB(10, 20, 30)}}}},
	}

	img := RenderScreenshot(lines, &ScreenshotConfig{CellWidth: 4, CellHeight: 4})
	if got := img.RGBAAt(1, 1); got != (color.RGBA{10, 20, 30, 255}) {
		t.Errorf("pixel = %v, want background color", got)
	}
}

func TestRenderScreenshotInverse(t *testing.T) {
	lines := []LineResult{
		{Runs: []StyleRun{{Text: " ", Start: 0, End: 1, Style: &Style{Inverse: true, Fg: Indexed(1)}}}},
	}

	img := RenderScreenshot(lines, &ScreenshotConfig{CellWidth: 4, CellHeight: 4})
	if got := img.RGBAAt(1, 1); got != DefaultPalette[1] {
		t.Errorf("pixel = %v, want %v", got, DefaultPalette[1])
	}
}

func TestResolveColor(t *testing.T) {
	fg := color.RGBA{1, 1, 1, 255}
	bg := color.RGBA{2, 2, 2, 255}

	tests := []struct {
		name   string
		c      Color
		isFg   bool
		expect color.RGBA
	}{
		{"none fg", Color{}, true, fg},
		{"none bg", Color{}, false, bg},
		{"rgb", RGB(9, 8, 7), true, color.RGBA{9, 8, 7, 255}},
		{"indexed", Indexed(1), true, DefaultPalette[1]},
		{"indexed out of range", Indexed(300), false, bg},
		{"bright foreground", UnknownColor("named:bright-foreground"), true, DefaultPalette[15]},
		{"dim red", UnknownColor("named:dim-red"), true, dim(DefaultPalette[1])},
		{"unrecognized", UnknownColor("something"), false, bg},
	}

	for _, tt := range tests {
		got := resolveColor(tt.c, tt.isFg, &DefaultPalette, fg, bg)
		if got != tt.expect {
			t.Errorf("%s: resolveColor() = %v, want %v", tt.name, got, tt.expect)
		}
	}
}

func TestWriteScreenshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "shot.png")
	lines := []LineResult{{Runs: []StyleRun{{Text: "x", Start: 0, End: 1, Style: &Style{Underline: true}}}}}

	if err := WriteScreenshot(path, lines, nil); err != nil {
		t.Fatalf("WriteScreenshot() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Size() == 0 {
		t.Error("expected non-empty PNG")
	}
}
