package termselect

import (
	"context"
	"errors"
	"testing"
)

func captureLine(t *testing.T, c *Capture, row int) Line {
	t.Helper()
	line := c.Line(row)
	if line == nil {
		t.Fatalf("Line(%d) = nil", row)
	}
	return line
}

func TestCaptureLines(t *testing.T) {
	c := NewCapture(WithCaptureSize(5, 20))
	c.WriteString("first\nsecond\r\nthird")

	if got := c.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}

	lines, err := c.Lines(context.Background(), 0, 3)
	if err != nil {
		t.Fatalf("Lines() error = %v", err)
	}

	want := []string{"first", "second", "third"}
	for i, w := range want {
		if got := lines[i].Text(); got != w {
			t.Errorf("lines[%d].Text() = %q, want %q", i, got, w)
		}
		if !lines[i].HardEOL() {
			t.Errorf("lines[%d] expected hard EOL", i)
		}
	}
}

func TestCaptureDefaults(t *testing.T) {
	c := NewCapture()
	if c.Rows() != DefaultRows || c.Cols() != DefaultCols {
		t.Errorf("size = %dx%d, want %dx%d", c.Rows(), c.Cols(), DefaultRows, DefaultCols)
	}

	c = NewCapture(WithCaptureSize(0, -1))
	if c.Rows() != DefaultRows || c.Cols() != DefaultCols {
		t.Errorf("non-positive size should keep defaults, got %dx%d", c.Rows(), c.Cols())
	}
}

func TestCaptureSoftWrap(t *testing.T) {
	c := NewCapture(WithCaptureSize(5, 5))
	c.WriteString("abcdefg\n")

	first := captureLine(t, c, 0)
	if first.Text() != "abcde" {
		t.Errorf("row 0 = %q, want %q", first.Text(), "abcde")
	}
	if first.HardEOL() {
		t.Error("row 0 expected soft EOL")
	}

	second := captureLine(t, c, 1)
	if second.Text() != "fg" {
		t.Errorf("row 1 = %q, want %q", second.Text(), "fg")
	}
	if !second.HardEOL() {
		t.Error("row 1 expected hard EOL")
	}
}

func TestCaptureNoWrap(t *testing.T) {
	c := NewCapture(WithCaptureSize(5, 5), WithWrap(false))
	c.WriteString("abcdefg")

	if got := c.Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1", got)
	}
	if got := captureLine(t, c, 0).Text(); got != "abcdefg" {
		t.Errorf("row 0 = %q, want %q", got, "abcdefg")
	}
}

func TestCaptureScrollbackRows(t *testing.T) {
	c := NewCapture(WithCaptureSize(2, 10))
	c.WriteString("a\nb\nc\nd")

	if got := c.FirstRow(); got != -2 {
		t.Errorf("FirstRow() = %d, want -2", got)
	}

	tests := []struct {
		row  int
		want string
	}{
		{-2, "a"},
		{-1, "b"},
		{0, "c"},
		{1, "d"},
	}
	for _, tt := range tests {
		if got := captureLine(t, c, tt.row).Text(); got != tt.want {
			t.Errorf("Line(%d) = %q, want %q", tt.row, got, tt.want)
		}
	}

	if c.Line(2) != nil || c.Line(-3) != nil {
		t.Error("expected nil for rows outside the capture")
	}
}

func TestCaptureLinesOutOfRange(t *testing.T) {
	c := NewCapture(WithCaptureSize(3, 10))
	c.WriteString("only")

	_, err := c.Lines(context.Background(), 0, 2)
	if !errors.Is(err, ErrRowOutOfRange) {
		t.Errorf("error = %v, want ErrRowOutOfRange", err)
	}

	_, err = c.Lines(context.Background(), -1, 1)
	if !errors.Is(err, ErrRowOutOfRange) {
		t.Errorf("error = %v, want ErrRowOutOfRange", err)
	}
}

func TestCaptureLinesCanceled(t *testing.T) {
	c := NewCapture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Lines(ctx, 0, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestCaptureAttributes(t *testing.T) {
	c := NewCapture()
	c.WriteString("\x1b[1;3mA\x1b[0mB\x1b[4mC\x1b[24mD\x1b[2mE\x1b[22mF\x1b[7mG\x1b[27mH\x1b[8mI\x1b[28m\x1b[9mJ\x1b[29m\x1b[5mK\x1b[0m")

	line := captureLine(t, c, 0)
	if got := line.Text(); got != "ABCDEFGHIJK" {
		t.Fatalf("Text() = %q", got)
	}

	tests := []struct {
		col  int
		want Style
	}{
		{0, Style{Bold: true, Italic: true}},
		{1, Style{}},
		{2, Style{Underline: true}},
		{3, Style{}},
		{4, Style{Faint: true}},
		{5, Style{}},
		{6, Style{Inverse: true}},
		{7, Style{}},
		{8, Style{Invisible: true}},
		{9, Style{Strikethrough: true}},
		{10, Style{Blink: true}},
	}
	for _, tt := range tests {
		got := line.StyleAt(tt.col)
		if got == nil {
			t.Fatalf("StyleAt(%d) = nil", tt.col)
		}
		if *got != tt.want {
			t.Errorf("StyleAt(%d) = %+v, want %+v", tt.col, *got, tt.want)
		}
	}

	if line.StyleAt(11) != nil || line.StyleAt(-1) != nil {
		t.Error("expected nil style outside the line")
	}
}

func TestCaptureColors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		fg    Color
		bg    Color
	}{
		{"ansi red", "\x1b[31mx", Indexed(1), Color{}},
		{"bright red", "\x1b[91mx", Indexed(9), Color{}},
		{"ansi background", "\x1b[44mx", Color{}, Indexed(4)},
		{"256 color", "\x1b[38;5;22mx", Indexed(22), Color{}},
		{"256 background", "\x1b[48;5;200mx", Color{}, Indexed(200)},
		{"truecolor", "\x1b[38;2;255;128;0mx", RGB(255, 128, 0), Color{}},
		{"truecolor background", "\x1b[48;2;1;2;3mx", Color{}, RGB(1, 2, 3)},
		{"default foreground", "\x1b[31m\x1b[39mx", Color{}, Color{}},
		{"default background", "\x1b[41m\x1b[49mx", Color{}, Color{}},
		{"reset", "\x1b[31;42m\x1b[0mx", Color{}, Color{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCapture()
			c.WriteString(tt.input)

			style := captureLine(t, c, 0).StyleAt(0)
			if style.Fg != tt.fg {
				t.Errorf("Fg = %v, want %v", style.Fg, tt.fg)
			}
			if style.Bg != tt.bg {
				t.Errorf("Bg = %v, want %v", style.Bg, tt.bg)
			}
		})
	}
}

func TestCaptureWideChars(t *testing.T) {
	c := NewCapture(WithCaptureSize(5, 10))
	c.WriteString("a中\x1b[1m文\x1b[0mb")

	line := captureLine(t, c, 0)
	if got := line.Text(); got != "a中文b" {
		t.Fatalf("Text() = %q, want %q", got, "a中文b")
	}
	if !line.StyleAt(2).Bold {
		t.Error("expected the third rune to be bold")
	}
	if line.StyleAt(3).Bold {
		t.Error("expected the fourth rune to be plain")
	}
}

func TestCaptureWideCharWrap(t *testing.T) {
	c := NewCapture(WithCaptureSize(5, 3))
	c.WriteString("ab中")

	if got := captureLine(t, c, 0).Text(); got != "ab" {
		t.Errorf("row 0 = %q, want %q", got, "ab")
	}
	if got := captureLine(t, c, 1).Text(); got != "中" {
		t.Errorf("row 1 = %q, want %q", got, "中")
	}
}

func TestCaptureCursorEditing(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"carriage return overwrite", "hello\rj", "jello"},
		{"backspace", "abc\bX", "abX"},
		{"tab", "a\tb", "a       b"},
		{"erase right", "hello\x1b[3D\x1b[K", "he"},
		{"erase left", "hello\x1b[3D\x1b[1K", "   lo"},
		{"erase line", "hello\x1b[2K", ""},
		{"erase chars", "hello\x1b[4D\x1b[2X", "h  lo"},
		{"delete chars", "hello\x1b[4D\x1b[2P", "hlo"},
		{"insert blank", "hello\x1b[4D\x1b[2@", "h  ello"},
		{"column address", "hello\x1b[2GX", "hXllo"},
		{"cursor forward", "a\x1b[3Cb", "a   b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCapture()
			c.WriteString(tt.input)

			if got := captureLine(t, c, 0).Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCaptureCursorPosition(t *testing.T) {
	c := NewCapture(WithCaptureSize(3, 10))
	c.WriteString("\x1b[3;2Hx\x1b[1;1Hy")

	if got := c.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}
	if got := captureLine(t, c, 0).Text(); got != "y" {
		t.Errorf("row 0 = %q, want %q", got, "y")
	}
	if got := captureLine(t, c, 2).Text(); got != " x" {
		t.Errorf("row 2 = %q, want %q", got, " x")
	}
}

func TestCaptureResetState(t *testing.T) {
	c := NewCapture()
	c.WriteString("\x1b[1mold\nlines\x1bcnew")

	if got := c.Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1", got)
	}
	line := captureLine(t, c, 0)
	if line.Text() != "new" {
		t.Errorf("Text() = %q, want %q", line.Text(), "new")
	}
	if line.StyleAt(0).Bold {
		t.Error("expected attributes to be reset")
	}
}

func TestCaptureLineIsFrozen(t *testing.T) {
	c := NewCapture()
	c.WriteString("abc")

	line := captureLine(t, c, 0)
	c.WriteString("\rxyz")

	if got := line.Text(); got != "abc" {
		t.Errorf("frozen Text() = %q, want %q", got, "abc")
	}
	if got := captureLine(t, c, 0).Text(); got != "xyz" {
		t.Errorf("current Text() = %q, want %q", got, "xyz")
	}
}

func TestCaptureAsLineSource(t *testing.T) {
	c := NewCapture()
	c.WriteString("plain \x1b[1mbold\x1b[0m\n")

	sel := NewSelection(Coordinate{Col: 0, Row: 0}, Coordinate{Col: 10, Row: 0})
	lines, err := ComputeLineResults(context.Background(), sel, c)
	if err != nil {
		t.Fatalf("ComputeLineResults() error = %v", err)
	}

	runs := lines[0].Runs
	if len(runs) != 2 {
		t.Fatalf("len(Runs) = %d, want 2: %+v", len(runs), runs)
	}
	if runs[0].Text != "plain " || runs[0].Style.Bold {
		t.Errorf("runs[0] = %+v", runs[0])
	}
	if runs[1].Text != "bold" || !runs[1].Style.Bold {
		t.Errorf("runs[1] = %+v", runs[1])
	}
}

func TestCaptureLinesHugeRange(t *testing.T) {
	c := NewCapture(WithCaptureSize(3, 10))
	c.WriteString("one\ntwo")

	_, err := c.Lines(context.Background(), 0, 1<<40)
	if !errors.Is(err, ErrRowOutOfRange) {
		t.Errorf("error = %v, want ErrRowOutOfRange", err)
	}

	sel := NewSelection(Coordinate{Col: 0, Row: 0}, Coordinate{Col: 1, Row: 1 << 40})
	_, err = ComputeLineResults(context.Background(), sel, c)
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Errorf("ComputeLineResults() error = %v, want *FetchError", err)
	}
}

func TestCaptureOverwriteWideChar(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"narrow over first half", "中\rx", "x "},
		{"narrow over second half", "a中\x1b[3Gy", "a y"},
		{"wide over second half of wide", "中文\x1b[2G日", " 日 "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCapture()
			c.WriteString(tt.input)

			if got := captureLine(t, c, 0).Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}
