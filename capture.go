package termselect

import (
	"context"
	"fmt"
	"sync"

	"github.com/danielgatis/go-ansicode"
)

const (
	// DefaultRows is the default viewport height of a Capture.
	DefaultRows = 24
	// DefaultCols is the default width of a Capture.
	DefaultCols = 80
	// tabWidth is the distance between tab stops.
	tabWidth = 8
)

// Capture decodes an ANSI byte stream into styled lines and serves them as a LineSource.
//
// It is a line decoder, not a terminal emulator: it follows printable input, line feeds,
// soft wraps, cursor movement and erasure within the viewport, and SGR attributes. Other
// control sequences are parsed and ignored. Every line ever written is kept; the last
// rows lines form the viewport (rows 0..rows-1) and earlier lines have negative rows.
//
// All operations are safe for concurrent use.
type Capture struct {
	mu sync.Mutex

	rows int
	cols int
	wrap bool

	lines []*capturedLine
	row   int // index into lines
	col   int

	template Style

	decoder *ansicode.Decoder
}

// CaptureOption configures a Capture.
type CaptureOption func(*Capture)

// WithCaptureSize sets the viewport height and line width. Non-positive values keep the defaults.
func WithCaptureSize(rows, cols int) CaptureOption {
	return func(c *Capture) {
		if rows > 0 {
			c.rows = rows
		}
		if cols > 0 {
			c.cols = cols
		}
	}
}

// WithWrap controls whether input past the last column starts a new, soft-wrapped line.
// When disabled, lines grow past the width. Enabled by default.
func WithWrap(enabled bool) CaptureOption {
	return func(c *Capture) {
		c.wrap = enabled
	}
}

// NewCapture creates an empty capture.
func NewCapture(opts ...CaptureOption) *Capture {
	c := &Capture{
		rows:  DefaultRows,
		cols:  DefaultCols,
		wrap:  true,
		lines: []*capturedLine{{}},
	}

	for _, opt := range opts {
		opt(c)
	}

	c.decoder = ansicode.NewDecoder(&decoderHandler{c: c})
	return c
}

// Rows returns the viewport height.
func (c *Capture) Rows() int {
	return c.rows
}

// Cols returns the line width.
func (c *Capture) Cols() int {
	return c.cols
}

// Write decodes raw bytes. Implements io.Writer.
func (c *Capture) Write(data []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.decoder.Write(data)
}

// WriteString is a convenience method that converts the string to bytes and calls Write.
func (c *Capture) WriteString(s string) (int, error) {
	return c.Write([]byte(s))
}

// Len returns the number of lines captured so far, including the line being written.
func (c *Capture) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// FirstRow returns the row number of the oldest captured line (0 or negative).
func (c *Capture) FirstRow() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return -c.base()
}

// Line returns a frozen copy of the line at row, or nil if row was never captured.
func (c *Capture) Line(row int) Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.base() + row
	if idx < 0 || idx >= len(c.lines) {
		return nil
	}
	return c.lines[idx].snapshot()
}

// Lines returns count frozen lines starting at firstRow. Implements LineSource.
func (c *Capture) Lines(ctx context.Context, firstRow, count int) ([]Line, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if count <= 0 {
		return []Line{}, nil
	}

	base := c.base()
	first, last := -base, len(c.lines)-base-1
	lastRow := firstRow + count - 1
	if firstRow < first || firstRow > last || lastRow < firstRow || lastRow > last {
		return nil, fmt.Errorf("%w: rows %d..%d (captured rows %d..%d)", ErrRowOutOfRange, firstRow, lastRow, first, last)
	}

	lines := make([]Line, 0, count)
	for idx := base + firstRow; idx <= base+lastRow; idx++ {
		lines = append(lines, c.lines[idx].snapshot())
	}
	return lines, nil
}

// base returns the index of viewport row 0.
func (c *Capture) base() int {
	return max(len(c.lines)-c.rows, 0)
}

// current returns the line under the cursor.
func (c *Capture) current() *capturedLine {
	return c.lines[c.row]
}

// newLine moves the cursor to the start of the next line, creating it if needed.
func (c *Capture) newLine() {
	c.row++
	for c.row >= len(c.lines) {
		c.lines = append(c.lines, &capturedLine{})
	}
	c.col = 0
}

// gotoRow moves the cursor to a viewport row, creating lines as needed.
func (c *Capture) gotoRow(row int) {
	if row < 0 {
		row = 0
	}
	if row >= c.rows {
		row = c.rows - 1
	}
	idx := c.base() + row
	for idx >= len(c.lines) {
		c.lines = append(c.lines, &capturedLine{})
	}
	c.row = idx
}

// viewportRow returns the viewport row of the cursor.
func (c *Capture) viewportRow() int {
	return c.row - c.base()
}

// put writes r with the current template at the cursor.
func (c *Capture) put(r rune) {
	width := runeWidth(r)

	// Zero-width characters (combining marks) are dropped
	if width == 0 {
		return
	}

	if c.wrap && c.col+width > c.cols {
		c.current().wrapped = true
		c.newLine()
	}

	line := c.current()
	line.grow(c.col + width - 1)
	line.unpair(c.col)
	if width == 2 {
		line.unpair(c.col + 1)
	}

	cell := &line.cells[c.col]
	cell.Char = r
	cell.Style = c.template
	cell.Flags = 0
	if width == 2 {
		cell.Flags = CellFlagWideChar
		spacer := &line.cells[c.col+1]
		spacer.Reset()
		spacer.Style = c.template
		spacer.Flags = CellFlagWideCharSpacer
	}

	c.col += width
}

// erase blanks columns [from, to) of the current line. to < 0 means end of line.
func (c *Capture) erase(from, to int) {
	line := c.current()
	if to < 0 || to > len(line.cells) {
		to = len(line.cells)
	}
	for col := max(from, 0); col < to; col++ {
		line.cells[col].Reset()
	}
}
