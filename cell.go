package termselect

// CellFlags marks cells that belong to a wide character.
type CellFlags uint8

const (
	// CellFlagWideChar marks the first cell of a character that occupies 2 columns.
	CellFlagWideChar CellFlags = 1 << iota
	// CellFlagWideCharSpacer marks the second cell of a wide character. Spacers are not part of the line text.
	CellFlagWideCharSpacer
)

// Cell stores the character and style written to one column of a captured line.
type Cell struct {
	Char  rune
	Style Style
	Flags CellFlags
}

// blankCell is what unwritten columns read as.
func blankCell() Cell {
	return Cell{Char: ' '}
}

// HasFlag returns true if the specified flag is set.
func (c *Cell) HasFlag(flag CellFlags) bool {
	return c.Flags&flag != 0
}

// IsWideSpacer returns true if this is the second cell of a wide character.
func (c *Cell) IsWideSpacer() bool {
	return c.HasFlag(CellFlagWideCharSpacer)
}

// Reset turns the cell back into a blank.
func (c *Cell) Reset() {
	*c = blankCell()
}

// capturedLine is a row being written by the decoder.
type capturedLine struct {
	cells   []Cell
	wrapped bool // ended by running out of columns, not by a line feed
}

// grow pads the line with blank cells so that col is addressable.
func (l *capturedLine) grow(col int) {
	for len(l.cells) <= col {
		l.cells = append(l.cells, blankCell())
	}
}

// unpair blanks the other half of a wide character that covers col, so overwriting
// one half never leaves a dangling head or spacer.
func (l *capturedLine) unpair(col int) {
	if col < 0 || col >= len(l.cells) {
		return
	}
	cell := &l.cells[col]
	switch {
	case cell.IsWideSpacer() && col > 0:
		l.cells[col-1].Reset()
	case cell.HasFlag(CellFlagWideChar) && col+1 < len(l.cells):
		l.cells[col+1].Reset()
	}
}

// snapshot freezes the line into a Line, dropping wide character spacers.
func (l *capturedLine) snapshot() *frozenLine {
	f := &frozenLine{hardEOL: !l.wrapped}
	for i := range l.cells {
		cell := &l.cells[i]
		if cell.IsWideSpacer() {
			continue
		}
		ch := cell.Char
		if ch == 0 {
			ch = ' '
		}
		f.text = append(f.text, ch)
		f.styles = append(f.styles, cell.Style)
	}
	return f
}

// frozenLine is an immutable Line with one style per rune.
type frozenLine struct {
	text    []rune
	styles  []Style
	hardEOL bool
}

func (f *frozenLine) Text() string {
	return string(f.text)
}

func (f *frozenLine) HardEOL() bool {
	return f.hardEOL
}

func (f *frozenLine) StyleAt(col int) *Style {
	if col < 0 || col >= len(f.styles) {
		return nil
	}
	style := f.styles[col]
	return &style
}
