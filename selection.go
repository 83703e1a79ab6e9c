package termselect

import (
	"fmt"
	"strconv"
	"strings"
)

// Coordinate identifies a character cell. Row is relative to the top of the visible
// viewport: negative rows are in scrollback. Col is zero-based within the row.
type Coordinate struct {
	Col int
	Row int
}

// Before returns true if c comes before other in reading order (top-to-bottom, left-to-right).
func (c Coordinate) Before(other Coordinate) bool {
	if c.Row != other.Row {
		return c.Row < other.Row
	}
	return c.Col < other.Col
}

// Range is one contiguous selected span. End.Col is exclusive on the last row.
type Range struct {
	Start Coordinate
	End   Coordinate
}

// Normalize returns the range with Start before or equal to End.
func (r Range) Normalize() Range {
	if r.End.Before(r.Start) {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

// Rows returns the number of rows the range spans.
func (r Range) Rows() int {
	return r.End.Row - r.Start.Row + 1
}

// Selection is the active selection of a session. A single gesture can produce several
// disjoint ranges; only the first one is inspected.
type Selection struct {
	Ranges []Range
}

// NewSelection returns a selection holding a single range.
func NewSelection(start, end Coordinate) Selection {
	return Selection{Ranges: []Range{{Start: start, End: end}}}
}

// Empty returns true if nothing is selected.
func (s Selection) Empty() bool {
	return len(s.Ranges) == 0
}

// First returns the first range with its rows in order. A range that ends on an earlier row
// is swapped; a single-row range is returned as given, so an end column at or before the
// start column selects nothing. Returns ErrNoSelection if the selection is empty.
func (s Selection) First() (Range, error) {
	if s.Empty() {
		return Range{}, ErrNoSelection
	}
	rng := s.Ranges[0]
	if rng.End.Row < rng.Start.Row {
		rng = Range{Start: rng.End, End: rng.Start}
	}
	return rng, nil
}

// ParseRange parses "startCol,startRow:endCol,endRow", e.g. "0,0:5,0" or "3,-2:10,1".
func ParseRange(s string) (Range, error) {
	startPart, endPart, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Range{}, fmt.Errorf("invalid range %q: want startCol,startRow:endCol,endRow", s)
	}

	start, err := parseCoordinate(startPart)
	if err != nil {
		return Range{}, fmt.Errorf("invalid range %q: %w", s, err)
	}
	end, err := parseCoordinate(endPart)
	if err != nil {
		return Range{}, fmt.Errorf("invalid range %q: %w", s, err)
	}

	return Range{Start: start, End: end}, nil
}

func parseCoordinate(s string) (Coordinate, error) {
	colPart, rowPart, ok := strings.Cut(s, ",")
	if !ok {
		return Coordinate{}, fmt.Errorf("invalid coordinate %q", s)
	}
	col, err := strconv.Atoi(strings.TrimSpace(colPart))
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid column %q", colPart)
	}
	if col < 0 {
		return Coordinate{}, fmt.Errorf("negative column %d", col)
	}
	row, err := strconv.Atoi(strings.TrimSpace(rowPart))
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid row %q", rowPart)
	}
	return Coordinate{Col: col, Row: row}, nil
}
