package termselect

import (
	"context"
	"fmt"
)

// StyleRun is a maximal span [Start, End) of columns within one line sharing one style.
type StyleRun struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Style *Style `json:"style"`
}

// LineResult is the selected part of one row together with its style runs.
type LineResult struct {
	LineNumber     int        `json:"line_number"`
	HardEOL        bool       `json:"hard_eol"`
	FullLineText   string     `json:"full_line_text"`
	SelectedText   string     `json:"selected_text"`
	SelectionStart int        `json:"selection_start"`
	SelectionEnd   int        `json:"selection_end"`
	Runs           []StyleRun `json:"runs"`
}

// ComputeLineResults fetches the rows covered by the first range of sel and partitions the
// selected part of each row into runs of uniform style.
//
// Returns ErrNoSelection if sel is empty, or a *FetchError if src cannot supply the rows.
func ComputeLineResults(ctx context.Context, sel Selection, src LineSource) ([]LineResult, error) {
	rng, err := sel.First()
	if err != nil {
		return nil, err
	}

	first := rng.Start.Row
	count := rng.Rows()

	lines, err := src.Lines(ctx, first, count)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	if len(lines) != count {
		return nil, &FetchError{Err: fmt.Errorf("got %d lines for rows %d..%d, want %d", len(lines), first, rng.End.Row, count)}
	}

	results := make([]LineResult, 0, count)
	for i, line := range lines {
		results = append(results, computeLineResult(first+i, line, rng))
	}
	return results, nil
}

// selectedColumns returns the column range of row covered by rng.
func selectedColumns(row, length int, rng Range) (start, end int) {
	switch {
	case row == rng.Start.Row && row == rng.End.Row:
		return rng.Start.Col, rng.End.Col
	case row == rng.Start.Row:
		return rng.Start.Col, length
	case row == rng.End.Row:
		return 0, rng.End.Col
	default:
		return 0, length
	}
}

func computeLineResult(row int, line Line, rng Range) LineResult {
	text := []rune(line.Text())
	start, end := selectedColumns(row, len(text), rng)

	result := LineResult{
		LineNumber:     row,
		HardEOL:        line.HardEOL(),
		FullLineText:   string(text),
		SelectionStart: start,
		SelectionEnd:   end,
		Runs:           []StyleRun{},
	}
	if end <= start {
		return result
	}

	result.SelectedText = string(text[clamp(start, 0, len(text)):clamp(end, 0, len(text))])
	result.Runs = styleRuns(text, line, max(start, 0), min(end, len(text)))
	return result
}

// pendingRun accumulates consecutive columns sharing one style.
type pendingRun struct {
	start int
	chars []rune
	style *Style
}

func (p *pendingRun) run() StyleRun {
	return StyleRun{
		Text:  string(p.chars),
		Start: p.start,
		End:   p.start + len(p.chars),
		Style: p.style,
	}
}

// styleRuns folds columns [start, end) of text into runs: extend the pending run while the
// style is equal, otherwise emit it and start a new one.
func styleRuns(text []rune, line Line, start, end int) []StyleRun {
	runs := []StyleRun{}
	var pending *pendingRun

	for col := start; col < end; col++ {
		style := line.StyleAt(col)

		if pending != nil && StylesEqual(pending.style, style) {
			pending.chars = append(pending.chars, text[col])
			continue
		}

		if pending != nil {
			runs = append(runs, pending.run())
		}
		pending = &pendingRun{start: col, chars: []rune{text[col]}, style: style}
	}

	if pending != nil {
		runs = append(runs, pending.run())
	}
	return runs
}

// clamp ensures the value is within the given range.
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
