package termselect

import (
	"context"
	"errors"
)

// fakeLine is a Line with one style per rune.
type fakeLine struct {
	text    string
	styles  []*Style
	hardEOL bool
}

func (l *fakeLine) Text() string {
	return l.text
}

func (l *fakeLine) HardEOL() bool {
	return l.hardEOL
}

func (l *fakeLine) StyleAt(col int) *Style {
	if col < 0 || col >= len(l.styles) {
		return nil
	}
	return l.styles[col]
}

// uniformLine returns a hard-EOL line with every rune in style.
func uniformLine(text string, style *Style) *fakeLine {
	n := len([]rune(text))
	styles := make([]*Style, n)
	for i := range styles {
		styles[i] = style
	}
	return &fakeLine{text: text, styles: styles, hardEOL: true}
}

// fakeHost is a Host over in-memory lines starting at row first.
type fakeHost struct {
	first     int
	lines     []Line
	selection Selection
	selErr    error
	linesErr  error
	sessionID string
	calls     int
}

func (h *fakeHost) ActiveSelection(ctx context.Context) (Selection, error) {
	return h.selection, h.selErr
}

func (h *fakeHost) Lines(ctx context.Context, firstRow, count int) ([]Line, error) {
	h.calls++
	if h.linesErr != nil {
		return nil, h.linesErr
	}
	start := firstRow - h.first
	if start < 0 || start+count > len(h.lines) {
		return nil, errors.New("rows out of range")
	}
	return h.lines[start : start+count], nil
}

func (h *fakeHost) SessionID(ctx context.Context) (string, error) {
	return h.sessionID, nil
}
