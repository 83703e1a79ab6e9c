package termselect

import "context"

// Line is one row of terminal contents as reported by a host.
type Line interface {
	// Text returns the characters of the row. Columns index its runes.
	Text() string

	// HardEOL returns true if the row ends with a real line break rather than a soft wrap.
	HardEOL() bool

	// StyleAt returns the style of the character at col, or nil if the host has none.
	StyleAt(col int) *Style
}

// LineSource supplies rows of terminal contents.
type LineSource interface {
	// Lines returns count rows starting at firstRow, in row order.
	Lines(ctx context.Context, firstRow, count int) ([]Line, error)
}

// Host is the terminal session an inspection reads from.
type Host interface {
	LineSource

	// ActiveSelection returns the current selection. An empty Selection means nothing is selected.
	ActiveSelection(ctx context.Context) (Selection, error)

	// SessionID identifies the session in the report.
	SessionID(ctx context.Context) (string, error)
}
