package termselect

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// DefaultMarkdownStyle is the glamour style used when none is given.
const DefaultMarkdownStyle = "dark"

// RenderMarkdown converts Markdown to styled terminal output, word wrapped at width.
func RenderMarkdown(src []byte, width int, style string) (string, error) {
	if style == "" {
		style = DefaultMarkdownStyle
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}

	out, err := r.Render(string(src))
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
