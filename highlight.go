package termselect

import (
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2/quick"
)

// Highlight writes the encoded report to w with JSON syntax highlighting for a 256-color terminal.
func Highlight(w io.Writer, r *Report) error {
	data, err := r.Encode()
	if err != nil {
		return err
	}
	if err := quick.Highlight(w, string(data), "json", "terminal256", "monokai"); err != nil {
		return fmt.Errorf("highlight report: %w", err)
	}
	return nil
}
