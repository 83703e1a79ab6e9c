package termselect

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// previewLimit bounds the simple text echoed on the console.
const previewLimit = 500

// ObservedAttributes returns the sorted names of every boolean attribute set on any run.
func ObservedAttributes(lines []LineResult) []string {
	seen := make(map[string]struct{})
	for _, line := range lines {
		for _, run := range line.Runs {
			for _, name := range run.Style.Attributes() {
				seen[name] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteSummary prints a human-readable digest of the report.
func WriteSummary(w io.Writer, r *Report) error {
	renderer := lipgloss.NewRenderer(w)
	heading := renderer.NewStyle().Bold(true)
	failure := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))

	var b strings.Builder
	if !r.Success {
		fmt.Fprintf(&b, "\n%s %s\n", failure.Render("Error:"), r.Error)
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "\n%s\n", heading.Render(fmt.Sprintf("Selected %d lines", r.NumLines())))
	fmt.Fprintf(&b, "\n%s\n%s...\n", heading.Render("Simple text:"), truncateRunes(r.SimpleText, previewLimit))

	if attrs := ObservedAttributes(r.Lines); len(attrs) > 0 {
		fmt.Fprintf(&b, "\n%s %s\n", heading.Render("Styles found:"), strings.Join(attrs, ", "))
	} else {
		fmt.Fprintf(&b, "\nNo text styles (bold/italic/etc) found\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
