// Package tmux reads the copy-mode selection of a tmux pane and its styled contents,
// serving them to an inspection as a termselect.Host.
package tmux

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/danielgatis/go-termselect"
)

// Runner executes a tmux command and returns its standard output.
type Runner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// ExecRunner runs the tmux binary found in PATH.
type ExecRunner struct{}

// Run executes tmux with args.
func (ExecRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "tmux", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && stderr.Len() > 0 {
			return nil, fmt.Errorf("tmux %s: %w: %s", args[0], err, strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("tmux %s: %w", args[0], err)
	}
	return out, nil
}

// selectionFormat lists the copy-mode fields read by ActiveSelection, tab separated.
const selectionFormat = "#{selection_present}\t#{selection_start_x}\t#{selection_start_y}\t#{selection_end_x}\t#{selection_end_y}\t#{history_size}"

// Host is a termselect.Host backed by a tmux pane.
type Host struct {
	target string
	runner Runner
	logger *slog.Logger
}

// Option configures a Host.
type Option func(*Host)

// WithRunner replaces the command runner.
func WithRunner(r Runner) Option {
	return func(h *Host) {
		h.runner = r
	}
}

// WithLogger sets the structured logger. Defaults to discarding.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) {
		h.logger = logger
	}
}

// New creates a host for the pane target (e.g. "%3" or "work:1.0").
// An empty target means $TMUX_PANE, or the current pane when that is unset too.
func New(target string, opts ...Option) *Host {
	if target == "" {
		target = os.Getenv("TMUX_PANE")
	}

	h := &Host{
		target: target,
		runner: ExecRunner{},
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Target returns the pane target.
func (h *Host) Target() string {
	return h.target
}

// display runs display-message for the target pane and returns the trimmed output.
func (h *Host) display(ctx context.Context, format string) (string, error) {
	args := []string{"display-message", "-p"}
	if h.target != "" {
		args = append(args, "-t", h.target)
	}
	args = append(args, format)

	out, err := h.runner.Run(ctx, args...)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(out), "\r\n"), nil
}

// ActiveSelection returns the copy-mode selection of the pane. A pane that is not in copy
// mode or has nothing selected yields an empty selection.
//
// tmux reports rows counted from the top of the history, and columns as cells with an
// inclusive end. They are converted to viewport rows (negative in history) and to an
// exclusive end, then from cells to rune columns of the selected rows.
func (h *Host) ActiveSelection(ctx context.Context) (termselect.Selection, error) {
	out, err := h.display(ctx, selectionFormat)
	if err != nil {
		return termselect.Selection{}, err
	}

	h.logger.Debug("tmux_selection", slog.String("target", h.target), slog.String("raw", out))
	sel, err := parseSelection(out)
	if err != nil || sel.Empty() {
		return sel, err
	}

	rng, err := h.runeColumns(ctx, sel.Ranges[0])
	if err != nil {
		// Lines will fail the same way and the inspection reports it
		h.logger.Warn("tmux_selection_columns", slog.String("target", h.target), slog.String("error", err.Error()))
		return sel, nil
	}
	sel.Ranges[0] = rng
	return sel, nil
}

// runeColumns converts the cell columns tmux reports into rune columns of the decoded
// start and end rows, which differ once a wide character precedes the selection.
func (h *Host) runeColumns(ctx context.Context, rng termselect.Range) (termselect.Range, error) {
	lines, err := h.Lines(ctx, rng.Start.Row, 1)
	if err != nil {
		return rng, err
	}
	rng.Start.Col = cellToRune(lines[0].Text(), rng.Start.Col, false)

	if rng.End.Row != rng.Start.Row {
		if lines, err = h.Lines(ctx, rng.End.Row, 1); err != nil {
			return rng, err
		}
	}
	rng.End.Col = cellToRune(lines[0].Text(), rng.End.Col, true)
	return rng, nil
}

// cellToRune maps a cell column of text to a rune column. A start column counts the runes
// that end at or before cell, so a selection starting on the second half of a wide
// character still includes it. An end column counts the runes that start before cell.
// Cells past the text map one to one.
func cellToRune(text string, cell int, end bool) int {
	col, width := 0, 0
	for _, r := range text {
		w := termselect.StringWidth(string(r))
		if end && width >= cell {
			return col
		}
		if !end && width+w > cell {
			return col
		}
		width += w
		col++
	}
	return col + max(cell-width, 0)
}

func parseSelection(out string) (termselect.Selection, error) {
	fields := strings.Split(out, "\t")
	if len(fields) != 6 {
		return termselect.Selection{}, fmt.Errorf("unexpected selection output %q", out)
	}
	if fields[0] != "1" {
		return termselect.Selection{}, nil
	}

	var values [5]int
	for i, field := range fields[1:] {
		if field == "" {
			return termselect.Selection{}, nil
		}
		v, err := strconv.Atoi(field)
		if err != nil {
			return termselect.Selection{}, fmt.Errorf("parse selection field %d %q: %w", i+1, field, err)
		}
		values[i] = v
	}

	historySize := values[4]
	rng := termselect.Range{
		Start: termselect.Coordinate{Col: values[0], Row: values[1] - historySize},
		End:   termselect.Coordinate{Col: values[2], Row: values[3] - historySize},
	}.Normalize()
	rng.End.Col++

	return termselect.Selection{Ranges: []termselect.Range{rng}}, nil
}

// Lines captures count rows starting at firstRow with their escape sequences and decodes
// them. tmux does not export the wrap flag of a row, so a row is taken as soft wrapped when
// its text fills the pane width.
func (h *Host) Lines(ctx context.Context, firstRow, count int) ([]termselect.Line, error) {
	if count <= 0 {
		return nil, nil
	}

	widthOut, err := h.display(ctx, "#{pane_width}")
	if err != nil {
		return nil, err
	}
	width, err := strconv.Atoi(strings.TrimSpace(widthOut))
	if err != nil {
		return nil, fmt.Errorf("parse pane width %q: %w", widthOut, err)
	}

	lastRow := firstRow + count - 1
	args := []string{"capture-pane", "-p", "-e", "-N"}
	if h.target != "" {
		args = append(args, "-t", h.target)
	}
	args = append(args, "-S", strconv.Itoa(firstRow), "-E", strconv.Itoa(lastRow))

	out, err := h.runner.Run(ctx, args...)
	if err != nil {
		return nil, err
	}
	h.logger.Debug("tmux_capture",
		slog.String("target", h.target),
		slog.Int("first", firstRow),
		slog.Int("last", lastRow),
		slog.Int("bytes", len(out)))

	return decodeRows(ctx, out, width, count)
}

// decodeRows decodes captured rows. Attributes carry from one row to the next the way
// tmux emits them, so all rows go through one Capture.
func decodeRows(ctx context.Context, out []byte, width, count int) ([]termselect.Line, error) {
	out = bytes.TrimSuffix(out, []byte("\n"))

	capture := termselect.NewCapture(
		termselect.WithCaptureSize(count, width),
		termselect.WithWrap(false),
	)
	if _, err := capture.Write(out); err != nil {
		return nil, fmt.Errorf("decode capture: %w", err)
	}
	if got := capture.Len(); got != count {
		return nil, fmt.Errorf("tmux returned %d rows, want %d", got, count)
	}

	lines, err := capture.Lines(ctx, 0, count)
	if err != nil {
		return nil, err
	}

	for i, line := range lines {
		lines[i] = paneLine{
			Line:    line,
			wrapped: termselect.StringWidth(line.Text()) >= width,
		}
	}
	return lines, nil
}

// paneLine overrides the end-of-line flag of a decoded row.
type paneLine struct {
	termselect.Line
	wrapped bool
}

func (l paneLine) HardEOL() bool {
	return !l.wrapped
}

// SessionID returns "session:window.pane" for the target pane.
func (h *Host) SessionID(ctx context.Context) (string, error) {
	return h.display(ctx, "#{session_name}:#{window_index}.#{pane_index}")
}
