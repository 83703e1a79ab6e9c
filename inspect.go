package termselect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const (
	// AppName names the configuration directory.
	AppName = "termselect"
	// OutputFileName is the report file name inside the configuration directory.
	OutputFileName = "debug-output.json"
)

// DefaultOutputPath returns <home>/.config/termselect/debug-output.json.
func DefaultOutputPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, OutputFileName), nil
}

// ConfigDir returns <home>/.config/termselect.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}

// Inspector runs one selection inspection: fetch, stylize, report, print.
type Inspector struct {
	outputPath     string
	screenshotPath string
	highlight      bool
	now            func() time.Time
	logger         *slog.Logger
	console        io.Writer
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithOutputPath sets the report file path.
func WithOutputPath(path string) Option {
	return func(in *Inspector) {
		in.outputPath = path
	}
}

// WithScreenshot also renders the selected runs to a PNG at path.
func WithScreenshot(path string) Option {
	return func(in *Inspector) {
		in.screenshotPath = path
	}
}

// WithHighlight echoes the syntax highlighted report on the console.
func WithHighlight(enabled bool) Option {
	return func(in *Inspector) {
		in.highlight = enabled
	}
}

// WithClock sets the time source for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(in *Inspector) {
		in.now = now
	}
}

// WithLogger sets the structured logger. Defaults to discarding.
func WithLogger(logger *slog.Logger) Option {
	return func(in *Inspector) {
		in.logger = logger
	}
}

// WithConsole sets where the human-readable summary goes. Defaults to os.Stdout.
func WithConsole(w io.Writer) Option {
	return func(in *Inspector) {
		in.console = w
	}
}

// NewInspector creates an inspector. Without WithOutputPath the report goes to DefaultOutputPath.
func NewInspector(opts ...Option) (*Inspector, error) {
	in := &Inspector{
		now:     time.Now,
		logger:  slog.New(slog.DiscardHandler),
		console: os.Stdout,
	}

	for _, opt := range opts {
		opt(in)
	}

	if in.outputPath == "" {
		path, err := DefaultOutputPath()
		if err != nil {
			return nil, err
		}
		in.outputPath = path
	}

	return in, nil
}

// OutputPath returns where reports are written.
func (in *Inspector) OutputPath() string {
	return in.outputPath
}

// Run inspects the active selection of host and writes the report.
// A missing selection or a failed content fetch produces a failure report, not an error;
// any other failure is returned.
func (in *Inspector) Run(ctx context.Context, host Host) (*Report, error) {
	report, err := in.Inspect(ctx, host)
	if err != nil {
		return nil, err
	}

	if err := report.WriteFile(in.outputPath); err != nil {
		return report, err
	}
	in.logger.Info("report_written",
		slog.String("path", in.outputPath),
		slog.Bool("success", report.Success),
		slog.Int("lines", report.NumLines()))

	fmt.Fprintf(in.console, "Debug output written to: %s\n", in.outputPath)

	if report.Success && in.screenshotPath != "" {
		if err := WriteScreenshot(in.screenshotPath, report.Lines, &ScreenshotConfig{}); err != nil {
			return report, err
		}
		in.logger.Info("screenshot_written", slog.String("path", in.screenshotPath))
		fmt.Fprintf(in.console, "Screenshot written to: %s\n", in.screenshotPath)
	}

	if in.highlight {
		if err := Highlight(in.console, report); err != nil {
			return report, err
		}
	}

	if err := WriteSummary(in.console, report); err != nil {
		return report, err
	}
	return report, nil
}

// Inspect builds the report for the active selection of host without writing it.
func (in *Inspector) Inspect(ctx context.Context, host Host) (*Report, error) {
	sel, err := host.ActiveSelection(ctx)
	if err != nil {
		return nil, fmt.Errorf("get selection: %w", err)
	}
	in.logger.Debug("selection", slog.Int("ranges", len(sel.Ranges)))

	lines, err := ComputeLineResults(ctx, sel, host)
	if err != nil {
		var fetchErr *FetchError
		if errors.Is(err, ErrNoSelection) || errors.As(err, &fetchErr) {
			in.logger.Warn("inspection_failed", slog.String("error", err.Error()))
			return NewFailureReport(err, in.now()), nil
		}
		return nil, err
	}

	sessionID, err := host.SessionID(ctx)
	if err != nil {
		return nil, fmt.Errorf("get session id: %w", err)
	}

	return NewReport(sessionID, lines, in.now()), nil
}
