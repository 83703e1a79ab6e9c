package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/danielgatis/go-termselect"
	"github.com/danielgatis/go-termselect/tmux"
)

// captureFlags are shared by the commands that build a Capture.
type captureFlags struct {
	selection string
	rows      int
	cols      int
	sessionID string
}

func (f *captureFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.selection, "select", "s", "", "Selection as startCol,startRow:endCol,endRow (rows are viewport rows, negative in scrollback)")
	cmd.Flags().IntVar(&f.rows, "rows", 0, "Viewport height (default: config, terminal, or 24)")
	cmd.Flags().IntVar(&f.cols, "cols", 0, "Line width (default: config, terminal, or 80)")
	cmd.Flags().StringVar(&f.sessionID, "session-id", "", "Session identifier for the report (default: random)")
	_ = cmd.MarkFlagRequired("select")
}

// size resolves the capture size: flags, then config, then the size of the terminal on stdout.
func (f *captureFlags) size(cfg termselect.Config) (rows, cols int) {
	rows, cols = f.rows, f.cols
	if rows == 0 {
		rows = cfg.Rows
	}
	if cols == 0 {
		cols = cfg.Cols
	}
	if rows == 0 || cols == 0 {
		fd := int(os.Stdout.Fd())
		if term.IsTerminal(fd) {
			if w, h, err := term.GetSize(fd); err == nil {
				if rows == 0 {
					rows = h
				}
				if cols == 0 {
					cols = w
				}
			}
		}
	}
	return rows, cols
}

func (f *captureFlags) capture(cfg termselect.Config) *termselect.Capture {
	rows, cols := f.size(cfg)
	return termselect.NewCapture(termselect.WithCaptureSize(rows, cols))
}

func (f *captureFlags) host(capture *termselect.Capture) (termselect.Host, error) {
	rng, err := termselect.ParseRange(f.selection)
	if err != nil {
		return nil, err
	}
	sel := termselect.Selection{Ranges: []termselect.Range{rng}}
	return termselect.NewReplayHost(capture, sel, f.sessionID), nil
}

func newTmuxCmd(opts *options) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "tmux",
		Short: "Inspect the copy-mode selection of a tmux pane",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTmux(cmd.Context(), opts, target)
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", "Target pane (default: $TMUX_PANE)")
	return cmd
}

func runTmux(ctx context.Context, opts *options, target string) error {
	host := tmux.New(target, tmux.WithLogger(opts.logger()))
	return opts.inspect(ctx, host)
}

func newReplayCmd(opts *options) *cobra.Command {
	flags := &captureFlags{}

	cmd := &cobra.Command{
		Use:   "replay FILE",
		Short: "Inspect a selection of recorded terminal output (use - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[0])
			if err != nil {
				return err
			}

			capture := flags.capture(opts.cfg)
			if _, err := capture.Write(data); err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}

			host, err := flags.host(capture)
			if err != nil {
				return err
			}
			return opts.inspect(cmd.Context(), host)
		},
	}

	flags.register(cmd)
	return cmd
}

func newRunCmd(opts *options) *cobra.Command {
	flags := &captureFlags{}

	cmd := &cobra.Command{
		Use:   "run -- COMMAND [ARGS...]",
		Short: "Run a command in a pseudo terminal and inspect a selection of its output",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			capture := flags.capture(opts.cfg)
			if err := termselect.RunCommand(cmd.Context(), capture, args[0], args[1:]...); err != nil {
				return err
			}

			host, err := flags.host(capture)
			if err != nil {
				return err
			}
			return opts.inspect(cmd.Context(), host)
		},
	}

	flags.register(cmd)
	return cmd
}

func newMarkdownCmd(opts *options) *cobra.Command {
	flags := &captureFlags{}
	var style string

	cmd := &cobra.Command{
		Use:   "markdown FILE",
		Short: "Render Markdown for the terminal and inspect a selection of the result (use - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readInput(args[0])
			if err != nil {
				return err
			}

			if style == "" {
				style = opts.cfg.MarkdownStyle
			}
			capture := flags.capture(opts.cfg)
			rendered, err := termselect.RenderMarkdown(src, capture.Cols(), style)
			if err != nil {
				return err
			}
			if _, err := capture.WriteString(rendered); err != nil {
				return fmt.Errorf("decode rendered markdown: %w", err)
			}

			host, err := flags.host(capture)
			if err != nil {
				return err
			}
			return opts.inspect(cmd.Context(), host)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&style, "style", "", "glamour style: dark, light, notty, ... (default: config or dark)")
	return cmd
}

func readInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}
