// Command termselect dumps the selected text of a terminal session, with the style of
// every character, to ~/.config/termselect/debug-output.json.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/danielgatis/go-termselect"
)

// options collects global flags merged over the config file.
type options struct {
	configPath string
	output     string
	png        bool
	print      bool
	verbose    bool

	cfg termselect.Config
}

func main() {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "termselect",
		Short: "Dump the selected terminal text with per-character styles as JSON",
		Long: `termselect reads the selected text of a terminal session together with the
rendering attributes of every character and writes them to a JSON report.

Without a subcommand it inspects the copy-mode selection of the current tmux pane.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTmux(cmd.Context(), opts, "")
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default: ~/.config/termselect/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "", "Report path (default: ~/.config/termselect/debug-output.json)")
	rootCmd.PersistentFlags().BoolVar(&opts.png, "png", false, "Also render the selection to a PNG next to the report")
	rootCmd.PersistentFlags().BoolVar(&opts.print, "print", false, "Echo the highlighted report on the console")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newTmuxCmd(opts),
		newReplayCmd(opts),
		newRunCmd(opts),
		newMarkdownCmd(opts),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// load reads the config file and lets explicitly set flags override it.
func (o *options) load(cmd *cobra.Command) error {
	path := o.configPath
	if path == "" {
		var err error
		if path, err = termselect.DefaultConfigPath(); err != nil {
			return err
		}
	}

	cfg, err := termselect.LoadConfig(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = o.output
	}
	if flags.Changed("png") {
		cfg.PNG = o.png
	}
	if flags.Changed("print") {
		cfg.Print = o.print
	}
	if o.verbose {
		cfg.LogLevel = "debug"
	}

	o.cfg = cfg
	return nil
}

func (o *options) logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: o.cfg.Level()}))
}

// inspect runs an inspection against host with the merged settings.
func (o *options) inspect(ctx context.Context, host termselect.Host) error {
	output := o.cfg.Output
	if output == "" {
		var err error
		if output, err = termselect.DefaultOutputPath(); err != nil {
			return err
		}
	}

	inspectorOpts := []termselect.Option{
		termselect.WithOutputPath(output),
		termselect.WithLogger(o.logger()),
		termselect.WithHighlight(o.cfg.Print),
	}
	if o.cfg.PNG {
		inspectorOpts = append(inspectorOpts, termselect.WithScreenshot(termselect.ScreenshotPath(output)))
	}

	inspector, err := termselect.NewInspector(inspectorOpts...)
	if err != nil {
		return err
	}

	_, err = inspector.Run(ctx, host)
	return err
}
