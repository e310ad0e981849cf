package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"spinframe/internal/config"
	"spinframe/internal/logging"
	"spinframe/internal/pipeline"
	"spinframe/internal/report"

	"github.com/spf13/cobra"
)

// app carries state shared by every subcommand.
type app struct {
	stdout io.Writer

	configPath  string
	verbose     bool
	quiet       bool
	metricsFile string
	inputDir    string
	extension   string

	cfg *config.Config
}

func newRootCommand(stdout io.Writer) *cobra.Command {
	a := &app{stdout: stdout}

	rootCmd := &cobra.Command{
		Use:           "spinframe",
		Short:         "Build budgeted thumbnails and a looping GIF from product photos",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" || cmd.Name() == "help" {
				return nil
			}
			return a.prepare(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "TOML configuration file")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "Only log warnings and errors")
	flags.StringVar(&a.metricsFile, "metrics-file", "", "Write Prometheus textfile metrics to this path")
	flags.StringVarP(&a.inputDir, "input", "i", "", "Directory of source photos")
	flags.StringVar(&a.extension, "ext", "", "Source file extension (default .jpg)")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.AddCommand(newThumbnailsCommand(a))
	rootCmd.AddCommand(newAnimateCommand(a))
	rootCmd.AddCommand(newAllCommand(a))
	rootCmd.AddCommand(newVersionCommand(a))

	return rootCmd
}

// prepare resolves the configuration and process-wide state before a
// pipeline command runs.
func (a *app) prepare(cmd *cobra.Command) error {
	switch {
	case a.verbose:
		logging.SetLevel(logging.LevelDebug)
	case a.quiet:
		logging.SetLevel(logging.LevelWarn)
	}

	cfg, err := config.Load(strings.TrimSpace(a.configPath))
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Source.InputDir = a.inputDir
	}
	if flags.Changed("ext") {
		cfg.Source.Extension = a.extension
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = a.metricsFile
	}
	if apply, ok := commandOverrides[cmd.Name()]; ok {
		apply(cmd, cfg)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	source := "defaults"
	if a.configPath != "" {
		source = a.configPath
	}
	cfg.Log(source)

	if err := pipeline.Setup(cfg); err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

func (a *app) console() *report.Console {
	return report.NewConsole(a.stdout)
}

// settle turns a pipeline error into the command result. Missing input has
// already been reported on the console and is not a failure.
func settle(err error) error {
	if errors.Is(err, pipeline.ErrMissingInput) {
		logging.Info("%v", err)
		return nil
	}
	return err
}

func runThumbnails(ctx context.Context, a *app) error {
	_, err := pipeline.Thumbnails(ctx, a.cfg, a.console())
	return settle(err)
}

func runAnimation(ctx context.Context, a *app) error {
	_, err := pipeline.Animation(ctx, a.cfg, a.console())
	return settle(err)
}

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(a.stdout, config.GetBuildInfo())
		},
	}
}
