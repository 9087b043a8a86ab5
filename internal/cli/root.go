// Package cli implements the framelog command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/framelog/internal/config"
	"github.com/wesleyorama2/framelog/internal/logging"
	"github.com/wesleyorama2/framelog/internal/status"
)

// Version is the framelog version, set at build time.
var Version = "dev"

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	dir        string
	logLevel   string
	logFile    string
	noColor    bool
	quiet      bool
}

// NewRootCmd builds the framelog command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "framelog",
		Short: "Record and analyze per-frame render times",
		Long: `framelog records the time between consecutive rendered frames, writes one
CSV row per frame while a capture session is active, and summarizes each
session with average and low-percentile FPS figures.

Recorded logs can be listed, analyzed, rendered as HTML or JSON reports,
and queried afterwards.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Configuration file (YAML or JSON)")
	flags.StringVarP(&opts.dir, "dir", "d", "", "Output directory for frame logs")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFile, "log-file", "", "Write structured logs to this file instead of stderr")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress status messages")

	root.AddCommand(
		newRecordCmd(opts),
		newListCmd(opts),
		newAnalyzeCmd(opts),
		newReportCmd(opts),
		newQueryCmd(),
		newWatchCmd(opts),
	)

	return root
}

// Execute runs the root command.
func Execute() error {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// loadConfig reads the configuration file, if any, and applies flag
// overrides on top of it.
func loadConfig(cmd *cobra.Command, opts *globalOptions) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.Output.Dir = opts.dir
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if flags.Changed("log-file") {
		cfg.Logging.File = opts.logFile
	}
	if flags.Changed("no-color") {
		cfg.Status.NoColor = opts.noColor
	}
	if flags.Changed("quiet") {
		cfg.Status.Quiet = opts.quiet
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newConsole(cmd *cobra.Command, cfg *config.Config) *status.Console {
	return status.NewConsole(status.ConsoleConfig{
		Writer:  cmd.OutOrStdout(),
		NoColor: cfg.Status.NoColor,
		Quiet:   cfg.Status.Quiet,
	})
}

func newLogger(cfg *config.Config) (*logging.Logger, error) {
	return logging.NewLogger(cfg.Logging.File, cfg.Logging.Level)
}
