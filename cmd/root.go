// Package cmd implements the CLI commands for pagemd using Cobra.
package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/gaurav-prasanna/pagemd/core/config"
	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagVerbose bool
	flagLogJSON bool

	// Populated by the root command before any subcommand runs.
	cfg    config.Config
	logger *slog.Logger
)

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
)

var rootCmd = &cobra.Command{
	Use:   "pagemd",
	Short: "pagemd converts HTML pages into clean Markdown",
	Long: `pagemd converts HTML documents, local files or whole sites into Markdown,
with optional JSON and PDF renderings of the result.

Usage:
  pagemd convert <source>... [flags]
  pagemd serve [flags]`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(cmd.ErrOrStderr(), flagVerbose, flagLogJSON)
		slog.SetDefault(logger)

		loaded, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: ./"+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagLogJSON, "log-json", false, "Log as JSON")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		failColor.Fprintf(os.Stderr, "✗ Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer, verbose, jsonOut bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if jsonOut {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// statusf prints a coloured progress line.
func statusf(w io.Writer, c *color.Color, format string, args ...any) {
	c.Fprintf(w, format+"\n", args...)
}
