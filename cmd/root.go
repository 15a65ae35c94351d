// Package cmd implements the LuxeScript CLI using Cobra.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/luxescript/config"
	"github.com/gaurav-prasanna/luxescript/core/export"
	"github.com/gaurav-prasanna/luxescript/core/render"
)

var (
	flagConfig    string
	flagLogLevel  string
	flagLogFormat string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "luxescript",
	Short: "LuxeScript turns raw manuscripts into luxury e-books",
	Long: `LuxeScript sends a manuscript to an LLM with a chosen formatting style
and exports the resulting book as HTML, PDF, Markdown or JSON.

Usage:
  luxescript format <file|url|-> [flags]
  luxescript export <fragment.html> [flags]
  luxescript serve`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return err
		}
		if flagLogLevel != "" {
			cfg.Log.Level = flagLogLevel
		}
		if flagLogFormat != "" {
			cfg.Log.Format = flagLogFormat
		}
		logger = config.InitLogger(os.Stderr, cfg.Log.Level, cfg.Log.Format)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ~/.config/luxescript/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format: text or json")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newExporter wires the PDF rasterizer from the configured fonts directory.
// A rasterizer that cannot be built leaves PDF export disabled.
func newExporter() *export.Exporter {
	var rasterizer render.Rasterizer
	r, err := render.NewFpdfRasterizer(cfg.FontsDir, logger)
	if err != nil {
		logger.Warn("PDF export disabled", "fonts_dir", cfg.FontsDir, "error", err)
	} else {
		rasterizer = r
	}
	return export.New(rasterizer, logger)
}
