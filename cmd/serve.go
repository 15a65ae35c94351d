package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/luxescript/core/format"
	"github.com/gaurav-prasanna/luxescript/core/llm"
	"github.com/gaurav-prasanna/luxescript/core/style"
	"github.com/gaurav-prasanna/luxescript/server"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the browser workspace",
	Long: `Serve starts the editor with its live preview and export downloads.
Without provider credentials the workspace still starts; formatting then
answers 503 until a key is configured.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	if flagAddr != "" {
		cfg.Server.Addr = flagAddr
	}

	var formatter server.Formatter
	provider, err := llm.NewProvider(cfg)
	if err != nil {
		logger.Warn("formatting disabled", "provider", cfg.Provider, "error", err)
	} else {
		formatter = format.NewClient(provider,
			format.WithModel(cfg.Model),
			format.WithTemperature(cfg.Temperature),
			format.WithMaxTokens(cfg.MaxTokens),
			format.WithLogger(logger),
		)
	}

	srv := server.New(cfg, formatter, style.Default(), newExporter(), logger)
	return srv.ListenAndServe(ctx)
}
