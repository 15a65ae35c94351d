package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/luxescript/core"
	"github.com/gaurav-prasanna/luxescript/core/export"
	"github.com/gaurav-prasanna/luxescript/core/extract"
	"github.com/gaurav-prasanna/luxescript/core/fetch"
	"github.com/gaurav-prasanna/luxescript/core/format"
	"github.com/gaurav-prasanna/luxescript/core/llm"
	"github.com/gaurav-prasanna/luxescript/core/output"
	"github.com/gaurav-prasanna/luxescript/core/style"
)

var (
	flagStyle     string
	flagLanguage  string
	flagFont      string
	flagPreserve  bool
	flagProvider  string
	flagModel     string
	flagOutputDir string
	flagExport    []string
	flagTitle     string
	flagAuthor    string
	flagPublisher string
	flagYear      string
)

var formatCmd = &cobra.Command{
	Use:   "format <file|url|->",
	Short: "Format a manuscript into a luxury e-book",
	Long: `Format reads a manuscript (a file, an http(s) URL, or "-" for stdin),
asks the configured LLM provider to lay it out in the chosen style, and
exports the book in each requested format.

Examples:
  luxescript format notes.txt
  luxescript format draft.html --style juridical-elite --export pdf,html
  cat essay.txt | luxescript format - --style minimalist-zen --language en
  luxescript format https://example.com/chapter.html --provider deepseek --output-dir ./out`,
	Args: cobra.ExactArgs(1),
	RunE: runFormat,
}

func init() {
	rootCmd.AddCommand(formatCmd)

	formatCmd.Flags().StringVar(&flagStyle, "style", "", "Style id or legacy mode (standard, juridical)")
	formatCmd.Flags().StringVar(&flagLanguage, "language", "", "Output language: pt or en")
	formatCmd.Flags().BoolVar(&flagPreserve, "preserve", true, "Keep the original wording")
	formatCmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider (see 'luxescript providers')")
	formatCmd.Flags().StringVar(&flagModel, "model", "", "Model override")
	addExportFlags(formatCmd)
}

// addExportFlags registers the flags shared by format and export.
func addExportFlags(c *cobra.Command) {
	c.Flags().StringVar(&flagFont, "font", "", "Typeface: playfair, garamond, bodoni, trajan")
	c.Flags().StringSliceVar(&flagExport, "export", []string{export.FormatHTML}, "Export formats: html, pdf, markdown, json")
	c.Flags().StringVar(&flagOutputDir, "output-dir", "", "Output directory (default: current directory)")
	c.Flags().StringVar(&flagTitle, "title", "", "Book title")
	c.Flags().StringVar(&flagAuthor, "author", "", "Book author")
	c.Flags().StringVar(&flagPublisher, "publisher", "", "Publisher")
	c.Flags().StringVar(&flagYear, "year", "", "Publication year")
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runFormat(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	if flagProvider != "" {
		cfg.Provider = flagProvider
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if flagModel != "" {
		cfg.Model = flagModel
	}

	req := core.FormatRequest{
		Style:           cfg.Style,
		Language:        cfg.LanguageValue(),
		PreserveContent: cfg.PreserveContent,
	}
	if flagStyle != "" {
		req.Style = flagStyle
	}
	if flagLanguage != "" {
		lang, err := core.ParseLanguage(flagLanguage)
		if err != nil {
			return err
		}
		req.Language = lang
	}
	if cmd.Flags().Changed("preserve") {
		req.PreserveContent = flagPreserve
	}

	opts, meta, err := exportSettings(req.Language)
	if err != nil {
		return err
	}

	loader := fetch.NewLoader()
	loader.Clean = extract.New().Sanitize
	content, err := loader.Load(ctx, args[0])
	if err != nil {
		return fmt.Errorf("loading manuscript: %w", err)
	}
	req.Content = content

	provider, err := llm.NewProvider(cfg)
	if err != nil {
		return err
	}
	client := format.NewClient(provider,
		format.WithModel(cfg.Model),
		format.WithTemperature(cfg.Temperature),
		format.WithMaxTokens(cfg.MaxTokens),
		format.WithLogger(logger),
	)

	fmt.Fprintln(os.Stderr, format.ProgressMessage(style.Canonical(req.Style)))
	fragment, err := client.Format(ctx, req)
	if errors.Is(err, core.ErrEmptyInput) {
		logger.Info("manuscript is empty, nothing to format", "source", args[0])
		return nil
	}
	if err != nil {
		return err
	}

	return writeExports(ctx, fragment, meta, opts)
}

// exportSettings merges the metadata and font flags over the config.
func exportSettings(lang core.Language) (core.RenderOptions, core.BookMetadata, error) {
	opts := core.RenderOptions{Font: cfg.FontValue(), Language: lang}
	if flagFont != "" {
		font, err := core.ParseFont(flagFont)
		if err != nil {
			return opts, core.BookMetadata{}, err
		}
		opts.Font = font
	}

	meta := cfg.Metadata
	for dst, src := range map[*string]string{
		&meta.Title:     flagTitle,
		&meta.Author:    flagAuthor,
		&meta.Publisher: flagPublisher,
		&meta.Year:      flagYear,
	} {
		if src != "" {
			*dst = src
		}
	}
	return opts, meta, nil
}

// writeExports renders fragment in every requested format and writes the
// artifacts. A failed format is reported and the rest still run.
func writeExports(ctx context.Context, fragment string, meta core.BookMetadata, opts core.RenderOptions) error {
	outputDir := flagOutputDir
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	writer, err := output.New(outputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	exporter := newExporter()
	var errCount int
	for _, f := range flagExport {
		artifact, err := exporter.Export(ctx, f, fragment, meta, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", f, err)
			errCount++
			continue
		}
		if artifact == nil {
			fmt.Fprintf(os.Stderr, "- %s: skipped\n", f)
			continue
		}
		path, err := writer.Write(artifact)
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", f, err)
			errCount++
			continue
		}
		fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	}

	if errCount > 0 {
		return fmt.Errorf("%d/%d exports failed", errCount, len(flagExport))
	}
	return nil
}
