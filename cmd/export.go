package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/luxescript/core"
	"github.com/gaurav-prasanna/luxescript/core/fetch"
)

var flagExportLanguage string

var exportCmd = &cobra.Command{
	Use:   "export <fragment.html|url|->",
	Short: "Export an already formatted book fragment",
	Long: `Export takes HTML produced by a previous format run and renders it in
the requested formats without calling an LLM.

Examples:
  luxescript export book.html --export pdf --title "Veredas da Execução"
  luxescript export book.html --export markdown,json --output-dir ./out`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&flagExportLanguage, "language", "", "Language for page labels and the document: pt or en")
	addExportFlags(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	lang := cfg.LanguageValue()
	if flagExportLanguage != "" {
		l, err := core.ParseLanguage(flagExportLanguage)
		if err != nil {
			return err
		}
		lang = l
	}

	opts, meta, err := exportSettings(lang)
	if err != nil {
		return err
	}

	fragment, err := fetch.NewLoader().Load(ctx, args[0])
	if err != nil {
		return fmt.Errorf("loading fragment: %w", err)
	}
	return writeExports(ctx, fragment, meta, opts)
}
