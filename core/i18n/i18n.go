// Package i18n holds the pt/en user-facing strings.
package i18n

import (
	"strings"

	"github.com/gaurav-prasanna/luxescript/core"
)

var catalog = map[core.Language]map[string]string{
	core.LanguageEnglish: {
		"navbar.subtitle":           "AI Publishing Studio",
		"navbar.formatter":          "Text Formatter",
		"formatter.title":           "Raw Content",
		"formatter.placeholder":     "Paste your raw manuscript or notes here... (Rich text from Word/Docs supported)",
		"formatter.buttonFormat":    "Format to Luxury E-book",
		"formatter.buttonSettings":  "Book Settings",
		"formatter.previewTitle":    "Luxury Preview",
		"formatter.export":          "Export HTML",
		"formatter.exportMarkdown":  "Export Markdown",
		"formatter.downloadPdf":     "Download PDF",
		"formatter.emptyState":      "Your formatted masterpiece will appear here.",
		"formatter.processing":      "Designing layout...",
		"formatter.thinking":        "Analyzing structure & designing visuals...",
		"formatter.error":           "Failed to format text. Please try again.",
		"formatter.selectFont":      "Select Typography",
		"formatter.selectStyle":     "Select Style",
		"formatter.preserveContent": "Preserve original wording",
		"settings.title":            "Book Configuration",
		"settings.metadata":         "Metadata",
		"settings.bookTitle":        "Book Title",
		"settings.author":           "Author",
		"settings.publisher":        "Publisher",
		"settings.year":             "Year",
		"settings.layout":           "Header & Footer",
		"settings.headerText":       "Header Text",
		"settings.footerText":       "Footer Text",
		"settings.pageNumbers":      "Show Page Numbers",
		"settings.numberCover":      "Number Cover Page",
		"settings.save":             "Save",
		"settings.close":            "Close",
		"pdf.page":                  "Page",
		"preview.footer":            "1 / 1 (Preview)",
	},
	core.LanguagePortuguese: {
		"navbar.subtitle":           "Estúdio de Publicação IA",
		"navbar.formatter":          "Formatador de Texto",
		"formatter.title":           "Conteúdo Bruto",
		"formatter.placeholder":     "Cole seu manuscrito ou notas aqui... (Suporta formatação do Word/Google Docs)",
		"formatter.buttonFormat":    "Formatar E-book de Luxo",
		"formatter.buttonSettings":  "Config. Livro",
		"formatter.previewTitle":    "Visualização de Luxo",
		"formatter.export":          "Exportar HTML",
		"formatter.exportMarkdown":  "Exportar Markdown",
		"formatter.downloadPdf":     "Baixar PDF",
		"formatter.emptyState":      "Sua obra-prima formatada aparecerá aqui.",
		"formatter.processing":      "Projetando layout...",
		"formatter.thinking":        "Analisando estrutura jurídica e visual...",
		"formatter.error":           "Falha ao formatar texto. Tente novamente.",
		"formatter.selectFont":      "Selecionar Tipografia",
		"formatter.selectStyle":     "Selecionar Estilo",
		"formatter.preserveContent": "Preservar o texto original",
		"settings.title":            "Configuração do Livro",
		"settings.metadata":         "Metadados",
		"settings.bookTitle":        "Título do Livro",
		"settings.author":           "Autor",
		"settings.publisher":        "Editora",
		"settings.year":             "Ano",
		"settings.layout":           "Cabeçalho e Rodapé",
		"settings.headerText":       "Texto do Cabeçalho",
		"settings.footerText":       "Texto do Rodapé",
		"settings.pageNumbers":      "Mostrar Números de Página",
		"settings.numberCover":      "Numerar Capa",
		"settings.save":             "Salvar",
		"settings.close":            "Fechar",
		"pdf.page":                  "Pág",
		"preview.footer":            "1 / 1 (Visualização)",
	},
}

// T returns the string for key in lang. Missing keys return the key itself,
// and unknown languages fall back to English.
func T(lang core.Language, key string) string {
	strs, ok := catalog[lang]
	if !ok {
		strs = catalog[core.LanguageEnglish]
	}
	if v, ok := strs[key]; ok {
		return v
	}
	return key
}

// Catalog returns a copy of every string for lang, keyed by dotted path.
func Catalog(lang core.Language) map[string]string {
	strs, ok := catalog[lang]
	if !ok {
		strs = catalog[core.LanguageEnglish]
	}
	out := make(map[string]string, len(strs))
	for k, v := range strs {
		out[k] = v
	}
	return out
}

// PageLabel is the abbreviation stamped before PDF page numbers.
func PageLabel(lang core.Language) string {
	return T(lang, "pdf.page")
}

// Section returns the keys under prefix (e.g. "settings") with the prefix removed.
func Section(lang core.Language, prefix string) map[string]string {
	out := make(map[string]string)
	for k, v := range Catalog(lang) {
		if rest, ok := strings.CutPrefix(k, prefix+"."); ok {
			out[rest] = v
		}
	}
	return out
}
