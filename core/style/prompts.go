package style

import (
	"embed"
	"strings"
	"text/template"

	"github.com/gaurav-prasanna/luxescript/core"
)

//go:embed prompts/*.md.tmpl
var promptFS embed.FS

var promptTemplates = template.Must(template.New("prompts").ParseFS(promptFS, "prompts/*.md.tmpl"))

type promptData struct {
	LanguageInstruction string
	Preserve            bool
}

// LanguageInstruction is the output-language line shared by every prompt.
func LanguageInstruction(lang core.Language) string {
	if lang == core.LanguagePortuguese {
		return "Output everything in Brazilian Portuguese."
	}
	return "Output everything in English."
}

// templatePrompt returns a PromptFunc backed by an embedded template. The
// templates are static, so an execution failure is a build defect and panics.
func templatePrompt(name string) PromptFunc {
	return func(lang core.Language, preserve bool) string {
		var b strings.Builder
		data := promptData{
			LanguageInstruction: LanguageInstruction(lang),
			Preserve:            preserve,
		}
		if err := promptTemplates.ExecuteTemplate(&b, name, data); err != nil {
			panic("style: rendering " + name + ": " + err.Error())
		}
		return strings.TrimSpace(b.String())
	}
}
