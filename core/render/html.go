// Package render converts an assembled book into its export formats.
// This file implements the standalone HTML document.
package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"text/template"

	"github.com/gaurav-prasanna/luxescript/core"
	"github.com/gaurav-prasanna/luxescript/core/assemble"
)

const (
	// FontsURL loads every export typeface plus the UI sans-serif.
	FontsURL = "https://fonts.googleapis.com/css2?family=Playfair+Display:ital,wght@0,400;0,600;0,700;1,400&family=EB+Garamond:ital,wght@0,400;0,600;0,700;1,400;1,600&family=Bodoni+Moda:ital,wght@0,400;0,600;0,700;1,400&family=Cinzel:wght@400;600;700&family=Inter:wght@300;400;600&display=swap"
	// MermaidURL is the pinned diagram renderer.
	MermaidURL = "https://cdn.jsdelivr.net/npm/mermaid@10.9.0/dist/mermaid.min.js"
)

//go:embed assets/export.css assets/document.html.tmpl
var assets embed.FS

var (
	documentTemplate = template.Must(template.ParseFS(assets, "assets/document.html.tmpl"))
	exportCSS        = mustReadAsset("assets/export.css")
)

func mustReadAsset(name string) string {
	data, err := assets.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return string(data)
}

// Stylesheet returns the embedded export stylesheet shared by the HTML
// document and the workspace preview.
func Stylesheet() string { return exportCSS }

type documentData struct {
	Lang       core.Language
	Title      string
	FontsURL   string
	MermaidURL string
	FontFamily string
	Stylesheet string
	Body       string
}

// HTMLRenderer writes a self-contained HTML document.
type HTMLRenderer struct{}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// Render assembles the fragment and wraps it in the export document.
func (r *HTMLRenderer) Render(_ context.Context, fragment string, meta core.BookMetadata, opts core.RenderOptions) ([]byte, error) {
	lang := opts.Language
	if lang == "" {
		lang = core.DefaultLanguage
	}
	title := meta.Title
	if title == "" {
		title = "LuxeScript"
	}

	var buf bytes.Buffer
	err := documentTemplate.Execute(&buf, documentData{
		Lang:       lang,
		Title:      title,
		FontsURL:   FontsURL,
		MermaidURL: MermaidURL,
		FontFamily: opts.Font.CSSFamily(),
		Stylesheet: exportCSS,
		Body:       assemble.Assemble(fragment, meta),
	})
	if err != nil {
		return nil, fmt.Errorf("executing document template: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}

// ContentType returns the MIME type for HTML output.
func (r *HTMLRenderer) ContentType() string {
	return "text/html; charset=utf-8"
}
