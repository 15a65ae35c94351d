// Markdown renderer.
// Converts the assembled book to Markdown with html-to-markdown.

package render

import (
	"context"

	"github.com/gaurav-prasanna/luxescript/core"
	"github.com/gaurav-prasanna/luxescript/core/assemble"
	"github.com/gaurav-prasanna/luxescript/core/normalize"
)

// MarkdownRenderer writes the assembled book as Markdown.
type MarkdownRenderer struct {
	normalizer *normalize.MarkdownNormalizer
}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{normalizer: normalize.New()}
}

// Render returns the Markdown rendition of the assembled book.
func (r *MarkdownRenderer) Render(_ context.Context, fragment string, meta core.BookMetadata, _ core.RenderOptions) ([]byte, error) {
	markdown, err := r.normalizer.Normalize(assemble.Assemble(fragment, meta))
	if err != nil {
		return nil, err
	}
	return []byte(markdown + "\n"), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// ContentType returns the MIME type for Markdown output.
func (r *MarkdownRenderer) ContentType() string {
	return "text/markdown; charset=utf-8"
}
