// Package normalize converts formatted book HTML into Markdown, the
// rendition used by the Markdown and JSON exports.
package normalize

import (
	"fmt"
	"html"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
)

// MarkdownNormalizer converts HTML to Markdown using html-to-markdown.
type MarkdownNormalizer struct{}

// New creates a MarkdownNormalizer.
func New() *MarkdownNormalizer {
	return &MarkdownNormalizer{}
}

// Normalize converts a book fragment into Markdown. Mermaid diagrams become
// fenced "mermaid" code blocks.
func (n *MarkdownNormalizer) Normalize(fragment string) (string, error) {
	prepared, err := prepare(fragment)
	if err != nil {
		return "", err
	}
	markdown, err := htmltomarkdown.ConvertString(prepared)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}

func prepare(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	doc.Find(".mermaid").Each(func(_ int, s *goquery.Selection) {
		code := html.EscapeString(strings.TrimSpace(s.Text()))
		s.ReplaceWithHtml(`<pre><code class="language-mermaid">` + code + `</code></pre>`)
	})
	doc.Find("script, style").Remove()

	body, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("serializing HTML: %w", err)
	}
	return body, nil
}
