// JSON renderer.
// Builds a structured JSON document from the formatted book: metadata, the
// HTML and Markdown renditions, plain text, sections, and structural counts.

package render

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/luxescript/core"
	"github.com/gaurav-prasanna/luxescript/core/normalize"
)

// JSONRenderer produces structured JSON output for a formatted book.
type JSONRenderer struct {
	normalizer *normalize.MarkdownNormalizer
}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{normalizer: normalize.New()}
}

// Render converts the fragment and metadata into a core.DocumentJSON.
// The title page is carried by the metadata, so the fragment is not assembled.
func (r *JSONRenderer) Render(_ context.Context, fragment string, meta core.BookMetadata, _ core.RenderOptions) ([]byte, error) {
	markdown, err := r.normalizer.Normalize(fragment)
	if err != nil {
		return nil, err
	}

	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("parsing fragment: %w", err)
	}
	body := parsed.Find("body")

	doc := core.DocumentJSON{
		Metadata: meta,
		Content: core.DocumentContent{
			HTML:     fragment,
			Markdown: markdown,
			Text:     plainText(body),
			Sections: buildSections(body),
		},
		Structure: core.DocumentStructure{
			Headings:   extractHeadings(body),
			Links:      extractLinks(body),
			CodeBlocks: body.Find("pre, .code-block, .mermaid").Length(),
			Tables:     body.Find("table").Length(),
			Lists:      body.Find("li").Length(),
		},
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// ContentType returns the MIME type for JSON output.
func (r *JSONRenderer) ContentType() string {
	return "application/json"
}

const headingSelector = "h1, h2, h3, h4, h5, h6"

func headingLevel(s *goquery.Selection) int {
	level, _ := strconv.Atoi(strings.TrimPrefix(goquery.NodeName(s), "h"))
	return level
}

func extractHeadings(body *goquery.Selection) []core.Heading {
	headings := make([]core.Heading, 0)
	body.Find(headingSelector).Each(func(_ int, s *goquery.Selection) {
		text := strings.Join(strings.Fields(s.Text()), " ")
		if text == "" {
			return
		}
		headings = append(headings, core.Heading{Level: headingLevel(s), Text: text})
	})
	return headings
}

func extractLinks(body *goquery.Selection) []core.Link {
	links := make([]core.Link, 0)
	body.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		links = append(links, core.Link{
			Text: strings.Join(strings.Fields(s.Text()), " "),
			Href: href,
		})
	})
	return links
}

// buildSections splits the document at every heading. A section's text is
// everything that follows its heading in document order up to the next one.
func buildSections(body *goquery.Selection) []core.Section {
	var sections []core.Section
	var current *core.Section
	var text strings.Builder

	flush := func() {
		if current != nil {
			current.Text = strings.TrimSpace(collapseLines(text.String()))
			sections = append(sections, *current)
		}
		text.Reset()
	}

	var walk func(*goquery.Selection)
	walk = func(sel *goquery.Selection) {
		sel.Contents().Each(func(_ int, s *goquery.Selection) {
			if s.Is(headingSelector) {
				flush()
				current = &core.Section{
					Heading: strings.Join(strings.Fields(s.Text()), " "),
					Level:   headingLevel(s),
				}
				return
			}
			if goquery.NodeName(s) == "#text" {
				if current != nil {
					text.WriteString(s.Text())
				}
				return
			}
			walk(s)
			if current != nil && blockElements[goquery.NodeName(s)] {
				text.WriteString("\n")
			}
		})
	}
	walk(body)
	flush()
	return sections
}

func plainText(body *goquery.Selection) string {
	var b strings.Builder
	var walk func(*goquery.Selection)
	walk = func(sel *goquery.Selection) {
		sel.Contents().Each(func(_ int, s *goquery.Selection) {
			switch goquery.NodeName(s) {
			case "#text":
				b.WriteString(s.Text())
			case "script", "style":
			default:
				walk(s)
				if blockElements[goquery.NodeName(s)] || s.Is(headingSelector) || goquery.NodeName(s) == "li" || goquery.NodeName(s) == "br" {
					b.WriteString("\n")
				}
			}
		})
	}
	walk(body)
	return strings.TrimSpace(collapseLines(b.String()))
}

// collapseLines folds spaces within each line and drops blank lines.
func collapseLines(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
