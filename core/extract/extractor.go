// Package extract prepares editor input for formatting.
// It isolates the manuscript from whatever the editor or clipboard produced by:
//  1. Removing noise elements (scripts, styles, embedded media, form controls)
//  2. Restricting markup to the editor subset (bold, italic, underline, blocks)
//  3. Reducing the result to plain text for the emptiness check
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// noiseSelectors are removed before text extraction. Their text content is
// never part of the manuscript.
var noiseSelectors = []string{
	"script", "style", "noscript", "template",
	"head", "title", "meta", "link",
	"iframe", "video", "audio", "object", "embed",
	"svg", "canvas",
	"form", "button", "input", "select", "textarea",
}

// editorTag matches an opening or closing tag from the editor subset.
var editorTag = regexp.MustCompile(`(?i)</?(b|strong|i|em|u|p|br|div|span|h[1-6]|ul|ol|li|blockquote|html|body)(\s[^<>]*)?/?>`)

var whitespaceRun = regexp.MustCompile(`[ \t\r\f\v\x{00A0}]+`)
var blankLines = regexp.MustCompile(`\n{3,}`)

// Extractor sanitizes editor input.
type Extractor struct {
	policy *bluemonday.Policy
}

// New creates an Extractor with the editor policy.
func New() *Extractor {
	return &Extractor{policy: editorPolicy()}
}

// editorPolicy allows what a rich-text editor or a Word/Docs paste yields
// once presentation attributes are dropped.
func editorPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"b", "strong", "i", "em", "u",
		"p", "br", "div", "span",
		"h1", "h2", "h3", "h4",
		"ul", "ol", "li", "blockquote",
	)
	return p
}

// IsMarkup reports whether content carries editor HTML rather than plain
// text that merely contains angle brackets (List<String>, a < b).
func IsMarkup(content string) bool {
	return editorTag.MatchString(content)
}

// Sanitize returns content restricted to the editor subset. Content that is
// not editor HTML is returned unchanged.
func (e *Extractor) Sanitize(content string) string {
	if !IsMarkup(content) {
		return content
	}
	return strings.TrimSpace(e.policy.Sanitize(content))
}

// PlainText reduces HTML or plain text to its visible text. Block elements
// become line breaks and runs of spaces collapse.
func (e *Extractor) PlainText(content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}
	doc.Find("br").Each(func(_ int, s *goquery.Selection) {
		s.ReplaceWithNodes(newline())
	})
	doc.Find("p, div, li, h1, h2, h3, h4, h5, h6, blockquote, tr").Each(func(_ int, s *goquery.Selection) {
		s.AppendNodes(newline())
	})

	text := doc.Find("body").Text()
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(whitespaceRun.ReplaceAllString(line, " "))
	}
	text = strings.Join(lines, "\n")
	text = blankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text), nil
}

func newline() *html.Node {
	return &html.Node{Type: html.TextNode, Data: "\n"}
}

// IsBlank reports whether content has no visible text.
func (e *Extractor) IsBlank(content string) (bool, error) {
	text, err := e.PlainText(content)
	if err != nil {
		return false, err
	}
	return text == "", nil
}
