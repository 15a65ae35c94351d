// Package assemble combines the formatted fragment with the book's title page.
package assemble

import (
	"html"
	"strings"

	"github.com/gaurav-prasanna/luxescript/core"
)

const untitled = "Untitled"

// Assemble prepends the title block to fragment when the metadata carries a
// title or an author. Otherwise fragment is returned unchanged.
func Assemble(fragment string, meta core.BookMetadata) string {
	block := TitleBlock(meta)
	if block == "" {
		return fragment
	}
	return block + fragment
}

// TitleBlock renders the title page markup, or "" when neither title nor
// author is set. Metadata values are HTML-escaped.
func TitleBlock(meta core.BookMetadata) string {
	if meta.Title == "" && meta.Author == "" {
		return ""
	}

	title := meta.Title
	if title == "" {
		title = untitled
	}

	var b strings.Builder
	b.WriteString(`<div class="title-page"><h1>`)
	b.WriteString(html.EscapeString(title))
	b.WriteString(`</h1><div class="title-author">`)
	b.WriteString(html.EscapeString(meta.Author))
	b.WriteString(`</div><div class="title-imprint">`)
	if meta.Publisher != "" {
		b.WriteString("<p>" + html.EscapeString(meta.Publisher) + "</p>")
	}
	if meta.Year != "" {
		b.WriteString("<p>" + html.EscapeString(meta.Year) + "</p>")
	}
	b.WriteString(`</div></div>`)
	return b.String()
}
