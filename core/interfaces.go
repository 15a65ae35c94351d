// Package core defines the shared types and stage interfaces for LuxeScript.
// Each stage of the pipeline (format → assemble → render → write) is a clean,
// testable interface.
package core

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Language selects both the instruction language and the output language.
type Language string

const (
	LanguagePortuguese Language = "pt"
	LanguageEnglish    Language = "en"
)

// DefaultLanguage is used when no language is configured.
const DefaultLanguage = LanguagePortuguese

// ParseLanguage accepts "pt", "pt-BR", "en" and "en-US" in any case.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pt", "pt-br":
		return LanguagePortuguese, nil
	case "en", "en-us":
		return LanguageEnglish, nil
	default:
		return "", fmt.Errorf("unsupported language %q (want pt or en)", s)
	}
}

// FontChoice is one of the fixed export typefaces.
type FontChoice string

const (
	FontPlayfair FontChoice = "Playfair Display"
	FontGaramond FontChoice = "Garamond"
	FontBodoni   FontChoice = "Bodoni"
	FontTrajan   FontChoice = "Trajan Pro"
)

// Fonts returns the export typefaces in display order.
func Fonts() []FontChoice {
	return []FontChoice{FontPlayfair, FontGaramond, FontBodoni, FontTrajan}
}

// CSSFamily returns the font-family value used by the HTML export and preview.
// Unknown values fall back to the default serif.
func (f FontChoice) CSSFamily() string {
	switch f {
	case FontGaramond:
		return "'EB Garamond', serif"
	case FontBodoni:
		return "'Bodoni Moda', serif"
	case FontTrajan:
		return "'Cinzel', serif"
	default:
		return "'Playfair Display', serif"
	}
}

// ParseFont accepts display names and short aliases (playfair, garamond,
// bodoni, trajan). An empty string selects the default.
func ParseFont(s string) (FontChoice, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "playfair", "playfair display":
		return FontPlayfair, nil
	case "garamond", "eb garamond":
		return FontGaramond, nil
	case "bodoni", "bodoni moda":
		return FontBodoni, nil
	case "trajan", "trajan pro", "cinzel":
		return FontTrajan, nil
	default:
		return "", fmt.Errorf("unknown font %q", s)
	}
}

// BookMetadata is the user-editable book information read at export time.
type BookMetadata struct {
	Title           string `json:"title" yaml:"title"`
	Author          string `json:"author" yaml:"author"`
	Publisher       string `json:"publisher" yaml:"publisher"`
	Year            string `json:"year" yaml:"year"`
	HeaderText      string `json:"headerText" yaml:"header_text"`
	FooterText      string `json:"footerText" yaml:"footer_text"`
	ShowPageNumbers bool   `json:"showPageNumbers" yaml:"show_page_numbers"`
	NumberCoverPage bool   `json:"numberCoverPage" yaml:"number_cover_page"`
}

// DefaultMetadata returns empty metadata with page numbers enabled and the
// cover page exempt from stamping.
func DefaultMetadata() BookMetadata {
	return BookMetadata{ShowPageNumbers: true}
}

// FormatRequest is a single formatting action.
type FormatRequest struct {
	// Content is plain text or light HTML (bold, italic, underline).
	Content string `json:"content"`
	// Style is a style id or one of the legacy mode names.
	Style           string   `json:"style"`
	Language        Language `json:"language"`
	PreserveContent bool     `json:"preserveContent"`
}

// Validate checks the request shape. Content emptiness is checked by the
// formatting client, since it is a silent no-op rather than a failure.
func (r FormatRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Style, validation.Required),
		validation.Field(&r.Language, validation.Required, validation.In(LanguagePortuguese, LanguageEnglish)),
	)
}

// GeneratedContent is a formatted fragment plus its Markdown rendition.
type GeneratedContent struct {
	HTML     string `json:"html"`
	Markdown string `json:"markdown,omitempty"`
}

// RenderOptions carries the per-export choices that are not book metadata.
type RenderOptions struct {
	Font     FontChoice
	Language Language
}

// Renderer converts a formatted fragment (and metadata) into a final output
// format. A nil result with a nil error means the export was skipped.
type Renderer interface {
	Render(ctx context.Context, fragment string, meta BookMetadata, opts RenderOptions) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".html", ".pdf").
	Extension() string
	ContentType() string
}

// Artifact is a rendered export ready to be written or downloaded.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// FetchResult holds the raw manuscript and response metadata from a fetch.
type FetchResult struct {
	Source      string
	StatusCode  int
	ContentType string
	Body        string
}

// Fetcher retrieves a manuscript from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Section represents a heading-delimited section of content.
type Section struct {
	Heading string `json:"heading"`
	Level   int    `json:"level"`
	Text    string `json:"text"`
}

// Heading represents a single heading found in the content.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Link represents a hyperlink found in the content.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// DocumentContent holds the renditions and sections of a formatted document.
type DocumentContent struct {
	HTML     string    `json:"html"`
	Markdown string    `json:"markdown"`
	Text     string    `json:"text"`
	Sections []Section `json:"sections"`
}

// DocumentStructure holds structural counts parsed from the content.
type DocumentStructure struct {
	Headings   []Heading `json:"headings"`
	Links      []Link    `json:"links"`
	CodeBlocks int       `json:"code_blocks"`
	Tables     int       `json:"tables"`
	Lists      int       `json:"lists"`
}

// DocumentJSON is the complete JSON export for a formatted document.
type DocumentJSON struct {
	Metadata  BookMetadata      `json:"metadata"`
	Content   DocumentContent   `json:"content"`
	Structure DocumentStructure `json:"structure"`
}
