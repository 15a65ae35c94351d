// Package export routes a formatted book to the renderer for a format and
// names the resulting artifact.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/gaurav-prasanna/luxescript/core"
	"github.com/gaurav-prasanna/luxescript/core/output"
	"github.com/gaurav-prasanna/luxescript/core/render"
)

// Export formats.
const (
	FormatHTML     = "html"
	FormatPDF      = "pdf"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// ErrUnknownFormat is returned for a format with no renderer.
var ErrUnknownFormat = errors.New("unknown export format")

// Exporter holds one renderer per format.
type Exporter struct {
	renderers map[string]core.Renderer
	logger    *slog.Logger
}

// New creates an Exporter with the HTML, Markdown and JSON renderers and a
// PDF renderer backed by rasterizer. A nil rasterizer leaves PDF export as a
// no-op.
func New(rasterizer render.Rasterizer, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Exporter{renderers: make(map[string]core.Renderer), logger: logger}
	e.Register(FormatHTML, render.NewHTMLRenderer())
	e.Register(FormatMarkdown, render.NewMarkdownRenderer())
	e.Register(FormatJSON, render.NewJSONRenderer())
	e.Register(FormatPDF, render.NewPDFRenderer(rasterizer, logger))
	return e
}

// Register adds or replaces the renderer for format.
func (e *Exporter) Register(format string, r core.Renderer) {
	e.renderers[strings.ToLower(format)] = r
}

// Formats lists the registered formats in alphabetical order.
func (e *Exporter) Formats() []string {
	formats := make([]string, 0, len(e.renderers))
	for f := range e.renderers {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}

// ParseFormat normalizes a format name. "md" is accepted for markdown.
func ParseFormat(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "md" {
		return FormatMarkdown
	}
	return s
}

// Export renders fragment in format. The fragment and metadata are passed by
// value, so later edits by the caller do not reach an export in flight.
//
// An empty fragment, or a renderer that produces nothing, yields a nil
// artifact and a nil error.
func (e *Exporter) Export(ctx context.Context, format, fragment string, meta core.BookMetadata, opts core.RenderOptions) (*core.Artifact, error) {
	format = ParseFormat(format)
	r, ok := e.renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownFormat, format, strings.Join(e.Formats(), ", "))
	}

	if strings.TrimSpace(fragment) == "" {
		e.logger.Debug("nothing to export", "format", format)
		return nil, nil
	}

	data, err := r.Render(ctx, fragment, meta, opts)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	if data == nil {
		e.logger.Debug("export skipped", "format", format)
		return nil, nil
	}

	artifact := &core.Artifact{
		Filename:    output.FileName(meta.Title, r.Extension()),
		ContentType: r.ContentType(),
		Data:        data,
	}
	e.logger.Info("exported", "format", format, "file", artifact.Filename, "bytes", len(data))
	return artifact, nil
}
