// PDF renderer.
// The assembled book is mounted in an offscreen Container, handed to a
// Rasterizer, and the resulting pages are stamped with the running header,
// footer and page numbers.

package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/gaurav-prasanna/luxescript/core"
	"github.com/gaurav-prasanna/luxescript/core/assemble"
	"github.com/gaurav-prasanna/luxescript/core/i18n"
	"github.com/gaurav-prasanna/luxescript/core/output"
)

// PageMargin is the fixed margin on every side, in millimeters.
const PageMargin = 25.0

// Stamp geometry and color.
const (
	stampFontSize = 8
	stampGray     = 150
	stampInset    = 15.0
	numberOffset  = 35.0
)

// PDFOptions are the rasterization settings requested for every export.
type PDFOptions struct {
	Filename     string
	Format       string
	Orientation  string
	Margins      [4]float64 // top, right, bottom, left in mm
	ImageQuality float64
	Scale        float64
	PageBreak    []string
}

// DefaultPDFOptions returns A4 portrait at scale 2 with 25mm margins.
func DefaultPDFOptions(filename string) PDFOptions {
	return PDFOptions{
		Filename:     filename,
		Format:       "a4",
		Orientation:  "portrait",
		Margins:      [4]float64{PageMargin, PageMargin, PageMargin, PageMargin},
		ImageQuality: 0.98,
		Scale:        2,
		PageBreak:    []string{"avoid-all", "css", "legacy"},
	}
}

// Container is the offscreen mount point holding the assembled book.
type Container struct {
	HTML       string
	Font       core.FontChoice
	FontFamily string
	Margins    [4]float64

	released bool
}

func mount(html string, font core.FontChoice) *Container {
	return &Container{
		HTML:       html,
		Font:       font,
		FontFamily: font.CSSFamily(),
		Margins:    [4]float64{PageMargin, PageMargin, PageMargin, PageMargin},
	}
}

func (c *Container) release() {
	c.HTML = ""
	c.released = true
}

// Released reports whether the container has been torn down.
func (c *Container) Released() bool { return c.released }

// PDFDocument is a rasterized document open for drawing. Pages are 1-based
// and coordinates are millimeters from the top-left corner.
type PDFDocument interface {
	PageCount() int
	SetPage(n int)
	SetFontSize(size float64)
	SetTextGray(gray int)
	Text(x, y float64, s string)
	PageSize() (width, height float64)
	Save(w io.Writer) error
}

// Rasterizer lays out a mounted container into pages.
type Rasterizer interface {
	Rasterize(ctx context.Context, c *Container, opts PDFOptions) (PDFDocument, error)
}

// PDFRenderer renders the assembled book as a paginated A4 PDF.
type PDFRenderer struct {
	rasterizer Rasterizer
	logger     *slog.Logger
}

// NewPDFRenderer creates a PDFRenderer. A nil rasterizer makes every export
// a no-op.
func NewPDFRenderer(rasterizer Rasterizer, logger *slog.Logger) *PDFRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFRenderer{rasterizer: rasterizer, logger: logger}
}

// Available reports whether a rasterizer is configured.
func (r *PDFRenderer) Available() bool { return r.rasterizer != nil }

// Render rasterizes and stamps the book. It returns nil, nil when no
// rasterizer is available.
func (r *PDFRenderer) Render(ctx context.Context, fragment string, meta core.BookMetadata, opts core.RenderOptions) ([]byte, error) {
	if r.rasterizer == nil {
		r.logger.Debug("pdf rasterizer unavailable, skipping export")
		return nil, nil
	}

	c := mount(assemble.Assemble(fragment, meta), opts.Font)
	defer c.release()

	doc, err := r.rasterizer.Rasterize(ctx, c, DefaultPDFOptions(output.FileName(meta.Title, r.Extension())))
	if err != nil {
		return nil, fmt.Errorf("rasterizing: %w", err)
	}

	StampPages(doc, meta, opts.Language)

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, fmt.Errorf("saving pdf: %w", err)
	}
	r.logger.Debug("pdf rendered", "pages", doc.PageCount(), "bytes", buf.Len())
	return buf.Bytes(), nil
}

// StampPages writes the footer, header and "Page i / N" label on every page.
// Page 1 is left untouched unless meta.NumberCoverPage is set, but it still
// counts toward N.
func StampPages(doc PDFDocument, meta core.BookMetadata, lang core.Language) {
	total := doc.PageCount()
	width, height := doc.PageSize()
	label := i18n.PageLabel(lang)

	for i := 1; i <= total; i++ {
		if i == 1 && !meta.NumberCoverPage {
			continue
		}

		doc.SetPage(i)
		doc.SetFontSize(stampFontSize)
		doc.SetTextGray(stampGray)

		if meta.FooterText != "" {
			doc.Text(PageMargin, height-stampInset, meta.FooterText)
		}
		if meta.HeaderText != "" {
			doc.Text(PageMargin, stampInset, meta.HeaderText)
		}
		if meta.ShowPageNumbers {
			doc.Text(width-numberOffset, height-stampInset, fmt.Sprintf("%s %d / %d", label, i, total))
		}
	}
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// ContentType returns the MIME type for PDF output.
func (r *PDFRenderer) ContentType() string {
	return "application/pdf"
}
