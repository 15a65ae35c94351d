package render

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/net/html"
)

const (
	bodyFamily = "body"
	coreSerif  = "Times"
	coreMono   = "Courier"

	bodySize   = 11.0
	lineHeight = 5.5
)

// fontFiles maps each export typeface to the TTF file stem looked up in the
// fonts directory, e.g. EBGaramond-Regular.ttf.
var fontFiles = map[string]string{
	"'Playfair Display', serif": "PlayfairDisplay",
	"'EB Garamond', serif":      "EBGaramond",
	"'Bodoni Moda', serif":      "BodoniModa",
	"'Cinzel', serif":           "Cinzel",
}

var fontStyles = []struct{ style, suffix string }{
	{"", "Regular"},
	{"B", "Bold"},
	{"I", "Italic"},
	{"BI", "BoldItalic"},
}

// FpdfRasterizer lays out HTML with gofpdf. Without a fonts directory it
// uses the core Times font and converts text to cp1252.
type FpdfRasterizer struct {
	fontsDir string
	logger   *slog.Logger
}

// NewFpdfRasterizer creates a rasterizer. fontsDir may be empty; when set it
// must be an existing directory of UTF-8 TTF files.
func NewFpdfRasterizer(fontsDir string, logger *slog.Logger) (*FpdfRasterizer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if fontsDir != "" {
		info, err := os.Stat(fontsDir)
		if err != nil {
			return nil, fmt.Errorf("fonts directory: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("fonts directory %s is not a directory", fontsDir)
		}
	}
	return &FpdfRasterizer{fontsDir: fontsDir, logger: logger}, nil
}

// Rasterize lays out the container's HTML into A4 pages.
func (r *FpdfRasterizer) Rasterize(ctx context.Context, c *Container, opts PDFOptions) (PDFDocument, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(c.HTML))
	if err != nil {
		return nil, fmt.Errorf("parsing container html: %w", err)
	}

	orientation := "P"
	if strings.EqualFold(opts.Orientation, "landscape") {
		orientation = "L"
	}
	pdf := gofpdf.New(orientation, "mm", strings.ToUpper(opts.Format), r.fontsDir)
	pdf.SetTitle(strings.TrimSuffix(opts.Filename, filepath.Ext(opts.Filename)), true)
	pdf.SetMargins(c.Margins[3], c.Margins[0], c.Margins[1])
	pdf.SetAutoPageBreak(true, c.Margins[2])

	l := &layout{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), family: coreSerif}
	if r.registerFonts(pdf, c.FontFamily) {
		l.family = bodyFamily
		l.utf8 = true
	}
	pdf.AddPage()
	l.apply()

	for _, n := range doc.Find("body").Nodes {
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			l.block(child)
		}
	}

	if pdf.Err() {
		return nil, fmt.Errorf("laying out pdf: %w", pdf.Error())
	}
	return &fpdfDocument{pdf: pdf, layout: l}, nil
}

// registerFonts adds the TTF files for family. Missing styles fall back to
// the regular face.
func (r *FpdfRasterizer) registerFonts(pdf *gofpdf.Fpdf, family string) bool {
	if r.fontsDir == "" {
		return false
	}
	stem, ok := fontFiles[family]
	if !ok {
		stem = fontFiles["'Playfair Display', serif"]
	}
	regular := stem + "-Regular.ttf"
	if _, err := os.Stat(filepath.Join(r.fontsDir, regular)); err != nil {
		r.logger.Warn("font file missing, using core fonts", "file", regular, "dir", r.fontsDir)
		return false
	}
	for _, fs := range fontStyles {
		file := stem + "-" + fs.suffix + ".ttf"
		if _, err := os.Stat(filepath.Join(r.fontsDir, file)); err != nil {
			file = regular
		}
		pdf.AddUTF8Font(bodyFamily, fs.style, file)
	}
	return true
}

// fpdfDocument exposes a laid-out gofpdf document for stamping and saving.
type fpdfDocument struct {
	pdf    *gofpdf.Fpdf
	layout *layout
}

func (d *fpdfDocument) PageCount() int { return d.pdf.PageCount() }

func (d *fpdfDocument) SetPage(n int) { d.pdf.SetPage(n) }

// SetFontSize selects the regular body face. The style toggle forces gofpdf
// to emit the font again on the newly selected page.
func (d *fpdfDocument) SetFontSize(size float64) {
	d.pdf.SetFont(d.layout.family, "B", size)
	d.pdf.SetFont(d.layout.family, "", size)
	d.layout.current = d.layout.family
}

func (d *fpdfDocument) SetTextGray(gray int) { d.pdf.SetTextColor(gray, gray, gray) }

func (d *fpdfDocument) Text(x, y float64, s string) { d.pdf.Text(x, y, d.layout.text(s)) }

func (d *fpdfDocument) PageSize() (float64, float64) { return d.pdf.GetPageSize() }

func (d *fpdfDocument) Save(w io.Writer) error { return d.pdf.Output(w) }

// layout carries the drawing state while walking the tree.
type layout struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	utf8   bool
	family string

	current string
	size    float64
	bold    int
	italic  int
	under   int
	mono    int
}

func (l *layout) style() string {
	s := ""
	if l.bold > 0 {
		s += "B"
	}
	if l.italic > 0 {
		s += "I"
	}
	if l.under > 0 {
		s += "U"
	}
	return s
}

func (l *layout) apply() {
	if l.size == 0 {
		l.size = bodySize
	}
	family := l.family
	if l.mono > 0 {
		family = coreMono
	}
	l.current = family
	l.pdf.SetFont(family, l.style(), l.size)
}

// text converts s for the active font. UTF-8 faces take s as is; the core
// fonts need cp1252.
func (l *layout) text(s string) string {
	if l.utf8 && l.current == bodyFamily {
		return s
	}
	return l.tr(s)
}

func (l *layout) withSize(size float64, fn func()) {
	prev := l.size
	l.size = size
	l.apply()
	fn()
	l.size = prev
	l.apply()
}

func (l *layout) contentWidth() float64 {
	w, _ := l.pdf.GetPageSize()
	left, _, right, _ := l.pdf.GetMargins()
	return w - left - right
}

func (l *layout) remaining() float64 {
	_, h := l.pdf.GetPageSize()
	_, _, _, bottom := l.pdf.GetMargins()
	return h - bottom - l.pdf.GetY()
}

func (l *layout) usableHeight() float64 {
	_, h := l.pdf.GetPageSize()
	_, top, _, bottom := l.pdf.GetMargins()
	return h - top - bottom
}

// keep starts a new page when height does not fit in what is left of the
// current one. Blocks taller than a page are left to break naturally.
func (l *layout) keep(height float64) {
	if height < l.usableHeight() && height > l.remaining() {
		l.pdf.AddPage()
	}
}

func (l *layout) estimate(text string, width, lh float64) float64 {
	lines := 0.0
	for _, para := range strings.Split(text, "\n") {
		lines += math.Max(1, math.Ceil(l.pdf.GetStringWidth(l.text(para))/width))
	}
	return lines * lh
}

func (l *layout) block(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		if text := collapse(n.Data); strings.TrimSpace(text) != "" {
			l.pdf.Write(lineHeight, l.text(strings.TrimSpace(text)))
			l.pdf.Ln(lineHeight)
		}
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.Data {
	case "script", "style", "head", "title", "meta", "link":
	case "h1":
		l.heading(n, 22, 10)
	case "h2":
		l.heading(n, 17, 8)
	case "h3":
		l.heading(n, 14, 6)
	case "h4", "h5", "h6":
		l.heading(n, 12, 5)
	case "p":
		l.paragraph(n)
	case "ul", "ol":
		l.list(n)
	case "blockquote":
		l.blockquote(n)
	case "pre":
		if hasClass(n, "mermaid") {
			l.diagram(n)
			return
		}
		l.preformatted(textContent(n))
	case "table":
		l.table(n)
	case "hr":
		l.rule()
	case "br":
		l.pdf.Ln(lineHeight)
	case "div", "section", "article", "aside", "header", "footer", "nav", "main", "figure":
		l.division(n)
	default:
		l.paragraph(n)
	}
}

func (l *layout) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		l.block(c)
	}
}

func (l *layout) division(n *html.Node) {
	switch {
	case hasClass(n, "title-page"):
		l.titlePage(n)
	case hasClass(n, "mermaid"):
		l.diagram(n)
	case hasClass(n, "code-block"):
		l.preformatted(textContent(n))
	case hasClass(n, "stat-card", "stat-highlight"):
		l.statCard(n)
	case hasClass(n, "toc-container", "callout-box", "concept-card", "tech-note", "info-box", "timeline-container", "hero-section"):
		l.box(n)
	case hasClass(n, "timeline-date", "toc-title", "box-title", "kicker"):
		l.bold++
		l.paragraph(n)
		l.bold--
		l.apply()
	case hasClass(n, "chapter-end-marker"):
		l.centered(collapse(textContent(n)), bodySize)
	default:
		if hasBlockChild(n) {
			l.children(n)
			return
		}
		l.paragraph(n)
	}
}

func (l *layout) heading(n *html.Node, size, space float64) {
	text := strings.TrimSpace(collapse(textContent(n)))
	if text == "" {
		return
	}
	lh := size * 0.5
	// keep the heading with at least three body lines
	l.keep(l.estimate(text, l.contentWidth(), lh) + space + 3*lineHeight)
	l.pdf.Ln(space / 2)
	l.bold++
	l.withSize(size, func() {
		l.pdf.MultiCell(0, lh, l.text(text), "", "L", false)
	})
	l.bold--
	l.apply()
	l.pdf.Ln(space / 2)
}

// paragraph justifies plain runs of text; mixed inline styles are flowed
// left-aligned with Write.
func (l *layout) paragraph(n *html.Node) {
	if hasBlockChild(n) {
		l.children(n)
		return
	}
	if !hasElementChild(n) {
		text := strings.TrimSpace(collapse(textContent(n)))
		if text == "" {
			return
		}
		if hasClass(n, "indented") {
			text = "      " + text
		}
		l.pdf.MultiCell(0, lineHeight, l.text(text), "", "J", false)
		l.pdf.Ln(2)
		return
	}
	l.inlineChildren(n)
	l.pdf.Ln(lineHeight + 2)
}

func (l *layout) inlineChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		l.inline(c)
	}
}

func (l *layout) inline(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		if text := collapse(n.Data); text != "" {
			l.pdf.Write(lineHeight, l.text(text))
		}
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.Data {
	case "b", "strong":
		l.styled(&l.bold, n)
	case "i", "em", "cite":
		l.styled(&l.italic, n)
	case "u":
		l.styled(&l.under, n)
	case "code", "kbd", "samp":
		l.styled(&l.mono, n)
	case "br":
		l.pdf.Ln(lineHeight)
	case "p", "div", "ul", "ol", "table", "pre", "blockquote", "h1", "h2", "h3", "h4":
		l.pdf.Ln(lineHeight)
		l.block(n)
	default:
		l.inlineChildren(n)
	}
}

func (l *layout) styled(counter *int, n *html.Node) {
	*counter++
	l.apply()
	l.inlineChildren(n)
	*counter--
	l.apply()
}

func (l *layout) list(n *html.Node) {
	left, _, _, _ := l.pdf.GetMargins()
	ordered := n.Data == "ol"
	index := 0
	l.pdf.Ln(1)
	for li := n.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.Data != "li" {
			continue
		}
		index++
		marker := "•"
		if ordered {
			marker = strconv.Itoa(index) + "."
		}
		l.pdf.SetX(left + 2)
		l.pdf.Write(lineHeight, l.text(marker))
		l.pdf.SetLeftMargin(left + 8)
		l.pdf.SetX(left + 8)
		l.inlineChildren(li)
		l.pdf.Ln(lineHeight)
		l.pdf.SetLeftMargin(left)
	}
	l.pdf.Ln(2)
}

func (l *layout) blockquote(n *html.Node) {
	left, _, _, _ := l.pdf.GetMargins()
	startPage, startY := l.pdf.PageNo(), l.pdf.GetY()

	l.pdf.SetLeftMargin(left + 6)
	l.pdf.SetX(left + 6)
	l.italic++
	l.apply()
	if hasBlockChild(n) {
		l.children(n)
	} else {
		l.paragraph(n)
	}
	l.italic--
	l.apply()
	l.pdf.SetLeftMargin(left)

	if l.pdf.PageNo() == startPage {
		l.pdf.SetDrawColor(217, 119, 6)
		l.pdf.SetLineWidth(1)
		l.pdf.Line(left+1, startY, left+1, l.pdf.GetY()-2)
		l.pdf.SetLineWidth(0.2)
		l.pdf.SetDrawColor(0, 0, 0)
	}
}

func (l *layout) preformatted(text string) {
	text = strings.Trim(text, "\n")
	if text == "" {
		return
	}
	l.mono++
	l.withSize(9, func() {
		l.keep(l.estimate(text, l.contentWidth(), 4.5) + 4)
		l.pdf.SetFillColor(245, 245, 245)
		l.pdf.MultiCell(0, 4.5, l.text(text), "", "L", true)
	})
	l.mono--
	l.apply()
	l.pdf.Ln(3)
}

// diagram prints the Mermaid source in a framed monospace box.
func (l *layout) diagram(n *html.Node) {
	text := strings.TrimSpace(textContent(n))
	if text == "" {
		return
	}
	l.mono++
	l.withSize(8, func() {
		l.keep(l.estimate(text, l.contentWidth(), 4) + 6)
		l.pdf.SetFillColor(250, 250, 250)
		l.pdf.SetDrawColor(203, 213, 225)
		l.pdf.MultiCell(0, 4, l.text(text), "1", "L", true)
		l.pdf.SetDrawColor(0, 0, 0)
	})
	l.mono--
	l.apply()
	l.pdf.Ln(4)
}

// box draws a card or callout as an atomic framed block.
func (l *layout) box(n *html.Node) {
	const pad = 4.0
	left, _, right, _ := l.pdf.GetMargins()
	width := l.contentWidth()

	l.keep(l.estimate(collapse(textContent(n)), width-2*pad, lineHeight) + 2*pad)
	l.pdf.Ln(2)
	startPage, startY := l.pdf.PageNo(), l.pdf.GetY()

	l.pdf.SetLeftMargin(left + pad)
	l.pdf.SetRightMargin(right + pad)
	l.pdf.SetXY(left+pad, startY+pad)
	if hasBlockChild(n) {
		l.children(n)
	} else {
		l.paragraph(n)
	}
	l.pdf.SetLeftMargin(left)
	l.pdf.SetRightMargin(right)

	if l.pdf.PageNo() == startPage {
		l.pdf.SetDrawColor(226, 232, 240)
		l.pdf.Rect(left, startY, width, l.pdf.GetY()-startY, "D")
		l.pdf.SetDrawColor(217, 119, 6)
		l.pdf.SetLineWidth(1)
		l.pdf.Line(left, startY, left, l.pdf.GetY())
		l.pdf.SetLineWidth(0.2)
		l.pdf.SetDrawColor(0, 0, 0)
	}
	l.pdf.SetX(left)
	l.pdf.Ln(4)
}

func (l *layout) statCard(n *html.Node) {
	l.keep(40)
	l.pdf.Ln(3)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		text := strings.TrimSpace(collapse(textContent(c)))
		switch {
		case hasClass(c, "stat-value", "stat-number"):
			l.bold++
			l.pdf.SetTextColor(217, 119, 6)
			l.centered(text, 26)
			l.pdf.SetTextColor(0, 0, 0)
			l.bold--
			l.apply()
		case hasClass(c, "stat-label"):
			l.centered(strings.ToUpper(text), 10)
		default:
			l.centered(text, bodySize)
		}
	}
	l.pdf.Ln(4)
}

func (l *layout) centered(text string, size float64) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	l.withSize(size, func() {
		l.pdf.MultiCell(0, size*0.5, l.text(text), "", "C", false)
	})
	l.pdf.Ln(1)
}

func (l *layout) titlePage(n *html.Node) {
	doc := goquery.NewDocumentFromNode(n)
	title := strings.TrimSpace(doc.Find("h1").First().Text())
	author := strings.TrimSpace(doc.Find(".title-author").First().Text())

	_, h := l.pdf.GetPageSize()
	l.pdf.SetY(h * 0.3)
	l.bold++
	l.centered(title, 32)
	l.bold--
	l.apply()

	l.pdf.Ln(8)
	l.pdf.SetTextColor(85, 85, 85)
	l.centered(author, 16)

	var imprint []string
	doc.Find(".title-imprint p").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			imprint = append(imprint, t)
		}
	})
	if len(imprint) > 0 {
		_, _, _, bottom := l.pdf.GetMargins()
		l.pdf.SetY(h - bottom - float64(len(imprint))*6 - 10)
		l.pdf.SetTextColor(136, 136, 136)
		for _, line := range imprint {
			l.centered(line, 11)
		}
	}
	l.pdf.SetTextColor(0, 0, 0)
	l.pdf.AddPage()
}

func (l *layout) table(n *html.Node) {
	var header []string
	var rows [][]string
	doc := goquery.NewDocumentFromNode(n)
	doc.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		isHeader := false
		tr.Children().Each(func(_ int, cell *goquery.Selection) {
			if goquery.NodeName(cell) == "th" {
				isHeader = true
			}
			cells = append(cells, strings.TrimSpace(collapse(cell.Text())))
		})
		if len(cells) == 0 {
			return
		}
		if isHeader && header == nil && len(rows) == 0 {
			header = cells
			return
		}
		rows = append(rows, cells)
	})

	cols := len(header)
	for _, r := range rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	if cols == 0 {
		return
	}

	const lh = 5.0
	left, _, _, _ := l.pdf.GetMargins()
	colWidth := l.contentWidth() / float64(cols)

	l.withSize(9.5, func() {
		if header != nil {
			l.bold++
			l.apply()
			l.keep(2 * lh * 2)
			l.pdf.SetFillColor(242, 242, 242)
			l.row(header, cols, colWidth, left, lh, true)
			l.bold--
			l.apply()
		}
		for _, r := range rows {
			l.row(r, cols, colWidth, left, lh, false)
		}
	})
	l.pdf.Ln(4)
}

func (l *layout) row(cells []string, cols int, colWidth, left, lh float64, fill bool) {
	height := lh
	for _, c := range cells {
		if h := l.estimate(c, colWidth-2, lh); h > height {
			height = h
		}
	}
	l.keep(height)

	y := l.pdf.GetY()
	l.pdf.SetDrawColor(221, 221, 221)
	for i := 0; i < cols; i++ {
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		x := left + float64(i)*colWidth
		style := "D"
		if fill {
			style = "FD"
		}
		l.pdf.Rect(x, y, colWidth, height, style)
		l.pdf.SetXY(x, y)
		l.pdf.MultiCell(colWidth, lh, l.text(text), "", "L", false)
	}
	l.pdf.SetDrawColor(0, 0, 0)
	l.pdf.SetXY(left, y+height)
}

func (l *layout) rule() {
	left, _, _, _ := l.pdf.GetMargins()
	width := l.contentWidth()
	l.pdf.Ln(3)
	y := l.pdf.GetY()
	l.pdf.SetDrawColor(221, 221, 221)
	l.pdf.Line(left+width*0.35, y, left+width*0.65, y)
	l.pdf.SetDrawColor(0, 0, 0)
	l.pdf.Ln(5)
}

var blockElements = map[string]bool{
	"p": true, "div": true, "ul": true, "ol": true, "table": true, "pre": true,
	"blockquote": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true,
	"h6": true, "section": true, "article": true, "hr": true, "figure": true,
}

func hasBlockChild(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && blockElements[c.Data] {
			return true
		}
	}
	return false
}

func hasElementChild(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return true
		}
	}
	return false
}

func hasClass(n *html.Node, classes ...string) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, have := range strings.Fields(a.Val) {
			for _, want := range classes {
				if have == want {
					return true
				}
			}
		}
	}
	return false
}

func textContent(n *html.Node) string {
	return goquery.NewDocumentFromNode(n).Text()
}

// collapse folds runs of whitespace into single spaces, keeping one
// leading and trailing space so inline runs stay separated.
func collapse(s string) string {
	if s == "" {
		return ""
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return " "
	}
	out := strings.Join(fields, " ")
	if isSpace(s[0]) {
		out = " " + out
	}
	if isSpace(s[len(s)-1]) {
		out += " "
	}
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r'
}
