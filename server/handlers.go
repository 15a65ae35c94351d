package server

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/gaurav-prasanna/luxescript/core"
	"github.com/gaurav-prasanna/luxescript/core/assemble"
	"github.com/gaurav-prasanna/luxescript/core/export"
	"github.com/gaurav-prasanna/luxescript/core/i18n"
	"github.com/gaurav-prasanna/luxescript/core/render"
	"github.com/gaurav-prasanna/luxescript/core/style"
)

// maxBodyBytes bounds request bodies, manuscripts included.
const maxBodyBytes = 8 << 20

//go:embed templates/index.html.tmpl
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html.tmpl"))

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps err onto a status and a user-facing message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := core.StatusCode(err)
	msg := err.Error()

	var verrs validation.Errors
	var perr *core.ProviderError
	switch {
	case errors.As(err, &verrs):
		status = http.StatusBadRequest
	case errors.Is(err, export.ErrUnknownFormat):
		status = http.StatusNotFound
	case errors.As(err, &perr):
		msg = perr.Message
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "status", status, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return validation.Errors{"body": errors.New("invalid JSON: " + err.Error())}
	}
	return nil
}

// language resolves the ?lang= of a page view, falling back to the default.
func (s *Server) language(raw string) core.Language {
	if lang, err := core.ParseLanguage(raw); err == nil {
		return lang
	}
	return s.cfg.LanguageValue()
}

// bodyLanguage resolves a language from a request body. Empty selects the
// default; anything other than pt or en is a validation error.
func (s *Server) bodyLanguage(raw string) (core.Language, error) {
	if raw == "" {
		return s.cfg.LanguageValue(), nil
	}
	lang, err := core.ParseLanguage(raw)
	if err != nil {
		return "", validation.Errors{"language": err}
	}
	return lang, nil
}

type styleResponse struct {
	ID string `json:"id"`
	style.Metadata
}

type fontResponse struct {
	Name   core.FontChoice `json:"name"`
	Family string          `json:"family"`
}

type indexData struct {
	Lang       core.Language
	Navbar     map[string]string
	Formatter  map[string]string
	Settings   map[string]string
	Preview    map[string]string
	Styles     []styleResponse
	Fonts      []fontResponse
	Font       core.FontChoice
	FontFamily template.CSS
	Style      string
	Preserve   bool
	Metadata   core.BookMetadata
	TitleBlock template.HTML
	Fragment   template.HTML
	Stylesheet template.CSS
	FontsURL   string
	MermaidURL string
	CanExport  bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	lang := s.language(r.URL.Query().Get("lang"))
	fragment, meta, _ := s.workspace(r).snapshot()

	data := indexData{
		Lang:       lang,
		Navbar:     i18n.Section(lang, "navbar"),
		Formatter:  i18n.Section(lang, "formatter"),
		Settings:   i18n.Section(lang, "settings"),
		Preview:    i18n.Section(lang, "preview"),
		Styles:     s.styleList(),
		Fonts:      fontList(),
		Font:       s.cfg.FontValue(),
		FontFamily: template.CSS(s.cfg.FontValue().CSSFamily()),
		Style:      string(style.Canonical(s.cfg.Style)),
		Preserve:   s.cfg.PreserveContent,
		Metadata:   meta,
		TitleBlock: template.HTML(assemble.TitleBlock(meta)),
		Fragment:   template.HTML(fragment),
		Stylesheet: template.CSS(render.Stylesheet()),
		FontsURL:   render.FontsURL,
		MermaidURL: render.MermaidURL,
		CanExport:  fragment != "",
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		s.logger.Error("rendering index", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"formatting": s.formatter != nil,
		"sessions":   s.sessions.count(),
	})
}

func (s *Server) styleList() []styleResponse {
	all := s.styles.All()
	out := make([]styleResponse, len(all))
	for i, d := range all {
		out[i] = styleResponse{ID: string(d.ID), Metadata: d.Metadata}
	}
	return out
}

func (s *Server) handleStyles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.styleList())
}

func fontList() []fontResponse {
	fonts := core.Fonts()
	out := make([]fontResponse, len(fonts))
	for i, f := range fonts {
		out[i] = fontResponse{Name: f, Family: f.CSSFamily()}
	}
	return out
}

func (s *Server) handleFonts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, fontList())
}

func (s *Server) handleI18n(w http.ResponseWriter, r *http.Request) {
	lang, err := core.ParseLanguage(chi.URLParam(r, "lang"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, i18n.Catalog(lang))
}

type formatRequest struct {
	Content         string `json:"content"`
	Style           string `json:"style"`
	Language        string `json:"language"`
	PreserveContent *bool  `json:"preserveContent"`
}

type documentResponse struct {
	HTML       string `json:"html"`
	TitleBlock string `json:"titleBlock,omitempty"`
	Generation uint64 `json:"generation"`
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	if s.formatter == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "formatting is not configured"})
		return
	}

	var body formatRequest
	if err := decodeJSON(w, r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	lang, err := s.bodyLanguage(body.Language)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	req := core.FormatRequest{
		Content:         body.Content,
		Style:           body.Style,
		Language:        lang,
		PreserveContent: s.cfg.PreserveContent,
	}
	if req.Style == "" {
		req.Style = s.cfg.Style
	}
	if body.PreserveContent != nil {
		req.PreserveContent = *body.PreserveContent
	}

	ws := s.workspace(r)
	gen, ok := ws.beginFormat()
	if !ok {
		writeJSON(w, http.StatusConflict, errorResponse{Error: "formatting already in progress"})
		return
	}

	fragment, err := s.formatter.Format(r.Context(), req)
	ws.finishFormat(gen, fragment, err == nil)

	switch {
	case errors.Is(err, core.ErrEmptyInput):
		w.WriteHeader(http.StatusNoContent)
	case err != nil:
		s.writeError(w, r, err)
	default:
		writeJSON(w, http.StatusOK, documentResponse{HTML: fragment, Generation: gen})
	}
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	fragment, meta, gen := s.workspace(r).snapshot()
	writeJSON(w, http.StatusOK, documentResponse{
		HTML:       fragment,
		TitleBlock: assemble.TitleBlock(meta),
		Generation: gen,
	})
}

func (s *Server) handleGetMetadata(w http.ResponseWriter, r *http.Request) {
	_, meta, _ := s.workspace(r).snapshot()
	writeJSON(w, http.StatusOK, meta)
}

func validateMetadata(m core.BookMetadata) error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Title, validation.Length(0, 300)),
		validation.Field(&m.Author, validation.Length(0, 300)),
		validation.Field(&m.Publisher, validation.Length(0, 300)),
		validation.Field(&m.Year, validation.Length(0, 32)),
		validation.Field(&m.HeaderText, validation.Length(0, 200)),
		validation.Field(&m.FooterText, validation.Length(0, 200)),
	)
}

func (s *Server) handlePutMetadata(w http.ResponseWriter, r *http.Request) {
	meta := core.DefaultMetadata()
	if err := decodeJSON(w, r, &meta); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := validateMetadata(meta); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.workspace(r).setMetadata(meta)
	writeJSON(w, http.StatusOK, meta)
}

type exportRequest struct {
	Font     string `json:"font"`
	Language string `json:"language"`
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := export.ParseFormat(chi.URLParam(r, "format"))

	var body exportRequest
	if err := decodeJSON(w, r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	lang, err := s.bodyLanguage(body.Language)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := core.RenderOptions{Font: s.cfg.FontValue(), Language: lang}
	if body.Font != "" {
		font, err := core.ParseFont(body.Font)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		opts.Font = font
	}

	ws := s.workspace(r)
	if format == export.FormatPDF {
		if !ws.beginExport() {
			writeJSON(w, http.StatusConflict, errorResponse{Error: "export already in progress"})
			return
		}
		defer ws.finishExport()
	}

	fragment, meta, _ := ws.snapshot()
	artifact, err := s.exporter.Export(r.Context(), format, fragment, meta, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if artifact == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": artifact.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(artifact.Data)
}
