// Package server is the LuxeScript HTTP workspace: an editor page with a
// live preview, a JSON API for formatting and metadata, and export downloads.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/cors"

	"github.com/gaurav-prasanna/luxescript/config"
	"github.com/gaurav-prasanna/luxescript/core"
	"github.com/gaurav-prasanna/luxescript/core/export"
	"github.com/gaurav-prasanna/luxescript/core/style"
)

// Formatter turns a request into a formatted book fragment.
type Formatter interface {
	Format(ctx context.Context, req core.FormatRequest) (string, error)
}

// Server serves the workspace.
type Server struct {
	router    chi.Router
	handler   http.Handler
	formatter Formatter
	styles    *style.Registry
	exporter  *export.Exporter
	sessions  *sessionStore
	cfg       *config.Config
	logger    *slog.Logger
}

// New builds the router. formatter may be nil, in which case formatting
// answers 503 while previews, metadata and exports keep working.
func New(cfg *config.Config, formatter Formatter, styles *style.Registry, exporter *export.Exporter, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if styles == nil {
		styles = style.Default()
	}
	ttl, err := time.ParseDuration(cfg.Server.SessionTTL)
	if err != nil || ttl <= 0 {
		ttl = 24 * time.Hour
	}

	s := &Server{
		router:    chi.NewRouter(),
		formatter: formatter,
		styles:    styles,
		exporter:  exporter,
		sessions:  newSessionStore(ttl, cfg.Metadata),
		cfg:       cfg,
		logger:    logger,
	}
	s.routes()

	s.handler = cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	}).Handler(s.router)
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLog(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(s.session)

	r.Get("/", s.handleIndex)
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/styles", s.handleStyles)
		r.Get("/fonts", s.handleFonts)
		r.Get("/i18n/{lang}", s.handleI18n)
		r.Get("/document", s.handleDocument)
		r.Get("/metadata", s.handleGetMetadata)
		r.Put("/metadata", s.handlePutMetadata)
		r.Post("/export/{format}", s.handleExport)

		r.Group(func(r chi.Router) {
			if n := s.cfg.Server.FormatPerMinute; n > 0 {
				r.Use(httprate.LimitByIP(n, time.Minute))
			}
			r.Post("/format", s.handleFormat)
		})
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe serves on the configured address until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// formatting waits on the provider
		WriteTimeout: 6 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listening on %s: %w", s.cfg.Server.Addr, err)
	case <-ctx.Done():
		s.logger.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
