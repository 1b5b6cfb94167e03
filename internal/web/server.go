// Package web provides the HTTP server, pages and JSON API for the estate
// catalog.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/evcraddock/estate/internal/geo"
	"github.com/evcraddock/estate/internal/listing"
	"github.com/evcraddock/estate/internal/logging"
	"github.com/evcraddock/estate/internal/search"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Options configures a Server.
type Options struct {
	// FilterDelay is the simulated latency applied to interactive filter
	// updates.
	FilterDelay time.Duration
	// Viewport is the default map size.
	Viewport geo.Viewport
	// CORSOrigins are the origins allowed to call /api.
	CORSOrigins []string
}

// Server is the web UI and API HTTP server.
type Server struct {
	catalog   *listing.Catalog
	engine    *search.Engine
	sessions  *search.Sessions
	templates *template.Template
	router    chi.Router
	viewport  geo.Viewport
}

// NewServer creates a server over catalog. Call Close to release the
// search caches.
func NewServer(catalog *listing.Catalog, opts Options) (*Server, error) {
	funcMap := template.FuncMap{
		"formatPrice":  formatPrice,
		"formatNumber": formatNumber,
		"formatBaths":  formatBaths,
		"priceSuffix":  priceSuffix,
		"markerStyle":  markerStyle,
		"seq":          tmplSeq,
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	if opts.Viewport.Width <= 0 || opts.Viewport.Height <= 0 {
		opts.Viewport = geo.Viewport{Width: 800, Height: 600}
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}

	engine := search.NewEngine(catalog)
	s := &Server{
		catalog:   catalog,
		engine:    engine,
		sessions:  search.NewSessions(engine, opts.FilterDelay, search.DefaultSessionIdle),
		templates: tmpl,
		viewport:  opts.Viewport,
	}

	staticContent, err := fs.Sub(staticFS, "static")
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("creating static sub-fs: %w", err)
	}

	r := chi.NewRouter()
	r.Use(logging.RequestLogger)
	r.Use(middleware.Recoverer)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticContent))))
	r.Get("/", s.handleHome)
	r.Get("/properties", s.handleProperties)
	r.Get("/property/{id}", s.handleDetail)
	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", logging.RequestIDHeader},
			ExposedHeaders: []string{logging.RequestIDHeader},
			MaxAge:         300,
		}))
		r.Get("/listings", s.apiListListings)
		r.Get("/listings/{id}", s.apiGetListing)
		r.Get("/markers", s.apiMarkers)
		r.Get("/options", s.apiOptions)
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			apiError(w, "not found", http.StatusNotFound)
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		})
	})

	r.NotFound(s.handleNotFound)
	s.router = r

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases the search caches.
func (s *Server) Close() {
	s.sessions.Close()
	s.engine.Close()
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting web server", "addr", addr, "listings", s.catalog.Len())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}

func tmplSeq(start, end int) []int {
	var s []int
	for i := start; i <= end; i++ {
		s = append(s, i)
	}
	return s
}
