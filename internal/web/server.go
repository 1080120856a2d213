// Package web provides the HTTP server, HTML dashboard and JSON API for the
// sweeper.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/sweeper/internal/config"
	"github.com/JonMunkholm/sweeper/internal/core"
	"github.com/JonMunkholm/sweeper/internal/metrics"
	appmw "github.com/JonMunkholm/sweeper/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

var errRateLimited = errors.New("rate limit exceeded")

// Server is the HTTP server for the sweeper.
type Server struct {
	service  *core.Service
	cfg      *config.Config
	metrics  *metrics.Metrics
	validate *requestValidator
	router   *chi.Mux
	server   *http.Server
}

// NewServer creates a new Server instance. m may be nil to disable metrics.
func NewServer(service *core.Service, cfg *config.Config, m *metrics.Metrics) *Server {
	s := &Server{
		service:  service,
		cfg:      cfg,
		metrics:  m,
		validate: newRequestValidator(),
		router:   chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(appmw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(appmw.Logger)
	s.router.Use(middleware.Recoverer)
	if s.metrics != nil {
		s.router.Use(s.metrics.Middleware)
	}
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))

	if s.cfg.Rate.Enabled {
		s.router.Use(newRateLimiter(s.cfg.Rate.RequestsPerMinute).middleware(s))
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	if s.metrics != nil && s.cfg.Metrics.Enabled {
		s.router.Handle(s.cfg.Metrics.Path, s.metrics.Handler())
	}

	uploadLimit := func(next http.Handler) http.Handler { return next }
	if s.cfg.Rate.Enabled {
		uploadLimit = newRateLimiter(s.cfg.Rate.UploadLimit).middleware(s)
	}

	// Pages
	s.router.Group(func(r chi.Router) {
		r.Use(s.sessionMiddleware)

		r.Get("/", s.handleDashboard)
		r.With(uploadLimit).Post("/files", s.handleUploadForm)
		r.Post("/files/{fileID}/remove", s.handleRemoveForm)
		r.Post("/files/{fileID}/{action}", s.handleActionForm)
		r.Get("/files/{fileID}/download", s.handleDownload)
		r.Post("/session/reset", s.handleResetSession)
		r.Post("/community", s.handleJoinCommunity)
	})

	// API routes
	s.router.Route("/api", func(r chi.Router) {
		r.Use(appmw.APIKeyAuth(&s.cfg.Security))
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Get("/uploads/status", s.handleUploadQueueStatus)

		r.Group(func(r chi.Router) {
			r.Use(s.sessionMiddleware)

			r.Get("/session", s.handleAPISession)
			r.Delete("/session", s.handleAPIEndSession)
			r.Post("/community", s.handleAPIJoinCommunity)
			r.With(uploadLimit).Post("/files", s.handleAPIUpload)
			r.Delete("/files/{fileID}", s.handleAPIRemoveFile)
			r.Post("/files/{fileID}/{action}", s.handleAPIAction)
		})
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("starting server", "addr", addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Prevent MIME type sniffing
			w.Header().Set("X-Content-Type-Options", "nosniff")

			// Prevent clickjacking
			w.Header().Set("X-Frame-Options", "DENY")

			// Pages use only inline styles and inline SVG
			if enableCSP {
				w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; form-action 'self'")
			}

			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			next.ServeHTTP(w, r)
		})
	}
}
