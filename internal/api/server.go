// Package api exposes the read-only query API over HTTP. It serves a small
// JSON surface for inspecting users, projects, and aggregate stats; all
// writes stay on the Telegram side.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/edenlabs/edenbot/internal/database"
)

// Server wraps the HTTP server hosting the query API.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewRouter builds the query API route tree backed by the store.
func NewRouter(store database.Store, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "api_server")

	h := &Handler{store: store, logger: log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))
	// The API is read-only, so any origin may query it.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/", h.root)
	r.Get("/health", h.health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/users/{telegram_id}", h.getUser)
		r.Get("/users/{telegram_id}/projects", h.getUserProjects)
		r.Get("/projects/{id}", h.getProject)
		r.Get("/stats", h.getStats)
	})

	return r
}

// NewServer creates the query API server listening on addr.
func NewServer(addr string, store database.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "api_server")

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(store, logger),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
		},
		logger: log,
	}
}

// ListenAndServe runs the server until Shutdown is called or it fails.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests up
// to the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// requestLogger logs one line per request with method, path, status, and
// duration.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.InfoContext(r.Context(), "Handled API request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()))
		})
	}
}
