// Package api provides the HTTP API server and handlers for the Vault of
// Games server.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vaultofgames/vault-server/internal/auth"
	"github.com/vaultofgames/vault-server/internal/metrics"
	"github.com/vaultofgames/vault-server/internal/store"
)

// Config holds the HTTP-level settings of the server.
type Config struct {
	Version            string
	CORSAllowedOrigins []string
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    store.Store
	services *Services
	tokens   *auth.TokenService
	metrics  *metrics.Metrics
	router   *chi.Mux
	api      huma.API
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
// m may be nil, in which case nothing is measured and /metrics is absent.
func NewServer(
	cfg Config,
	st store.Store,
	services *Services,
	tokens *auth.TokenService,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}

	s := &Server{
		store:    st,
		services: services,
		tokens:   tokens,
		metrics:  m,
		router:   chi.NewRouter(),
		logger:   logger,
	}

	s.setupMiddleware(cfg)

	humaConfig := huma.DefaultConfig("Vault of Games API", cfg.Version)
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:   "http",
			Scheme: "bearer",
		},
	}
	// Responses are plain JSON without $schema links.
	humaConfig.CreateHooks = nil

	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerUserRoutes()
	s.registerGameRoutes()
	s.registerCategoryRoutes()

	if m != nil {
		s.router.Handle("/metrics", m.Handler())
	}

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API returns the underlying huma API.
func (s *Server) API() huma.API {
	return s.api
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware(cfg Config) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.metrics.Middleware)

	if len(cfg.CORSAllowedOrigins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			MaxAge:         300,
		}))
	}
}
