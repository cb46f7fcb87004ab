// Package api provides the HTTP API server and handlers for the library storefront.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sutapaslibrary/library-server/internal/auth"
	"github.com/sutapaslibrary/library-server/internal/logger"
	"github.com/sutapaslibrary/library-server/internal/metrics"
	"github.com/sutapaslibrary/library-server/internal/ratelimit"
	"github.com/sutapaslibrary/library-server/internal/sse"
	"github.com/sutapaslibrary/library-server/internal/store"
)

// Options tunes the HTTP surface.
type Options struct {
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store      *store.Store
	services   *Services
	provider   *auth.Provider
	sseManager *sse.Manager
	metrics    *metrics.Metrics
	router     *chi.Mux
	api        huma.API
	logger     *slog.Logger

	sessionLimiter  *ratelimit.KeyedRateLimiter
	checkoutLimiter *ratelimit.KeyedRateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st *store.Store, services *Services, provider *auth.Provider, sseManager *sse.Manager, m *metrics.Metrics, opts Options, log *slog.Logger) *Server {
	if opts.RateLimitRPS <= 0 {
		opts.RateLimitRPS = 2
	}
	if opts.RateLimitBurst <= 0 {
		opts.RateLimitBurst = 10
	}

	s := &Server{
		store:           st,
		services:        services,
		provider:        provider,
		sseManager:      sseManager,
		metrics:         m,
		router:          chi.NewRouter(),
		logger:          log,
		sessionLimiter:  ratelimit.New(opts.RateLimitRPS, opts.RateLimitBurst),
		checkoutLimiter: ratelimit.New(opts.RateLimitRPS, opts.RateLimitBurst),
	}

	s.setupMiddleware(opts.CORSOrigins)

	humaConfig := huma.DefaultConfig("Sutapa's Library API", "1.0.0")
	humaConfig.Info.Description = "Catalog, cart, checkout and reader for Sutapa's Library."
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API returns the huma API, for tests and OpenAPI export.
func (s *Server) API() huma.API {
	return s.api
}

// Close releases the rate limiters' background goroutines.
func (s *Server) Close() {
	s.sessionLimiter.Stop()
	s.checkoutLimiter.Stop()
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware(origins []string) {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))
	if s.metrics != nil {
		s.router.Use(s.metrics.Middleware)
	}
	s.router.Use(identityMiddleware(s.provider))
}

// registerRoutes registers every operation. Plain chi routes cover the
// endpoints that do not speak JSON.
func (s *Server) registerRoutes() {
	s.registerHealthRoutes()
	s.registerSessionRoutes()
	s.registerBookRoutes()
	s.registerReviewRoutes()
	s.registerCartRoutes()
	s.registerCheckoutRoutes()
	s.registerLibraryRoutes()
	s.registerReaderRoutes()
	s.registerSearchRoutes()

	s.router.Get("/api/v1/cart/stream", s.handleCartStream)
	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics.Handler())
	}
}

// requestLogger attaches a request-scoped logger to the context and logs
// each completed request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqLogger := s.logger.With("request_id", middleware.GetReqID(r.Context()))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(logger.NewContext(r.Context(), reqLogger)))

		level := slog.LevelDebug
		if ww.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		reqLogger.Log(r.Context(), level, "request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}
