// Package server wires the HTTP API: middleware, routing and the
// process-level health and status endpoints.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/etfolio/etfolio/internal/database"
	"github.com/etfolio/etfolio/internal/modules/analytics"
	"github.com/etfolio/etfolio/internal/modules/charts"
	"github.com/etfolio/etfolio/internal/modules/dictionary"
	"github.com/etfolio/etfolio/internal/modules/etf"
	"github.com/etfolio/etfolio/internal/modules/portfolio"
	"github.com/etfolio/etfolio/internal/modules/recommendation"
	"github.com/etfolio/etfolio/internal/scheduler"
)

// Config holds server configuration
type Config struct {
	Port    int
	Log     zerolog.Logger
	DB      *database.DB
	DevMode bool

	Scheduler *scheduler.Scheduler

	ETF            *etf.Handler
	Analytics      *analytics.Handler
	Charts         *charts.Handler
	Portfolio      *portfolio.Handler
	Recommendation *recommendation.Handler
	Dictionary     *dictionary.Handler
}

// Server represents the HTTP server
type Server struct {
	router    *chi.Mux
	server    *http.Server
	log       zerolog.Logger
	db        *database.DB
	scheduler *scheduler.Scheduler
	startedAt time.Time

	etf            *etf.Handler
	analytics      *analytics.Handler
	charts         *charts.Handler
	portfolio      *portfolio.Handler
	recommendation *recommendation.Handler
	dictionary     *dictionary.Handler
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:         chi.NewRouter(),
		log:            cfg.Log.With().Str("component", "server").Logger(),
		db:             cfg.DB,
		scheduler:      cfg.Scheduler,
		startedAt:      time.Now(),
		etf:            cfg.ETF,
		analytics:      cfg.Analytics,
		charts:         cfg.Charts,
		portfolio:      cfg.Portfolio,
		recommendation: cfg.Recommendation,
		dictionary:     cfg.Dictionary,
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// Timeout
	s.router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Compress responses
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	// Health check
	s.router.Get("/health", s.handleHealth)

	// API routes
	s.router.Route("/api", func(r chi.Router) {
		// System
		r.Route("/system", func(r chi.Router) {
			r.Get("/status", s.handleSystemStatus)
		})

		// ETF catalog, registry, analytics and charts
		r.Route("/etf", func(r chi.Router) {
			r.Get("/list", s.etf.HandleList)
			r.Get("/categories", s.etf.HandleCategories)
			r.Post("/", s.etf.HandleCreate)
			r.Get("/", s.etf.HandleGetAll)
			r.Route("/{ticker}", func(r chi.Router) {
				r.Get("/info", s.etf.HandleGetInfo)
				r.Get("/analytics", s.analytics.HandleGetAnalytics)
				r.Route("/chart", func(r chi.Router) {
					r.Get("/price", s.charts.HandlePriceChart)
					r.Get("/dividend", s.charts.HandleDividendChart)
					r.Get("/cumulative-return", s.charts.HandleCumulativeReturnChart)
				})
				r.Delete("/", s.etf.HandleDelete)
			})
		})

		// Portfolio holdings and derived views
		r.Route("/portfolio", func(r chi.Router) {
			r.Post("/holdings", s.portfolio.HandleAddHolding)
			r.Get("/holdings", s.portfolio.HandleGetHoldings)
			r.Put("/holdings/{id}", s.portfolio.HandleUpdateHolding)
			r.Delete("/holdings/{id}", s.portfolio.HandleDeleteHolding)
			r.Get("/summary", s.portfolio.HandleGetSummary)
			r.Get("/history", s.portfolio.HandleGetHistory)
			r.Get("/chart/allocation", s.portfolio.HandleAllocationChart)
			r.Get("/correlation", s.portfolio.HandleGetCorrelation)
			r.Get("/recommendations", s.recommendation.HandleGetRecommendations)
		})

		// Stock market glossary
		r.Route("/dictionary", func(r chi.Router) {
			r.Get("/terms", s.dictionary.HandleTerms)
			r.Get("/categories", s.dictionary.HandleCategories)
			r.Get("/categories/{category}", s.dictionary.HandleCategory)
			r.Get("/search", s.dictionary.HandleSearch)
		})
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
