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

	"github.com/bistfolio/bistfolio/internal/modules/analysis"
	"github.com/bistfolio/bistfolio/internal/modules/ledger"
	"github.com/bistfolio/bistfolio/internal/modules/marketdata"
	"github.com/bistfolio/bistfolio/internal/modules/risk"
	"github.com/bistfolio/bistfolio/internal/modules/valuation"
	"github.com/bistfolio/bistfolio/internal/scheduler"
)

// Config holds server configuration
type Config struct {
	Port        int
	DevMode     bool
	Log         zerolog.Logger
	LedgerRepo  *ledger.Repository
	Valuations  *valuation.Service
	Risk        *risk.Service
	Dashboard   *analysis.Dashboard
	Sectors     *analysis.SectorAnalyzer
	History     *marketdata.HistoryDB
	MarketHours *scheduler.MarketHoursService
}

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger

	ledgerRepo  *ledger.Repository
	valuations  *valuation.Service
	risk        *risk.Service
	dashboard   *analysis.Dashboard
	sectors     *analysis.SectorAnalyzer
	history     *marketdata.HistoryDB
	marketHours *scheduler.MarketHoursService
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:      chi.NewRouter(),
		log:         cfg.Log.With().Str("component", "server").Logger(),
		ledgerRepo:  cfg.LedgerRepo,
		valuations:  cfg.Valuations,
		risk:        cfg.Risk,
		dashboard:   cfg.Dashboard,
		sectors:     cfg.Sectors,
		history:     cfg.History,
		marketHours: cfg.MarketHours,
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
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			r.Get("/status", s.handleSystemStatus)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", s.handleListTransactions)
			r.Post("/", s.handleCreateTransaction)
			r.Delete("/{id}", s.handleDeleteTransaction)
		})

		r.Route("/portfolio", func(r chi.Router) {
			r.Get("/holdings", s.handleHoldings)
			r.Get("/profit-loss", s.handleProfitLoss)
			r.Get("/timeline", s.handleTimeline)
			r.Get("/performance/{symbol}", s.handlePerformance)
			r.Get("/dashboard", s.handleDashboard)
			r.Get("/sectors", s.handleSectors)
		})

		r.Get("/risk/assessment", s.handleRiskAssessment)
		r.Get("/charts/{symbol}", s.handleChart)
		r.Post("/events", s.handleCorporateEvent)
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
