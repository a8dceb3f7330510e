package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bistfolio/bistfolio/internal/config"
	"github.com/bistfolio/bistfolio/internal/database"
	"github.com/bistfolio/bistfolio/internal/modules/analysis"
	"github.com/bistfolio/bistfolio/internal/modules/ledger"
	"github.com/bistfolio/bistfolio/internal/modules/marketdata"
	"github.com/bistfolio/bistfolio/internal/modules/risk"
	"github.com/bistfolio/bistfolio/internal/modules/valuation"
	"github.com/bistfolio/bistfolio/internal/scheduler"
	"github.com/bistfolio/bistfolio/internal/server"
	"github.com/bistfolio/bistfolio/pkg/cache"
	"github.com/bistfolio/bistfolio/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting bistfolio")

	// Initialize ledger database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	ledgerRepo := ledger.NewRepository(db.Conn(), log)
	if err := ledgerRepo.EnsureSchema(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize ledger schema")
	}

	// Market data plumbing
	history := marketdata.NewHistoryDB(cfg.HistoryDir, log)
	provider := marketdata.NewYahooProvider(log)

	ttlCache := cache.NewTTL(30 * time.Second)
	sectorProvider := marketdata.NewYahooSectorProvider(ttlCache, log)

	// Domain services
	valuations := valuation.NewService(ledgerRepo, history, log)
	riskService := risk.NewService(ledgerRepo, valuations, log)
	dashboard := analysis.NewDashboard(ledgerRepo, valuations, ttlCache, log)
	sectors := analysis.NewSectorAnalyzer(ledgerRepo, valuations, sectorProvider, log)

	// Scheduler and background jobs
	marketHours := scheduler.NewMarketHoursService(log)
	sched := scheduler.New(log)

	refreshJob := scheduler.NewHistoryRefreshJob(ledgerRepo, history, provider, marketHours, log)
	if err := sched.AddJob("0 */30 * * * *", refreshJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register history refresh job")
	}

	sched.Start()
	defer sched.Stop()

	// Warm price history on startup so the first queries have data
	go func() {
		if err := sched.RunNow(refreshJob); err != nil {
			log.Warn().Err(err).Msg("Initial history refresh failed")
		}
	}()

	// Initialize HTTP server
	srv := server.New(server.Config{
		Port:        cfg.Port,
		DevMode:     cfg.DevMode,
		Log:         log,
		LedgerRepo:  ledgerRepo,
		Valuations:  valuations,
		Risk:        riskService,
		Dashboard:   dashboard,
		Sectors:     sectors,
		History:     history,
		MarketHours: marketHours,
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
