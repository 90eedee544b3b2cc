package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/etfolio/etfolio/internal/clients/yahoo"
	"github.com/etfolio/etfolio/internal/config"
	"github.com/etfolio/etfolio/internal/database"
	"github.com/etfolio/etfolio/internal/modules/analytics"
	"github.com/etfolio/etfolio/internal/modules/charts"
	"github.com/etfolio/etfolio/internal/modules/correlation"
	"github.com/etfolio/etfolio/internal/modules/dictionary"
	"github.com/etfolio/etfolio/internal/modules/etf"
	"github.com/etfolio/etfolio/internal/modules/portfolio"
	"github.com/etfolio/etfolio/internal/modules/recommendation"
	"github.com/etfolio/etfolio/internal/scheduler"
	"github.com/etfolio/etfolio/internal/server"
	"github.com/etfolio/etfolio/pkg/logger"
)

func main() {
	// Initialize logger
	log := logger.New(logger.Config{
		Level:  "info",
		Pretty: true,
	})

	log.Info().Msg("Starting ETFolio")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Market data gateway
	market := yahoo.NewClient(log)

	// Repositories
	etfRepo := etf.NewRepository(db.Conn(), log)
	portfolioRepo := portfolio.NewRepository(db.Conn(), log)

	// Services
	catalog := etf.NewCatalog(time.Duration(cfg.CatalogTTLHours)*time.Hour, log)
	analyticsService := analytics.NewService(cfg.RiskFreeRate, log)
	correlationService := correlation.NewService(market, cfg.FetchWorkers, log)
	recommendationService := recommendation.NewService(market, analyticsService, cfg.FetchWorkers, log)
	chartService := charts.NewService(log)
	portfolioService := portfolio.NewService(portfolioRepo, market, cfg.FetchWorkers, log)

	// Initialize scheduler
	sched := scheduler.New(log)
	if err := registerJobs(sched, cfg, catalog, portfolioService, log); err != nil {
		log.Fatal().Err(err).Msg("Failed to register jobs")
	}
	sched.Start()
	defer sched.Stop()

	// Initialize HTTP server
	srv := server.New(server.Config{
		Port:      cfg.Port,
		Log:       log,
		DB:        db,
		DevMode:   cfg.DevMode,
		Scheduler: sched,

		ETF:            etf.NewHandler(etfRepo, catalog, market, log),
		Analytics:      analytics.NewHandler(etfRepo, market, analyticsService, log),
		Charts:         charts.NewHandler(market, chartService, log),
		Portfolio:      portfolio.NewHandler(portfolioRepo, etfRepo, portfolioService, correlationService, chartService, log),
		Recommendation: recommendation.NewHandler(recommendationService, log),
		Dictionary:     dictionary.NewHandler(log),
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

func registerJobs(
	sched *scheduler.Scheduler,
	cfg *config.Config,
	catalog *etf.Catalog,
	portfolioService *portfolio.Service,
	log zerolog.Logger,
) error {
	// Refresh the curated ETF catalog daily, before Korean market open
	if err := sched.AddJob("0 0 6 * * *", scheduler.NewCatalogRefreshJob(catalog, log)); err != nil {
		return err
	}

	// Record a portfolio valuation snapshot daily after US market close
	return sched.AddJob(cfg.SnapshotSchedule, scheduler.NewSnapshotJob(portfolioService, log))
}
