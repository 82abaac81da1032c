// Nestegg server: portfolio accounting, projections and onboarding for
// the personal finance dashboard.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/itamarw/nestegg/internal/clientdata"
	"github.com/itamarw/nestegg/internal/clients/marketdata"
	"github.com/itamarw/nestegg/internal/config"
	"github.com/itamarw/nestegg/internal/database"
	"github.com/itamarw/nestegg/internal/domain"
	"github.com/itamarw/nestegg/internal/modules/analytics"
	analyticshandlers "github.com/itamarw/nestegg/internal/modules/analytics/handlers"
	"github.com/itamarw/nestegg/internal/modules/ledger"
	ledgerhandlers "github.com/itamarw/nestegg/internal/modules/ledger/handlers"
	markethandlers "github.com/itamarw/nestegg/internal/modules/market/handlers"
	"github.com/itamarw/nestegg/internal/modules/portfolio"
	portfoliohandlers "github.com/itamarw/nestegg/internal/modules/portfolio/handlers"
	profilemod "github.com/itamarw/nestegg/internal/modules/profile"
	profilehandlers "github.com/itamarw/nestegg/internal/modules/profile/handlers"
	projectionhandlers "github.com/itamarw/nestegg/internal/modules/projection/handlers"
	recommendationshandlers "github.com/itamarw/nestegg/internal/modules/recommendations/handlers"
	"github.com/itamarw/nestegg/internal/scheduler"
	"github.com/itamarw/nestegg/internal/server"
	"github.com/itamarw/nestegg/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New(logger.Config{Level: "error"})
		fallback.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Str("data_dir", cfg.DataDir).Msg("Starting nestegg server")

	// Three databases, three durability profiles: the audit trail gets
	// full fsync, the cache gets none.
	portfolioDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "portfolio.db"),
		Profile: database.ProfileStandard,
		Name:    "portfolio",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open portfolio database")
	}
	defer portfolioDB.Close()

	ledgerDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "ledger.db"),
		Profile: database.ProfileLedger,
		Name:    "ledger",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open ledger database")
	}
	defer ledgerDB.Close()

	cacheDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "client_data.db"),
		Profile: database.ProfileCache,
		Name:    "client_data",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open client data database")
	}
	defer cacheDB.Close()

	for _, db := range []*database.DB{portfolioDB, ledgerDB, cacheDB} {
		if err := db.Migrate(); err != nil {
			log.Fatal().Err(err).Str("database", db.Name()).Msg("Migration failed")
		}
	}

	clock := domain.SystemClock{}

	// Repositories
	cacheRepo := clientdata.NewRepository(cacheDB.Conn())
	positionRepo := ledger.NewPositionRepository(portfolioDB.Conn(), log)
	transactionRepo := ledger.NewTransactionRepository(ledgerDB.Conn(), log)
	profileRepo := profilemod.NewRepository(portfolioDB.Conn(), log)

	// Clients
	priceFeed := marketdata.NewClient(cfg.MarketDataURL, cacheRepo, cfg.PriceCacheTTL, log)

	// Services
	ledgerService := ledger.NewService(positionRepo, transactionRepo, clock, log)
	profileService := profilemod.NewService(profileRepo, cacheRepo, cfg.StatusCacheTTL, clock, log)
	portfolioService := portfolio.NewService(ledgerService, priceFeed, profileService, clock, log)
	analyticsService := analytics.NewService(portfolioService, log)

	// Background jobs
	sched := scheduler.New(log)
	if err := sched.AddJob(cfg.RefreshSchedule, scheduler.NewRefreshPricesJob(positionRepo, priceFeed, log)); err != nil {
		log.Fatal().Err(err).Msg("Failed to register price refresh job")
	}
	if err := sched.AddJob("@hourly", clientdata.NewCleanupJob(cacheRepo, log)); err != nil {
		log.Fatal().Err(err).Msg("Failed to register cache cleanup job")
	}
	sched.Start()
	defer sched.Stop()

	srv := server.New(server.Config{
		Log: log,
		Cfg: cfg,
		Modules: []server.RouteRegistrar{
			ledgerhandlers.NewHandler(ledgerService, log),
			portfoliohandlers.NewHandler(portfolioService, log),
			markethandlers.NewHandler(priceFeed, log),
			projectionhandlers.NewHandler(log),
			analyticshandlers.NewHandler(analyticsService, log),
			recommendationshandlers.NewHandler(log),
			profilehandlers.NewHandler(profileService, log),
		},
		SystemHandlers: server.NewSystemHandlers(
			[]*database.DB{portfolioDB, ledgerDB, cacheDB}, cfg.DataDir, log),
	})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatal().Err(err).Msg("HTTP server failed")
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
