package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/api"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/config"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/database"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/ledger"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/repository"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/scheduler"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/service"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/version"
	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/yahoo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	config.SetupLogger(cfg)
	slog.Info("starting portfolio growth tracker", "version", version.Version)

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		slog.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		slog.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	slog.Info("Connected to database", "path", cfg.Database.Path)

	// Create repositories
	accountRepo := repository.NewAccountRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	materializedRepo := repository.NewMaterializedRepository(db)

	// Create services
	yahooClient := yahoo.NewFinanceClient(cfg.Yahoo)
	priceService := service.NewPriceService(priceRepo, transactionRepo, yahooClient, cfg.Prices.FetchConcurrency)
	growthService := service.NewGrowthService(accountRepo, transactionRepo, materializedRepo, priceService, ledger.NYSECalendar{})

	services := api.Services{
		System:      service.NewSystemService(db),
		Account:     service.NewAccountService(accountRepo),
		Holdings:    service.NewHoldingsService(accountRepo, transactionRepo, orderRepo),
		Transaction: service.NewTransactionService(db, accountRepo, transactionRepo, materializedRepo),
		Growth:      growthService,
	}

	// Nightly price backfill and growth materialization
	jobs := scheduler.New()
	err = jobs.NewCrontabJob("refresh-growth", func(ctx context.Context) error {
		return refreshGrowth(ctx, priceService, growthService)
	}, cfg.Prices.RefreshCron, false)
	if err != nil {
		slog.Error("Failed to schedule refresh job", "error", err)
		os.Exit(1)
	}
	jobs.Start()

	// Create router
	router := api.NewRouter(services, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Starting server", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	jobs.Stop()

	slog.Info("Server exited")
}

// refreshGrowth backfills the price cache for every ledger symbol and then recomputes the
// materialized growth series of every account.
func refreshGrowth(ctx context.Context, prices *service.PriceService, growth *service.GrowthService) error {
	today := time.Now().UTC()

	result, err := prices.RefreshAll(ctx, today)
	if err != nil {
		return err
	}
	for _, e := range result.Errors {
		slog.Warn("price refresh failed", "symbol", e.Symbol, "error", e.Error)
	}
	slog.Info("price refresh finished", "updated", len(result.UpdatedSymbols), "failed", len(result.Errors))

	return growth.MaterializeAll(ctx, today)
}
