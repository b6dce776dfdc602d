package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emberworks/ironhold/internal/catalog"
	"github.com/emberworks/ironhold/internal/config"
	"github.com/emberworks/ironhold/internal/currency"
	"github.com/emberworks/ironhold/internal/database"
	"github.com/emberworks/ironhold/internal/database/postgres"
	"github.com/emberworks/ironhold/internal/equipment"
	"github.com/emberworks/ironhold/internal/handler"
	"github.com/emberworks/ironhold/internal/inventory"
	"github.com/emberworks/ironhold/internal/logger"
	"github.com/emberworks/ironhold/internal/market"
	"github.com/emberworks/ironhold/internal/progression"
	"github.com/emberworks/ironhold/internal/server"
)

const (
	dbMaxConns       = 20
	dbMaxIdleTime    = 5 * time.Minute
	dbMaxLifetime    = 30 * time.Minute
	shutdownDeadline = 15 * time.Second
)

// @title Ironhold Economy API
// @version 1.0
// @description Server-side RPG economy engine: inventory, equipment, market, currency and progression.
// @BasePath /api/v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Init(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "ironhold",
	})
	log := slog.Default()

	if err := database.Migrate(cfg.GetDBConnString()); err != nil {
		log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	pool, err := database.NewPool(cfg.GetDBConnString(), dbMaxConns, dbMaxIdleTime, dbMaxLifetime)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	store := postgres.NewStore(pool)

	catalogService, err := catalog.NewService(store)
	if err != nil {
		log.Error("Failed to create catalog service", "error", err)
		os.Exit(1)
	}
	inventoryService := inventory.NewService(store)
	equipmentService := equipment.NewService(store, inventoryService)
	currencyService := currency.NewService(store)
	marketService := market.NewService(store, inventoryService, currencyService)
	progressionService := progression.NewService(store, currencyService)

	handler.InitValidator()

	srv := server.NewServer(cfg.Port, cfg.APIKey, pool, server.Services{
		Catalog:     catalogService,
		Inventory:   inventoryService,
		Equipment:   equipmentService,
		Market:      marketService,
		Currency:    currencyService,
		Progression: progressionService,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownDeadline)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("Server stopped")
}
