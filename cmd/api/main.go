package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cuatrovientos/retail-api/internal/application/service"
	"github.com/cuatrovientos/retail-api/internal/config"
	"github.com/cuatrovientos/retail-api/internal/domain/entity"
	domainRepo "github.com/cuatrovientos/retail-api/internal/domain/repository"
	"github.com/cuatrovientos/retail-api/internal/infrastructure/database"
	"github.com/cuatrovientos/retail-api/internal/infrastructure/metrics"
	"github.com/cuatrovientos/retail-api/internal/infrastructure/repository"
	"github.com/cuatrovientos/retail-api/internal/presentation/http/handler"
	"github.com/cuatrovientos/retail-api/internal/presentation/http/middleware"
	"github.com/cuatrovientos/retail-api/internal/presentation/http/routes"
	"github.com/cuatrovientos/retail-api/pkg/logger"
	"github.com/cuatrovientos/retail-api/pkg/printer"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const idempotencySweepInterval = time.Hour

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stateRepo, idempotencyRepo, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		log.Error("failed to open storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer closeStorage()

	// Seed default data
	if err := database.SeedDefaultData(ctx, stateRepo); err != nil {
		log.Warn("failed to seed default data", "error", err)
	}

	// Initialize services
	store, err := service.NewStoreService(ctx, stateRepo, service.StoreOptions{
		Users:    database.DefaultUsers(),
		Brands:   database.DefaultBrands(),
		Location: cfg.App.Location(),
		Logger:   log,
		Metrics:  metrics.New(prometheus.DefaultRegisterer),
	})
	if err != nil {
		log.Error("failed to load store state", "error", err)
		os.Exit(1)
	}
	reportService := service.NewReportService(store)
	exportService := service.NewExportService(store, reportService)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Warn("failed to initialize printer", "error", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	defer thermalPrinter.Close()
	printerService := service.NewPrinterService(thermalPrinter, store, entity.ReceiptHeader{
		StoreName: cfg.App.StoreName,
		Address:   cfg.App.StoreAddress,
		Phone:     cfg.App.StorePhone,
	}, cfg.Printer.Type, cfg.Printer.Width, log)

	// Initialize handlers
	handlers := &routes.Handlers{
		Session: handler.NewSessionHandler(store),
		Product: handler.NewProductHandler(store),
		Stock:   handler.NewStockHandler(store),
		Sale:    handler.NewSaleHandler(store),
		Cash:    handler.NewCashHandler(store),
		Report:  handler.NewReportHandler(store, reportService, exportService),
		Printer: handler.NewPrinterHandler(printerService),
	}

	rateLimiter := middleware.NewClientRateLimiter(
		middleware.RateLimiterConfigFrom(cfg.RateLimit.Requests, cfg.RateLimit.Duration),
	)
	defer rateLimiter.Stop()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		Logger:          log,
		Store:           store,
		StateRepo:       stateRepo,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
	})

	go sweepIdempotencyKeys(ctx, idempotencyRepo, log)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting server", "name", cfg.App.Name, "port", port, "env", cfg.App.Env, "storage", cfg.Storage.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

// openStorage wires the state and idempotency repositories for the configured driver
func openStorage(ctx context.Context, cfg *config.Config) (domainRepo.StateRepository, domainRepo.IdempotencyRepository, func(), error) {
	switch cfg.Storage.Driver {
	case "postgres", "":
		db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return repository.NewStateRepository(db), repository.NewIdempotencyRepository(db), closeFn, nil

	case "redis":
		client, err := database.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() { _ = client.Close() }
		return repository.NewRedisStateRepository(client, cfg.Redis.Prefix),
			repository.NewRedisIdempotencyRepository(client, cfg.Redis.Prefix), closeFn, nil

	case "memory":
		return repository.NewMemoryStateRepository(), repository.NewMemoryIdempotencyRepository(), func() {}, nil
	}
	return nil, nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

func sweepIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, log *slog.Logger) {
	ticker := time.NewTicker(idempotencySweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := repo.DeleteExpired(ctx); err != nil {
				log.Warn("failed to delete expired idempotency keys", "error", err)
			}
		}
	}
}
