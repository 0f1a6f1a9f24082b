package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/rss-it/visitreport-backend/api/routes"
	"github.com/rss-it/visitreport-backend/internal/inventory"
	"github.com/rss-it/visitreport-backend/internal/issues"
	"github.com/rss-it/visitreport-backend/internal/recycling"
	"github.com/rss-it/visitreport-backend/internal/reports"
	"github.com/rss-it/visitreport-backend/internal/storage"
	"github.com/rss-it/visitreport-backend/pkg/config"
	"github.com/rss-it/visitreport-backend/pkg/db"
	"github.com/rss-it/visitreport-backend/pkg/logger"
	"github.com/rss-it/visitreport-backend/pkg/metrics"
	"github.com/rss-it/visitreport-backend/pkg/migrate"
	"github.com/rss-it/visitreport-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
		cfg.DB.DSN = cfg.FeatureFlags.SQLitePath
	}

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	inventoryRepo := inventory.NewRepository(dbClient.DB())

	reportService, err := reports.NewService(reports.ServiceParams{
		Repo:   reports.NewRepository(dbClient.DB()),
		Tx:     dbClient,
		Rows:   inventoryRepo,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create report service", err)
		os.Exit(1)
	}

	inventoryService, err := inventory.NewService(inventory.ServiceParams{
		Repo:            inventoryRepo,
		Reports:         reportService,
		Cache:           redisClient,
		Logger:          logg,
		SummaryCacheTTL: cfg.Inventory.SummaryCacheTTL,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	storageService, err := storage.NewService(storage.ServiceParams{
		Repo:    storage.NewRepository(dbClient.DB()),
		Reports: reportService,
		Logger:  logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create storage service", err)
		os.Exit(1)
	}

	issueService, err := issues.NewService(issues.ServiceParams{
		Repo:    issues.NewRepository(dbClient.DB()),
		Reports: reportService,
		Logger:  logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create issue service", err)
		os.Exit(1)
	}

	recyclingService, err := recycling.NewService(recycling.ServiceParams{
		Repo:    recycling.NewRepository(dbClient.DB()),
		Reports: reportService,
		Logger:  logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create recycling service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			metrics.NewHTTPMetrics(),
			dbClient,
			redisClient,
			reportService,
			inventoryService,
			storageService,
			issueService,
			recyclingService,
		),
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "error during shutdown", err)
		}
	}
}
