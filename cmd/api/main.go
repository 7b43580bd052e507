package main

import (
	"context"
	"net/http"
	"os"

	"github.com/danisworo/inventory-backoffice/api/routes"
	"github.com/danisworo/inventory-backoffice/internal/catalog"
	"github.com/danisworo/inventory-backoffice/internal/pricing"
	"github.com/danisworo/inventory-backoffice/internal/rbac"
	"github.com/danisworo/inventory-backoffice/pkg/config"
	"github.com/danisworo/inventory-backoffice/pkg/db"
	"github.com/danisworo/inventory-backoffice/pkg/logger"
	"github.com/danisworo/inventory-backoffice/pkg/metrics"
	"github.com/danisworo/inventory-backoffice/pkg/migrate"
	"github.com/danisworo/inventory-backoffice/pkg/redis"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
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

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	pricingMetrics := metrics.NewPricingMetrics(registry)

	catalogRepo := catalog.NewRepository(dbClient.DB())
	pricingService, err := pricing.NewService(
		pricing.NewRepository(dbClient.DB()),
		dbClient,
		catalogRepo,
		nil,
		pricingMetrics,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create pricing service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	writeGuard, err := rbac.NewChecker(rbac.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create permission checker", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:         cfg,
			Logger:         logg,
			DB:             dbClient,
			Redis:          redisClient,
			Metrics:        registry,
			PricingService: pricingService,
			CatalogService: catalogService,
			WriteGuard:     writeGuard,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
