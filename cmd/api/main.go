package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hanbit-commerce/storefront/api/routes"
	"github.com/hanbit-commerce/storefront/internal/shop"
	"github.com/hanbit-commerce/storefront/pkg/config"
	"github.com/hanbit-commerce/storefront/pkg/db"
	"github.com/hanbit-commerce/storefront/pkg/ids"
	"github.com/hanbit-commerce/storefront/pkg/logger"
	"github.com/hanbit-commerce/storefront/pkg/metrics"
	"github.com/hanbit-commerce/storefront/pkg/migrate"
	"github.com/hanbit-commerce/storefront/pkg/persist"
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

	var (
		store  persist.Store
		pinger db.Pinger
	)

	switch cfg.Persistence.Driver {
	case config.PersistenceDriverRedis:
		redisStore, err := persist.NewRedisStore(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisStore.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		store = redisStore
		pinger = redisStore

	default:
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

		gormStore, err := persist.NewGormStore(dbClient.DB())
		if err != nil {
			logg.Error(context.Background(), "failed to create snapshot store", err)
			os.Exit(1)
		}
		store = gormStore
		pinger = dbClient
	}

	registry := prometheus.NewRegistry()
	shopMetrics := metrics.NewShopMetrics(registry)

	shopSvc, err := shop.New(context.Background(), shop.Options{
		Log:     logg,
		Store:   store,
		IDs:     ids.New(),
		Metrics: shopMetrics,
		Shop:    cfg.Shop,
		Persist: cfg.Persistence,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create shop", err)
		os.Exit(1)
	}
	defer shopSvc.Close()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"backend": cfg.Persistence.Driver,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, pinger, shopSvc, registry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
