package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/swingbaylabs/swingbay-backend/api/routes"
	"github.com/swingbaylabs/swingbay-backend/internal/adminauth"
	"github.com/swingbaylabs/swingbay-backend/internal/bindings"
	"github.com/swingbaylabs/swingbay-backend/internal/coordinates"
	"github.com/swingbaylabs/swingbay-backend/internal/normalizer"
	"github.com/swingbaylabs/swingbay-backend/internal/regcodes"
	"github.com/swingbaylabs/swingbay-backend/internal/registry"
	"github.com/swingbaylabs/swingbay-backend/pkg/config"
	"github.com/swingbaylabs/swingbay-backend/pkg/db"
	"github.com/swingbaylabs/swingbay-backend/pkg/logger"
	"github.com/swingbaylabs/swingbay-backend/pkg/metrics"
	"github.com/swingbaylabs/swingbay-backend/pkg/migrate"
	"github.com/swingbaylabs/swingbay-backend/pkg/redis"
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
		Format:      cfg.App.LogFormat,
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

	adminAuthService, err := adminauth.NewService(cfg.Admin, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create admin auth service", err)
		os.Exit(1)
	}

	bindingsRepo := bindings.NewRepository(dbClient.DB())

	registryService, err := registry.NewService(registry.NewRepository(dbClient.DB()), bindingsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create registry service", err)
		os.Exit(1)
	}

	codeService, err := regcodes.NewService(regcodes.NewRepository(dbClient.DB()), cfg.Storage)
	if err != nil {
		logg.Error(context.Background(), "failed to create registration code service", err)
		os.Exit(1)
	}

	registrationMetrics := metrics.NewRegistrationMetrics(prometheus.DefaultRegisterer)
	bindingsService, err := bindings.NewService(codeService, registryService, bindingsRepo, registrationMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create bindings service", err)
		os.Exit(1)
	}

	coordinatesRepo := coordinates.NewRepository(dbClient.DB())

	catalogService, err := coordinates.NewCatalog(coordinatesRepo, cfg.Storage)
	if err != nil {
		logg.Error(context.Background(), "failed to create coordinate catalog", err)
		os.Exit(1)
	}

	binderService, err := coordinates.NewBinder(coordinatesRepo, registryService)
	if err != nil {
		logg.Error(context.Background(), "failed to create coordinate binder", err)
		os.Exit(1)
	}

	normalizerService, err := normalizer.NewService(normalizer.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create normalizer service", err)
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
			dbClient,
			redisClient,
			adminAuthService,
			registryService,
			codeService,
			bindingsService,
			catalogService,
			binderService,
			normalizerService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
