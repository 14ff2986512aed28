package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/abhyudyayatech/procure-backend/api/routes"
	"github.com/abhyudyayatech/procure-backend/internal/pdfrender"
	"github.com/abhyudyayatech/procure-backend/internal/purchaseorders"
	"github.com/abhyudyayatech/procure-backend/pkg/config"
	"github.com/abhyudyayatech/procure-backend/pkg/db"
	"github.com/abhyudyayatech/procure-backend/pkg/logger"
	"github.com/abhyudyayatech/procure-backend/pkg/metrics"
	"github.com/abhyudyayatech/procure-backend/pkg/migrate"
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

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collaboratorMetrics := metrics.NewCollaboratorMetrics(promRegistry)

	poService, err := purchaseorders.NewService(purchaseorders.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create purchase order service", err)
		os.Exit(1)
	}

	renderer, err := pdfrender.NewClient(cfg.PDF.RendererURL, cfg.PDF.Timeout, logg, collaboratorMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create pdf renderer client", err)
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
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, poService, renderer, promRegistry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
