package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jordanvega/seoforge-backend/api/routes"
	"github.com/jordanvega/seoforge-backend/internal/content"
	"github.com/jordanvega/seoforge-backend/internal/products"
	"github.com/jordanvega/seoforge-backend/pkg/config"
	"github.com/jordanvega/seoforge-backend/pkg/db"
	"github.com/jordanvega/seoforge-backend/pkg/logger"
	"github.com/jordanvega/seoforge-backend/pkg/metrics"
	"github.com/jordanvega/seoforge-backend/pkg/migrate"
	"github.com/jordanvega/seoforge-backend/pkg/openai"
	"github.com/jordanvega/seoforge-backend/pkg/redis"
	"github.com/jordanvega/seoforge-backend/pkg/shopify"
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

	shopifyClient := shopify.NewClient(cfg.Shopify)

	openaiClient, err := openai.NewClient(cfg.OpenAI)
	if err != nil {
		logg.Error(context.Background(), "failed to create openai client", err)
		os.Exit(1)
	}

	analyzer, err := content.NewAnalyzer(openaiClient, cfg.Content.MaxAnalyzerImages, cfg.Content.MaxVisionImages)
	if err != nil {
		logg.Error(context.Background(), "failed to create image analyzer", err)
		os.Exit(1)
	}

	promRegistry := prometheus.NewRegistry()
	pipelineMetrics := metrics.NewPipelineMetrics(promRegistry)

	contentService, err := content.NewService(
		content.NewRepository(dbClient.DB()),
		shopifyClient,
		openaiClient,
		analyzer,
		redisClient,
		logg,
		pipelineMetrics,
		cfg.Content,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create content service", err)
		os.Exit(1)
	}

	productService, err := products.NewService(shopifyClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
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
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, productService, contentService, promRegistry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
