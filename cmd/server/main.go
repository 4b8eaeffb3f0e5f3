package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/climate-risk-service/internal/adapter/geofeature"
	httpadapter "github.com/couchcryptid/climate-risk-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/climate-risk-service/internal/adapter/kafka"
	"github.com/couchcryptid/climate-risk-service/internal/adapter/metno"
	"github.com/couchcryptid/climate-risk-service/internal/adapter/openaq"
	"github.com/couchcryptid/climate-risk-service/internal/assess"
	"github.com/couchcryptid/climate-risk-service/internal/config"
	"github.com/couchcryptid/climate-risk-service/internal/domain"
	"github.com/couchcryptid/climate-risk-service/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	var weather domain.WeatherSource = metno.NewCachedSource(
		metno.NewClient(cfg.WeatherBaseURL, cfg.WeatherUserAgent, cfg.WeatherTimeout, logger),
		cfg.WeatherCacheTTL, metrics)

	var air domain.AirSource = openaq.NewCachedSource(
		openaq.NewClient(cfg.AirBaseURL, cfg.AirTimeout, logger),
		cfg.AirCacheTTL, metrics)

	// The feature survey source is optional; without a WFS endpoint the
	// engine falls back to documented defaults for site features.
	var features domain.FeatureSource
	if cfg.FeatureBaseURL != "" {
		features = geofeature.NewCachedSource(
			geofeature.NewClient(cfg.FeatureBaseURL, cfg.FeatureTimeout, logger),
			cfg.FeatureCacheSize, metrics)
		logger.Info("feature survey enabled", "base_url", cfg.FeatureBaseURL, "cache_size", cfg.FeatureCacheSize)
	} else {
		logger.Info("feature survey disabled")
	}

	// Kafka publishing is feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS.
	var publisher assess.Publisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		metrics.PublishEnabled.Set(1)
		logger.Info("analysis publishing enabled", "topic", cfg.KafkaSinkTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("analysis publishing disabled")
	}

	assessor := assess.New(weather, air, features, publisher, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, assessor, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Warm the caches and flip readiness with an assessment of the home
	// location.
	go func() {
		analysis, err := assessor.Assess(ctx, cfg.HomeLat, cfg.HomeLon)
		if err != nil {
			logger.Warn("warmup assessment failed", "error", err)
			return
		}
		logger.Info("warmup assessment complete",
			"lat", cfg.HomeLat, "lon", cfg.HomeLon,
			"overall_score", analysis.OverallScore, "overall_level", analysis.OverallLevel)
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
