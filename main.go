package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"bookmark-analytics/config"
	"bookmark-analytics/consumer"
	"bookmark-analytics/driver"
	"bookmark-analytics/gateway"
	"bookmark-analytics/logger"
	"bookmark-analytics/rest"
	"bookmark-analytics/server"
	"bookmark-analytics/service"
	"bookmark-analytics/tokenfilter"
	"bookmark-analytics/tokenize"
	"bookmark-analytics/usecase"
)

const SHUTDOWN_TIMEOUT = 10 * time.Second

func main() {
	// ──────────── init ────────────
	logger.InitWithOTel(os.Getenv("OTEL_LOG_EXPORT") == "true")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Logger.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}

	analyticsCfg, err := cfg.AnalyticsConfig()
	if err != nil {
		logger.Logger.Error("invalid analytics configuration", "err", err)
		os.Exit(1)
	}

	// ──────────── pipeline ────────────
	dispatcher := tokenize.NewDispatcher(analyticsCfg.MorphologicalEnabled(), logger.Logger)

	filter := tokenfilter.New()
	if path := cfg.Analytics.StopwordFile; path != "" {
		if err := filter.LoadOverrides(path); err != nil {
			logger.Logger.Error("failed to load stopword overrides", "path", path, "err", err)
			os.Exit(1)
		}
		logger.Logger.Info("stopword overrides loaded", "path", path)
	}

	analyzeUsecase := usecase.NewAnalyzeBookmarksUsecase(analyticsCfg, dispatcher, filter, logger.Logger)
	analytics := service.NewAnalyticsService(analyzeUsecase, logger.Logger)

	// ──────────── startup batch ────────────
	if path := cfg.Source.CSVPath; path != "" {
		source := gateway.NewBookmarkSourceGateway(driver.NewCSVDriver(path))
		go func() {
			records, err := source.LoadBookmarks(ctx)
			if err != nil {
				logger.Logger.Error("failed to load bookmark export", "path", path, "err", err)
				return
			}
			result, err := analytics.AnalyzeBatch(ctx, records)
			if err != nil {
				logger.Logger.Error("startup batch analysis failed", "err", err)
				return
			}
			logger.Logger.Info("startup batch analyzed",
				"run_id", result.RunID,
				"processed", result.Stats.Processed,
				"skipped", result.Stats.Skipped,
			)
		}()
	}

	// ──────────── event consumer ────────────
	consumerCfg := consumer.ConfigFromEnv()
	eventHandler := consumer.NewAnalyticsEventHandler(analytics, logger.Logger)
	streamConsumer, err := consumer.NewConsumer(consumerCfg, eventHandler, logger.Logger)
	if err != nil {
		logger.Logger.Error("failed to create stream consumer", "err", err)
		os.Exit(1)
	}
	if err := streamConsumer.Start(ctx); err != nil {
		logger.Logger.Error("failed to start stream consumer", "err", err)
		os.Exit(1)
	}
	defer func() {
		streamConsumer.Stop()
		eventHandler.Stop()
	}()

	// ──────────── HTTP server ────────────
	srv := server.New(cfg, rest.NewHandler(analytics))

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Error("http server stopped", "err", err)
			stop()
		}
	}()

	<-ctx.Done() // Ctrl-C

	shutdownCtx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error("http shutdown", "err", err)
	}
}
