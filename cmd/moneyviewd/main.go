package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"moneyview/internal/amqp"
	"moneyview/internal/backend"
	"moneyview/internal/config"
	apphttp "moneyview/internal/http"
	applog "moneyview/internal/log"
	"moneyview/internal/prices"
	"moneyview/internal/services"
)

func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Level: slog.LevelInfo})
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src, err := backend.NewSource(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize operations source", "error", err, "source", cfg.DataSource)
		os.Exit(1)
	}
	defer func() {
		if err := src.Cleanup(); err != nil {
			logger.Error("Failed to close operations source", "error", err)
		}
	}()

	// AMQP is optional; the report pipeline runs without it.
	var publisher services.EventsPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without events", "error", err)
		} else {
			defer func() {
				if err := client.Close(); err != nil {
					logger.Error("Failed to close AMQP client", "error", err)
				}
			}()
			publisher = client
			logger.Info("Initialized AMQP client", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	lookup := prices.NewClient(prices.Config{
		CurrencyBaseURL: cfg.CurrencyAPIURL,
		StockBaseURL:    cfg.StockAPIURL,
		StockAPIKey:     cfg.StockAPIKey,
		BaseCurrency:    cfg.BaseCurrency,
		Timeout:         cfg.LookupTimeout,
		CacheSize:       cfg.QuoteCacheSize,
		CacheTTL:        cfg.QuoteCacheTTL,
	}, applog.ForComponent(logger, applog.ComponentPrices))

	reportService := services.NewReportService(
		src.Source, lookup,
		services.FileSettings(cfg.UserSettingsPath),
		publisher,
		applog.ForComponent(logger, applog.ComponentReport))
	searchService := services.NewSearchService(
		src.Source,
		applog.ForComponent(logger, applog.ComponentSearch))

	srv := apphttp.NewServer(":"+cfg.Port, reportService, searchService,
		applog.ForComponent(logger, applog.ComponentHTTP))

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting moneyview server", "port", cfg.Port, "source", cfg.DataSource)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
