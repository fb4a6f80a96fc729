package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"edgarcli/internal/config"
	"edgarcli/internal/exporter"
	"edgarcli/internal/infrastructure"
	"edgarcli/internal/pipeline"
	transport "edgarcli/internal/transport/http"
	"edgarcli/pkg/contracts/domain"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// csvStore serves a scored transaction table loaded once at startup.
// The processor owns writes; this binary is read-only.
type csvStore struct {
	records []domain.TransactionRecord
	summary pipeline.Summary
}

func (s *csvStore) Records() []domain.TransactionRecord { return s.records }
func (s *csvStore) Summary() pipeline.Summary           { return s.summary }

func main() {
	tradesPath := flag.String("trades", "", "path to an insider trades CSV produced by the processor (required)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	if *tradesPath == "" {
		fmt.Fprintln(os.Stderr, "missing required -trades flag")
		flag.Usage()
		os.Exit(2)
	}

	records, err := exporter.ReadTransactions(*tradesPath)
	if err != nil {
		logger.Error("Failed to read trades CSV", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store := &csvStore{
		records: records,
		summary: pipeline.Summarize(records, cfg.Pipeline.SummaryTopTransactions),
	}

	registry := prometheus.NewRegistry()
	router := transport.NewRouter(transport.RouterConfig{
		Version:  Version,
		Store:    store,
		Registry: registry,
		Logger:   logger,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting signals API server",
			slog.Int("port", cfg.Server.Port),
			slog.Int("records", len(records)),
			slog.String("version", Version))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		logger.Error("Server failed", slog.String("error", err.Error()))
		os.Exit(1)
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
