package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"edgarcli/internal/config"
	"edgarcli/internal/conviction"
	"edgarcli/internal/exporter"
	"edgarcli/internal/fetch"
	"edgarcli/internal/files"
	"edgarcli/internal/infrastructure"
	"edgarcli/internal/pipeline"
)

func main() {
	inDir := flag.String("in", "", "input directory for Form 4 filings (defaults to data/filings)")
	outDir := flag.String("out", "", "output directory for CSV reports (defaults to data/reports)")
	parallel := flag.Int("parallel", 0, "number of filings to extract concurrently (overrides config)")
	fetchURLs := flag.String("fetch", "", "comma-separated EDGAR document URLs to download into the input directory before processing")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	paths, err := config.NewPaths(cfg.Paths)
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	if *inDir == "" {
		*inDir = paths.FilingsDir
	}
	if *outDir == "" {
		*outDir = paths.ReportsDir
	}
	if *parallel > 0 {
		cfg.Pipeline.Parallelism = *parallel
	}

	logger.Info("Starting Form 4 batch processing",
		slog.String("input_dir", *inDir),
		slog.String("output_dir", *outDir),
		slog.Int("parallelism", cfg.Pipeline.Parallelism))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *fetchURLs != "" {
		client := fetch.NewClient(cfg.Fetch, logger)
		for _, rawURL := range strings.Split(*fetchURLs, ",") {
			rawURL = strings.TrimSpace(rawURL)
			if rawURL == "" {
				continue
			}
			if _, err := client.Download(ctx, rawURL, *inDir); err != nil {
				logger.Error("Failed to download filing",
					slog.String("url", rawURL),
					slog.String("error", err.Error()))
				os.Exit(1)
			}
		}
	}

	discovery := files.NewDiscovery(*inDir)
	batch, err := discovery.FindFilingFiles(".")
	if err != nil {
		logger.Error("Failed to read input directory", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("Found %d filing files\n", len(batch))
	if len(batch) == 0 {
		logger.Warn("No filing files found in input directory",
			slog.String("input_dir", *inDir))
		os.Exit(0)
	}

	scorer := conviction.NewScorer(conviction.DefaultWeights())
	metrics := pipeline.NewMetrics(prometheus.NewRegistry())
	pipe := pipeline.New(cfg.Pipeline, scorer, metrics, logger)

	result, err := pipe.Process(ctx, batch)
	if err != nil {
		logger.Error("Batch processing failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	writer := exporter.NewCSVWriter(paths)
	timestamp := time.Now().Format("20060102_150405")

	tradesPath := paths.GetReportPath(fmt.Sprintf("insider_trades_%s.csv", timestamp))
	if err := writer.WriteTransactions(tradesPath, result.Records); err != nil {
		logger.Error("Failed to write transactions CSV", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Wrote transaction table",
		slog.String("path", tradesPath),
		slog.Int("records", len(result.Records)))

	signalsPath := paths.GetReportPath(fmt.Sprintf("high_conviction_signals_%s.csv", timestamp))
	highCount, err := writer.WriteHighConviction(signalsPath, result.Records, cfg.Pipeline.HighConvictionCutoff)
	if err != nil {
		logger.Error("Failed to write high conviction CSV", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if highCount > 0 {
		logger.Info("Wrote high conviction signals",
			slog.String("path", signalsPath),
			slog.Int("records", highCount))
	} else {
		logger.Info("No high conviction signals this run",
			slog.Float64("cutoff", cfg.Pipeline.HighConvictionCutoff))
	}

	summary := pipeline.Summarize(result.Records, cfg.Pipeline.SummaryTopTransactions)
	logger.Info("Batch summary",
		slog.String("run_id", result.RunID),
		slog.Int("total_files", result.Stats.TotalFiles),
		slog.Int("processed_files", result.Stats.ProcessedFiles),
		slog.Int("skipped_files", result.Stats.SkippedFiles),
		slog.Int("error_files", result.Stats.ErrorFiles),
		slog.Int("total_transactions", summary.TotalTransactions),
		slog.Int("unique_companies", summary.UniqueCompanies),
		slog.Int("unique_insiders", summary.UniqueInsiders),
		slog.Float64("total_dollar_volume", summary.TotalDollarVolume),
		slog.Float64("average_score", summary.AverageScore),
		slog.Int("pattern_fallbacks", result.Stats.PatternFallbacks))

	for _, skipped := range result.Skipped {
		logger.Warn("Skipped filing",
			slog.String("file", skipped.Name),
			slog.String("reason", skipped.Reason))
	}

	fmt.Printf("Processed %d/%d filings, %d transactions, %d high conviction\n",
		result.Stats.ProcessedFiles, result.Stats.TotalFiles,
		summary.TotalTransactions, highCount)
}
