package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"edgarcli/internal/config"
	"edgarcli/internal/exporter"
	"edgarcli/internal/infrastructure"
	"edgarcli/internal/sentiment"
	"edgarcli/pkg/contracts/domain"
)

func main() {
	tradesPath := flag.String("trades", "", "path to an insider trades CSV produced by the processor (required)")
	transcriptsPath := flag.String("transcripts", "", "path to a transcripts JSON file (defaults to data/transcripts/transcripts.json)")
	pagesDir := flag.String("pages", "", "directory of saved transcript HTML pages named TICKER_YYYY-MM-DD.html (used instead of the JSON file)")
	outPath := flag.String("out", "", "output path for the correlation CSV (defaults to data/reports)")
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

	if *tradesPath == "" {
		fmt.Fprintln(os.Stderr, "missing required -trades flag")
		flag.Usage()
		os.Exit(2)
	}
	if *transcriptsPath == "" {
		*transcriptsPath = filepath.Join(paths.TranscriptsDir, "transcripts.json")
	}
	if *outPath == "" {
		*outPath = paths.GetReportPath(fmt.Sprintf("sentiment_correlations_%s.csv", time.Now().Format("20060102_150405")))
	}

	logger.Info("Starting sentiment correlation",
		slog.String("trades", *tradesPath),
		slog.String("transcripts", *transcriptsPath),
		slog.String("pages", *pagesDir),
		slog.Int("window_days", cfg.Sentiment.WindowDays))

	records, err := exporter.ReadTransactions(*tradesPath)
	if err != nil {
		logger.Error("Failed to read trades CSV", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Loaded scored transactions", slog.Int("count", len(records)))

	var transcripts []domain.Transcript
	if *pagesDir != "" {
		transcripts, err = sentiment.LoadTranscriptPages(*pagesDir)
	} else {
		transcripts, err = sentiment.LoadTranscripts(*transcriptsPath)
	}
	if err != nil {
		logger.Error("Failed to load transcripts", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Loaded transcripts", slog.Int("count", len(transcripts)))

	analyzer := sentiment.NewAnalyzer(logger)
	scores := make([]domain.SentimentScore, 0, len(transcripts))
	for _, t := range transcripts {
		scores = append(scores, analyzer.Analyze(t))
	}

	correlator := sentiment.NewCorrelator(cfg.Sentiment.WindowDays, logger)
	correlations := correlator.Correlate(scores, records)

	writer := exporter.NewCSVWriter(paths)
	if err := writer.WriteCorrelations(*outPath, correlations); err != nil {
		logger.Error("Failed to write correlation CSV", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Wrote correlations",
		slog.String("path", *outPath),
		slog.Int("count", len(correlations)))
	fmt.Printf("Correlated %d transactions against %d transcripts: %d matches\n",
		len(records), len(transcripts), len(correlations))
}
