// Package pipeline orchestrates batch extraction of insider
// transactions: document iteration, strategy fallback, record assembly,
// and batch-relative scoring.
//
// Failures are contained at the single-document boundary. An unreadable
// or malformed filing is skipped and logged; the batch result is always
// a valid, possibly empty, table.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"edgarcli/internal/config"
	"edgarcli/internal/conviction"
	"edgarcli/internal/files"
	"edgarcli/internal/form4"
	"edgarcli/pkg/contracts/domain"
)

// Stats summarizes one batch run.
type Stats struct {
	TotalFiles        int `json:"total_files"`
	ProcessedFiles    int `json:"processed_files"`
	SkippedFiles      int `json:"skipped_files"`
	ErrorFiles        int `json:"error_files"`
	TotalTransactions int `json:"total_transactions"`
	PatternFallbacks  int `json:"pattern_fallbacks"`
}

// SkippedFile records why a file produced no transactions.
type SkippedFile struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Result is the aggregate outcome of one batch run.
type Result struct {
	RunID   string                     `json:"run_id"`
	Records []domain.TransactionRecord `json:"records"`
	Stats   Stats                      `json:"stats"`
	Skipped []SkippedFile              `json:"skipped"`
}

// Pipeline wires the extraction strategies, scorer, and validation into
// a batch processor.
type Pipeline struct {
	structural form4.Extractor
	pattern    form4.Extractor
	scorer     *conviction.Scorer
	validate   *validator.Validate
	metrics    *Metrics
	cfg        config.PipelineConfig
	logger     *slog.Logger
}

// New creates a pipeline with the given configuration. A nil metrics
// set disables instrumentation.
func New(cfg config.PipelineConfig, scorer *conviction.Scorer, metrics *Metrics, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		structural: form4.NewStructuralExtractor(logger),
		pattern:    form4.NewPatternExtractor(logger),
		scorer:     scorer,
		validate:   validator.New(),
		metrics:    metrics,
		cfg:        cfg,
		logger:     logger.With(slog.String("component", "pipeline")),
	}
}

// docOutcome is the extraction result for a single file, before the
// batch-level scoring pass.
type docOutcome struct {
	records    []domain.TransactionRecord
	skipReason string
	errored    bool
	fallback   bool
}

// Process runs the batch. Document extraction may run in parallel when
// configured; scoring and the repeat-insider feature always run after
// every document completes, because the insider count is batch-relative.
func (p *Pipeline) Process(ctx context.Context, batch []files.FileInfo) (*Result, error) {
	result := &Result{RunID: uuid.NewString()}
	result.Stats.TotalFiles = len(batch)

	p.logger.Info("starting batch run",
		slog.String("run_id", result.RunID),
		slog.Int("total_files", len(batch)),
		slog.Int("parallelism", p.cfg.Parallelism))

	outcomes := make([]docOutcome, len(batch))

	if p.cfg.Parallelism > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(p.cfg.Parallelism)
		for i, fi := range batch {
			i, fi := i, fi
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				outcomes[i] = p.processDocument(fi)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("batch extraction cancelled: %w", err)
		}
	} else {
		for i, fi := range batch {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("batch extraction cancelled: %w", err)
			}
			outcomes[i] = p.processDocument(fi)
		}
	}

	for i, out := range outcomes {
		switch {
		case out.errored:
			result.Stats.ErrorFiles++
			result.Skipped = append(result.Skipped, SkippedFile{Name: batch[i].Name, Reason: out.skipReason})
		case out.skipReason != "":
			result.Stats.SkippedFiles++
			result.Skipped = append(result.Skipped, SkippedFile{Name: batch[i].Name, Reason: out.skipReason})
		default:
			result.Stats.ProcessedFiles++
			result.Records = append(result.Records, out.records...)
		}
		if out.fallback {
			result.Stats.PatternFallbacks++
		}
	}
	result.Stats.TotalTransactions = len(result.Records)

	p.scoreBatch(result.Records)

	p.logger.Info("batch run complete",
		slog.String("run_id", result.RunID),
		slog.Int("processed_files", result.Stats.ProcessedFiles),
		slog.Int("skipped_files", result.Stats.SkippedFiles),
		slog.Int("error_files", result.Stats.ErrorFiles),
		slog.Int("total_transactions", result.Stats.TotalTransactions),
		slog.Int("pattern_fallbacks", result.Stats.PatternFallbacks))

	return result, nil
}

// processDocument contains one file's full extraction. Every failure
// mode maps to a skip reason; nothing here can fail the batch.
func (p *Pipeline) processDocument(fi files.FileInfo) docOutcome {
	logger := p.logger.With(slog.String("file", fi.Name))

	if ok, reason := files.Validate(fi, p.cfg.MinFilingSizeBytes); !ok {
		logger.Warn("skipping invalid file", slog.String("reason", reason))
		p.metrics.IncSkipped()
		return docOutcome{skipReason: reason}
	}

	data, err := os.ReadFile(fi.Path)
	if err != nil {
		logger.Error("failed to read file", slog.String("error", err.Error()))
		p.metrics.IncSkipped()
		return docOutcome{skipReason: fmt.Sprintf("read error: %v", err), errored: true}
	}

	content, err := form4.DecodeBytes(data)
	if err != nil {
		logger.Warn("skipping unreadable file", slog.String("error", err.Error()))
		p.metrics.IncSkipped()
		return docOutcome{skipReason: "unreadable document"}
	}

	doc := form4.ParseDocument(content)
	if doc.Malformed() {
		logger.Warn("document failed structural parse, pattern recovery only")
	}

	ext := p.structural.Extract(doc)
	strategy := p.structural.Name()
	usedFallback := false
	if len(ext.Transactions) == 0 {
		ext = p.pattern.Extract(doc)
		usedFallback = len(ext.Transactions) > 0
		if usedFallback {
			strategy = p.pattern.Name()
			p.metrics.IncFallbacks()
			logger.Info("pattern fallback recovered transactions",
				slog.Int("count", len(ext.Transactions)))
		}
	}

	if len(ext.Transactions) == 0 {
		logger.Warn("no transactions found")
		p.metrics.IncSkipped()
		return docOutcome{skipReason: "no transactions found"}
	}

	var records []domain.TransactionRecord
	for _, raw := range ext.Transactions {
		rec, ok := form4.BuildRecord(ext.Issuer, ext.Owner, raw, fi.Name)
		if !ok {
			continue
		}
		rec.CodeDescription = conviction.DescribeCode(rec.TransactionCode)
		records = append(records, rec)
	}
	if len(records) == 0 {
		p.metrics.IncSkipped()
		return docOutcome{skipReason: "no transactions found", fallback: usedFallback}
	}

	p.metrics.IncProcessed()
	p.metrics.AddTransactions(len(records))
	logger.Info("extracted transactions",
		slog.Int("count", len(records)),
		slog.String("strategy", strategy))

	return docOutcome{records: records, fallback: usedFallback}
}

// scoreBatch computes scores in place. The repeat-insider count is
// relative to this batch only and recomputed on every run.
func (p *Pipeline) scoreBatch(records []domain.TransactionRecord) {
	insiderCounts := make(map[string]int, len(records))
	for _, rec := range records {
		insiderCounts[rec.InsiderName]++
	}

	for i := range records {
		score, signal := p.scorer.Score(records[i], insiderCounts[records[i].InsiderName])
		records[i].ConvictionScore = score
		records[i].Signal = signal

		if err := p.validate.Struct(&records[i]); err != nil {
			p.logger.Warn("record failed validation",
				slog.String("source_file", records[i].SourceFile),
				slog.String("error", err.Error()))
		}
	}
}
