// Package http exposes the scored transaction table as a read-only
// JSON API.
package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "edgarcli/internal/errors"
	"edgarcli/internal/pipeline"
	"edgarcli/pkg/contracts/domain"
)

// SignalStore provides the scored records the handlers serve. The
// processor writes the table; the web binary loads it and serves it
// unchanged.
type SignalStore interface {
	Records() []domain.TransactionRecord
	Summary() pipeline.Summary
}

// SignalsHandler serves the scored transaction table.
type SignalsHandler struct {
	store  SignalStore
	logger *slog.Logger
}

// NewSignalsHandler creates a signals handler.
func NewSignalsHandler(store SignalStore, logger *slog.Logger) *SignalsHandler {
	return &SignalsHandler{
		store:  store,
		logger: logger.With(slog.String("handler", "signals")),
	}
}

// Routes returns the signal routes.
func (h *SignalsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/signals", h.GetSignals)
	r.Get("/summary", h.GetSummary)
	return r
}

// GetSignals handles GET /api/signals. Supports optional filters:
// ?ticker=AAPL and ?min_score=4.0.
func (h *SignalsHandler) GetSignals(w http.ResponseWriter, r *http.Request) {
	records := h.store.Records()

	if ticker := r.URL.Query().Get("ticker"); ticker != "" {
		records = filterByTicker(records, ticker)
	}

	if raw := r.URL.Query().Get("min_score"); raw != "" {
		minScore, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			render.Render(w, r, apierrors.InvalidParameter("min_score", "must be a number"))
			return
		}
		records = filterByScore(records, minScore)
	}

	h.logger.InfoContext(r.Context(), "serving signals",
		slog.Int("count", len(records)))

	render.JSON(w, r, map[string]interface{}{
		"count":   len(records),
		"signals": records,
	})
}

// GetSummary handles GET /api/summary.
func (h *SignalsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.store.Summary())
}

func filterByTicker(records []domain.TransactionRecord, ticker string) []domain.TransactionRecord {
	var out []domain.TransactionRecord
	for _, rec := range records {
		if rec.Ticker == ticker {
			out = append(out, rec)
		}
	}
	return out
}

func filterByScore(records []domain.TransactionRecord, minScore float64) []domain.TransactionRecord {
	var out []domain.TransactionRecord
	for _, rec := range records {
		if rec.ConvictionScore >= minScore {
			out = append(out, rec)
		}
	}
	return out
}
