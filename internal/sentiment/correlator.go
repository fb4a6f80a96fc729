package sentiment

import (
	"log/slog"
	"strings"
	"time"

	"edgarcli/pkg/contracts/domain"
)

// dateLayouts covers the formats filings and transcripts actually use.
// ISO first; locale-dependent forms afterwards.
var dateLayouts = []string{"2006-01-02", "01/02/2006", "02/01/2006"}

// ParseDate tries each known layout in order. The bool is false when no
// layout matches; dates are best-effort, consistent with the rest of
// the pipeline's tolerance for messy filing data.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Correlator joins transcript sentiment with insider transactions on
// ticker and date proximity.
type Correlator struct {
	windowDays int
	logger     *slog.Logger
}

// NewCorrelator creates a correlator with the given half-window in
// days around each earnings call.
func NewCorrelator(windowDays int, logger *slog.Logger) *Correlator {
	return &Correlator{
		windowDays: windowDays,
		logger:     logger.With(slog.String("component", "correlator")),
	}
}

// Correlate pairs each sentiment score with every transaction of the
// same ticker dated within the window. Transactions or scores whose
// dates cannot be parsed are skipped, not errored.
func (c *Correlator) Correlate(scores []domain.SentimentScore, records []domain.TransactionRecord) []domain.Correlation {
	byTicker := make(map[string][]domain.TransactionRecord)
	for _, rec := range records {
		byTicker[rec.Ticker] = append(byTicker[rec.Ticker], rec)
	}

	var correlations []domain.Correlation
	for _, score := range scores {
		sentimentDate, ok := ParseDate(score.Date)
		if !ok {
			c.logger.Warn("skipping sentiment with unparsable date",
				slog.String("ticker", score.Ticker),
				slog.String("date", score.Date))
			continue
		}

		for _, rec := range byTicker[score.Ticker] {
			tradeDate, ok := ParseDate(rec.TransactionDate)
			if !ok {
				continue
			}

			days := int(tradeDate.Sub(sentimentDate).Hours() / 24)
			if days < -c.windowDays || days > c.windowDays {
				continue
			}

			correlations = append(correlations, domain.Correlation{
				Ticker:           score.Ticker,
				SentimentDate:    score.Date,
				TransactionDate:  rec.TransactionDate,
				DaysFromEarnings: days,
				Sentiment:        score.Sentiment,
				Confidence:       score.Confidence,
				InsiderName:      rec.InsiderName,
				TransactionCode:  rec.TransactionCode,
				TotalValue:       rec.TotalValue,
				ConvictionScore:  rec.ConvictionScore,
				Signal:           rec.Signal,
				Alignment:        assessAlignment(score.Sentiment, rec.Signal),
				KeyPhrases:       strings.Join(score.KeyPhrases, ", "),
			})
		}
	}

	c.logger.Info("correlation complete",
		slog.Int("sentiment_scores", len(scores)),
		slog.Int("transactions", len(records)),
		slog.Int("correlations", len(correlations)))

	return correlations
}

// assessAlignment labels whether the transcript's tone and the insider
// trade point the same way.
func assessAlignment(sentiment domain.FinancialSentiment, signal domain.Signal) domain.Alignment {
	sentimentPositive := sentiment == domain.SentimentBullish
	tradePositive := signal == domain.SignalStrongBuy ||
		signal == domain.SignalBuy ||
		signal == domain.SignalWeakBuy

	switch {
	case sentimentPositive && tradePositive:
		return domain.AlignedPositive
	case !sentimentPositive && !tradePositive:
		return domain.AlignedNegative
	case sentimentPositive:
		return domain.ContrarianSentiment
	default:
		return domain.ContrarianTrade
	}
}
