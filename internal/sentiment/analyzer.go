// Package sentiment scores earnings-call transcripts with a financial
// keyword model and correlates the verdicts with insider transactions.
//
// The heavy NLP tokenization and polarity libraries are deliberately
// out of scope; the keyword ratio model below is the deterministic core
// that the correlator consumes.
package sentiment

import (
	"log/slog"
	"regexp"
	"strings"

	"edgarcli/pkg/contracts/domain"
)

var positiveKeywords = []string{
	"revenue", "growth", "profit", "strong", "excellent", "outstanding",
	"record", "bullish", "optimistic", "exceed", "beat", "momentum",
	"expansion", "opportunity", "confident", "robust", "solid",
	"improving", "increase", "rise", "gain", "successful", "positive",
	"upside", "breakthrough", "innovation",
}

var negativeKeywords = []string{
	"loss", "decline", "weak", "poor", "disappointing", "bearish",
	"pessimistic", "miss", "below", "concern", "challenge", "risk",
	"uncertainty", "volatility", "decrease", "drop", "fall", "struggle",
	"difficulty", "headwind", "pressure", "cautious", "conservative",
	"downside", "slowdown", "contraction",
}

var (
	growthPhraseRe  = regexp.MustCompile(`(?i)(revenue|profit|sales|earnings)[^.]*?(grew|increased|rose|jumped|surged)[^.]*?(\d+(?:\.\d+)?%)`)
	declinePhraseRe = regexp.MustCompile(`(?i)(revenue|profit|sales|earnings)[^.]*?(fell|declined|dropped|decreased)[^.]*?(\d+(?:\.\d+)?%)`)
	outlookPhraseRe = regexp.MustCompile(`(?i)(outlook|guidance|expect|anticipate|forecast)[^.]*\.`)
)

const (
	maxOutlookPhrases = 3
	maxKeyPhrases     = 10

	bullishRatio = 0.6
	bearishRatio = 0.4
)

// Analyzer scores transcript text against the financial keyword sets.
// Pure and stateless: the same text always yields the same score.
type Analyzer struct {
	logger *slog.Logger
}

// NewAnalyzer returns a transcript analyzer.
func NewAnalyzer(logger *slog.Logger) *Analyzer {
	return &Analyzer{logger: logger.With(slog.String("component", "sentiment_analyzer"))}
}

// Analyze produces a sentiment score for one transcript. Confidence is
// the winning keyword ratio; texts with no financial keywords at all
// are neutral with 0.5 confidence.
func (a *Analyzer) Analyze(t domain.Transcript) domain.SentimentScore {
	text := strings.ToLower(t.Text)

	verdict, confidence := classify(text)
	score := domain.SentimentScore{
		Ticker:     t.Ticker,
		Date:       t.Date,
		Sentiment:  verdict,
		Confidence: confidence,
		KeyPhrases: extractKeyPhrases(t.Text),
	}

	a.logger.Debug("transcript analyzed",
		slog.String("ticker", t.Ticker),
		slog.String("quarter", t.Quarter),
		slog.String("sentiment", string(verdict)),
		slog.Float64("confidence", confidence))

	return score
}

func classify(text string) (domain.FinancialSentiment, float64) {
	positive := 0
	for _, word := range positiveKeywords {
		if strings.Contains(text, word) {
			positive++
		}
	}
	negative := 0
	for _, word := range negativeKeywords {
		if strings.Contains(text, word) {
			negative++
		}
	}

	total := positive + negative
	if total == 0 {
		return domain.SentimentNeutral, 0.5
	}

	ratio := float64(positive) / float64(total)
	switch {
	case ratio > bullishRatio:
		return domain.SentimentBullish, ratio
	case ratio < bearishRatio:
		return domain.SentimentBearish, 1 - ratio
	default:
		return domain.SentimentNeutral, 0.5
	}
}

// extractKeyPhrases pulls growth/decline statements with percentages
// and up to three outlook sentences, capped at ten phrases total.
func extractKeyPhrases(text string) []string {
	var phrases []string

	for _, m := range growthPhraseRe.FindAllStringSubmatch(text, -1) {
		phrases = append(phrases, m[1]+" "+m[2]+" "+m[3])
	}
	for _, m := range declinePhraseRe.FindAllStringSubmatch(text, -1) {
		phrases = append(phrases, m[1]+" "+m[2]+" "+m[3])
	}

	outlooks := outlookPhraseRe.FindAllString(text, maxOutlookPhrases)
	for _, o := range outlooks {
		phrases = append(phrases, strings.TrimSpace(o))
	}

	if len(phrases) > maxKeyPhrases {
		phrases = phrases[:maxKeyPhrases]
	}
	return phrases
}
