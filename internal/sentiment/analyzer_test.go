package sentiment

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"edgarcli/pkg/contracts/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAnalyzerAnalyze(t *testing.T) {
	analyzer := NewAnalyzer(testLogger())

	tests := []struct {
		name              string
		text              string
		expectedSentiment domain.FinancialSentiment
	}{
		{
			name: "bullish call",
			text: "We delivered record revenue and strong profit growth this quarter. " +
				"Momentum is excellent and we are confident about the expansion ahead.",
			expectedSentiment: domain.SentimentBullish,
		},
		{
			name: "bearish call",
			text: "We reported a loss amid weak demand and disappointing sales. " +
				"Headwinds and uncertainty remain a concern, and we are cautious on the outlook.",
			expectedSentiment: domain.SentimentBearish,
		},
		{
			name:              "no financial keywords",
			text:              "The meeting covered facilities and scheduling matters.",
			expectedSentiment: domain.SentimentNeutral,
		},
		{
			name: "mixed tone",
			text: "Revenue growth was strong but we saw a decline in margins and face pressure. " +
				"Profit beat expectations despite the risk, headwind effects, and lingering uncertainty.",
			expectedSentiment: domain.SentimentNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := analyzer.Analyze(domain.Transcript{
				Ticker: "AAPL",
				Date:   "2024-10-10",
				Text:   tt.text,
			})
			assert.Equal(t, tt.expectedSentiment, score.Sentiment)
			assert.Equal(t, "AAPL", score.Ticker)
			assert.GreaterOrEqual(t, score.Confidence, 0.5)
		})
	}
}

func TestExtractKeyPhrases(t *testing.T) {
	text := "Revenue grew 8% year over year while profit rose 12% on services strength. " +
		"Our outlook for the December quarter remains strong. " +
		"Sales fell 3% in the wearables segment."

	phrases := extractKeyPhrases(text)

	assert.Contains(t, phrases, "Revenue grew 8%")
	assert.Contains(t, phrases, "Sales fell 3%")
	assert.LessOrEqual(t, len(phrases), maxKeyPhrases)

	var hasOutlook bool
	for _, p := range phrases {
		if strings.Contains(strings.ToLower(p), "outlook") {
			hasOutlook = true
		}
	}
	assert.True(t, hasOutlook)
}
