package conviction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"edgarcli/pkg/contracts/domain"
)

func TestScorerScore(t *testing.T) {
	scorer := NewScorer(DefaultWeights())

	tests := []struct {
		name           string
		rec            domain.TransactionRecord
		insiderCount   int
		expectedScore  float64
		expectedSignal domain.Signal
	}{
		{
			name: "large executive sale",
			rec: domain.TransactionRecord{
				TransactionCode: "S",
				TotalValue:      7_770_560,
				OwnershipType:   "D",
			},
			insiderCount:   1,
			expectedScore:  0.5, // -1 sale, +2 large value, -0.5 disposed
			expectedSignal: domain.SignalSell,
		},
		{
			name: "large open market purchase",
			rec: domain.TransactionRecord{
				TransactionCode: "P",
				TotalValue:      2_500_000,
				OwnershipType:   "A",
			},
			insiderCount:   1,
			expectedScore:  5.0, // +3 purchase, +2 large value, +1 acquired, clamped
			expectedSignal: domain.SignalStrongBuy,
		},
		{
			name: "mid sized purchase by repeat insider",
			rec: domain.TransactionRecord{
				TransactionCode: "P",
				TotalValue:      250_000,
				OwnershipType:   "D",
			},
			insiderCount:   3,
			expectedScore:  4.5, // +3 purchase, +1 mid value, -0.5 disposed, +1 repeat
			expectedSignal: domain.SignalStrongBuy,
		},
		{
			name: "small equity award",
			rec: domain.TransactionRecord{
				TransactionCode: "A",
				TotalValue:      50_000,
				OwnershipType:   "A",
			},
			insiderCount:   1,
			expectedScore:  2.0, // +0.5 award, +0.5 small value, +1 acquired
			expectedSignal: domain.SignalWeakBuy,
		},
		{
			name: "tiny sale clamps at zero",
			rec: domain.TransactionRecord{
				TransactionCode: "S",
				TotalValue:      500,
				OwnershipType:   "D",
			},
			insiderCount:   1,
			expectedScore:  0.0, // -1 sale, -0.5 disposed, clamped up
			expectedSignal: domain.SignalSell,
		},
		{
			name: "unknown code scores on value and ownership only",
			rec: domain.TransactionRecord{
				TransactionCode: "G",
				TotalValue:      150_000,
				OwnershipType:   "A",
			},
			insiderCount:   1,
			expectedScore:  2.0, // +1 mid value, +1 acquired
			expectedSignal: domain.SignalWeakBuy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, signal := scorer.Score(tt.rec, tt.insiderCount)
			assert.InDelta(t, tt.expectedScore, score, 0.001)
			assert.Equal(t, tt.expectedSignal, signal)
		})
	}
}

func TestSignalFor(t *testing.T) {
	tests := []struct {
		score    float64
		expected domain.Signal
	}{
		{5.0, domain.SignalStrongBuy},
		{4.0, domain.SignalStrongBuy},
		{3.9, domain.SignalBuy},
		{3.0, domain.SignalBuy},
		{2.9, domain.SignalWeakBuy},
		{2.0, domain.SignalWeakBuy},
		{1.9, domain.SignalHold},
		{1.1, domain.SignalHold},
		{1.0, domain.SignalSell},
		{0.0, domain.SignalSell},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, SignalFor(tt.score), "score %.1f", tt.score)
	}
}

func TestDescribeCode(t *testing.T) {
	assert.Equal(t, "Purchase", DescribeCode("P"))
	assert.Equal(t, "Sale", DescribeCode("S"))
	assert.Equal(t, "Unknown", DescribeCode("Z"))
	assert.Equal(t, "Unknown", DescribeCode(""))
}
