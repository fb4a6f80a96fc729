// Package conviction ranks insider transactions with a heuristic
// conviction score and maps scores to discrete trading signals.
//
// The score lives on a 0-5 float scale. It is a tunable business
// heuristic, not a correctness-critical formula: the contributions
// below are the documented defaults and can be overridden per run.
package conviction

import (
	"edgarcli/pkg/contracts/domain"
)

// Score bounds and signal thresholds. Thresholds are fixed fractions
// of the scale maximum (0.8, 0.6, 0.4 and 0.2 respectively).
const (
	MinScore = 0.0
	MaxScore = 5.0

	StrongBuyThreshold = 0.8 * MaxScore
	BuyThreshold       = 0.6 * MaxScore
	WeakBuyThreshold   = 0.4 * MaxScore
	SellThreshold      = 0.2 * MaxScore
)

// Value tiers for the transaction-size contribution, in dollars.
const (
	LargeValueTier = 1_000_000.0
	MidValueTier   = 100_000.0
	SmallValueTier = 10_000.0
)

// Weights holds the independent score contributions. Disposition (code
// D) carries no code weight of its own: its direction is captured by
// the ownership flag contribution instead.
type Weights struct {
	Purchase float64 // code P
	Sale     float64 // code S
	Award    float64 // code A

	LargeValue float64 // total value above LargeValueTier
	MidValue   float64 // above MidValueTier
	SmallValue float64 // above SmallValueTier

	Acquired float64 // ownership flag "A"
	Disposed float64 // any other ownership flag

	RepeatInsider float64 // same insider appears more than once in the batch
}

// DefaultWeights returns the documented default contribution table.
func DefaultWeights() Weights {
	return Weights{
		Purchase:      3.0,
		Sale:          -1.0,
		Award:         0.5,
		LargeValue:    2.0,
		MidValue:      1.0,
		SmallValue:    0.5,
		Acquired:      1.0,
		Disposed:      -0.5,
		RepeatInsider: 1.0,
	}
}

// Scorer computes conviction scores. It is pure and holds no state
// beyond its weight table; the only batch-relative input, the insider's
// transaction count, is passed in by the caller.
type Scorer struct {
	weights Weights
}

// NewScorer returns a scorer using the given weights.
func NewScorer(w Weights) *Scorer {
	return &Scorer{weights: w}
}

// Score computes the conviction score and signal for one record.
// insiderTxnCount is how many transactions the same insider has in the
// current batch; it is recomputed per run, never carried across runs.
func (s *Scorer) Score(rec domain.TransactionRecord, insiderTxnCount int) (float64, domain.Signal) {
	score := 0.0

	switch rec.TransactionCode {
	case "P":
		score += s.weights.Purchase
	case "S":
		score += s.weights.Sale
	case "A":
		score += s.weights.Award
	}

	switch {
	case rec.TotalValue > LargeValueTier:
		score += s.weights.LargeValue
	case rec.TotalValue > MidValueTier:
		score += s.weights.MidValue
	case rec.TotalValue > SmallValueTier:
		score += s.weights.SmallValue
	}

	if rec.OwnershipType == "A" {
		score += s.weights.Acquired
	} else {
		score += s.weights.Disposed
	}

	if insiderTxnCount > 1 {
		score += s.weights.RepeatInsider
	}

	score = clamp(score, MinScore, MaxScore)
	return score, SignalFor(score)
}

// SignalFor maps a clamped score to its signal band. Sell has the
// lowest precedence boundary: anything at or below 0.2 of the scale is
// a sell regardless of the hold band.
func SignalFor(score float64) domain.Signal {
	switch {
	case score >= StrongBuyThreshold:
		return domain.SignalStrongBuy
	case score >= BuyThreshold:
		return domain.SignalBuy
	case score >= WeakBuyThreshold:
		return domain.SignalWeakBuy
	case score <= SellThreshold:
		return domain.SignalSell
	default:
		return domain.SignalHold
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
