package pipeline

import (
	"sort"

	"edgarcli/pkg/contracts/domain"
)

// Summary aggregates a scored batch for reporting and the API surface.
type Summary struct {
	TotalTransactions  int                        `json:"total_transactions"`
	UniqueCompanies    int                        `json:"unique_companies"`
	UniqueInsiders     int                        `json:"unique_insiders"`
	TotalDollarVolume  float64                    `json:"total_dollar_volume"`
	AverageScore       float64                    `json:"average_conviction_score"`
	SignalDistribution map[domain.Signal]int      `json:"signal_distribution"`
	TopTransactions    []domain.TransactionRecord `json:"top_transactions"`
}

// Summarize builds the batch summary. topN bounds the highest-conviction
// list; the input slice is not modified.
func Summarize(records []domain.TransactionRecord, topN int) Summary {
	summary := Summary{
		TotalTransactions:  len(records),
		SignalDistribution: make(map[domain.Signal]int),
	}
	if len(records) == 0 {
		return summary
	}

	companies := make(map[string]struct{})
	insiders := make(map[string]struct{})
	scoreSum := 0.0

	for _, rec := range records {
		companies[rec.Ticker] = struct{}{}
		insiders[rec.InsiderName] = struct{}{}
		summary.TotalDollarVolume += rec.TotalValue
		scoreSum += rec.ConvictionScore
		summary.SignalDistribution[rec.Signal]++
	}
	summary.UniqueCompanies = len(companies)
	summary.UniqueInsiders = len(insiders)
	summary.AverageScore = scoreSum / float64(len(records))

	ranked := make([]domain.TransactionRecord, len(records))
	copy(ranked, records)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ConvictionScore > ranked[j].ConvictionScore
	})
	if topN > len(ranked) {
		topN = len(ranked)
	}
	if topN > 0 {
		summary.TopTransactions = ranked[:topN]
	}

	return summary
}
