package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics instruments the batch pipeline. All methods are safe on a
// nil receiver so instrumentation stays optional.
type Metrics struct {
	filesProcessed        prometheus.Counter
	filesSkipped          prometheus.Counter
	transactionsExtracted prometheus.Counter
	patternFallbacks      prometheus.Counter
}

// NewMetrics registers the pipeline counters with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		filesProcessed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "edgarcli",
			Subsystem: "pipeline",
			Name:      "files_processed_total",
			Help:      "Filings that yielded at least one transaction.",
		}),
		filesSkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "edgarcli",
			Subsystem: "pipeline",
			Name:      "files_skipped_total",
			Help:      "Filings skipped as unreadable, invalid, or empty.",
		}),
		transactionsExtracted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "edgarcli",
			Subsystem: "pipeline",
			Name:      "transactions_extracted_total",
			Help:      "Transaction records extracted across all runs.",
		}),
		patternFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "edgarcli",
			Subsystem: "pipeline",
			Name:      "pattern_fallbacks_total",
			Help:      "Documents recovered by regex fallback extraction.",
		}),
	}
}

func (m *Metrics) IncProcessed() {
	if m != nil {
		m.filesProcessed.Inc()
	}
}

func (m *Metrics) IncSkipped() {
	if m != nil {
		m.filesSkipped.Inc()
	}
}

func (m *Metrics) AddTransactions(n int) {
	if m != nil {
		m.transactionsExtracted.Add(float64(n))
	}
}

func (m *Metrics) IncFallbacks() {
	if m != nil {
		m.patternFallbacks.Inc()
	}
}
