package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks extraction quality. Skip and rejection counters are the
// early-warning signal for layout drift at a bank: a new statement format
// shows up as a step change in skips long before anyone files a ticket.
type Metrics struct {
	RowsSkipped    *prometheus.CounterVec
	TablesRejected prometheus.Counter
	Documents      *prometheus.CounterVec
}

// NewMetrics registers the extraction metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RowsSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "statement",
			Name:      "rows_skipped_total",
			Help:      "Data rows discarded during extraction, by reason.",
		}, []string{"reason"}),
		TablesRejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "statement",
			Name:      "tables_rejected_total",
			Help:      "Tables skipped wholesale due to missing required headers.",
		}),
		Documents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "statement",
			Name:      "documents_total",
			Help:      "Documents processed, by response code.",
		}, []string{"code"}),
	}
}
