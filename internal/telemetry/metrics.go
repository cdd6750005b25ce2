package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// TaxMetrics holds Prometheus metrics for tax calculation observability.
// All metrics include the algorithm label so rounding-mode rollouts can be
// compared on a dashboard.
type TaxMetrics struct {
	CalculationsTotal   *prometheus.CounterVec
	CalculationDuration *prometheus.HistogramVec
	QuoteItems          prometheus.Histogram
	ZeroRateItems       prometheus.Counter
}

// NewTaxMetrics creates and registers all tax calculation metrics.
func NewTaxMetrics(namespace string) *TaxMetrics {
	if namespace == "" {
		namespace = "skatt"
	}

	subsystem := "tax"

	return &TaxMetrics{
		CalculationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "calculations_total",
				Help:      "Total quote tax calculations",
			},
			[]string{"algorithm", "status"}, // status: ok, invalid, not_found, conflict, internal
		),
		CalculationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "calculation_duration_seconds",
				Help:      "Quote tax calculation latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"algorithm"},
		),
		QuoteItems: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "quote_items",
				Help:      "Line items per calculated quote",
				Buckets:   []float64{1, 2, 5, 10, 25, 50, 100},
			},
		),
		ZeroRateItems: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "zero_rate_items_total",
				Help:      "Items that resolved to no applicable tax rate",
			},
		),
	}
}
