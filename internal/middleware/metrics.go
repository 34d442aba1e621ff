package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the correlation middleware.
type Metrics struct {
	correlationsTotal *prometheus.CounterVec
	bodyTooLarge      prometheus.Counter
	bodyBytes         prometheus.Histogram
	panicsRecovered   prometheus.Counter
}

// NewMetrics creates middleware metrics registered with reg. A nil
// registerer leaves the collectors unregistered.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "ariproxy"
	}
	factory := promauto.With(reg)

	return &Metrics{
		correlationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "middleware",
				Name:      "correlations_total",
				Help: "Total number of requests " +
					"by command type, correlation outcome and id source",
			},
			[]string{"type", "outcome", "source"},
		),
		bodyTooLarge: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "middleware",
				Name:      "body_too_large_total",
				Help: "Total number of request bodies " +
					"too large to inspect for a correlation id",
			},
		),
		bodyBytes: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "middleware",
				Name:      "inspected_body_bytes",
				Help:      "Size of request bodies inspected for a correlation id",
				Buckets:   prometheus.ExponentialBuckets(64, 4, 8),
			},
		),
		panicsRecovered: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "middleware",
				Name:      "panics_recovered_total",
				Help:      "Total number of handler panics recovered",
			},
		),
	}
}

func (m *Metrics) recordCorrelation(commandType, outcome, source string) {
	if m == nil {
		return
	}
	m.correlationsTotal.WithLabelValues(commandType, outcome, source).Inc()
}

func (m *Metrics) recordBody(size int) {
	if m == nil {
		return
	}
	m.bodyBytes.Observe(float64(size))
}

func (m *Metrics) recordBodyTooLarge() {
	if m == nil {
		return
	}
	m.bodyTooLarge.Inc()
}

func (m *Metrics) recordPanic() {
	if m == nil {
		return
	}
	m.panicsRecovered.Inc()
}
