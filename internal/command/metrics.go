package command

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const subsystem = "command"

// Metrics holds Prometheus metrics for classification and extraction.
type Metrics struct {
	classificationsTotal *prometheus.CounterVec
	extractionsTotal     *prometheus.CounterVec
}

// NewMetrics creates classifier metrics registered with reg. A nil
// registerer leaves the collectors unregistered.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "ariproxy"
	}
	factory := promauto.With(reg)

	return &Metrics{
		classificationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "classifications_total",
				Help:      "Total number of request paths classified by command type",
			},
			[]string{"type"},
		),
		extractionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "extractions_total",
				Help: "Total number of resource id extractions " +
					"by source and outcome",
			},
			[]string{"type", "source", "outcome", "reason"},
		),
	}
}

func (m *Metrics) recordClassification(t Type) {
	if m == nil {
		return
	}
	m.classificationsTotal.WithLabelValues(t.String()).Inc()
}

func (m *Metrics) recordExtraction(t Type, r Result) {
	if m == nil {
		return
	}
	m.extractionsTotal.WithLabelValues(
		t.String(),
		string(r.Source()),
		r.Outcome().String(),
		Reason(r.Err()),
	).Inc()
}
