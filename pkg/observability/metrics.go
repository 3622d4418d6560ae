package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records codec operations as Prometheus series.
type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mold_operations_total",
				Help: "Total number of load and dump operations",
			},
			[]string{"type", "op", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mold_operation_duration_seconds",
				Help:    "Duration of load and dump operations",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"type", "op"},
		),
	}
	reg.MustRegister(m.operations, m.duration)
	return m
}

// Observe records e.
func (m *Metrics) Observe(e *Event) {
	m.operations.WithLabelValues(e.Type, string(e.Op), string(e.Outcome())).Inc()
	m.duration.WithLabelValues(e.Type, string(e.Op)).Observe(e.Duration.Seconds())
}

// Hooks returns hooks that feed every event into m.
func (m *Metrics) Hooks() Hooks {
	observe := func(_ context.Context, e *Event) { m.Observe(e) }
	return Hooks{OnLoad: observe, OnDump: observe}
}
