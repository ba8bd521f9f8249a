// Package metrics exposes Prometheus metrics for project builds.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "etsproj"

// Metrics holds the collectors of the project builder. A nil *Metrics records
// nothing, so callers never need to check whether metrics are enabled.
type Metrics struct {
	DocumentsTotal   *prometheus.CounterVec   // By kind and status (ok/error)
	ElementsTotal    *prometheus.CounterVec   // By kind
	DocumentDuration *prometheus.HistogramVec // By kind
	Entities         *prometheus.GaugeVec     // By entity, from the last finished build
}

// NewMetrics creates unregistered collectors.
func NewMetrics() *Metrics {
	return &Metrics{
		DocumentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "build",
			Name:      "documents_total",
			Help:      "Total number of streamed project documents",
		}, []string{"kind", "status"}),

		ElementsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "build",
			Name:      "elements_total",
			Help:      "Total number of elements applied to the project",
		}, []string{"kind"}),

		DocumentDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "build",
			Name:      "document_duration_seconds",
			Help:      "Time spent streaming a single document",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}, []string{"kind"}),

		Entities: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "project",
			Name:      "entities",
			Help:      "Number of entities in the last built project",
		}, []string{"entity"}),
	}
}

// Register registers all collectors with reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.DocumentsTotal, m.ElementsTotal, m.DocumentDuration, m.Entities} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// RecordDocument records a streamed document.
func (m *Metrics) RecordDocument(kind string, elements int, duration time.Duration, err error) {
	if m == nil {
		return
	}

	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DocumentsTotal.WithLabelValues(kind, status).Inc()
	m.ElementsTotal.WithLabelValues(kind).Add(float64(elements))
	m.DocumentDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordEntities replaces the entity gauges with the given counts.
func (m *Metrics) RecordEntities(counts map[string]int) {
	if m == nil {
		return
	}
	for entity, n := range counts {
		m.Entities.WithLabelValues(entity).Set(float64(n))
	}
}
