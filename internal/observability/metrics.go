// Package observability exposes per-transaction Prometheus metrics. Metrics
// live in their own registry and are written out in the textfile collector
// format.
package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danmuck/eppctl/internal/protocol/session"
)

// Metrics holds the transaction collectors.
type Metrics struct {
	registry *prometheus.Registry

	transactions *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	failures     *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		transactions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "eppctl",
				Subsystem: "epp",
				Name:      "transactions_total",
				Help:      "EPP transactions that reached the wire, by result code.",
			},
			[]string{"registry", "command", "extension", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "eppctl",
				Subsystem: "epp",
				Name:      "transaction_duration_seconds",
				Help:      "EPP transaction round-trip duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"registry", "command"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "eppctl",
				Subsystem: "epp",
				Name:      "transport_failures_total",
				Help:      "EPP transactions that ended without a decodable response.",
			},
			[]string{"registry", "command"},
		),
	}
	m.registry.MustRegister(m.transactions, m.duration, m.failures)
	return m
}

// Registry returns the collectors' registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Record counts one finished transaction against registry.
func (m *Metrics) Record(registry string, rec session.Record) {
	m.duration.WithLabelValues(registry, rec.Verb).Observe(rec.Duration.Seconds())
	if rec.Code == 0 {
		m.failures.WithLabelValues(registry, rec.Verb).Inc()
		return
	}
	m.transactions.WithLabelValues(registry, rec.Verb, rec.Extension, strconv.Itoa(int(rec.Code))).Inc()
}

// Observer adapts Record to a session observer.
func (m *Metrics) Observer(registry string) session.Observer {
	return func(rec session.Record) {
		m.Record(registry, rec)
	}
}

// WriteTextfile writes the current values in the text exposition format.
// The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
