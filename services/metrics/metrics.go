// Package metrics records run results for the node exporter textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "haversine_gen"

// Metrics holds the gauges and counters of a single run on a private registry.
type Metrics struct {
	registry    *prometheus.Registry
	pairs       prometheus.Counter
	expectedSum prometheus.Gauge
	duration    prometheus.Gauge
	lastSuccess prometheus.Gauge
}

// New registers a fresh set of run metrics.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		pairs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pairs_total",
			Help:      "Number of coordinate pairs written.",
		}),
		expectedSum: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "expected_sum",
			Help:      "Sum of reference haversine distances of the last run.",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "duration_seconds",
			Help:      "Wall time of the last run.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time the last run finished.",
		}),
	}
	m.registry.MustRegister(m.pairs, m.expectedSum, m.duration, m.lastSuccess)
	return m
}

// Observe records one completed run.
func (m *Metrics) Observe(count int, sum float64, elapsed time.Duration, finished time.Time) {
	m.pairs.Add(float64(count))
	m.expectedSum.Set(sum)
	m.duration.Set(elapsed.Seconds())
	m.lastSuccess.Set(float64(finished.UnixNano()) / 1e9)
}

// Registry exposes the underlying registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile atomically replaces path with the current metric values.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
