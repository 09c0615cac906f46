package lattice

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors an NBestEnumerator and Lattice
// report through when attached. Unattached use performs zero Prometheus
// work, keeping the library side-effect-free by default.
type Metrics struct {
	pathsEmitted  prometheus.Counter
	frontierSize  prometheus.Gauge
	dpDuration    prometheus.Histogram
}

// RegisterMetrics creates a Metrics and registers its collectors with reg.
func RegisterMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		pathsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tetengo_lattice_paths_emitted_total",
			Help: "Number of paths yielded by N-best enumerators.",
		}),
		frontierSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tetengo_lattice_frontier_size",
			Help: "Number of partial paths currently queued in an N-best search.",
		}),
		dpDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tetengo_lattice_dp_duration_seconds",
			Help:    "Wall time spent in Viterbi forward construction or tail-cost backward DP.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.pathsEmitted, m.frontierSize, m.dpDuration)
	return m
}

// ObservePathEmitted increments the paths-emitted counter.
func (m *Metrics) ObservePathEmitted() {
	if m == nil {
		return
	}
	m.pathsEmitted.Inc()
}

// ObserveFrontierSize records the current size of the A* frontier.
func (m *Metrics) ObserveFrontierSize(n int) {
	if m == nil {
		return
	}
	m.frontierSize.Set(float64(n))
}

// ObserveDPDuration records how long a dynamic-program pass took.
func (m *Metrics) ObserveDPDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.dpDuration.Observe(d.Seconds())
}
