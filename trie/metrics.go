package trie

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors a *Trie reports through when
// attached. A trie used without RegisterMetrics performs zero Prometheus
// work, keeping the library side-effect-free by default.
type Metrics struct {
	arrayLen      prometheus.Gauge
	valueCount    prometheus.Gauge
	fillRatio     prometheus.Gauge
	buildDuration prometheus.Histogram
}

// RegisterMetrics creates a Metrics and registers its collectors with reg.
// Registration is explicit and opt-in; callers that never call this
// incur no Prometheus overhead at all.
func RegisterMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		arrayLen: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tetengo_trie_array_len",
			Help: "Number of base/check slots in the double array.",
		}),
		valueCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tetengo_trie_value_count",
			Help: "Number of values stored in the trie's value table.",
		}),
		fillRatio: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tetengo_trie_fill_ratio",
			Help: "Fraction of base/check slots with a non-zero check.",
		}),
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tetengo_trie_build_duration_seconds",
			Help:    "Wall time spent freezing a trie in Build.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.arrayLen, m.valueCount, m.fillRatio, m.buildDuration)
	return m
}

// Observe records t's current array length, value count, and fill ratio.
func (m *Metrics) Observe(t *Trie) {
	if m == nil {
		return
	}
	size := t.storage.size()
	m.arrayLen.Set(float64(size))
	m.valueCount.Set(float64(t.storage.valueCount()))
	m.fillRatio.Set(fillRatio(t.storage))
}

// ObserveBuildDuration records how long a Build call took.
func (m *Metrics) ObserveBuildDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.buildDuration.Observe(d.Seconds())
}

func fillRatio(s storage) float64 {
	size := s.size()
	if size == 0 {
		return 0
	}
	used := 0
	for i := 0; i < size; i++ {
		check, err := s.checkAt(int32(i))
		if err != nil {
			continue
		}
		if check != 0 {
			used++
		}
	}
	return float64(used) / float64(size)
}
