package dnscache

import "github.com/prometheus/client_golang/prometheus"

// Metrics is the cache's prometheus instrumentation: a gauge of live
// entries, refreshed by the owner on a timer via Report.
type Metrics struct {
	Entries prometheus.Gauge
}

// NewMetrics constructs and registers the cache's metrics against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "apfw_dns_cache_entries",
			Help: "distinct domain names currently held in the DNS cache",
		}),
	}
	reg.MustRegister(m.Entries)
	return m
}

// Report sets m.Entries to l's current size. The caller is
// responsible for calling this periodically; the cache has no
// internal timer.
func (m *Metrics) Report(l *Locked) {
	l.mu.Lock()
	n := l.c.Len()
	l.mu.Unlock()
	m.Entries.Set(float64(n))
}
