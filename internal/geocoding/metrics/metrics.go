package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for geocoding lookups and the cache.
type Metrics struct {
	Lookups        *prometheus.CounterVec
	LookupDuration *prometheus.HistogramVec
	CacheHits      *prometheus.CounterVec
	CacheMisses    *prometheus.CounterVec
	ActiveSessions prometheus.Gauge
}

// New registers the geocoding metrics with the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the geocoding metrics with reg.
func NewWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Lookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "looview_geocode_lookups_total",
			Help: "Geocoding lookups by direction and outcome",
		}, []string{"op", "status"}),
		LookupDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "looview_geocode_lookup_duration_seconds",
			Help:    "Duration of geocoding lookups including cache",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"op"}),
		CacheHits: f.NewCounterVec(prometheus.CounterOpts{
			Name: "looview_geocode_cache_hits_total",
			Help: "Geocode cache hits by direction",
		}, []string{"op"}),
		CacheMisses: f.NewCounterVec(prometheus.CounterOpts{
			Name: "looview_geocode_cache_misses_total",
			Help: "Geocode cache misses by direction",
		}, []string{"op"}),
		ActiveSessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "looview_form_sessions_active",
			Help: "Open add-toilet form sessions",
		}),
	}
}

// ObserveLookup records one completed lookup.
func (m *Metrics) ObserveLookup(op, status string, start time.Time) {
	m.Lookups.WithLabelValues(op, status).Inc()
	m.LookupDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// RecordCacheHit records a cache hit for op.
func (m *Metrics) RecordCacheHit(op string) {
	m.CacheHits.WithLabelValues(op).Inc()
}

// RecordCacheMiss records a cache miss for op.
func (m *Metrics) RecordCacheMiss(op string) {
	m.CacheMisses.WithLabelValues(op).Inc()
}

// SetActiveSessions reports the open session count.
func (m *Metrics) SetActiveSessions(n int) {
	m.ActiveSessions.Set(float64(n))
}
