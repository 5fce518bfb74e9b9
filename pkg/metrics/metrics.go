// Package metrics exposes prometheus instrumentation for the record
// store synchronization engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// SyncMetrics counts the work performed by populate calls. The cache
// hit ratio is the primary signal: a second populate against an
// unchanged remote should fetch nothing.
type SyncMetrics struct {
	CacheHits     prometheus.Counter
	CacheMisses   prometheus.Counter
	Fetches       prometheus.Counter
	ParseFailures prometheus.Counter
	PopulateTime  prometheus.Histogram
	RecordsHeld   prometheus.Gauge
}

// New builds and registers sync metrics. A nil registerer defaults to
// the prometheus default registry.
func New(reg prometheus.Registerer) *SyncMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &SyncMetrics{
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "metacat",
			Subsystem: "sync",
			Name:      "cache_hits_total",
			Help:      "Records resolved from the local cache without a remote fetch",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "metacat",
			Subsystem: "sync",
			Name:      "cache_misses_total",
			Help:      "Records requiring a remote fetch and parse",
		}),
		Fetches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "metacat",
			Subsystem: "sync",
			Name:      "remote_fetches_total",
			Help:      "Raw configuration payloads fetched from the remote",
		}),
		ParseFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "metacat",
			Subsystem: "sync",
			Name:      "parse_failures_total",
			Help:      "Configurations that failed validation",
		}),
		PopulateTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "metacat",
			Subsystem: "sync",
			Name:      "populate_duration_seconds",
			Help:      "Wall time of populate calls",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
		RecordsHeld: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "metacat",
			Subsystem: "sync",
			Name:      "records_held",
			Help:      "Records in the current populated set",
		}),
	}
	reg.MustRegister(m.CacheHits, m.CacheMisses, m.Fetches, m.ParseFailures, m.PopulateTime, m.RecordsHeld)
	return m
}
