// Package metrics exposes the process's Prometheus collectors: schedule
// generation latency, conflicts found per generation, and cache hit ratio.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry owns a private Prometheus registry so tests can construct one
// without colliding with prometheus.DefaultRegisterer.
type Registry struct {
	registry *prometheus.Registry

	generationDuration prometheus.Histogram
	conflictsDetected  *prometheus.CounterVec
	cacheHits          prometheus.Counter
	cacheMisses        prometheus.Counter
}

// New builds a Registry with every collector registered.
func New() *Registry {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Registry{
		registry: reg,
		generationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hoopscheduler",
			Subsystem: "scheduler",
			Name:      "generation_duration_seconds",
			Help:      "Wall-clock time spent generating a season's schedule.",
			Buckets:   prometheus.DefBuckets,
		}),
		conflictsDetected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hoopscheduler",
			Subsystem: "scheduler",
			Name:      "conflicts_detected_total",
			Help:      "Games flagged with at least one conflict during generation.",
		}, []string{"severity"}),
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "hoopscheduler",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Cache reads that found a live entry.",
		}),
		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "hoopscheduler",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Cache reads that found no live entry.",
		}),
	}
}

// Handler serves this registry's collectors in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// RecordGeneration observes one schedule-generation run: its duration and
// how many of its games came out with a conflict.
func (r *Registry) RecordGeneration(generationTimeMS int64, withConflicts int) {
	r.generationDuration.Observe(float64(generationTimeMS) / 1000)
	if withConflicts > 0 {
		r.conflictsDetected.WithLabelValues("any").Add(float64(withConflicts))
	}
}

func (r *Registry) recordCacheHit() {
	r.cacheHits.Inc()
}

func (r *Registry) recordCacheMiss() {
	r.cacheMisses.Inc()
}
