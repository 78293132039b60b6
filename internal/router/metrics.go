package router

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Partition label values.
const (
	partitionStatic  = "static"
	partitionDynamic = "dynamic"
)

// routerMetrics contains Prometheus metrics for route matching and the
// regex cache.
type routerMetrics struct {
	matches        *prometheus.CounterVec
	misses         prometheus.Counter
	matchErrors    prometheus.Counter
	routes         *prometheus.GaugeVec
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
	cacheEvictions prometheus.Counter
	cacheSize      prometheus.Gauge
	compileErrors  prometheus.Counter
}

var (
	routerMetricsInstance *routerMetrics
	routerMetricsOnce     sync.Once
)

// getRouterMetrics returns the singleton router metrics instance.
func getRouterMetrics() *routerMetrics {
	routerMetricsOnce.Do(func() {
		routerMetricsInstance = &routerMetrics{
			matches: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "avaroute",
					Subsystem: "router",
					Name:      "matches_total",
					Help:      "Total number of successful matches by route partition",
				},
				[]string{"partition"},
			),
			misses: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "avaroute",
					Subsystem: "router",
					Name:      "misses_total",
					Help:      "Total number of lookups that matched no route",
				},
			),
			matchErrors: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "avaroute",
					Subsystem: "router",
					Name:      "match_errors_total",
					Help:      "Total number of lookups aborted by a route pattern error",
				},
			),
			routes: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "avaroute",
					Subsystem: "router",
					Name:      "routes",
					Help:      "Number of routes in the active route set by partition",
				},
				[]string{"partition"},
			),
			cacheHits: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "avaroute",
					Subsystem: "router",
					Name:      "regex_cache_hits_total",
					Help:      "Total number of regex cache hits",
				},
			),
			cacheMisses: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "avaroute",
					Subsystem: "router",
					Name:      "regex_cache_misses_total",
					Help:      "Total number of regex cache misses",
				},
			),
			cacheEvictions: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "avaroute",
					Subsystem: "router",
					Name:      "regex_cache_evictions_total",
					Help:      "Total number of regex cache evictions",
				},
			),
			cacheSize: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "avaroute",
					Subsystem: "router",
					Name:      "regex_cache_size",
					Help:      "Current number of entries in the regex cache",
				},
			),
			compileErrors: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "avaroute",
					Subsystem: "router",
					Name:      "regex_compile_errors_total",
					Help:      "Total number of route patterns that failed to compile",
				},
			),
		}
	})
	return routerMetricsInstance
}
