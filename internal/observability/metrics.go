package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Lookup result label values.
const (
	ResultMatched = "matched"
	ResultMissed  = "missed"
	ResultError   = "error"
)

// Metrics holds the lookup metrics of a routematch process. Its registry
// is served together with the default registry, which carries the
// router metrics and the Go runtime collectors.
type Metrics struct {
	lookupsTotal   *prometheus.CounterVec
	lookupDuration *prometheus.HistogramVec
	reloadsTotal   *prometheus.CounterVec
	buildInfo      *prometheus.GaugeVec
	startTime      prometheus.Gauge
	registry       *prometheus.Registry
}

// NewMetrics creates a new Metrics instance.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "routematch"
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
	}

	m.lookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Total number of route lookups by method and result",
		},
		[]string{"method", "result"},
	)

	m.lookupDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lookup_duration_seconds",
			Help:      "Route lookup duration in seconds",
			Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
		},
		[]string{"result"},
	)

	m.reloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reloads_total",
			Help:      "Total number of route set reloads by outcome",
		},
		[]string{"outcome"},
	)

	m.buildInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "build_info",
			Help:      "Build information",
		},
		[]string{"version", "commit", "build_time"},
	)

	m.startTime = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "start_time_seconds",
			Help:      "Start time of the process since unix epoch in seconds",
		},
	)
	m.startTime.SetToCurrentTime()

	m.registry.MustRegister(
		m.lookupsTotal,
		m.lookupDuration,
		m.reloadsTotal,
		m.buildInfo,
		m.startTime,
	)

	return m
}

// RecordLookup records one resolved request.
func (m *Metrics) RecordLookup(method, result string, duration time.Duration) {
	m.lookupsTotal.WithLabelValues(method, result).Inc()
	m.lookupDuration.WithLabelValues(result).Observe(duration.Seconds())
}

// RecordReload records the outcome of a route set reload.
func (m *Metrics) RecordReload(err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.reloadsTotal.WithLabelValues(outcome).Inc()
}

// SetBuildInfo sets the build information metric.
func (m *Metrics) SetBuildInfo(version, commit, buildTime string) {
	m.buildInfo.WithLabelValues(version, commit, buildTime).Set(1)
}

// Registry returns the Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler exposing this registry and the default one.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(
		prometheus.Gatherers{m.registry, prometheus.DefaultGatherer},
		promhttp.HandlerOpts{EnableOpenMetrics: true},
	)
}
