// Package metrics exposes Prometheus collectors for the API on a private
// registry. A nil *Collector is valid and records nothing, so services and
// tests can run without metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns the registry and every metric of the process.
type Collector struct {
	registry          *prometheus.Registry
	requests          *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	computations      *prometheus.CounterVec
	computationErrors *prometheus.CounterVec
	snapshotsRecorded prometheus.Counter
}

// NewCollector registers all metrics on a fresh registry.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Time taken to serve an HTTP request",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		computations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "insight_computations_total",
			Help: "Total number of engine computations by section",
		}, []string{"section"}),
		computationErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "insight_computation_errors_total",
			Help: "Total number of engine computations that failed by section",
		}, []string{"section"}),
		snapshotsRecorded: factory.NewCounter(prometheus.CounterOpts{
			Name: "networth_snapshots_recorded_total",
			Help: "Total number of net worth history rows recorded",
		}),
	}
}

// ObserveRequest records one served request.
func (c *Collector) ObserveRequest(method, path string, status int, duration time.Duration) {
	if c == nil {
		return
	}
	c.requests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveComputation records one engine computation of a section.
func (c *Collector) ObserveComputation(section string, err error) {
	if c == nil {
		return
	}
	c.computations.WithLabelValues(section).Inc()
	if err != nil {
		c.computationErrors.WithLabelValues(section).Inc()
	}
}

// AddSnapshotsRecorded counts net worth history rows written by one run.
func (c *Collector) AddSnapshotsRecorded(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.snapshotsRecorded.Add(float64(n))
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
