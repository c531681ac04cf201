// Package prometheus implements the metrics.Collector contract on top of
// prometheus/client_golang.
package prometheus

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector implements metrics.Collector for Prometheus.
type Collector struct {
	namespace string

	requests       *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec

	storeOps       *prometheus.CounterVec
	storeErrors    *prometheus.CounterVec
	storeOpLatency *prometheus.HistogramVec
}

// NewCollector creates a new Prometheus metrics collector.
func NewCollector(namespace string) *Collector {
	return &Collector{
		namespace: namespace,
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests by route, method and status",
			},
			[]string{"route", "method", "status"},
		),
		requestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 15), // 0.1ms to ~3s
			},
			[]string{"route"},
		),
		storeOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_ops_total",
				Help:      "Total number of preference store operations by store and operation",
			},
			[]string{"store", "operation"},
		),
		storeErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_errors_total",
				Help:      "Total number of failed preference store operations by store and operation",
			},
			[]string{"store", "operation"},
		),
		storeOpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "store_op_duration_seconds",
				Help:      "Preference store operation latency",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 15),
			},
			[]string{"store"},
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.requests.Describe(ch)
	c.requestLatency.Describe(ch)
	c.storeOps.Describe(ch)
	c.storeErrors.Describe(ch)
	c.storeOpLatency.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.requests.Collect(ch)
	c.requestLatency.Collect(ch)
	c.storeOps.Collect(ch)
	c.storeErrors.Collect(ch)
	c.storeOpLatency.Collect(ch)
}

// RecordRequest records one handled HTTP request.
func (c *Collector) RecordRequest(route, method string, status int, duration time.Duration) {
	c.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	c.requestLatency.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordStoreOp records one preference store operation.
func (c *Collector) RecordStoreOp(store, operation string, success bool, duration time.Duration) {
	c.storeOps.WithLabelValues(store, operation).Inc()
	if !success {
		c.storeErrors.WithLabelValues(store, operation).Inc()
	}
	c.storeOpLatency.WithLabelValues(store).Observe(duration.Seconds())
}
