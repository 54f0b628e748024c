// Package metrics exposes Prometheus collectors for the acknowledgement stub.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	stubAcksTotal              *prometheus.CounterVec
	stubAckBodyBytes           prometheus.Histogram
	httpRequestsTotal          *prometheus.CounterVec
	httpRequestDurationSeconds *prometheus.HistogramVec

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		stubAcksTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stub_acks_total",
				Help: "Total number of acknowledged POST requests, labeled by content type.",
			},
			[]string{"content_type"},
		)

		stubAckBodyBytes = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "stub_ack_body_bytes",
				Help:    "Histogram of recorded request body sizes.",
				Buckets: prometheus.ExponentialBuckets(64, 4, 8),
			},
		)

		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests, labeled by method and code.",
			},
			[]string{"method", "code"},
		)

		httpRequestDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies, labeled by method and route.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"method", "route"},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveAck records one acknowledged request and the size of its body.
func ObserveAck(contentType string, bodyBytes int) {
	if contentType == "" {
		contentType = "none"
	}
	stubAcksTotal.WithLabelValues(contentType).Inc()
	stubAckBodyBytes.Observe(float64(bodyBytes))
}

// ObserveHTTPRequest increments the HTTP request metrics.
func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}
