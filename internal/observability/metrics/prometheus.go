package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Buckets sized for a delivery that may sit through two backoffs (up to ~95s).
	durationBuckets = []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120}

	// MessagesSent counts deliveries that reached the endpoint with a 200.
	MessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "birthday_dispatch_messages_sent_total",
			Help: "Total number of messages delivered successfully, by kind.",
		},
		[]string{"kind"},
	)

	// MessagesFailed counts deliveries that reached a failure terminal state.
	MessagesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "birthday_dispatch_messages_failed_total",
			Help: "Total number of deliveries ending in FAILED or FAILED_PERMANENT, by kind and permanence.",
		},
		[]string{"kind", "permanent"},
	)

	// MessagesRetried counts scheduled retry waits.
	MessagesRetried = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "birthday_dispatch_messages_retried_total",
			Help: "Total number of delivery attempts scheduled for retry, by kind.",
		},
		[]string{"kind"},
	)

	// SweepUsersSelected counts users handed to the dispatcher per sweep.
	SweepUsersSelected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "birthday_dispatch_sweep_users_selected_total",
			Help: "Total number of due users selected, by sweep.",
		},
		[]string{"sweep"},
	)

	// SweepFailures counts selection queries that failed and were skipped.
	SweepFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "birthday_dispatch_sweep_failures_total",
			Help: "Total number of sweep cycles skipped because the selection query failed, by sweep.",
		},
		[]string{"sweep"},
	)

	// DeliveryDuration measures the full per-user delivery duration including
	// retries and backoff.
	DeliveryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "birthday_dispatch_delivery_duration_seconds",
			Help:    "Histogram of per-user delivery duration in seconds, by kind and success status.",
			Buckets: durationBuckets,
		},
		[]string{"kind", "success"},
	)

	// HTTPRequestsTotal counts CRUD API requests by endpoint and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "birthday_api_http_requests_total",
			Help: "Total number of HTTP requests, by endpoint and status.",
		},
		[]string{"endpoint", "status"},
	)

	// HTTPRequestDuration measures CRUD API request latency by endpoint.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "birthday_api_http_request_duration_seconds",
			Help:    "Histogram of HTTP request duration in seconds, by endpoint.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

// MetricsHandler returns the HTTP handler for the Prometheus metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// ObserveDeliveryDuration simplifies observing a finished delivery.
func ObserveDeliveryDuration(kind string, success bool, start time.Time) {
	successStr := "false"
	if success {
		successStr = "true"
	}
	DeliveryDuration.WithLabelValues(kind, successStr).Observe(time.Since(start).Seconds())
}
