package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rental_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rental_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rental_bookings_total",
			Help: "Total number of booking status writes",
		},
		[]string{"status"},
	)

	CommentsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rental_comments_total",
			Help: "Total number of comments created",
		},
	)
)

// RecordHTTPRequest records one served HTTP request.
func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordBooking records a booking reaching the given status.
func RecordBooking(status string) {
	BookingsTotal.WithLabelValues(status).Inc()
}

// RecordComment records a created comment.
func RecordComment() {
	CommentsTotal.Inc()
}
