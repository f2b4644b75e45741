// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	HTTPActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_requests",
			Help: "Current number of in-flight HTTP requests",
		},
	)

	RateLimitRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_rate_limit_rejections_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"route"},
	)

	// outcome: found, not_found, invalid, rate_limited, upstream_error
	VehicleLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vehicle_lookups_total",
			Help: "Total number of vehicle registration lookups by outcome",
		},
		[]string{"outcome"},
	)

	VehicleLookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vehicle_lookup_duration_seconds",
			Help:    "Duration of upstream vehicle registry calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	BookingsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Total number of bookings submitted",
		},
	)

	EstimatesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "estimates_total",
			Help: "Total number of price estimates computed",
		},
	)
)

// RecordHTTPRequest records one finished HTTP request.
func RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordVehicleLookup records one upstream lookup attempt.
func RecordVehicleLookup(outcome string, duration time.Duration) {
	VehicleLookupsTotal.WithLabelValues(outcome).Inc()
	if duration > 0 {
		VehicleLookupDuration.Observe(duration.Seconds())
	}
}
