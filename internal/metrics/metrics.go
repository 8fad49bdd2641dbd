// Package metrics holds the Prometheus collectors for the booking API.
// Collectors register with the default registry, which /metrics serves.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "campground"

// Promotion apply outcomes.
const (
	OutcomeApplied      = "applied"
	OutcomeInvalid      = "invalid"
	OutcomeNotFound     = "not_found"
	OutcomeExpired      = "expired"
	OutcomeLimitReached = "limit_reached"
	OutcomeMinimumSpend = "below_minimum_spend"
	OutcomeError        = "error"
)

var (
	// PromotionApplies counts apply attempts by outcome.
	PromotionApplies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "promotion_apply_total",
			Help:      "Promotion apply attempts by outcome.",
		},
		[]string{"outcome"},
	)

	// BookingWrites counts successful booking writes by operation.
	BookingWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_writes_total",
			Help:      "Successful booking writes by operation.",
		},
		[]string{"op"}, // create, update, delete
	)

	// HTTPRequestDuration tracks request latency by route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route", "status"},
	)
)

// RecordPromotionApply increments the apply counter for outcome.
func RecordPromotionApply(outcome string) {
	PromotionApplies.WithLabelValues(outcome).Inc()
}

// RecordBookingWrite increments the booking write counter for op.
func RecordBookingWrite(op string) {
	BookingWrites.WithLabelValues(op).Inc()
}

// ObserveHTTPRequest records one request's latency.
func ObserveHTTPRequest(method, route, status string, seconds float64) {
	HTTPRequestDuration.WithLabelValues(method, route, status).Observe(seconds)
}
