// Package metrics exposes the Prometheus instruments of the service.
// Instruments register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FallbacksTotal counts responses served from static fallback data.
	FallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trendboard_fallbacks_total",
			Help: "Total number of responses served from fallback data",
		},
		[]string{"component", "reason"},
	)

	// UpstreamRequestDuration tracks backend call latency.
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trendboard_upstream_request_duration_seconds",
			Help:    "Duration of backend API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "outcome"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "trendboard_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trendboard_circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// HTTPRequestsTotal counts inbound requests by route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trendboard_http_requests_total",
			Help: "Total number of inbound HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trendboard_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)

// Fallback records one fallback served by component for reason.
func Fallback(component, reason string) {
	FallbacksTotal.WithLabelValues(component, reason).Inc()
}
