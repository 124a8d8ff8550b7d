// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Integration for Production Observability
// This package provides instrumentation for:
// - Places provider call latency and errors
// - Geocode/POI cache efficiency
// - Circuit breaker state transitions
// - Venue search fallback usage
// - Recommendation request throughput and latency

var (
	// Places Provider Metrics
	PlacesAPIDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "places_api_call_duration_seconds",
			Help:    "Duration of places provider API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "text_search", "geocode", "nearby_search"
	)

	PlacesAPIErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "places_api_errors_total",
			Help: "Total number of places provider API errors",
		},
		[]string{"operation", "reason"}, // reason: "http", "status", "rate_limited", "decode"
	)

	GeocodeRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "geocode_retries_total",
			Help: "Total number of geocode retry attempts",
		},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache"}, // "geocode", "poi"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions due to capacity pressure",
		},
		[]string{"cache"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of entries per cache",
		},
		[]string{"cache"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through the circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	// Venue Search Metrics
	VenueSearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "venue_search_results",
			Help:    "Number of venues returned per nearby search",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
	)

	FallbackSearches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "venue_fallback_searches_total",
			Help: "Total number of searches resolved by each fallback rung",
		},
		[]string{"rung"}, // "primary", "keyword_only", "generic_category", "wide_radius", "exhausted"
	)

	// Recommendation Metrics
	RecommendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"status"}, // "ok", "no_venues", "unresolved", "error"
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_request_duration_seconds",
			Help:    "End-to-end recommendation request duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	RecommendInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_requests_in_flight",
			Help: "Recommendation requests currently admitted for processing",
		},
	)

	RecommendQueued = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_requests_queued",
			Help: "Recommendation requests waiting on the admission semaphore",
		},
	)

	// Oracle (LLM rerank) Metrics
	OracleRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oracle_requests_total",
			Help: "Total number of rerank oracle calls",
		},
		[]string{"operation", "result"}, // operation: "score", "transport_advice"; result: "ok", "unavailable"
	)

	// HTTP API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)
)

// RecordPlacesCall records the duration and outcome of a places provider call.
// Pass an empty errReason for successful calls.
func RecordPlacesCall(operation string, duration time.Duration, errReason string) {
	PlacesAPIDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if errReason != "" {
		PlacesAPIErrors.WithLabelValues(operation, errReason).Inc()
	}
}

// RecordAPIRequest records an HTTP request with its response status.
func RecordAPIRequest(method, endpoint string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
