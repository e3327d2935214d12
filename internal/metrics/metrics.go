// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	gobreaker "github.com/sony/gobreaker/v2"
)

var (
	// Engine Metrics
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "outfit_generation_duration_seconds",
			Help:    "Duration of outfit generations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"outcome"}, // "composed", "emergency"
	)

	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outfit_generations_total",
			Help: "Total number of generated outfits by strategy and outcome",
		},
		[]string{"strategy", "outcome"},
	)

	FallbackTiersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outfit_fallback_tiers_total",
			Help: "Total number of candidate fallback tiers entered",
		},
		[]string{"tier"},
	)

	AnalyzerFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outfit_analyzer_failures_total",
			Help: "Total number of analyzer runs that failed or timed out",
		},
		[]string{"analyzer"},
	)

	GenerationWarnings = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "outfit_generation_warnings",
			Help:    "Number of warnings attached to each outfit",
			Buckets: []float64{0, 1, 2, 3, 5, 8},
		},
	)

	BudgetExceededTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "outfit_budget_exceeded_total",
			Help: "Total number of generations answered with the emergency outfit after the request budget expired",
		},
	)

	// Analytics Metrics
	AnalyticsEventsPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "analytics_events_published_total",
			Help: "Total number of strategy execution events published",
		},
	)

	AnalyticsEventsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_events_dropped_total",
			Help: "Total number of strategy execution events dropped",
		},
		[]string{"reason"}, // "buffer_full", "rate_limited", "publish_error", "encode_error", "closed"
	)

	AnalyticsQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "analytics_queue_depth",
			Help: "Current number of events waiting to be published",
		},
	)

	// Wardrobe Cache Metrics
	WardrobeCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wardrobe_cache_hits_total",
			Help: "Total number of wardrobe cache hits",
		},
	)

	WardrobeCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wardrobe_cache_misses_total",
			Help: "Total number of wardrobe cache misses",
		},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// History Metrics
	HistoryGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "history_value_log_gc_runs_total",
			Help: "Total number of BadgerDB value log GC passes",
		},
		[]string{"result"}, // "rewritten", "nothing", "error"
	)

	HistoryTxnConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "history_txn_conflicts_total",
			Help: "Total number of BadgerDB transaction conflicts that were retried",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCacheLookup counts a wardrobe cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		WardrobeCacheHits.Inc()
	} else {
		WardrobeCacheMisses.Inc()
	}
}

// RecordAnalyticsDrop counts a dropped analytics event.
func RecordAnalyticsDrop(reason string) {
	AnalyticsEventsDropped.WithLabelValues(reason).Inc()
}

// RecordBreakerTransition updates the state gauge and transition counter.
// The gauge reads 0 closed, 1 half-open, 2 open.
func RecordBreakerTransition(name string, from, to gobreaker.State) {
	var state float64
	switch to {
	case gobreaker.StateHalfOpen:
		state = 1
	case gobreaker.StateOpen:
		state = 2
	}
	CircuitBreakerState.WithLabelValues(name).Set(state)
	CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
}

// RecordBreakerResult counts a call made through a circuit breaker.
func RecordBreakerResult(name string, err error) {
	result := "success"
	switch {
	case err == nil:
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		result = "rejected"
	default:
		result = "failure"
	}
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}
