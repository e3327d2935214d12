// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

/*
Package metrics provides Prometheus metrics for the outfit service.

All collectors are registered on the default registry through promauto and
are exposed by the API router at /metrics:

	curl http://localhost:8420/metrics

# Available Metrics

Engine Metrics:
  - outfit_generation_duration_seconds: Generation latency (histogram)
    Labels: outcome (composed, emergency)
  - outfit_generations_total: Outfits by strategy (counter)
    Labels: strategy, outcome
  - outfit_fallback_tiers_total: Candidate fallback tiers entered (counter)
    Labels: tier
  - outfit_analyzer_failures_total: Failed or timed out analyzers (counter)
    Labels: analyzer
  - outfit_generation_warnings: Warnings per outfit (histogram)
  - outfit_budget_exceeded_total: Requests answered with the emergency
    outfit after the wall-clock budget expired (counter)

Analytics Metrics:
  - analytics_events_published_total (counter)
  - analytics_events_dropped_total (counter)
    Labels: reason (buffer_full, rate_limited, publish_error, closed)
  - analytics_queue_depth (gauge)

Storage Metrics:
  - wardrobe_cache_hits_total, wardrobe_cache_misses_total (counters)
  - duckdb_query_duration_seconds (histogram), duckdb_query_errors_total
    Labels: operation, table
  - history_value_log_gc_runs_total (counter)
    Labels: result (rewritten, nothing, error)
  - history_txn_conflicts_total (counter)

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
  - circuit_breaker_requests_total (counter)
    Labels: name, result (success, failure, rejected)
  - circuit_breaker_state_transitions_total (counter)

HTTP Metrics:
  - api_requests_total, api_request_duration_seconds, api_active_requests

# Engine Observer

EngineObserver implements outfit.Observer and is attached with
Engine.SetObserver, keeping the engine package free of Prometheus imports.

# Thread Safety

All collectors are safe for concurrent use.
*/
package metrics
