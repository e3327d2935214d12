// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/stylist/internal/outfit"
)

// histogramCount reads the sample count of a histogram child.
func histogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()

	m, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T is not a metric", o)
	}
	var out dto.Metric
	if err := m.Write(&out); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return out.GetHistogram().GetSampleCount()
}

// TestRecordDBQuery tests database query metric recording
func TestRecordDBQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		operation string
		table     string
		err       error
		wantErrs  float64
	}{
		{"successful select", "select_wardrobe", "wardrobe_items_test", nil, 0},
		{"failed upsert", "upsert_item", "wardrobe_items_test_fail", errors.New("constraint"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			before := histogramCount(t, DBQueryDuration.WithLabelValues(tt.operation, tt.table))
			RecordDBQuery(tt.operation, tt.table, 5*time.Millisecond, tt.err)

			if got := histogramCount(t, DBQueryDuration.WithLabelValues(tt.operation, tt.table)); got != before+1 {
				t.Errorf("duration samples = %d, want %d", got, before+1)
			}
			if got := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table)); got != tt.wantErrs {
				t.Errorf("errors = %v, want %v", got, tt.wantErrs)
			}
		})
	}
}

func TestRecordAPIRequest(t *testing.T) {
	t.Parallel()

	counter := APIRequestsTotal.WithLabelValues("POST", "/test/generate", "200")
	before := testutil.ToFloat64(counter)

	RecordAPIRequest("POST", "/test/generate", "200", 20*time.Millisecond)
	RecordAPIRequest("POST", "/test/generate", "200", 30*time.Millisecond)

	if got := testutil.ToFloat64(counter); got != before+2 {
		t.Errorf("api_requests_total = %v, want %v", got, before+2)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	t.Parallel()

	hits := testutil.ToFloat64(WardrobeCacheHits)
	misses := testutil.ToFloat64(WardrobeCacheMisses)

	RecordCacheLookup(true)
	RecordCacheLookup(false)
	RecordCacheLookup(false)

	// Other tests may record lookups concurrently, so only lower bounds hold.
	if got := testutil.ToFloat64(WardrobeCacheHits); got < hits+1 {
		t.Errorf("hits = %v, want at least %v", got, hits+1)
	}
	if got := testutil.ToFloat64(WardrobeCacheMisses); got < misses+2 {
		t.Errorf("misses = %v, want at least %v", got, misses+2)
	}
}

func TestRecordBreakerTransition(t *testing.T) {
	t.Parallel()

	RecordBreakerTransition("test-breaker", gobreaker.StateClosed, gobreaker.StateOpen)

	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("test-breaker")); got != 2 {
		t.Errorf("state = %v, want 2", got)
	}
	if got := testutil.ToFloat64(CircuitBreakerTransitions.WithLabelValues("test-breaker", "closed", "open")); got != 1 {
		t.Errorf("transitions = %v, want 1", got)
	}

	RecordBreakerTransition("test-breaker", gobreaker.StateOpen, gobreaker.StateHalfOpen)
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("test-breaker")); got != 1 {
		t.Errorf("state = %v, want 1", got)
	}
}

func TestRecordBreakerResult(t *testing.T) {
	t.Parallel()

	RecordBreakerResult("test-results", nil)
	RecordBreakerResult("test-results", gobreaker.ErrOpenState)
	RecordBreakerResult("test-results", errors.New("boom"))

	for _, result := range []string{"success", "rejected", "failure"} {
		if got := testutil.ToFloat64(CircuitBreakerRequests.WithLabelValues("test-results", result)); got != 1 {
			t.Errorf("%s = %v, want 1", result, got)
		}
	}
}

func TestEngineObserver(t *testing.T) {
	t.Parallel()

	var obs outfit.Observer = EngineObserver{}

	generated := GenerationsTotal.WithLabelValues("era_blend", "composed")
	emergency := GenerationsTotal.WithLabelValues("none", "emergency")
	tier := FallbackTiersTotal.WithLabelValues("test_tier")
	failures := AnalyzerFailuresTotal.WithLabelValues("test-analyzer")

	beforeGen := testutil.ToFloat64(generated)
	beforeEmergency := testutil.ToFloat64(emergency)

	obs.ObserveGeneration(outfit.StrategyEraBlend, false, 10*time.Millisecond)
	obs.ObserveGeneration("", true, time.Millisecond)
	obs.ObserveFallbackTier("test_tier")
	obs.ObserveAnalyzerFailure("test-analyzer")
	obs.ObserveWarnings(2)

	if got := testutil.ToFloat64(generated); got != beforeGen+1 {
		t.Errorf("composed generations = %v, want %v", got, beforeGen+1)
	}
	if got := testutil.ToFloat64(emergency); got != beforeEmergency+1 {
		t.Errorf("emergency generations = %v, want %v", got, beforeEmergency+1)
	}
	if got := testutil.ToFloat64(tier); got != 1 {
		t.Errorf("fallback tier count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(failures); got != 1 {
		t.Errorf("analyzer failures = %v, want 1", got)
	}
}
