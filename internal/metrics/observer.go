// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package metrics

import (
	"time"

	"github.com/tomtom215/stylist/internal/outfit"
)

var _ outfit.Observer = EngineObserver{}

// EngineObserver feeds engine events into the Prometheus vectors.
type EngineObserver struct{}

// ObserveGeneration records one finished generation.
func (EngineObserver) ObserveGeneration(strategy outfit.Strategy, emergency bool, d time.Duration) {
	outcome := "composed"
	if emergency {
		outcome = "emergency"
	}
	label := string(strategy)
	if label == "" {
		label = "none"
	}
	GenerationDuration.WithLabelValues(outcome).Observe(d.Seconds())
	GenerationsTotal.WithLabelValues(label, outcome).Inc()
}

// ObserveFallbackTier records entry into a fallback tier.
func (EngineObserver) ObserveFallbackTier(tier string) {
	FallbackTiersTotal.WithLabelValues(tier).Inc()
}

// ObserveAnalyzerFailure records a failed or timed out analyzer.
func (EngineObserver) ObserveAnalyzerFailure(analyzer string) {
	AnalyzerFailuresTotal.WithLabelValues(analyzer).Inc()
}

// ObserveWarnings records the warning count of one outfit.
func (EngineObserver) ObserveWarnings(n int) {
	GenerationWarnings.Observe(float64(n))
}
