// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

// Package analyzers implements the six scoring dimensions of the outfit
// engine.
//
// Each analyzer implements outfit.Analyzer and writes exactly one subscore
// per record. Analyzers run concurrently over the same ScoreMap, so none of
// them reads another dimension's subscore or the composite.
//
// # Analyzers
//
//   - BodyType: archetype and height tables
//   - StyleProfile: style adjacency, skin-tone palette, monochrome palette
//   - Weather: temperature range, warmth, fabric, sleeve, layer, season
//   - Feedback: past ratings, favorites, decaying wear curve
//   - Compatibility: pairwise layer, pattern, fit and formality checks
//   - Diversity: session repeats and recent outfit history
package analyzers

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/tomtom215/stylist/internal/outfit"
)

// BaseAnalyzer provides the name and dimension for all analyzers.
type BaseAnalyzer struct {
	name string
	dim  outfit.Dimension
}

// NewBaseAnalyzer creates a base analyzer.
func NewBaseAnalyzer(name string, dim outfit.Dimension) BaseAnalyzer {
	return BaseAnalyzer{name: name, dim: dim}
}

// Name returns the analyzer identifier.
func (b BaseAnalyzer) Name() string {
	return b.name
}

// Dimension returns the subscore the analyzer owns.
func (b BaseAnalyzer) Dimension() outfit.Dimension {
	return b.dim
}

// ContextCancelled checks if the context has been cancelled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// checkEvery is how many records are scored between context checks.
const checkEvery = 64

// forEach visits records in id order, stopping early when ctx is done.
func forEach(ctx context.Context, scores outfit.ScoreMap, fn func(rec *outfit.ScoreRecord)) error {
	ids := make([]string, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for i, id := range ids {
		if i%checkEvery == 0 && ContextCancelled(ctx) {
			return ctx.Err()
		}
		fn(scores[id])
	}
	return nil
}

// Defaults returns one analyzer per dimension.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Defaults(cfg *outfit.Config, logger zerolog.Logger) []outfit.Analyzer {
	if cfg == nil {
		cfg = outfit.DefaultConfig()
	}
	return []outfit.Analyzer{
		NewBodyType(),
		NewStyleProfile(cfg),
		NewWeather(),
		NewFeedback(),
		NewCompatibility(logger),
		NewDiversity(),
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
