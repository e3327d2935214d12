// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package outfit

import (
	"math/rand"

	"github.com/tomtom215/stylist/internal/filter"
	"github.com/tomtom215/stylist/internal/wardrobe"
)

// StrategyInput is what the selector looks at.
type StrategyInput struct {
	Occasion         string
	Style            string
	Mood             string
	PriorOutfitCount int
	HasBaseItem      bool
	TemperatureF     float64
}

// Selection reports how a strategy was chosen.
type Selection struct {
	Strategy Strategy             `json:"strategy"`
	Allowed  []Strategy           `json:"allowed"`
	Weights  map[Strategy]float64 `json:"weights"`
	Rotated  bool                 `json:"rotated"`
	Fallback bool                 `json:"fallback,omitempty"`
}

// baseStrategyWeights is the prior preference for each strategy.
var baseStrategyWeights = map[Strategy]float64{
	StrategyTraditional:      1.0,
	StrategyHighLow:          0.6,
	StrategyLayeringContrast: 0.6,
	StrategyStatementPiece:   0.5,
	StrategyGraduated:        0.5,
	StrategyMonochrome:       0.5,
	StrategyColorPop:         0.5,
	StrategyTexturePlay:      0.4,
	StrategyProportions:      0.5,
	StrategyEraBlend:         0.3,
}

// styleAffinity and moodAffinity adjust base weights by 30 to 50 percent.
var styleAffinity = map[string]map[Strategy]float64{
	"classic":    {StrategyTraditional: 1.5, StrategyGraduated: 1.3, StrategyEraBlend: 0.7},
	"preppy":     {StrategyTraditional: 1.3, StrategyColorPop: 1.3},
	"edgy":       {StrategyHighLow: 1.5, StrategyStatementPiece: 1.4, StrategyTraditional: 0.7},
	"streetwear": {StrategyHighLow: 1.5, StrategyLayeringContrast: 1.3, StrategyProportions: 1.3},
	"bohemian":   {StrategyTexturePlay: 1.5, StrategyEraBlend: 1.4, StrategyLayeringContrast: 1.3},
	"minimalist": {StrategyMonochrome: 1.5, StrategyProportions: 1.3, StrategyColorPop: 0.7},
	"romantic":   {StrategyTexturePlay: 1.3, StrategyGraduated: 1.3},
	"vintage":    {StrategyEraBlend: 1.5, StrategyTexturePlay: 1.3},
	"elegant":    {StrategyTraditional: 1.3, StrategyMonochrome: 1.3, StrategyHighLow: 0.7},
	"casual":     {StrategyHighLow: 1.3, StrategyColorPop: 1.3},
}

var moodAffinity = map[string]map[Strategy]float64{
	"bold":         {StrategyStatementPiece: 1.5, StrategyColorPop: 1.4, StrategyMonochrome: 0.7},
	"confident":    {StrategyStatementPiece: 1.4, StrategyHighLow: 1.3},
	"relaxed":      {StrategyTraditional: 1.3, StrategyMonochrome: 1.3, StrategyStatementPiece: 0.7},
	"calm":         {StrategyMonochrome: 1.4, StrategyGraduated: 1.3, StrategyColorPop: 0.7},
	"playful":      {StrategyColorPop: 1.5, StrategyHighLow: 1.3, StrategyMonochrome: 0.7},
	"romantic":     {StrategyTexturePlay: 1.3, StrategyGraduated: 1.3},
	"professional": {StrategyTraditional: 1.5, StrategyGraduated: 1.3, StrategyHighLow: 0.7},
	"creative":     {StrategyEraBlend: 1.4, StrategyTexturePlay: 1.3, StrategyProportions: 1.3},
}

// StrategySelector chooses one strategy per request.
type StrategySelector struct {
	config *Config
}

// NewStrategySelector creates a selector.
func NewStrategySelector(cfg *Config) *StrategySelector {
	return &StrategySelector{config: cfg}
}

// Allowed returns the strategies legal for the input, in rotation order.
func (s *StrategySelector) Allowed(in StrategyInput) []Strategy {
	style := wardrobe.NormalizeTag(in.Style)
	fam := filter.FamilyOf(in.Occasion, in.Style)

	if fam == filter.FamilyAthletic {
		return []Strategy{StrategyTraditional}
	}
	if style == "monochrome" {
		return []Strategy{StrategyMonochrome}
	}

	removed := make(map[Strategy]bool)
	if style == "minimalist" {
		removed[StrategyStatementPiece] = true
		removed[StrategyTexturePlay] = true
		removed[StrategyEraBlend] = true
	}
	switch fam {
	case filter.FamilyBusiness:
		removed[StrategyHighLow] = true
		removed[StrategyEraBlend] = true
		removed[StrategyTexturePlay] = true
	case filter.FamilyLoungewear:
		removed[StrategyStatementPiece] = true
		removed[StrategyHighLow] = true
		removed[StrategyGraduated] = true
		removed[StrategyEraBlend] = true
	}
	if in.TemperatureF >= s.config.Strategy.HotF {
		removed[StrategyLayeringContrast] = true
	}

	allowed := make([]Strategy, 0, len(AllStrategies))
	for _, st := range AllStrategies {
		if !removed[st] {
			allowed = append(allowed, st)
		}
	}
	return allowed
}

// Weights returns the affinity-adjusted weight for each allowed strategy.
func (s *StrategySelector) Weights(in StrategyInput, allowed []Strategy) map[Strategy]float64 {
	style := wardrobe.NormalizeTag(in.Style)
	mood := wardrobe.NormalizeTag(in.Mood)

	weights := make(map[Strategy]float64, len(allowed))
	for _, st := range allowed {
		w := baseStrategyWeights[st]
		if m, ok := styleAffinity[style][st]; ok {
			w *= m
		}
		if m, ok := moodAffinity[mood][st]; ok {
			w *= m
		}
		// The base item is already the statement.
		if in.HasBaseItem && st == StrategyStatementPiece {
			w *= 0.7
		}
		weights[st] = w
	}
	return weights
}

// Rotate returns the deterministic rotation choice.
func Rotate(allowed []Strategy, priorOutfitCount int) Strategy {
	if len(allowed) == 0 {
		return StrategyTraditional
	}
	idx := priorOutfitCount % len(allowed)
	if idx < 0 {
		idx += len(allowed)
	}
	return allowed[idx]
}

// Select picks a strategy: rotation with probability RotationShare,
// otherwise a weighted draw. rng must not be shared without locking.
func (s *StrategySelector) Select(in StrategyInput, rng *rand.Rand) Selection {
	allowed := s.Allowed(in)
	if len(allowed) == 0 {
		return Selection{Strategy: StrategyTraditional, Fallback: true}
	}
	weights := s.Weights(in, allowed)
	sel := Selection{Allowed: allowed, Weights: weights}

	if rng.Float64() < s.config.Strategy.RotationShare {
		sel.Strategy = Rotate(allowed, in.PriorOutfitCount)
		sel.Rotated = true
		return sel
	}

	var total float64
	for _, st := range allowed {
		total += weights[st]
	}
	if total <= 0 {
		sel.Strategy = Rotate(allowed, in.PriorOutfitCount)
		sel.Rotated = true
		return sel
	}
	r := rng.Float64() * total
	for _, st := range allowed {
		r -= weights[st]
		if r < 0 {
			sel.Strategy = st
			return sel
		}
	}
	sel.Strategy = allowed[len(allowed)-1]
	return sel
}
