// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package outfit

import (
	"fmt"
	"time"

	"github.com/tomtom215/stylist/internal/filter"
	"github.com/tomtom215/stylist/internal/wardrobe"
)

// Config contains all configuration for the outfit engine.
type Config struct {
	// Weights defines the base contribution of each scoring dimension.
	// Weights are normalized at runtime, so they don't need to sum to 1.0.
	Weights DimensionWeights `json:"weights"`

	// Favorites controls the weight shift applied when a large share of
	// the wardrobe is favorited.
	Favorites FavoritesConfig `json:"favorites"`

	// Temperature controls the weight shift applied in hot or cold weather.
	Temperature TemperatureConfig `json:"temperature"`

	// Palette controls monochrome palette consensus.
	Palette PaletteConfig `json:"palette"`

	// Session controls the intra-session repetition penalty.
	Session SessionConfig `json:"session"`

	// Diversity controls the post-selection diversity check.
	Diversity DiversityConfig `json:"diversity"`

	// Layering controls outfit size and the layering selector.
	Layering LayeringConfig `json:"layering"`

	// Strategy controls strategy selection.
	Strategy StrategyConfig `json:"strategy"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// KeywordRules overrides the hard filter keyword table per family.
	// Families not listed keep their built-in lists.
	KeywordRules filter.KeywordRules `json:"keyword_rules,omitempty"`

	// EmergencyPieces is the fallback outfit returned when nothing else
	// can be assembled.
	EmergencyPieces []wardrobe.ClothingItem `json:"emergency_pieces"`

	// Seed is the random seed for strategy draws and exploration mixing.
	// If zero, a fixed default seed is used.
	Seed int64 `json:"seed"`
}

// DimensionWeights defines the relative contribution of each dimension.
type DimensionWeights struct {
	BodyType      float64 `json:"body_type"`
	StyleProfile  float64 `json:"style_profile"`
	Weather       float64 `json:"weather"`
	UserFeedback  float64 `json:"user_feedback"`
	Compatibility float64 `json:"compatibility"`
	Diversity     float64 `json:"diversity"`
}

// Normalize returns a copy with weights normalized to sum to 1.0.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w DimensionWeights) Normalize() DimensionWeights {
	sum := w.BodyType + w.StyleProfile + w.Weather + w.UserFeedback + w.Compatibility + w.Diversity
	if sum <= 0 {
		const equalWeight = 1.0 / float64(numDimensions)
		return DimensionWeights{
			BodyType: equalWeight, StyleProfile: equalWeight, Weather: equalWeight,
			UserFeedback: equalWeight, Compatibility: equalWeight, Diversity: equalWeight,
		}
	}
	return DimensionWeights{
		BodyType:      w.BodyType / sum,
		StyleProfile:  w.StyleProfile / sum,
		Weather:       w.Weather / sum,
		UserFeedback:  w.UserFeedback / sum,
		Compatibility: w.Compatibility / sum,
		Diversity:     w.Diversity / sum,
	}
}

// Get returns the weight for d.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w DimensionWeights) Get(d Dimension) float64 {
	switch d {
	case DimensionBodyType:
		return w.BodyType
	case DimensionStyleProfile:
		return w.StyleProfile
	case DimensionWeather:
		return w.Weather
	case DimensionUserFeedback:
		return w.UserFeedback
	case DimensionCompatibility:
		return w.Compatibility
	case DimensionDiversity:
		return w.Diversity
	default:
		return 0
	}
}

// Sum returns the total of all weights.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w DimensionWeights) Sum() float64 {
	return w.BodyType + w.StyleProfile + w.Weather + w.UserFeedback + w.Compatibility + w.Diversity
}

// ToMap converts weights to a map keyed by dimension name.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w DimensionWeights) ToMap() map[string]float64 {
	return map[string]float64{
		DimensionBodyType.String():      w.BodyType,
		DimensionStyleProfile.String():  w.StyleProfile,
		DimensionWeather.String():       w.Weather,
		DimensionUserFeedback.String():  w.UserFeedback,
		DimensionCompatibility.String(): w.Compatibility,
		DimensionDiversity.String():     w.Diversity,
	}
}

// FavoritesConfig contains the favorites-mode weight shift.
type FavoritesConfig struct {
	// Threshold is the favorited share of the wardrobe that enables
	// favorites mode.
	Threshold float64 `json:"threshold"`

	// FeedbackMultiplier scales the user-feedback weight in favorites mode.
	FeedbackMultiplier float64 `json:"feedback_multiplier"`

	// DiversityMultiplier scales the diversity weight in favorites mode.
	DiversityMultiplier float64 `json:"diversity_multiplier"`

	// DiversityFloor is the smallest diversity weight favorites mode may
	// leave before normalization.
	DiversityFloor float64 `json:"diversity_floor"`
}

// TemperatureConfig contains the temperature-extremity weight shift.
type TemperatureConfig struct {
	// HotF and ColdF bound the comfortable band. Outside it, weather and
	// compatibility weights rise with distance.
	HotF  float64 `json:"hot_f"`
	ColdF float64 `json:"cold_f"`

	// SpanF is the distance beyond the band at which the shift is full.
	SpanF float64 `json:"span_f"`

	// WeatherBoost and CompatibilityBoost are the multipliers at full
	// extremity.
	WeatherBoost       float64 `json:"weather_boost"`
	CompatibilityBoost float64 `json:"compatibility_boost"`
}

// PaletteConfig contains monochrome palette parameters.
type PaletteConfig struct {
	// CoverageWeight is the value of filling one more essential slot
	// relative to one more item of the family.
	CoverageWeight float64 `json:"coverage_weight"`

	// OffPaletteMultiplier scales composite scores of off-palette items.
	OffPaletteMultiplier float64 `json:"off_palette_multiplier"`

	// OffPaletteScore is the style subscore given to off-palette items.
	OffPaletteScore float64 `json:"off_palette_score"`
}

// SessionConfig contains the intra-session repetition penalty.
type SessionConfig struct {
	// PenaltyScale converts a negative diversity subscore into the
	// composite session penalty.
	PenaltyScale float64 `json:"penalty_scale"`

	// SeenTTL is how long a session remembers shown items.
	SeenTTL time.Duration `json:"seen_ttl"`
}

// DiversityConfig contains the post-selection diversity check.
type DiversityConfig struct {
	// RecentOutfits is how many past outfits are compared.
	RecentOutfits int `json:"recent_outfits"`

	// SimilarityThreshold is the Jaccard similarity at or above which an
	// outfit is too close to a recent one.
	SimilarityThreshold float64 `json:"similarity_threshold"`

	// SessionOverlapThreshold is the share of already-shown items at or
	// above which an outfit repeats the session.
	SessionOverlapThreshold float64 `json:"session_overlap_threshold"`

	// MaxSwaps caps substitutions per outfit.
	MaxSwaps int `json:"max_swaps"`
}

// LayeringConfig contains outfit size and selection parameters.
type LayeringConfig struct {
	MinItems       int `json:"min_items"`
	MaxItems       int `json:"max_items"`
	MaxAccessories int `json:"max_accessories"`
	MaxExtraLayers int `json:"max_extra_layers"`

	// ReserveFloor is the minimum composite for reserving an essential.
	// SafetyNetFloor is the relaxed floor used when reservation fails.
	ReserveFloor   float64 `json:"reserve_floor"`
	SafetyNetFloor float64 `json:"safety_net_floor"`

	// ExplorationRate is the chance that a candidate trades places with a
	// lower-ranked one during the fill walk.
	ExplorationRate float64 `json:"exploration_rate"`

	// ExplorationWindow is how far down the ranking a swap may reach.
	ExplorationWindow int `json:"exploration_window"`
}

// StrategyConfig contains strategy selection parameters.
type StrategyConfig struct {
	// RotationShare is the probability of the deterministic rotation
	// branch; the rest is a weighted random draw.
	RotationShare float64 `json:"rotation_share"`

	// HotF removes layering strategies at or above this temperature.
	HotF float64 `json:"hot_f"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// AnalyzerTimeout bounds each analyzer run.
	AnalyzerTimeout time.Duration `json:"analyzer_timeout"`

	// MaxWardrobe caps the candidate set size.
	MaxWardrobe int `json:"max_wardrobe"`

	// TopCandidates is how many leading candidates are listed in metadata.
	TopCandidates int `json:"top_candidates"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights: DimensionWeights{
			BodyType:      0.15,
			StyleProfile:  0.25,
			Weather:       0.20,
			UserFeedback:  0.15,
			Compatibility: 0.15,
			Diversity:     0.10,
		},
		Favorites: FavoritesConfig{
			Threshold:           0.30,
			FeedbackMultiplier:  2.0,
			DiversityMultiplier: 0.5,
			DiversityFloor:      0.03,
		},
		Temperature: TemperatureConfig{
			HotF:               85,
			ColdF:              45,
			SpanF:              20,
			WeatherBoost:       1.6,
			CompatibilityBoost: 1.3,
		},
		Palette: PaletteConfig{
			CoverageWeight:       10,
			OffPaletteMultiplier: 0.05,
			OffPaletteScore:      0.02,
		},
		Session: SessionConfig{
			PenaltyScale: 0.6,
			SeenTTL:      6 * time.Hour,
		},
		Diversity: DiversityConfig{
			RecentOutfits:           10,
			SimilarityThreshold:     0.6,
			SessionOverlapThreshold: 0.5,
			MaxSwaps:                2,
		},
		Layering: LayeringConfig{
			MinItems:          3,
			MaxItems:          6,
			MaxAccessories:    2,
			MaxExtraLayers:    2,
			ReserveFloor:      0.15,
			SafetyNetFloor:    -1,
			ExplorationRate:   0.15,
			ExplorationWindow: 3,
		},
		Strategy: StrategyConfig{
			RotationShare: 0.7,
			HotF:          85,
		},
		Limits: LimitsConfig{
			AnalyzerTimeout: 2 * time.Second,
			MaxWardrobe:     2000,
			TopCandidates:   5,
		},
		EmergencyPieces: DefaultEmergencyPieces(),
		Seed:            42,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	w := c.Weights
	for _, v := range []float64{w.BodyType, w.StyleProfile, w.Weather, w.UserFeedback, w.Compatibility, w.Diversity} {
		if v < 0 {
			return fmt.Errorf("weights must be non-negative, got %f", v)
		}
	}
	if c.Favorites.Threshold <= 0 || c.Favorites.Threshold > 1 {
		return fmt.Errorf("favorites.threshold must be in (0, 1], got %f", c.Favorites.Threshold)
	}
	if c.Favorites.FeedbackMultiplier < 1 {
		return fmt.Errorf("favorites.feedback_multiplier must be at least 1, got %f", c.Favorites.FeedbackMultiplier)
	}
	if c.Favorites.DiversityMultiplier <= 0 || c.Favorites.DiversityMultiplier > 1 {
		return fmt.Errorf("favorites.diversity_multiplier must be in (0, 1], got %f", c.Favorites.DiversityMultiplier)
	}
	if c.Favorites.DiversityFloor <= 0 {
		return fmt.Errorf("favorites.diversity_floor must be positive, got %f", c.Favorites.DiversityFloor)
	}
	if c.Temperature.ColdF >= c.Temperature.HotF {
		return fmt.Errorf("temperature.cold_f must be below hot_f, got %f >= %f", c.Temperature.ColdF, c.Temperature.HotF)
	}
	if c.Temperature.SpanF <= 0 {
		return fmt.Errorf("temperature.span_f must be positive, got %f", c.Temperature.SpanF)
	}
	if c.Temperature.WeatherBoost < 1 || c.Temperature.CompatibilityBoost < 1 {
		return fmt.Errorf("temperature boosts must be at least 1")
	}
	if c.Palette.CoverageWeight < 0 {
		return fmt.Errorf("palette.coverage_weight must be non-negative, got %f", c.Palette.CoverageWeight)
	}
	if c.Palette.OffPaletteMultiplier < 0 || c.Palette.OffPaletteMultiplier > 1 {
		return fmt.Errorf("palette.off_palette_multiplier must be in [0, 1], got %f", c.Palette.OffPaletteMultiplier)
	}
	if c.Session.PenaltyScale < 0 {
		return fmt.Errorf("session.penalty_scale must be non-negative, got %f", c.Session.PenaltyScale)
	}
	if c.Diversity.RecentOutfits < 0 {
		return fmt.Errorf("diversity.recent_outfits must be non-negative, got %d", c.Diversity.RecentOutfits)
	}
	if c.Diversity.SimilarityThreshold <= 0 || c.Diversity.SimilarityThreshold > 1 {
		return fmt.Errorf("diversity.similarity_threshold must be in (0, 1], got %f", c.Diversity.SimilarityThreshold)
	}
	if c.Diversity.MaxSwaps < 0 {
		return fmt.Errorf("diversity.max_swaps must be non-negative, got %d", c.Diversity.MaxSwaps)
	}
	if c.Layering.MinItems < 1 {
		return fmt.Errorf("layering.min_items must be positive, got %d", c.Layering.MinItems)
	}
	if c.Layering.MaxItems < c.Layering.MinItems {
		return fmt.Errorf("layering.max_items must be >= min_items, got %d < %d", c.Layering.MaxItems, c.Layering.MinItems)
	}
	if c.Layering.MaxAccessories < 0 || c.Layering.MaxExtraLayers < 0 {
		return fmt.Errorf("layering accessory and layer limits must be non-negative")
	}
	if c.Layering.ExplorationRate < 0 || c.Layering.ExplorationRate > 1 {
		return fmt.Errorf("layering.exploration_rate must be in [0, 1], got %f", c.Layering.ExplorationRate)
	}
	if c.Strategy.RotationShare < 0 || c.Strategy.RotationShare > 1 {
		return fmt.Errorf("strategy.rotation_share must be in [0, 1], got %f", c.Strategy.RotationShare)
	}
	if c.Limits.AnalyzerTimeout <= 0 {
		return fmt.Errorf("limits.analyzer_timeout must be positive, got %v", c.Limits.AnalyzerTimeout)
	}
	if c.Limits.MaxWardrobe <= 0 {
		return fmt.Errorf("limits.max_wardrobe must be positive, got %d", c.Limits.MaxWardrobe)
	}
	return nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	if c.KeywordRules != nil {
		clone.KeywordRules = c.KeywordRules.Clone()
	}
	if c.EmergencyPieces != nil {
		clone.EmergencyPieces = make([]wardrobe.ClothingItem, len(c.EmergencyPieces))
		copy(clone.EmergencyPieces, c.EmergencyPieces)
	}
	return &clone
}
