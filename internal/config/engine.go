// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package config

import (
	"fmt"

	"github.com/tomtom215/stylist/internal/filter"
	"github.com/tomtom215/stylist/internal/outfit"
)

// ToOutfitConfig overlays the configured values on outfit.DefaultConfig
// and validates the result.
//
//nolint:gocritic // hugeParam: value receiver keeps the config immutable
func (e EngineConfig) ToOutfitConfig() (*outfit.Config, error) {
	cfg := outfit.DefaultConfig()

	cfg.Seed = e.Seed
	cfg.Strategy.RotationShare = e.RotationShare
	cfg.Limits.AnalyzerTimeout = e.AnalyzerTimeout
	cfg.Limits.MaxWardrobe = e.MaxWardrobe
	cfg.Weights = outfit.DimensionWeights{
		BodyType:      e.Weights.BodyType,
		StyleProfile:  e.Weights.StyleProfile,
		Weather:       e.Weights.Weather,
		UserFeedback:  e.Weights.UserFeedback,
		Compatibility: e.Weights.Compatibility,
		Diversity:     e.Weights.Diversity,
	}
	cfg.Favorites.Threshold = e.FavoritesThreshold
	cfg.Diversity.RecentOutfits = e.RecentOutfits
	cfg.Diversity.SimilarityThreshold = e.SimilarityThreshold
	cfg.Diversity.SessionOverlapThreshold = e.SessionOverlapThreshold
	cfg.Session.PenaltyScale = e.SessionPenaltyScale
	cfg.Layering.MinItems = e.MinItems
	cfg.Layering.MaxItems = e.MaxItems
	cfg.Layering.MaxAccessories = e.MaxAccessories
	cfg.Layering.ExplorationRate = e.ExplorationRate

	if len(e.Keywords) > 0 {
		rules := make(filter.KeywordRules, len(e.Keywords))
		for name, kw := range e.Keywords {
			fam := filter.Family(name)
			if !knownFamily(fam) {
				return nil, fmt.Errorf("keywords: unknown family %q", name)
			}
			rules[fam] = filter.KeywordRule{Block: kw.Block, Allow: kw.Allow}
		}
		cfg.KeywordRules = filter.DefaultKeywordRules().Merge(rules)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func knownFamily(f filter.Family) bool {
	for _, known := range filter.Families {
		if f == known {
			return true
		}
	}
	return false
}

// OutfitConfig is Engine.ToOutfitConfig with the session TTL taken from
// the history section.
func (c *Config) OutfitConfig() (*outfit.Config, error) {
	cfg, err := c.Engine.ToOutfitConfig()
	if err != nil {
		return nil, err
	}
	cfg.Session.SeenTTL = c.History.SessionTTL
	return cfg, nil
}
