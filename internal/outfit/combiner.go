// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package outfit

import (
	"math"

	"github.com/tomtom215/stylist/internal/wardrobe"
)

// Combiner merges subscores into composite scores.
type Combiner struct {
	config *Config
}

// NewCombiner creates a combiner.
func NewCombiner(cfg *Config) *Combiner {
	return &Combiner{config: cfg}
}

// Extremity returns how far the temperature lies outside the comfortable
// band, from 0 (inside) to 1 (SpanF or more outside).
func (c *Combiner) Extremity(tempF float64) float64 {
	t := c.config.Temperature
	var dist float64
	switch {
	case tempF > t.HotF:
		dist = tempF - t.HotF
	case tempF < t.ColdF:
		dist = t.ColdF - tempF
	default:
		return 0
	}
	return math.Min(1, dist/t.SpanF)
}

// Weights returns the normalized dimension weights for this request.
func (c *Combiner) Weights(gc *GenerationContext) DimensionWeights {
	w := c.config.Weights

	if ext := c.Extremity(gc.Temperature()); ext > 0 && !gc.IsAthletic() {
		w.Weather *= 1 + ext*(c.config.Temperature.WeatherBoost-1)
		w.Compatibility *= 1 + ext*(c.config.Temperature.CompatibilityBoost-1)
	}

	if gc.FavoritesMode {
		f := c.config.Favorites
		w.UserFeedback *= f.FeedbackMultiplier
		w.Diversity = math.Max(w.Diversity*f.DiversityMultiplier, f.DiversityFloor)
	}

	return w.Normalize()
}

// FavoritesMode reports whether at least threshold of items are favorites.
func FavoritesMode(items []wardrobe.ClothingItem, threshold float64) bool {
	if len(items) == 0 {
		return false
	}
	favorites := 0
	for i := range items {
		if items[i].IsFavorite || items[i].FavoriteScore >= 0.8 {
			favorites++
		}
	}
	return float64(favorites)/float64(len(items)) >= threshold
}

// Combine computes every record's composite score:
//
//	composite = Σ w_d·s_d + soft + session + conflict
//
// A negative diversity subscore contributes nothing to the weighted sum and
// is charged through the session penalty instead. Off-palette items are
// scaled toward zero when a palette is active.
func (c *Combiner) Combine(gc *GenerationContext, scores ScoreMap, weights DimensionWeights) {
	for _, rec := range scores {
		var base float64
		for _, d := range Dimensions {
			s := rec.Scores[d]
			if d == DimensionDiversity && s < 0 {
				s = 0
			}
			base += weights.Get(d) * s
		}
		rec.BaseScore = base
		rec.SessionPenalty = 0
		if div := rec.Scores[DimensionDiversity]; div < 0 {
			rec.SessionPenalty = div * c.config.Session.PenaltyScale
		}
		rec.SoftAdjustment = SoftAdjustment(gc, rec.Item)
		rec.ConflictPenalty = ConflictPenalty(rec.Item)
		rec.StrategyAdjustment = 0

		rec.Composite = rec.BaseScore + rec.SoftAdjustment + rec.SessionPenalty + rec.ConflictPenalty
		if gc.Palette != "" && !wardrobe.InPalette(rec.Item, gc.Palette) && rec.Composite > 0 {
			rec.Composite *= c.config.Palette.OffPaletteMultiplier
		}
	}
}

// Summary returns the mean of each subscore across the map.
func Summary(scores ScoreMap) map[string]float64 {
	out := make(map[string]float64, numDimensions)
	if len(scores) == 0 {
		return out
	}
	var sums [numDimensions]float64
	for _, rec := range scores {
		for _, d := range Dimensions {
			sums[d] += rec.Scores[d]
		}
	}
	n := float64(len(scores))
	for _, d := range Dimensions {
		out[d.String()] = math.Round(sums[d]/n*1000) / 1000
	}
	return out
}
