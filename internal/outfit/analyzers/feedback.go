// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package analyzers

import (
	"context"
	"time"

	"github.com/tomtom215/stylist/internal/outfit"
	"github.com/tomtom215/stylist/internal/wardrobe"
)

const (
	// favoriteRestBonus rewards favorites not worn in favoriteRest.
	favoriteRestBonus = 0.25
	favoriteRest      = 7 * 24 * time.Hour

	// overuseWears is the wear count above which an item is penalized.
	overuseWears = 15
)

// Feedback scores items from the user's past ratings, favorites and wear
// history.
type Feedback struct {
	BaseAnalyzer
}

// NewFeedback creates the feedback analyzer.
func NewFeedback() *Feedback {
	return &Feedback{BaseAnalyzer: NewBaseAnalyzer("user_feedback", outfit.DimensionUserFeedback)}
}

// Analyze implements outfit.Analyzer.
func (f *Feedback) Analyze(ctx context.Context, gc *outfit.GenerationContext, scores outfit.ScoreMap) error {
	now := gc.Now
	if now.IsZero() {
		now = time.Now()
	}
	return forEach(ctx, scores, func(rec *outfit.ScoreRecord) {
		item := rec.Item
		v := RatingScore(gc.Ratings[item.ID]) + FavoriteBonus(item, now) + WearCurve(item.WearCount)
		rec.Set(outfit.DimensionUserFeedback, v)
	})
}

// RatingScore maps an item's ratings to 0-1. Unrated items score neutral.
func RatingScore(ratings []outfit.ItemRating) float64 {
	if len(ratings) == 0 {
		return outfit.NeutralScore
	}
	var sum float64
	for _, r := range ratings {
		v := outfit.NeutralScore
		if r.Rating > 0 {
			v = (r.Rating - 1) / 4
		} else if r.Liked {
			v = 0.75
		}
		if r.Favorited && v < 0.9 {
			v = 0.9
		}
		sum += clamp01(v)
	}
	return sum / float64(len(ratings))
}

// FavoriteBonus boosts favorites, strongly when they have rested a week.
func FavoriteBonus(item *wardrobe.ClothingItem, now time.Time) float64 {
	if !item.IsFavorite && item.FavoriteScore < 0.8 {
		return 0
	}
	if item.LastWornAt.IsZero() || now.Sub(item.LastWornAt) >= favoriteRest {
		return favoriteRestBonus
	}
	return 0.05
}

// WearCurve rewards light and moderate wear and penalizes overuse.
func WearCurve(wears int) float64 {
	switch {
	case wears <= 0:
		return 0
	case wears <= 3:
		return 0.05 * float64(wears)
	case wears <= overuseWears:
		return 0.15 - 0.005*float64(wears-3)
	default:
		p := 0.02 * float64(wears-overuseWears)
		if p > 0.3 {
			p = 0.3
		}
		return -p
	}
}

var _ outfit.Analyzer = (*Feedback)(nil)
