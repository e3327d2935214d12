// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package analyzers

import (
	"context"
	"math"

	"github.com/tomtom215/stylist/internal/outfit"
	"github.com/tomtom215/stylist/internal/wardrobe"
)

// Diversity rewards items missing from recent outfits and penalizes items
// already shown in the current session. A session repeat always scores
// negative regardless of history.
type Diversity struct {
	BaseAnalyzer
}

// NewDiversity creates the diversity analyzer.
func NewDiversity() *Diversity {
	return &Diversity{BaseAnalyzer: NewBaseAnalyzer("diversity", outfit.DimensionDiversity)}
}

// Analyze implements outfit.Analyzer.
func (d *Diversity) Analyze(ctx context.Context, gc *outfit.GenerationContext, scores outfit.ScoreMap) error {
	type usage struct {
		newest int // index of the newest outfit containing the item
		count  int
	}
	used := make(map[string]usage)
	for i, rec := range gc.RecentOutfits {
		for _, id := range rec.ItemIDs {
			u, ok := used[id]
			if !ok {
				u.newest = i
			}
			u.count++
			used[id] = u
		}
	}
	n := len(gc.RecentOutfits)

	return forEach(ctx, scores, func(rec *outfit.ScoreRecord) {
		id := rec.Item.ID
		if seen := gc.SessionSeen[id]; seen > 0 && !gc.IsBase(id) {
			rec.Set(outfit.DimensionDiversity, SessionPenalty(seen))
			return
		}
		if gc.Palette != "" && !wardrobe.InPalette(rec.Item, gc.Palette) {
			rec.Set(outfit.DimensionDiversity, 0)
			return
		}
		u, ok := used[id]
		if !ok {
			rec.Set(outfit.DimensionDiversity, 1)
			return
		}
		recency := 0.2 + 0.8*float64(u.newest)/float64(n)
		frequency := math.Max(0.2, 1-0.1*float64(u.count-1))
		rec.Set(outfit.DimensionDiversity, math.Max(0.2, recency*frequency))
	})
}

// SessionPenalty is the negative diversity value for an item shown seen
// times in the current session.
func SessionPenalty(seen int) float64 {
	return -math.Min(1, 0.5+0.25*float64(seen-1))
}

var _ outfit.Analyzer = (*Diversity)(nil)
