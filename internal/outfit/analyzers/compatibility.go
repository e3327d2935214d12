// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package analyzers

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tomtom215/stylist/internal/outfit"
	"github.com/tomtom215/stylist/internal/wardrobe"
)

// maxAnchors bounds the pool sample each item is compared against.
const maxAnchors = 12

// Compatibility is the default metadata compatibility collaborator. It
// compares each item pairwise against the base item, or against a sample
// of the pool when there is none, on layer order, pattern, fit and
// formality.
type Compatibility struct {
	BaseAnalyzer
	logger zerolog.Logger
}

// NewCompatibility creates the compatibility analyzer.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCompatibility(logger zerolog.Logger) *Compatibility {
	return &Compatibility{
		BaseAnalyzer: NewBaseAnalyzer("compatibility", outfit.DimensionCompatibility),
		logger:       logger.With().Str("component", "compatibility").Logger(),
	}
}

// Analyze implements outfit.Analyzer.
func (c *Compatibility) Analyze(ctx context.Context, gc *outfit.GenerationContext, scores outfit.ScoreMap) error {
	anchors := c.anchors(gc, scores)
	if len(anchors) == 0 {
		return forEach(ctx, scores, func(rec *outfit.ScoreRecord) {
			rec.Set(outfit.DimensionCompatibility, outfit.NeutralScore)
		})
	}
	baseWeighted := gc.BaseItem != nil

	return forEach(ctx, scores, func(rec *outfit.ScoreRecord) {
		var sum, weight float64
		for i, a := range anchors {
			if a.ID == rec.Item.ID {
				continue
			}
			w := 1.0
			if baseWeighted && i == 0 {
				w = 3
			}
			sum += w * PairScore(rec.Item, a)
			weight += w
		}
		if weight == 0 {
			rec.Set(outfit.DimensionCompatibility, outfit.NeutralScore)
			return
		}
		rec.Set(outfit.DimensionCompatibility, sum/weight)
	})
}

// anchors returns the base item first, then up to two items per category
// in id order until maxAnchors.
func (c *Compatibility) anchors(gc *outfit.GenerationContext, scores outfit.ScoreMap) []*wardrobe.ClothingItem {
	var out []*wardrobe.ClothingItem
	if gc.BaseItem != nil {
		out = append(out, gc.BaseItem)
	}
	perCategory := make(map[wardrobe.Category]int)
	for _, it := range scores.Items() {
		if len(out) >= maxAnchors {
			break
		}
		if gc.IsBase(it.ID) || perCategory[it.Category] >= 2 {
			continue
		}
		perCategory[it.Category]++
		out = append(out, it)
	}
	c.logger.Trace().Int("anchors", len(out)).Msg("compatibility anchors chosen")
	return out
}

// PairScore rates wearing a with b from 0 (forbidden) to 1.
func PairScore(a, b *wardrobe.ClothingItem) float64 {
	if _, bad := outfit.Forbidden(a, b); bad {
		return 0
	}
	return (layerScore(a, b) + patternScore(a, b) + fitScore(a, b) + formalityScore(a, b)) / 4
}

func layerScore(a, b *wardrobe.ClothingItem) float64 {
	if a.Category == b.Category && a.Category.IsEssential() {
		// Two of the same essential compete for one slot.
		return 0.3
	}
	if a.Layer == b.Layer && a.Layer != wardrobe.LayerNone && a.Layer != "" {
		return 0.5
	}
	return 1
}

func patterned(item *wardrobe.ClothingItem) bool {
	p := item.Attr().Pattern
	return p != "" && p != "solid"
}

func patternScore(a, b *wardrobe.ClothingItem) float64 {
	switch {
	case patterned(a) && patterned(b):
		if a.Attr().Pattern == b.Attr().Pattern {
			return 0.6
		}
		return 0.4
	case patterned(a) || patterned(b):
		return 0.9
	default:
		return 1
	}
}

var loose = map[string]bool{"oversized": true, "relaxed": true, "loose": true, "boxy": true, "baggy": true}

func fitScore(a, b *wardrobe.ClothingItem) float64 {
	if loose[a.Attr().Fit] && loose[b.Attr().Fit] {
		return 0.5
	}
	return 1
}

func formalityScore(a, b *wardrobe.ClothingItem) float64 {
	gap := outfit.Formality(a) - outfit.Formality(b)
	if gap < 0 {
		gap = -gap
	}
	switch {
	case gap >= 3:
		return 0.3
	case gap == 2:
		return 0.6
	default:
		return 1
	}
}

var _ outfit.Analyzer = (*Compatibility)(nil)
