// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package outfit

import (
	"math"

	"github.com/tomtom215/stylist/internal/filter"
	"github.com/tomtom215/stylist/internal/wardrobe"
)

func testItem(id string, typ wardrobe.ItemType, color string) wardrobe.ClothingItem {
	return wardrobe.Normalizer{}.Normalize(wardrobe.ClothingItem{ID: id, Type: typ, Name: id, Color: color})
}

func testContext(occasion, style string, tempF float64, items []wardrobe.ClothingItem) *GenerationContext {
	return &GenerationContext{
		UserID:         "user-1",
		Occasion:       occasion,
		Style:          style,
		Weather:        wardrobe.Weather{TemperatureF: tempF},
		Wardrobe:       items,
		Original:       items,
		FilterOccasion: occasion,
		FilterStyle:    style,
		Family:         filter.FamilyOf(occasion, style),
	}
}

// scoreAll builds a score map whose composites come from composite, keyed
// by item id. Missing ids get 0.5.
func scoreAll(items []wardrobe.ClothingItem, composite map[string]float64) ScoreMap {
	scores := NewScoreMap(items)
	for id, rec := range scores {
		v, ok := composite[id]
		if !ok {
			v = NeutralScore
		}
		rec.BaseScore = v
		rec.Composite = v
	}
	return scores
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
