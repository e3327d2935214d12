// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package analyzers

import (
	"context"

	"github.com/tomtom215/stylist/internal/outfit"
	"github.com/tomtom215/stylist/internal/wardrobe"
)

// bodyRule adjusts the score of items in a category (any when empty) whose
// attribute matches one of values.
type bodyRule struct {
	category wardrobe.Category
	attr     string // "fit", "pattern" or "type"
	values   []string
	delta    float64
}

var archetypeAliases = map[string]string{
	"pear":              "pear",
	"triangle":          "pear",
	"spoon":             "pear",
	"apple":             "apple",
	"oval":              "apple",
	"round":             "apple",
	"hourglass":         "hourglass",
	"rectangle":         "rectangle",
	"straight":          "rectangle",
	"banana":            "rectangle",
	"athletic":          "rectangle",
	"inverted-triangle": "inverted_triangle",
	"inverted_triangle": "inverted_triangle",
	"v-shape":           "inverted_triangle",
}

// archetypeRules lists what flatters each body shape.
var archetypeRules = map[string][]bodyRule{
	"pear": {
		{wardrobe.CategoryTops, "fit", []string{"structured", "tailored", "boxy"}, 0.20},
		{wardrobe.CategoryTops, "pattern", []string{"striped", "floral", "graphic", "plaid"}, 0.10},
		{wardrobe.CategoryBottoms, "fit", []string{"a_line", "straight", "wide_leg", "bootcut"}, 0.15},
		{wardrobe.CategoryBottoms, "fit", []string{"skinny"}, -0.10},
		{wardrobe.CategoryBottoms, "pattern", []string{"striped", "floral", "graphic", "plaid"}, -0.10},
		{wardrobe.CategoryOuterwear, "fit", []string{"cropped", "structured"}, 0.10},
		{wardrobe.CategoryDress, "fit", []string{"a_line", "fit_and_flare"}, 0.15},
	},
	"apple": {
		{wardrobe.CategoryTops, "fit", []string{"flowy", "relaxed", "empire"}, 0.15},
		{wardrobe.CategoryTops, "fit", []string{"fitted", "cropped"}, -0.10},
		{wardrobe.CategoryBottoms, "fit", []string{"straight", "bootcut"}, 0.10},
		{wardrobe.CategoryDress, "fit", []string{"wrap", "empire", "a_line"}, 0.15},
		{wardrobe.CategoryOuterwear, "fit", []string{"longline", "open"}, 0.10},
		{wardrobe.CategoryMidLayer, "type", []string{string(wardrobe.TypeCardigan)}, 0.10},
	},
	"hourglass": {
		{"", "fit", []string{"fitted", "tailored", "wrap"}, 0.15},
		{"", "fit", []string{"oversized", "boxy"}, -0.15},
		{wardrobe.CategoryAccessories, "type", []string{string(wardrobe.TypeBelt)}, 0.10},
		{wardrobe.CategoryDress, "fit", []string{"bodycon", "wrap", "fit_and_flare"}, 0.15},
	},
	"rectangle": {
		{wardrobe.CategoryTops, "fit", []string{"peplum", "wrap", "ruffled"}, 0.15},
		{"", "pattern", []string{"striped", "floral", "color_block"}, 0.05},
		{wardrobe.CategoryAccessories, "type", []string{string(wardrobe.TypeBelt)}, 0.10},
		{wardrobe.CategoryBottoms, "fit", []string{"relaxed", "wide_leg", "paperbag"}, 0.05},
		{wardrobe.CategoryDress, "fit", []string{"shift"}, -0.05},
	},
	"inverted_triangle": {
		{wardrobe.CategoryTops, "fit", []string{"relaxed", "v_neck", "draped"}, 0.10},
		{wardrobe.CategoryTops, "fit", []string{"structured", "puff_sleeve"}, -0.10},
		{wardrobe.CategoryBottoms, "fit", []string{"wide_leg", "a_line", "flared"}, 0.15},
		{wardrobe.CategoryBottoms, "pattern", []string{"striped", "floral", "plaid", "graphic"}, 0.10},
		{wardrobe.CategoryOuterwear, "type", []string{string(wardrobe.TypeBlazer)}, -0.05},
	},
}

// Height thresholds in centimeters.
const (
	petiteCM = 160
	tallCM   = 183
)

var (
	petiteRules = []bodyRule{
		{"", "fit", []string{"cropped", "fitted", "high_waisted"}, 0.10},
		{"", "fit", []string{"oversized", "longline", "maxi"}, -0.10},
	}
	tallRules = []bodyRule{
		{"", "fit", []string{"longline", "maxi", "wide_leg", "oversized"}, 0.10},
		{"", "fit", []string{"cropped"}, -0.05},
	}
)

// BodyType scores items against the user's body archetype and height.
// Unknown archetypes score neutral.
type BodyType struct {
	BaseAnalyzer
}

// NewBodyType creates the body type analyzer.
func NewBodyType() *BodyType {
	return &BodyType{BaseAnalyzer: NewBaseAnalyzer("body_type", outfit.DimensionBodyType)}
}

// Archetype resolves a free-form body type to a known archetype.
func Archetype(bodyType string) (string, bool) {
	a, ok := archetypeAliases[wardrobe.NormalizeTag(bodyType)]
	return a, ok
}

// Analyze implements outfit.Analyzer.
func (b *BodyType) Analyze(ctx context.Context, gc *outfit.GenerationContext, scores outfit.ScoreMap) error {
	var rules []bodyRule
	if a, ok := Archetype(gc.Profile.BodyType); ok {
		rules = append(rules, archetypeRules[a]...)
	}
	switch h := gc.Profile.HeightCM; {
	case h > 0 && h < petiteCM:
		rules = append(rules, petiteRules...)
	case h >= tallCM:
		rules = append(rules, tallRules...)
	}

	return forEach(ctx, scores, func(rec *outfit.ScoreRecord) {
		if len(rules) == 0 {
			rec.Set(outfit.DimensionBodyType, outfit.NeutralScore)
			return
		}
		rec.Set(outfit.DimensionBodyType, outfit.NeutralScore+bodyDelta(rec.Item, rules))
	})
}

func bodyDelta(item *wardrobe.ClothingItem, rules []bodyRule) float64 {
	a := item.Attr()
	var delta float64
	for _, r := range rules {
		if r.category != "" && r.category != item.Category {
			continue
		}
		var v string
		switch r.attr {
		case "fit":
			v = a.Fit
		case "pattern":
			v = a.Pattern
		case "type":
			v = string(item.Type)
		}
		if v == "" {
			continue
		}
		for _, want := range r.values {
			if v == want {
				delta += r.delta
				break
			}
		}
	}
	return delta
}

var _ outfit.Analyzer = (*BodyType)(nil)
