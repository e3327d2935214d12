// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package wardrobe

import (
	"strings"
)

var (
	tagReplacer   = strings.NewReplacer("_", "-", " ", "-")
	valueReplacer = strings.NewReplacer("-", "_", " ", "_")
)

// NormalizeTag lower-cases a tag and joins words with hyphens
// ("Date Night" -> "date-night").
func NormalizeTag(tag string) string {
	t := strings.ToLower(strings.TrimSpace(tag))
	t = tagReplacer.Replace(t)
	for strings.Contains(t, "--") {
		t = strings.ReplaceAll(t, "--", "-")
	}
	return t
}

// NormalizeValue lower-cases an attribute value and joins words with
// underscores ("Belt Loops" -> "belt_loops").
func NormalizeValue(v string) string {
	s := strings.ToLower(strings.TrimSpace(v))
	s = valueReplacer.Replace(s)
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return s
}

// NormalizeTags normalizes and de-duplicates a tag set, dropping empties.
// Order of first occurrence is kept.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		n := NormalizeTag(t)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

var categoryNames = map[string]Category{
	"top":         CategoryTops,
	"tops":        CategoryTops,
	"shirt":       CategoryTops,
	"bottom":      CategoryBottoms,
	"bottoms":     CategoryBottoms,
	"pants":       CategoryBottoms,
	"shoe":        CategoryShoes,
	"shoes":       CategoryShoes,
	"footwear":    CategoryShoes,
	"dress":       CategoryDress,
	"dresses":     CategoryDress,
	"one_piece":   CategoryDress,
	"mid_layer":   CategoryMidLayer,
	"midlayer":    CategoryMidLayer,
	"layer":       CategoryMidLayer,
	"layers":      CategoryMidLayer,
	"knitwear":    CategoryMidLayer,
	"outerwear":   CategoryOuterwear,
	"outer":       CategoryOuterwear,
	"jacket":      CategoryOuterwear,
	"accessory":   CategoryAccessories,
	"accessories": CategoryAccessories,
}

var layerNames = map[string]Layer{
	"base":        LayerBase,
	"base_layer":  LayerBase,
	"inner":       LayerBase,
	"mid":         LayerMid,
	"mid_layer":   LayerMid,
	"middle":      LayerMid,
	"outer":       LayerOuter,
	"outer_layer": LayerOuter,
	"outerwear":   LayerOuter,
	"none":        LayerNone,
}

var fabricWeights = map[string]string{
	"light":       FabricLight,
	"lightweight": FabricLight,
	"thin":        FabricLight,
	"medium":      FabricMedium,
	"mid":         FabricMedium,
	"midweight":   FabricMedium,
	"heavy":       FabricHeavy,
	"heavyweight": FabricHeavy,
	"thick":       FabricHeavy,
}

// Fabric weights.
const (
	FabricLight  = "light"
	FabricMedium = "medium"
	FabricHeavy  = "heavy"
)

// Normalizer converts items as they enter the system. It is stateless and
// safe for concurrent use; the zero value is ready to use.
type Normalizer struct{}

// Normalize returns a normalized copy of item. It is idempotent.
//
//nolint:gocritic // hugeParam: item passed by value so the input is never mutated
func (Normalizer) Normalize(item ClothingItem) ClothingItem {
	item.ID = strings.TrimSpace(item.ID)
	item.Name = strings.TrimSpace(item.Name)
	item.Color = strings.ToLower(strings.TrimSpace(item.Color))
	item.Type = ParseItemType(string(item.Type))
	if !item.Type.Known() && (item.Type == "" || item.Type.DefaultCategory() == CategoryUnknown) {
		if inferred := inferTypeFromName(item.Name); inferred != "" {
			item.Type = inferred
		}
	}

	item.Style = NormalizeTags(item.Style)
	item.Occasion = NormalizeTags(item.Occasion)
	item.Mood = NormalizeTags(item.Mood)
	item.Season = NormalizeTags(item.Season)

	if item.Attributes != nil {
		attrs := normalizeAttributes(*item.Attributes)
		item.Attributes = &attrs
	}

	if item.WearCount < 0 {
		item.WearCount = 0
	}
	item.FavoriteScore = clamp01(item.FavoriteScore)
	if item.IsFavorite && item.FavoriteScore == 0 {
		item.FavoriteScore = 1
	}

	item.Category = deriveCategory(&item)
	item.Layer = deriveLayer(&item)
	return item
}

// NormalizeAll normalizes a slice, returning a new slice. Items without an id
// are dropped.
func (n Normalizer) NormalizeAll(items []ClothingItem) []ClothingItem {
	out := make([]ClothingItem, 0, len(items))
	for i := range items {
		item := n.Normalize(items[i])
		if item.ID == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

//nolint:gocritic // hugeParam: copy is the return value
func normalizeAttributes(a VisualAttributes) VisualAttributes {
	a.Material = NormalizeValue(a.Material)
	a.Fit = NormalizeValue(a.Fit)
	a.Pattern = NormalizeValue(a.Pattern)
	a.SleeveLength = normalizeSleeve(a.SleeveLength)
	a.WaistbandType = NormalizeValue(a.WaistbandType)
	a.FormalLevel = NormalizeValue(a.FormalLevel)
	a.CoreCategory = NormalizeValue(a.CoreCategory)
	a.WearLayer = NormalizeValue(a.WearLayer)
	a.ShoeType = NormalizeValue(a.ShoeType)

	if fw, ok := fabricWeights[NormalizeValue(a.FabricWeight)]; ok {
		a.FabricWeight = fw
	} else {
		a.FabricWeight = NormalizeValue(a.FabricWeight)
	}

	switch {
	case a.WarmthFactor < 0:
		a.WarmthFactor = 0
	case a.WarmthFactor > 10:
		a.WarmthFactor = 10
	}

	if tc := a.TemperatureCompatibility; tc != nil {
		r := *tc
		if r.MinTemp > r.MaxTemp {
			r.MinTemp, r.MaxTemp = r.MaxTemp, r.MinTemp
		}
		if r.OptimalMin == 0 && r.OptimalMax == 0 {
			r.OptimalMin, r.OptimalMax = r.MinTemp, r.MaxTemp
		}
		if r.OptimalMin > r.OptimalMax {
			r.OptimalMin, r.OptimalMax = r.OptimalMax, r.OptimalMin
		}
		a.TemperatureCompatibility = &r
	}
	return a
}

func normalizeSleeve(s string) string {
	v := NormalizeValue(s)
	switch v {
	case "":
		return ""
	case "none", "sleeveless", "strapless", "no_sleeve":
		return SleeveNone
	case "short", "short_sleeve", "cap", "half":
		return SleeveShort
	case "long", "long_sleeve", "full", "three_quarter", "3/4":
		return SleeveLong
	}
	return v
}

func deriveCategory(item *ClothingItem) Category {
	if item.Attributes != nil {
		if c, ok := categoryNames[item.Attributes.CoreCategory]; ok {
			return c
		}
	}
	return item.Type.DefaultCategory()
}

// inferTypeFromName finds a known garment kind among the words of a name,
// preferring the last match ("wool blazer" -> blazer, "dress shirt" -> shirt)
// and two-word phrases over single words.
func inferTypeFromName(name string) ItemType {
	words := strings.Fields(strings.ToLower(name))
	for i := len(words) - 1; i >= 0; i-- {
		if i > 0 {
			if t := ParseItemType(words[i-1] + "-" + words[i]); t.Known() {
				return t
			}
		}
		if t := ParseItemType(words[i]); t.Known() {
			return t
		}
	}
	return ""
}

func deriveLayer(item *ClothingItem) Layer {
	if item.Attributes != nil {
		if l, ok := layerNames[item.Attributes.WearLayer]; ok {
			return l
		}
	}
	switch item.Category {
	case CategoryMidLayer:
		return LayerMid
	case CategoryOuterwear:
		return LayerOuter
	case CategoryTops, CategoryDress:
		return LayerBase
	case CategoryBottoms, CategoryShoes, CategoryAccessories:
		return LayerNone
	}
	return item.Type.DefaultLayer()
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
