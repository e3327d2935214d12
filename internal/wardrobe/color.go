// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package wardrobe

import (
	"sort"
	"strings"
)

// Color families.
const (
	FamilyBlack  = "black"
	FamilyWhite  = "white"
	FamilyGray   = "gray"
	FamilyNavy   = "navy"
	FamilyBeige  = "beige"
	FamilyBrown  = "brown"
	FamilyRed    = "red"
	FamilyPink   = "pink"
	FamilyOrange = "orange"
	FamilyYellow = "yellow"
	FamilyGreen  = "green"
	FamilyBlue   = "blue"
	FamilyPurple = "purple"
	FamilyMetal  = "metallic"
)

// colorFamilies maps color words onto families. Multi-word colors are matched
// by their last recognized word ("dark olive green" -> green).
var colorFamilies = map[string]string{
	"black": FamilyBlack, "jet": FamilyBlack, "onyx": FamilyBlack, "ebony": FamilyBlack,
	"white": FamilyWhite, "ivory": FamilyWhite, "cream": FamilyWhite, "offwhite": FamilyWhite, "off-white": FamilyWhite,
	"gray": FamilyGray, "grey": FamilyGray, "charcoal": FamilyGray, "slate": FamilyGray, "heather": FamilyGray,
	"navy": FamilyNavy, "midnight": FamilyNavy,
	"beige": FamilyBeige, "tan": FamilyBeige, "khaki": FamilyBeige, "camel": FamilyBeige, "sand": FamilyBeige, "taupe": FamilyBeige, "nude": FamilyBeige,
	"brown": FamilyBrown, "chocolate": FamilyBrown, "cognac": FamilyBrown, "rust": FamilyBrown, "espresso": FamilyBrown,
	"red": FamilyRed, "burgundy": FamilyRed, "maroon": FamilyRed, "crimson": FamilyRed, "scarlet": FamilyRed, "wine": FamilyRed,
	"pink": FamilyPink, "blush": FamilyPink, "rose": FamilyPink, "magenta": FamilyPink, "fuchsia": FamilyPink, "coral": FamilyPink,
	"orange": FamilyOrange, "peach": FamilyOrange, "tangerine": FamilyOrange, "terracotta": FamilyOrange,
	"yellow": FamilyYellow, "mustard": FamilyYellow, "gold": FamilyYellow, "lemon": FamilyYellow,
	"green": FamilyGreen, "olive": FamilyGreen, "sage": FamilyGreen, "emerald": FamilyGreen, "mint": FamilyGreen, "forest": FamilyGreen,
	"blue": FamilyBlue, "denim": FamilyBlue, "cobalt": FamilyBlue, "teal": FamilyBlue, "turquoise": FamilyBlue, "sky": FamilyBlue, "indigo": FamilyBlue,
	"purple": FamilyPurple, "lavender": FamilyPurple, "violet": FamilyPurple, "plum": FamilyPurple, "lilac": FamilyPurple, "mauve": FamilyPurple,
	"silver": FamilyMetal, "metallic": FamilyMetal, "bronze": FamilyMetal,
}

var neutralFamilies = map[string]bool{
	FamilyBlack: true,
	FamilyWhite: true,
	FamilyGray:  true,
	FamilyNavy:  true,
	FamilyBeige: true,
	FamilyBrown: true,
	FamilyMetal: true,
}

var saturatedFamilies = map[string]bool{
	FamilyRed:    true,
	FamilyPink:   true,
	FamilyOrange: true,
	FamilyYellow: true,
	FamilyGreen:  true,
	FamilyBlue:   true,
	FamilyPurple: true,
}

// ColorFamily maps a free-text color onto its family. Unknown colors return
// the lower-cased input so equal spellings still compare equal.
func ColorFamily(color string) string {
	c := strings.ToLower(strings.TrimSpace(color))
	if c == "" {
		return ""
	}
	if fam, ok := colorFamilies[c]; ok {
		return fam
	}
	words := strings.FieldsFunc(c, func(r rune) bool {
		return r == ' ' || r == '-' || r == '/' || r == '_'
	})
	for i := len(words) - 1; i >= 0; i-- {
		if fam, ok := colorFamilies[words[i]]; ok {
			return fam
		}
	}
	return c
}

// IsNeutral reports whether the color belongs to a neutral family.
func IsNeutral(color string) bool {
	return neutralFamilies[ColorFamily(color)]
}

// IsSaturated reports whether the color belongs to a saturated family.
func IsSaturated(color string) bool {
	return saturatedFamilies[ColorFamily(color)]
}

// PaletteScore ranks one color family's inventory.
type PaletteScore struct {
	Family   string
	Coverage int // essential slots (tops, bottoms, shoes) the family can fill
	Count    int // items in the family across those slots
	Score    float64
}

// PaletteConsensus returns the color family with the largest simultaneous
// inventory across tops, bottoms and shoes. A dress counts toward both tops
// and bottoms. coverageWeight sets how much filling an additional slot is
// worth relative to one more item; ties break on family name.
func PaletteConsensus(items []ClothingItem, coverageWeight float64) (PaletteScore, bool) {
	type slots struct {
		tops, bottoms, shoes int
	}
	byFamily := make(map[string]*slots)
	for i := range items {
		fam := items[i].ColorFamily()
		if fam == "" {
			continue
		}
		s := byFamily[fam]
		if s == nil {
			s = &slots{}
			byFamily[fam] = s
		}
		switch items[i].Category {
		case CategoryTops:
			s.tops++
		case CategoryBottoms:
			s.bottoms++
		case CategoryShoes:
			s.shoes++
		case CategoryDress:
			s.tops++
			s.bottoms++
		}
	}

	scores := make([]PaletteScore, 0, len(byFamily))
	for fam, s := range byFamily {
		coverage := 0
		for _, n := range []int{s.tops, s.bottoms, s.shoes} {
			if n > 0 {
				coverage++
			}
		}
		count := s.tops + s.bottoms + s.shoes
		if count == 0 {
			continue
		}
		scores = append(scores, PaletteScore{
			Family:   fam,
			Coverage: coverage,
			Count:    count,
			Score:    float64(coverage)*coverageWeight + float64(count),
		})
	}
	if len(scores) == 0 {
		return PaletteScore{}, false
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Family < scores[j].Family
	})
	return scores[0], true
}

// InPalette reports whether item fits a monochrome palette. Metallic
// accessories are accepted with any palette.
func InPalette(item *ClothingItem, family string) bool {
	if family == "" {
		return true
	}
	fam := item.ColorFamily()
	if fam == family {
		return true
	}
	return item.Category == CategoryAccessories && fam == FamilyMetal
}
