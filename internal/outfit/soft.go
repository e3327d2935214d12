// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package outfit

import (
	"strings"

	"github.com/tomtom215/stylist/internal/filter"
	"github.com/tomtom215/stylist/internal/wardrobe"
)

// Soft adjustment magnitudes.
const (
	softStrong = 0.10
	softMedium = 0.06
	softLight  = 0.03
)

// SoftAdjustment returns the occasion-specific bonus or penalty for item.
// It never excludes an item.
func SoftAdjustment(gc *GenerationContext, item *wardrobe.ClothingItem) float64 {
	var adj float64

	switch gc.Family {
	case filter.FamilyBusiness:
		switch {
		case item.IsCollared(), item.IsBlazer(), item.IsDressShoe():
			adj += softStrong
		case item.Type == wardrobe.TypeTShirt, item.IsSneaker():
			adj -= softStrong
		case item.Type == wardrobe.TypeJeans:
			adj -= softMedium
		}
	case filter.FamilyAthletic:
		switch {
		case item.IsCollared():
			adj -= softStrong * 1.5
		case item.IsSneaker(), item.IsAthleticShorts():
			adj += softStrong
		case item.Type == wardrobe.TypeLeggings, item.Type == wardrobe.TypeJoggers:
			adj += softMedium
		}
	case filter.FamilyLoungewear:
		switch item.Type {
		case wardrobe.TypeHoodie, wardrobe.TypeSweatpants, wardrobe.TypeJoggers, wardrobe.TypeSlippers:
			adj += softMedium
		case wardrobe.TypeJeans, wardrobe.TypeTrousers:
			adj -= softMedium
		}
	case filter.FamilyParty:
		switch {
		case item.Type == wardrobe.TypeHeels, item.IsDress():
			adj += softMedium
		case wardrobe.IsSaturated(item.Color) && item.Category != wardrobe.CategoryShoes:
			adj += softLight
		case item.Type == wardrobe.TypeAthleticShoes:
			adj -= softMedium
		}
	case filter.FamilyCasual:
		if item.Type == wardrobe.TypeTie || item.Type == wardrobe.TypeSuit {
			adj -= softMedium
		}
	}

	if gc.Occasion != "" && item.HasOccasion(gc.Occasion) {
		adj += softMedium
	}
	if gc.Style != "" && item.HasStyle(gc.Style) {
		adj += softMedium
	}
	if gc.Mood != "" && item.HasMood(gc.Mood) {
		adj += softLight
	}
	if season := gc.Weather.Season(); item.HasSeason(season) {
		adj += softLight
	}
	return adj
}

// nameKind groups garment words whose mutual contradiction signals bad data.
type nameKind int

const (
	kindUnknown nameKind = iota
	kindShorts
	kindLongBottom
	kindSkirt
	kindTop
	kindShoe
	kindOuter
)

var nameKinds = []struct {
	word string
	kind nameKind
}{
	{"shorts", kindShorts},
	{"pants", kindLongBottom},
	{"trousers", kindLongBottom},
	{"jeans", kindLongBottom},
	{"chinos", kindLongBottom},
	{"leggings", kindLongBottom},
	{"joggers", kindLongBottom},
	{"skirt", kindSkirt},
	{"shirt", kindTop},
	{"blouse", kindTop},
	{"tee", kindTop},
	{"sneakers", kindShoe},
	{"boots", kindShoe},
	{"loafers", kindShoe},
	{"heels", kindShoe},
	{"jacket", kindOuter},
	{"coat", kindOuter},
	{"blazer", kindOuter},
}

func kindOfName(name string) nameKind {
	words := strings.Fields(strings.ToLower(name))
	// The last garment word names the item ("shirt jacket" is a jacket).
	for i := len(words) - 1; i >= 0; i-- {
		for _, nk := range nameKinds {
			if words[i] == nk.word {
				return nk.kind
			}
		}
	}
	return kindUnknown
}

func kindOfItem(item *wardrobe.ClothingItem) nameKind {
	switch {
	case item.IsShorts():
		return kindShorts
	case item.Type == wardrobe.TypeSkirt:
		return kindSkirt
	}
	switch item.Category {
	case wardrobe.CategoryBottoms:
		return kindLongBottom
	case wardrobe.CategoryTops:
		return kindTop
	case wardrobe.CategoryShoes:
		return kindShoe
	case wardrobe.CategoryOuterwear:
		return kindOuter
	}
	return kindUnknown
}

// ConflictPenalty charges items whose name contradicts their type or
// metadata, such as shorts named "pants".
func ConflictPenalty(item *wardrobe.ClothingItem) float64 {
	var penalty float64

	if byName := kindOfName(item.Name); byName != kindUnknown {
		if byType := kindOfItem(item); byType != kindUnknown && byType != byName {
			penalty -= 0.15
		}
	}

	name := strings.ToLower(item.Name)
	switch item.Attr().SleeveLength {
	case wardrobe.SleeveShort, wardrobe.SleeveNone:
		if strings.Contains(name, "long sleeve") || strings.Contains(name, "long-sleeve") {
			penalty -= 0.10
		}
	case wardrobe.SleeveLong:
		if strings.Contains(name, "short sleeve") || strings.Contains(name, "short-sleeve") || strings.Contains(name, "sleeveless") {
			penalty -= 0.10
		}
	}
	return penalty
}
