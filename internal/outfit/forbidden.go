// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package outfit

import (
	"github.com/tomtom215/stylist/internal/wardrobe"
)

// ForbiddenRule is a pair of garments that must never be worn together.
// Conflicts is checked in both argument orders.
type ForbiddenRule struct {
	Name      string
	Conflicts func(a, b *wardrobe.ClothingItem) bool
}

// ForbiddenRules is the registered combination table.
var ForbiddenRules = []ForbiddenRule{
	{
		Name: "blazer_with_shorts",
		Conflicts: func(a, b *wardrobe.ClothingItem) bool {
			return a.IsBlazer() && b.IsShorts()
		},
	},
	{
		Name: "dress_shoes_with_athletic_shorts",
		Conflicts: func(a, b *wardrobe.ClothingItem) bool {
			return a.IsDressShoe() && b.IsAthleticShorts()
		},
	},
	{
		Name: "tuxedo_with_sneakers",
		Conflicts: func(a, b *wardrobe.ClothingItem) bool {
			return a.IsTuxedo() && b.IsSneaker()
		},
	},
	{
		Name: "two_shirts",
		Conflicts: func(a, b *wardrobe.ClothingItem) bool {
			if !isBaseShirt(a) || !isBaseShirt(b) {
				return false
			}
			return !a.IsTank() && !b.IsTank()
		},
	},
	{
		Name: "collared_with_turtleneck",
		Conflicts: func(a, b *wardrobe.ClothingItem) bool {
			return a.IsCollared() && b.IsTurtleneck()
		},
	},
	{
		Name: "short_sleeve_sweater_over_long_sleeve",
		Conflicts: func(a, b *wardrobe.ClothingItem) bool {
			if !a.IsSweater() || a.IsSweaterVest() || a.Sleeve() != wardrobe.SleeveShort {
				return false
			}
			return b.Category == wardrobe.CategoryTops && b.Sleeve() == wardrobe.SleeveLong
		},
	},
	{
		Name: "dress_with_separates",
		Conflicts: func(a, b *wardrobe.ClothingItem) bool {
			return a.IsDress() && (b.Category == wardrobe.CategoryTops || b.Category == wardrobe.CategoryBottoms)
		},
	},
}

// isBaseShirt matches shirts worn as the base layer. Overshirts are mid
// layers and may go over a shirt.
func isBaseShirt(item *wardrobe.ClothingItem) bool {
	return item.Category == wardrobe.CategoryTops && item.IsShirtLike()
}

// Forbidden reports the first rule violated by wearing a with b.
func Forbidden(a, b *wardrobe.ClothingItem) (string, bool) {
	if a.ID != "" && a.ID == b.ID {
		return "", false
	}
	for _, r := range ForbiddenRules {
		if r.Conflicts(a, b) || r.Conflicts(b, a) {
			return r.Name, true
		}
	}
	return "", false
}

// Violation reports the first rule candidate would break against any
// already selected item.
func Violation(candidate *wardrobe.ClothingItem, selected []*wardrobe.ClothingItem) (string, bool) {
	for _, s := range selected {
		if name, bad := Forbidden(candidate, s); bad {
			return name, true
		}
	}
	return "", false
}

// Violations lists every forbidden pair in items as "rule:idA:idB".
func Violations(items []wardrobe.ClothingItem) []string {
	var out []string
	for i := range items {
		for j := i + 1; j < len(items); j++ {
			if name, bad := Forbidden(&items[i], &items[j]); bad {
				out = append(out, name+":"+items[i].ID+":"+items[j].ID)
			}
		}
	}
	return out
}
