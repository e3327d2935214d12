// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package outfit

import (
	"testing"

	"github.com/tomtom215/stylist/internal/wardrobe"
)

func TestForbidden(t *testing.T) {
	t.Parallel()

	shortSleeveSweater := testItem("knit", wardrobe.TypeSweater, "gray")
	shortSleeveSweater.Attributes = &wardrobe.VisualAttributes{SleeveLength: wardrobe.SleeveShort}

	tests := []struct {
		name string
		a, b wardrobe.ClothingItem
		rule string
	}{
		{"blazer with shorts", testItem("blazer", wardrobe.TypeBlazer, "navy"), testItem("shorts", wardrobe.TypeShorts, "khaki"), "blazer_with_shorts"},
		{"reversed order", testItem("shorts", wardrobe.TypeShorts, "khaki"), testItem("blazer", wardrobe.TypeBlazer, "navy"), "blazer_with_shorts"},
		{"dress shoes with gym shorts", testItem("oxfords", wardrobe.TypeDressShoes, "brown"), testItem("gym", wardrobe.TypeAthleticShorts, "black"), "dress_shoes_with_athletic_shorts"},
		{"tuxedo with sneakers", testItem("tux", wardrobe.TypeTuxedo, "black"), testItem("kicks", wardrobe.TypeSneakers, "white"), "tuxedo_with_sneakers"},
		{"two shirts", testItem("tee", wardrobe.TypeTShirt, "white"), testItem("oxford", wardrobe.TypeShirt, "blue"), "two_shirts"},
		{"collar with turtleneck", testItem("polo", wardrobe.TypePolo, "white"), testItem("turtle", wardrobe.TypeTurtleneck, "black"), "collared_with_turtleneck"},
		{"short sleeve sweater over long sleeve", shortSleeveSweater, testItem("button", wardrobe.TypeShirt, "white"), "short_sleeve_sweater_over_long_sleeve"},
		{"dress with top", testItem("dress", wardrobe.TypeDress, "red"), testItem("tee", wardrobe.TypeTShirt, "white"), "dress_with_separates"},
		{"dress with skirt", testItem("dress", wardrobe.TypeDress, "red"), testItem("skirt", wardrobe.TypeSkirt, "black"), "dress_with_separates"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rule, bad := Forbidden(&tt.a, &tt.b)
			if !bad {
				t.Fatalf("Forbidden(%s, %s) = false, want %s", tt.a.ID, tt.b.ID, tt.rule)
			}
			if rule != tt.rule {
				t.Errorf("rule = %s, want %s", rule, tt.rule)
			}
		})
	}
}

func TestForbidden_Allowed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b wardrobe.ClothingItem
	}{
		{"blazer with trousers", testItem("blazer", wardrobe.TypeBlazer, "navy"), testItem("trousers", wardrobe.TypeTrousers, "gray")},
		{"tank under shirt", testItem("tank", wardrobe.TypeTankTop, "white"), testItem("oxford", wardrobe.TypeShirt, "blue")},
		{"overshirt over tee", testItem("over", wardrobe.TypeOvershirt, "green"), testItem("tee", wardrobe.TypeTShirt, "white")},
		{"sweater vest over shirt", testItem("vest", wardrobe.TypeSweaterVest, "gray"), testItem("oxford", wardrobe.TypeShirt, "blue")},
		{"dress with heels", testItem("dress", wardrobe.TypeDress, "red"), testItem("heels", wardrobe.TypeHeels, "black")},
		{"same item", testItem("tee", wardrobe.TypeTShirt, "white"), testItem("tee", wardrobe.TypeTShirt, "white")},
	}

	for _, tt := range tests {
		if rule, bad := Forbidden(&tt.a, &tt.b); bad {
			t.Errorf("%s: Forbidden() = %s, want allowed", tt.name, rule)
		}
	}
}

func TestViolations(t *testing.T) {
	t.Parallel()

	items := []wardrobe.ClothingItem{
		testItem("blazer", wardrobe.TypeBlazer, "navy"),
		testItem("shorts", wardrobe.TypeShorts, "khaki"),
		testItem("loafers", wardrobe.TypeLoafers, "brown"),
	}
	got := Violations(items)
	if len(got) != 1 || got[0] != "blazer_with_shorts:blazer:shorts" {
		t.Errorf("Violations() = %v, want [blazer_with_shorts:blazer:shorts]", got)
	}

	selected := []*wardrobe.ClothingItem{&items[0], &items[2]}
	if _, bad := Violation(&items[1], selected); !bad {
		t.Error("Violation(shorts, [blazer, loafers]) = false, want true")
	}
}
