// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package filter

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/stylist/internal/wardrobe"
)

func norm(item wardrobe.ClothingItem) wardrobe.ClothingItem {
	return wardrobe.Normalizer{}.Normalize(item)
}

func TestHardFilter_GymBlazerVersusShorts(t *testing.T) {
	t.Parallel()

	f := NewHardFilter(nil, zerolog.Nop())
	blazer := norm(wardrobe.ClothingItem{
		ID: "blazer", Type: "blazer", Name: "Wool blazer", Style: []string{"classic"},
		Attributes: &wardrobe.VisualAttributes{Material: "wool", FormalLevel: "formal"},
	})
	shorts := norm(wardrobe.ClothingItem{
		ID: "shorts", Type: "athletic shorts", Name: "Running shorts",
		Attributes: &wardrobe.VisualAttributes{WaistbandType: "elastic"},
	})

	d := f.Evaluate(&blazer, "gym", "classic")
	if d.Allowed {
		t.Errorf("blazer allowed for gym: %+v", d)
	}
	if d.Tier != TierMetadata {
		t.Errorf("blazer decided by %s, want metadata", d.Tier)
	}
	if !f.Allowed(&shorts, "gym", "classic") {
		t.Error("elastic athletic shorts blocked for gym")
	}
}

func TestHardFilter_UnnormalizedItems(t *testing.T) {
	t.Parallel()

	f := NewHardFilter(nil, zerolog.Nop())
	tests := []struct {
		name     string
		item     wardrobe.ClothingItem
		occasion string
		want     bool
	}{
		{
			name: "elastic shorts for the gym",
			item: wardrobe.ClothingItem{
				ID: "shorts", Type: wardrobe.TypeAthleticShorts, Name: "Shorts",
				Attributes: &wardrobe.VisualAttributes{WaistbandType: "elastic"},
			},
			occasion: "gym",
			want:     true,
		},
		{
			name: "belt-loop jeans for the gym",
			item: wardrobe.ClothingItem{
				ID: "jeans", Type: wardrobe.TypeJeans, Name: "Jeans",
				Attributes: &wardrobe.VisualAttributes{WaistbandType: "belt_loops"},
			},
			occasion: "gym",
			want:     false,
		},
		{
			name: "drawstring trousers for business",
			item: wardrobe.ClothingItem{
				ID: "trousers", Type: wardrobe.TypeTrousers, Name: "Trousers",
				Attributes: &wardrobe.VisualAttributes{WaistbandType: "drawstring"},
			},
			occasion: "business",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			raw := tt.item
			normalized := norm(tt.item)
			if got := f.Allowed(&raw, tt.occasion, ""); got != tt.want {
				t.Errorf("Allowed(raw) = %v, want %v", got, tt.want)
			}
			if got := f.Allowed(&normalized, tt.occasion, ""); got != tt.want {
				t.Errorf("Allowed(normalized) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHardFilter_Evaluate(t *testing.T) {
	t.Parallel()

	f := NewHardFilter(nil, zerolog.Nop())

	tests := []struct {
		name     string
		item     wardrobe.ClothingItem
		occasion string
		style    string
		allowed  bool
		tier     Tier
	}{
		{
			name:     "belt loops fail loungewear",
			item:     wardrobe.ClothingItem{ID: "1", Type: "pants", Attributes: &wardrobe.VisualAttributes{WaistbandType: "belt loops"}},
			occasion: "loungewear",
			allowed:  false,
			tier:     TierMetadata,
		},
		{
			name:     "drawstring passes loungewear",
			item:     wardrobe.ClothingItem{ID: "2", Type: "pants", Attributes: &wardrobe.VisualAttributes{WaistbandType: "drawstring"}},
			occasion: "loungewear",
			allowed:  true,
			tier:     TierMetadata,
		},
		{
			name:     "occasion tag allows",
			item:     wardrobe.ClothingItem{ID: "3", Type: "kimono", Occasion: []string{"Gym"}},
			occasion: "gym",
			allowed:  true,
			tier:     TierTags,
		},
		{
			name:     "tagged only for rival family",
			item:     wardrobe.ClothingItem{ID: "4", Type: "kimono", Occasion: []string{"wedding", "formal"}},
			occasion: "gym",
			allowed:  false,
			tier:     TierTags,
		},
		{
			name:     "mixed tags stay undecided then type decides",
			item:     wardrobe.ClothingItem{ID: "5", Type: "t-shirt", Occasion: []string{"formal", "weekend"}},
			occasion: "gym",
			allowed:  true,
			tier:     TierType,
		},
		{
			name:     "polo blocked for gym by type table",
			item:     wardrobe.ClothingItem{ID: "6", Type: "shirt", Name: "Pique polo"},
			occasion: "gym",
			allowed:  false,
			tier:     TierType,
		},
		{
			name:     "keyword blocks unknown type",
			item:     wardrobe.ClothingItem{ID: "7", Type: "set", Name: "Silver sequin set"},
			occasion: "workout",
			allowed:  false,
			tier:     TierKeyword,
		},
		{
			name:     "longer keyword overrides substring",
			item:     wardrobe.ClothingItem{ID: "8", Type: "set", Name: "Navy tracksuit set"},
			occasion: "workout",
			allowed:  true,
			tier:     TierKeyword,
		},
		{
			name:     "athletic default is block",
			item:     wardrobe.ClothingItem{ID: "9", Type: "kimono", Name: "Kimono"},
			occasion: "gym",
			allowed:  false,
			tier:     TierDefault,
		},
		{
			name:     "business default is block",
			item:     wardrobe.ClothingItem{ID: "10", Type: "kimono", Name: "Kimono"},
			occasion: "business",
			allowed:  false,
			tier:     TierDefault,
		},
		{
			name:     "casual default is allow",
			item:     wardrobe.ClothingItem{ID: "11", Type: "kimono", Name: "Kimono"},
			occasion: "brunch",
			allowed:  true,
			tier:     TierDefault,
		},
		{
			name:     "party default is allow",
			item:     wardrobe.ClothingItem{ID: "12", Type: "kimono", Name: "Kimono"},
			occasion: "date night",
			allowed:  true,
			tier:     TierDefault,
		},
		{
			name:     "sneakers blocked for business",
			item:     wardrobe.ClothingItem{ID: "13", Type: "sneakers"},
			occasion: "office",
			allowed:  false,
			tier:     TierType,
		},
		{
			name:     "style decides family when occasion unknown",
			item:     wardrobe.ClothingItem{ID: "14", Type: "blazer"},
			occasion: "",
			style:    "sporty",
			allowed:  false,
			tier:     TierType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			item := norm(tt.item)
			d := f.Evaluate(&item, tt.occasion, tt.style)
			if d.Allowed != tt.allowed {
				t.Errorf("Allowed = %v, want %v (reason %q)", d.Allowed, tt.allowed, d.Reason)
			}
			if d.Tier != tt.tier {
				t.Errorf("Tier = %s, want %s (reason %q)", d.Tier, tt.tier, d.Reason)
			}
		})
	}
}

func TestHardFilter_CustomRules(t *testing.T) {
	t.Parallel()

	rules := DefaultKeywordRules().Merge(KeywordRules{
		FamilyCasual: {Block: []string{"kimono"}},
	})
	f := NewHardFilter(rules, zerolog.Nop())
	item := norm(wardrobe.ClothingItem{ID: "1", Type: "kimono"})
	if f.Allowed(&item, "", "") {
		t.Error("custom casual block keyword ignored")
	}
	if f.Allowed(&item, "gym", "") {
		t.Error("kimono allowed for gym without any signal")
	}
}

func TestHardFilter_MaskMatchesAllowed(t *testing.T) {
	t.Parallel()

	f := NewHardFilter(nil, zerolog.Nop())
	types := []string{"t-shirt", "blazer", "joggers", "jeans", "sneakers", "loafers", "hoodie"}
	items := make([]wardrobe.ClothingItem, 0, 200)
	for i := 0; i < 200; i++ {
		items = append(items, norm(wardrobe.ClothingItem{
			ID:   fmt.Sprintf("item-%d", i),
			Type: wardrobe.ItemType(types[i%len(types)]),
		}))
	}

	mask := f.Mask(items, "gym", "")
	for i := range items {
		if want := f.Allowed(&items[i], "gym", ""); mask[i] != want {
			t.Errorf("mask[%d] (%s) = %v, want %v", i, items[i].Type, mask[i], want)
		}
	}
	kept := 0
	for _, ok := range mask {
		if ok {
			kept++
		}
	}
	if kept == 0 || kept == len(items) {
		t.Errorf("mask kept %d of %d, want a strict subset", kept, len(items))
	}
}

func TestFamilyOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		occasion, style string
		want            Family
	}{
		{"Gym", "classic", FamilyAthletic},
		{"business casual", "", FamilyBusiness},
		{"Date Night", "", FamilyParty},
		{"lounge", "", FamilyLoungewear},
		{"", "athleisure", FamilyAthletic},
		{"", "", FamilyCasual},
		{"picnic", "bohemian", FamilyCasual},
	}
	for _, tt := range tests {
		if got := FamilyOf(tt.occasion, tt.style); got != tt.want {
			t.Errorf("FamilyOf(%q, %q) = %s, want %s", tt.occasion, tt.style, got, tt.want)
		}
	}
	if !FamilyAthletic.Strict() || FamilyParty.Strict() {
		t.Error("Strict misreports family strictness")
	}
}
