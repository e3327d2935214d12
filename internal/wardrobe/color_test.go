// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package wardrobe

import "testing"

func TestColorFamily(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Black", FamilyBlack},
		{"charcoal", FamilyGray},
		{"dark olive green", FamilyGreen},
		{"navy-blue", FamilyBlue},
		{"Burgundy", FamilyRed},
		{"", ""},
		{"chartreuse", "chartreuse"},
	}

	for _, tt := range tests {
		if got := ColorFamily(tt.in); got != tt.want {
			t.Errorf("ColorFamily(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNeutralAndSaturated(t *testing.T) {
	t.Parallel()

	if !IsNeutral("beige") || IsNeutral("red") {
		t.Error("IsNeutral misclassified beige/red")
	}
	if !IsSaturated("emerald") || IsSaturated("white") {
		t.Error("IsSaturated misclassified emerald/white")
	}
}

func TestPaletteConsensus(t *testing.T) {
	t.Parallel()

	item := func(id string, cat Category, color string) ClothingItem {
		return ClothingItem{ID: id, Category: cat, Color: color}
	}

	t.Run("coverage beats raw count", func(t *testing.T) {
		t.Parallel()
		items := []ClothingItem{
			item("t1", CategoryTops, "black"),
			item("t2", CategoryTops, "black"),
			item("t3", CategoryTops, "black"),
			item("b1", CategoryBottoms, "black"),
			item("b2", CategoryBottoms, "red"),
			item("b3", CategoryBottoms, "red"),
		}
		got, ok := PaletteConsensus(items, 10)
		if !ok {
			t.Fatal("PaletteConsensus returned no palette")
		}
		if got.Family != FamilyBlack {
			t.Errorf("Family = %q, want black", got.Family)
		}
		if got.Coverage != 2 || got.Count != 4 {
			t.Errorf("Coverage/Count = %d/%d, want 2/4", got.Coverage, got.Count)
		}
	})

	t.Run("dress counts for tops and bottoms", func(t *testing.T) {
		t.Parallel()
		items := []ClothingItem{
			item("d1", CategoryDress, "navy"),
			item("t1", CategoryTops, "white"),
			item("t2", CategoryTops, "white"),
		}
		got, _ := PaletteConsensus(items, 10)
		if got.Family != FamilyNavy {
			t.Errorf("Family = %q, want navy", got.Family)
		}
	})

	t.Run("accessories ignored", func(t *testing.T) {
		t.Parallel()
		_, ok := PaletteConsensus([]ClothingItem{item("a", CategoryAccessories, "gold")}, 10)
		if ok {
			t.Error("expected no palette from accessories only")
		}
	})
}

func TestInPalette(t *testing.T) {
	t.Parallel()

	watch := ClothingItem{Category: CategoryAccessories, Color: "silver"}
	if !InPalette(&watch, FamilyBlack) {
		t.Error("metallic accessory should fit any palette")
	}
	top := ClothingItem{Category: CategoryTops, Color: "red"}
	if InPalette(&top, FamilyBlack) {
		t.Error("red top should not fit black palette")
	}
	if !InPalette(&top, "") {
		t.Error("empty palette accepts everything")
	}
}
