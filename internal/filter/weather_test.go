// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package filter

import (
	"testing"

	"github.com/tomtom215/stylist/internal/wardrobe"
)

func TestWeatherAppropriate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		item wardrobe.ClothingItem
		temp float64
		want bool
	}{
		{"wool sweater at 85", wardrobe.ClothingItem{ID: "1", Type: "sweater", Attributes: &wardrobe.VisualAttributes{Material: "wool"}}, 85, false},
		{"fleece in name at 82", wardrobe.ClothingItem{ID: "2", Type: "hoodie", Name: "Fleece hoodie"}, 82, false},
		{"button-down at 82 is fine", wardrobe.ClothingItem{ID: "3", Type: "shirt", Name: "Linen button-down", Attributes: &wardrobe.VisualAttributes{SleeveLength: "short"}}, 82, true},
		{"long sleeve shirt at 95", wardrobe.ClothingItem{ID: "4", Type: "shirt"}, 95, false},
		{"long sleeve shirt at 85", wardrobe.ClothingItem{ID: "5", Type: "shirt"}, 85, true},
		{"heavy fabric at 80", wardrobe.ClothingItem{ID: "6", Type: "jeans", Attributes: &wardrobe.VisualAttributes{FabricWeight: "heavyweight"}}, 80, false},
		{"shorts at 50", wardrobe.ClothingItem{ID: "7", Type: "shorts"}, 50, false},
		{"sandals at 60", wardrobe.ClothingItem{ID: "8", Type: "sandals"}, 60, false},
		{"tank at 40", wardrobe.ClothingItem{ID: "9", Type: "tank"}, 40, false},
		{"sleeveless dress at 55", wardrobe.ClothingItem{ID: "10", Type: "dress", Attributes: &wardrobe.VisualAttributes{SleeveLength: "sleeveless"}}, 55, false},
		{"sweater vest at 40 is a layer", wardrobe.ClothingItem{ID: "11", Type: "sweater vest"}, 40, true},
		{"shorts at 65", wardrobe.ClothingItem{ID: "12", Type: "shorts"}, 65, true},
		{"accessory always", wardrobe.ClothingItem{ID: "13", Type: "scarf", Attributes: &wardrobe.VisualAttributes{Material: "wool"}}, 100, true},
		{"coat at 92", wardrobe.ClothingItem{ID: "14", Type: "coat"}, 92, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			item := norm(tt.item)
			if got := WeatherAppropriate(&item, tt.temp); got != tt.want {
				t.Errorf("WeatherAppropriate(%s, %v) = %v, want %v", item.Type, tt.temp, got, tt.want)
			}
		})
	}
}

func TestWeatherMask(t *testing.T) {
	t.Parallel()

	items := []wardrobe.ClothingItem{
		norm(wardrobe.ClothingItem{ID: "s", Type: "shorts"}),
		norm(wardrobe.ClothingItem{ID: "j", Type: "jeans"}),
	}

	tests := []struct {
		name string
		temp float64
		want []bool
	}{
		{"cold drops shorts", 40, []bool{false, true}},
		{"mild keeps both", 75, []bool{true, true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := WeatherMask(items, tt.temp)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("WeatherMask(%v)[%s] = %v, want %v", tt.temp, items[i].ID, got[i], tt.want[i])
				}
			}
		})
	}
}
