// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package filter

import (
	"strings"

	"github.com/tomtom215/stylist/internal/wardrobe"
)

// Weather gate thresholds in °F.
const (
	ExtremeHeatF = 90.0
	HotF         = 80.0
	CoolF        = 65.0
)

// warmMaterials are removed in hot weather. warmNames is matched against
// item names, where a bare "down" would hit "button-down".
var (
	warmMaterials = []string{"wool", "fleece", "cashmere", "tweed", "down", "sherpa", "shearling", "flannel"}
	warmNames     = []string{"wool", "fleece", "cashmere", "tweed", "sherpa", "shearling", "flannel", "puffer", "down jacket"}
)

// WeatherAppropriate is the coarse temperature gate. It does not look at the
// occasion. Accessories always pass.
func WeatherAppropriate(item *wardrobe.ClothingItem, temperatureF float64) bool {
	if item.Category == wardrobe.CategoryAccessories {
		return true
	}
	switch {
	case temperatureF >= ExtremeHeatF:
		if isHeavy(item) || isWarmMaterial(item) {
			return false
		}
		if item.Sleeve() == wardrobe.SleeveLong || item.Layer == wardrobe.LayerOuter {
			return false
		}
	case temperatureF >= HotF:
		if isHeavy(item) || isWarmMaterial(item) {
			return false
		}
	case temperatureF < CoolF:
		if item.IsShorts() {
			return false
		}
		if item.Type == wardrobe.TypeSandals || item.Type == wardrobe.TypeFlipFlops {
			return false
		}
		if (item.Category == wardrobe.CategoryTops || item.Category == wardrobe.CategoryDress) &&
			(item.IsTank() || item.Sleeve() == wardrobe.SleeveNone) {
			return false
		}
	}
	return true
}

func isHeavy(item *wardrobe.ClothingItem) bool {
	a := item.Attr()
	if a.FabricWeight == wardrobe.FabricHeavy || a.WarmthFactor >= 7 {
		return true
	}
	switch item.Type {
	case wardrobe.TypeParka, wardrobe.TypeCoat:
		return true
	}
	return false
}

func isWarmMaterial(item *wardrobe.ClothingItem) bool {
	material := item.Attr().Material
	name := strings.ToLower(item.Name)
	for _, m := range warmMaterials {
		if strings.Contains(material, m) {
			return true
		}
	}
	for _, m := range warmNames {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}

// WeatherMask returns one verdict per item.
func WeatherMask(items []wardrobe.ClothingItem, temperatureF float64) []bool {
	mask := make([]bool, len(items))
	for i := range items {
		mask[i] = WeatherAppropriate(&items[i], temperatureF)
	}
	return mask
}
