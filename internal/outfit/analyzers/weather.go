// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package analyzers

import (
	"context"
	"math"
	"strings"

	"github.com/tomtom215/stylist/internal/outfit"
	"github.com/tomtom215/stylist/internal/wardrobe"
)

// Weather scores how well each item suits the temperature. Athletic
// requests are assumed to be climate controlled and score neutral.
type Weather struct {
	BaseAnalyzer
}

// NewWeather creates the weather analyzer.
func NewWeather() *Weather {
	return &Weather{BaseAnalyzer: NewBaseAnalyzer("weather", outfit.DimensionWeather)}
}

// Analyze implements outfit.Analyzer.
func (w *Weather) Analyze(ctx context.Context, gc *outfit.GenerationContext, scores outfit.ScoreMap) error {
	if gc.IsAthletic() {
		return forEach(ctx, scores, func(rec *outfit.ScoreRecord) {
			rec.Set(outfit.DimensionWeather, outfit.NeutralScore)
		})
	}
	weather := gc.Weather
	return forEach(ctx, scores, func(rec *outfit.ScoreRecord) {
		rec.Set(outfit.DimensionWeather, WeatherFit(rec.Item, weather))
	})
}

// WeatherFit averages every temperature signal the item carries. Items
// without any signal score neutral.
func WeatherFit(item *wardrobe.ClothingItem, w wardrobe.Weather) float64 {
	t := w.TemperatureF
	a := item.Attr()
	var signals []float64

	if item.Category == wardrobe.CategoryAccessories {
		return accessoryFit(item, w)
	}

	if r := a.TemperatureCompatibility; r != nil {
		switch {
		case r.Optimal(t):
			signals = append(signals, 1.0)
		case r.Contains(t):
			signals = append(signals, 0.75)
		default:
			dist := math.Min(math.Abs(t-r.MinTemp), math.Abs(t-r.MaxTemp))
			signals = append(signals, math.Max(0.1, 0.6-dist/20))
		}
	}
	if a.WarmthFactor > 0 {
		// Warmth 0-10 against what the temperature calls for.
		want := math.Max(0, math.Min(10, (80-t)/5))
		signals = append(signals, 1-math.Abs(a.WarmthFactor-want)/10)
	}
	if fw := fabricFit(a.FabricWeight, t); fw > 0 {
		signals = append(signals, fw)
	}
	if sv := sleeveFit(item.Sleeve(), t); sv > 0 {
		signals = append(signals, sv)
	}
	switch item.Layer {
	case wardrobe.LayerOuter:
		signals = append(signals, band(t, 55, 68, 0.9, 0.6, 0.25))
	case wardrobe.LayerMid:
		signals = append(signals, band(t, 65, 75, 0.85, 0.55, 0.3))
	}
	if len(item.Season) > 0 {
		if item.HasSeason(w.Season()) {
			signals = append(signals, 0.85)
		} else {
			signals = append(signals, 0.4)
		}
	}

	v := outfit.NeutralScore
	if len(signals) > 0 {
		var sum float64
		for _, s := range signals {
			sum += s
		}
		v = sum / float64(len(signals))
	}
	return clamp01(v + conditionDelta(item, w.Condition))
}

// band returns cold below lo, mid between lo and hi, warm above hi.
func band(t, lo, hi, cold, mid, warm float64) float64 {
	switch {
	case t < lo:
		return cold
	case t <= hi:
		return mid
	default:
		return warm
	}
}

func fabricFit(weight string, t float64) float64 {
	switch weight {
	case wardrobe.FabricLight:
		return band(t, 55, 75, 0.3, 0.7, 1.0)
	case wardrobe.FabricMedium:
		if t >= 55 && t <= 80 {
			return 1.0
		}
		return 0.6
	case wardrobe.FabricHeavy:
		return band(t, 50, 65, 1.0, 0.6, 0.2)
	}
	return 0
}

func sleeveFit(sleeve string, t float64) float64 {
	switch sleeve {
	case wardrobe.SleeveLong:
		return band(t, 65, 80, 0.9, 0.6, 0.3)
	case wardrobe.SleeveShort:
		return band(t, 55, 70, 0.3, 0.6, 0.9)
	case wardrobe.SleeveNone:
		return band(t, 65, 78, 0.2, 0.6, 0.9)
	}
	return 0
}

func accessoryFit(item *wardrobe.ClothingItem, w wardrobe.Weather) float64 {
	t := w.TemperatureF
	switch item.Type {
	case wardrobe.TypeScarf, wardrobe.TypeGloves:
		return band(t, 45, 60, 0.9, 0.5, 0.15)
	case wardrobe.TypeSunglasses:
		if strings.Contains(strings.ToLower(w.Condition), "sun") || strings.Contains(strings.ToLower(w.Condition), "clear") {
			return 0.9
		}
		return band(t, 55, 75, 0.35, 0.55, 0.75)
	case wardrobe.TypeHat:
		if t < 45 || t >= 80 {
			return 0.7
		}
	}
	return outfit.NeutralScore
}

func conditionDelta(item *wardrobe.ClothingItem, condition string) float64 {
	c := strings.ToLower(condition)
	wet := strings.Contains(c, "rain") || strings.Contains(c, "snow") || strings.Contains(c, "storm")
	if !wet {
		return 0
	}
	switch {
	case item.Type == wardrobe.TypeBoots, item.Layer == wardrobe.LayerOuter:
		return 0.1
	case item.Type == wardrobe.TypeSandals, item.Type == wardrobe.TypeFlipFlops, item.Attr().Material == "suede":
		return -0.2
	}
	return 0
}

var _ outfit.Analyzer = (*Weather)(nil)
