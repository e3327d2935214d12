// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package analyzers

import (
	"context"
	"math"

	"github.com/tomtom215/stylist/internal/outfit"
	"github.com/tomtom215/stylist/internal/wardrobe"
)

// Style match scores.
const (
	styleExact      = 1.0
	styleAdjacent   = 0.75
	stylePreference = 0.65
	styleUntagged   = 0.5
	styleMismatch   = 0.3

	colorExcellent = 0.9
	colorGood      = 0.7
	colorAvoid     = 0.3

	styleShare = 0.7
	colorShare = 0.3

	// inPaletteFloor is the least an in-palette item scores while a
	// monochrome palette is active.
	inPaletteFloor = 0.8
)

// styleAdjacency lists styles that read as compatible with each other.
var styleAdjacency = map[string][]string{
	"classic":    {"preppy", "elegant", "minimalist", "business"},
	"preppy":     {"classic", "casual"},
	"elegant":    {"classic", "romantic", "formal", "minimalist"},
	"minimalist": {"classic", "modern", "elegant"},
	"modern":     {"minimalist", "streetwear", "edgy"},
	"casual":     {"streetwear", "sporty", "preppy", "relaxed"},
	"streetwear": {"casual", "edgy", "sporty", "modern"},
	"sporty":     {"casual", "athleisure", "streetwear"},
	"athleisure": {"sporty", "casual"},
	"bohemian":   {"romantic", "vintage"},
	"romantic":   {"bohemian", "elegant", "vintage"},
	"vintage":    {"retro", "bohemian", "romantic"},
	"retro":      {"vintage", "edgy"},
	"edgy":       {"streetwear", "grunge", "modern"},
	"grunge":     {"edgy", "streetwear"},
	"business":   {"classic", "formal"},
	"formal":     {"elegant", "business"},
}

// Adjacent reports whether two normalized styles are neighbors.
func Adjacent(a, b string) bool {
	for _, s := range styleAdjacency[a] {
		if s == b {
			return true
		}
	}
	return false
}

// skinPalette buckets color families per undertone.
type skinPalette struct {
	excellent map[string]bool
	avoid     map[string]bool
}

func families(fams ...string) map[string]bool {
	m := make(map[string]bool, len(fams))
	for _, f := range fams {
		m[f] = true
	}
	return m
}

var skinPalettes = map[string]skinPalette{
	"warm": {
		excellent: families(wardrobe.FamilyOrange, wardrobe.FamilyYellow, wardrobe.FamilyBrown,
			wardrobe.FamilyBeige, wardrobe.FamilyGreen, wardrobe.FamilyRed),
		avoid: families(wardrobe.FamilyPurple, wardrobe.FamilyPink),
	},
	"cool": {
		excellent: families(wardrobe.FamilyBlue, wardrobe.FamilyNavy, wardrobe.FamilyPurple,
			wardrobe.FamilyPink, wardrobe.FamilyGray),
		avoid: families(wardrobe.FamilyOrange, wardrobe.FamilyYellow),
	},
	"neutral": {
		excellent: families(wardrobe.FamilyNavy, wardrobe.FamilyGreen, wardrobe.FamilyRed,
			wardrobe.FamilyBlue, wardrobe.FamilyBeige),
		avoid: families(),
	},
}

var undertoneAliases = map[string]string{
	"warm":    "warm",
	"olive":   "warm",
	"golden":  "warm",
	"tan":     "warm",
	"medium":  "warm",
	"cool":    "cool",
	"fair":    "cool",
	"light":   "cool",
	"pink":    "cool",
	"neutral": "neutral",
	"dark":    "neutral",
	"deep":    "neutral",
}

// StyleProfile scores style match and color theory, and enforces the
// monochrome palette when one is active.
type StyleProfile struct {
	BaseAnalyzer
	offPaletteScore float64
}

// NewStyleProfile creates the style analyzer.
func NewStyleProfile(cfg *outfit.Config) *StyleProfile {
	return &StyleProfile{
		BaseAnalyzer:    NewBaseAnalyzer("style_profile", outfit.DimensionStyleProfile),
		offPaletteScore: cfg.Palette.OffPaletteScore,
	}
}

// Analyze implements outfit.Analyzer.
func (s *StyleProfile) Analyze(ctx context.Context, gc *outfit.GenerationContext, scores outfit.ScoreMap) error {
	palette := gc.Palette
	undertone := undertoneAliases[wardrobe.NormalizeTag(gc.Profile.SkinTone)]

	return forEach(ctx, scores, func(rec *outfit.ScoreRecord) {
		item := rec.Item
		if palette != "" && !wardrobe.InPalette(item, palette) {
			rec.Set(outfit.DimensionStyleProfile, s.offPaletteScore)
			return
		}
		v := styleShare*StyleMatch(item, gc.Style, gc.Profile.StylePreferences) +
			colorShare*ColorMatch(item, undertone)
		if palette != "" {
			v = math.Max(v, inPaletteFloor)
		}
		rec.Set(outfit.DimensionStyleProfile, v)
	})
}

// StyleMatch scores item tags against the requested style and the user's
// preferences.
func StyleMatch(item *wardrobe.ClothingItem, style string, prefs []string) float64 {
	if len(item.Style) == 0 {
		return styleUntagged
	}
	if style != "" && style != "monochrome" {
		if item.HasStyle(style) {
			return styleExact
		}
		for _, t := range item.Style {
			if Adjacent(style, t) {
				return styleAdjacent
			}
		}
	}
	for _, p := range prefs {
		if item.HasStyle(p) {
			return stylePreference
		}
	}
	if style == "" || style == "monochrome" {
		return styleUntagged
	}
	return styleMismatch
}

// ColorMatch scores the item color against the undertone palette.
func ColorMatch(item *wardrobe.ClothingItem, undertone string) float64 {
	p, ok := skinPalettes[undertone]
	if !ok || item.Color == "" {
		return outfit.NeutralScore
	}
	fam := item.ColorFamily()
	switch {
	case p.excellent[fam]:
		return colorExcellent
	case p.avoid[fam]:
		return colorAvoid
	case wardrobe.IsNeutral(item.Color):
		return colorGood
	default:
		return outfit.NeutralScore
	}
}

var _ outfit.Analyzer = (*StyleProfile)(nil)
