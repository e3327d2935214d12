// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package outfit

import (
	"github.com/tomtom215/stylist/internal/wardrobe"
)

// strategyFunc returns per-item score adjustments for a strategy. ranked is
// ordered by composite score before any strategy adjustment.
type strategyFunc func(gc *GenerationContext, ranked []*ScoreRecord, cfg *Config) map[string]float64

var strategyFuncs = map[Strategy]strategyFunc{
	StrategyTraditional:      traditional,
	StrategyHighLow:          highLow,
	StrategyLayeringContrast: layeringContrast,
	StrategyStatementPiece:   statementPiece,
	StrategyGraduated:        graduated,
	StrategyMonochrome:       monochrome,
	StrategyColorPop:         colorPop,
	StrategyTexturePlay:      texturePlay,
	StrategyProportions:      proportions,
	StrategyEraBlend:         eraBlend,
}

// ApplyStrategy computes the strategy's adjustments, adds them to the
// records' composite scores and returns them with the strategy metadata.
// Unknown strategies fall back to Traditional.
func ApplyStrategy(s Strategy, gc *GenerationContext, scores ScoreMap, cfg *Config) (map[string]float64, StrategyMetadata) {
	fn, ok := strategyFuncs[s]
	if !ok {
		s, fn = StrategyTraditional, traditional
	}
	adj := fn(gc, scores.Ranked(), cfg)
	for id, delta := range adj {
		if rec, ok := scores[id]; ok {
			rec.StrategyAdjustment += delta
			rec.Composite += delta
		}
	}
	return adj, StrategyMetadata{Name: s, Description: s.Description()}
}

func isMainPiece(item *wardrobe.ClothingItem) bool {
	return item.Category != wardrobe.CategoryAccessories && item.Category != wardrobe.CategoryUnknown
}

func traditional(gc *GenerationContext, ranked []*ScoreRecord, _ *Config) map[string]float64 {
	adj := make(map[string]float64)
	for _, rec := range ranked {
		if gc.Style != "" && rec.Item.HasStyle(gc.Style) {
			adj[rec.Item.ID] += 0.05
		}
		if wardrobe.IsNeutral(rec.Item.Color) {
			adj[rec.Item.ID] += 0.03
		}
	}
	return adj
}

// formality ranks an item from athletic (0) to black tie (5).
func formality(item *wardrobe.ClothingItem) int {
	switch item.Attr().FormalLevel {
	case "athletic", "sporty", "activewear", "loungewear":
		return 0
	case "casual":
		return 1
	case "smart_casual", "business_casual":
		return 2
	case "business", "semi_formal":
		return 3
	case "formal":
		return 4
	case "black_tie":
		return 5
	}
	switch {
	case item.IsTuxedo():
		return 5
	case item.IsBlazer(), item.IsDressShoe(), item.Type == wardrobe.TypeTie:
		return 3
	case item.Type == wardrobe.TypeTrousers, item.Type == wardrobe.TypeBlouse, item.Type == wardrobe.TypeLoafers,
		item.Type == wardrobe.TypeHeels, item.Type == wardrobe.TypeShirt, item.Type == wardrobe.TypeCoat:
		return 2
	case item.IsAthleticShorts(), item.Type == wardrobe.TypeSportsBra, item.Type == wardrobe.TypeSweatpants,
		item.Type == wardrobe.TypeAthleticShoes, item.Type == wardrobe.TypeLeggings, item.Type == wardrobe.TypeJoggers:
		return 0
	}
	return 1
}

// Formality exposes the formality rank for other scoring packages.
func Formality(item *wardrobe.ClothingItem) int {
	return formality(item)
}

func highLow(gc *GenerationContext, ranked []*ScoreRecord, _ *Config) map[string]float64 {
	adj := make(map[string]float64)
	var high, low *ScoreRecord
	for _, rec := range ranked {
		if !isMainPiece(rec.Item) || gc.IsBase(rec.Item.ID) {
			continue
		}
		f := formality(rec.Item)
		if high == nil && f >= 3 {
			high = rec
		}
		if low == nil && f <= 1 && (high == nil || rec.Item.Category != high.Item.Category) {
			low = rec
		}
	}
	if high != nil {
		adj[high.Item.ID] += 0.10
	}
	if low != nil {
		adj[low.Item.ID] += 0.10
	}
	return adj
}

func layeringContrast(gc *GenerationContext, ranked []*ScoreRecord, _ *Config) map[string]float64 {
	adj := make(map[string]float64)
	if gc.Temperature() >= 80 {
		return adj
	}
	var weights = map[string]bool{}
	for _, rec := range ranked {
		if rec.Item.Layer != wardrobe.LayerMid && rec.Item.Layer != wardrobe.LayerOuter {
			continue
		}
		adj[rec.Item.ID] += 0.06
		// Reward a second distinct fabric weight.
		fw := rec.Item.Attr().FabricWeight
		if fw != "" && !weights[fw] {
			weights[fw] = true
			if len(weights) > 1 {
				adj[rec.Item.ID] += 0.04
			}
		}
	}
	return adj
}

func isStatement(item *wardrobe.ClothingItem) bool {
	p := item.Attr().Pattern
	return wardrobe.IsSaturated(item.Color) || (p != "" && p != "solid")
}

func statementPiece(gc *GenerationContext, ranked []*ScoreRecord, _ *Config) map[string]float64 {
	adj := make(map[string]float64)
	var star *ScoreRecord
	for _, rec := range ranked {
		if gc.IsBase(rec.Item.ID) || !isMainPiece(rec.Item) {
			continue
		}
		star = rec
		break
	}
	if star == nil {
		return adj
	}
	adj[star.Item.ID] += 0.20

	// Quiet the other loud high scorers so the star stands alone.
	limit := min(len(ranked), 8)
	for _, rec := range ranked[:limit] {
		if rec == star || gc.IsBase(rec.Item.ID) {
			continue
		}
		if isStatement(rec.Item) {
			adj[rec.Item.ID] -= 0.08
		}
	}
	return adj
}

func graduated(gc *GenerationContext, ranked []*ScoreRecord, _ *Config) map[string]float64 {
	adj := make(map[string]float64)
	var family string
	if gc.BaseItem != nil {
		family = gc.BaseItem.ColorFamily()
	}
	for _, rec := range ranked {
		if family != "" {
			break
		}
		if isMainPiece(rec.Item) {
			family = rec.Item.ColorFamily()
		}
	}
	if family == "" {
		return adj
	}
	for _, rec := range ranked {
		switch {
		case rec.Item.ColorFamily() == family:
			adj[rec.Item.ID] += 0.06
		case wardrobe.IsNeutral(rec.Item.Color):
			adj[rec.Item.ID] += 0.02
		}
	}
	return adj
}

func monochrome(gc *GenerationContext, ranked []*ScoreRecord, cfg *Config) map[string]float64 {
	adj := make(map[string]float64)
	palette := gc.Palette
	if palette == "" {
		items := make([]wardrobe.ClothingItem, 0, len(ranked))
		for _, rec := range ranked {
			items = append(items, *rec.Item)
		}
		ps, ok := wardrobe.PaletteConsensus(items, cfg.Palette.CoverageWeight)
		if !ok {
			return adj
		}
		palette = ps.Family
	}
	for _, rec := range ranked {
		if wardrobe.InPalette(rec.Item, palette) {
			adj[rec.Item.ID] += 0.10
		} else {
			adj[rec.Item.ID] -= 0.20
		}
	}
	return adj
}

func colorPop(gc *GenerationContext, ranked []*ScoreRecord, _ *Config) map[string]float64 {
	adj := make(map[string]float64)
	var pop *ScoreRecord
	if gc.BaseItem != nil && wardrobe.IsSaturated(gc.BaseItem.Color) {
		pop = findRecord(ranked, gc.BaseItem.ID)
	}
	for _, rec := range ranked {
		if pop != nil {
			break
		}
		if isMainPiece(rec.Item) && wardrobe.IsSaturated(rec.Item.Color) {
			pop = rec
		}
	}
	if pop == nil {
		return adj
	}
	popFamily := pop.Item.ColorFamily()
	for _, rec := range ranked {
		switch {
		case rec == pop:
			adj[rec.Item.ID] += 0.15
		case wardrobe.IsNeutral(rec.Item.Color):
			adj[rec.Item.ID] += 0.05
		case wardrobe.IsSaturated(rec.Item.Color) && rec.Item.ColorFamily() != popFamily:
			adj[rec.Item.ID] -= 0.10
		}
	}
	return adj
}

func findRecord(ranked []*ScoreRecord, id string) *ScoreRecord {
	for _, rec := range ranked {
		if rec.Item.ID == id {
			return rec
		}
	}
	return nil
}

func texturePlay(_ *GenerationContext, ranked []*ScoreRecord, _ *Config) map[string]float64 {
	adj := make(map[string]float64)
	materials := make(map[string]bool)
	for _, rec := range ranked {
		m := rec.Item.Attr().Material
		if m == "" || materials[m] || !isMainPiece(rec.Item) {
			continue
		}
		materials[m] = true
		adj[rec.Item.ID] += 0.05
		if len(materials) == 3 {
			break
		}
	}
	return adj
}

var (
	relaxedFits = map[string]bool{"oversized": true, "relaxed": true, "loose": true, "wide_leg": true, "boxy": true, "flowy": true}
	fittedFits  = map[string]bool{"slim": true, "fitted": true, "skinny": true, "tailored": true, "tapered": true}
)

func proportions(_ *GenerationContext, ranked []*ScoreRecord, _ *Config) map[string]float64 {
	adj := make(map[string]float64)
	var relaxedTop, fittedTop, relaxedBottom, fittedBottom *ScoreRecord
	for _, rec := range ranked {
		fit := rec.Item.Attr().Fit
		switch rec.Item.Category {
		case wardrobe.CategoryTops, wardrobe.CategoryMidLayer:
			if relaxedTop == nil && relaxedFits[fit] {
				relaxedTop = rec
			}
			if fittedTop == nil && fittedFits[fit] {
				fittedTop = rec
			}
		case wardrobe.CategoryBottoms:
			if relaxedBottom == nil && relaxedFits[fit] {
				relaxedBottom = rec
			}
			if fittedBottom == nil && fittedFits[fit] {
				fittedBottom = rec
			}
		}
	}
	// Prefer the pairing whose pieces rank higher.
	pairs := [][2]*ScoreRecord{{relaxedTop, fittedBottom}, {fittedTop, relaxedBottom}}
	var best [2]*ScoreRecord
	bestScore := -1.0
	for _, p := range pairs {
		if p[0] == nil || p[1] == nil {
			continue
		}
		if s := p[0].Composite + p[1].Composite; s > bestScore {
			best, bestScore = p, s
		}
	}
	if best[0] != nil {
		adj[best[0].Item.ID] += 0.08
		adj[best[1].Item.ID] += 0.08
	}
	return adj
}

var (
	vintageTags = map[string]bool{"vintage": true, "retro": true, "70s": true, "80s": true, "90s": true, "y2k": true, "heritage": true}
	modernTags  = map[string]bool{"modern": true, "contemporary": true, "minimalist": true, "streetwear": true}
)

func eraBlend(_ *GenerationContext, ranked []*ScoreRecord, _ *Config) map[string]float64 {
	adj := make(map[string]float64)
	for _, rec := range ranked {
		for _, s := range rec.Item.Style {
			switch {
			case vintageTags[s]:
				adj[rec.Item.ID] += 0.08
			case modernTags[s]:
				adj[rec.Item.ID] += 0.04
			default:
				continue
			}
			break
		}
	}
	return adj
}
