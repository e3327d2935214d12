// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package outfit

import (
	"math/rand"
	"sort"

	"github.com/rs/zerolog"

	"github.com/tomtom215/stylist/internal/filter"
	"github.com/tomtom215/stylist/internal/wardrobe"
)

// Layering selector states, recorded in LayeringResult.States.
const (
	StateReserve     = "reserve_essentials"
	StateFill        = "fill_layers"
	StateSafetyNet   = "safety_net"
	StateLastResort  = "last_resort"
	StatePad         = "pad"
	StateDeduplicate = "deduplicate"
)

// Bounds is the size plan for one outfit.
type Bounds struct {
	Min         int `json:"min"`
	Max         int `json:"max"`
	Target      int `json:"target"`
	ExtraLayers int `json:"extraLayers"`
}

// LayeringResult is the selector's output.
type LayeringResult struct {
	Items      []wardrobe.ClothingItem
	Bounds     Bounds
	DressBased bool

	// States lists the states that changed the selection, in order.
	States []string

	// LastResort holds ids taken from the unfiltered wardrobe and Padded
	// holds ids of emergency pieces. Both carry warnings on the context.
	LastResort []string
	Padded     []string

	// Rejected counts candidates skipped for a forbidden combination.
	Rejected int

	// Short is set when the whole wardrobe could not reach Bounds.Min.
	Short bool
}

// LayeringSelector assembles the final item list from ranked candidates.
type LayeringSelector struct {
	config *Config
	hard   *filter.HardFilter
	logger zerolog.Logger
}

// NewLayeringSelector creates a selector. hard is re-applied in the safety
// net; nil skips that check.
func NewLayeringSelector(cfg *Config, hard *filter.HardFilter, logger zerolog.Logger) *LayeringSelector {
	return &LayeringSelector{
		config: cfg,
		hard:   hard,
		logger: logger.With().Str("component", "layering").Logger(),
	}
}

// Bounds computes the target item count and additional layer count.
// A dress covers two essential slots but does not lower the minimum; the
// difference is made up from layers and accessories.
func (s *LayeringSelector) Bounds(gc *GenerationContext, dressBased bool) Bounds {
	l := s.config.Layering
	b := Bounds{Min: l.MinItems, Max: l.MaxItems}

	temp := gc.Temperature()
	target := 4
	switch gc.Family {
	case filter.FamilyBusiness, filter.FamilyParty:
		target++
	case filter.FamilyAthletic:
		target--
	}
	if gc.StyleIs("minimalist") {
		target--
	}
	if gc.MoodIs("bold") || gc.MoodIs("playful") {
		target++
	}
	switch {
	case temp < 32:
		target += 2
	case temp < 50:
		target++
	case temp >= s.config.Temperature.HotF:
		target--
	}
	b.Target = clampInt(target, b.Min, b.Max)

	extra := 0
	switch {
	case temp < 32:
		extra = 3
	case temp < 45:
		extra = 2
	case temp < 60:
		extra = 1
	}
	if gc.IsFormal() && temp < s.config.Temperature.HotF {
		extra++
	}
	if gc.IsAthletic() {
		extra--
	}
	b.ExtraLayers = clampInt(extra, 0, l.MaxExtraLayers)
	return b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// picked tracks the items chosen so far.
type picked struct {
	items []*wardrobe.ClothingItem
	ids   map[string]bool
}

func (p *picked) has(id string) bool { return p.ids[id] }

func (p *picked) add(item *wardrobe.ClothingItem) {
	p.items = append(p.items, item)
	p.ids[item.ID] = true
}

func (p *picked) count(c wardrobe.Category) int {
	n := 0
	for _, it := range p.items {
		if it.Category == c {
			n++
		}
	}
	return n
}

// needed returns the essential categories still unfilled.
func (p *picked) needed(dressBased bool) []wardrobe.Category {
	want := []wardrobe.Category{wardrobe.CategoryTops, wardrobe.CategoryBottoms, wardrobe.CategoryShoes}
	if dressBased {
		want = []wardrobe.Category{wardrobe.CategoryDress, wardrobe.CategoryShoes}
	}
	var out []wardrobe.Category
	for _, c := range want {
		if p.count(c) == 0 {
			out = append(out, c)
		}
	}
	return out
}

// Select runs the selector's states over the ranked candidates. rng drives
// exploration mixing and must not be shared without locking.
func (s *LayeringSelector) Select(gc *GenerationContext, scores ScoreMap, rng *rand.Rand) LayeringResult {
	l := s.config.Layering
	ranked := scores.Ranked()
	sel := &picked{ids: make(map[string]bool)}
	var res LayeringResult

	if gc.BaseItem != nil {
		sel.add(gc.BaseItem)
	}

	// reserve-essentials
	res.DressBased = s.chooseDress(gc, ranked)
	for _, c := range sel.needed(res.DressBased) {
		if rec := s.best(ranked, c, l.ReserveFloor, sel, &res); rec != nil {
			sel.add(rec.Item)
		}
	}
	res.States = append(res.States, StateReserve)
	res.Bounds = s.Bounds(gc, res.DressBased)

	// fill-layers
	pool := s.explore(ranked, res.Bounds, rng)
	s.fillLayers(gc, pool, sel, &res)
	s.fillAccessories(pool, sel, &res)
	res.States = append(res.States, StateFill)

	// safety-net
	if missing := sel.needed(res.DressBased); len(missing) > 0 {
		for _, c := range missing {
			if rec := s.safetyNet(gc, ranked, c, sel, &res); rec != nil {
				sel.add(rec.Item)
			}
		}
		res.States = append(res.States, StateSafetyNet)
	}

	// last-resort
	if missing := sel.needed(res.DressBased); len(missing) > 0 {
		for _, c := range missing {
			if item := s.lastResort(gc, c, sel); item != nil {
				sel.add(item)
				res.LastResort = append(res.LastResort, item.ID)
				gc.Warn("No %s matched this occasion, so %q was borrowed from your full wardrobe and may not be a perfect fit",
					categoryNoun(c), item.Name)
			}
		}
		res.States = append(res.States, StateLastResort)
	}

	s.pad(gc, ranked, sel, &res)

	items := s.trim(gc, sel.items, res.Bounds.Max)
	items = dedupe(items, gc.BaseItem)
	res.States = append(res.States, StateDeduplicate)

	orderItems(items, gc.BaseItem)
	res.Items = make([]wardrobe.ClothingItem, len(items))
	for i, it := range items {
		res.Items[i] = *it
	}

	if res.Bounds.ExtraLayers > 0 && gc.Temperature() < 50 && !hasCategory(res.Items, wardrobe.CategoryOuterwear) {
		gc.Warn("No outerwear available for %.0f°F; consider adding a coat", gc.Temperature())
	}
	if res.Rejected > 0 {
		s.logger.Debug().Int("rejected", res.Rejected).Msg("Skipped forbidden combinations")
	}
	return res
}

// chooseDress decides whether the outfit is built around a dress.
func (s *LayeringSelector) chooseDress(gc *GenerationContext, ranked []*ScoreRecord) bool {
	if gc.BaseItem != nil {
		switch gc.BaseItem.Category {
		case wardrobe.CategoryDress:
			return true
		case wardrobe.CategoryTops, wardrobe.CategoryBottoms:
			return false
		}
	}
	floor := s.config.Layering.ReserveFloor
	var dress, top, bottom *ScoreRecord
	for _, rec := range ranked {
		if rec.Composite < floor {
			break
		}
		switch rec.Item.Category {
		case wardrobe.CategoryDress:
			if dress == nil {
				dress = rec
			}
		case wardrobe.CategoryTops:
			if top == nil {
				top = rec
			}
		case wardrobe.CategoryBottoms:
			if bottom == nil {
				bottom = rec
			}
		}
	}
	if dress == nil {
		return false
	}
	if gc.BaseItem != nil {
		if _, bad := Forbidden(dress.Item, gc.BaseItem); bad {
			return false
		}
	}
	if top == nil || bottom == nil {
		return true
	}
	return dress.Composite > max(top.Composite, bottom.Composite)
}

// best returns the highest ranked candidate of category c at or above
// floor that does not clash with the selection.
func (s *LayeringSelector) best(ranked []*ScoreRecord, c wardrobe.Category, floor float64, sel *picked, res *LayeringResult) *ScoreRecord {
	for _, rec := range ranked {
		if rec.Composite < floor {
			return nil
		}
		if rec.Item.Category != c || sel.has(rec.Item.ID) {
			continue
		}
		if _, bad := Violation(rec.Item, sel.items); bad {
			res.Rejected++
			continue
		}
		return rec
	}
	return nil
}

// explore returns the fill-walk pool: the leading candidates with a few
// neighbors swapped so close scores do not always resolve the same way.
func (s *LayeringSelector) explore(ranked []*ScoreRecord, b Bounds, rng *rand.Rand) []*ScoreRecord {
	l := s.config.Layering
	size := min(len(ranked), max(b.Max*3, 12))
	pool := make([]*ScoreRecord, size)
	copy(pool, ranked[:size])
	if rng == nil || l.ExplorationRate <= 0 || l.ExplorationWindow <= 0 {
		return pool
	}
	for i := 0; i < len(pool)-1; i++ {
		if rng.Float64() >= l.ExplorationRate {
			continue
		}
		j := i + 1 + rng.Intn(l.ExplorationWindow)
		if j >= len(pool) {
			j = len(pool) - 1
		}
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool
}

func (s *LayeringSelector) fillLayers(gc *GenerationContext, pool []*ScoreRecord, sel *picked, res *LayeringResult) {
	added := sel.count(wardrobe.CategoryMidLayer) + sel.count(wardrobe.CategoryOuterwear)
	for _, rec := range pool {
		if added >= res.Bounds.ExtraLayers || len(sel.items) >= res.Bounds.Max {
			return
		}
		item := rec.Item
		if sel.has(item.ID) || rec.Composite < 0 {
			continue
		}
		if item.Category != wardrobe.CategoryMidLayer && item.Category != wardrobe.CategoryOuterwear {
			continue
		}
		if sel.count(item.Category) > 0 {
			continue
		}
		if _, bad := Violation(item, sel.items); bad {
			res.Rejected++
			continue
		}
		sel.add(item)
		added++
	}
	if added < res.Bounds.ExtraLayers {
		gc.Note("layers_short", res.Bounds.ExtraLayers-added)
	}
}

func (s *LayeringSelector) fillAccessories(pool []*ScoreRecord, sel *picked, res *LayeringResult) {
	for _, rec := range pool {
		if len(sel.items) >= res.Bounds.Target || sel.count(wardrobe.CategoryAccessories) >= s.config.Layering.MaxAccessories {
			return
		}
		item := rec.Item
		if item.Category != wardrobe.CategoryAccessories || sel.has(item.ID) || rec.Composite < 0 {
			continue
		}
		if _, bad := Violation(item, sel.items); bad {
			res.Rejected++
			continue
		}
		sel.add(item)
	}
}

// safetyNet rescans every scored candidate with the relaxed floor,
// re-checking the hard filter.
func (s *LayeringSelector) safetyNet(gc *GenerationContext, ranked []*ScoreRecord, c wardrobe.Category, sel *picked, res *LayeringResult) *ScoreRecord {
	floor := s.config.Layering.SafetyNetFloor
	for _, rec := range ranked {
		if rec.Composite < floor {
			return nil
		}
		if rec.Item.Category != c || sel.has(rec.Item.ID) {
			continue
		}
		if s.hard != nil && !s.hard.Allowed(rec.Item, gc.FilterOccasion, gc.FilterStyle) {
			continue
		}
		if _, bad := Violation(rec.Item, sel.items); bad {
			res.Rejected++
			continue
		}
		return rec
	}
	return nil
}

// lastResort searches the unfiltered wardrobe, preferring items that suit
// the weather, then favorites.
func (s *LayeringSelector) lastResort(gc *GenerationContext, c wardrobe.Category, sel *picked) *wardrobe.ClothingItem {
	var candidates []*wardrobe.ClothingItem
	for i := range gc.Original {
		item := &gc.Original[i]
		if item.Category != c || sel.has(item.ID) {
			continue
		}
		if _, bad := Violation(item, sel.items); bad {
			continue
		}
		candidates = append(candidates, item)
	}
	if len(candidates) == 0 {
		return nil
	}
	temp := gc.Temperature()
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		wa, wb := filter.WeatherAppropriate(a, temp), filter.WeatherAppropriate(b, temp)
		if wa != wb {
			return wa
		}
		if a.IsFavorite != b.IsFavorite {
			return a.IsFavorite
		}
		if a.FavoriteScore != b.FavoriteScore {
			return a.FavoriteScore > b.FavoriteScore
		}
		return a.ID < b.ID
	})
	return candidates[0]
}

// pad fills essentials still missing with emergency pieces, then tops the
// outfit up to Bounds.Min: first from scored candidates, then from the
// unfiltered wardrobe.
func (s *LayeringSelector) pad(gc *GenerationContext, ranked []*ScoreRecord, sel *picked, res *LayeringResult) {
	missing := sel.needed(res.DressBased)
	if res.DressBased && len(missing) > 0 && sel.count(wardrobe.CategoryDress) == 0 {
		// No dress after all; fall back to separates.
		res.DressBased = false
		res.Bounds = s.Bounds(gc, false)
		missing = sel.needed(false)
	}
	for _, c := range missing {
		piece, ok := emergencyPiece(s.config.EmergencyPieces, c)
		if !ok || sel.has(piece.ID) {
			continue
		}
		if _, bad := Violation(&piece, sel.items); bad {
			continue
		}
		p := piece
		sel.add(&p)
		res.Padded = append(res.Padded, p.ID)
		gc.Warn("Your wardrobe has no usable %s; a basic %s was added", categoryNoun(c), p.Name)
	}

	if len(sel.items) >= res.Bounds.Min {
		return
	}
	res.States = append(res.States, StatePad)
	for _, rec := range ranked {
		if len(sel.items) >= res.Bounds.Min {
			return
		}
		if rec.Composite >= 0 && s.fits(rec.Item, sel, res) {
			sel.add(rec.Item)
		}
	}

	var rest []*wardrobe.ClothingItem
	for i := range gc.Original {
		if item := &gc.Original[i]; s.fits(item, sel, res) {
			rest = append(rest, item)
		}
	}
	temp := gc.Temperature()
	sort.SliceStable(rest, func(i, j int) bool {
		a, b := rest[i], rest[j]
		wa, wb := filter.WeatherAppropriate(a, temp), filter.WeatherAppropriate(b, temp)
		if wa != wb {
			return wa
		}
		if ra, rb := padRank[a.Category], padRank[b.Category]; ra != rb {
			return ra < rb
		}
		if a.IsFavorite != b.IsFavorite {
			return a.IsFavorite
		}
		return a.ID < b.ID
	})
	for _, item := range rest {
		if len(sel.items) >= res.Bounds.Min {
			return
		}
		if !s.fits(item, sel, res) {
			continue
		}
		sel.add(item)
		res.LastResort = append(res.LastResort, item.ID)
		gc.Warn("Added %q to complete the outfit", item.Name)
	}

	if len(sel.items) < res.Bounds.Min {
		res.Short = true
		gc.Warn("Only %d pieces could be combined for this outfit; add layers or accessories to complete it", len(sel.items))
	}
}

var padRank = map[wardrobe.Category]int{
	wardrobe.CategoryAccessories: 0,
	wardrobe.CategoryMidLayer:    1,
	wardrobe.CategoryOuterwear:   2,
}

// fits reports whether a non-essential item can join the selection while
// padding.
func (s *LayeringSelector) fits(item *wardrobe.ClothingItem, sel *picked, res *LayeringResult) bool {
	if sel.has(item.ID) || len(sel.items) >= res.Bounds.Max {
		return false
	}
	switch item.Category {
	case wardrobe.CategoryAccessories:
		if sel.count(item.Category) >= s.config.Layering.MaxAccessories {
			return false
		}
	case wardrobe.CategoryMidLayer, wardrobe.CategoryOuterwear:
		if sel.count(item.Category) > 0 {
			return false
		}
	default:
		return false
	}
	_, bad := Violation(item, sel.items)
	return !bad
}

// trim drops accessories, then layers, lowest priority last in the list,
// until the outfit fits max. The base item and essentials stay.
func (s *LayeringSelector) trim(gc *GenerationContext, selected []*wardrobe.ClothingItem, maxItems int) []*wardrobe.ClothingItem {
	items := append([]*wardrobe.ClothingItem(nil), selected...)
	for _, c := range []wardrobe.Category{wardrobe.CategoryAccessories, wardrobe.CategoryOuterwear, wardrobe.CategoryMidLayer} {
		for i := len(items) - 1; i >= 0 && len(items) > maxItems; i-- {
			if items[i].Category != c || gc.IsBase(items[i].ID) {
				continue
			}
			items = append(items[:i], items[i+1:]...)
		}
	}
	return items
}

// dedupe removes repeated ids and guarantees the base item leads once.
func dedupe(items []*wardrobe.ClothingItem, base *wardrobe.ClothingItem) []*wardrobe.ClothingItem {
	seen := make(map[string]bool, len(items))
	out := make([]*wardrobe.ClothingItem, 0, len(items))
	for _, it := range items {
		if seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		out = append(out, it)
	}
	if base != nil && !seen[base.ID] {
		out = append([]*wardrobe.ClothingItem{base}, out...)
	}
	return out
}

var slotOrder = map[wardrobe.Category]int{
	wardrobe.CategoryTops:        0,
	wardrobe.CategoryDress:       0,
	wardrobe.CategoryMidLayer:    1,
	wardrobe.CategoryOuterwear:   2,
	wardrobe.CategoryBottoms:     3,
	wardrobe.CategoryShoes:       4,
	wardrobe.CategoryAccessories: 5,
	wardrobe.CategoryUnknown:     6,
}

// orderItems sorts into dressing order with the base item first.
func orderItems(items []*wardrobe.ClothingItem, base *wardrobe.ClothingItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if base != nil {
			if items[i].ID == base.ID {
				return items[j].ID != base.ID
			}
			if items[j].ID == base.ID {
				return false
			}
		}
		return slotOrder[items[i].Category] < slotOrder[items[j].Category]
	})
}

func hasCategory(items []wardrobe.ClothingItem, c wardrobe.Category) bool {
	for i := range items {
		if items[i].Category == c {
			return true
		}
	}
	return false
}

func categoryNoun(c wardrobe.Category) string {
	switch c {
	case wardrobe.CategoryTops:
		return "top"
	case wardrobe.CategoryBottoms:
		return "bottom"
	case wardrobe.CategoryMidLayer:
		return "mid layer"
	case wardrobe.CategoryUnknown:
		return "item"
	default:
		return string(c)
	}
}
