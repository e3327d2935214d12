// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package filter

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/stylist/internal/textmatch"
	"github.com/tomtom215/stylist/internal/wardrobe"
)

// Tier identifies which evidence decided a hard-filter verdict.
type Tier int

const (
	TierMetadata Tier = iota + 1
	TierTags
	TierType
	TierKeyword
	TierDefault
)

func (t Tier) String() string {
	switch t {
	case TierMetadata:
		return "metadata"
	case TierTags:
		return "tags"
	case TierType:
		return "type"
	case TierKeyword:
		return "keyword"
	case TierDefault:
		return "default"
	default:
		return "unknown"
	}
}

// Decision is the outcome of evaluating one item.
type Decision struct {
	Allowed bool
	Tier    Tier
	Reason  string
}

// verdict is a tier's answer; undecided passes to the next tier.
type verdict int

const (
	undecided verdict = iota
	allow
	block
)

// HardFilter removes items that are categorically wrong for an occasion.
// It holds only immutable tables after construction and is safe for
// concurrent use.
type HardFilter struct {
	keywords map[Family]*textmatch.Automaton[verdict]
	tags     map[Family]map[string]bool
	logger   zerolog.Logger
}

// NewHardFilter compiles the keyword rule table. A nil rules value uses
// DefaultKeywordRules.
func NewHardFilter(rules KeywordRules, logger zerolog.Logger) *HardFilter {
	if rules == nil {
		rules = DefaultKeywordRules()
	}
	f := &HardFilter{
		keywords: make(map[Family]*textmatch.Automaton[verdict], len(rules)),
		tags:     make(map[Family]map[string]bool, len(Families)),
		logger:   logger.With().Str("component", "hard_filter").Logger(),
	}
	for fam, rule := range rules {
		patterns := make([]textmatch.Pattern[verdict], 0, len(rule.Block)+len(rule.Allow))
		for _, k := range rule.Block {
			patterns = append(patterns, textmatch.Pattern[verdict]{Text: k, Data: block})
		}
		for _, k := range rule.Allow {
			patterns = append(patterns, textmatch.Pattern[verdict]{Text: k, Data: allow})
		}
		f.keywords[fam] = textmatch.New(patterns)
	}
	for _, fam := range Families {
		f.tags[fam] = familyTags(fam)
	}
	return f
}

// Allowed reports whether item may appear in an outfit for the occasion and
// style. Items that skipped the Normalizer are judged by their type's default
// category; attribute values are compared in their normalized form.
func (f *HardFilter) Allowed(item *wardrobe.ClothingItem, occasion, style string) bool {
	return f.Evaluate(item, occasion, style).Allowed
}

// Evaluate runs the tiers in priority order: structured metadata, occasion
// and style tags, item type, then keywords. Undecided items are allowed
// unless the family is strict.
func (f *HardFilter) Evaluate(item *wardrobe.ClothingItem, occasion, style string) Decision {
	fam := FamilyOf(occasion, style)

	if v, reason := metadataVerdict(fam, item); v != undecided {
		return f.decide(item, v, TierMetadata, reason)
	}
	if v, reason := f.tagVerdict(fam, item, occasion); v != undecided {
		return f.decide(item, v, TierTags, reason)
	}
	if v, reason := typeVerdict(fam, item); v != undecided {
		return f.decide(item, v, TierType, reason)
	}
	if v, reason := f.keywordVerdict(fam, item); v != undecided {
		return f.decide(item, v, TierKeyword, reason)
	}
	if fam.Strict() {
		return f.decide(item, block, TierDefault, "no qualifying signal for "+string(fam))
	}
	return f.decide(item, allow, TierDefault, "no blocking signal")
}

func (f *HardFilter) decide(item *wardrobe.ClothingItem, v verdict, tier Tier, reason string) Decision {
	d := Decision{Allowed: v == allow, Tier: tier, Reason: reason}
	if !d.Allowed {
		f.logger.Debug().
			Str("item_id", item.ID).
			Str("tier", tier.String()).
			Str("reason", reason).
			Msg("Item hard-filtered")
	}
	return d
}

// Mask evaluates every item concurrently and returns one verdict per index.
func (f *HardFilter) Mask(items []wardrobe.ClothingItem, occasion, style string) []bool {
	mask := make([]bool, len(items))
	const chunk = 64
	if len(items) <= chunk {
		for i := range items {
			mask[i] = f.Allowed(&items[i], occasion, style)
		}
		return mask
	}

	var wg sync.WaitGroup
	for start := 0; start < len(items); start += chunk {
		end := min(start+chunk, len(items))
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				mask[i] = f.Allowed(&items[i], occasion, style)
			}
		}(start, end)
	}
	wg.Wait()
	return mask
}

var (
	formalLevels   = map[string]bool{"formal": true, "business": true, "semi_formal": true, "black_tie": true, "business_formal": true}
	sportyLevels   = map[string]bool{"athletic": true, "sporty": true, "activewear": true, "athleisure": true}
	loungeLevels   = map[string]bool{"loungewear": true, "lounge": true, "sleepwear": true}
	elasticBands   = map[string]bool{"elastic": true, "drawstring": true}
	dressShoeTypes = map[string]bool{"dress": true, "oxford": true, "derby": true, "brogue": true, "loafer": true, "heel": true, "pump": true, "monk_strap": true}
	sportShoeTypes = map[string]bool{"athletic": true, "sneaker": true, "running": true, "trainer": true, "training": true, "cross_trainer": true}
	lazyShoeTypes  = map[string]bool{"slipper": true, "slide": true, "flip_flop": true}
	formalFabrics  = map[string]bool{"wool": true, "tweed": true, "silk": true, "satin": true, "velvet": true, "cashmere": true}
	techFabrics    = map[string]bool{"spandex": true, "nylon": true, "mesh": true, "polyester": true, "lycra": true, "elastane": true, "dri_fit": true, "jersey": true}
)

func metadataVerdict(fam Family, item *wardrobe.ClothingItem) (verdict, string) {
	if !item.HasMetadata() {
		return undecided, ""
	}
	a := item.Attr()
	category := item.Category
	if category == wardrobe.CategoryUnknown {
		category = item.Type.DefaultCategory()
	}
	isBottom := category == wardrobe.CategoryBottoms

	switch fam {
	case FamilyAthletic:
		switch {
		case formalLevels[a.FormalLevel]:
			return block, "formal level " + a.FormalLevel
		case isBottom && a.WaistbandType == "belt_loops":
			return block, "belt-loop waistband"
		case dressShoeTypes[a.ShoeType]:
			return block, "dress shoe type " + a.ShoeType
		case isBottom && elasticBands[a.WaistbandType]:
			return allow, a.WaistbandType + " waistband"
		case sportShoeTypes[a.ShoeType]:
			return allow, "athletic shoe type " + a.ShoeType
		case sportyLevels[a.FormalLevel]:
			return allow, "formal level " + a.FormalLevel
		case formalFabrics[a.Material]:
			return block, "material " + a.Material
		case techFabrics[a.Material]:
			return allow, "material " + a.Material
		}
	case FamilyBusiness:
		switch {
		case sportyLevels[a.FormalLevel], loungeLevels[a.FormalLevel]:
			return block, "formal level " + a.FormalLevel
		case isBottom && elasticBands[a.WaistbandType]:
			return block, a.WaistbandType + " waistband"
		case sportShoeTypes[a.ShoeType], lazyShoeTypes[a.ShoeType]:
			return block, "shoe type " + a.ShoeType
		case formalLevels[a.FormalLevel]:
			return allow, "formal level " + a.FormalLevel
		case dressShoeTypes[a.ShoeType]:
			return allow, "dress shoe type " + a.ShoeType
		case a.ShoeType == "boot" || a.ShoeType == "chelsea":
			return allow, "shoe type " + a.ShoeType
		}
	case FamilyLoungewear:
		switch {
		case a.FormalLevel == "formal" || a.FormalLevel == "black_tie" || a.FormalLevel == "business":
			return block, "formal level " + a.FormalLevel
		case isBottom && a.WaistbandType == "belt_loops":
			return block, "belt-loop waistband"
		case dressShoeTypes[a.ShoeType]:
			return block, "dress shoe type " + a.ShoeType
		case isBottom && elasticBands[a.WaistbandType]:
			return allow, a.WaistbandType + " waistband"
		case lazyShoeTypes[a.ShoeType], sportShoeTypes[a.ShoeType]:
			return allow, "shoe type " + a.ShoeType
		case loungeLevels[a.FormalLevel]:
			return allow, "formal level " + a.FormalLevel
		}
	case FamilyParty:
		switch {
		case sportyLevels[a.FormalLevel], loungeLevels[a.FormalLevel]:
			return block, "formal level " + a.FormalLevel
		case a.ShoeType == "running" || a.ShoeType == "athletic" || lazyShoeTypes[a.ShoeType]:
			return block, "shoe type " + a.ShoeType
		}
	case FamilyCasual:
		if a.FormalLevel == "black_tie" {
			return block, "formal level black_tie"
		}
	}
	return undecided, ""
}

// conflicting lists families whose exclusive tagging rules an item out.
var conflicting = map[Family][]Family{
	FamilyAthletic:   {FamilyBusiness, FamilyParty},
	FamilyBusiness:   {FamilyAthletic, FamilyLoungewear},
	FamilyLoungewear: {FamilyBusiness},
	FamilyParty:      {FamilyAthletic, FamilyLoungewear},
}

var familyStyles = map[Family]map[string]bool{
	FamilyAthletic:   {"athletic": true, "sporty": true, "athleisure": true, "activewear": true},
	FamilyBusiness:   {"formal": true, "business": true, "tailored": true, "professional": true},
	FamilyLoungewear: {"loungewear": true, "cozy": true, "comfortable": true},
	FamilyParty:      {"glam": true, "party": true, "evening": true},
}

func (f *HardFilter) tagVerdict(fam Family, item *wardrobe.ClothingItem, occasion string) (verdict, string) {
	occ := wardrobe.NormalizeTag(occasion)
	if occ != "" && item.HasOccasion(occ) {
		return allow, "tagged " + occ
	}
	own := f.tags[fam]
	for _, t := range item.Occasion {
		if own[t] {
			return allow, "tagged " + t
		}
	}
	for _, t := range item.Style {
		if familyStyles[fam][t] {
			return allow, "style " + t
		}
	}

	// Block only when every tag points at a conflicting family.
	rivals := conflicting[fam]
	if len(rivals) == 0 || len(item.Occasion)+len(item.Style) == 0 {
		return undecided, ""
	}
	for _, t := range item.Occasion {
		if !inAny(rivals, func(r Family) bool { return f.tags[r][t] }) {
			return undecided, ""
		}
	}
	for _, t := range item.Style {
		if !inAny(rivals, func(r Family) bool { return familyStyles[r][t] }) {
			return undecided, ""
		}
	}
	return block, "tagged only for other occasions"
}

func inAny(fams []Family, pred func(Family) bool) bool {
	for _, f := range fams {
		if pred(f) {
			return true
		}
	}
	return false
}

var typeRules = map[Family]struct {
	allow map[wardrobe.ItemType]bool
	block map[wardrobe.ItemType]bool
}{
	FamilyAthletic: {
		allow: typeSet(wardrobe.TypeTShirt, wardrobe.TypeTankTop, wardrobe.TypeSportsBra,
			wardrobe.TypeAthleticShorts, wardrobe.TypeLeggings, wardrobe.TypeJoggers,
			wardrobe.TypeSweatpants, wardrobe.TypeSneakers, wardrobe.TypeAthleticShoes,
			wardrobe.TypeHoodie, wardrobe.TypeSweatshirt, wardrobe.TypeHat, wardrobe.TypeWatch,
			wardrobe.TypeBag, wardrobe.TypeSunglasses),
		block: typeSet(wardrobe.TypeBlazer, wardrobe.TypeSuit, wardrobe.TypeTuxedo,
			wardrobe.TypeDressShoes, wardrobe.TypeLoafers, wardrobe.TypeHeels, wardrobe.TypeTie,
			wardrobe.TypeShirt, wardrobe.TypeBlouse, wardrobe.TypeJeans, wardrobe.TypeTrousers,
			wardrobe.TypeChinos, wardrobe.TypeDress, wardrobe.TypeSkirt, wardrobe.TypeCoat,
			wardrobe.TypeSweaterVest, wardrobe.TypeCardigan, wardrobe.TypeTurtleneck,
			wardrobe.TypeBoots, wardrobe.TypeJewelry),
	},
	FamilyBusiness: {
		allow: typeSet(wardrobe.TypeShirt, wardrobe.TypeBlouse, wardrobe.TypeTurtleneck,
			wardrobe.TypeSweater, wardrobe.TypeCardigan, wardrobe.TypeSweaterVest,
			wardrobe.TypeBlazer, wardrobe.TypeSuit, wardrobe.TypeTuxedo, wardrobe.TypeCoat,
			wardrobe.TypeTrousers, wardrobe.TypeChinos, wardrobe.TypePants, wardrobe.TypeSkirt,
			wardrobe.TypeDress, wardrobe.TypeDressShoes, wardrobe.TypeLoafers, wardrobe.TypeHeels,
			wardrobe.TypeBoots, wardrobe.TypeBelt, wardrobe.TypeTie, wardrobe.TypeWatch,
			wardrobe.TypeBag, wardrobe.TypeJewelry, wardrobe.TypeScarf, wardrobe.TypePolo),
		block: typeSet(wardrobe.TypeTankTop, wardrobe.TypeSportsBra, wardrobe.TypeHoodie,
			wardrobe.TypeSweatshirt, wardrobe.TypeAthleticShorts, wardrobe.TypeShorts,
			wardrobe.TypeLeggings, wardrobe.TypeJoggers, wardrobe.TypeSweatpants,
			wardrobe.TypeSneakers, wardrobe.TypeAthleticShoes, wardrobe.TypeFlipFlops,
			wardrobe.TypeSlippers, wardrobe.TypeSandals),
	},
	FamilyLoungewear: {
		allow: typeSet(wardrobe.TypeTShirt, wardrobe.TypeTankTop, wardrobe.TypeHoodie,
			wardrobe.TypeSweatshirt, wardrobe.TypeSweatpants, wardrobe.TypeJoggers,
			wardrobe.TypeLeggings, wardrobe.TypeShorts, wardrobe.TypeAthleticShorts,
			wardrobe.TypeSlippers, wardrobe.TypeSneakers, wardrobe.TypeSandals,
			wardrobe.TypeFlipFlops, wardrobe.TypeCardigan, wardrobe.TypeSweater),
		block: typeSet(wardrobe.TypeBlazer, wardrobe.TypeSuit, wardrobe.TypeTuxedo,
			wardrobe.TypeDressShoes, wardrobe.TypeHeels, wardrobe.TypeTie, wardrobe.TypeLoafers),
	},
	FamilyParty: {
		block: typeSet(wardrobe.TypeAthleticShorts, wardrobe.TypeSweatpants, wardrobe.TypeJoggers,
			wardrobe.TypeSportsBra, wardrobe.TypeAthleticShoes, wardrobe.TypeSlippers,
			wardrobe.TypeFlipFlops),
	},
	FamilyCasual: {
		block: typeSet(wardrobe.TypeTuxedo),
	},
}

func typeSet(types ...wardrobe.ItemType) map[wardrobe.ItemType]bool {
	m := make(map[wardrobe.ItemType]bool, len(types))
	for _, t := range types {
		m[t] = true
	}
	return m
}

func typeVerdict(fam Family, item *wardrobe.ClothingItem) (verdict, string) {
	rules := typeRules[fam]
	switch {
	case rules.block[item.Type]:
		return block, "type " + string(item.Type)
	case rules.allow[item.Type]:
		return allow, "type " + string(item.Type)
	}
	return undecided, ""
}

// keywordVerdict picks the longest matching keyword so that specific phrases
// ("tracksuit") override their substrings ("suit"). Equal lengths block.
func (f *HardFilter) keywordVerdict(fam Family, item *wardrobe.ClothingItem) (verdict, string) {
	ac := f.keywords[fam]
	if ac == nil || ac.Len() == 0 {
		return undecided, ""
	}
	var (
		best    verdict
		bestKey string
	)
	for _, m := range ac.Search(item.SearchText()) {
		switch {
		case len(m.Pattern) > len(bestKey):
			best, bestKey = m.Data, m.Pattern
		case len(m.Pattern) == len(bestKey) && m.Data == block:
			best, bestKey = block, m.Pattern
		}
	}
	if bestKey == "" {
		return undecided, ""
	}
	return best, "keyword " + bestKey
}
