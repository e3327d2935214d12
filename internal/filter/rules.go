// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package filter

import "github.com/tomtom215/stylist/internal/wardrobe"

// Family groups occasions that share hard constraints.
type Family string

const (
	FamilyAthletic   Family = "athletic"
	FamilyBusiness   Family = "business"
	FamilyLoungewear Family = "loungewear"
	FamilyParty      Family = "party"
	FamilyCasual     Family = "casual"
)

// Families lists every family in a stable order.
var Families = []Family{FamilyAthletic, FamilyBusiness, FamilyLoungewear, FamilyParty, FamilyCasual}

// Strict reports whether undecided items are blocked for this family.
func (f Family) Strict() bool {
	return f == FamilyAthletic || f == FamilyBusiness
}

var occasionFamilies = map[string]Family{
	"gym":             FamilyAthletic,
	"workout":         FamilyAthletic,
	"athletic":        FamilyAthletic,
	"sport":           FamilyAthletic,
	"sports":          FamilyAthletic,
	"running":         FamilyAthletic,
	"yoga":            FamilyAthletic,
	"exercise":        FamilyAthletic,
	"training":        FamilyAthletic,
	"hiking":          FamilyAthletic,
	"business":        FamilyBusiness,
	"business-casual": FamilyBusiness,
	"smart-casual":    FamilyBusiness,
	"work":            FamilyBusiness,
	"office":          FamilyBusiness,
	"interview":       FamilyBusiness,
	"meeting":         FamilyBusiness,
	"formal":          FamilyBusiness,
	"black-tie":       FamilyBusiness,
	"wedding":         FamilyBusiness,
	"gala":            FamilyBusiness,
	"funeral":         FamilyBusiness,
	"loungewear":      FamilyLoungewear,
	"lounge":          FamilyLoungewear,
	"home":            FamilyLoungewear,
	"relaxing":        FamilyLoungewear,
	"sleep":           FamilyLoungewear,
	"wfh":             FamilyLoungewear,
	"party":           FamilyParty,
	"date":            FamilyParty,
	"date-night":      FamilyParty,
	"night-out":       FamilyParty,
	"club":            FamilyParty,
	"cocktail":        FamilyParty,
	"concert":         FamilyParty,
	"celebration":     FamilyParty,
	"casual":          FamilyCasual,
	"everyday":        FamilyCasual,
	"weekend":         FamilyCasual,
	"brunch":          FamilyCasual,
	"errands":         FamilyCasual,
	"travel":          FamilyCasual,
}

var styleFamilies = map[string]Family{
	"athletic":   FamilyAthletic,
	"sporty":     FamilyAthletic,
	"athleisure": FamilyAthletic,
	"formal":     FamilyBusiness,
	"business":   FamilyBusiness,
	"loungewear": FamilyLoungewear,
}

// FamilyOf classifies a request. The occasion decides; the style is only
// consulted when the occasion is casual or unknown.
func FamilyOf(occasion, style string) Family {
	if f, ok := occasionFamilies[wardrobe.NormalizeTag(occasion)]; ok {
		return f
	}
	if f, ok := styleFamilies[wardrobe.NormalizeTag(style)]; ok {
		return f
	}
	return FamilyCasual
}

// IsAthletic reports whether the occasion belongs to the athletic family.
func IsAthletic(occasion string) bool {
	return occasionFamilies[wardrobe.NormalizeTag(occasion)] == FamilyAthletic
}

// IsFormal reports whether the occasion belongs to the business family.
func IsFormal(occasion string) bool {
	return occasionFamilies[wardrobe.NormalizeTag(occasion)] == FamilyBusiness
}

// familyTags returns the occasion tags that belong to f.
func familyTags(f Family) map[string]bool {
	tags := make(map[string]bool)
	for tag, fam := range occasionFamilies {
		if fam == f {
			tags[tag] = true
		}
	}
	return tags
}

// KeywordRule is the last-resort substring rule set for one family.
type KeywordRule struct {
	Block []string `json:"block" yaml:"block" koanf:"block"`
	Allow []string `json:"allow" yaml:"allow" koanf:"allow"`
}

// KeywordRules maps each family to its keyword lists.
type KeywordRules map[Family]KeywordRule

// Clone returns a deep copy.
func (r KeywordRules) Clone() KeywordRules {
	out := make(KeywordRules, len(r))
	for f, rule := range r {
		out[f] = KeywordRule{
			Block: append([]string(nil), rule.Block...),
			Allow: append([]string(nil), rule.Allow...),
		}
	}
	return out
}

// Merge returns a copy of r with other's families replacing r's.
func (r KeywordRules) Merge(other KeywordRules) KeywordRules {
	out := r.Clone()
	for f, rule := range other {
		out[f] = KeywordRule{
			Block: append([]string(nil), rule.Block...),
			Allow: append([]string(nil), rule.Allow...),
		}
	}
	return out
}

// DefaultKeywordRules returns the built-in keyword table.
func DefaultKeywordRules() KeywordRules {
	return KeywordRules{
		FamilyAthletic: {
			Block: []string{
				"oxford", "polo", "blazer", "suit", "tuxedo", "dress shirt", "button-down",
				"button down", "loafer", "heel", "pump", "stiletto", "wool", "tweed", "silk",
				"satin", "velvet", "cashmere", "chino", "denim", "jean", "trouser", "slacks",
				"khaki", "necktie", "bow tie", "cufflink", "sequin", "leather", "pencil skirt",
				"cardigan", "turtleneck",
			},
			Allow: []string{
				"athletic", "gym", "running", "workout", "training", "sport", "yoga",
				"performance", "moisture", "compression", "dri-fit", "jogger", "legging",
				"track", "tracksuit", "sweatsuit", "mesh", "spandex", "lycra", "sneaker",
				"trainer", "tank", "sweatpant", "hoodie",
			},
		},
		FamilyBusiness: {
			Block: []string{
				"hoodie", "sweatpant", "jogger", "legging", "athletic", "gym", "running",
				"sneaker", "trainer", "flip flop", "flip-flop", "slide", "tank", "graphic tee",
				"crop", "ripped", "distressed", "cargo", "jersey", "sport", "pajama",
				"slipper", "swim",
			},
			Allow: []string{
				"blazer", "suit", "oxford", "loafer", "trouser", "slacks", "dress shirt",
				"button-down", "button down", "pencil skirt", "tailored", "wool", "necktie",
				"pump", "derby", "brogue", "cardigan", "turtleneck", "chino", "blouse",
				"sheath", "silk", "cashmere", "pleated",
			},
		},
		FamilyLoungewear: {
			Block: []string{
				"blazer", "suit", "tuxedo", "oxford shoe", "heel", "stiletto", "necktie",
				"sequin", "dress shoe", "loafer", "pencil skirt", "tailored",
			},
			Allow: []string{
				"lounge", "sweat", "jogger", "hoodie", "pajama", "slipper", "fleece",
				"cozy", "knit", "robe", "legging", "tracksuit",
			},
		},
		FamilyParty: {
			Block: []string{
				"gym", "workout", "sweatpant", "jogger", "pajama", "slipper", "running",
				"athletic", "hiking", "flip flop", "flip-flop", "compression",
			},
			Allow: []string{
				"sequin", "satin", "silk", "velvet", "cocktail", "party", "going out",
				"leather", "heel", "sparkle", "metallic",
			},
		},
		FamilyCasual: {
			Block: []string{"tuxedo", "ball gown", "black tie", "tailcoat"},
		},
	}
}
