// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package wardrobe

import "strings"

// ItemType is the enumerated garment kind.
type ItemType string

// Known garment kinds. Unrecognized types are kept verbatim (lower-cased) and
// categorized by keyword.
const (
	TypeTShirt         ItemType = "t-shirt"
	TypeShirt          ItemType = "shirt"
	TypeBlouse         ItemType = "blouse"
	TypePolo           ItemType = "polo"
	TypeTankTop        ItemType = "tank-top"
	TypeSportsBra      ItemType = "sports-bra"
	TypeTurtleneck     ItemType = "turtleneck"
	TypeSweater        ItemType = "sweater"
	TypeSweaterVest    ItemType = "sweater-vest"
	TypeCardigan       ItemType = "cardigan"
	TypeHoodie         ItemType = "hoodie"
	TypeSweatshirt     ItemType = "sweatshirt"
	TypeOvershirt      ItemType = "overshirt"
	TypeVest           ItemType = "vest"
	TypeJacket         ItemType = "jacket"
	TypeBlazer         ItemType = "blazer"
	TypeCoat           ItemType = "coat"
	TypeParka          ItemType = "parka"
	TypeTuxedo         ItemType = "tuxedo"
	TypeSuit           ItemType = "suit"
	TypeJeans          ItemType = "jeans"
	TypePants          ItemType = "pants"
	TypeTrousers       ItemType = "trousers"
	TypeChinos         ItemType = "chinos"
	TypeShorts         ItemType = "shorts"
	TypeAthleticShorts ItemType = "athletic-shorts"
	TypeSkirt          ItemType = "skirt"
	TypeLeggings       ItemType = "leggings"
	TypeJoggers        ItemType = "joggers"
	TypeSweatpants     ItemType = "sweatpants"
	TypeDress          ItemType = "dress"
	TypeJumpsuit       ItemType = "jumpsuit"
	TypeSneakers       ItemType = "sneakers"
	TypeAthleticShoes  ItemType = "athletic-shoes"
	TypeDressShoes     ItemType = "dress-shoes"
	TypeLoafers        ItemType = "loafers"
	TypeBoots          ItemType = "boots"
	TypeHeels          ItemType = "heels"
	TypeSandals        ItemType = "sandals"
	TypeFlipFlops      ItemType = "flip-flops"
	TypeSlippers       ItemType = "slippers"
	TypeBelt           ItemType = "belt"
	TypeHat            ItemType = "hat"
	TypeScarf          ItemType = "scarf"
	TypeGloves         ItemType = "gloves"
	TypeSunglasses     ItemType = "sunglasses"
	TypeWatch          ItemType = "watch"
	TypeBag            ItemType = "bag"
	TypeJewelry        ItemType = "jewelry"
	TypeTie            ItemType = "tie"
)

type typeInfo struct {
	category Category
	layer    Layer
}

var typeTable = map[ItemType]typeInfo{
	TypeTShirt:         {CategoryTops, LayerBase},
	TypeShirt:          {CategoryTops, LayerBase},
	TypeBlouse:         {CategoryTops, LayerBase},
	TypePolo:           {CategoryTops, LayerBase},
	TypeTankTop:        {CategoryTops, LayerBase},
	TypeSportsBra:      {CategoryTops, LayerBase},
	TypeTurtleneck:     {CategoryTops, LayerBase},
	TypeSweater:        {CategoryMidLayer, LayerMid},
	TypeSweaterVest:    {CategoryMidLayer, LayerMid},
	TypeCardigan:       {CategoryMidLayer, LayerMid},
	TypeHoodie:         {CategoryMidLayer, LayerMid},
	TypeSweatshirt:     {CategoryMidLayer, LayerMid},
	TypeOvershirt:      {CategoryMidLayer, LayerMid},
	TypeVest:           {CategoryMidLayer, LayerMid},
	TypeJacket:         {CategoryOuterwear, LayerOuter},
	TypeBlazer:         {CategoryOuterwear, LayerOuter},
	TypeCoat:           {CategoryOuterwear, LayerOuter},
	TypeParka:          {CategoryOuterwear, LayerOuter},
	TypeTuxedo:         {CategoryOuterwear, LayerOuter},
	TypeSuit:           {CategoryOuterwear, LayerOuter},
	TypeJeans:          {CategoryBottoms, LayerNone},
	TypePants:          {CategoryBottoms, LayerNone},
	TypeTrousers:       {CategoryBottoms, LayerNone},
	TypeChinos:         {CategoryBottoms, LayerNone},
	TypeShorts:         {CategoryBottoms, LayerNone},
	TypeAthleticShorts: {CategoryBottoms, LayerNone},
	TypeSkirt:          {CategoryBottoms, LayerNone},
	TypeLeggings:       {CategoryBottoms, LayerNone},
	TypeJoggers:        {CategoryBottoms, LayerNone},
	TypeSweatpants:     {CategoryBottoms, LayerNone},
	TypeDress:          {CategoryDress, LayerBase},
	TypeJumpsuit:       {CategoryDress, LayerBase},
	TypeSneakers:       {CategoryShoes, LayerNone},
	TypeAthleticShoes:  {CategoryShoes, LayerNone},
	TypeDressShoes:     {CategoryShoes, LayerNone},
	TypeLoafers:        {CategoryShoes, LayerNone},
	TypeBoots:          {CategoryShoes, LayerNone},
	TypeHeels:          {CategoryShoes, LayerNone},
	TypeSandals:        {CategoryShoes, LayerNone},
	TypeFlipFlops:      {CategoryShoes, LayerNone},
	TypeSlippers:       {CategoryShoes, LayerNone},
	TypeBelt:           {CategoryAccessories, LayerNone},
	TypeHat:            {CategoryAccessories, LayerNone},
	TypeScarf:          {CategoryAccessories, LayerNone},
	TypeGloves:         {CategoryAccessories, LayerNone},
	TypeSunglasses:     {CategoryAccessories, LayerNone},
	TypeWatch:          {CategoryAccessories, LayerNone},
	TypeBag:            {CategoryAccessories, LayerNone},
	TypeJewelry:        {CategoryAccessories, LayerNone},
	TypeTie:            {CategoryAccessories, LayerNone},
}

// typeAliases maps common spellings onto known kinds.
var typeAliases = map[string]ItemType{
	"tee":             TypeTShirt,
	"tshirt":          TypeTShirt,
	"t shirt":         TypeTShirt,
	"top":             TypeTShirt,
	"button-down":     TypeShirt,
	"button-up":       TypeShirt,
	"dress-shirt":     TypeShirt,
	"oxford-shirt":    TypeShirt,
	"flannel":         TypeOvershirt,
	"tank":            TypeTankTop,
	"camisole":        TypeTankTop,
	"jumper":          TypeSweater,
	"pullover":        TypeSweater,
	"knit":            TypeSweater,
	"fleece":          TypeSweatshirt,
	"trouser":         TypeTrousers,
	"slacks":          TypeTrousers,
	"khakis":          TypeChinos,
	"denim":           TypeJeans,
	"gym-shorts":      TypeAthleticShorts,
	"running-shorts":  TypeAthleticShorts,
	"track-pants":     TypeJoggers,
	"tights":          TypeLeggings,
	"gown":            TypeDress,
	"romper":          TypeJumpsuit,
	"trainers":        TypeSneakers,
	"running-shoes":   TypeAthleticShoes,
	"oxfords":         TypeDressShoes,
	"oxford-shoes":    TypeDressShoes,
	"brogues":         TypeDressShoes,
	"pumps":           TypeHeels,
	"flip-flop":       TypeFlipFlops,
	"sneaker":         TypeSneakers,
	"boot":            TypeBoots,
	"sandal":          TypeSandals,
	"loafer":          TypeLoafers,
	"overcoat":        TypeCoat,
	"trench":          TypeCoat,
	"puffer":          TypeParka,
	"windbreaker":     TypeJacket,
	"tux":             TypeTuxedo,
	"cap":             TypeHat,
	"beanie":          TypeHat,
	"necklace":        TypeJewelry,
	"bracelet":        TypeJewelry,
	"earrings":        TypeJewelry,
	"handbag":         TypeBag,
	"purse":           TypeBag,
	"backpack":        TypeBag,
	"shades":          TypeSunglasses,
	"glasses":         TypeSunglasses,
	"bow-tie":         TypeTie,
	"mittens":         TypeGloves,
	"sweat-pants":     TypeSweatpants,
	"workout-shorts":  TypeAthleticShorts,
	"athletic-shoe":   TypeAthleticShoes,
	"dress-shoe":      TypeDressShoes,
	"jean":            TypeJeans,
	"legging":         TypeLeggings,
	"jogger":          TypeJoggers,
	"sport-bra":       TypeSportsBra,
	"sleeveless-top":  TypeTankTop,
	"turtle-neck":     TypeTurtleneck,
	"mock-neck":       TypeTurtleneck,
}

// categoryKeywords categorizes unknown types by substring, checked in order.
var categoryKeywords = []struct {
	keyword  string
	category Category
}{
	{"shoe", CategoryShoes},
	{"boot", CategoryShoes},
	{"sneaker", CategoryShoes},
	{"pant", CategoryBottoms},
	{"short", CategoryBottoms},
	{"skirt", CategoryBottoms},
	{"dress", CategoryDress},
	{"coat", CategoryOuterwear},
	{"jacket", CategoryOuterwear},
	{"sweater", CategoryMidLayer},
	{"cardigan", CategoryMidLayer},
	{"shirt", CategoryTops},
	{"top", CategoryTops},
	{"blouse", CategoryTops},
}

// ParseItemType maps free-form text onto an ItemType.
func ParseItemType(raw string) ItemType {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer("_", "-", " ", "-").Replace(s)
	if s == "" {
		return ""
	}
	if _, ok := typeTable[ItemType(s)]; ok {
		return ItemType(s)
	}
	if alias, ok := typeAliases[s]; ok {
		return alias
	}
	if alias, ok := typeAliases[strings.ReplaceAll(s, "-", " ")]; ok {
		return alias
	}
	// Plural forms ("blazers", "sweaters").
	if trimmed := strings.TrimSuffix(s, "s"); trimmed != s {
		if _, ok := typeTable[ItemType(trimmed)]; ok {
			return ItemType(trimmed)
		}
	}
	return ItemType(s)
}

// Known reports whether t is one of the enumerated kinds.
func (t ItemType) Known() bool {
	_, ok := typeTable[t]
	return ok
}

// DefaultCategory returns the category implied by the type alone.
func (t ItemType) DefaultCategory() Category {
	if info, ok := typeTable[t]; ok {
		return info.category
	}
	s := string(t)
	for _, kw := range categoryKeywords {
		if strings.Contains(s, kw.keyword) {
			return kw.category
		}
	}
	return CategoryUnknown
}

// DefaultLayer returns the layer implied by the type alone.
func (t ItemType) DefaultLayer() Layer {
	if info, ok := typeTable[t]; ok {
		return info.layer
	}
	switch t.DefaultCategory() {
	case CategoryTops, CategoryDress:
		return LayerBase
	case CategoryMidLayer:
		return LayerMid
	case CategoryOuterwear:
		return LayerOuter
	default:
		return LayerNone
	}
}

// Garment predicates used by the rule tables. They consult type first and
// fall back to the item name for untyped imports.

// IsShirtLike reports whether the item is worn as a shirt (including tanks).
func (c *ClothingItem) IsShirtLike() bool {
	switch c.Type {
	case TypeTShirt, TypeShirt, TypeBlouse, TypePolo, TypeTankTop, TypeOvershirt:
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), "shirt")
}

// IsTank reports whether the item is a tank or other sleeveless base layer.
func (c *ClothingItem) IsTank() bool {
	if c.Type == TypeTankTop || c.Type == TypeSportsBra {
		return true
	}
	name := strings.ToLower(c.Name)
	return strings.Contains(name, "tank") || strings.Contains(name, "camisole")
}

// IsCollared reports whether the item is a collared shirt.
func (c *ClothingItem) IsCollared() bool {
	if c.Type == TypeShirt || c.Type == TypePolo {
		return true
	}
	name := strings.ToLower(c.Name)
	return strings.Contains(name, "collar") || strings.Contains(name, "button-down") ||
		strings.Contains(name, "button down") || strings.Contains(name, "oxford shirt")
}

// IsTurtleneck reports whether the item has a turtle or mock neck.
func (c *ClothingItem) IsTurtleneck() bool {
	if c.Type == TypeTurtleneck {
		return true
	}
	name := strings.ToLower(c.Name)
	return strings.Contains(name, "turtleneck") || strings.Contains(name, "mock neck")
}

// IsShorts reports whether the item is any kind of shorts.
func (c *ClothingItem) IsShorts() bool {
	if c.Type == TypeShorts || c.Type == TypeAthleticShorts {
		return true
	}
	return c.Category == CategoryBottoms && strings.Contains(strings.ToLower(c.Name), "shorts")
}

// IsAthleticShorts reports whether the item is gym or running shorts.
func (c *ClothingItem) IsAthleticShorts() bool {
	if c.Type == TypeAthleticShorts {
		return true
	}
	if !c.IsShorts() {
		return false
	}
	name := strings.ToLower(c.Name)
	w := c.Attr().WaistbandType
	return strings.Contains(name, "athletic") || strings.Contains(name, "gym") ||
		strings.Contains(name, "running") || w == "elastic" || w == "drawstring"
}

// IsBlazer reports whether the item is a blazer or suit jacket.
func (c *ClothingItem) IsBlazer() bool {
	if c.Type == TypeBlazer || c.Type == TypeSuit {
		return true
	}
	name := strings.ToLower(c.Name)
	return strings.Contains(name, "blazer") || strings.Contains(name, "suit jacket")
}

// IsTuxedo reports whether the item is a tuxedo.
func (c *ClothingItem) IsTuxedo() bool {
	return c.Type == TypeTuxedo || strings.Contains(strings.ToLower(c.Name), "tuxedo")
}

// IsSneaker reports whether the item is a sneaker or athletic shoe.
func (c *ClothingItem) IsSneaker() bool {
	if c.Type == TypeSneakers || c.Type == TypeAthleticShoes {
		return true
	}
	if c.Category != CategoryShoes {
		return false
	}
	st := c.Attr().ShoeType
	return st == "sneaker" || st == "athletic" || st == "running" || st == "trainer" ||
		strings.Contains(strings.ToLower(c.Name), "sneaker")
}

// IsDressShoe reports whether the item is a formal shoe.
func (c *ClothingItem) IsDressShoe() bool {
	if c.Type == TypeDressShoes {
		return true
	}
	if c.Category != CategoryShoes {
		return false
	}
	st := c.Attr().ShoeType
	name := strings.ToLower(c.Name)
	return st == "dress" || st == "oxford" || st == "derby" ||
		strings.Contains(name, "oxford") || strings.Contains(name, "dress shoe")
}

// IsSweater reports whether the item is a knit sweater of any cut.
func (c *ClothingItem) IsSweater() bool {
	switch c.Type {
	case TypeSweater, TypeSweaterVest, TypeCardigan:
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), "sweater")
}

// IsSweaterVest reports whether the item is a sleeveless sweater.
func (c *ClothingItem) IsSweaterVest() bool {
	return c.Type == TypeSweaterVest || strings.Contains(strings.ToLower(c.Name), "sweater vest")
}

// Sleeve returns the normalized sleeve length, inferring from type when the
// attribute is missing.
func (c *ClothingItem) Sleeve() string {
	if s := c.Attr().SleeveLength; s != "" {
		return s
	}
	switch c.Type {
	case TypeTankTop, TypeSportsBra, TypeSweaterVest, TypeVest:
		return SleeveNone
	case TypeTShirt, TypePolo:
		return SleeveShort
	case TypeShirt, TypeTurtleneck, TypeSweater, TypeCardigan, TypeHoodie, TypeSweatshirt:
		return SleeveLong
	}
	name := strings.ToLower(c.Name)
	switch {
	case strings.Contains(name, "sleeveless"):
		return SleeveNone
	case strings.Contains(name, "short sleeve"), strings.Contains(name, "short-sleeve"):
		return SleeveShort
	case strings.Contains(name, "long sleeve"), strings.Contains(name, "long-sleeve"):
		return SleeveLong
	}
	return ""
}

// Sleeve lengths.
const (
	SleeveNone  = "sleeveless"
	SleeveShort = "short"
	SleeveLong  = "long"
)
