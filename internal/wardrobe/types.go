// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package wardrobe

import (
	"strings"
	"time"
)

// Category is the coarse slot an item occupies in an outfit.
type Category string

const (
	CategoryTops        Category = "tops"
	CategoryBottoms     Category = "bottoms"
	CategoryShoes       Category = "shoes"
	CategoryDress       Category = "dress"
	CategoryMidLayer    Category = "mid_layer"
	CategoryOuterwear   Category = "outerwear"
	CategoryAccessories Category = "accessories"
	CategoryUnknown     Category = ""
)

// EssentialCategories lists the categories every complete outfit covers,
// in the order they are reserved.
var EssentialCategories = []Category{CategoryTops, CategoryBottoms, CategoryShoes}

// IsEssential reports whether c is tops, bottoms or shoes.
func (c Category) IsEssential() bool {
	return c == CategoryTops || c == CategoryBottoms || c == CategoryShoes
}

// Layer is a garment's position in the physical stacking order.
type Layer string

const (
	LayerBase  Layer = "base"
	LayerMid   Layer = "mid"
	LayerOuter Layer = "outer"
	LayerNone  Layer = "none"
)

// Rank orders layers from skin outward. LayerNone ranks zero.
func (l Layer) Rank() int {
	switch l {
	case LayerBase:
		return 1
	case LayerMid:
		return 2
	case LayerOuter:
		return 3
	default:
		return 0
	}
}

// TemperatureRange describes the temperatures (°F) an item is suited for.
type TemperatureRange struct {
	MinTemp    float64 `json:"minTemp"`
	MaxTemp    float64 `json:"maxTemp"`
	OptimalMin float64 `json:"optimalMin"`
	OptimalMax float64 `json:"optimalMax"`
}

// Contains reports whether t is within the hard min/max bounds.
func (r TemperatureRange) Contains(t float64) bool {
	return t >= r.MinTemp && t <= r.MaxTemp
}

// Optimal reports whether t is within the optimal bounds.
func (r TemperatureRange) Optimal(t float64) bool {
	return t >= r.OptimalMin && t <= r.OptimalMax
}

// VisualAttributes is the structured metadata attached to an item at intake.
// Every field is optional; string fields are lower-cased by the Normalizer.
type VisualAttributes struct {
	Material      string  `json:"material,omitempty"`
	Fit           string  `json:"fit,omitempty"`
	Pattern       string  `json:"pattern,omitempty"`
	SleeveLength  string  `json:"sleeveLength,omitempty"`
	WaistbandType string  `json:"waistbandType,omitempty"`
	FormalLevel   string  `json:"formalLevel,omitempty"`
	CoreCategory  string  `json:"coreCategory,omitempty"`
	WearLayer     string  `json:"wearLayer,omitempty"`
	WarmthFactor  float64 `json:"warmthFactor,omitempty"`
	FabricWeight  string  `json:"fabricWeight,omitempty"`
	ShoeType      string  `json:"shoeType,omitempty"`

	TemperatureCompatibility *TemperatureRange `json:"temperatureCompatibility,omitempty"`
}

// ClothingItem is a single wardrobe garment or accessory.
type ClothingItem struct {
	ID       string   `json:"id"`
	UserID   string   `json:"userId,omitempty"`
	Type     ItemType `json:"type"`
	Name     string   `json:"name"`
	Color    string   `json:"color"`
	Style    []string `json:"style,omitempty"`
	Occasion []string `json:"occasion,omitempty"`
	Mood     []string `json:"mood,omitempty"`
	Season   []string `json:"season,omitempty"`

	Attributes *VisualAttributes `json:"metadata,omitempty"`

	WearCount     int       `json:"wearCount"`
	IsFavorite    bool      `json:"isFavorite"`
	FavoriteScore float64   `json:"favoriteScore,omitempty"`
	LastWornAt    time.Time `json:"lastWornAt,omitempty"`

	// Derived by the Normalizer.
	Category Category `json:"category,omitempty"`
	Layer    Layer    `json:"layer,omitempty"`
}

// Attr returns the item's attributes, or an empty value when none were
// supplied. The returned value must not be modified.
func (c *ClothingItem) Attr() *VisualAttributes {
	if c.Attributes == nil {
		return &emptyAttributes
	}
	return c.Attributes
}

var emptyAttributes VisualAttributes

// HasMetadata reports whether structured attributes were supplied.
func (c *ClothingItem) HasMetadata() bool {
	return c.Attributes != nil
}

// HasStyle reports whether the item carries the given style tag.
func (c *ClothingItem) HasStyle(style string) bool {
	return containsTag(c.Style, style)
}

// HasOccasion reports whether the item carries the given occasion tag.
func (c *ClothingItem) HasOccasion(occasion string) bool {
	return containsTag(c.Occasion, occasion)
}

// HasMood reports whether the item carries the given mood tag.
func (c *ClothingItem) HasMood(mood string) bool {
	return containsTag(c.Mood, mood)
}

// HasSeason reports whether the item carries the given season tag.
func (c *ClothingItem) HasSeason(season string) bool {
	return containsTag(c.Season, season)
}

// SearchText is the lower-cased text the keyword tier matches against:
// name, type and material.
func (c *ClothingItem) SearchText() string {
	var b strings.Builder
	b.WriteString(strings.ToLower(c.Name))
	b.WriteByte(' ')
	b.WriteString(string(c.Type))
	if c.Attributes != nil && c.Attributes.Material != "" {
		b.WriteByte(' ')
		b.WriteString(c.Attributes.Material)
	}
	return b.String()
}

// IsDress reports whether the item fills both the tops and bottoms slots.
func (c *ClothingItem) IsDress() bool {
	return c.Category == CategoryDress
}

// ColorFamily returns the item's color family.
func (c *ClothingItem) ColorFamily() string {
	return ColorFamily(c.Color)
}

func containsTag(tags []string, tag string) bool {
	if tag == "" {
		return false
	}
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// UserProfile is the body and preference profile used for scoring.
type UserProfile struct {
	BodyType         string   `json:"bodyType,omitempty"`
	HeightCM         float64  `json:"height,omitempty"`
	WeightKG         float64  `json:"weight,omitempty"`
	Gender           string   `json:"gender,omitempty"`
	SkinTone         string   `json:"skinTone,omitempty"`
	StylePreferences []string `json:"stylePreferences,omitempty"`
}

// Weather is the forecast the outfit is generated for.
type Weather struct {
	TemperatureF float64 `json:"temperature"`
	Condition    string  `json:"condition,omitempty"`
}

// DefaultTemperatureF is assumed when a request carries no usable weather.
const DefaultTemperatureF = 70.0

// DefaultWeather returns mild, clear weather.
func DefaultWeather() Weather {
	return Weather{TemperatureF: DefaultTemperatureF, Condition: "clear"}
}

// Season returns the season tag matching the temperature.
func (w Weather) Season() string {
	switch {
	case w.TemperatureF >= 80:
		return "summer"
	case w.TemperatureF >= 60:
		return "spring"
	case w.TemperatureF >= 45:
		return "fall"
	default:
		return "winter"
	}
}

// IDs returns the ids of items in order.
func IDs(items []ClothingItem) []string {
	ids := make([]string, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	return ids
}

// Index builds an id→item lookup.
func Index(items []ClothingItem) map[string]*ClothingItem {
	idx := make(map[string]*ClothingItem, len(items))
	for i := range items {
		idx[items[i].ID] = &items[i]
	}
	return idx
}
