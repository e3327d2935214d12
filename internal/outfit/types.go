// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package outfit

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/stylist/internal/filter"
	"github.com/tomtom215/stylist/internal/wardrobe"
)

// Dimension identifies one of the six scoring dimensions.
type Dimension int

const (
	DimensionBodyType Dimension = iota
	DimensionStyleProfile
	DimensionWeather
	DimensionUserFeedback
	DimensionCompatibility
	DimensionDiversity

	numDimensions
)

// Dimensions lists every dimension in index order.
var Dimensions = [numDimensions]Dimension{
	DimensionBodyType,
	DimensionStyleProfile,
	DimensionWeather,
	DimensionUserFeedback,
	DimensionCompatibility,
	DimensionDiversity,
}

func (d Dimension) String() string {
	switch d {
	case DimensionBodyType:
		return "body_type"
	case DimensionStyleProfile:
		return "style_profile"
	case DimensionWeather:
		return "weather"
	case DimensionUserFeedback:
		return "user_feedback"
	case DimensionCompatibility:
		return "compatibility"
	case DimensionDiversity:
		return "diversity"
	default:
		return fmt.Sprintf("dimension(%d)", int(d))
	}
}

// Valid reports whether d is a known dimension.
func (d Dimension) Valid() bool {
	return d >= 0 && d < numDimensions
}

// NeutralScore is written when a dimension cannot be computed.
const NeutralScore = 0.5

// ScoreRecord holds every score for one candidate item in one request.
type ScoreRecord struct {
	Item *wardrobe.ClothingItem

	// Scores is indexed by Dimension. Each analyzer writes only its own
	// index, so concurrent analyzers never touch the same memory.
	// Diversity may be negative when the item was already shown in the
	// current session.
	Scores [numDimensions]float64

	BaseScore          float64 // weighted sum of the subscores
	SoftAdjustment     float64
	SessionPenalty     float64
	ConflictPenalty    float64
	StrategyAdjustment float64
	Composite          float64
}

// Score returns the subscore for d.
func (r *ScoreRecord) Score(d Dimension) float64 {
	return r.Scores[d]
}

// Set stores the subscore for d. Values are clamped to [0, 1], or [-1, 1]
// for diversity.
func (r *ScoreRecord) Set(d Dimension, v float64) {
	lo := 0.0
	if d == DimensionDiversity {
		lo = -1
	}
	r.Scores[d] = clamp(v, lo, 1)
}

// ScoreMap maps item id to its record. Keys are fixed before analyzers run.
type ScoreMap map[string]*ScoreRecord

// NewScoreMap creates one record per item with every subscore neutral.
// The records point into items, which must outlive the map.
func NewScoreMap(items []wardrobe.ClothingItem) ScoreMap {
	m := make(ScoreMap, len(items))
	for i := range items {
		rec := &ScoreRecord{Item: &items[i]}
		for _, d := range Dimensions {
			rec.Scores[d] = NeutralScore
		}
		m[items[i].ID] = rec
	}
	return m
}

// Reset sets d back to neutral for every record.
func (m ScoreMap) Reset(d Dimension) {
	for _, rec := range m {
		rec.Scores[d] = NeutralScore
	}
}

// Ranked returns the records ordered by composite score, highest first.
// Ties break on item id so the order is deterministic.
func (m ScoreMap) Ranked() []*ScoreRecord {
	out := make([]*ScoreRecord, 0, len(m))
	for _, rec := range m {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Composite != out[j].Composite {
			return out[i].Composite > out[j].Composite
		}
		return out[i].Item.ID < out[j].Item.ID
	})
	return out
}

// Items returns the scored items in a stable id order.
func (m ScoreMap) Items() []*wardrobe.ClothingItem {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	items := make([]*wardrobe.ClothingItem, len(ids))
	for i, id := range ids {
		items[i] = m[id].Item
	}
	return items
}

// Request is the caller's input to Engine.Generate.
type Request struct {
	UserID     string `json:"userId" validate:"required"`
	SessionID  string `json:"sessionId,omitempty"`
	Occasion   string `json:"occasion,omitempty"`
	Style      string `json:"style,omitempty"`
	Mood       string `json:"mood,omitempty"`
	BaseItemID string `json:"baseItemId,omitempty"`

	// Weather and Profile override the stored values when set.
	Weather *wardrobe.Weather     `json:"weather,omitempty"`
	Profile *wardrobe.UserProfile `json:"profile,omitempty"`

	// Wardrobe, when non-nil, is used instead of loading from the source.
	Wardrobe []wardrobe.ClothingItem `json:"wardrobe,omitempty"`

	// Warnings carries notices produced while decoding the request.
	Warnings []string `json:"-"`
}

// GenerationContext is the per-request working state. It is built once by
// the engine, narrowed in place by the filtering phases, and discarded
// after the call. Analyzers must treat it as read-only.
type GenerationContext struct {
	UserID    string
	SessionID string
	Occasion  string
	Style     string
	Mood      string
	Weather   wardrobe.Weather
	Profile   wardrobe.UserProfile

	// Wardrobe is the candidate set; Original is the normalized wardrobe
	// before any filtering.
	Wardrobe []wardrobe.ClothingItem
	Original []wardrobe.ClothingItem

	BaseItemID string
	BaseItem   *wardrobe.ClothingItem

	// FilterOccasion and FilterStyle are what the candidate set was hard
	// filtered with. They are blank when a fallback tier relaxed them.
	FilterOccasion string
	FilterStyle    string

	// Collaborator data loaded before scoring.
	RecentOutfits    []OutfitRecord
	SessionSeen      map[string]int
	Ratings          map[string][]ItemRating
	PriorOutfitCount int

	// Palette is the monochrome consensus color family, empty when no
	// palette constraint is active.
	Palette       string
	FavoritesMode bool
	Family        filter.Family

	Notes    map[string]any
	Warnings []string

	// Now is the request clock.
	Now time.Time
}

// Warn records a user-visible warning.
func (gc *GenerationContext) Warn(format string, args ...any) {
	gc.Warnings = append(gc.Warnings, fmt.Sprintf(format, args...))
}

// Note stores heuristic bookkeeping surfaced in the outfit metadata.
func (gc *GenerationContext) Note(key string, value any) {
	if gc.Notes == nil {
		gc.Notes = make(map[string]any)
	}
	gc.Notes[key] = value
}

// Temperature returns the request temperature in °F.
func (gc *GenerationContext) Temperature() float64 {
	return gc.Weather.TemperatureF
}

// IsAthletic reports whether the request is for an athletic occasion.
func (gc *GenerationContext) IsAthletic() bool {
	return gc.Family == filter.FamilyAthletic
}

// IsFormal reports whether the request is for a business or formal occasion.
func (gc *GenerationContext) IsFormal() bool {
	return gc.Family == filter.FamilyBusiness
}

// IsBase reports whether id is the request's base item.
func (gc *GenerationContext) IsBase(id string) bool {
	return gc.BaseItemID != "" && id == gc.BaseItemID && gc.BaseItem != nil
}

// StyleIs compares the requested style against s after normalization.
func (gc *GenerationContext) StyleIs(s string) bool {
	return gc.Style == wardrobe.NormalizeTag(s)
}

// MoodIs compares the requested mood against s after normalization.
func (gc *GenerationContext) MoodIs(s string) bool {
	return gc.Mood == wardrobe.NormalizeTag(s)
}

// Strategy is a named composition heuristic.
type Strategy string

const (
	StrategyTraditional      Strategy = "traditional"
	StrategyHighLow          Strategy = "high_low"
	StrategyLayeringContrast Strategy = "layering_contrast"
	StrategyStatementPiece   Strategy = "statement_piece"
	StrategyGraduated        Strategy = "graduated"
	StrategyMonochrome       Strategy = "monochrome"
	StrategyColorPop         Strategy = "color_pop"
	StrategyTexturePlay      Strategy = "texture_play"
	StrategyProportions      Strategy = "proportions"
	StrategyEraBlend         Strategy = "era_blend"
)

// AllStrategies lists every strategy in rotation order.
var AllStrategies = []Strategy{
	StrategyTraditional,
	StrategyHighLow,
	StrategyLayeringContrast,
	StrategyStatementPiece,
	StrategyGraduated,
	StrategyMonochrome,
	StrategyColorPop,
	StrategyTexturePlay,
	StrategyProportions,
	StrategyEraBlend,
}

var strategyDescriptions = map[Strategy]string{
	StrategyTraditional:      "Coordinated pieces that match the requested style",
	StrategyHighLow:          "One dressy piece balanced against casual basics",
	StrategyLayeringContrast: "Visible layers in contrasting weights and textures",
	StrategyStatementPiece:   "A single standout item with quieter supporting pieces",
	StrategyGraduated:        "Shades of one color family stepping from light to dark",
	StrategyMonochrome:       "Every main piece in one color family",
	StrategyColorPop:         "Neutral base with one saturated accent",
	StrategyTexturePlay:      "Mixed materials for tactile contrast",
	StrategyProportions:      "Relaxed and fitted silhouettes paired for balance",
	StrategyEraBlend:         "Vintage pieces mixed with modern staples",
}

// Description returns a human-readable summary of the strategy.
func (s Strategy) Description() string {
	return strategyDescriptions[s]
}

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	_, ok := strategyDescriptions[s]
	return ok
}

// ParseStrategy accepts names in any case with spaces, hyphens or
// underscores.
func ParseStrategy(name string) (Strategy, bool) {
	s := Strategy(wardrobe.NormalizeValue(strings.ReplaceAll(name, "/", "_")))
	return s, s.Valid()
}

// StrategyMetadata describes the chosen strategy on the outfit.
type StrategyMetadata struct {
	Name        Strategy `json:"name"`
	Description string   `json:"description"`
}

// GeneratedOutfit is the engine's output.
type GeneratedOutfit struct {
	ID          string                  `json:"id"`
	UserID      string                  `json:"userId"`
	Items       []wardrobe.ClothingItem `json:"items"`
	Confidence  float64                 `json:"confidence"`
	Strategy    StrategyMetadata        `json:"strategyMetadata"`
	Warnings    []string                `json:"warnings"`
	Metadata    map[string]any          `json:"metadata,omitempty"`
	Emergency   bool                    `json:"emergency,omitempty"`
	GeneratedAt time.Time               `json:"generatedAt"`
}

// ItemIDs returns the outfit's item ids in order.
func (o *GeneratedOutfit) ItemIDs() []string {
	return wardrobe.IDs(o.Items)
}

// FlatLayAwaitingConsent marks outfits for the downstream image renderer.
const FlatLayAwaitingConsent = "awaiting_consent"

// OutfitRecord is a stored past outfit.
type OutfitRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	SessionID string    `json:"sessionId,omitempty"`
	ItemIDs   []string  `json:"itemIds"`
	Strategy  Strategy  `json:"strategy"`
	Occasion  string    `json:"occasion,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// RecordFromOutfit converts a generated outfit for storage.
func RecordFromOutfit(o *GeneratedOutfit, sessionID, occasion string) OutfitRecord {
	return OutfitRecord{
		ID:        o.ID,
		UserID:    o.UserID,
		SessionID: sessionID,
		ItemIDs:   o.ItemIDs(),
		Strategy:  o.Strategy.Name,
		Occasion:  occasion,
		CreatedAt: o.GeneratedAt,
	}
}

// ItemRating is one user rating of an outfit that contained an item.
type ItemRating struct {
	OutfitID  string    `json:"outfitId"`
	Rating    float64   `json:"rating"` // 1 to 5, 0 when only liked/favorited
	Liked     bool      `json:"liked"`
	Favorited bool      `json:"favorited"`
	CreatedAt time.Time `json:"createdAt"`
}

// StrategyExecution is the analytics event emitted after each generation.
type StrategyExecution struct {
	OutfitID      string        `json:"outfitId"`
	UserID        string        `json:"userId"`
	SessionID     string        `json:"sessionId,omitempty"`
	Strategy      Strategy      `json:"strategy"`
	Occasion      string        `json:"occasion,omitempty"`
	Style         string        `json:"style,omitempty"`
	Mood          string        `json:"mood,omitempty"`
	ItemCount     int           `json:"itemCount"`
	Confidence    float64       `json:"confidence"`
	Emergency     bool          `json:"emergency"`
	FallbackTiers []string      `json:"fallbackTiers,omitempty"`
	Warnings      int           `json:"warnings"`
	Duration      time.Duration `json:"durationNs"`
	Timestamp     time.Time     `json:"timestamp"`
}

func clamp(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}

// Clamp01 clamps v to [0, 1].
func Clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}
