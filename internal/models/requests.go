// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package models

import (
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/stylist/internal/outfit"
	"github.com/tomtom215/stylist/internal/wardrobe"
)

// GenerateRequest is the body of POST /api/v1/outfits/generate.
//
// Profile and Weather are kept raw: clients send them in several shapes
// (a bare temperature, a description, partial objects) and ToEngineRequest
// coerces them with warnings instead of rejecting the request.
type GenerateRequest struct {
	UserID     string `json:"userId" validate:"required,safeid"`
	SessionID  string `json:"sessionId,omitempty" validate:"omitempty,safeid"`
	Occasion   string `json:"occasion,omitempty" validate:"max=64"`
	Style      string `json:"style,omitempty" validate:"max=64"`
	Mood       string `json:"mood,omitempty" validate:"max=64"`
	BaseItemID string `json:"baseItemId,omitempty" validate:"omitempty,safeid"`

	Weather json.RawMessage `json:"weather,omitempty"`
	Profile json.RawMessage `json:"profile,omitempty"`

	Wardrobe []wardrobe.ClothingItem `json:"wardrobe,omitempty" validate:"max=500"`
}

// ToEngineRequest converts the wire request. Weather and profile are only
// set when present, so the engine falls back to stored values otherwise.
func (r *GenerateRequest) ToEngineRequest() outfit.Request {
	req := outfit.Request{
		UserID:     r.UserID,
		SessionID:  r.SessionID,
		Occasion:   r.Occasion,
		Style:      r.Style,
		Mood:       r.Mood,
		BaseItemID: r.BaseItemID,
		Wardrobe:   r.Wardrobe,
	}
	if present(r.Weather) {
		w, warnings := wardrobe.DecodeWeather(r.Weather)
		req.Weather = &w
		req.Warnings = append(req.Warnings, warnings...)
	}
	if present(r.Profile) {
		p, warnings := wardrobe.DecodeProfile(r.Profile)
		req.Profile = &p
		req.Warnings = append(req.Warnings, warnings...)
	}
	return req
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

// ItemRequest is the body of POST /api/v1/users/{userID}/items. An empty
// ID creates a new item.
type ItemRequest struct {
	ID       string   `json:"id,omitempty" validate:"omitempty,safeid"`
	Type     string   `json:"type" validate:"required,max=64"`
	Name     string   `json:"name" validate:"required,max=200"`
	Color    string   `json:"color" validate:"max=64"`
	Style    []string `json:"style,omitempty" validate:"max=32,dive,max=64"`
	Occasion []string `json:"occasion,omitempty" validate:"max=32,dive,max=64"`
	Mood     []string `json:"mood,omitempty" validate:"max=32,dive,max=64"`
	Season   []string `json:"season,omitempty" validate:"max=8,dive,max=32"`

	Metadata *wardrobe.VisualAttributes `json:"metadata,omitempty"`

	WearCount     int       `json:"wearCount" validate:"gte=0"`
	IsFavorite    bool      `json:"isFavorite"`
	FavoriteScore float64   `json:"favoriteScore,omitempty" validate:"gte=0"`
	LastWornAt    time.Time `json:"lastWornAt,omitempty"`
}

// ToItem converts the request into an item owned by userID.
func (r *ItemRequest) ToItem(userID string) wardrobe.ClothingItem {
	return wardrobe.ClothingItem{
		ID:            r.ID,
		UserID:        userID,
		Type:          wardrobe.ParseItemType(r.Type),
		Name:          r.Name,
		Color:         r.Color,
		Style:         r.Style,
		Occasion:      r.Occasion,
		Mood:          r.Mood,
		Season:        r.Season,
		Attributes:    r.Metadata,
		WearCount:     r.WearCount,
		IsFavorite:    r.IsFavorite,
		FavoriteScore: r.FavoriteScore,
		LastWornAt:    r.LastWornAt,
	}
}

// RatingRequest is the body of POST /api/v1/users/{userID}/ratings.
type RatingRequest struct {
	OutfitID  string   `json:"outfitId" validate:"required,safeid"`
	ItemIDs   []string `json:"itemIds" validate:"required,min=1,max=20,dive,safeid"`
	Rating    float64  `json:"rating" validate:"gte=0,lte=5"`
	Liked     bool     `json:"liked"`
	Favorited bool     `json:"favorited"`
}

// ProfileRequest is the body of PUT /api/v1/users/{userID}/profile.
type ProfileRequest struct {
	BodyType         string   `json:"bodyType" validate:"max=32"`
	HeightCM         float64  `json:"height" validate:"gte=0,lte=300"`
	WeightKG         float64  `json:"weight" validate:"gte=0,lte=500"`
	Gender           string   `json:"gender" validate:"max=32"`
	SkinTone         string   `json:"skinTone" validate:"max=32"`
	StylePreferences []string `json:"stylePreferences,omitempty" validate:"max=32,dive,max=64"`
}

// ToProfile converts the request into a profile.
func (r *ProfileRequest) ToProfile() wardrobe.UserProfile {
	return wardrobe.UserProfile{
		BodyType:         r.BodyType,
		HeightCM:         r.HeightCM,
		WeightKG:         r.WeightKG,
		Gender:           r.Gender,
		SkinTone:         r.SkinTone,
		StylePreferences: r.StylePreferences,
	}
}
