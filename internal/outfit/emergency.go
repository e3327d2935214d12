// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package outfit

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/stylist/internal/wardrobe"
)

// ErrNoOutfit is returned when not even the emergency outfit can be built.
var ErrNoOutfit = errors.New("no outfit could be assembled")

// Emergency piece ids.
const (
	EmergencyTopID    = "emergency-top"
	EmergencyBottomID = "emergency-bottom"
	EmergencyShoesID  = "emergency-shoes"
)

// DefaultEmergencyPieces returns the built-in three-piece fallback outfit.
func DefaultEmergencyPieces() []wardrobe.ClothingItem {
	var n wardrobe.Normalizer
	return n.NormalizeAll([]wardrobe.ClothingItem{
		{
			ID: EmergencyTopID, Type: wardrobe.TypeTShirt, Name: "White t-shirt", Color: "white",
			Style: []string{"casual", "classic"}, Season: []string{"spring", "summer", "fall"},
		},
		{
			ID: EmergencyBottomID, Type: wardrobe.TypeJeans, Name: "Dark jeans", Color: "navy",
			Style: []string{"casual", "classic"},
		},
		{
			ID: EmergencyShoesID, Type: wardrobe.TypeSneakers, Name: "White sneakers", Color: "white",
			Style: []string{"casual"},
		},
	})
}

// emergencyPiece returns the configured piece for an essential category.
func emergencyPiece(pieces []wardrobe.ClothingItem, c wardrobe.Category) (wardrobe.ClothingItem, bool) {
	for i := range pieces {
		if pieces[i].Category == c {
			return pieces[i], true
		}
	}
	return wardrobe.ClothingItem{}, false
}

// EmergencyOutfit builds the default outfit. The base item, when given,
// leads the list and replaces the piece of its own category. It fails only
// when no pieces are configured and there is no base item.
func EmergencyOutfit(userID string, pieces []wardrobe.ClothingItem, base *wardrobe.ClothingItem, warnings []string) (*GeneratedOutfit, error) {
	items := make([]wardrobe.ClothingItem, 0, len(pieces)+1)
	if base != nil {
		items = append(items, *base)
	}
	for i := range pieces {
		p := pieces[i]
		if base != nil && (p.Category == base.Category || (base.IsDress() &&
			(p.Category == wardrobe.CategoryTops || p.Category == wardrobe.CategoryBottoms))) {
			continue
		}
		if base != nil {
			if _, bad := Forbidden(base, &p); bad {
				continue
			}
		}
		items = append(items, p)
	}
	if len(items) == 0 {
		return nil, ErrNoOutfit
	}

	w := append([]string(nil), warnings...)
	w = append(w, "Showing a basic default outfit; your wardrobe could not produce a full recommendation")

	return &GeneratedOutfit{
		ID:         uuid.NewString(),
		UserID:     userID,
		Items:      items,
		Confidence: 0.1,
		Strategy:   StrategyMetadata{Name: StrategyTraditional, Description: StrategyTraditional.Description()},
		Warnings:   w,
		Metadata: map[string]any{
			"emergency":       true,
			"flat_lay_status": FlatLayAwaitingConsent,
		},
		Emergency:   true,
		GeneratedAt: time.Now().UTC(),
	}, nil
}
