// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/stylist/internal/database"
	"github.com/tomtom215/stylist/internal/logging"
	"github.com/tomtom215/stylist/internal/models"
)

// ListItems handles GET /api/v1/users/{userID}/items.
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	items, err := h.store.GetWardrobe(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeDatabase, "Failed to read wardrobe", err)
		return
	}

	respondSuccess(w, r, http.StatusOK, models.WardrobeResponse{
		UserID: userID,
		Items:  items,
		Count:  len(items),
	}, start)
}

// UpsertItem handles POST /api/v1/users/{userID}/items. The item is
// normalized before it is stored and the stored form is returned.
func (h *Handler) UpsertItem(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	var body models.ItemRequest
	if apiErr := decodeJSON(w, r, h.config.MaxBodyBytes, &body); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	if apiErr := validateRequest(&body); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	saved, err := h.store.UpsertItem(r.Context(), userID, body.ToItem(userID))
	if err != nil {
		respondClassified(w, err)
		return
	}
	if h.cache != nil {
		h.cache.Invalidate(r.Context(), userID)
	}

	logging.Ctx(r.Context()).Debug().
		Str("user_id", userID).
		Str("item_id", saved.ID).
		Str("type", string(saved.Type)).
		Msg("Item stored")

	status := http.StatusCreated
	if body.ID != "" {
		status = http.StatusOK
	}
	respondSuccess(w, r, status, saved, start)
}

// GetProfile handles GET /api/v1/users/{userID}/profile. Users without a
// stored profile get an empty one.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	profile, err := h.store.GetProfile(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeDatabase, "Failed to read profile", err)
		return
	}
	respondSuccess(w, r, http.StatusOK, models.ProfileResponse{UserID: userID, Profile: profile}, start)
}

// PutProfile handles PUT /api/v1/users/{userID}/profile and returns the
// stored form.
func (h *Handler) PutProfile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	var body models.ProfileRequest
	if apiErr := decodeJSON(w, r, h.config.MaxBodyBytes, &body); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	if apiErr := validateRequest(&body); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	if err := h.store.UpsertProfile(r.Context(), userID, body.ToProfile()); err != nil {
		respondClassified(w, err)
		return
	}
	if h.cache != nil {
		h.cache.Invalidate(r.Context(), userID)
	}

	profile, err := h.store.GetProfile(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeDatabase, "Failed to read profile", err)
		return
	}
	logging.Ctx(r.Context()).Debug().Str("user_id", userID).Msg("Profile stored")
	respondSuccess(w, r, http.StatusOK, models.ProfileResponse{UserID: userID, Profile: profile}, start)
}

// RecordRating handles POST /api/v1/users/{userID}/ratings.
func (h *Handler) RecordRating(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	var body models.RatingRequest
	if apiErr := decodeJSON(w, r, h.config.MaxBodyBytes, &body); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	if apiErr := validateRequest(&body); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	saved, err := h.store.RecordRating(r.Context(), userID, database.Rating{
		OutfitID:  body.OutfitID,
		ItemIDs:   body.ItemIDs,
		Rating:    body.Rating,
		Liked:     body.Liked,
		Favorited: body.Favorited,
	})
	if err != nil {
		respondClassified(w, err)
		return
	}

	respondSuccess(w, r, http.StatusCreated, saved, start)
}
