// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/stylist/internal/logging"
	"github.com/tomtom215/stylist/internal/metrics"
	"github.com/tomtom215/stylist/internal/models"
	"github.com/tomtom215/stylist/internal/outfit"
)

// userPath validates the {userID} URL parameter.
type userPath struct {
	UserID string `json:"userID" validate:"required,safeid"`
}

// pathUserID returns the validated {userID}, or writes a 400 and returns
// false.
func pathUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	p := userPath{UserID: chi.URLParam(r, "userID")}
	if apiErr := validateRequest(&p); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return "", false
	}
	return p.UserID, true
}

// GenerateOutfit handles POST /api/v1/outfits/generate.
//
// The generation runs under the configured budget. When the budget expires
// while the client is still waiting, the emergency outfit is returned with
// status 200 and a warning; only a client disconnect ends the request
// without an outfit.
func (h *Handler) GenerateOutfit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var body models.GenerateRequest
	if apiErr := decodeJSON(w, r, h.config.MaxBodyBytes, &body); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	if apiErr := validateRequest(&body); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	req := body.ToEngineRequest()

	ctx := r.Context()
	budget := h.config.GenerateBudget
	if budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}

	out, err := h.engine.Generate(ctx, req)
	if err != nil && outfit.IsCanceled(err) && r.Context().Err() == nil {
		metrics.BudgetExceededTotal.Inc()
		logging.Ctx(r.Context()).Warn().
			Str("user_id", sanitizeLogValue(req.UserID)).
			Dur("budget", budget).
			Msg("Generation exceeded budget, returning emergency outfit")
		out, err = h.engine.Fallback(req, fmt.Sprintf("generation exceeded its %s budget; returned a safe default outfit", budget))
	}
	if err != nil {
		respondClassified(w, err)
		return
	}

	respondSuccess(w, r, http.StatusOK, out, start)
}

// RecentOutfits handles GET /api/v1/users/{userID}/outfits?limit=N.
func (h *Handler) RecentOutfits(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}
	if h.history == nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Outfit history is not configured", nil)
		return
	}

	limit := getIntParam(r, "limit", h.config.HistoryLimit)
	if limit <= 0 || limit > maxHistoryLimit {
		respondError(w, http.StatusBadRequest, ErrCodeValidation,
			fmt.Sprintf("limit must be between 1 and %d", maxHistoryLimit), nil)
		return
	}

	records, err := h.history.GetRecentOutfits(r.Context(), userID, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeDatabase, "Failed to read outfit history", err)
		return
	}

	respondSuccess(w, r, http.StatusOK, models.RecentOutfitsResponse{
		UserID:  userID,
		Outfits: records,
		Count:   len(records),
	}, start)
}

// Strategies handles GET /api/v1/strategies.
func (h *Handler) Strategies(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, h.engine.Strategies(), time.Now())
}
