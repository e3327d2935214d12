// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package models

import (
	"time"

	"github.com/tomtom215/stylist/internal/outfit"
	"github.com/tomtom215/stylist/internal/wardrobe"
)

// APIResponse wraps every HTTP response body.
//
// Status is "success" with Data set, or "error" with Error set.
//
//	{
//	  "status": "success",
//	  "data": {"id": "...", "items": [...]},
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z", "query_time_ms": 12}
//	}
//
//	{
//	  "status": "error",
//	  "error": {"code": "VALIDATION_ERROR", "message": "userId is required"},
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries timing and tracing information.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError is the error part of an APIResponse.
//
// Codes used by the API:
//   - VALIDATION_ERROR: request body or parameters are invalid
//   - INVALID_JSON: request body is not JSON or too large
//   - NOT_FOUND: referenced item does not exist
//   - GENERATION_ERROR: not even an emergency outfit could be built
//   - DATABASE_ERROR: storage failure
//   - SERVICE_UNAVAILABLE: a dependency is down
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status     string                     `json:"status"` // "healthy" or "degraded"
	Version    string                     `json:"version"`
	Uptime     float64                    `json:"uptime_seconds"`
	Components map[string]ComponentHealth `json:"components"`
	Engine     outfit.Stats               `json:"engine"`
}

// ComponentHealth reports one dependency.
type ComponentHealth struct {
	Healthy bool   `json:"healthy"`
	Detail  string `json:"detail,omitempty"`
}

// RecentOutfitsResponse is the body of GET /api/v1/users/{userID}/outfits.
type RecentOutfitsResponse struct {
	UserID  string                `json:"userId"`
	Outfits []outfit.OutfitRecord `json:"outfits"`
	Count   int                   `json:"count"`
}

// WardrobeResponse is the body of GET /api/v1/users/{userID}/items.
type WardrobeResponse struct {
	UserID string                  `json:"userId"`
	Items  []wardrobe.ClothingItem `json:"items"`
	Count  int                     `json:"count"`
}

// ProfileResponse carries a user's profile.
type ProfileResponse struct {
	UserID  string               `json:"userId"`
	Profile wardrobe.UserProfile `json:"profile"`
}
