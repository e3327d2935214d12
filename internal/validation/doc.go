// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

/*
Package validation checks API request structs with go-playground/validator.

A single validator instance is shared by every handler; it caches struct
metadata, so building one per request would be wasteful. Errors name fields
by their JSON names, including the path into nested slices:

	wardrobe[2].id is required

# Tags

All built-in validator tags are available. The package adds:

  - safeid: printable identifier without whitespace, slashes or NUL, at
    most MaxIDLength bytes. Used for user, session and item ids, which end
    up in storage keys.

# Usage

	type RatingRequest struct {
	    OutfitID string   `json:"outfitId" validate:"required,safeid"`
	    ItemIDs  []string `json:"itemIds" validate:"required,min=1,dive,safeid"`
	    Rating   float64  `json:"rating" validate:"gte=0,lte=5"`
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
	    apiErr := verr.ToAPIError()
	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
	    return
	}

With one failing field, ToAPIError returns its message with the field and
tag in Details. With several, the messages are joined with "; " and Details
carries a "fields" list.
*/
package validation
