// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/stylist/internal/database"
	"github.com/tomtom215/stylist/internal/outfit"
)

// Error codes sent in APIError.Code.
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeGeneration         = "GENERATION_ERROR"
	ErrCodeDatabase           = "DATABASE_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeCanceled           = "REQUEST_CANCELED"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// statusClientClosedRequest is the de facto status for a client that went
// away before the response.
const statusClientClosedRequest = 499

// classifyError maps a storage or engine error to a status and code.
func classifyError(err error) (int, string, string) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		return http.StatusNotFound, ErrCodeNotFound, "Resource not found"
	case errors.Is(err, database.ErrInvalidItem), errors.Is(err, database.ErrInvalidRating):
		return http.StatusBadRequest, ErrCodeValidation, err.Error()
	case outfit.IsCanceled(err):
		return statusClientClosedRequest, ErrCodeCanceled, "Request canceled"
	case errors.Is(err, outfit.ErrNoOutfit):
		return http.StatusUnprocessableEntity, ErrCodeGeneration, "No outfit could be composed"
	default:
		return http.StatusInternalServerError, ErrCodeInternal, "Internal server error"
	}
}

// respondClassified sends the error response classifyError chooses.
func respondClassified(w http.ResponseWriter, err error) {
	status, code, message := classifyError(err)
	respondError(w, status, code, message, err)
}
