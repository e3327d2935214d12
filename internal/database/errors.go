// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package database

import (
	"errors"
	"io"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidItem is returned when an item cannot be stored.
	ErrInvalidItem = errors.New("invalid item")

	// ErrInvalidRating is returned for ratings outside 0..5 or without items.
	ErrInvalidRating = errors.New("invalid rating")
)

// closeQuietly closes a resource in error paths where the Close error is
// not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
