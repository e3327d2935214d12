// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

/*
Package database stores wardrobes, user profiles and outfit ratings in DuckDB.

DB implements outfit.WardrobeSource and outfit.FeedbackStore. Items are
normalized on the way in (UpsertItem), so reads return engine-ready values.

Two decorators sit in front of the store on the generation path:

	cached, _ := database.NewCachedSource(db, cacheCfg, logger)
	source := database.NewBreakerSource(cached, breakerCfg, logger)

CachedSource keeps per-user wardrobes and profiles in Ristretto through
gocache; item and profile writers call Invalidate. BreakerSource trips a
gobreaker circuit after consecutive read failures so a failing database
costs the engine one fast error instead of a timeout per request.
*/
package database
