// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

/*
schema.go - Database Schema Management

Tables:
  - wardrobe_items: normalized clothing items, one row per (user_id, id).
    Tag sets and visual attributes are stored as JSON text.
  - user_profiles: body profile and style preferences per user.
  - outfit_ratings: user feedback on generated outfits. item_ids lists the
    outfit's items so ratings can be attributed per item.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the tables and indexes if they do not exist.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range tableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

func tableCreationQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS wardrobe_items (
			user_id TEXT NOT NULL,
			id TEXT NOT NULL,
			item_type TEXT NOT NULL,
			name TEXT NOT NULL,
			color TEXT,
			style TEXT,
			occasion TEXT,
			mood TEXT,
			season TEXT,
			attributes TEXT,
			wear_count INTEGER NOT NULL DEFAULT 0,
			is_favorite BOOLEAN NOT NULL DEFAULT false,
			favorite_score DOUBLE NOT NULL DEFAULT 0,
			last_worn_at TIMESTAMP,
			category TEXT NOT NULL,
			layer TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			PRIMARY KEY (user_id, id)
		)`,
		`CREATE TABLE IF NOT EXISTS user_profiles (
			user_id TEXT PRIMARY KEY,
			body_type TEXT,
			height_cm DOUBLE,
			weight_kg DOUBLE,
			gender TEXT,
			skin_tone TEXT,
			style_preferences TEXT,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS outfit_ratings (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			outfit_id TEXT NOT NULL,
			item_ids TEXT NOT NULL,
			rating DOUBLE NOT NULL DEFAULT 0,
			liked BOOLEAN NOT NULL DEFAULT false,
			favorited BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_wardrobe_items_category ON wardrobe_items(user_id, category)`,
		`CREATE INDEX IF NOT EXISTS idx_outfit_ratings_user ON outfit_ratings(user_id, created_at)`,
	}
}
