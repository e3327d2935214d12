// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/stylist/internal/metrics"
	"github.com/tomtom215/stylist/internal/wardrobe"
)

// GetProfile returns the stored profile for userID. Users without a stored
// profile get the zero profile.
func (db *DB) GetProfile(ctx context.Context, userID string) (wardrobe.UserProfile, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var p wardrobe.UserProfile
	var bodyType, gender, skinTone, prefs sql.NullString
	var height, weight sql.NullFloat64

	start := time.Now()
	err := db.conn.QueryRowContext(ctx,
		`SELECT body_type, height_cm, weight_kg, gender, skin_tone, style_preferences
		FROM user_profiles WHERE user_id = ?`, userID,
	).Scan(&bodyType, &height, &weight, &gender, &skinTone, &prefs)
	if errors.Is(err, sql.ErrNoRows) {
		metrics.RecordDBQuery("select", "user_profiles", time.Since(start), nil)
		return p, nil
	}
	metrics.RecordDBQuery("select", "user_profiles", time.Since(start), err)
	if err != nil {
		return p, fmt.Errorf("failed to query profile: %w", err)
	}

	p.BodyType = bodyType.String
	p.HeightCM = height.Float64
	p.WeightKG = weight.Float64
	p.Gender = gender.String
	p.SkinTone = skinTone.String
	if prefs.Valid && prefs.String != "" {
		if err := json.Unmarshal([]byte(prefs.String), &p.StylePreferences); err != nil {
			return p, fmt.Errorf("failed to decode style preferences: %w", err)
		}
	}
	return p, nil
}

// UpsertProfile stores the profile for userID, replacing any previous one.
//
//nolint:gocritic // hugeParam: profile is stored as given
func (db *DB) UpsertProfile(ctx context.Context, userID string, p wardrobe.UserProfile) error {
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	prefs, err := json.Marshal(wardrobe.NormalizeTags(p.StylePreferences))
	if err != nil {
		return fmt.Errorf("failed to encode style preferences: %w", err)
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO user_profiles (user_id, body_type, height_cm, weight_kg, gender, skin_tone, style_preferences, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			body_type = EXCLUDED.body_type, height_cm = EXCLUDED.height_cm,
			weight_kg = EXCLUDED.weight_kg, gender = EXCLUDED.gender,
			skin_tone = EXCLUDED.skin_tone, style_preferences = EXCLUDED.style_preferences,
			updated_at = EXCLUDED.updated_at`,
		userID, wardrobe.NormalizeValue(p.BodyType), p.HeightCM, p.WeightKG,
		wardrobe.NormalizeValue(p.Gender), wardrobe.NormalizeValue(p.SkinTone), string(prefs), db.now(),
	)
	metrics.RecordDBQuery("upsert", "user_profiles", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}
