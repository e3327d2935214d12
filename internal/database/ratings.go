// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/stylist/internal/metrics"
	"github.com/tomtom215/stylist/internal/outfit"
)

// Rating is user feedback on one generated outfit.
type Rating struct {
	ID        string    `json:"id"`
	OutfitID  string    `json:"outfitId" validate:"required"`
	ItemIDs   []string  `json:"itemIds" validate:"required,min=1,dive,required"`
	Rating    float64   `json:"rating" validate:"gte=0,lte=5"`
	Liked     bool      `json:"liked"`
	Favorited bool      `json:"favorited"`
	CreatedAt time.Time `json:"createdAt"`
}

// RecordRating stores a rating for userID. ID and CreatedAt are filled in
// when empty.
//
//nolint:gocritic // hugeParam: rating is stored as given
func (db *DB) RecordRating(ctx context.Context, userID string, r Rating) (Rating, error) {
	if userID == "" || r.OutfitID == "" || len(r.ItemIDs) == 0 {
		return r, fmt.Errorf("%w: user, outfit and items are required", ErrInvalidRating)
	}
	if r.Rating < 0 || r.Rating > 5 {
		return r, fmt.Errorf("%w: rating must be between 0 and 5, got %v", ErrInvalidRating, r.Rating)
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = db.now()
	}
	ids, err := json.Marshal(r.ItemIDs)
	if err != nil {
		return r, fmt.Errorf("failed to encode item ids: %w", err)
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO outfit_ratings (id, user_id, outfit_id, item_ids, rating, liked, favorited, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, userID, r.OutfitID, string(ids), r.Rating, r.Liked, r.Favorited, r.CreatedAt,
	)
	metrics.RecordDBQuery("insert", "outfit_ratings", time.Since(start), err)
	if err != nil {
		return r, fmt.Errorf("failed to record rating: %w", err)
	}
	return r, nil
}

// GetOutfitRatingsForItems returns every rating of userID attributed to each
// item the rated outfit contained, newest first.
func (db *DB) GetOutfitRatingsForItems(ctx context.Context, userID string) (map[string][]outfit.ItemRating, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT outfit_id, item_ids, rating, liked, favorited, created_at
		FROM outfit_ratings WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		metrics.RecordDBQuery("select", "outfit_ratings", time.Since(start), err)
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]outfit.ItemRating)
	for rows.Next() {
		var r outfit.ItemRating
		var ids string
		if err := rows.Scan(&r.OutfitID, &ids, &r.Rating, &r.Liked, &r.Favorited, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		var itemIDs []string
		if err := json.Unmarshal([]byte(ids), &itemIDs); err != nil {
			db.logger.Warn().Err(err).Str("outfit_id", r.OutfitID).Msg("Skipping rating with unreadable item ids")
			continue
		}
		for _, id := range itemIDs {
			out[id] = append(out[id], r)
		}
	}
	err = rows.Err()
	metrics.RecordDBQuery("select", "outfit_ratings", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("error iterating ratings: %w", err)
	}
	return out, nil
}
