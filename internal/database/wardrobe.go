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
	"github.com/google/uuid"

	"github.com/tomtom215/stylist/internal/metrics"
	"github.com/tomtom215/stylist/internal/wardrobe"
)

const itemColumns = `id, user_id, item_type, name, color, style, occasion, mood, season,
	attributes, wear_count, is_favorite, favorite_score, last_worn_at, category, layer`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// GetWardrobe returns every item owned by userID, ordered by id.
func (db *DB) GetWardrobe(ctx context.Context, userID string) ([]wardrobe.ClothingItem, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM wardrobe_items WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		metrics.RecordDBQuery("select", "wardrobe_items", time.Since(start), err)
		return nil, fmt.Errorf("failed to query wardrobe: %w", err)
	}
	defer rows.Close()

	items := make([]wardrobe.ClothingItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			metrics.RecordDBQuery("select", "wardrobe_items", time.Since(start), err)
			return nil, err
		}
		items = append(items, item)
	}
	err = rows.Err()
	metrics.RecordDBQuery("select", "wardrobe_items", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("error iterating wardrobe: %w", err)
	}
	return items, nil
}

// GetItem returns one item, or ErrNotFound.
func (db *DB) GetItem(ctx context.Context, userID, itemID string) (wardrobe.ClothingItem, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	row := db.conn.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM wardrobe_items WHERE user_id = ? AND id = ?`, userID, itemID)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return wardrobe.ClothingItem{}, ErrNotFound
	}
	return item, err
}

// UpsertItem normalizes item, assigns an id when it has none, and stores
// it for userID. The stored item is returned.
//
//nolint:gocritic // hugeParam: item is normalized as a copy
func (db *DB) UpsertItem(ctx context.Context, userID string, item wardrobe.ClothingItem) (wardrobe.ClothingItem, error) {
	if userID == "" {
		return wardrobe.ClothingItem{}, fmt.Errorf("%w: user id is required", ErrInvalidItem)
	}
	item.UserID = userID
	item = db.normalizer.Normalize(item)
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.Name == "" {
		return wardrobe.ClothingItem{}, fmt.Errorf("%w: name is required", ErrInvalidItem)
	}

	style, occasion, mood, season, err := encodeTags(&item)
	if err != nil {
		return wardrobe.ClothingItem{}, err
	}
	var attrs sql.NullString
	if item.Attributes != nil {
		b, err := json.Marshal(item.Attributes)
		if err != nil {
			return wardrobe.ClothingItem{}, fmt.Errorf("failed to encode attributes: %w", err)
		}
		attrs = sql.NullString{String: string(b), Valid: true}
	}
	var lastWorn sql.NullTime
	if !item.LastWornAt.IsZero() {
		lastWorn = sql.NullTime{Time: item.LastWornAt, Valid: true}
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	now := db.now()
	query := `INSERT INTO wardrobe_items (` + itemColumns + `, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, id) DO UPDATE SET
			item_type = EXCLUDED.item_type, name = EXCLUDED.name, color = EXCLUDED.color,
			style = EXCLUDED.style, occasion = EXCLUDED.occasion, mood = EXCLUDED.mood,
			season = EXCLUDED.season, attributes = EXCLUDED.attributes,
			wear_count = EXCLUDED.wear_count, is_favorite = EXCLUDED.is_favorite,
			favorite_score = EXCLUDED.favorite_score, last_worn_at = EXCLUDED.last_worn_at,
			category = EXCLUDED.category, layer = EXCLUDED.layer, updated_at = EXCLUDED.updated_at`

	start := time.Now()
	_, err = db.conn.ExecContext(ctx, query,
		item.ID, item.UserID, string(item.Type), item.Name, item.Color,
		style, occasion, mood, season, attrs,
		item.WearCount, item.IsFavorite, item.FavoriteScore, lastWorn,
		string(item.Category), string(item.Layer), now, now,
	)
	metrics.RecordDBQuery("upsert", "wardrobe_items", time.Since(start), err)
	if err != nil {
		return wardrobe.ClothingItem{}, fmt.Errorf("failed to upsert item: %w", err)
	}
	return item, nil
}

// DeleteItem removes one item, or returns ErrNotFound.
func (db *DB) DeleteItem(ctx context.Context, userID, itemID string) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	res, err := db.conn.ExecContext(ctx, `DELETE FROM wardrobe_items WHERE user_id = ? AND id = ?`, userID, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountItems returns the number of items userID owns.
func (db *DB) CountItems(ctx context.Context, userID string) (int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM wardrobe_items WHERE user_id = ?`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return n, nil
}

func scanItem(row rowScanner) (wardrobe.ClothingItem, error) {
	var item wardrobe.ClothingItem
	var itemType, category, layer string
	var color, style, occasion, mood, season, attrs sql.NullString
	var lastWorn sql.NullTime

	err := row.Scan(
		&item.ID, &item.UserID, &itemType, &item.Name, &color,
		&style, &occasion, &mood, &season, &attrs,
		&item.WearCount, &item.IsFavorite, &item.FavoriteScore, &lastWorn,
		&category, &layer,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return item, err
		}
		return item, fmt.Errorf("failed to scan item: %w", err)
	}

	item.Type = wardrobe.ItemType(itemType)
	item.Category = wardrobe.Category(category)
	item.Layer = wardrobe.Layer(layer)
	item.Color = color.String
	if lastWorn.Valid {
		item.LastWornAt = lastWorn.Time
	}
	for _, f := range []struct {
		src sql.NullString
		dst *[]string
	}{
		{style, &item.Style}, {occasion, &item.Occasion}, {mood, &item.Mood}, {season, &item.Season},
	} {
		if !f.src.Valid || f.src.String == "" {
			continue
		}
		if err := json.Unmarshal([]byte(f.src.String), f.dst); err != nil {
			return item, fmt.Errorf("failed to decode tags of item %s: %w", item.ID, err)
		}
	}
	if attrs.Valid && attrs.String != "" {
		var a wardrobe.VisualAttributes
		if err := json.Unmarshal([]byte(attrs.String), &a); err != nil {
			return item, fmt.Errorf("failed to decode attributes of item %s: %w", item.ID, err)
		}
		item.Attributes = &a
	}
	return item, nil
}

func encodeTags(item *wardrobe.ClothingItem) (style, occasion, mood, season string, err error) {
	out := make([]string, 4)
	for i, tags := range [][]string{item.Style, item.Occasion, item.Mood, item.Season} {
		if len(tags) == 0 {
			out[i] = "[]"
			continue
		}
		b, err := json.Marshal(tags)
		if err != nil {
			return "", "", "", "", fmt.Errorf("failed to encode tags: %w", err)
		}
		out[i] = string(b)
	}
	return out[0], out[1], out[2], out[3], nil
}
