// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
	"github.com/rs/zerolog"

	"github.com/tomtom215/stylist/internal/metrics"
	"github.com/tomtom215/stylist/internal/outfit"
	"github.com/tomtom215/stylist/internal/wardrobe"
)

var _ outfit.WardrobeSource = (*CachedSource)(nil)

// CachedSource caches wardrobe and profile reads per user in Ristretto.
// Writers call Invalidate after changing a user's data.
type CachedSource struct {
	source   outfit.WardrobeSource
	client   *ristretto.Cache
	items    *cache.Cache[[]wardrobe.ClothingItem]
	profiles *cache.Cache[wardrobe.UserProfile]
	ttl      time.Duration
	logger   zerolog.Logger
}

// CacheConfig configures NewCachedSource.
type CacheConfig struct {
	TTL         time.Duration
	NumCounters int64
	MaxCost     int64
}

// NewCachedSource wraps source with a read cache.
func NewCachedSource(source outfit.WardrobeSource, cfg CacheConfig, logger zerolog.Logger) (*CachedSource, error) {
	client, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}
	rs := ristretto_store.NewRistretto(client)

	return &CachedSource{
		source:   source,
		client:   client,
		items:    cache.New[[]wardrobe.ClothingItem](rs),
		profiles: cache.New[wardrobe.UserProfile](rs),
		ttl:      cfg.TTL,
		logger:   logger.With().Str("component", "wardrobe-cache").Logger(),
	}, nil
}

func wardrobeKey(userID string) string { return "wardrobe:" + userID }
func profileKey(userID string) string  { return "profile:" + userID }

// GetWardrobe implements outfit.WardrobeSource.
func (c *CachedSource) GetWardrobe(ctx context.Context, userID string) ([]wardrobe.ClothingItem, error) {
	key := wardrobeKey(userID)
	if items, err := c.items.Get(ctx, key); err == nil {
		metrics.RecordCacheLookup(true)
		return cloneItems(items), nil
	}
	metrics.RecordCacheLookup(false)

	items, err := c.source.GetWardrobe(ctx, userID)
	if err != nil {
		return nil, err
	}
	cost := int64(len(items)) + 1
	if err := c.items.Set(ctx, key, cloneItems(items), store.WithExpiration(c.ttl), store.WithCost(cost)); err != nil {
		c.logger.Debug().Err(err).Str("user_id", userID).Msg("Wardrobe not cached")
	}
	c.client.Wait()
	return items, nil
}

// GetProfile implements outfit.WardrobeSource.
func (c *CachedSource) GetProfile(ctx context.Context, userID string) (wardrobe.UserProfile, error) {
	key := profileKey(userID)
	if p, err := c.profiles.Get(ctx, key); err == nil {
		metrics.RecordCacheLookup(true)
		return p, nil
	}
	metrics.RecordCacheLookup(false)

	p, err := c.source.GetProfile(ctx, userID)
	if err != nil {
		return p, err
	}
	if err := c.profiles.Set(ctx, key, p, store.WithExpiration(c.ttl), store.WithCost(1)); err != nil {
		c.logger.Debug().Err(err).Str("user_id", userID).Msg("Profile not cached")
	}
	c.client.Wait()
	return p, nil
}

// Invalidate drops the cached wardrobe and profile of userID.
func (c *CachedSource) Invalidate(ctx context.Context, userID string) {
	_ = c.items.Delete(ctx, wardrobeKey(userID))    //nolint:errcheck // missing keys are fine
	_ = c.profiles.Delete(ctx, profileKey(userID)) //nolint:errcheck // missing keys are fine
}

// Close releases the cache.
func (c *CachedSource) Close() {
	c.client.Close()
}

// cloneItems copies the slice so callers cannot mutate cached entries.
// Attribute pointers are shared; the engine treats them as read-only.
func cloneItems(items []wardrobe.ClothingItem) []wardrobe.ClothingItem {
	if items == nil {
		return nil
	}
	out := make([]wardrobe.ClothingItem, len(items))
	copy(out, items)
	return out
}
