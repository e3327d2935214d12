// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package api

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/stylist/internal/database"
	"github.com/tomtom215/stylist/internal/outfit"
	"github.com/tomtom215/stylist/internal/wardrobe"
)

// mockEngine implements Generator.
type mockEngine struct {
	mu            sync.Mutex
	generateFn    func(ctx context.Context, req outfit.Request) (*outfit.GeneratedOutfit, error)
	lastRequest   outfit.Request
	fallbackCalls int
	fallbackWhy   string
}

func (m *mockEngine) Generate(ctx context.Context, req outfit.Request) (*outfit.GeneratedOutfit, error) {
	m.mu.Lock()
	m.lastRequest = req
	fn := m.generateFn
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, req)
	}
	return &outfit.GeneratedOutfit{
		ID:       "outfit-1",
		UserID:   req.UserID,
		Items:    []wardrobe.ClothingItem{{ID: "tee", Name: "Tee"}, {ID: "jeans", Name: "Jeans"}},
		Strategy: outfit.StrategyMetadata{Name: outfit.StrategyTraditional},
		Warnings: append([]string{}, req.Warnings...),
	}, nil
}

func (m *mockEngine) Fallback(req outfit.Request, reason string) (*outfit.GeneratedOutfit, error) {
	m.mu.Lock()
	m.fallbackCalls++
	m.fallbackWhy = reason
	m.mu.Unlock()
	return &outfit.GeneratedOutfit{
		ID:        "emergency-1",
		UserID:    req.UserID,
		Emergency: true,
		Warnings:  []string{reason},
	}, nil
}

func (m *mockEngine) Strategies() []outfit.StrategyMetadata {
	return []outfit.StrategyMetadata{
		{Name: outfit.StrategyTraditional, Description: "classic"},
	}
}

func (m *mockEngine) Stats() outfit.Stats {
	return outfit.Stats{Requests: 7}
}

func (m *mockEngine) fallbacks() (int, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fallbackCalls, m.fallbackWhy
}

func (m *mockEngine) request() outfit.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastRequest
}

// mockStore implements WardrobeStore.
type mockStore struct {
	mu      sync.Mutex
	items    map[string][]wardrobe.ClothingItem
	profiles map[string]wardrobe.UserProfile
	ratings  []database.Rating
	err      error
}

func newMockStore() *mockStore {
	return &mockStore{
		items:    make(map[string][]wardrobe.ClothingItem),
		profiles: make(map[string]wardrobe.UserProfile),
	}
}

func (m *mockStore) GetWardrobe(_ context.Context, userID string) ([]wardrobe.ClothingItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]wardrobe.ClothingItem(nil), m.items[userID]...), nil
}

func (m *mockStore) UpsertItem(_ context.Context, userID string, item wardrobe.ClothingItem) (wardrobe.ClothingItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return wardrobe.ClothingItem{}, m.err
	}
	if item.ID == "" {
		item.ID = "generated-id"
	}
	item.UserID = userID
	m.items[userID] = append(m.items[userID], item)
	return item, nil
}

func (m *mockStore) GetProfile(_ context.Context, userID string) (wardrobe.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return wardrobe.UserProfile{}, m.err
	}
	return m.profiles[userID], nil
}

func (m *mockStore) UpsertProfile(_ context.Context, userID string, p wardrobe.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.profiles[userID] = p
	return nil
}

func (m *mockStore) RecordRating(_ context.Context, _ string, r database.Rating) (database.Rating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return database.Rating{}, m.err
	}
	r.ID = "rating-1"
	r.CreatedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.ratings = append(m.ratings, r)
	return r, nil
}

// mockHistory implements HistoryReader.
type mockHistory struct {
	records   []outfit.OutfitRecord
	lastLimit int
	err       error
}

func (m *mockHistory) GetRecentOutfits(_ context.Context, _ string, limit int) ([]outfit.OutfitRecord, error) {
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	if limit < len(m.records) {
		return m.records[:limit], nil
	}
	return m.records, nil
}

// mockCache implements CacheInvalidator.
type mockCache struct {
	mu          sync.Mutex
	invalidated []string
}

func (m *mockCache) Invalidate(_ context.Context, userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidated = append(m.invalidated, userID)
}
