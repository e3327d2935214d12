// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package api

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/stylist/internal/database"
	"github.com/tomtom215/stylist/internal/outfit"
	"github.com/tomtom215/stylist/internal/wardrobe"
)

// Generator is the part of outfit.Engine the handlers use.
type Generator interface {
	Generate(ctx context.Context, req outfit.Request) (*outfit.GeneratedOutfit, error)
	Fallback(req outfit.Request, reason string) (*outfit.GeneratedOutfit, error)
	Strategies() []outfit.StrategyMetadata
	Stats() outfit.Stats
}

// WardrobeStore persists items, profiles and ratings. *database.DB
// implements it.
type WardrobeStore interface {
	GetWardrobe(ctx context.Context, userID string) ([]wardrobe.ClothingItem, error)
	UpsertItem(ctx context.Context, userID string, item wardrobe.ClothingItem) (wardrobe.ClothingItem, error)
	GetProfile(ctx context.Context, userID string) (wardrobe.UserProfile, error)
	UpsertProfile(ctx context.Context, userID string, p wardrobe.UserProfile) error
	RecordRating(ctx context.Context, userID string, r database.Rating) (database.Rating, error)
}

// HistoryReader lists past outfits. *history.Store implements it.
type HistoryReader interface {
	GetRecentOutfits(ctx context.Context, userID string, limit int) ([]outfit.OutfitRecord, error)
}

// CacheInvalidator drops cached wardrobe reads after a write.
// *database.CachedSource implements it.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, userID string)
}

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

// HandlerConfig holds the request limits the handlers enforce.
type HandlerConfig struct {
	// GenerateBudget bounds one generation; on expiry the emergency outfit
	// is returned instead. Zero disables the budget.
	GenerateBudget time.Duration

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64

	// HistoryLimit is the default and maximum page of recent outfits.
	HistoryLimit int

	Version string
}

const (
	defaultMaxBodyBytes = 2 << 20
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: response and decoding helpers
//   - handlers_outfits.go: generation, history and strategies
//   - handlers_wardrobe.go: item intake, profiles and ratings
//   - handlers_health.go: health endpoint
type Handler struct {
	engine  Generator
	store   WardrobeStore
	history HistoryReader
	cache   CacheInvalidator
	config  HandlerConfig
	logger  zerolog.Logger

	checksMu sync.RWMutex
	checks   map[string]HealthCheck

	startTime time.Time
}

// NewHandler creates a handler. history and cache may be nil.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHandler(engine Generator, store WardrobeStore, history HistoryReader, cache CacheInvalidator, cfg HandlerConfig, logger zerolog.Logger) *Handler {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	if cfg.HistoryLimit <= 0 || cfg.HistoryLimit > maxHistoryLimit {
		cfg.HistoryLimit = defaultHistoryLimit
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	return &Handler{
		engine:    engine,
		store:     store,
		history:   history,
		cache:     cache,
		config:    cfg,
		logger:    logger.With().Str("component", "api").Logger(),
		checks:    make(map[string]HealthCheck),
		startTime: time.Now(),
	}
}

// AddHealthCheck registers a dependency reported by GET /health.
func (h *Handler) AddHealthCheck(name string, check HealthCheck) {
	h.checksMu.Lock()
	defer h.checksMu.Unlock()
	h.checks[name] = check
}

func (h *Handler) healthChecks() ([]string, map[string]HealthCheck) {
	h.checksMu.RLock()
	defer h.checksMu.RUnlock()
	names := make([]string, 0, len(h.checks))
	checks := make(map[string]HealthCheck, len(h.checks))
	for name, c := range h.checks {
		names = append(names, name)
		checks[name] = c
	}
	sort.Strings(names)
	return names, checks
}
