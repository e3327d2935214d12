// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package database

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/stylist/internal/metrics"
	"github.com/tomtom215/stylist/internal/outfit"
	"github.com/tomtom215/stylist/internal/wardrobe"
)

var _ outfit.WardrobeSource = (*BreakerSource)(nil)

// BreakerSource wraps a WardrobeSource with a circuit breaker. While the
// circuit is open reads fail fast with gobreaker.ErrOpenState and the engine
// degrades to its emergency outfit.
type BreakerSource struct {
	source outfit.WardrobeSource
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
	logger zerolog.Logger
}

// BreakerConfig configures NewBreakerSource.
type BreakerConfig struct {
	Name        string
	MaxFailures uint32        // consecutive failures before opening
	Timeout     time.Duration // open to half-open delay
}

// NewBreakerSource wraps source.
func NewBreakerSource(source outfit.WardrobeSource, cfg BreakerConfig, logger zerolog.Logger) *BreakerSource {
	if cfg.Name == "" {
		cfg.Name = "wardrobe-db"
	}
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 5
	}
	b := &BreakerSource{
		source: source,
		name:   cfg.Name,
		logger: logger.With().Str("component", "breaker").Str("breaker", cfg.Name).Logger(),
	}

	metrics.CircuitBreakerState.WithLabelValues(cfg.Name).Set(0)

	b.cb = gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			b.logger.Warn().Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state transition")
			metrics.RecordBreakerTransition(name, from, to)
		},
		// A caller giving up is not a database failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
	})
	return b
}

// GetWardrobe implements outfit.WardrobeSource.
func (b *BreakerSource) GetWardrobe(ctx context.Context, userID string) ([]wardrobe.ClothingItem, error) {
	res, err := b.execute(func() (interface{}, error) {
		return b.source.GetWardrobe(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	items, _ := res.([]wardrobe.ClothingItem) //nolint:errcheck // type is fixed by the closure
	return items, nil
}

// GetProfile implements outfit.WardrobeSource.
func (b *BreakerSource) GetProfile(ctx context.Context, userID string) (wardrobe.UserProfile, error) {
	res, err := b.execute(func() (interface{}, error) {
		return b.source.GetProfile(ctx, userID)
	})
	if err != nil {
		return wardrobe.UserProfile{}, err
	}
	p, _ := res.(wardrobe.UserProfile) //nolint:errcheck // type is fixed by the closure
	return p, nil
}

// State returns the breaker state name.
func (b *BreakerSource) State() string {
	return b.cb.State().String()
}

func (b *BreakerSource) execute(fn func() (interface{}, error)) (interface{}, error) {
	res, err := b.cb.Execute(fn)
	metrics.RecordBreakerResult(b.name, err)
	return res, err
}
