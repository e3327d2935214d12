// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package main

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/stylist/internal/config"
	"github.com/tomtom215/stylist/internal/outfit"
)

func TestInitAnalytics_Disabled(t *testing.T) {
	t.Parallel()

	c, err := InitAnalytics(context.Background(), &config.AnalyticsConfig{Enabled: false})
	if err != nil {
		t.Fatalf("InitAnalytics() error = %v", err)
	}
	if c != nil {
		t.Fatalf("InitAnalytics() = %+v, want nil when disabled", c)
	}

	// nil components are safe to use
	if c.Sink() != nil {
		t.Error("Sink() on nil components should be nil")
	}
	if err := c.Check(context.Background()); err != nil {
		t.Errorf("Check() on nil components = %v", err)
	}
	c.Shutdown(context.Background())
}

func TestInitAnalytics_EmbeddedServer(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c, err := InitAnalytics(ctx, &config.AnalyticsConfig{
		Enabled:        true,
		Topic:          "outfit.strategy.executed",
		Stream:         "STYLIST_MAIN_TEST",
		StreamMaxAge:   time.Hour,
		EmbeddedServer: true,
		ServerHost:     "127.0.0.1",
		ServerPort:     0,
		StoreDir:       t.TempDir(),
		BufferSize:     8,
		MaxReconnects:  1,
		ReconnectWait:  100 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("InitAnalytics() error = %v", err)
	}
	defer c.Shutdown(context.Background())

	sink := c.Sink()
	if sink == nil {
		t.Fatal("Sink() = nil with analytics enabled")
	}
	if err := sink.Start(ctx); err != nil {
		t.Fatalf("sink Start() error = %v", err)
	}
	sink.RecordStrategyExecution(outfit.StrategyExecution{
		UserID:    "user-1",
		Strategy:  outfit.StrategyTraditional,
		Timestamp: time.Now(),
	})
	sink.Stop()

	if got := sink.Stats().Published; got != 1 {
		t.Errorf("Published = %d, want 1", got)
	}
	if err := c.Check(ctx); err != nil {
		t.Errorf("Check() = %v, want healthy", err)
	}
}
