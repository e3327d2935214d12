// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"budget over timeout", func(c *Config) { c.Server.GenerateBudget = time.Minute }, "GENERATE_BUDGET"},
		{"unknown environment", func(c *Config) { c.Server.Environment = "qa" }, "ENVIRONMENT"},
		{"empty duckdb path", func(c *Config) { c.Database.Path = "" }, "DUCKDB_PATH"},
		{"zero breaker failures", func(c *Config) { c.Database.BreakerMaxFailures = 0 }, "BREAKER_MAX_FAILURES"},
		{"cache without cost", func(c *Config) { c.Cache.MaxCost = 0 }, "cache"},
		{"disabled cache ignores cost", func(c *Config) { c.Cache.Enabled = false; c.Cache.MaxCost = 0 }, ""},
		{"history path required", func(c *Config) { c.History.Path = "" }, "HISTORY_PATH"},
		{"in-memory history needs no path", func(c *Config) { c.History.Path = ""; c.History.InMemory = true }, ""},
		{"discard ratio", func(c *Config) { c.History.GCDiscardRatio = 1 }, "GC_DISCARD_RATIO"},
		{"bad nats url", func(c *Config) { c.Analytics.EmbeddedServer = false; c.Analytics.URL = "http://x" }, "NATS_URL"},
		{"disabled analytics skip checks", func(c *Config) { c.Analytics.Enabled = false; c.Analytics.BufferSize = 0 }, ""},
		{"dotted stream name", func(c *Config) { c.Analytics.Stream = "outfit.events" }, "ANALYTICS_STREAM"},
		{"zero buffer", func(c *Config) { c.Analytics.BufferSize = 0 }, "BUFFER_SIZE"},
		{"wildcard cors in production", func(c *Config) { c.Server.Environment = "production" }, "CORS_ORIGINS"},
		{"tiny body limit", func(c *Config) { c.Security.MaxBodyBytes = 10 }, "MAX_BODY_BYTES"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
		{"engine bounds", func(c *Config) { c.Engine.MinItems = 8; c.Engine.MaxItems = 4 }, "engine"},
		{"rotation share above one", func(c *Config) { c.Engine.RotationShare = 1.5 }, "engine"},
		{"unknown keyword family", func(c *Config) {
			c.Engine.Keywords = map[string]KeywordList{"opera": {Block: []string{"x"}}}
		}, "unknown family"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestOutfitConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Engine.Seed = 99
	cfg.Engine.MaxAccessories = 1
	cfg.Engine.Weights.Diversity = 0.3
	cfg.History.SessionTTL = time.Hour

	oc, err := cfg.OutfitConfig()
	if err != nil {
		t.Fatalf("OutfitConfig() error = %v", err)
	}
	if oc.Seed != 99 {
		t.Errorf("Seed = %d, want 99", oc.Seed)
	}
	if oc.Layering.MaxAccessories != 1 {
		t.Errorf("Layering.MaxAccessories = %d, want 1", oc.Layering.MaxAccessories)
	}
	if oc.Weights.Diversity != 0.3 {
		t.Errorf("Weights.Diversity = %v, want 0.3", oc.Weights.Diversity)
	}
	if oc.Session.SeenTTL != time.Hour {
		t.Errorf("Session.SeenTTL = %v, want 1h", oc.Session.SeenTTL)
	}
	if len(oc.EmergencyPieces) == 0 {
		t.Error("EmergencyPieces should keep the built-in outfit")
	}
}
