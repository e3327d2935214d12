// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/stylist/internal/logging"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateAnalytics(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if _, err := c.Engine.ToOutfitConfig(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.GenerateBudget <= 0 || c.Server.GenerateBudget > c.Server.Timeout {
		return fmt.Errorf("GENERATE_BUDGET must be positive and no longer than HTTP_TIMEOUT, got %v", c.Server.GenerateBudget)
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("ENVIRONMENT must be development, staging or production, got %q", c.Server.Environment)
	}
	return nil
}

func (c *Config) validateStorage() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be non-negative, got %d", c.Database.Threads)
	}
	if c.Database.BreakerMaxFailures == 0 {
		return fmt.Errorf("BREAKER_MAX_FAILURES must be positive")
	}
	if c.Cache.Enabled && (c.Cache.TTL <= 0 || c.Cache.MaxCost <= 0 || c.Cache.NumCounters <= 0) {
		return fmt.Errorf("cache ttl, max_cost and num_counters must be positive when the cache is enabled")
	}
	if !c.History.InMemory && c.History.Path == "" {
		return fmt.Errorf("HISTORY_PATH is required unless HISTORY_IN_MEMORY=true")
	}
	if c.History.RetainOutfits < 1 {
		return fmt.Errorf("HISTORY_RETAIN_OUTFITS must be at least 1, got %d", c.History.RetainOutfits)
	}
	if c.History.SessionTTL <= 0 {
		return fmt.Errorf("HISTORY_SESSION_TTL must be positive")
	}
	if c.History.GCDiscardRatio <= 0 || c.History.GCDiscardRatio >= 1 {
		return fmt.Errorf("HISTORY_GC_DISCARD_RATIO must be in (0, 1), got %f", c.History.GCDiscardRatio)
	}
	return nil
}

func (c *Config) validateAnalytics() error {
	a := c.Analytics
	if !a.Enabled {
		return nil
	}
	if a.Topic == "" {
		return fmt.Errorf("ANALYTICS_TOPIC is required when analytics are enabled")
	}
	if a.Stream == "" || strings.ContainsAny(a.Stream, ".*> \t") {
		return fmt.Errorf("ANALYTICS_STREAM must be a non-empty name without dots, wildcards or spaces, got %q", a.Stream)
	}
	if !a.EmbeddedServer && !strings.HasPrefix(a.URL, "nats://") && !strings.HasPrefix(a.URL, "tls://") {
		return fmt.Errorf("NATS_URL must start with nats:// or tls://, got %q", a.URL)
	}
	if a.EmbeddedServer && (a.ServerPort < 0 || a.ServerPort > 65535) {
		return fmt.Errorf("NATS_PORT must be between 0 and 65535, got %d", a.ServerPort)
	}
	if a.BufferSize < 1 {
		return fmt.Errorf("ANALYTICS_BUFFER_SIZE must be at least 1, got %d", a.BufferSize)
	}
	if a.RatePerSecond < 0 {
		return fmt.Errorf("ANALYTICS_RATE_PER_SECOND must be non-negative")
	}
	if a.RatePerSecond > 0 && a.Burst < 1 {
		return fmt.Errorf("ANALYTICS_BURST must be at least 1 when throttling is enabled")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	s := c.Security
	if !s.RateLimitDisabled && (s.RateLimitReqs < 1 || s.RateLimitWindow <= 0) {
		return fmt.Errorf("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive")
	}
	if s.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024, got %d", s.MaxBodyBytes)
	}
	if c.IsProduction() {
		for _, o := range s.CORSOrigins {
			if o == "*" {
				return fmt.Errorf("CORS_ORIGINS must not contain * in production")
			}
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL %q is not a known level", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
