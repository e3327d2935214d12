// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

// Package config loads the Stylist server configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in values from defaultConfig
//  2. Config File: optional YAML file (CONFIG_PATH or config.yaml)
//  3. Environment Variables: explicit names mapped in envTransformFunc
//
// Config is immutable after Load and safe for concurrent reads.
package config

import (
	"time"
)

// Config holds all server configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Cache     CacheConfig     `koanf:"cache"`
	History   HistoryConfig   `koanf:"history"`
	Analytics AnalyticsConfig `koanf:"analytics"`
	Engine    EngineConfig    `koanf:"engine"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`

	// GenerateBudget is the wall-clock limit for one outfit generation.
	// When it expires the handler answers with the emergency outfit.
	GenerateBudget time.Duration `koanf:"generate_budget"`

	// ShutdownTimeout bounds graceful shutdown of the HTTP server.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	Environment string `koanf:"environment"` // development, staging, production
}

// DatabaseConfig holds DuckDB settings for the wardrobe store.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = use NumCPU

	// Circuit breaker around wardrobe reads.
	BreakerMaxFailures uint32        `koanf:"breaker_max_failures"`
	BreakerTimeout     time.Duration `koanf:"breaker_timeout"`
}

// CacheConfig holds the wardrobe read cache settings.
type CacheConfig struct {
	Enabled     bool          `koanf:"enabled"`
	TTL         time.Duration `koanf:"ttl"`
	NumCounters int64         `koanf:"num_counters"`
	MaxCost     int64         `koanf:"max_cost"`
}

// HistoryConfig holds BadgerDB settings for outfit history, the session
// registry and rotation counters.
type HistoryConfig struct {
	Path     string `koanf:"path"`
	InMemory bool   `koanf:"in_memory"`

	// RetainOutfits caps stored outfits per user.
	RetainOutfits int `koanf:"retain_outfits"`

	// SessionTTL is how long a session remembers shown items.
	SessionTTL time.Duration `koanf:"session_ttl"`

	GCInterval     time.Duration `koanf:"gc_interval"`
	GCDiscardRatio float64       `koanf:"gc_discard_ratio"`
}

// AnalyticsConfig holds the strategy analytics publisher settings.
type AnalyticsConfig struct {
	Enabled bool   `koanf:"enabled"`
	URL     string `koanf:"url"`
	Topic   string `koanf:"topic"`

	// Stream is the JetStream stream capturing Topic.
	Stream       string        `koanf:"stream"`
	StreamMaxAge time.Duration `koanf:"stream_max_age"`

	// EmbeddedServer starts an in-process NATS server and publishes to it.
	EmbeddedServer bool   `koanf:"embedded_server"`
	ServerHost     string `koanf:"server_host"`
	ServerPort     int    `koanf:"server_port"`
	StoreDir       string `koanf:"store_dir"`

	// BufferSize is the queue between the engine and the publisher.
	// Events beyond it are dropped.
	BufferSize int `koanf:"buffer_size"`

	// RatePerSecond and Burst throttle publishing; 0 disables throttling.
	RatePerSecond float64 `koanf:"rate_per_second"`
	Burst         int     `koanf:"burst"`

	MaxReconnects int           `koanf:"max_reconnects"`
	ReconnectWait time.Duration `koanf:"reconnect_wait"`
}

// EngineConfig holds the tunable outfit engine parameters. Anything not
// listed keeps the engine's built-in default.
type EngineConfig struct {
	Seed            int64         `koanf:"seed"`
	RotationShare   float64       `koanf:"rotation_share"`
	AnalyzerTimeout time.Duration `koanf:"analyzer_timeout"`
	MaxWardrobe     int           `koanf:"max_wardrobe"`

	Weights WeightsConfig `koanf:"weights"`

	FavoritesThreshold      float64 `koanf:"favorites_threshold"`
	RecentOutfits           int     `koanf:"recent_outfits"`
	SimilarityThreshold     float64 `koanf:"similarity_threshold"`
	SessionOverlapThreshold float64 `koanf:"session_overlap_threshold"`
	SessionPenaltyScale     float64 `koanf:"session_penalty_scale"`

	MinItems        int     `koanf:"min_items"`
	MaxItems        int     `koanf:"max_items"`
	MaxAccessories  int     `koanf:"max_accessories"`
	ExplorationRate float64 `koanf:"exploration_rate"`

	// Keywords overrides the hard filter keyword lists per occasion family
	// (athletic, business, loungewear, party, casual).
	Keywords map[string]KeywordList `koanf:"keywords"`
}

// WeightsConfig holds the base scoring dimension weights.
type WeightsConfig struct {
	BodyType      float64 `koanf:"body_type"`
	StyleProfile  float64 `koanf:"style_profile"`
	Weather       float64 `koanf:"weather"`
	UserFeedback  float64 `koanf:"user_feedback"`
	Compatibility float64 `koanf:"compatibility"`
	Diversity     float64 `koanf:"diversity"`
}

// KeywordList is one family's keyword override.
type KeywordList struct {
	Block []string `koanf:"block"`
	Allow []string `koanf:"allow"`
}

// SecurityConfig holds request limiting and CORS settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	MaxBodyBytes      int64         `koanf:"max_body_bytes"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
