// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/stylist/internal/outfit"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/stylist/config.yaml",
	"/etc/stylist/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all defaults. Engine values mirror
// outfit.DefaultConfig so an empty engine section changes nothing.
func defaultConfig() *Config {
	eng := outfit.DefaultConfig()
	return &Config{
		Server: ServerConfig{
			Port:            8420,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			GenerateBudget:  3 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Environment:     "development",
		},
		Database: DatabaseConfig{
			Path:               "/data/stylist.duckdb",
			MaxMemory:          "1GB",
			Threads:            0,
			BreakerMaxFailures: 5,
			BreakerTimeout:     30 * time.Second,
		},
		Cache: CacheConfig{
			Enabled:     true,
			TTL:         2 * time.Minute,
			NumCounters: 100_000,
			MaxCost:     64 << 20,
		},
		History: HistoryConfig{
			Path:           "/data/history",
			InMemory:       false,
			RetainOutfits:  50,
			SessionTTL:     eng.Session.SeenTTL,
			GCInterval:     10 * time.Minute,
			GCDiscardRatio: 0.5,
		},
		Analytics: AnalyticsConfig{
			Enabled:        true,
			URL:            "nats://127.0.0.1:4222",
			Topic:          "outfit.strategy.executed",
			Stream:         "STYLIST_ANALYTICS",
			StreamMaxAge:   7 * 24 * time.Hour,
			EmbeddedServer: true,
			ServerHost:     "127.0.0.1",
			ServerPort:     4222,
			StoreDir:       "",
			BufferSize:     1024,
			RatePerSecond:  200,
			Burst:          50,
			MaxReconnects:  -1,
			ReconnectWait:  2 * time.Second,
		},
		Engine: EngineConfig{
			Seed:            eng.Seed,
			RotationShare:   eng.Strategy.RotationShare,
			AnalyzerTimeout: eng.Limits.AnalyzerTimeout,
			MaxWardrobe:     eng.Limits.MaxWardrobe,
			Weights: WeightsConfig{
				BodyType:      eng.Weights.BodyType,
				StyleProfile:  eng.Weights.StyleProfile,
				Weather:       eng.Weights.Weather,
				UserFeedback:  eng.Weights.UserFeedback,
				Compatibility: eng.Weights.Compatibility,
				Diversity:     eng.Weights.Diversity,
			},
			FavoritesThreshold:      eng.Favorites.Threshold,
			RecentOutfits:           eng.Diversity.RecentOutfits,
			SimilarityThreshold:     eng.Diversity.SimilarityThreshold,
			SessionOverlapThreshold: eng.Diversity.SessionOverlapThreshold,
			SessionPenaltyScale:     eng.Session.PenaltyScale,
			MinItems:                eng.Layering.MinItems,
			MaxItems:                eng.Layering.MaxItems,
			MaxAccessories:          eng.Layering.MaxAccessories,
			ExplorationRate:         eng.Layering.ExplorationRate,
		},
		Security: SecurityConfig{
			RateLimitReqs:     120,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
			MaxBodyBytes:      4 << 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load reads configuration with layered sources:
//  1. Defaults
//  2. Config File (optional)
//  3. Environment Variables
//
// Precedence is ENV > File > Defaults. The result is validated.
func Load() (*Config, error) {
	return LoadFile(findConfigFile())
}

// LoadFile is Load with an explicit config file path. An empty path skips
// the file layer.
func LoadFile(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// HTTP_PORT -> server.port, DUCKDB_PATH -> database.path, ...
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first config file found, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated environment values.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated strings to slices for known
// slice fields. Values from YAML are already slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to config paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	// Server
	"http_port":        "server.port",
	"http_host":        "server.host",
	"http_timeout":     "server.timeout",
	"generate_budget":  "server.generate_budget",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// Database
	"duckdb_path":          "database.path",
	"duckdb_max_memory":    "database.max_memory",
	"duckdb_threads":       "database.threads",
	"breaker_max_failures": "database.breaker_max_failures",
	"breaker_timeout":      "database.breaker_timeout",

	// Cache
	"cache_enabled":  "cache.enabled",
	"cache_ttl":      "cache.ttl",
	"cache_max_cost": "cache.max_cost",

	// History
	"history_path":             "history.path",
	"history_in_memory":        "history.in_memory",
	"history_retain_outfits":   "history.retain_outfits",
	"history_session_ttl":      "history.session_ttl",
	"history_gc_interval":      "history.gc_interval",
	"history_gc_discard_ratio": "history.gc_discard_ratio",

	// Analytics
	"analytics_enabled":         "analytics.enabled",
	"nats_url":                  "analytics.url",
	"nats_embedded":             "analytics.embedded_server",
	"nats_host":                 "analytics.server_host",
	"nats_port":                 "analytics.server_port",
	"nats_store_dir":            "analytics.store_dir",
	"analytics_topic":           "analytics.topic",
	"analytics_stream":          "analytics.stream",
	"analytics_stream_max_age":  "analytics.stream_max_age",
	"analytics_buffer_size":     "analytics.buffer_size",
	"analytics_rate_per_second": "analytics.rate_per_second",
	"analytics_burst":           "analytics.burst",

	// Engine
	"engine_seed":             "engine.seed",
	"engine_rotation_share":   "engine.rotation_share",
	"engine_analyzer_timeout": "engine.analyzer_timeout",
	"engine_max_wardrobe":     "engine.max_wardrobe",
	"engine_max_items":        "engine.max_items",
	"engine_min_items":        "engine.min_items",
	"engine_exploration_rate": "engine.exploration_rate",
	"favorites_threshold":     "engine.favorites_threshold",

	// Security
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",
	"max_body_bytes":      "security.max_body_bytes",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to a config path, or
// "" to skip it.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
