// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

/*
Package main is the Stylist server.

Stylist composes outfits from a user's wardrobe for an occasion, the
weather and the user's profile, and serves them over a JSON HTTP API.

# Startup order

 1. Configuration: Koanf v2 (defaults, optional config.yaml, environment)
 2. Logging: zerolog, JSON or console
 3. Wardrobe store: DuckDB, wrapped by a Ristretto read cache and a
    gobreaker circuit breaker
 4. History: BadgerDB for recent outfits, session registry and rotation
    counters
 5. Analytics: watermill NATS publisher, against an embedded or external
    server (optional)
 6. Engine: six analyzers plus the storage and analytics collaborators
 7. HTTP: chi router
 8. Supervisor tree: suture v4, serving until SIGINT or SIGTERM

# Supervisor tree

	stylist
	├── data-layer
	│   └── history-compactor
	├── messaging-layer
	│   └── analytics-sink (if ANALYTICS_ENABLED)
	└── api-layer
	    └── http-server

# Configuration

Common environment variables:

	HTTP_PORT, HTTP_HOST             listen address
	GENERATE_BUDGET                  per-request generation limit (e.g. 2s)
	DUCKDB_PATH                      wardrobe database file
	HISTORY_PATH, HISTORY_IN_MEMORY  badger directory or in-memory mode
	ANALYTICS_ENABLED                strategy analytics on or off
	NATS_EMBEDDED, NATS_URL          embedded server or external broker
	LOG_LEVEL, LOG_FORMAT            trace..error, json or console

# Example

	export DUCKDB_PATH=./data/stylist.duckdb
	export HISTORY_PATH=./data/history
	export NATS_STORE_DIR=./data/nats
	export LOG_FORMAT=console
	./stylist
*/
package main
