// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

/*
Package api provides the Stylist HTTP API on a chi router.

Endpoints:

	POST /api/v1/outfits/generate         compose an outfit
	GET  /api/v1/strategies               list selection strategies
	GET  /api/v1/users/{userID}/outfits   recent outfits, newest first (?limit=N)
	GET  /api/v1/users/{userID}/items     the stored wardrobe
	POST /api/v1/users/{userID}/items     create or update an item
	GET  /api/v1/users/{userID}/profile   the stored profile
	PUT  /api/v1/users/{userID}/profile   replace the profile
	POST /api/v1/users/{userID}/ratings   rate an outfit
	GET  /health                          dependency status and engine counters
	GET  /metrics                         Prometheus exposition

Every JSON response uses the models.APIResponse envelope.

# Generation budget

POST /outfits/generate runs under HandlerConfig.GenerateBudget. If the
budget expires while the client is still connected, the handler answers
200 with the engine's emergency outfit, which carries a warning explaining
the fallback, and increments outfit_budget_exceeded_total. A client
disconnect is answered with 499 and no outfit.

# Middleware

Global: RealIP, RequestID, AccessLog, Recoverer, CORS, PrometheusMetrics.
Under /api/v1: per-IP rate limit (go-chi/httprate), security headers and
gzip. Generation and the write endpoints carry tighter limits.

# Usage

	handler := api.NewHandler(engine, db, historyStore, cachedSource, api.HandlerConfig{
	    GenerateBudget: cfg.Server.GenerateBudget,
	    MaxBodyBytes:   cfg.Security.MaxBodyBytes,
	}, logger)
	handler.AddHealthCheck("database", db.Ping)

	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(&cfg.Security)))
	srv := &http.Server{Handler: router.Setup()}
*/
package api
