// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

/*
Package middleware provides chi-compatible HTTP middleware.

  - RequestID: assigns or propagates X-Request-ID and seeds the logging
    context with request and correlation IDs
  - AccessLog: one zerolog line per request, level chosen by status and
    latency
  - PrometheusMetrics: api_requests_total, api_request_duration_seconds and
    api_active_requests, labelled by chi route pattern

All three have the func(http.Handler) http.Handler shape and are mounted
with r.Use in the api package router:

	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(logger, time.Second))
	r.Use(middleware.PrometheusMetrics)

RequestID must run before AccessLog so the log line carries the IDs.
*/
package middleware
