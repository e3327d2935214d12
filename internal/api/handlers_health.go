// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/tomtom215/stylist/internal/models"
)

// healthCheckTimeout bounds each dependency check.
const healthCheckTimeout = 2 * time.Second

// Health handles GET /health. Dependencies are checked concurrently; any
// failure turns the status into "degraded" with 503.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	names, checks := h.healthChecks()

	components := make(map[string]models.ComponentHealth, len(names))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, name := range names {
		wg.Add(1)
		go func(name string, check HealthCheck) {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
			defer cancel()

			result := models.ComponentHealth{Healthy: true}
			if err := check(ctx); err != nil {
				result = models.ComponentHealth{Healthy: false, Detail: err.Error()}
			}
			mu.Lock()
			components[name] = result
			mu.Unlock()
		}(name, checks[name])
	}
	wg.Wait()

	status := models.HealthStatus{
		Status:     "healthy",
		Version:    h.config.Version,
		Uptime:     time.Since(h.startTime).Seconds(),
		Components: components,
		Engine:     h.engine.Stats(),
	}
	code := http.StatusOK
	for _, c := range components {
		if !c.Healthy {
			status.Status = "degraded"
			code = http.StatusServiceUnavailable
			break
		}
	}

	respondSuccess(w, r, code, status, start)
}
