// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package services

import (
	"context"
	"fmt"
)

// StartStopper is a component with its own background goroutine.
//
// Satisfied by:
//   - *history.Compactor (badger value-log GC loop)
//   - *analytics.Sink (analytics publisher queue)
type StartStopper interface {
	Start(ctx context.Context) error
	Stop()
	IsRunning() bool
}

// LifecycleService adapts a StartStopper to suture's Serve pattern:
//  1. Start(ctx) spawns the component's goroutine
//  2. Serve blocks until the context is canceled
//  3. Stop() waits for the goroutine to finish
//
// A Start error is returned so suture restarts the service with backoff.
//
//	compactor := history.NewCompactor(store, cfg.History.GCInterval)
//	tree.AddDataService(services.NewLifecycleService("history-compactor", compactor))
type LifecycleService struct {
	component StartStopper
	name      string
}

// NewLifecycleService wraps component under name.
func NewLifecycleService(name string, component StartStopper) *LifecycleService {
	return &LifecycleService{component: component, name: name}
}

// Serve implements suture.Service.
func (s *LifecycleService) Serve(ctx context.Context) error {
	if err := s.component.Start(ctx); err != nil {
		return fmt.Errorf("%s start failed: %w", s.name, err)
	}

	<-ctx.Done()

	s.component.Stop()
	return ctx.Err()
}

// String names the service in suture events.
func (s *LifecycleService) String() string {
	return s.name
}
