// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/stylist/internal/history"
)

var (
	_ suture.Service = (*LifecycleService)(nil)
	_ StartStopper   = (*history.Compactor)(nil)
)

type fakeComponent struct {
	mu       sync.Mutex
	running  bool
	starts   int
	stops    int
	startErr error
}

func (f *fakeComponent) Start(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts++
	if f.startErr != nil {
		return f.startErr
	}
	f.running = true
	return nil
}

func (f *fakeComponent) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	f.running = false
}

func (f *fakeComponent) IsRunning() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running
}

func TestLifecycleService_StartsAndStops(t *testing.T) {
	t.Parallel()

	comp := &fakeComponent{}
	svc := NewLifecycleService("analytics-sink", comp)
	if svc.String() != "analytics-sink" {
		t.Errorf("String() = %q", svc.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.Now().Add(time.Second)
	for !comp.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if !comp.IsRunning() {
		t.Fatal("component not started")
	}

	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if comp.IsRunning() || comp.stops != 1 {
		t.Errorf("running = %v, stops = %d; want stopped once", comp.IsRunning(), comp.stops)
	}
}

func TestLifecycleService_StartError(t *testing.T) {
	t.Parallel()

	startErr := errors.New("broker unreachable")
	comp := &fakeComponent{startErr: startErr}

	err := NewLifecycleService("analytics-sink", comp).Serve(context.Background())
	if !errors.Is(err, startErr) {
		t.Errorf("Serve() = %v, want %v", err, startErr)
	}
	if comp.stops != 0 {
		t.Errorf("Stop called %d times after failed Start", comp.stops)
	}
}

func TestLifecycleService_HistoryCompactor(t *testing.T) {
	t.Parallel()

	store, err := history.Open(history.Config{InMemory: true}, zerolog.Nop())
	if err != nil {
		t.Fatalf("history.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	compactor := history.NewCompactor(store, time.Hour)
	sup := suture.New("test-data-layer", suture.Spec{Timeout: time.Second})
	sup.Add(NewLifecycleService("history-compactor", compactor))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	deadline := time.Now().Add(time.Second)
	for !compactor.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if !compactor.IsRunning() {
		t.Fatal("compactor not running under supervisor")
	}

	cancel()
	<-errCh
	if compactor.IsRunning() {
		t.Error("compactor still running after supervisor stopped")
	}
}
