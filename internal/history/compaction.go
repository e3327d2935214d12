// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package history

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/stylist/internal/metrics"
)

// RunGC rewrites value log files until nothing is left to reclaim. It
// reports whether any file was rewritten. In-memory stores have no value
// log and return false.
func (s *Store) RunGC() (bool, error) {
	if err := s.checkOpen(); err != nil {
		return false, err
	}
	if s.cfg.InMemory {
		return false, nil
	}

	rewritten := false
	for {
		err := s.db.RunValueLogGC(s.cfg.GCDiscardRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			break
		}
		if err != nil {
			metrics.HistoryGCRuns.WithLabelValues("error").Inc()
			return rewritten, fmt.Errorf("run GC: %w", err)
		}
		rewritten = true
	}

	if rewritten {
		metrics.HistoryGCRuns.WithLabelValues("rewritten").Inc()
	} else {
		metrics.HistoryGCRuns.WithLabelValues("nothing").Inc()
	}
	return rewritten, nil
}

// Compactor runs value log GC periodically.
type Compactor struct {
	store    *Store
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	running bool
	lastRun time.Time
}

// NewCompactor creates a compactor for store.
func NewCompactor(store *Store, interval time.Duration) *Compactor {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &Compactor{store: store, interval: interval}
}

// Start begins the background loop.
func (c *Compactor) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return nil
	}
	c.ctx, c.cancel = context.WithCancel(ctx)
	c.running = true
	c.mu.Unlock()

	c.wg.Add(1)
	go c.run()

	c.store.logger.Info().Dur("interval", c.interval).Msg("History compactor started")
	return nil
}

// Stop stops the loop and waits for it to exit.
func (c *Compactor) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.cancel()
	c.running = false
	c.mu.Unlock()

	c.wg.Wait()
	c.store.logger.Info().Msg("History compactor stopped")
}

// IsRunning returns whether the loop is active.
func (c *Compactor) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// LastRun returns when GC last ran.
func (c *Compactor) LastRun() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastRun
}

func (c *Compactor) run() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.compact()
		}
	}
}

func (c *Compactor) compact() {
	start := time.Now()
	rewritten, err := c.store.RunGC()
	if err != nil && !errors.Is(err, ErrClosed) {
		c.store.logger.Error().Err(err).Msg("History value log GC failed")
	}

	c.mu.Lock()
	c.lastRun = time.Now()
	c.mu.Unlock()

	if rewritten {
		c.store.logger.Info().Dur("duration", time.Since(start)).Msg("History value log GC reclaimed space")
	}
}
