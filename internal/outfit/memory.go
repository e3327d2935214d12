// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package outfit

import (
	"context"
	"sync"
)

// MemoryHistory is an in-process HistoryStore and DiversityHistory. It keeps
// at most limit outfits per user. Safe for concurrent use.
type MemoryHistory struct {
	mu       sync.RWMutex
	limit    int
	outfits  map[string][]OutfitRecord // newest last
	sessions map[string]map[string]int
}

// NewMemoryHistory creates a store retaining limit outfits per user.
func NewMemoryHistory(limit int) *MemoryHistory {
	if limit <= 0 {
		limit = 50
	}
	return &MemoryHistory{
		limit:    limit,
		outfits:  make(map[string][]OutfitRecord),
		sessions: make(map[string]map[string]int),
	}
}

// GetRecentOutfits returns up to limit outfits, newest first.
func (m *MemoryHistory) GetRecentOutfits(_ context.Context, userID string, limit int) ([]OutfitRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.outfits[userID]
	if limit <= 0 || limit > len(all) {
		limit = len(all)
	}
	out := make([]OutfitRecord, 0, limit)
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

// RecordOutfitGeneration appends an outfit.
//
//nolint:gocritic // hugeParam: record is stored by value
func (m *MemoryHistory) RecordOutfitGeneration(_ context.Context, userID string, record OutfitRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record.ItemIDs = append([]string(nil), record.ItemIDs...)
	list := append(m.outfits[userID], record)
	if len(list) > m.limit {
		list = list[len(list)-m.limit:]
	}
	m.outfits[userID] = list
	return nil
}

// SeenInSession returns a copy of the session's seen counts.
func (m *MemoryHistory) SeenInSession(_ context.Context, sessionID string) (map[string]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := m.sessions[sessionID]
	out := make(map[string]int, len(seen))
	for id, n := range seen {
		out[id] = n
	}
	return out, nil
}

// MarkSeen increments the seen count of each item.
func (m *MemoryHistory) MarkSeen(_ context.Context, sessionID string, itemIDs []string) error {
	if sessionID == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := m.sessions[sessionID]
	if seen == nil {
		seen = make(map[string]int, len(itemIDs))
		m.sessions[sessionID] = seen
	}
	for _, id := range itemIDs {
		seen[id]++
	}
	return nil
}

// MemoryRotation is an in-process RotationState.
type MemoryRotation struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewMemoryRotation creates an empty rotation counter.
func NewMemoryRotation() *MemoryRotation {
	return &MemoryRotation{counts: make(map[string]int)}
}

// Count returns the user's generation count.
func (r *MemoryRotation) Count(_ context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[userID], nil
}

// Increment adds one to the user's count.
func (r *MemoryRotation) Increment(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[userID]++
	return nil
}

var (
	_ HistoryStore     = (*MemoryHistory)(nil)
	_ DiversityHistory = (*MemoryHistory)(nil)
	_ RotationState    = (*MemoryRotation)(nil)
)
