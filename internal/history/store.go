// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package history

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/stylist/internal/metrics"
	"github.com/tomtom215/stylist/internal/outfit"
)

var (
	_ outfit.HistoryStore     = (*Store)(nil)
	_ outfit.DiversityHistory = (*Store)(nil)
	_ outfit.RotationState    = (*Store)(nil)
)

// Errors
var (
	// ErrClosed is returned when the store is closed.
	ErrClosed = errors.New("history store is closed")

	// ErrInvalidID is returned for empty ids or ids containing NUL.
	ErrInvalidID = errors.New("invalid id")
)

// maxConflictRetries bounds optimistic transaction retries.
const maxConflictRetries = 32

// Key prefixes. Components are separated by NUL so ids cannot collide.
const (
	prefixOutfit   = "o\x00"
	prefixSeen     = "s\x00"
	prefixRotation = "r\x00"
)

// Config holds store settings.
type Config struct {
	Path     string
	InMemory bool

	// RetainOutfits caps stored outfits per user.
	RetainOutfits int

	// SessionTTL expires session seen entries.
	SessionTTL time.Duration

	// GCDiscardRatio is passed to RunValueLogGC.
	GCDiscardRatio float64
}

// Store keeps outfit history, session seen counts and rotation counters in
// BadgerDB. It implements outfit.HistoryStore, outfit.DiversityHistory and
// outfit.RotationState.
type Store struct {
	db     *badger.DB
	cfg    Config
	logger zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

// Open opens (or creates) the store.
func Open(cfg Config, logger zerolog.Logger) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, fmt.Errorf("history path is required")
	}
	if cfg.RetainOutfits <= 0 {
		cfg.RetainOutfits = 50
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 6 * time.Hour
	}
	if cfg.GCDiscardRatio <= 0 || cfg.GCDiscardRatio >= 1 {
		cfg.GCDiscardRatio = 0.5
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	s := &Store{
		db:     db,
		cfg:    cfg,
		logger: logger.With().Str("component", "history").Logger(),
	}
	s.logger.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Int("retain_outfits", cfg.RetainOutfits).
		Msg("History store opened")
	return s, nil
}

// Close closes the database. Further calls return ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func (s *Store) checkOpen() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

func validID(id string) error {
	if id == "" || strings.ContainsRune(id, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// update runs fn in a read-write transaction, retrying on conflicts.
func (s *Store) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
		if attempt >= maxConflictRetries {
			return fmt.Errorf("transaction conflict after %d retries: %w", attempt, err)
		}
		metrics.HistoryTxnConflicts.Inc()
		time.Sleep(time.Duration(attempt+1) * 100 * time.Microsecond)
	}
}

// outfitKey orders a user's outfits newest first under forward iteration.
func outfitKey(userID string, createdAt time.Time, id string) []byte {
	inverted := uint64(math.MaxInt64 - createdAt.UnixNano())
	return []byte(fmt.Sprintf("%s%s\x00%020d\x00%s", prefixOutfit, userID, inverted, id))
}

func outfitPrefix(userID string) []byte {
	return []byte(prefixOutfit + userID + "\x00")
}

// RecordOutfitGeneration stores record and trims the user's history to
// RetainOutfits entries.
//
//nolint:gocritic // hugeParam: record is stored by value
func (s *Store) RecordOutfitGeneration(ctx context.Context, userID string, record outfit.OutfitRecord) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := validID(userID); err != nil {
		return err
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	record.UserID = userID

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal outfit record: %w", err)
	}
	key := outfitKey(userID, record.CreatedAt, record.ID)
	prefix := outfitPrefix(userID)

	return s.update(ctx, func(txn *badger.Txn) error {
		if err := txn.Set(key, data); err != nil {
			return err
		}

		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)

		var stale [][]byte
		n := 0
		for it.Rewind(); it.Valid(); it.Next() {
			n++
			if n > s.cfg.RetainOutfits {
				stale = append(stale, it.Item().KeyCopy(nil))
			}
		}
		it.Close()

		for _, k := range stale {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetRecentOutfits returns up to limit outfits, newest first. A limit of
// zero or less returns every retained outfit.
func (s *Store) GetRecentOutfits(_ context.Context, userID string, limit int) ([]outfit.OutfitRecord, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if err := validID(userID); err != nil {
		return nil, err
	}

	out := make([]outfit.OutfitRecord, 0)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = outfitPrefix(userID)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if limit > 0 && len(out) >= limit {
				break
			}
			var rec outfit.OutfitRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				s.logger.Warn().Err(err).Str("user_id", userID).Msg("Skipping unreadable outfit record")
				continue
			}
			out = append(out, rec)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read outfit history: %w", err)
	}
	return out, nil
}

func seenPrefix(sessionID string) []byte {
	return []byte(prefixSeen + sessionID + "\x00")
}

// MarkSeen increments each item's seen count in the session. Entries expire
// SessionTTL after the last mark. An empty session id is a no-op.
func (s *Store) MarkSeen(ctx context.Context, sessionID string, itemIDs []string) error {
	if sessionID == "" || len(itemIDs) == 0 {
		return nil
	}
	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := validID(sessionID); err != nil {
		return err
	}
	prefix := seenPrefix(sessionID)

	return s.update(ctx, func(txn *badger.Txn) error {
		for _, id := range itemIDs {
			if validID(id) != nil {
				continue
			}
			key := append(append([]byte(nil), prefix...), id...)
			n, err := readCounter(txn, key)
			if err != nil {
				return err
			}
			e := badger.NewEntry(key, encodeCounter(n+1)).WithTTL(s.cfg.SessionTTL)
			if err := txn.SetEntry(e); err != nil {
				return err
			}
		}
		return nil
	})
}

// SeenInSession returns the seen count of every item shown in the session.
func (s *Store) SeenInSession(_ context.Context, sessionID string) (map[string]int, error) {
	out := make(map[string]int)
	if sessionID == "" {
		return out, nil
	}
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if err := validID(sessionID); err != nil {
		return nil, err
	}

	prefix := seenPrefix(sessionID)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			id := string(item.Key()[len(prefix):])
			if err := item.Value(func(val []byte) error {
				out[id] = int(decodeCounter(val))
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	return out, nil
}

func rotationKey(userID string) []byte {
	return []byte(prefixRotation + userID)
}

// Count returns the user's generation count.
func (s *Store) Count(_ context.Context, userID string) (int, error) {
	if err := s.checkOpen(); err != nil {
		return 0, err
	}
	if err := validID(userID); err != nil {
		return 0, err
	}
	var n uint64
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		n, err = readCounter(txn, rotationKey(userID))
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("read rotation count: %w", err)
	}
	return int(n), nil
}

// Increment adds one to the user's generation count.
func (s *Store) Increment(ctx context.Context, userID string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := validID(userID); err != nil {
		return err
	}
	key := rotationKey(userID)
	return s.update(ctx, func(txn *badger.Txn) error {
		n, err := readCounter(txn, key)
		if err != nil {
			return err
		}
		return txn.Set(key, encodeCounter(n+1))
	})
}

func readCounter(txn *badger.Txn, key []byte) (uint64, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var n uint64
	err = item.Value(func(val []byte) error {
		n = decodeCounter(val)
		return nil
	})
	return n, err
}

func encodeCounter(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}

func decodeCounter(b []byte) uint64 {
	if len(b) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}
