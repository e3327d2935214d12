// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

/*
Package history persists what the engine has already shown.

Store is a BadgerDB database holding three kinds of keys:

  - outfits per user, ordered newest first and trimmed to RetainOutfits
    (outfit.HistoryStore)
  - per-session seen counts that expire SessionTTL after the last mark
    (outfit.DiversityHistory)
  - per-user generation counters driving strategy rotation
    (outfit.RotationState)

Writes use optimistic transactions and retry on badger.ErrConflict, so
concurrent Increment calls never lose a count.

Compactor runs value log GC on an interval. It follows the Start/Stop
lifecycle expected by the supervisor's service wrappers.
*/
package history
