// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

// Package outfit composes a wearable outfit from a user's wardrobe.
//
// # Pipeline
//
// A call to Engine.Generate runs these phases in order, checking the
// context between each:
//
//   - Load: wardrobe, profile, history, session registry, ratings and the
//     rotation counter are read once from the injected collaborators
//   - Filter: the hard filter and weather gate run in parallel; an empty
//     result walks the fallback tiers (relax occasion, relax style, relax
//     weather, entire wardrobe, emergency default)
//   - Score: six analyzers run concurrently, each writing one dimension
//   - Combine: weighted sum plus soft, session and conflict adjustments
//   - Strategy: one of ten composition heuristics is chosen and applied
//   - Layering: essentials are reserved, layers and accessories filled,
//     and missing essentials recovered through the safety net and the
//     unfiltered wardrobe
//   - Diversity: outfits too close to recent ones get up to two swaps
//
// # Guarantees
//
// The returned outfit never repeats an item, always contains the base item
// when one was found, never pairs a dress with tops or bottoms, and never
// contains a registered forbidden combination. When nothing else works the
// emergency three-piece outfit is returned. Only context cancellation and
// an empty emergency configuration surface as errors (ErrNoOutfit).
//
// # Determinism
//
// Strategy draws and exploration mixing use one seeded random source
// (Config.Seed, Engine.SetRand). The rotation branch of strategy selection
// depends only on the allowed set and the user's prior outfit count.
//
// # Usage
//
//	engine, err := outfit.NewEngine(outfit.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	for _, a := range analyzers.Defaults(engine.Config(), logger) {
//	    engine.RegisterAnalyzer(a)
//	}
//	engine.SetWardrobeSource(db)
//	engine.SetHistoryStore(historyStore)
//
//	out, err := engine.Generate(ctx, outfit.Request{
//	    UserID:   "u1",
//	    Occasion: "brunch",
//	})
//
// # Thread Safety
//
// The engine is safe for concurrent use. Requests share nothing but the
// injected collaborators and the random source, which is guarded by a
// mutex.
package outfit
