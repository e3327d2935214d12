// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package outfit

import (
	"context"

	"github.com/tomtom215/stylist/internal/wardrobe"
)

// Analyzer computes one scoring dimension for every candidate.
//
// Analyze is called concurrently with the other analyzers. It must write
// only rec.Scores[Dimension()] on the records in scores, must not add or
// remove keys, and must treat gc as read-only. Items it cannot assess get
// NeutralScore rather than an error.
type Analyzer interface {
	// Name returns the analyzer identifier used in logs and metrics.
	Name() string

	// Dimension returns the subscore this analyzer owns.
	Dimension() Dimension

	// Analyze writes the analyzer's subscore for every record.
	Analyze(ctx context.Context, gc *GenerationContext, scores ScoreMap) error
}

// NoopAnalyzer writes NeutralScore for its dimension. The engine uses it for
// any dimension without a registered analyzer.
type NoopAnalyzer struct {
	Dim Dimension
}

// Name implements Analyzer.
func (n NoopAnalyzer) Name() string { return "noop_" + n.Dim.String() }

// Dimension implements Analyzer.
func (n NoopAnalyzer) Dimension() Dimension { return n.Dim }

// Analyze implements Analyzer.
func (n NoopAnalyzer) Analyze(_ context.Context, _ *GenerationContext, scores ScoreMap) error {
	for _, rec := range scores {
		rec.Scores[n.Dim] = NeutralScore
	}
	return nil
}

var _ Analyzer = NoopAnalyzer{}

// WardrobeSource reads a user's wardrobe and profile. The engine never
// writes through it.
type WardrobeSource interface {
	GetWardrobe(ctx context.Context, userID string) ([]wardrobe.ClothingItem, error)
	GetProfile(ctx context.Context, userID string) (wardrobe.UserProfile, error)
}

// HistoryStore keeps generated outfits. Reads may be slightly stale.
type HistoryStore interface {
	GetRecentOutfits(ctx context.Context, userID string, limit int) ([]OutfitRecord, error)
	RecordOutfitGeneration(ctx context.Context, userID string, record OutfitRecord) error
}

// FeedbackStore reads past outfit ratings grouped by item id.
type FeedbackStore interface {
	GetOutfitRatingsForItems(ctx context.Context, userID string) (map[string][]ItemRating, error)
}

// DiversityHistory is the per-session registry of items already shown.
type DiversityHistory interface {
	SeenInSession(ctx context.Context, sessionID string) (map[string]int, error)
	MarkSeen(ctx context.Context, sessionID string, itemIDs []string) error
}

// RotationState is the per-user outfit counter driving strategy rotation.
// Increment is an atomic append on the store side.
type RotationState interface {
	Count(ctx context.Context, userID string) (int, error)
	Increment(ctx context.Context, userID string) error
}

// AnalyticsSink receives strategy execution events. It must not block and
// has no way to fail the caller.
type AnalyticsSink interface {
	RecordStrategyExecution(event StrategyExecution)
}

// nopSink discards analytics events.
type nopSink struct{}

func (nopSink) RecordStrategyExecution(StrategyExecution) {}

// nopFeedback returns no ratings.
type nopFeedback struct{}

func (nopFeedback) GetOutfitRatingsForItems(context.Context, string) (map[string][]ItemRating, error) {
	return nil, nil
}

// emptySource has no wardrobe; requests must carry their own.
type emptySource struct{}

func (emptySource) GetWardrobe(context.Context, string) ([]wardrobe.ClothingItem, error) {
	return nil, nil
}

func (emptySource) GetProfile(context.Context, string) (wardrobe.UserProfile, error) {
	return wardrobe.UserProfile{}, nil
}

var (
	_ AnalyticsSink  = nopSink{}
	_ FeedbackStore  = nopFeedback{}
	_ WardrobeSource = emptySource{}
)
