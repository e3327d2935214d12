// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package outfit

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/stylist/internal/filter"
	"github.com/tomtom215/stylist/internal/wardrobe"
)

// Note: This package depends only on wardrobe, filter and textmatch. Storage,
// transport and analytics reach the engine through the collaborator
// interfaces in analyzer.go.

// Fallback tier names, recorded in Metadata["fallback_tiers"].
const (
	TierRelaxOccasion = "relax_occasion"
	TierRelaxStyle    = "relax_style"
	TierRelaxWeather  = "relax_weather"
	TierWholeWardrobe = "entire_wardrobe"
	TierEmergency     = "emergency"
)

// Observer receives engine measurements. Implementations must be cheap and
// safe for concurrent use.
type Observer interface {
	ObserveGeneration(strategy Strategy, emergency bool, d time.Duration)
	ObserveFallbackTier(tier string)
	ObserveAnalyzerFailure(analyzer string)
	ObserveWarnings(n int)
}

type nopObserver struct{}

func (nopObserver) ObserveGeneration(Strategy, bool, time.Duration) {}
func (nopObserver) ObserveFallbackTier(string) {}
func (nopObserver) ObserveAnalyzerFailure(string) {}
func (nopObserver) ObserveWarnings(int) {}

// Stats are the engine's lifetime counters.
type Stats struct {
	Requests         int64 `json:"requests"`
	Emergencies      int64 `json:"emergencies"`
	Fallbacks        int64 `json:"fallbacks"`
	AnalyzerFailures int64 `json:"analyzerFailures"`
	Cancellations    int64 `json:"cancellations"`
}

// Engine composes outfits. It is safe for concurrent use; the only state
// shared between requests lives in the injected collaborators.
type Engine struct {
	config *Config
	logger zerolog.Logger

	analyzers  map[Dimension]Analyzer
	analyzerMu sync.RWMutex

	hard      *filter.HardFilter
	combiner  *Combiner
	selector  *StrategySelector
	layering  *LayeringSelector
	diversity *DiversityFilter
	norm      wardrobe.Normalizer

	source    WardrobeSource
	history   HistoryStore
	feedback  FeedbackStore
	seen      DiversityHistory
	rotation  RotationState
	sink      AnalyticsSink
	observer  Observer
	clock     func() time.Time
	collabsMu sync.RWMutex

	// Random source for determinism (protected by rngMu for concurrent access)
	rng   *rand.Rand
	rngMu sync.Mutex

	requestCount     atomic.Int64
	emergencyCount   atomic.Int64
	fallbackCount    atomic.Int64
	analyzerFailures atomic.Int64
	cancelCount      atomic.Int64
}

// NewEngine creates an outfit engine. A nil cfg uses DefaultConfig. Every
// dimension starts with a NoopAnalyzer and every collaborator with an
// in-memory or no-op implementation.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = 42
	}

	hard := filter.NewHardFilter(cfg.KeywordRules, logger)
	mem := NewMemoryHistory(cfg.Diversity.RecentOutfits * 5)

	e := &Engine{
		config:    cfg,
		logger:    logger.With().Str("component", "outfit").Logger(),
		analyzers: make(map[Dimension]Analyzer, numDimensions),
		hard:      hard,
		combiner:  NewCombiner(cfg),
		selector:  NewStrategySelector(cfg),
		layering:  NewLayeringSelector(cfg, hard, logger),
		diversity: NewDiversityFilter(cfg),
		source:    emptySource{},
		history:   mem,
		feedback:  nopFeedback{},
		seen:      mem,
		rotation:  NewMemoryRotation(),
		sink:      nopSink{},
		observer:  nopObserver{},
		clock:     time.Now,
		rng:       rand.New(rand.NewSource(seed)), //nolint:gosec // math/rand is fine for strategy draws
	}
	for _, d := range Dimensions {
		e.analyzers[d] = NoopAnalyzer{Dim: d}
	}
	return e, nil
}

// RegisterAnalyzer installs an analyzer for its dimension, replacing the previous one.
func (e *Engine) RegisterAnalyzer(a Analyzer) {
	e.analyzerMu.Lock()
	defer e.analyzerMu.Unlock()

	e.analyzers[a.Dimension()] = a
	e.logger.Info().
		Str("analyzer", a.Name()).
		Str("dimension", a.Dimension().String()).
		Msg("registered analyzer")
}

// SetWardrobeSource sets where wardrobes and profiles are read from.
func (e *Engine) SetWardrobeSource(s WardrobeSource) {
	e.collabsMu.Lock()
	defer e.collabsMu.Unlock()
	e.source = s
}

// SetHistoryStore sets the outfit history collaborator.
func (e *Engine) SetHistoryStore(h HistoryStore) {
	e.collabsMu.Lock()
	defer e.collabsMu.Unlock()
	e.history = h
}

// SetFeedbackStore sets the ratings collaborator.
func (e *Engine) SetFeedbackStore(f FeedbackStore) {
	e.collabsMu.Lock()
	defer e.collabsMu.Unlock()
	e.feedback = f
}

// SetDiversityHistory sets the session registry.
func (e *Engine) SetDiversityHistory(d DiversityHistory) {
	e.collabsMu.Lock()
	defer e.collabsMu.Unlock()
	e.seen = d
}

// SetRotationState sets the per-user rotation counter.
func (e *Engine) SetRotationState(r RotationState) {
	e.collabsMu.Lock()
	defer e.collabsMu.Unlock()
	e.rotation = r
}

// SetAnalyticsSink sets the strategy execution sink.
func (e *Engine) SetAnalyticsSink(s AnalyticsSink) {
	e.collabsMu.Lock()
	defer e.collabsMu.Unlock()
	e.sink = s
}

// SetObserver sets the metrics observer.
func (e *Engine) SetObserver(o Observer) {
	e.collabsMu.Lock()
	defer e.collabsMu.Unlock()
	e.observer = o
}

// SetRand replaces the random source used for strategy draws and
// exploration mixing.
func (e *Engine) SetRand(r *rand.Rand) {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	e.rng = r
}

// SetClock replaces the request clock.
func (e *Engine) SetClock(now func() time.Time) {
	e.collabsMu.Lock()
	defer e.collabsMu.Unlock()
	e.clock = now
}

// HardFilter returns the engine's hard filter.
func (e *Engine) HardFilter() *filter.HardFilter {
	return e.hard
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// collaborators is a consistent snapshot taken once per request.
type collaborators struct {
	source   WardrobeSource
	history  HistoryStore
	feedback FeedbackStore
	seen     DiversityHistory
	rotation RotationState
	sink     AnalyticsSink
	observer Observer
	now      time.Time
}

func (e *Engine) snapshot() collaborators {
	e.collabsMu.RLock()
	defer e.collabsMu.RUnlock()
	return collaborators{
		source:   e.source,
		history:  e.history,
		feedback: e.feedback,
		seen:     e.seen,
		rotation: e.rotation,
		sink:     e.sink,
		observer: e.observer,
		now:      e.clock(),
	}
}

// Generate composes one outfit. It returns an error only when ctx is done
// or not even the emergency outfit can be built; every other problem is
// recovered locally and reported in the outfit's Warnings.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Generate(ctx context.Context, req Request) (*GeneratedOutfit, error) {
	start := time.Now()
	e.requestCount.Add(1)
	c := e.snapshot()
	logger := e.logger.With().
		Str("user_id", req.UserID).
		Str("session_id", req.SessionID).
		Str("occasion", req.Occasion).
		Str("style", req.Style).
		Logger()
	logger.Debug().Msg("generating outfit")

	gc := e.load(ctx, req, c, logger)
	if err := e.checkpoint(ctx, "load"); err != nil {
		return nil, err
	}

	tiers := e.narrow(gc, logger)
	for _, t := range tiers {
		c.observer.ObserveFallbackTier(t)
	}
	if len(tiers) > 0 {
		e.fallbackCount.Add(1)
	}
	if err := e.checkpoint(ctx, "filter"); err != nil {
		return nil, err
	}

	if len(gc.Wardrobe) == 0 {
		return e.emergency(ctx, gc, c, append(tiers, TierEmergency), start, logger)
	}

	if gc.StyleIs("monochrome") {
		if ps, ok := wardrobe.PaletteConsensus(gc.Wardrobe, e.config.Palette.CoverageWeight); ok {
			gc.Palette = ps.Family
			gc.Note("palette", ps)
		}
	}
	gc.FavoritesMode = FavoritesMode(gc.Original, e.config.Favorites.Threshold)

	scores := NewScoreMap(gc.Wardrobe)
	e.score(ctx, gc, scores, c, logger)
	if err := e.checkpoint(ctx, "score"); err != nil {
		return nil, err
	}

	weights := e.combiner.Weights(gc)
	e.combiner.Combine(gc, scores, weights)
	preStrategy := topCandidates(scores, e.config.Limits.TopCandidates)

	sel := e.selectStrategy(gc)
	_, meta := ApplyStrategy(sel.Strategy, gc, scores, e.config)
	if err := e.checkpoint(ctx, "strategy"); err != nil {
		return nil, err
	}

	e.rngMu.Lock()
	layered := e.layering.Select(gc, scores, e.rng)
	e.rngMu.Unlock()

	if len(layered.Items) == 0 {
		return e.emergency(ctx, gc, c, append(tiers, TierEmergency), start, logger)
	}

	items := layered.Items
	check := e.diversity.CheckDiversity(gc, items)
	var subs []Substitution
	if !check.IsDiverse {
		subs = e.diversity.Suggest(gc, items, scores, check)
		items = e.diversity.Apply(items, subs, scores)
		if len(subs) > 0 {
			check = e.diversity.CheckDiversity(gc, items)
		}
	}
	if err := e.checkpoint(ctx, "select"); err != nil {
		return nil, err
	}

	out := &GeneratedOutfit{
		ID:          uuid.NewString(),
		UserID:      gc.UserID,
		Items:       items,
		Confidence:  confidence(items, scores),
		Strategy:    meta,
		Warnings:    dedupeStrings(gc.Warnings),
		GeneratedAt: c.now.UTC(),
		Emergency:   len(layered.Padded) > 0 && len(layered.Padded) == len(items),
	}
	out.Metadata = map[string]any{
		"top_candidates":    preStrategy,
		"dimension_summary": Summary(scores),
		"weights":           weights.ToMap(),
		"favorites_mode":    gc.FavoritesMode,
		"strategy_selection": map[string]any{
			"allowed":  sel.Allowed,
			"rotated":  sel.Rotated,
			"fallback": sel.Fallback,
			"prior":    gc.PriorOutfitCount,
		},
		"layering": map[string]any{
			"bounds":      layered.Bounds,
			"dress_based": layered.DressBased,
			"states":      layered.States,
			"last_resort": layered.LastResort,
			"padded":      layered.Padded,
			"short":       layered.Short,
		},
		"filter": map[string]string{
			"occasion": gc.FilterOccasion,
			"style":    gc.FilterStyle,
		},
		"diversity":       check,
		"substitutions":   subs,
		"candidates":      len(gc.Wardrobe),
		"flat_lay_status": FlatLayAwaitingConsent,
	}
	if gc.Palette != "" {
		out.Metadata["palette"] = gc.Palette
	}
	if len(tiers) > 0 {
		out.Metadata["fallback_tiers"] = tiers
	}
	for k, v := range gc.Notes {
		if _, exists := out.Metadata[k]; !exists {
			out.Metadata[k] = v
		}
	}

	e.persist(ctx, gc, out, c, tiers, start, logger)

	logger.Debug().
		Str("strategy", string(meta.Name)).
		Int("items", len(out.Items)).
		Int("warnings", len(out.Warnings)).
		Dur("latency", time.Since(start)).
		Msg("outfit generated")
	return out, nil
}

// checkpoint aborts between phases once ctx is done.
func (e *Engine) checkpoint(ctx context.Context, phase string) error {
	if err := ctx.Err(); err != nil {
		e.cancelCount.Add(1)
		return fmt.Errorf("generation canceled after %s: %w", phase, err)
	}
	return nil
}

// load builds the generation context, reading collaborators once. Read
// failures degrade to empty data with a logged warning.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) load(ctx context.Context, req Request, c collaborators, logger zerolog.Logger) *GenerationContext {
	gc := &GenerationContext{
		UserID:     req.UserID,
		SessionID:  req.SessionID,
		Occasion:   wardrobe.NormalizeTag(req.Occasion),
		Style:      wardrobe.NormalizeTag(req.Style),
		Mood:       wardrobe.NormalizeTag(req.Mood),
		BaseItemID: req.BaseItemID,
		Warnings:   append([]string(nil), req.Warnings...),
		Now:        c.now,
	}
	gc.Family = filter.FamilyOf(gc.Occasion, gc.Style)

	raw := req.Wardrobe
	if raw == nil {
		items, err := c.source.GetWardrobe(ctx, req.UserID)
		if err != nil {
			logger.Warn().Err(err).Msg("wardrobe load failed")
			gc.Warn("Your wardrobe could not be loaded")
		}
		raw = items
	}
	items := e.norm.NormalizeAll(raw)
	if limit := e.config.Limits.MaxWardrobe; len(items) > limit {
		gc.Warn("Only the first %d of %d wardrobe items were considered", limit, len(items))
		items = items[:limit]
	}
	gc.Original = items

	if req.Profile != nil {
		gc.Profile = *req.Profile
	} else if p, err := c.source.GetProfile(ctx, req.UserID); err != nil {
		logger.Warn().Err(err).Msg("profile load failed")
	} else {
		gc.Profile = p
	}

	if req.Weather != nil {
		gc.Weather = *req.Weather
	} else {
		gc.Weather = wardrobe.DefaultWeather()
		gc.Note("weather_defaulted", true)
	}

	if gc.BaseItemID != "" {
		for i := range gc.Original {
			if gc.Original[i].ID == gc.BaseItemID {
				gc.BaseItem = &gc.Original[i]
				break
			}
		}
		if gc.BaseItem == nil {
			gc.Warn("The selected base item %q was not found in your wardrobe", gc.BaseItemID)
		}
	}

	if recent, err := c.history.GetRecentOutfits(ctx, req.UserID, e.config.Diversity.RecentOutfits); err != nil {
		logger.Warn().Err(err).Msg("history load failed")
	} else {
		gc.RecentOutfits = recent
	}
	if req.SessionID != "" {
		if seen, err := c.seen.SeenInSession(ctx, req.SessionID); err != nil {
			logger.Warn().Err(err).Msg("session registry load failed")
		} else {
			gc.SessionSeen = seen
		}
	}
	if ratings, err := c.feedback.GetOutfitRatingsForItems(ctx, req.UserID); err != nil {
		logger.Warn().Err(err).Msg("ratings load failed")
	} else {
		gc.Ratings = ratings
	}
	if n, err := c.rotation.Count(ctx, req.UserID); err != nil {
		logger.Warn().Err(err).Msg("rotation count load failed")
	} else {
		gc.PriorOutfitCount = n
	}
	if gc.SessionSeen == nil {
		gc.SessionSeen = map[string]int{}
	}
	return gc
}

// narrow applies the hard filter and weather gate, walking the fallback
// tiers until candidates remain. It returns the tiers that were used.
func (e *Engine) narrow(gc *GenerationContext, logger zerolog.Logger) []string {
	all := gc.Original
	temp := gc.Temperature()

	var hardMask, weatherMask []bool
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		hardMask = e.hard.Mask(all, gc.Occasion, gc.Style)
	}()
	go func() {
		defer wg.Done()
		weatherMask = filter.WeatherMask(all, temp)
	}()
	wg.Wait()

	steps := []struct {
		tier     string
		occasion string
		style    string
		weather  bool
		warning  string
	}{
		{"", gc.Occasion, gc.Style, true, ""},
		{TierRelaxOccasion, "", gc.Style, true, "Nothing in your wardrobe suits this occasion; the occasion was relaxed"},
		{TierRelaxStyle, "", "", true, "Nothing in your wardrobe matched this style; the style was relaxed"},
		{TierRelaxWeather, "", "", false, "Nothing in your wardrobe suits today's weather; weather limits were relaxed"},
		{TierWholeWardrobe, "", "", false, "Your whole wardrobe was considered"},
	}

	var tiers []string
	for i, st := range steps {
		mask := hardMask
		if i > 0 {
			if st.tier == TierWholeWardrobe {
				mask = nil
			} else if st.occasion != gc.Occasion || st.style != gc.Style {
				mask = e.hard.Mask(all, st.occasion, st.style)
			}
		}
		candidates := make([]wardrobe.ClothingItem, 0, len(all))
		for j := range all {
			if mask != nil && !mask[j] {
				continue
			}
			if st.weather && !weatherMask[j] {
				continue
			}
			candidates = append(candidates, all[j])
		}
		if st.tier != "" {
			tiers = append(tiers, st.tier)
			gc.Warn("%s", st.warning)
			logger.Info().Str("tier", st.tier).Msg("fallback tier applied")
		}
		if len(candidates) > 0 || len(all) == 0 {
			gc.Wardrobe = candidates
			gc.FilterOccasion, gc.FilterStyle = st.occasion, st.style
			break
		}
	}

	// The base item is exempt from filtering.
	if gc.BaseItem != nil {
		found := false
		for i := range gc.Wardrobe {
			if gc.Wardrobe[i].ID == gc.BaseItem.ID {
				found = true
				break
			}
		}
		if !found {
			gc.Wardrobe = append([]wardrobe.ClothingItem{*gc.BaseItem}, gc.Wardrobe...)
		}
	}
	gc.Note("filtered_out", len(all)-len(gc.Wardrobe))
	return tiers
}

// analyzerResult is the outcome of one analyzer run.
type analyzerResult struct {
	name string
	dim  Dimension
	err  error
}

// score runs every analyzer concurrently. A failed analyzer has its
// dimension reset to neutral.
func (e *Engine) score(ctx context.Context, gc *GenerationContext, scores ScoreMap, c collaborators, logger zerolog.Logger) {
	e.analyzerMu.RLock()
	analyzers := make([]Analyzer, 0, len(e.analyzers))
	for _, d := range Dimensions {
		analyzers = append(analyzers, e.analyzers[d])
	}
	e.analyzerMu.RUnlock()

	results := make([]analyzerResult, len(analyzers))
	var wg sync.WaitGroup
	for i, a := range analyzers {
		wg.Add(1)
		go func(idx int, a Analyzer) {
			defer wg.Done()
			results[idx] = e.runAnalyzer(ctx, gc, scores, a)
		}(i, a)
	}
	wg.Wait()

	for _, r := range results {
		if r.err == nil {
			continue
		}
		e.analyzerFailures.Add(1)
		c.observer.ObserveAnalyzerFailure(r.name)
		logger.Warn().
			Str("analyzer", r.name).
			Err(r.err).
			Msg("analyzer failed; using neutral scores")
		scores.Reset(r.dim)
	}
}

func (e *Engine) runAnalyzer(ctx context.Context, gc *GenerationContext, scores ScoreMap, a Analyzer) (res analyzerResult) {
	res = analyzerResult{name: a.Name(), dim: a.Dimension()}
	defer func() {
		if r := recover(); r != nil {
			res.err = fmt.Errorf("analyzer panic: %v", r)
		}
	}()

	actx, cancel := context.WithTimeout(ctx, e.config.Limits.AnalyzerTimeout)
	defer cancel()

	res.err = a.Analyze(actx, gc, scores)
	if res.err == nil && actx.Err() != nil {
		res.err = actx.Err()
	}
	return res
}

// selectStrategy picks the request's strategy under the rng lock.
func (e *Engine) selectStrategy(gc *GenerationContext) Selection {
	in := StrategyInput{
		Occasion:         gc.Occasion,
		Style:            gc.Style,
		Mood:             gc.Mood,
		PriorOutfitCount: gc.PriorOutfitCount,
		HasBaseItem:      gc.BaseItem != nil,
		TemperatureF:     gc.Temperature(),
	}
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return e.selector.Select(in, e.rng)
}

// emergency returns the default outfit and records it like any other.
func (e *Engine) emergency(ctx context.Context, gc *GenerationContext, c collaborators, tiers []string, start time.Time, logger zerolog.Logger) (*GeneratedOutfit, error) {
	e.emergencyCount.Add(1)
	c.observer.ObserveFallbackTier(TierEmergency)
	out, err := EmergencyOutfit(gc.UserID, e.config.EmergencyPieces, gc.BaseItem, gc.Warnings)
	if err != nil {
		logger.Error().Err(err).Msg("emergency outfit unavailable")
		return nil, err
	}
	out.GeneratedAt = c.now.UTC()
	out.Metadata["fallback_tiers"] = tiers
	logger.Warn().Strs("tiers", tiers).Msg("returning emergency outfit")
	e.persist(ctx, gc, out, c, tiers, start, logger)
	return out, nil
}

// Fallback returns the emergency outfit without running the pipeline.
// Callers use it when a generation exceeds their time budget.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Fallback(req Request, reason string) (*GeneratedOutfit, error) {
	e.emergencyCount.Add(1)
	warnings := append([]string(nil), req.Warnings...)
	if reason != "" {
		warnings = append(warnings, reason)
	}
	var base *wardrobe.ClothingItem
	if req.BaseItemID != "" {
		base = e.fallbackBase(req)
		if base == nil {
			warnings = append(warnings, fmt.Sprintf("The selected base item %q was not found in your wardrobe", req.BaseItemID))
		}
	}
	out, err := EmergencyOutfit(req.UserID, e.config.EmergencyPieces, base, warnings)
	if err != nil {
		return nil, err
	}
	out.Metadata["fallback_tiers"] = []string{TierEmergency}
	return out, nil
}

// fallbackBase finds the request's base item in the supplied wardrobe or,
// when none was supplied, in the wardrobe source. The caller's deadline has
// usually passed by now, so the source read gets its own short timeout.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) fallbackBase(req Request) *wardrobe.ClothingItem {
	raw := req.Wardrobe
	if raw == nil {
		c := e.snapshot()
		ctx, cancel := context.WithTimeout(context.Background(), e.config.Limits.AnalyzerTimeout)
		defer cancel()
		items, err := c.source.GetWardrobe(ctx, req.UserID)
		if err != nil {
			e.logger.Warn().Err(err).Str("user_id", req.UserID).Msg("fallback base item lookup failed")
			return nil
		}
		raw = items
	}
	for i := range raw {
		if raw[i].ID == req.BaseItemID {
			b := e.norm.Normalize(raw[i])
			return &b
		}
	}
	return nil
}

// persist writes history, the session registry, the rotation counter and
// the analytics event. Failures are logged, never returned.
func (e *Engine) persist(ctx context.Context, gc *GenerationContext, out *GeneratedOutfit, c collaborators, tiers []string, start time.Time, logger zerolog.Logger) {
	// Persist even when the caller's deadline passed during selection.
	pctx := context.WithoutCancel(ctx)

	if err := c.history.RecordOutfitGeneration(pctx, gc.UserID, RecordFromOutfit(out, gc.SessionID, gc.Occasion)); err != nil {
		logger.Warn().Err(err).Msg("history write failed")
	}
	if gc.SessionID != "" {
		if err := c.seen.MarkSeen(pctx, gc.SessionID, out.ItemIDs()); err != nil {
			logger.Warn().Err(err).Msg("session registry write failed")
		}
	}
	if err := c.rotation.Increment(pctx, gc.UserID); err != nil {
		logger.Warn().Err(err).Msg("rotation increment failed")
	}

	d := time.Since(start)
	c.observer.ObserveGeneration(out.Strategy.Name, out.Emergency, d)
	c.observer.ObserveWarnings(len(out.Warnings))
	c.sink.RecordStrategyExecution(StrategyExecution{
		OutfitID:      out.ID,
		UserID:        gc.UserID,
		SessionID:     gc.SessionID,
		Strategy:      out.Strategy.Name,
		Occasion:      gc.Occasion,
		Style:         gc.Style,
		Mood:          gc.Mood,
		ItemCount:     len(out.Items),
		Confidence:    out.Confidence,
		Emergency:     out.Emergency,
		FallbackTiers: tiers,
		Warnings:      len(out.Warnings),
		Duration:      d,
		Timestamp:     out.GeneratedAt,
	})
}

// Stats returns the lifetime counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests:         e.requestCount.Load(),
		Emergencies:      e.emergencyCount.Load(),
		Fallbacks:        e.fallbackCount.Load(),
		AnalyzerFailures: e.analyzerFailures.Load(),
		Cancellations:    e.cancelCount.Load(),
	}
}

// Strategies lists every strategy with its description.
func (e *Engine) Strategies() []StrategyMetadata {
	out := make([]StrategyMetadata, len(AllStrategies))
	for i, s := range AllStrategies {
		out[i] = StrategyMetadata{Name: s, Description: s.Description()}
	}
	return out
}

// Candidate is one leading item listed in the outfit metadata.
type Candidate struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Composite float64 `json:"composite"`
}

func topCandidates(scores ScoreMap, n int) []Candidate {
	ranked := scores.Ranked()
	if n > len(ranked) {
		n = len(ranked)
	}
	out := make([]Candidate, n)
	for i := 0; i < n; i++ {
		rec := ranked[i]
		out[i] = Candidate{
			ID:        rec.Item.ID,
			Name:      rec.Item.Name,
			Category:  string(rec.Item.Category),
			Composite: round3(rec.Composite),
		}
	}
	return out
}

// confidence is the mean composite of the chosen items, clamped to [0, 1].
// Emergency pieces count as zero.
func confidence(items []wardrobe.ClothingItem, scores ScoreMap) float64 {
	if len(items) == 0 {
		return 0
	}
	var sum float64
	for i := range items {
		if rec, ok := scores[items[i].ID]; ok {
			sum += rec.Composite
		}
	}
	return round3(Clamp01(sum / float64(len(items))))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// IsCanceled reports whether err came from a canceled or expired context.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
