// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package outfit

import (
	"sort"

	"github.com/tomtom215/stylist/internal/wardrobe"
)

// DiversityResult is the outcome of a diversity check.
type DiversityResult struct {
	IsDiverse bool `json:"isDiverse"`

	// Score is 1 minus the worst of MaxSimilarity and SessionOverlap.
	Score float64 `json:"score"`

	// MaxSimilarity is the highest Jaccard similarity against a recent
	// outfit, and SimilarTo is that outfit's id.
	MaxSimilarity float64 `json:"maxSimilarity"`
	SimilarTo     string  `json:"similarTo,omitempty"`

	// SessionOverlap is the share of non-base items already shown in the
	// current session.
	SessionOverlap float64 `json:"sessionOverlap"`
}

// Substitution replaces one outfit item with another.
type Substitution struct {
	OutID  string `json:"out"`
	InID   string `json:"in"`
	Reason string `json:"reason"`
}

// DiversityFilter checks a finished outfit against recent history and the
// session registry and proposes swaps when it repeats itself.
type DiversityFilter struct {
	config *Config
}

// NewDiversityFilter creates a diversity filter.
func NewDiversityFilter(cfg *Config) *DiversityFilter {
	return &DiversityFilter{config: cfg}
}

// Jaccard returns |a∩b| / |a∪b| over id sets. Two empty sets are 0.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	set := make(map[string]bool, len(a))
	for _, id := range a {
		set[id] = true
	}
	inter := 0
	union := len(set)
	seenB := make(map[string]bool, len(b))
	for _, id := range b {
		if seenB[id] {
			continue
		}
		seenB[id] = true
		if set[id] {
			inter++
		} else {
			union++
		}
	}
	return float64(inter) / float64(union)
}

// CheckDiversity scores items against gc.RecentOutfits and gc.SessionSeen.
func (d *DiversityFilter) CheckDiversity(gc *GenerationContext, items []wardrobe.ClothingItem) DiversityResult {
	ids := wardrobe.IDs(items)
	res := DiversityResult{}

	limit := d.config.Diversity.RecentOutfits
	for i, rec := range gc.RecentOutfits {
		if limit > 0 && i >= limit {
			break
		}
		if sim := Jaccard(ids, rec.ItemIDs); sim > res.MaxSimilarity {
			res.MaxSimilarity = sim
			res.SimilarTo = rec.ID
		}
	}

	var considered, seen int
	for _, id := range ids {
		if gc.IsBase(id) {
			continue
		}
		considered++
		if gc.SessionSeen[id] > 0 {
			seen++
		}
	}
	if considered > 0 {
		res.SessionOverlap = float64(seen) / float64(considered)
	}

	res.Score = 1 - max(res.MaxSimilarity, res.SessionOverlap)
	res.IsDiverse = res.MaxSimilarity < d.config.Diversity.SimilarityThreshold &&
		res.SessionOverlap < d.config.Diversity.SessionOverlapThreshold
	return res
}

// Suggest proposes up to MaxSwaps substitutions for non-base items.
// Session repeats are replaced before items shared with the most similar
// recent outfit. A replacement has the same category, was not shown in the
// session, keeps the active palette and breaks no forbidden rule.
func (d *DiversityFilter) Suggest(gc *GenerationContext, items []wardrobe.ClothingItem, scores ScoreMap, check DiversityResult) []Substitution {
	if d.config.Diversity.MaxSwaps == 0 {
		return nil
	}

	var similar map[string]bool
	if check.SimilarTo != "" {
		for _, rec := range gc.RecentOutfits {
			if rec.ID == check.SimilarTo {
				similar = make(map[string]bool, len(rec.ItemIDs))
				for _, id := range rec.ItemIDs {
					similar[id] = true
				}
				break
			}
		}
	}

	type target struct {
		idx      int
		seen     int
		similar  bool
		priority float64
	}
	var targets []target
	for i := range items {
		id := items[i].ID
		if gc.IsBase(id) {
			continue
		}
		t := target{idx: i, seen: gc.SessionSeen[id], similar: similar[id]}
		if t.seen == 0 && !t.similar {
			continue
		}
		if rec, ok := scores[id]; ok {
			t.priority = rec.Composite
		}
		targets = append(targets, t)
	}
	sort.SliceStable(targets, func(i, j int) bool {
		a, b := targets[i], targets[j]
		if a.seen != b.seen {
			return a.seen > b.seen
		}
		if a.similar != b.similar {
			return a.similar
		}
		return a.priority < b.priority
	})

	ranked := scores.Ranked()
	inOutfit := make(map[string]bool, len(items))
	for i := range items {
		inOutfit[items[i].ID] = true
	}
	current := make([]*wardrobe.ClothingItem, len(items))
	for i := range items {
		current[i] = &items[i]
	}

	var subs []Substitution
	for _, t := range targets {
		if len(subs) >= d.config.Diversity.MaxSwaps {
			break
		}
		out := current[t.idx]
		others := make([]*wardrobe.ClothingItem, 0, len(current)-1)
		for i, it := range current {
			if i != t.idx {
				others = append(others, it)
			}
		}
		for _, rec := range ranked {
			cand := rec.Item
			if cand.Category != out.Category || inOutfit[cand.ID] || gc.SessionSeen[cand.ID] > 0 {
				continue
			}
			if rec.Composite <= 0 || (similar != nil && similar[cand.ID]) {
				continue
			}
			if gc.Palette != "" && !wardrobe.InPalette(cand, gc.Palette) {
				continue
			}
			if _, bad := Violation(cand, others); bad {
				continue
			}
			reason := "recent_outfit"
			if t.seen > 0 {
				reason = "session_repeat"
			}
			subs = append(subs, Substitution{OutID: out.ID, InID: cand.ID, Reason: reason})
			inOutfit[cand.ID] = true
			current[t.idx] = cand
			break
		}
	}
	return subs
}

// Apply returns items with the substitutions made in place.
func (d *DiversityFilter) Apply(items []wardrobe.ClothingItem, subs []Substitution, scores ScoreMap) []wardrobe.ClothingItem {
	if len(subs) == 0 {
		return items
	}
	out := append([]wardrobe.ClothingItem(nil), items...)
	for _, s := range subs {
		rec, ok := scores[s.InID]
		if !ok {
			continue
		}
		for i := range out {
			if out[i].ID == s.OutID {
				out[i] = *rec.Item
				break
			}
		}
	}
	return out
}
