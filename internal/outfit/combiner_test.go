// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package outfit

import (
	"testing"

	"github.com/tomtom215/stylist/internal/wardrobe"
)

func TestCombiner_Extremity(t *testing.T) {
	t.Parallel()

	c := NewCombiner(DefaultConfig())
	tests := []struct {
		tempF float64
		want  float64
	}{
		{70, 0},
		{85, 0},
		{45, 0},
		{95, 0.5},
		{35, 0.5},
		{25, 1},
		{120, 1},
	}

	for _, tt := range tests {
		if got := c.Extremity(tt.tempF); !near(got, tt.want) {
			t.Errorf("Extremity(%v) = %v, want %v", tt.tempF, got, tt.want)
		}
	}
}

func TestCombiner_Weights(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	c := NewCombiner(cfg)
	mild := c.Weights(testContext("casual", "", 70, nil))
	if !near(mild.Sum(), 1) {
		t.Fatalf("weights sum = %v, want 1", mild.Sum())
	}
	if want := cfg.Weights.Normalize(); mild != want {
		t.Errorf("mild weights = %+v, want %+v", mild, want)
	}

	t.Run("extreme heat boosts weather", func(t *testing.T) {
		hot := c.Weights(testContext("casual", "", 105, nil))
		if hot.Weather <= mild.Weather {
			t.Errorf("weather weight at 105°F = %v, want > %v", hot.Weather, mild.Weather)
		}
		if hot.Compatibility <= mild.Compatibility {
			t.Errorf("compatibility weight at 105°F = %v, want > %v", hot.Compatibility, mild.Compatibility)
		}
		if !near(hot.Sum(), 1) {
			t.Errorf("weights sum = %v, want 1", hot.Sum())
		}
	})

	t.Run("athletic ignores temperature", func(t *testing.T) {
		gym := c.Weights(testContext("gym", "", 105, nil))
		if gym != mild {
			t.Errorf("gym weights = %+v, want %+v", gym, mild)
		}
	})

	t.Run("favorites mode shifts toward feedback", func(t *testing.T) {
		gc := testContext("casual", "", 70, nil)
		gc.FavoritesMode = true
		fav := c.Weights(gc)
		if fav.UserFeedback <= mild.UserFeedback {
			t.Errorf("feedback weight = %v, want > %v", fav.UserFeedback, mild.UserFeedback)
		}
		if fav.Diversity >= mild.Diversity {
			t.Errorf("diversity weight = %v, want < %v", fav.Diversity, mild.Diversity)
		}
		if fav.Diversity <= 0 {
			t.Error("diversity weight must stay positive in favorites mode")
		}
	})
}

func TestFavoritesMode(t *testing.T) {
	t.Parallel()

	build := func(favorites, total int) []wardrobe.ClothingItem {
		items := make([]wardrobe.ClothingItem, total)
		for i := range items {
			items[i].IsFavorite = i < favorites
		}
		return items
	}

	tests := []struct {
		name  string
		items []wardrobe.ClothingItem
		want  bool
	}{
		{"empty", nil, false},
		{"below threshold", build(2, 10), false},
		{"at threshold", build(3, 10), true},
		{"all favorites", build(4, 4), true},
	}

	for _, tt := range tests {
		if got := FavoritesMode(tt.items, 0.3); got != tt.want {
			t.Errorf("%s: FavoritesMode() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCombiner_Combine(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	c := NewCombiner(cfg)
	items := []wardrobe.ClothingItem{
		testItem("seen", wardrobe.TypeTShirt, "black"),
		testItem("fresh", wardrobe.TypeTShirt, "black"),
		testItem("off", wardrobe.TypeTShirt, "white"),
	}
	scores := NewScoreMap(items)
	scores["seen"].Set(DimensionDiversity, -0.5)
	scores["fresh"].Set(DimensionDiversity, 1)

	gc := testContext("", "", 70, items)
	gc.Palette = wardrobe.FamilyBlack
	weights := c.Weights(gc)
	c.Combine(gc, scores, weights)

	seen := scores["seen"]
	if want := -0.5 * cfg.Session.PenaltyScale; !near(seen.SessionPenalty, want) {
		t.Errorf("session penalty = %v, want %v", seen.SessionPenalty, want)
	}
	if seen.BaseScore >= scores["fresh"].BaseScore {
		t.Errorf("seen base = %v, fresh base = %v; negative diversity must not add", seen.BaseScore, scores["fresh"].BaseScore)
	}
	if seen.Composite >= scores["fresh"].Composite {
		t.Errorf("seen composite = %v, want below fresh %v", seen.Composite, scores["fresh"].Composite)
	}

	off := scores["off"]
	inPalette := off.BaseScore + off.SoftAdjustment + off.ConflictPenalty
	if want := inPalette * cfg.Palette.OffPaletteMultiplier; !near(off.Composite, want) {
		t.Errorf("off-palette composite = %v, want %v", off.Composite, want)
	}
}

func TestSummary(t *testing.T) {
	t.Parallel()

	if got := Summary(ScoreMap{}); len(got) != 0 {
		t.Errorf("Summary(empty) = %v, want empty", got)
	}

	items := []wardrobe.ClothingItem{
		testItem("a", wardrobe.TypeTShirt, "white"),
		testItem("b", wardrobe.TypeJeans, "blue"),
	}
	scores := NewScoreMap(items)
	scores["a"].Set(DimensionWeather, 1)
	scores["b"].Set(DimensionWeather, 0)

	got := Summary(scores)
	if got["weather"] != 0.5 {
		t.Errorf("weather mean = %v, want 0.5", got["weather"])
	}
	if len(got) != len(Dimensions) {
		t.Errorf("summary has %d dimensions, want %d", len(got), len(Dimensions))
	}
}

func TestScoreMap_Ranked(t *testing.T) {
	t.Parallel()

	items := []wardrobe.ClothingItem{
		testItem("b", wardrobe.TypeTShirt, "white"),
		testItem("a", wardrobe.TypeTShirt, "white"),
		testItem("c", wardrobe.TypeTShirt, "white"),
	}
	scores := scoreAll(items, map[string]float64{"a": 0.4, "b": 0.4, "c": 0.9})

	ranked := scores.Ranked()
	want := []string{"c", "a", "b"}
	for i, rec := range ranked {
		if rec.Item.ID != want[i] {
			t.Errorf("ranked[%d] = %s, want %s", i, rec.Item.ID, want[i])
		}
	}
}

func TestScoreRecord_Set(t *testing.T) {
	t.Parallel()

	var rec ScoreRecord
	rec.Set(DimensionWeather, 1.7)
	if got := rec.Score(DimensionWeather); got != 1 {
		t.Errorf("weather clamped to %v, want 1", got)
	}
	rec.Set(DimensionWeather, -0.3)
	if got := rec.Score(DimensionWeather); got != 0 {
		t.Errorf("weather clamped to %v, want 0", got)
	}
	rec.Set(DimensionDiversity, -0.7)
	if got := rec.Score(DimensionDiversity); got != -0.7 {
		t.Errorf("diversity = %v, want -0.7", got)
	}
	rec.Set(DimensionDiversity, -3)
	if got := rec.Score(DimensionDiversity); got != -1 {
		t.Errorf("diversity clamped to %v, want -1", got)
	}
}
