// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package outfit

import (
	"reflect"
	"testing"

	"github.com/tomtom215/stylist/internal/wardrobe"
)

func TestJaccard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b []string
		want float64
	}{
		{nil, nil, 0},
		{[]string{"a"}, nil, 0},
		{[]string{"a", "b"}, []string{"a", "b"}, 1},
		{[]string{"a", "b"}, []string{"b", "c"}, 1.0 / 3},
		{[]string{"a", "b"}, []string{"b", "b"}, 0.5},
	}

	for _, tt := range tests {
		if got := Jaccard(tt.a, tt.b); !near(got, tt.want) {
			t.Errorf("Jaccard(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func diversityFixture() ([]wardrobe.ClothingItem, ScoreMap) {
	pool := []wardrobe.ClothingItem{
		testItem("t1", wardrobe.TypeTShirt, "black"),
		testItem("j1", wardrobe.TypeJeans, "black"),
		testItem("s1", wardrobe.TypeSneakers, "black"),
		testItem("t2", wardrobe.TypeTShirt, "white"),
		testItem("j2", wardrobe.TypeJeans, "black"),
	}
	scores := scoreAll(pool, map[string]float64{"t1": 0.9, "j1": 0.8, "s1": 0.7, "t2": 0.6, "j2": 0.5})
	return pool[:3], scores
}

func TestDiversityFilter_CheckDiversity(t *testing.T) {
	t.Parallel()

	d := NewDiversityFilter(DefaultConfig())
	outfit, _ := diversityFixture()

	t.Run("fresh outfit is diverse", func(t *testing.T) {
		gc := testContext("", "", 70, nil)
		got := d.CheckDiversity(gc, outfit)
		if !got.IsDiverse || got.Score != 1 {
			t.Errorf("CheckDiversity() = %+v, want diverse with score 1", got)
		}
	})

	t.Run("repeat of recent outfit", func(t *testing.T) {
		gc := testContext("", "", 70, nil)
		gc.RecentOutfits = []OutfitRecord{{ID: "r1", ItemIDs: []string{"t1", "j1", "s1"}}}
		got := d.CheckDiversity(gc, outfit)
		if got.IsDiverse || got.SimilarTo != "r1" || got.MaxSimilarity != 1 {
			t.Errorf("CheckDiversity() = %+v", got)
		}
	})

	t.Run("session overlap ignores base", func(t *testing.T) {
		gc := testContext("", "", 70, nil)
		gc.BaseItemID = "t1"
		gc.BaseItem = &outfit[0]
		gc.SessionSeen = map[string]int{"t1": 4, "j1": 1}
		got := d.CheckDiversity(gc, outfit)
		if !near(got.SessionOverlap, 0.5) {
			t.Errorf("SessionOverlap = %v, want 0.5", got.SessionOverlap)
		}
		if got.IsDiverse {
			t.Error("IsDiverse = true at the overlap threshold")
		}
	})
}

func TestDiversityFilter_Suggest(t *testing.T) {
	t.Parallel()

	d := NewDiversityFilter(DefaultConfig())

	t.Run("recent repeat swaps lowest scorers first", func(t *testing.T) {
		outfit, scores := diversityFixture()
		gc := testContext("", "", 70, nil)
		gc.RecentOutfits = []OutfitRecord{{ID: "r1", ItemIDs: []string{"t1", "j1", "s1"}}}
		check := d.CheckDiversity(gc, outfit)

		got := d.Suggest(gc, outfit, scores, check)
		want := []Substitution{
			{OutID: "j1", InID: "j2", Reason: "recent_outfit"},
			{OutID: "t1", InID: "t2", Reason: "recent_outfit"},
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Suggest() = %+v, want %+v", got, want)
		}

		applied := d.Apply(outfit, got, scores)
		if ids := wardrobe.IDs(applied); !reflect.DeepEqual(ids, []string{"t2", "j2", "s1"}) {
			t.Errorf("Apply() = %v", ids)
		}
		if outfit[0].ID != "t1" {
			t.Error("Apply() modified its input")
		}
	})

	t.Run("session repeat and palette", func(t *testing.T) {
		outfit, scores := diversityFixture()
		gc := testContext("", "", 70, nil)
		gc.SessionSeen = map[string]int{"t1": 1, "j1": 2}
		gc.Palette = wardrobe.FamilyBlack
		check := d.CheckDiversity(gc, outfit)

		got := d.Suggest(gc, outfit, scores, check)
		// t2 is white, so only the jeans can be swapped.
		want := []Substitution{{OutID: "j1", InID: "j2", Reason: "session_repeat"}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Suggest() = %+v, want %+v", got, want)
		}
	})

	t.Run("base item is never swapped", func(t *testing.T) {
		outfit, scores := diversityFixture()
		gc := testContext("", "", 70, nil)
		gc.BaseItemID = "t1"
		gc.BaseItem = &outfit[0]
		gc.SessionSeen = map[string]int{"t1": 3}
		check := d.CheckDiversity(gc, outfit)

		if got := d.Suggest(gc, outfit, scores, check); len(got) != 0 {
			t.Errorf("Suggest() = %+v, want none", got)
		}
	})
}
