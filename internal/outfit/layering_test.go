// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package outfit

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/stylist/internal/wardrobe"
)

func newTestSelector() *LayeringSelector {
	return NewLayeringSelector(DefaultConfig(), nil, zerolog.Nop())
}

func seeded() *rand.Rand {
	return rand.New(rand.NewSource(7)) //nolint:gosec
}

func ids(items []wardrobe.ClothingItem) map[string]int {
	out := make(map[string]int, len(items))
	for i := range items {
		out[items[i].ID]++
	}
	return out
}

func checkOutfit(t *testing.T, res LayeringResult, base string) {
	t.Helper()
	for id, n := range ids(res.Items) {
		if n > 1 {
			t.Errorf("item %s appears %d times", id, n)
		}
	}
	if len(res.Items) > res.Bounds.Max {
		t.Errorf("outfit has %d items, max %d", len(res.Items), res.Bounds.Max)
	}
	if len(res.Items) < res.Bounds.Min && !res.Short {
		t.Errorf("outfit has %d items, min %d, and is not marked short", len(res.Items), res.Bounds.Min)
	}
	if v := Violations(res.Items); len(v) != 0 {
		t.Errorf("forbidden pairs: %v", v)
	}
	if base != "" && (len(res.Items) == 0 || res.Items[0].ID != base) {
		t.Errorf("base item %s is not first: %v", base, wardrobe.IDs(res.Items))
	}
	dress := hasCategory(res.Items, wardrobe.CategoryDress)
	if dress && (hasCategory(res.Items, wardrobe.CategoryTops) || hasCategory(res.Items, wardrobe.CategoryBottoms)) {
		t.Errorf("dress combined with separates: %v", wardrobe.IDs(res.Items))
	}
}

func TestLayeringSelector_Bounds(t *testing.T) {
	t.Parallel()

	s := newTestSelector()
	tests := []struct {
		name     string
		occasion string
		style    string
		tempF    float64
		dress    bool
		want     Bounds
	}{
		{"mild casual", "casual", "", 70, false, Bounds{Min: 3, Max: 6, Target: 4}},
		{"dress keeps minimum", "casual", "", 70, true, Bounds{Min: 3, Max: 6, Target: 4}},
		{"gym", "gym", "", 70, false, Bounds{Min: 3, Max: 6, Target: 3}},
		{"hot minimalist", "casual", "minimalist", 92, false, Bounds{Min: 3, Max: 6, Target: 3}},
		{"cool casual", "casual", "", 55, false, Bounds{Min: 3, Max: 6, Target: 4, ExtraLayers: 1}},
		{"freezing business", "business", "", 20, false, Bounds{Min: 3, Max: 6, Target: 6, ExtraLayers: 2}},
	}

	for _, tt := range tests {
		if got := s.Bounds(testContext(tt.occasion, tt.style, tt.tempF, nil), tt.dress); got != tt.want {
			t.Errorf("%s: Bounds() = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestLayeringSelector_Essentials(t *testing.T) {
	t.Parallel()

	items := []wardrobe.ClothingItem{
		testItem("tee", wardrobe.TypeTShirt, "white"),
		testItem("jeans", wardrobe.TypeJeans, "blue"),
		testItem("sneakers", wardrobe.TypeSneakers, "white"),
		testItem("belt", wardrobe.TypeBelt, "brown"),
		testItem("tee-2", wardrobe.TypeTShirt, "gray"),
	}
	scores := scoreAll(items, map[string]float64{"tee": 0.9, "jeans": 0.8, "sneakers": 0.7, "belt": 0.6, "tee-2": 0.3})
	gc := testContext("casual", "", 70, items)

	res := newTestSelector().Select(gc, scores, seeded())
	checkOutfit(t, res, "")

	want := []string{"tee", "jeans", "sneakers", "belt"}
	got := wardrobe.IDs(res.Items)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("items = %v, want %v", got, want)
	}
	if len(gc.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", gc.Warnings)
	}
}

func TestLayeringSelector_BaseItem(t *testing.T) {
	t.Parallel()

	items := []wardrobe.ClothingItem{
		testItem("shades", wardrobe.TypeSunglasses, "black"),
		testItem("tee", wardrobe.TypeTShirt, "white"),
		testItem("jeans", wardrobe.TypeJeans, "blue"),
		testItem("sneakers", wardrobe.TypeSneakers, "white"),
		testItem("hat", wardrobe.TypeHat, "black"),
		testItem("watch", wardrobe.TypeWatch, "silver"),
	}
	scores := scoreAll(items, map[string]float64{"shades": 0.1, "tee": 0.9, "jeans": 0.8, "sneakers": 0.7, "hat": 0.95, "watch": 0.9})
	gc := testContext("casual", "", 70, items)
	gc.BaseItemID = "shades"
	gc.BaseItem = &items[0]

	res := newTestSelector().Select(gc, scores, seeded())
	checkOutfit(t, res, "shades")
	for _, c := range wardrobe.EssentialCategories {
		if !hasCategory(res.Items, c) {
			t.Errorf("missing %s", c)
		}
	}
	accessories := 0
	for i := range res.Items {
		if res.Items[i].Category == wardrobe.CategoryAccessories {
			accessories++
		}
	}
	if accessories > DefaultConfig().Layering.MaxAccessories {
		t.Errorf("%d accessories, max %d", accessories, DefaultConfig().Layering.MaxAccessories)
	}
}

func TestLayeringSelector_PrefersDress(t *testing.T) {
	t.Parallel()

	items := []wardrobe.ClothingItem{
		testItem("dress", wardrobe.TypeDress, "red"),
		testItem("blouse", wardrobe.TypeBlouse, "white"),
		testItem("skirt", wardrobe.TypeSkirt, "black"),
		testItem("heels", wardrobe.TypeHeels, "black"),
	}
	scores := scoreAll(items, map[string]float64{"dress": 0.95, "blouse": 0.5, "skirt": 0.5, "heels": 0.7})
	gc := testContext("party", "", 70, items)

	res := newTestSelector().Select(gc, scores, seeded())
	checkOutfit(t, res, "")
	if !res.DressBased {
		t.Fatal("DressBased = false, want true")
	}
	if got := ids(res.Items); got["dress"] != 1 || got["heels"] != 1 {
		t.Errorf("items = %v, want dress and heels", wardrobe.IDs(res.Items))
	}
}

func TestLayeringSelector_DressPadsToMinimum(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		tempF      float64
		candidates []wardrobe.ClothingItem
		original   []wardrobe.ClothingItem
		wantID     string
		wantWarn   bool
		wantShort  bool
	}{
		{
			name:  "layer from scored candidates",
			tempF: 70,
			candidates: []wardrobe.ClothingItem{
				testItem("dress", wardrobe.TypeDress, "navy"),
				testItem("sandals", wardrobe.TypeSandals, "tan"),
				testItem("cardigan", wardrobe.TypeCardigan, "cream"),
			},
			wantID: "cardigan",
		},
		{
			name:  "layer from the full wardrobe",
			tempF: 89,
			candidates: []wardrobe.ClothingItem{
				testItem("jumpsuit", wardrobe.TypeJumpsuit, "black"),
				testItem("sandals", wardrobe.TypeSandals, "tan"),
			},
			original: []wardrobe.ClothingItem{
				testItem("sweater", wardrobe.TypeSweater, "gray"),
				testItem("vest", wardrobe.TypeSweaterVest, "gray"),
				testItem("coat", wardrobe.TypeCoat, "camel"),
			},
			wantWarn: true,
		},
		{
			name:  "nothing left to add",
			tempF: 70,
			candidates: []wardrobe.ClothingItem{
				testItem("dress", wardrobe.TypeDress, "red"),
				testItem("heels", wardrobe.TypeHeels, "black"),
			},
			wantWarn:  true,
			wantShort: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			scores := scoreAll(tt.candidates, map[string]float64{"cardigan": 0.6})
			gc := testContext("date", "", tt.tempF, tt.candidates)
			gc.Original = append(append([]wardrobe.ClothingItem(nil), tt.candidates...), tt.original...)

			res := newTestSelector().Select(gc, scores, seeded())
			checkOutfit(t, res, "")
			if !res.DressBased {
				t.Fatal("DressBased = false, want true")
			}
			if res.Bounds.Min != 3 {
				t.Errorf("Bounds.Min = %d, want 3", res.Bounds.Min)
			}
			if res.Short != tt.wantShort {
				t.Errorf("Short = %v, want %v", res.Short, tt.wantShort)
			}
			if !tt.wantShort && len(res.Items) != 3 {
				t.Errorf("items = %v, want three pieces", wardrobe.IDs(res.Items))
			}
			if tt.wantID != "" && ids(res.Items)[tt.wantID] != 1 {
				t.Errorf("items = %v, want %s", wardrobe.IDs(res.Items), tt.wantID)
			}
			if got := len(gc.Warnings) > 0; got != tt.wantWarn {
				t.Errorf("warnings = %v, want warned %v", gc.Warnings, tt.wantWarn)
			}
		})
	}
}

func TestLayeringSelector_SkipsForbidden(t *testing.T) {
	t.Parallel()

	items := []wardrobe.ClothingItem{
		testItem("blazer", wardrobe.TypeBlazer, "navy"),
		testItem("shirt", wardrobe.TypeShirt, "white"),
		testItem("shorts", wardrobe.TypeShorts, "khaki"),
		testItem("trousers", wardrobe.TypeTrousers, "gray"),
		testItem("loafers", wardrobe.TypeLoafers, "brown"),
	}
	scores := scoreAll(items, map[string]float64{"blazer": 0.8, "shirt": 0.8, "shorts": 0.9, "trousers": 0.5, "loafers": 0.7})
	gc := testContext("casual", "", 70, items)
	gc.BaseItemID = "blazer"
	gc.BaseItem = &items[0]

	res := newTestSelector().Select(gc, scores, seeded())
	checkOutfit(t, res, "blazer")
	got := ids(res.Items)
	if got["shorts"] != 0 || got["trousers"] != 1 {
		t.Errorf("items = %v, want trousers instead of shorts", wardrobe.IDs(res.Items))
	}
	if res.Rejected == 0 {
		t.Error("Rejected = 0, want the shorts counted")
	}
}

func TestLayeringSelector_LastResortAndPadding(t *testing.T) {
	t.Parallel()

	original := []wardrobe.ClothingItem{
		testItem("tee", wardrobe.TypeTShirt, "white"),
		testItem("jeans", wardrobe.TypeJeans, "blue"),
	}
	// The candidate set lost the jeans to filtering and there are no shoes
	// anywhere.
	candidates := original[:1]
	scores := scoreAll(candidates, map[string]float64{"tee": 0.9})
	gc := testContext("casual", "", 70, candidates)
	gc.Original = original

	res := newTestSelector().Select(gc, scores, seeded())
	checkOutfit(t, res, "")

	if len(res.LastResort) != 1 || res.LastResort[0] != "jeans" {
		t.Errorf("LastResort = %v, want [jeans]", res.LastResort)
	}
	if len(res.Padded) != 1 || res.Padded[0] != EmergencyShoesID {
		t.Errorf("Padded = %v, want [%s]", res.Padded, EmergencyShoesID)
	}
	if len(gc.Warnings) < 2 {
		t.Errorf("warnings = %v, want one per borrowed item", gc.Warnings)
	}
	if len(res.Items) < res.Bounds.Min {
		t.Errorf("%d items, min %d", len(res.Items), res.Bounds.Min)
	}
}

func TestLayeringSelector_ColdWithoutOuterwear(t *testing.T) {
	t.Parallel()

	items := []wardrobe.ClothingItem{
		testItem("shirt", wardrobe.TypeShirt, "white"),
		testItem("trousers", wardrobe.TypeTrousers, "gray"),
		testItem("oxfords", wardrobe.TypeDressShoes, "black"),
	}
	scores := scoreAll(items, map[string]float64{"shirt": 0.8, "trousers": 0.8, "oxfords": 0.8})
	gc := testContext("business", "", 40, items)

	res := newTestSelector().Select(gc, scores, seeded())
	checkOutfit(t, res, "")
	if len(res.Items) != 3 {
		t.Errorf("items = %v, want the three essentials", wardrobe.IDs(res.Items))
	}

	warned := false
	for _, w := range gc.Warnings {
		if strings.Contains(w, "outerwear") {
			warned = true
		}
	}
	if !warned {
		t.Errorf("warnings = %v, want an outerwear warning", gc.Warnings)
	}
}

func TestLayeringSelector_RespectsMax(t *testing.T) {
	t.Parallel()

	items := []wardrobe.ClothingItem{
		testItem("tee", wardrobe.TypeTShirt, "white"),
		testItem("jeans", wardrobe.TypeJeans, "blue"),
		testItem("boots", wardrobe.TypeBoots, "brown"),
		testItem("sweater", wardrobe.TypeSweater, "gray"),
		testItem("parka", wardrobe.TypeParka, "black"),
		testItem("scarf", wardrobe.TypeScarf, "red"),
		testItem("gloves", wardrobe.TypeGloves, "black"),
		testItem("hat", wardrobe.TypeHat, "black"),
		testItem("watch", wardrobe.TypeWatch, "silver"),
	}
	scores := scoreAll(items, nil)
	gc := testContext("casual", "", 10, items)

	for seed := int64(0); seed < 10; seed++ {
		res := newTestSelector().Select(gc, scores, rand.New(rand.NewSource(seed))) //nolint:gosec
		checkOutfit(t, res, "")
		if !hasCategory(res.Items, wardrobe.CategoryOuterwear) {
			t.Errorf("seed %d: no outerwear at 10°F: %v", seed, wardrobe.IDs(res.Items))
		}
	}
}
