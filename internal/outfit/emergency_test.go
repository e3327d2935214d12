// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package outfit

import (
	"errors"
	"reflect"
	"testing"

	"github.com/tomtom215/stylist/internal/wardrobe"
)

func TestEmergencyOutfit(t *testing.T) {
	t.Parallel()

	pieces := DefaultEmergencyPieces()
	sunglasses := testItem("shades", wardrobe.TypeSunglasses, "black")
	top := testItem("silk", wardrobe.TypeBlouse, "ivory")
	dress := testItem("slip", wardrobe.TypeDress, "black")

	tests := []struct {
		name string
		base *wardrobe.ClothingItem
		want []string
	}{
		{"no base", nil, []string{EmergencyTopID, EmergencyBottomID, EmergencyShoesID}},
		{"accessory base leads", &sunglasses, []string{"shades", EmergencyTopID, EmergencyBottomID, EmergencyShoesID}},
		{"top base replaces top", &top, []string{"silk", EmergencyBottomID, EmergencyShoesID}},
		{"dress base drops separates", &dress, []string{"slip", EmergencyShoesID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, err := EmergencyOutfit("user-1", pieces, tt.base, []string{"upstream"})
			if err != nil {
				t.Fatalf("EmergencyOutfit() error = %v", err)
			}
			if got := out.ItemIDs(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("items = %v, want %v", got, tt.want)
			}
			if !out.Emergency || out.Confidence != 0.1 {
				t.Errorf("Emergency = %v, Confidence = %v", out.Emergency, out.Confidence)
			}
			if len(out.Warnings) != 2 || out.Warnings[0] != "upstream" {
				t.Errorf("warnings = %v, want upstream warning kept first", out.Warnings)
			}
			if out.Metadata["flat_lay_status"] != FlatLayAwaitingConsent {
				t.Errorf("flat_lay_status = %v", out.Metadata["flat_lay_status"])
			}
			if out.ID == "" {
				t.Error("emergency outfit has no id")
			}
		})
	}
}

func TestEmergencyOutfit_Empty(t *testing.T) {
	t.Parallel()

	if _, err := EmergencyOutfit("user-1", nil, nil, nil); !errors.Is(err, ErrNoOutfit) {
		t.Errorf("EmergencyOutfit() error = %v, want ErrNoOutfit", err)
	}
}

func TestDefaultEmergencyPieces(t *testing.T) {
	t.Parallel()

	pieces := DefaultEmergencyPieces()
	for _, c := range wardrobe.EssentialCategories {
		if _, ok := emergencyPiece(pieces, c); !ok {
			t.Errorf("no emergency piece for %s", c)
		}
	}
	if v := Violations(pieces); len(v) != 0 {
		t.Errorf("emergency pieces clash: %v", v)
	}
}
