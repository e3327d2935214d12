// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package models

import (
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/stylist/internal/validation"
	"github.com/tomtom215/stylist/internal/wardrobe"
)

func TestGenerateRequest_ToEngineRequest(t *testing.T) {
	t.Parallel()

	body := `{
		"userId": "u1",
		"sessionId": "s1",
		"occasion": "work",
		"baseItemId": "tee",
		"weather": {"temperature": 41, "condition": "rain"},
		"wardrobe": [{"id": "tee", "type": "t-shirt", "name": "Tee", "color": "white"}]
	}`

	var req GenerateRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		t.Fatalf("ValidateStruct() = %v", verr)
	}

	got := req.ToEngineRequest()
	if got.UserID != "u1" || got.SessionID != "s1" || got.BaseItemID != "tee" {
		t.Errorf("identity fields = %+v", got)
	}
	if got.Weather == nil {
		t.Fatal("Weather = nil, want decoded weather")
	}
	if got.Weather.TemperatureF != 41 {
		t.Errorf("Temperature = %v, want 41", got.Weather.TemperatureF)
	}
	if got.Profile != nil {
		t.Errorf("Profile = %+v, want nil when absent", got.Profile)
	}
	if len(got.Wardrobe) != 1 || got.Wardrobe[0].ID != "tee" {
		t.Errorf("Wardrobe = %+v", got.Wardrobe)
	}
}

func TestGenerateRequest_NullAndMalformedFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		weather     string
		wantWeather bool
		wantWarning bool
	}{
		{"null weather", `null`, false, false},
		{"chilly weather", `"chilly"`, true, false},
		{"unreadable weather", `"gloomy"`, true, true},
		{"object weather", `{"temperature": 70}`, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := GenerateRequest{UserID: "u1", Weather: json.RawMessage(tt.weather)}
			got := req.ToEngineRequest()
			if (got.Weather != nil) != tt.wantWeather {
				t.Errorf("Weather set = %v, want %v", got.Weather != nil, tt.wantWeather)
			}
			if (len(got.Warnings) > 0) != tt.wantWarning {
				t.Errorf("Warnings = %v, want any = %v", got.Warnings, tt.wantWarning)
			}
		})
	}
}

func TestGenerateRequest_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		req       GenerateRequest
		wantField string
	}{
		{"missing user", GenerateRequest{}, "userId"},
		{"user with slash", GenerateRequest{UserID: "a/b"}, "userId"},
		{"session with space", GenerateRequest{UserID: "u", SessionID: "a b"}, "sessionId"},
		{"oversized wardrobe", GenerateRequest{UserID: "u", Wardrobe: make([]wardrobe.ClothingItem, 501)}, "wardrobe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			verr := validation.ValidateStruct(&tt.req)
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			if f := verr.Errors()[0].Field(); f != tt.wantField {
				t.Errorf("Field() = %q, want %q", f, tt.wantField)
			}
		})
	}
}

func TestItemRequest_ToItem(t *testing.T) {
	t.Parallel()

	req := ItemRequest{Type: "Blazers", Name: "Navy blazer", Color: "navy", WearCount: 3}
	if verr := validation.ValidateStruct(&req); verr != nil {
		t.Fatalf("ValidateStruct() = %v", verr)
	}
	item := req.ToItem("u1")
	if item.UserID != "u1" {
		t.Errorf("UserID = %q", item.UserID)
	}
	if item.Type != wardrobe.ItemType("blazer") {
		t.Errorf("Type = %q, want blazer", item.Type)
	}
	if item.WearCount != 3 {
		t.Errorf("WearCount = %d", item.WearCount)
	}
}

func TestRatingRequest_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     RatingRequest
		wantErr bool
	}{
		{"valid", RatingRequest{OutfitID: "o1", ItemIDs: []string{"a", "b"}, Rating: 4.5}, false},
		{"no items", RatingRequest{OutfitID: "o1", Rating: 3}, true},
		{"rating too high", RatingRequest{OutfitID: "o1", ItemIDs: []string{"a"}, Rating: 7}, true},
		{"bad item id", RatingRequest{OutfitID: "o1", ItemIDs: []string{"a/b"}, Rating: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			verr := validation.ValidateStruct(&tt.req)
			if (verr != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() = %v, wantErr %v", verr, tt.wantErr)
			}
		})
	}
}
