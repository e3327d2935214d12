// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/stylist/internal/outfit"
)

const wardrobeYAML = `userId: alice
occasion: casual
weather:
  temperature: 70
  condition: clear
wardrobe:
  - {id: tee-white, type: t-shirt, name: White tee, color: white}
  - {id: tee-black, type: t-shirt, name: Black tee, color: black}
  - {id: jeans-blue, type: jeans, name: Blue jeans, color: blue}
  - {id: chinos-khaki, type: chinos, name: Khaki chinos, color: khaki}
  - {id: sneakers-white, type: sneakers, name: White sneakers, color: white}
  - {id: boots-brown, type: boots, name: Brown boots, color: brown}
  - {id: belt-brown, type: belt, name: Leather belt, color: brown}
  - {id: watch-silver, type: watch, name: Steel watch, color: silver}
`

const blazerOnlyJSON = `{
  "userId": "bob",
  "wardrobe": [
    {"id": "blazer", "type": "blazer", "name": "Wool blazer", "color": "navy",
     "style": ["classic"], "metadata": {"material": "wool", "formalLevel": "formal"}}
  ]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// ========================================
// strategies
// ========================================

func TestStrategiesCmd(t *testing.T) {
	out, err := execute(t, "strategies")
	if err != nil {
		t.Fatalf("strategies error = %v", err)
	}
	for _, s := range outfit.AllStrategies {
		if !strings.Contains(out, string(s)) {
			t.Errorf("output missing strategy %q:\n%s", s, out)
		}
	}
}

// ========================================
// generate
// ========================================

func TestGenerateCmd_Table(t *testing.T) {
	path := writeFile(t, "wardrobe.yaml", wardrobeYAML)

	out, err := execute(t, "generate", "-f", path, "--seed", "7")
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}
	if !strings.Contains(out, "strategy=") || !strings.Contains(out, "ID") {
		t.Errorf("unexpected table output:\n%s", out)
	}
	if strings.Contains(out, "(emergency)") {
		t.Errorf("complete wardrobe produced an emergency outfit:\n%s", out)
	}
}

func TestGenerateCmd_JSONSession(t *testing.T) {
	path := writeFile(t, "wardrobe.yaml", wardrobeYAML)

	out, err := execute(t, "generate", "-f", path, "--count", "2", "-o", "json", "--weather", "chilly")
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}

	var outfits []outfit.GeneratedOutfit
	if err := json.Unmarshal([]byte(out), &outfits); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(outfits) != 2 {
		t.Fatalf("got %d outfits, want 2", len(outfits))
	}
	for _, o := range outfits {
		if o.UserID != "alice" {
			t.Errorf("UserID = %q, want alice", o.UserID)
		}
		if len(o.Items) == 0 {
			t.Errorf("outfit %s has no items", o.ID)
		}
	}
}

func TestGenerateCmd_Errors(t *testing.T) {
	emptyPath := writeFile(t, "empty.json", `{"userId": "carol", "wardrobe": []}`)
	goodPath := writeFile(t, "wardrobe.yaml", wardrobeYAML)

	tests := []struct {
		name string
		args []string
	}{
		{"missing file flag", []string{"generate"}},
		{"file not found", []string{"generate", "-f", filepath.Join(t.TempDir(), "nope.yaml")}},
		{"empty wardrobe", []string{"generate", "-f", emptyPath}},
		{"bad output", []string{"generate", "-f", goodPath, "-o", "xml"}},
		{"bad count", []string{"generate", "-f", goodPath, "--count", "0"}},
		{"invalid user id", []string{"generate", "-f", goodPath, "--user", "bad id!"}},
		{"bad log level", []string{"--log-level", "loud", "strategies"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Errorf("%v: expected error", tt.args)
			}
		})
	}
}

// ========================================
// validate
// ========================================

func TestValidateCmd(t *testing.T) {
	path := writeFile(t, "wardrobe.yaml", wardrobeYAML)

	out, err := execute(t, "validate", "-f", path, "--weather", "72")
	if err != nil {
		t.Fatalf("validate error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "tee-white") || !strings.Contains(out, "item(s) fit") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestValidateCmd_NothingFits(t *testing.T) {
	path := writeFile(t, "blazer.json", blazerOnlyJSON)

	out, err := execute(t, "validate", "-f", path, "--occasion", "gym", "--weather", "70")
	if !errors.Is(err, ErrNothingFits) {
		t.Fatalf("validate error = %v, want ErrNothingFits", err)
	}
	if !strings.Contains(out, "blocked") {
		t.Errorf("expected the blazer to be reported blocked:\n%s", out)
	}
}

// ========================================
// helpers
// ========================================

func TestRawFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"72", "72"},
		{"chilly", `"chilly"`},
		{`{"temperature": 40}`, `{"temperature": 40}`},
		{`"rainy"`, `"rainy"`},
	}
	for _, tt := range tests {
		if got := string(rawFlag(tt.in)); got != tt.want {
			t.Errorf("rawFlag(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
