// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/stylist/internal/models"
)

// loadRequestFile reads a generate request from YAML or JSON. The YAML
// parser accepts JSON as well, so one path serves both.
func loadRequestFile(path string) (*models.GenerateRequest, error) {
	k := koanf.New("\x00")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	// Round-trip through JSON so the wire tags, raw weather and raw
	// profile behave exactly as they do over HTTP.
	raw, err := json.Marshal(k.Raw())
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", path, err)
	}
	var req models.GenerateRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("invalid request file %s: %w", path, err)
	}
	return &req, nil
}

// rawFlag turns a flag value into JSON: valid JSON passes through and
// anything else becomes a JSON string, so --weather 72 and
// --weather chilly both work.
func rawFlag(v string) json.RawMessage {
	if json.Valid([]byte(v)) {
		return json.RawMessage(v)
	}
	quoted, _ := json.Marshal(v) //nolint:errcheck // marshaling a string cannot fail
	return quoted
}
