// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package wardrobe

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// inchesCutoff separates heights given in inches from centimeters.
const inchesCutoff = 100.0

// qualitativeTemps maps weather words onto representative temperatures.
var qualitativeTemps = map[string]float64{
	"scorching": 98,
	"hot":       88,
	"warm":      78,
	"mild":      70,
	"cool":      58,
	"chilly":    50,
	"cold":      40,
	"freezing":  25,
}

// DecodeProfile decodes a user profile from loosely shaped JSON. Fields of
// the wrong type are coerced where possible and dropped otherwise; every
// coercion is reported as a warning. An absent profile yields the zero
// profile without warnings.
func DecodeProfile(raw []byte) (UserProfile, []string) {
	var warnings []string
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return UserProfile{}, nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return UserProfile{}, []string{fmt.Sprintf("profile ignored: %v", err)}
	}

	switch p := v.(type) {
	case string:
		// A bare string is treated as the body type.
		return UserProfile{BodyType: NormalizeTag(p)}, []string{"profile given as a string; used as body type"}
	case map[string]any:
		prof := UserProfile{}
		prof.BodyType = NormalizeTag(stringField(p, &warnings, "bodyType", "body_type", "bodyShape"))
		prof.Gender = NormalizeTag(stringField(p, &warnings, "gender"))
		prof.SkinTone = NormalizeTag(stringField(p, &warnings, "skinTone", "skin_tone"))

		if h, ok := numberField(p, &warnings, "height", "heightCm", "height_cm"); ok {
			if h > 0 && h < inchesCutoff {
				h *= 2.54
			}
			prof.HeightCM = h
		}
		if w, ok := numberField(p, &warnings, "weight", "weightKg", "weight_kg"); ok {
			prof.WeightKG = w
		}
		prof.StylePreferences = NormalizeTags(listField(p, &warnings, "stylePreferences", "style_preferences", "styles"))
		return prof, warnings
	default:
		return UserProfile{}, []string{fmt.Sprintf("profile of type %T ignored", v)}
	}
}

// DecodeWeather decodes weather from loosely shaped JSON: an object with a
// temperature and condition, a bare number, or a descriptive string. Anything
// unusable falls back to DefaultWeather with a warning.
func DecodeWeather(raw []byte) (Weather, []string) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return DefaultWeather(), []string{"no weather supplied; assuming mild conditions"}
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return DefaultWeather(), []string{fmt.Sprintf("weather ignored: %v", err)}
	}

	switch w := v.(type) {
	case float64:
		return Weather{TemperatureF: w}, nil
	case string:
		if t, ok := parseTemperature(w); ok {
			return Weather{TemperatureF: t}, nil
		}
		return DefaultWeather(), []string{fmt.Sprintf("unrecognized weather %q; assuming mild conditions", w)}
	case map[string]any:
		var warnings []string
		out := Weather{Condition: NormalizeTag(stringField(w, &warnings, "condition", "conditions", "summary"))}
		if t, ok := numberField(w, &warnings, "temperature", "temp", "temperatureF", "temperature_f"); ok {
			out.TemperatureF = t
		} else if c, ok := numberField(w, &warnings, "temperatureC", "temperature_c", "celsius"); ok {
			out.TemperatureF = c*9/5 + 32
		} else if t, ok := qualitativeTemps[out.Condition]; ok {
			out.TemperatureF = t
		} else {
			out.TemperatureF = DefaultTemperatureF
			warnings = append(warnings, "weather has no temperature; assuming mild conditions")
		}
		return out, warnings
	default:
		return DefaultWeather(), []string{fmt.Sprintf("weather of type %T ignored", v)}
	}
}

func stringField(m map[string]any, warnings *[]string, keys ...string) string {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			return s
		case float64:
			*warnings = append(*warnings, fmt.Sprintf("%s: expected text, got number", k))
			return strconv.FormatFloat(s, 'f', -1, 64)
		default:
			*warnings = append(*warnings, fmt.Sprintf("%s: unsupported value of type %T ignored", k, v))
		}
	}
	return ""
}

func numberField(m map[string]any, warnings *[]string, keys ...string) (float64, bool) {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n, true
		case string:
			if f, ok := parseTemperature(n); ok {
				*warnings = append(*warnings, fmt.Sprintf("%s: numeric text coerced", k))
				return f, true
			}
			*warnings = append(*warnings, fmt.Sprintf("%s: %q is not a number", k, n))
		default:
			*warnings = append(*warnings, fmt.Sprintf("%s: unsupported value of type %T ignored", k, v))
		}
	}
	return 0, false
}

func listField(m map[string]any, warnings *[]string, keys ...string) []string {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch l := v.(type) {
		case []any:
			out := make([]string, 0, len(l))
			for _, e := range l {
				if s, ok := e.(string); ok {
					out = append(out, s)
				}
			}
			return out
		case string:
			*warnings = append(*warnings, fmt.Sprintf("%s: comma-separated text split into a list", k))
			return strings.Split(l, ",")
		default:
			*warnings = append(*warnings, fmt.Sprintf("%s: unsupported value of type %T ignored", k, v))
		}
	}
	return nil
}

// parseTemperature accepts "72", "72F", "72°F", "22C" and weather words.
func parseTemperature(s string) (float64, bool) {
	t := strings.ToLower(strings.TrimSpace(s))
	if v, ok := qualitativeTemps[t]; ok {
		return v, true
	}
	t = strings.TrimSuffix(strings.ReplaceAll(t, "°", ""), " ")
	celsius := false
	switch {
	case strings.HasSuffix(t, "f"):
		t = strings.TrimSuffix(t, "f")
	case strings.HasSuffix(t, "c"):
		t = strings.TrimSuffix(t, "c")
		celsius = true
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
	if err != nil {
		return 0, false
	}
	if celsius {
		f = f*9/5 + 32
	}
	return f, true
}
