// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

// Package wardrobe defines the typed clothing model shared by every stage of
// outfit generation.
//
// # Overview
//
// Items arrive from storage, the HTTP API, or wardrobe files with free-form
// tags and loosely populated metadata. The Normalizer runs once at ingestion
// and produces a ClothingItem whose tag sets are lower-cased and
// de-duplicated, whose Type is mapped onto a known garment kind, and whose
// Category and Layer are derived. Downstream code compares values directly
// instead of guarding every access.
//
// # Categories and Layers
//
// Essential categories are tops, bottoms and shoes. A dress replaces both
// tops and bottoms. Mid layers (sweaters, cardigans, overshirts) and
// outerwear stack above the base top; accessories carry no layer.
//
// # Colors
//
// Free-text colors map onto a small set of families (black, white, navy,
// red, ...). PaletteConsensus picks the family with the largest simultaneous
// inventory across tops, bottoms and shoes, which monochrome outfits are
// restricted to.
//
// # Coercion
//
// DecodeProfile and DecodeWeather accept loosely shaped JSON and always
// return usable values, reporting what was defaulted as warnings.
package wardrobe
