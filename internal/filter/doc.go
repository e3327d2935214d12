// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

/*
Package filter implements the elimination passes that run before scoring.

# Hard Filter

HardFilter decides whether an item is categorically wrong for an occasion.
Occasions are grouped into families (athletic, business, loungewear, party,
casual). Evidence is consulted in a fixed order and the first tier with an
opinion wins:

 1. structured attributes (waistband, formal level, shoe type, material)
 2. occasion and style tags
 3. the item type
 4. the keyword table, matched with a textmatch.Automaton

Items no tier decides are allowed, except for the athletic and business
families, where they are blocked.

# Weather Gate

WeatherAppropriate judges an item by temperature alone and WeatherMask
applies it to a whole wardrobe. Relaxing the gate when nothing survives is
left to the caller.
*/
package filter
