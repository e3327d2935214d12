// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

/*
Package models defines the HTTP wire types of the Stylist API.

Request types carry validate tags checked by the validation package and
convert into engine or storage types:

  - GenerateRequest: POST /api/v1/outfits/generate, converts to outfit.Request
  - ItemRequest: POST /api/v1/users/{userID}/items, converts to wardrobe.ClothingItem
  - RatingRequest: POST /api/v1/users/{userID}/ratings

Every response is wrapped in APIResponse:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "...", "query_time_ms": 7, "request_id": "..."}
	}

Profile and weather in a generate request are accepted as raw JSON and
coerced leniently; anything that could not be interpreted turns into a
warning on the generated outfit rather than a 400.
*/
package models
