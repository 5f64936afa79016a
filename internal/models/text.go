// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package models

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCaser capitalizes the first letter of each word and lowercases
// the rest. Casers are not safe for concurrent use, so a fresh one is
// created per call; they are cheap to construct.
func titleCaser() cases.Caser {
	return cases.Title(language.English)
}

// TitleCase normalizes free-form city input ("new DELHI" -> "New Delhi").
// The cleaning stage and query normalization both use it, so stored city
// values and query city values agree on exact casing and exact-match
// lookups work.
func TitleCase(s string) string {
	return titleCaser().String(s)
}
