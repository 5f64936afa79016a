// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package cleaning

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Per-field fallible parsers. Each returns an error only when the whole
// record should be discarded; unparseable-but-present text degrades to
// zero instead, matching the upstream dataset conventions ("NEW", "-"
// and similar placeholder ratings mean "no rating yet", not "bad
// record").

// parseRating converts an aggregate rating value to a float.
//
// Accepted shapes:
//   - "4.1/5" style: the part before the slash, if it is a plain
//     non-negative decimal; anything else (e.g. "NEW/5") becomes 0.
//   - plain decimal strings: parsed directly; non-numeric text becomes 0.
//   - numeric types: converted directly.
//
// An empty string or an unconvertible non-string type is a parse error.
func parseRating(v any) (float64, error) {
	s, isString := v.(string)
	if isString {
		// cast coerces "" to 0; an explicitly empty rating cell means a
		// malformed export and must drop the record.
		if s == "" {
			return 0, fmt.Errorf("rating: empty string")
		}
		if before, _, found := strings.Cut(s, "/"); found {
			part := strings.TrimSpace(before)
			if !isNonNegativeDecimal(part) {
				return 0, nil
			}
			return strconv.ParseFloat(part, 64)
		}
		if !isNonNegativeDecimal(s) {
			return 0, nil
		}
		return strconv.ParseFloat(s, 64)
	}
	if v == nil {
		return 0, nil
	}

	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, fmt.Errorf("rating: %w", err)
	}
	return f, nil
}

// parseCost converts an average cost value to a float. String input has
// thousands separators stripped ("1,200" -> 1200); remaining non-numeric
// text becomes 0. Numeric types convert directly; an empty string or an
// unconvertible type is a parse error.
func parseCost(v any) (float64, error) {
	s, isString := v.(string)
	if isString {
		if s == "" {
			return 0, fmt.Errorf("cost: empty string")
		}
		clean := strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
		if !isNonNegativeDecimal(clean) {
			return 0, nil
		}
		return strconv.ParseFloat(clean, 64)
	}
	if v == nil {
		return 0, nil
	}

	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, fmt.Errorf("cost: %w", err)
	}
	return f, nil
}

// parseVotes converts a vote count to an integer, stripping thousands
// separators from string input. Absent or zero-like values yield 0; a
// value that cannot be read as an integer is a parse error.
func parseVotes(v any) (int, error) {
	if isFalsy(v) {
		return 0, nil
	}

	s := strings.TrimSpace(strings.ReplaceAll(cast.ToString(v), ",", ""))
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("votes: %w", err)
	}
	return n, nil
}

// isNonNegativeDecimal reports whether s consists of digits with at
// most one decimal point and no sign. This deliberately rejects negative
// strings: a negative rating or cost arriving as text is treated as
// placeholder noise (parsed to 0), while a genuinely negative number
// arriving as a numeric type still fails range validation.
func isNonNegativeDecimal(s string) bool {
	s = strings.Replace(s, ".", "", 1)
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isFalsy reports whether a raw field value counts as absent: nil, an
// empty string, numeric zero, or false. The string "0" is present, not
// falsy.
func isFalsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	default:
		if f, err := cast.ToFloat64E(v); err == nil {
			return f == 0
		}
		return false
	}
}
