// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

// Package cleaning implements the record normalizer: the first pipeline
// stage, turning loose-typed raw listing records into validated
// restaurant records.
//
// # Stages
//
// Cleaning runs four stages in a fixed order, each consuming the
// previous stage's output:
//
//  1. Deduplication by (name, city), trimmed and lower-cased. The first
//     occurrence wins and survivor order is preserved.
//  2. Missing-value handling: records without a name or city are
//     dropped; cuisines default to "Unknown", rating and votes to 0,
//     cost to the configured default.
//  3. Text standardization: city is trimmed and title-cased, name and
//     cuisines are trimmed.
//  4. Numeric parsing and invalidation: ratings like "4.1/5", costs like
//     "1,200" and comma-grouped vote counts are converted to numbers;
//     records that fail to parse or violate the valid ranges are
//     dropped.
//
// Clean runs all four stages and finalizes typed records. Each stage is
// also independently callable and idempotent when re-applied to already
// clean data.
//
// # Error handling
//
// Per-record failures are never propagated. They are counted in the
// CleaningReport (duplicates, missing, invalid) and the record is
// silently discarded; only the batch totals surface to the caller.
package cleaning
