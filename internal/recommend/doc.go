// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

// Package recommend implements the restaurant recommendation engine.
//
// # Algorithm
//
// One request runs four steps:
//
//  1. Translate the user query into a store filter: exact city, exact
//     price category, minimum rating, and optional any-of cuisine
//     containment.
//  2. Over-fetch a bounded candidate pool (50 by default), pre-ranked by
//     rating then votes. The pre-ranking only bounds the pool cheaply;
//     it is not the final order.
//  3. Score every candidate: quality (rating out of 7 points) plus
//     popularity (votes capped at 1000, out of 3 points) plus a single
//     cuisine bonus point when any preferred cuisine matches. Scores are
//     rounded to 2 decimals and capped at 10.
//  4. Re-sort by match score descending (stable against the pre-ranking)
//     and truncate to the requested limit.
//
// The weights, the vote cap and the single-application bonus define the
// ranking policy; they are configurable but their defaults are the
// product's canonical behavior.
//
// # Failure contract
//
// The engine is stateless and read-only against the store. Query-shaped
// failures (store read errors, no matching rows) degrade to an empty
// zero-count response; the only errors the constructor or Recommend
// return are programmer-error-class misuse, such as a nil store or an
// invalid configuration.
package recommend
