// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

// Package models defines the shared data structures that flow through the
// Gustus pipeline and API.
//
// The types fall into three groups:
//
//   - Pipeline types: RawRecord (loose-typed loader output), Restaurant
//     (validated, feature-annotated record), CleaningReport and
//     FeatureSummary (batch statistics).
//   - Query types: UserQuery (per-request preferences), ScoredRestaurant
//     and RecommendationResponse (engine output contract).
//   - Store types: StoreStats (aggregate store statistics).
//
// RawRecord is intentionally an open-ended map: the loader hands over
// whatever fields the upstream dataset contains, and only the cleaning
// stage decides which of them survive. Everything downstream of cleaning
// is strongly typed.
package models
