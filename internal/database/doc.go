// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

// Package database implements the restaurant store on DuckDB.
//
// The store holds one table, restaurants, holding the finalized
// feature-annotated records of the most recent pipeline run. The city
// and (city, price_category) secondary indexes are part of the schema,
// not an optimization: the recommendation engine's primary access path
// filters on exactly those columns.
//
// # Snapshot semantics
//
// A pipeline run replaces the entire collection via ReplaceAll, which
// deletes and reinserts inside a single transaction. Concurrent readers
// see either the complete old snapshot or the complete new one, never a
// partial state; DuckDB's transactional isolation owns that guarantee.
// Records are never individually mutated.
//
// All read methods are safe for concurrent use and hold no state across
// calls.
package database
