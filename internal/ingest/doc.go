// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

// Package ingest loads raw restaurant listing records for the pipeline.
//
// The pipeline only depends on the RecordSource interface; the CSV
// reader is the bundled implementation for the aggregator listing
// exports the product ships against. Source columns are mapped onto
// the canonical field names the cleaner consumes (for example
// "approx_cost(for two people)" becomes "average_cost_for_two"), and
// unrecognized columns pass through untouched; the cleaner tolerates
// and ignores extra fields.
package ingest
