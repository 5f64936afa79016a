// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

// Package pipeline orchestrates a full batch run: load raw records from
// a source, clean them, derive features and atomically replace the store
// snapshot. Only one run executes at a time; the result of the most
// recent completed run is retained for inspection.
package pipeline
