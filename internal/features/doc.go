// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

// Package features derives the six scoring attributes for cleaned
// restaurant records: price category, popularity score, cuisine
// diversity, online delivery and table booking flags, and the popular
// flag.
//
// All derivations are pure functions of a single record, with one
// exception: the popularity score normalizes vote counts against the
// batch maximum, so Derive makes one full pass to find it before the
// per-record computation. There is no ordering dependency between the
// six features themselves.
//
// Derivation never fails a batch. A cost that cannot be bucketed yields
// the "unknown" category rather than an error.
package features
