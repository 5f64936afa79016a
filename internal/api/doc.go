// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

// Package api provides the HTTP surface of the service: a Chi router,
// JSON response envelopes and the handlers for recommendations, browse
// queries, store statistics and pipeline control.
//
// All responses share one envelope:
//
//	{
//	  "status": "success",
//	  "data": {...},
//	  "metadata": {"timestamp": "2026-08-30T12:00:00Z"},
//	  "error": null
//	}
//
// Errors carry a machine-readable code (VALIDATION_ERROR,
// DATABASE_ERROR, NOT_FOUND, CONFLICT) alongside a human-readable
// message.
package api
