// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

// Package validation provides struct validation using
// go-playground/validator v10. It exposes a thread-safe singleton
// validator with the custom rules the API request types need, and
// translates field errors into the API's VALIDATION_ERROR format.
package validation
