// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

// Package middleware provides HTTP middleware shared by the API router:
// request ID propagation, Prometheus request instrumentation and gzip
// response compression. All middleware uses the http.HandlerFunc shape;
// the router adapts it to Chi's func(http.Handler) http.Handler form.
package middleware
