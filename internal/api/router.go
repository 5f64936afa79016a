// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/gustus/internal/middleware"
)

// chiMiddleware adapts http.HandlerFunc middleware to Chi's
// func(http.Handler) http.Handler shape.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Router wires the handlers into a Chi router.
type Router struct {
	handler *Handler
	mw      *ChiMiddleware
	timeout time.Duration
}

// NewRouter creates a router over the given handler set. A nil
// middleware config falls back to the secure defaults; a non-positive
// timeout disables the per-request timeout middleware.
func NewRouter(handler *Handler, mwConfig *ChiMiddlewareConfig, timeout time.Duration) *Router {
	return &Router{
		handler: handler,
		mw:      NewChiMiddleware(mwConfig),
		timeout: timeout,
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.mw.CORS()) // CORS must be global to handle OPTIONS preflight
	if router.timeout > 0 {
		r.Use(chimiddleware.Timeout(router.timeout))
	}

	// Health and metrics stay outside the rate limit so monitoring is
	// never throttled away.
	r.Get("/api/v1/health", router.handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.mw.RateLimit())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(chiMiddleware(middleware.Compression))

		r.Post("/recommendations", router.handler.Recommendations)
		r.Get("/restaurants", router.handler.Restaurants)
		r.Get("/cities", router.handler.Cities)
		r.Get("/cuisines", router.handler.Cuisines)
		r.Get("/stats", router.handler.Stats)

		r.Post("/pipeline/run", router.handler.PipelineRun)
		r.Get("/pipeline/report", router.handler.PipelineReport)
	})

	return r
}
