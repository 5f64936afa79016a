// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

// Package metrics exposes Prometheus instrumentation for the pipeline,
// the store and the recommendation engine. All collectors are registered
// on the default registry and served from /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Store metrics

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gustus_duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gustus_duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"table"},
	)

	// Pipeline metrics

	PipelineRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gustus_pipeline_runs_total",
			Help: "Total number of pipeline runs by outcome",
		},
		[]string{"outcome"}, // "success" or "error"
	)

	PipelineDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gustus_pipeline_duration_seconds",
			Help:    "End-to-end duration of pipeline runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		},
	)

	RecordsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gustus_pipeline_records_dropped_total",
			Help: "Records dropped during cleaning by reason",
		},
		[]string{"reason"}, // "duplicate", "missing", "invalid"
	)

	RecordsStored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gustus_store_records",
			Help: "Restaurant records in the current store snapshot",
		},
	)

	// HTTP API metrics

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gustus_api_requests_total",
			Help: "Total API requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gustus_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gustus_api_active_requests",
			Help: "API requests currently in flight",
		},
	)

	// Recommendation engine metrics

	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gustus_recommend_requests_total",
			Help: "Total recommendation requests by outcome",
		},
		[]string{"outcome"}, // "hit", "empty", "degraded"
	)

	RecommendLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gustus_recommend_latency_seconds",
			Help:    "Latency of recommendation requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// ObserveQuery records the elapsed time of one store operation. Use with
// defer and a captured start time:
//
//	defer metrics.ObserveQuery("candidates", time.Now())
func ObserveQuery(operation string, start time.Time) {
	DBQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// QueryError counts one store query error against a table.
func QueryError(table string) {
	DBQueryErrors.WithLabelValues(table).Inc()
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(start bool) {
	if start {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, path, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, path, status).Inc()
	APIRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
