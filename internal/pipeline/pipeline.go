// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/gustus/internal/cleaning"
	"github.com/tomtom215/gustus/internal/features"
	"github.com/tomtom215/gustus/internal/ingest"
	"github.com/tomtom215/gustus/internal/logging"
	"github.com/tomtom215/gustus/internal/metrics"
	"github.com/tomtom215/gustus/internal/models"
)

// ErrAlreadyRunning is returned by Run when a run is already in flight.
var ErrAlreadyRunning = errors.New("pipeline run already in progress")

// RestaurantStore is the persistence surface the pipeline needs: a full
// atomic snapshot replace. Satisfied by *database.DB.
type RestaurantStore interface {
	ReplaceAll(ctx context.Context, records []models.Restaurant) error
}

// Pipeline runs the load-clean-derive-store sequence against a record
// source and a store. Safe for concurrent use; concurrent Run calls
// beyond the first fail fast with ErrAlreadyRunning.
type Pipeline struct {
	source      ingest.RecordSource
	store       RestaurantStore
	cleaningCfg cleaning.Config
	featuresCfg features.Config

	runMu sync.Mutex // held for the duration of a run

	mu   sync.RWMutex
	last *models.PipelineResult
}

// New creates a pipeline over the given source and store.
func New(source ingest.RecordSource, store RestaurantStore, cleaningCfg cleaning.Config, featuresCfg features.Config) *Pipeline {
	return &Pipeline{
		source:      source,
		store:       store,
		cleaningCfg: cleaningCfg,
		featuresCfg: featuresCfg,
	}
}

// Run executes one full pipeline run and returns its result. A load or
// store failure aborts the run and leaves the previous snapshot intact;
// record-scoped cleaning failures are counted in the report instead.
func (p *Pipeline) Run(ctx context.Context) (models.PipelineResult, error) {
	if !p.runMu.TryLock() {
		return models.PipelineResult{}, ErrAlreadyRunning
	}
	defer p.runMu.Unlock()

	result := models.PipelineResult{
		RunID:     uuid.New(),
		StartedAt: time.Now(),
	}
	log := logging.With().Str("run_id", result.RunID.String()).Logger()
	log.Info().Msg("Pipeline run started")

	raw, err := p.source.Load(ctx)
	if err != nil {
		metrics.PipelineRuns.WithLabelValues("error").Inc()
		return result, fmt.Errorf("failed to load records: %w", err)
	}
	result.LoadedRecords = len(raw)

	cleaner := cleaning.NewCleaner(p.cleaningCfg)
	cleaned := cleaner.Clean(raw)
	result.CleaningReport = cleaner.Report()

	engineer := features.NewEngineer(p.featuresCfg)
	annotated := engineer.Derive(cleaned)
	result.FeatureSummary = engineer.Summary(annotated)

	if err := p.store.ReplaceAll(ctx, annotated); err != nil {
		metrics.PipelineRuns.WithLabelValues("error").Inc()
		return result, fmt.Errorf("failed to store snapshot: %w", err)
	}
	result.StoredCount = len(annotated)
	result.Duration = time.Since(result.StartedAt)

	p.recordMetrics(result)
	p.setLast(result)

	log.Info().
		Int("loaded", result.LoadedRecords).
		Int("stored", result.StoredCount).
		Dur("elapsed", result.Duration).
		Msg("Pipeline run complete")
	return result, nil
}

// LastResult returns the result of the most recent successful run, or
// false if no run has completed yet.
func (p *Pipeline) LastResult() (models.PipelineResult, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.last == nil {
		return models.PipelineResult{}, false
	}
	return *p.last, true
}

func (p *Pipeline) setLast(result models.PipelineResult) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = &result
}

func (p *Pipeline) recordMetrics(result models.PipelineResult) {
	metrics.PipelineRuns.WithLabelValues("success").Inc()
	metrics.PipelineDuration.Observe(result.Duration.Seconds())
	metrics.RecordsStored.Set(float64(result.StoredCount))

	report := result.CleaningReport
	metrics.RecordsDropped.WithLabelValues("duplicate").Add(float64(report.DuplicatesRemoved))
	metrics.RecordsDropped.WithLabelValues("missing").Add(float64(report.MissingValuesHandled))
	metrics.RecordsDropped.WithLabelValues("invalid").Add(float64(report.InvalidRecordsRemoved))
}
