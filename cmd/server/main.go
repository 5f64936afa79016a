// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

// Package main is the entry point for the Gustus server.
//
// Gustus ingests raw restaurant listing dumps, cleans and
// feature-annotates them, stores the result as an atomic DuckDB
// snapshot, and serves preference-based recommendations over a REST
// API.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: settings from config.yaml and environment variables (Koanf v2)
//  2. Database: DuckDB store holding the restaurant snapshot
//  3. Pipeline: CSV ingest, cleaning, feature derivation, bulk replace
//  4. Recommendation engine: preference scoring over store candidates
//  5. HTTP server: Chi REST API plus Prometheus /metrics
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (GUSTUS_ prefix, e.g. GUSTUS_SERVER_PORT)
//   - Config file (config.yaml)
//   - Built-in defaults
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: it stops
// accepting connections, waits up to 10 seconds for in-flight requests,
// then closes the database.
//
// # Example Usage
//
//	export GUSTUS_INGEST_CSV_PATH=/data/listings.csv
//	export GUSTUS_INGEST_RUN_ON_STARTUP=true
//	./gustus
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/gustus/internal/api"
	"github.com/tomtom215/gustus/internal/cleaning"
	"github.com/tomtom215/gustus/internal/config"
	"github.com/tomtom215/gustus/internal/database"
	"github.com/tomtom215/gustus/internal/features"
	"github.com/tomtom215/gustus/internal/ingest"
	"github.com/tomtom215/gustus/internal/logging"
	"github.com/tomtom215/gustus/internal/pipeline"
	"github.com/tomtom215/gustus/internal/recommend"
)

// shutdownTimeout bounds the graceful HTTP shutdown.
const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("csv_path", cfg.Ingest.CSVPath).
		Bool("run_on_startup", cfg.Ingest.RunOnStartup).
		Msg("Starting Gustus")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized")

	source := ingest.NewCSVReader(cfg.Ingest.CSVPath)
	pipe := pipeline.New(source, db, cleaningConfig(cfg), featuresConfig(cfg))

	engine, err := recommend.NewEngine(db, recommendConfig(cfg))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize recommendation engine")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Ingest.RunOnStartup {
		result, err := pipe.Run(ctx)
		if err != nil {
			// A failed startup run is not fatal: the previous snapshot
			// (if any) keeps serving and a run can be retried via the API.
			logging.Error().Err(err).Msg("Startup pipeline run failed")
		} else {
			logging.Info().
				Str("run_id", result.RunID.String()).
				Int("stored", result.StoredCount).
				Msg("Startup pipeline run complete")
		}
	}

	handler := api.NewHandler(db, engine, pipe, api.Paging{
		DefaultPageSize: cfg.API.DefaultPageSize,
		MaxPageSize:     cfg.API.MaxPageSize,
	})
	router := api.NewRouter(handler, &api.ChiMiddlewareConfig{
		CORSAllowedOrigins:   cfg.Server.CORSOrigins,
		CORSAllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		CORSAllowedHeaders:   []string{"Content-Type"},
		CORSAllowCredentials: false,
		CORSMaxAge:           86400,
		RateLimitRequests:    cfg.Server.RateLimitReqs,
		RateLimitWindow:      cfg.Server.RateLimitWindow,
		RateLimitDisabled:    cfg.Server.RateLimitDisabled,
	}, cfg.Server.Timeout)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error().Err(err).Msg("HTTP server error")
		}
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("HTTP server shutdown error")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// cleaningConfig maps the loaded configuration onto the cleaner tunables.
func cleaningConfig(cfg *config.Config) cleaning.Config {
	return cleaning.Config{
		DefaultCost: cfg.Cleaning.DefaultCost,
		MinRating:   cfg.Cleaning.MinRating,
		MaxRating:   cfg.Cleaning.MaxRating,
	}
}

// featuresConfig maps the loaded configuration onto the deriver tunables.
func featuresConfig(cfg *config.Config) features.Config {
	return features.Config{
		BudgetMax:         cfg.Features.BudgetMax,
		PremiumMin:        cfg.Features.PremiumMin,
		MinVotesThreshold: cfg.Features.MinVotesThreshold,
		RatingWeight:      cfg.Features.RatingWeight,
		VotesWeight:       cfg.Features.VotesWeight,
	}
}

// recommendConfig maps the loaded configuration onto the engine
// tunables. MaxScore is fixed: the 0-10 scale is part of the API
// contract, not a deployment knob.
func recommendConfig(cfg *config.Config) recommend.Config {
	rc := recommend.DefaultConfig()
	rc.QualityWeight = cfg.Recommend.QualityWeight
	rc.PopularityWeight = cfg.Recommend.PopularityWeight
	rc.VotesCap = cfg.Recommend.VotesCap
	rc.CuisineBonus = cfg.Recommend.CuisineBonus
	rc.OverFetch = cfg.Recommend.OverFetch
	rc.DefaultLimit = cfg.Recommend.DefaultLimit
	rc.MaxLimit = cfg.Recommend.MaxLimit
	return rc
}
