// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package config

import "time"

// Config holds all application configuration loaded from config files and
// environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting
//
// Every tunable that governs pipeline or engine behavior lives here and
// is passed into the owning component at construction. There is no
// package-level mutable configuration anywhere in the codebase, which
// keeps components deterministic and reentrant under test.
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Database  DatabaseConfig  `koanf:"database"`
	Ingest    IngestConfig    `koanf:"ingest"`
	Cleaning  CleaningConfig  `koanf:"cleaning"`
	Features  FeaturesConfig  `koanf:"features"`
	Recommend RecommendConfig `koanf:"recommend"`
	Server    ServerConfig    `koanf:"server"`
	API       APIConfig       `koanf:"api"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// DatabaseConfig configures the DuckDB store.
type DatabaseConfig struct {
	// Path is the DuckDB database file path.
	Path string `koanf:"path"`

	// MaxMemory limits DuckDB memory usage (e.g. "1GB").
	MaxMemory string `koanf:"max_memory"`

	// Threads sets the DuckDB thread count. 0 means runtime.NumCPU().
	Threads int `koanf:"threads"`
}

// IngestConfig configures the raw record source feeding the pipeline.
type IngestConfig struct {
	// CSVPath is the path to the raw listings CSV file.
	CSVPath string `koanf:"csv_path"`

	// RunOnStartup triggers a full pipeline run when the server boots.
	RunOnStartup bool `koanf:"run_on_startup"`
}

// CleaningConfig contains the record normalizer tunables.
type CleaningConfig struct {
	// DefaultCost substitutes a missing average_cost_for_two.
	DefaultCost float64 `koanf:"default_cost"`

	// MinRating and MaxRating bound valid aggregate ratings; records
	// outside the range are discarded and counted.
	MinRating float64 `koanf:"min_rating"`
	MaxRating float64 `koanf:"max_rating"`
}

// FeaturesConfig contains the feature deriver tunables.
type FeaturesConfig struct {
	// BudgetMax is the exclusive upper bound of the budget bucket.
	BudgetMax float64 `koanf:"budget_max"`

	// PremiumMin is the inclusive lower bound of the premium bucket.
	// Costs in [BudgetMax, PremiumMin) fall into mid-range.
	PremiumMin float64 `koanf:"premium_min"`

	// MinVotesThreshold is the vote count at which a restaurant is
	// flagged popular.
	MinVotesThreshold int `koanf:"min_votes_threshold"`

	// RatingWeight and VotesWeight blend rating and log-scaled votes
	// into the popularity score. They should sum to 1.0.
	RatingWeight float64 `koanf:"rating_weight"`
	VotesWeight  float64 `koanf:"votes_weight"`
}

// RecommendConfig contains the recommendation engine scoring tunables.
// These values define the ranking policy and are deliberate product
// decisions; changing them changes result ordering.
type RecommendConfig struct {
	// QualityWeight scales the normalized rating contribution (0-7 points).
	QualityWeight float64 `koanf:"quality_weight"`

	// PopularityWeight scales the capped vote contribution (0-3 points).
	PopularityWeight float64 `koanf:"popularity_weight"`

	// VotesCap is the vote count at which popularity saturates.
	VotesCap int `koanf:"votes_cap"`

	// CuisineBonus is added once when any preferred cuisine matches.
	CuisineBonus float64 `koanf:"cuisine_bonus"`

	// OverFetch is the candidate pool size retrieved before scoring.
	OverFetch int `koanf:"over_fetch"`

	// DefaultLimit and MaxLimit bound the caller-supplied result limit.
	DefaultLimit int `koanf:"default_limit"`
	MaxLimit     int `koanf:"max_limit"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`

	// CORSOrigins lists allowed CORS origins.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitReqs requests per RateLimitWindow per client IP.
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// APIConfig configures API response behavior.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// LoggingConfig configures application logging.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file:line in log output.
	Caller bool `koanf:"caller"`
}
