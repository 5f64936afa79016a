// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/gustus/config.yaml",
	"/etc/gustus/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "CONFIG_PATH"

// envPrefix namespaces all Gustus environment variables.
const envPrefix = "GUSTUS_"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and
// environment variables.
func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:      "/data/gustus.duckdb",
			MaxMemory: "1GB",
			Threads:   0, // 0 = use runtime.NumCPU()
		},
		Ingest: IngestConfig{
			CSVPath:      "/data/restaurants.csv",
			RunOnStartup: false,
		},
		Cleaning: CleaningConfig{
			DefaultCost: 500,
			MinRating:   0.0,
			MaxRating:   5.0,
		},
		Features: FeaturesConfig{
			BudgetMax:         500,
			PremiumMin:        1500,
			MinVotesThreshold: 10,
			RatingWeight:      0.7,
			VotesWeight:       0.3,
		},
		Recommend: RecommendConfig{
			QualityWeight:    7.0,
			PopularityWeight: 3.0,
			VotesCap:         1000,
			CuisineBonus:     1.0,
			OverFetch:        50,
			DefaultLimit:     5,
			MaxLimit:         50,
		},
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8490,
			Timeout:           30 * time.Second,
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
		},
		API: APIConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// Environment variables use the GUSTUS_ prefix with underscores mapping
// to nesting, e.g. GUSTUS_DATABASE_PATH -> database.path and
// GUSTUS_RECOMMEND_VOTES_CAP -> recommend.votes_cap.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	envProvider := env.Provider(envPrefix, ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path of the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransformFunc transforms environment variable names to koanf config
// paths. The first underscore after the prefix separates the section from
// the key; the key keeps its underscores.
//
// Examples:
//   - GUSTUS_DATABASE_PATH -> database.path
//   - GUSTUS_SERVER_RATE_LIMIT_REQS -> server.rate_limit_reqs
//   - GUSTUS_FEATURES_MIN_VOTES_THRESHOLD -> features.min_votes_threshold
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))

	section, rest, found := strings.Cut(key, "_")
	if !found {
		return key
	}
	return section + "." + rest
}
