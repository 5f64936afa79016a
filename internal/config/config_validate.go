// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package config

import (
	"fmt"
	"strings"
)

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateCleaning(); err != nil {
		return err
	}
	if err := c.validateFeatures(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateAPI(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("database.threads must be >= 0, got %d", c.Database.Threads)
	}
	return nil
}

func (c *Config) validateCleaning() error {
	if c.Cleaning.DefaultCost < 0 {
		return fmt.Errorf("cleaning.default_cost must be >= 0, got %g", c.Cleaning.DefaultCost)
	}
	if c.Cleaning.MinRating < 0 || c.Cleaning.MaxRating <= c.Cleaning.MinRating {
		return fmt.Errorf("cleaning rating bounds invalid: min=%g max=%g",
			c.Cleaning.MinRating, c.Cleaning.MaxRating)
	}
	return nil
}

func (c *Config) validateFeatures() error {
	if c.Features.BudgetMax <= 0 {
		return fmt.Errorf("features.budget_max must be > 0, got %g", c.Features.BudgetMax)
	}
	if c.Features.PremiumMin <= c.Features.BudgetMax {
		return fmt.Errorf("features.premium_min (%g) must exceed budget_max (%g)",
			c.Features.PremiumMin, c.Features.BudgetMax)
	}
	if c.Features.MinVotesThreshold < 0 {
		return fmt.Errorf("features.min_votes_threshold must be >= 0, got %d",
			c.Features.MinVotesThreshold)
	}
	if c.Features.RatingWeight < 0 || c.Features.VotesWeight < 0 {
		return fmt.Errorf("features weights must be >= 0")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.QualityWeight < 0 || r.PopularityWeight < 0 || r.CuisineBonus < 0 {
		return fmt.Errorf("recommend weights must be >= 0")
	}
	if r.VotesCap <= 0 {
		return fmt.Errorf("recommend.votes_cap must be > 0, got %d", r.VotesCap)
	}
	if r.OverFetch <= 0 {
		return fmt.Errorf("recommend.over_fetch must be > 0, got %d", r.OverFetch)
	}
	if r.DefaultLimit <= 0 || r.MaxLimit < r.DefaultLimit {
		return fmt.Errorf("recommend limits invalid: default=%d max=%d",
			r.DefaultLimit, r.MaxLimit)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be > 0, got %v", c.Server.Timeout)
	}
	if !c.Server.RateLimitDisabled {
		if c.Server.RateLimitReqs <= 0 || c.Server.RateLimitWindow <= 0 {
			return fmt.Errorf("server rate limit invalid: reqs=%d window=%v",
				c.Server.RateLimitReqs, c.Server.RateLimitWindow)
		}
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.DefaultPageSize <= 0 || c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("api page sizes invalid: default=%d max=%d",
			c.API.DefaultPageSize, c.API.MaxPageSize)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("logging.level %q is not a valid level", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
