// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package recommend

import "fmt"

// Config contains the scoring and retrieval tunables for the engine.
//
// The default values are deliberate product decisions, not free
// parameters: the 70/30 quality/popularity split (7 of 10 points from
// rating, 3 from votes), the 1000-vote saturation point and the
// once-only cuisine bonus together define result ordering. Change them
// and every ranking changes.
type Config struct {
	// QualityWeight scales the normalized rating term (rating/5 *
	// QualityWeight points).
	QualityWeight float64 `json:"quality_weight"`

	// PopularityWeight scales the capped votes term (min(votes,
	// VotesCap)/VotesCap * PopularityWeight points).
	PopularityWeight float64 `json:"popularity_weight"`

	// VotesCap is the vote count at which popularity saturates.
	VotesCap int `json:"votes_cap"`

	// CuisineBonus is added at most once when any preferred cuisine
	// matches the candidate, regardless of how many match.
	CuisineBonus float64 `json:"cuisine_bonus"`

	// MaxScore caps the final match score.
	MaxScore float64 `json:"max_score"`

	// OverFetch is the candidate pool size retrieved before scoring.
	OverFetch int `json:"over_fetch"`

	// DefaultLimit applies when the caller passes a non-positive limit;
	// MaxLimit clamps larger requests.
	DefaultLimit int `json:"default_limit"`
	MaxLimit     int `json:"max_limit"`
}

// DefaultConfig returns the canonical scoring configuration.
func DefaultConfig() Config {
	return Config{
		QualityWeight:    7.0,
		PopularityWeight: 3.0,
		VotesCap:         1000,
		CuisineBonus:     1.0,
		MaxScore:         10.0,
		OverFetch:        50,
		DefaultLimit:     5,
		MaxLimit:         50,
	}
}

// Validate checks the configuration for values that would produce
// nonsensical scores.
func (c Config) Validate() error {
	if c.QualityWeight < 0 || c.PopularityWeight < 0 || c.CuisineBonus < 0 {
		return fmt.Errorf("scoring weights must be >= 0")
	}
	if c.VotesCap <= 0 {
		return fmt.Errorf("votes cap must be > 0, got %d", c.VotesCap)
	}
	if c.MaxScore <= 0 {
		return fmt.Errorf("max score must be > 0, got %g", c.MaxScore)
	}
	if c.OverFetch <= 0 {
		return fmt.Errorf("over-fetch must be > 0, got %d", c.OverFetch)
	}
	if c.DefaultLimit <= 0 {
		return fmt.Errorf("default limit must be > 0, got %d", c.DefaultLimit)
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("max limit (%d) must be >= default limit (%d)", c.MaxLimit, c.DefaultLimit)
	}
	return nil
}
