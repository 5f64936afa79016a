// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserQuery captures one user's restaurant preferences. It is ephemeral,
// constructed per request, and normalized before reaching the engine:
// City is title-cased, PriceRange is lower-cased, Cuisine entries are
// trimmed with empty entries dropped.
type UserQuery struct {
	// City to search, matched exactly after title-case normalization.
	City string `json:"city" validate:"required"`

	// PriceRange is one of the three queryable price buckets.
	PriceRange string `json:"price_range" validate:"required,pricecategory"`

	// Cuisine optionally restricts results to restaurants whose cuisine
	// string contains at least one of these substrings.
	Cuisine []string `json:"cuisine,omitempty"`

	// MinRating is the minimum aggregate rating, 0 to 5.
	MinRating float64 `json:"min_rating" validate:"gte=0,lte=5"`
}

// Normalize canonicalizes the query in place: city to title case, price
// range to lower case, cuisine entries trimmed with empties dropped.
// Must be called before the query reaches the engine so that exact-match
// filters line up with the stored, cleaned values.
func (q *UserQuery) Normalize() {
	q.City = TitleCase(strings.TrimSpace(q.City))
	q.PriceRange = strings.ToLower(strings.TrimSpace(q.PriceRange))

	if len(q.Cuisine) == 0 {
		q.Cuisine = nil
		return
	}
	cuisines := make([]string, 0, len(q.Cuisine))
	for _, c := range q.Cuisine {
		if trimmed := strings.TrimSpace(c); trimmed != "" {
			cuisines = append(cuisines, trimmed)
		}
	}
	if len(cuisines) == 0 {
		cuisines = nil
	}
	q.Cuisine = cuisines
}

// ScoredRestaurant pairs a persisted restaurant with its computed match
// score for one query. Ordering within a RecommendationResponse is the
// engine's output contract: match score descending, ties broken by the
// store's rating/votes pre-ranking.
type ScoredRestaurant struct {
	Name          string  `json:"name"`
	City          string  `json:"city"`
	Address       string  `json:"address,omitempty"`
	Cuisines      string  `json:"cuisines"`
	AverageCost   float64 `json:"average_cost"`
	PriceCategory string  `json:"price_category"`
	Rating        float64 `json:"rating"`
	Votes         int     `json:"votes"`

	// MatchScore is the per-query relevance score in [0,10].
	MatchScore float64 `json:"match_score"`
}

// RecommendationResponse is the engine's answer to one UserQuery.
// A query that matches nothing yields Count == 0 and an empty slice,
// never an error.
type RecommendationResponse struct {
	UserCity        string             `json:"user_city"`
	Count           int                `json:"count"`
	Recommendations []ScoredRestaurant `json:"recommendations"`
}

// PipelineResult summarizes one full pipeline run: ingest, clean, derive
// and bulk-replace. Retrievable from the pipeline via LastResult after
// the run completes.
type PipelineResult struct {
	RunID          uuid.UUID      `json:"run_id"`
	StartedAt      time.Time      `json:"started_at"`
	Duration       time.Duration  `json:"duration"`
	LoadedRecords  int            `json:"loaded_records"`
	CleaningReport CleaningReport `json:"cleaning_report"`
	FeatureSummary FeatureSummary `json:"feature_summary"`
	StoredCount    int            `json:"stored_count"`
}

// StoreStats describes the current store snapshot.
type StoreStats struct {
	TotalRecords      int            `json:"total_records"`
	Cities            int            `json:"cities"`
	Cuisines          int            `json:"cuisines"`
	PriceDistribution map[string]int `json:"price_distribution"`
}
