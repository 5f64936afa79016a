// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/gustus/internal/database"
	"github.com/tomtom215/gustus/internal/logging"
	"github.com/tomtom215/gustus/internal/metrics"
	"github.com/tomtom215/gustus/internal/models"
)

// ErrNotInitialized indicates the engine was constructed without a
// candidate store. This is caller misuse, not a query failure.
var ErrNotInitialized = errors.New("recommendation engine not initialized")

// CandidateStore is the read-only store access the engine needs. It is
// satisfied by *database.DB; tests substitute a stub.
type CandidateStore interface {
	Candidates(ctx context.Context, filter database.CandidateFilter) ([]models.Restaurant, error)
}

// Engine answers user preference queries with ranked restaurant
// recommendations. It is stateless between calls and safe for
// concurrent use; it never writes to the store.
type Engine struct {
	store CandidateStore
	cfg   Config
}

// NewEngine creates a recommendation engine backed by the given store.
func NewEngine(store CandidateStore, cfg Config) (*Engine, error) {
	if store == nil {
		return nil, ErrNotInitialized
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	return &Engine{store: store, cfg: cfg}, nil
}

// Recommend returns up to limit restaurants matching the query, ranked
// by match score descending. A non-positive limit falls back to the
// configured default; limits above the maximum are clamped.
//
// Query-shaped failures never surface as errors: a store read failure
// or an empty candidate pool yields a response with Count == 0 and an
// empty list.
func (e *Engine) Recommend(ctx context.Context, query models.UserQuery, limit int) (models.RecommendationResponse, error) {
	if e == nil || e.store == nil {
		return models.RecommendationResponse{}, ErrNotInitialized
	}

	start := time.Now()
	defer func() {
		metrics.RecommendLatency.Observe(time.Since(start).Seconds())
	}()

	query.Normalize()

	if limit <= 0 {
		limit = e.cfg.DefaultLimit
	}
	if limit > e.cfg.MaxLimit {
		limit = e.cfg.MaxLimit
	}

	candidates, err := e.store.Candidates(ctx, database.CandidateFilter{
		City:          query.City,
		PriceCategory: query.PriceRange,
		MinRating:     query.MinRating,
		Cuisines:      query.Cuisine,
		Limit:         e.cfg.OverFetch,
	})
	if err != nil {
		// Degrade to an empty response; a failed read must not surface
		// as an error to the caller.
		logging.Error().Err(err).Str("city", query.City).Msg("Candidate retrieval failed")
		metrics.RecommendRequests.WithLabelValues("degraded").Inc()
		return emptyResponse(query.City), nil
	}

	scored := make([]models.ScoredRestaurant, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, models.ScoredRestaurant{
			Name:          c.Name,
			City:          c.City,
			Address:       c.Address,
			Cuisines:      c.Cuisines,
			AverageCost:   c.AverageCostForTwo,
			PriceCategory: c.PriceCategory,
			Rating:        c.AggregateRating,
			Votes:         c.Votes,
			MatchScore:    e.MatchScore(c.AggregateRating, c.Votes, c.Cuisines, query.Cuisine),
		})
	}

	// Stable sort keeps the store's rating/votes pre-ranking as the
	// tiebreaker for equal match scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchScore > scored[j].MatchScore
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}

	outcome := "hit"
	if len(scored) == 0 {
		outcome = "empty"
	}
	metrics.RecommendRequests.WithLabelValues(outcome).Inc()

	logging.Debug().
		Str("city", query.City).
		Str("price_range", query.PriceRange).
		Int("candidates", len(candidates)).
		Int("returned", len(scored)).
		Msg("Recommendations computed")

	return models.RecommendationResponse{
		UserCity:        query.City,
		Count:           len(scored),
		Recommendations: scored,
	}, nil
}

// MatchScore computes the relevance score in [0, MaxScore] for one
// candidate against the preferred cuisines:
//
//	quality    = rating/5 * QualityWeight
//	popularity = min(votes, VotesCap)/VotesCap * PopularityWeight
//	bonus      = CuisineBonus if any preferred cuisine appears in the
//	             candidate's cuisine string (case-insensitive), once
//
// The sum is rounded to 2 decimal places, then capped.
func (e *Engine) MatchScore(rating float64, votes int, cuisines string, preferred []string) float64 {
	quality := rating / 5.0 * e.cfg.QualityWeight

	cappedVotes := float64(votes)
	if cappedVotes > float64(e.cfg.VotesCap) {
		cappedVotes = float64(e.cfg.VotesCap)
	}
	popularity := cappedVotes / float64(e.cfg.VotesCap) * e.cfg.PopularityWeight

	score := quality + popularity

	lowerCuisines := strings.ToLower(cuisines)
	for _, p := range preferred {
		if p == "" {
			continue
		}
		if strings.Contains(lowerCuisines, strings.ToLower(p)) {
			score += e.cfg.CuisineBonus
			break // bonus applies at most once
		}
	}

	score = math.Round(score*100) / 100
	if score > e.cfg.MaxScore {
		return e.cfg.MaxScore
	}
	return score
}

func emptyResponse(city string) models.RecommendationResponse {
	return models.RecommendationResponse{
		UserCity:        city,
		Count:           0,
		Recommendations: []models.ScoredRestaurant{},
	}
}
