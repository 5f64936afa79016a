// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package features

import (
	"math"
	"strings"

	"github.com/tomtom215/gustus/internal/logging"
	"github.com/tomtom215/gustus/internal/models"
)

// Config contains the feature deriver tunables.
type Config struct {
	// BudgetMax is the exclusive upper bound of the budget bucket.
	BudgetMax float64

	// PremiumMin is the inclusive lower bound of the premium bucket.
	// Costs in [BudgetMax, PremiumMin) are mid-range.
	PremiumMin float64

	// MinVotesThreshold is the vote count at which a restaurant is
	// flagged popular.
	MinVotesThreshold int

	// RatingWeight and VotesWeight blend the normalized rating and the
	// log-scaled vote count into the popularity score.
	RatingWeight float64
	VotesWeight  float64
}

// DefaultConfig returns the standard derivation configuration: price
// buckets at 500 and 1500, popularity threshold of 10 votes, 70/30
// rating/votes blend.
func DefaultConfig() Config {
	return Config{
		BudgetMax:         500,
		PremiumMin:        1500,
		MinVotesThreshold: 10,
		RatingWeight:      0.7,
		VotesWeight:       0.3,
	}
}

// Engineer derives features for cleaned restaurant batches.
type Engineer struct {
	cfg Config
}

// NewEngineer creates a feature engineer with the given configuration.
func NewEngineer(cfg Config) *Engineer {
	return &Engineer{cfg: cfg}
}

// Derive annotates every record in the batch with all six features and
// returns the same slice. The batch maximum vote count is computed once
// before the popularity pass.
func (e *Engineer) Derive(records []models.Restaurant) []models.Restaurant {
	maxVotes := MaxVotes(records)

	for i := range records {
		r := &records[i]
		r.PriceCategory = e.PriceCategory(r.AverageCostForTwo)
		r.PopularityScore = e.PopularityScore(r.AggregateRating, r.Votes, maxVotes)
		r.CuisineDiversity = CuisineDiversity(r.Cuisines)
		r.HasOnlineDelivery = boolFlag(r.OnlineOrder)
		r.HasTableBooking = boolFlag(r.BookTable)
		r.IsPopular = e.isPopular(r.Votes)
	}

	logging.Info().
		Int("records", len(records)).
		Int("max_votes", maxVotes).
		Msg("Feature derivation complete")

	return records
}

// MaxVotes returns the maximum vote count in the batch, or 1 for an
// empty batch so the popularity denominator is never zero.
func MaxVotes(records []models.Restaurant) int {
	if len(records) == 0 {
		return 1
	}
	maxVotes := records[0].Votes
	for _, r := range records[1:] {
		if r.Votes > maxVotes {
			maxVotes = r.Votes
		}
	}
	return maxVotes
}

// PriceCategory buckets a cost for two into budget, mid-range or
// premium. A cost that is not a finite number cannot be bucketed and
// yields the unknown category; derivation deliberately re-validates here
// instead of trusting that cleaning ran first.
func (e *Engineer) PriceCategory(cost float64) string {
	if math.IsNaN(cost) || math.IsInf(cost, 0) {
		return models.PriceUnknown
	}
	switch {
	case cost >= 0 && cost < e.cfg.BudgetMax:
		return models.PriceBudget
	case cost >= e.cfg.BudgetMax && cost < e.cfg.PremiumMin:
		return models.PriceMidRange
	default:
		return models.PricePremium
	}
}

// PopularityScore blends the normalized rating with the log-scaled vote
// count, rounded to 4 decimal places. maxVotes is the batch maximum; if
// it is zero the votes term contributes nothing.
func (e *Engineer) PopularityScore(rating float64, votes, maxVotes int) float64 {
	normalizedRating := rating / 5.0

	normalizedVotes := 0.0
	if denom := math.Log1p(float64(maxVotes)); denom > 0 {
		normalizedVotes = math.Log1p(float64(votes)) / denom
	}

	score := e.cfg.RatingWeight*normalizedRating + e.cfg.VotesWeight*normalizedVotes
	return math.Round(score*10000) / 10000
}

// CuisineDiversity counts the non-empty comma-separated cuisine tags.
// An empty or "Unknown" cuisines string counts zero.
func CuisineDiversity(cuisines string) int {
	if cuisines == "" || cuisines == "Unknown" {
		return 0
	}
	count := 0
	for _, tag := range strings.Split(cuisines, ",") {
		if strings.TrimSpace(tag) != "" {
			count++
		}
	}
	return count
}

// boolFlag converts a source yes/no field to the 0/1 encoding used by
// the persisted schema.
func boolFlag(value string) int {
	switch strings.ToLower(value) {
	case "yes", "true", "1":
		return 1
	default:
		return 0
	}
}

func (e *Engineer) isPopular(votes int) int {
	if votes >= e.cfg.MinVotesThreshold {
		return 1
	}
	return 0
}

// Summary computes batch-level statistics for the derived features:
// price category distribution plus min/max/avg of popularity score and
// cuisine diversity.
func (e *Engineer) Summary(records []models.Restaurant) models.FeatureSummary {
	summary := models.FeatureSummary{
		PriceDistribution: make(map[string]int),
	}
	if len(records) == 0 {
		return summary
	}

	popularity := newStats()
	diversity := newStats()
	for _, r := range records {
		summary.PriceDistribution[r.PriceCategory]++
		popularity.add(r.PopularityScore)
		diversity.add(float64(r.CuisineDiversity))
	}

	summary.PopularityScore = popularity.finish()
	summary.CuisineDiversity = diversity.finish()
	return summary
}

// stats accumulates min/max/sum for one feature.
type stats struct {
	min, max, sum float64
	n             int
}

func newStats() *stats {
	return &stats{min: math.Inf(1), max: math.Inf(-1)}
}

func (s *stats) add(v float64) {
	if v < s.min {
		s.min = v
	}
	if v > s.max {
		s.max = v
	}
	s.sum += v
	s.n++
}

func (s *stats) finish() models.FeatureStats {
	if s.n == 0 {
		return models.FeatureStats{}
	}
	return models.FeatureStats{
		Min: s.min,
		Max: s.max,
		Avg: s.sum / float64(s.n),
	}
}
