// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package recommend

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/tomtom215/gustus/internal/database"
	"github.com/tomtom215/gustus/internal/models"
)

// stubStore returns a fixed candidate slice or a fixed error.
type stubStore struct {
	candidates []models.Restaurant
	err        error

	lastFilter database.CandidateFilter
}

func (s *stubStore) Candidates(_ context.Context, filter database.CandidateFilter) ([]models.Restaurant, error) {
	s.lastFilter = filter
	if s.err != nil {
		return nil, s.err
	}
	return s.candidates, nil
}

func newTestEngine(t *testing.T, store CandidateStore) *Engine {
	t.Helper()
	engine, err := NewEngine(store, DefaultConfig())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return engine
}

func TestNewEngine_NilStore(t *testing.T) {
	if _, err := NewEngine(nil, DefaultConfig()); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("NewEngine(nil) error = %v, want ErrNotInitialized", err)
	}
}

func TestMatchScore(t *testing.T) {
	engine := newTestEngine(t, &stubStore{})

	tests := []struct {
		name      string
		rating    float64
		votes     int
		cuisines  string
		preferred []string
		want      float64
	}{
		{name: "perfect score", rating: 5, votes: 1000, cuisines: "Italian", preferred: []string{"Italian"}, want: 10.0},
		{name: "perfect without bonus caps at 10 of components", rating: 5, votes: 1000, want: 10.0},
		{name: "zero everything", rating: 0, votes: 0, want: 0},
		{name: "quality only", rating: 4, votes: 0, want: 5.6},
		{name: "votes above cap saturate", rating: 0, votes: 5000, want: 3.0},
		{name: "half votes", rating: 0, votes: 500, want: 1.5},
		{name: "case-insensitive cuisine bonus", rating: 0, votes: 0, cuisines: "North Indian, Chinese", preferred: []string{"chinese"}, want: 1.0},
		{name: "bonus applies once for multiple matches", rating: 0, votes: 0, cuisines: "Italian, Cafe", preferred: []string{"Italian", "Cafe"}, want: 1.0},
		{name: "no bonus without match", rating: 0, votes: 0, cuisines: "Italian", preferred: []string{"Thai"}, want: 0},
		{name: "empty preferred entry ignored", rating: 0, votes: 0, cuisines: "Italian", preferred: []string{""}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.MatchScore(tt.rating, tt.votes, tt.cuisines, tt.preferred)
			if got != tt.want {
				t.Errorf("MatchScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchScore_Bounds(t *testing.T) {
	engine := newTestEngine(t, &stubStore{})

	for _, rating := range []float64{0, 2.5, 5} {
		for _, votes := range []int{0, 500, 1000, 100000} {
			got := engine.MatchScore(rating, votes, "Italian", []string{"Italian"})
			if got < 0 || got > 10 {
				t.Errorf("MatchScore(%v, %d) = %v, outside [0,10]", rating, votes, got)
			}
			if got != math.Round(got*100)/100 {
				t.Errorf("MatchScore(%v, %d) = %v, not rounded to 2 decimals", rating, votes, got)
			}
		}
	}
}

func TestRecommend_Ranking(t *testing.T) {
	// Pre-ranked by rating/votes as the store would deliver; the cuisine
	// bonus reorders them by match score.
	store := &stubStore{candidates: []models.Restaurant{
		{Name: "High Rated", City: "Bangalore", Cuisines: "Continental", AggregateRating: 4.8, Votes: 900, PriceCategory: models.PriceMidRange},
		{Name: "Cafe Match", City: "Bangalore", Cuisines: "Cafe, Italian", AggregateRating: 4.4, Votes: 850, PriceCategory: models.PriceMidRange},
		{Name: "Low Votes", City: "Bangalore", Cuisines: "Cafe", AggregateRating: 4.4, Votes: 30, PriceCategory: models.PriceMidRange},
	}}
	engine := newTestEngine(t, store)

	resp, err := engine.Recommend(context.Background(), models.UserQuery{
		City:       "bangalore",
		PriceRange: "Mid-Range",
		Cuisine:    []string{"cafe"},
	}, 5)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	if resp.UserCity != "Bangalore" {
		t.Errorf("UserCity = %q, want normalized Bangalore", resp.UserCity)
	}
	if resp.Count != 3 {
		t.Fatalf("Count = %d, want 3", resp.Count)
	}
	if resp.Recommendations[0].Name != "Cafe Match" {
		t.Errorf("top result = %q, want Cafe Match (cuisine bonus outranks raw rating)",
			resp.Recommendations[0].Name)
	}

	// Scores are non-increasing
	for i := 1; i < len(resp.Recommendations); i++ {
		if resp.Recommendations[i].MatchScore > resp.Recommendations[i-1].MatchScore {
			t.Errorf("results not sorted by match score at index %d", i)
		}
	}

	// Normalized filter reached the store with the over-fetch limit
	if store.lastFilter.City != "Bangalore" || store.lastFilter.PriceCategory != "mid-range" {
		t.Errorf("filter = %+v, want normalized city and price", store.lastFilter)
	}
	if store.lastFilter.Limit != DefaultConfig().OverFetch {
		t.Errorf("filter limit = %d, want over-fetch %d", store.lastFilter.Limit, DefaultConfig().OverFetch)
	}
}

func TestRecommend_LimitClamping(t *testing.T) {
	candidates := make([]models.Restaurant, 20)
	for i := range candidates {
		candidates[i] = models.Restaurant{Name: "R", City: "X", AggregateRating: 4}
	}
	engine := newTestEngine(t, &stubStore{candidates: candidates})
	query := models.UserQuery{City: "X", PriceRange: "budget"}

	t.Run("zero limit uses default", func(t *testing.T) {
		resp, err := engine.Recommend(context.Background(), query, 0)
		if err != nil {
			t.Fatalf("Recommend: %v", err)
		}
		if resp.Count != DefaultConfig().DefaultLimit {
			t.Errorf("Count = %d, want default limit %d", resp.Count, DefaultConfig().DefaultLimit)
		}
	})

	t.Run("excessive limit is clamped", func(t *testing.T) {
		resp, err := engine.Recommend(context.Background(), query, 10000)
		if err != nil {
			t.Fatalf("Recommend: %v", err)
		}
		if resp.Count > DefaultConfig().MaxLimit {
			t.Errorf("Count = %d, exceeds max limit %d", resp.Count, DefaultConfig().MaxLimit)
		}
	})
}

func TestRecommend_EmptyCity(t *testing.T) {
	engine := newTestEngine(t, &stubStore{})

	resp, err := engine.Recommend(context.Background(), models.UserQuery{
		City:       "Nowhere",
		PriceRange: "budget",
	}, 5)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if resp.Count != 0 {
		t.Errorf("Count = %d, want 0", resp.Count)
	}
	if resp.Recommendations == nil || len(resp.Recommendations) != 0 {
		t.Errorf("Recommendations = %v, want empty non-nil slice", resp.Recommendations)
	}
}

func TestRecommend_StoreFailureDegrades(t *testing.T) {
	engine := newTestEngine(t, &stubStore{err: errors.New("store down")})

	resp, err := engine.Recommend(context.Background(), models.UserQuery{
		City:       "Mumbai",
		PriceRange: "premium",
	}, 5)
	if err != nil {
		t.Fatalf("store failure must not surface as error, got %v", err)
	}
	if resp.Count != 0 || len(resp.Recommendations) != 0 {
		t.Errorf("degraded response = %+v, want empty", resp)
	}
	if resp.UserCity != "Mumbai" {
		t.Errorf("UserCity = %q, want Mumbai", resp.UserCity)
	}
}
