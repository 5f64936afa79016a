// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/tomtom215/gustus/internal/config"
	"github.com/tomtom215/gustus/internal/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Path:      filepath.Join(t.TempDir(), "test.duckdb"),
		MaxMemory: "256MB",
		Threads:   1,
	}
	db, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return db
}

func testRestaurants() []models.Restaurant {
	return []models.Restaurant{
		{
			Name: "Cafe A", City: "Mumbai", Cuisines: "Italian, Cafe",
			AverageCostForTwo: 1200, AggregateRating: 4.4, Votes: 850,
			PriceCategory: models.PriceMidRange, PopularityScore: 0.89,
			CuisineDiversity: 2, IsPopular: 1,
		},
		{
			Name: "Dhaba", City: "Mumbai", Cuisines: "North Indian",
			AverageCostForTwo: 300, AggregateRating: 4.8, Votes: 900,
			PriceCategory: models.PriceBudget, PopularityScore: 0.95,
			CuisineDiversity: 1, IsPopular: 1,
		},
		{
			Name: "Quiet Corner", City: "Delhi", Cuisines: "Cafe",
			AverageCostForTwo: 700, AggregateRating: 3.9, Votes: 30,
			PriceCategory: models.PriceMidRange, PopularityScore: 0.55,
			CuisineDiversity: 1,
		},
	}
}

func TestReplaceAll(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.ReplaceAll(ctx, testRestaurants()); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	count, err := db.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 3 {
		t.Errorf("Count = %d, want 3", count)
	}

	t.Run("ids assigned in batch order", func(t *testing.T) {
		rows, err := db.Sample(ctx, 10)
		if err != nil {
			t.Fatalf("Sample: %v", err)
		}
		for i, r := range rows {
			if r.ID != int64(i+1) {
				t.Errorf("row %d ID = %d, want %d", i, r.ID, i+1)
			}
			if r.CreatedAt.IsZero() {
				t.Errorf("row %d missing created_at", i)
			}
		}
	})

	t.Run("replace discards previous snapshot", func(t *testing.T) {
		if err := db.ReplaceAll(ctx, testRestaurants()[:1]); err != nil {
			t.Fatalf("second ReplaceAll: %v", err)
		}
		count, err := db.Count(ctx)
		if err != nil {
			t.Fatalf("Count: %v", err)
		}
		if count != 1 {
			t.Errorf("Count after replace = %d, want 1", count)
		}
	})

	t.Run("empty replace clears the store", func(t *testing.T) {
		if err := db.ReplaceAll(ctx, nil); err != nil {
			t.Fatalf("empty ReplaceAll: %v", err)
		}
		count, err := db.Count(ctx)
		if err != nil {
			t.Fatalf("Count: %v", err)
		}
		if count != 0 {
			t.Errorf("Count after empty replace = %d, want 0", count)
		}
	})
}

func TestCandidates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	if err := db.ReplaceAll(ctx, testRestaurants()); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	t.Run("city and price filter", func(t *testing.T) {
		got, err := db.Candidates(ctx, CandidateFilter{
			City:          "Mumbai",
			PriceCategory: models.PriceMidRange,
			Limit:         50,
		})
		if err != nil {
			t.Fatalf("Candidates: %v", err)
		}
		if len(got) != 1 || got[0].Name != "Cafe A" {
			t.Errorf("candidates = %v, want just Cafe A", names(got))
		}
	})

	t.Run("min rating filter", func(t *testing.T) {
		got, err := db.Candidates(ctx, CandidateFilter{
			City:          "Delhi",
			PriceCategory: models.PriceMidRange,
			MinRating:     4.0,
			Limit:         50,
		})
		if err != nil {
			t.Fatalf("Candidates: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("candidates = %v, want none above rating 4.0", names(got))
		}
	})

	t.Run("cuisine substring filter", func(t *testing.T) {
		got, err := db.Candidates(ctx, CandidateFilter{
			City:          "Mumbai",
			PriceCategory: models.PriceMidRange,
			Cuisines:      []string{"Cafe"},
			Limit:         50,
		})
		if err != nil {
			t.Fatalf("Candidates: %v", err)
		}
		if len(got) != 1 || got[0].Name != "Cafe A" {
			t.Errorf("candidates = %v, want Cafe A via cuisine match", names(got))
		}
	})

	t.Run("pre-ranked by rating then votes", func(t *testing.T) {
		extra := append(testRestaurants(), models.Restaurant{
			Name: "Cafe B", City: "Mumbai", Cuisines: "Cafe",
			AverageCostForTwo: 1000, AggregateRating: 4.4, Votes: 100,
			PriceCategory: models.PriceMidRange,
		})
		if err := db.ReplaceAll(ctx, extra); err != nil {
			t.Fatalf("ReplaceAll: %v", err)
		}

		got, err := db.Candidates(ctx, CandidateFilter{
			City:          "Mumbai",
			PriceCategory: models.PriceMidRange,
			Limit:         50,
		})
		if err != nil {
			t.Fatalf("Candidates: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("candidates = %v, want 2", names(got))
		}
		// Same rating: higher votes first
		if got[0].Name != "Cafe A" || got[1].Name != "Cafe B" {
			t.Errorf("order = %v, want Cafe A before Cafe B", names(got))
		}
	})

	t.Run("limit respected", func(t *testing.T) {
		got, err := db.Candidates(ctx, CandidateFilter{
			City:          "Mumbai",
			PriceCategory: models.PriceMidRange,
			Limit:         1,
		})
		if err != nil {
			t.Fatalf("Candidates: %v", err)
		}
		if len(got) != 1 {
			t.Errorf("len = %d, want 1", len(got))
		}
	})
}

func TestBrowseQueries(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	if err := db.ReplaceAll(ctx, testRestaurants()); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	t.Run("ByCity", func(t *testing.T) {
		got, err := db.ByCity(ctx, "Mumbai", 0, 50)
		if err != nil {
			t.Fatalf("ByCity: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("ByCity = %v, want 2", names(got))
		}
	})

	t.Run("ByCity min rating excludes", func(t *testing.T) {
		got, err := db.ByCity(ctx, "Mumbai", 4.5, 50)
		if err != nil {
			t.Fatalf("ByCity: %v", err)
		}
		if len(got) != 1 || got[0].Name != "Dhaba" {
			t.Errorf("ByCity = %v, want Dhaba only", names(got))
		}
	})

	t.Run("ByCity limit respected", func(t *testing.T) {
		got, err := db.ByCity(ctx, "Mumbai", 0, 1)
		if err != nil {
			t.Fatalf("ByCity: %v", err)
		}
		if len(got) != 1 {
			t.Errorf("len = %d, want 1", len(got))
		}
	})

	t.Run("ByCityAndPrice ordered by popularity", func(t *testing.T) {
		got, err := db.ByCityAndPrice(ctx, "Mumbai", models.PriceBudget, 0, 50)
		if err != nil {
			t.Fatalf("ByCityAndPrice: %v", err)
		}
		if len(got) != 1 || got[0].Name != "Dhaba" {
			t.Errorf("ByCityAndPrice = %v, want Dhaba", names(got))
		}
	})

	t.Run("Cities sorted", func(t *testing.T) {
		got, err := db.Cities(ctx)
		if err != nil {
			t.Fatalf("Cities: %v", err)
		}
		want := []string{"Delhi", "Mumbai"}
		if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
			t.Errorf("Cities = %v, want %v", got, want)
		}
	})

	t.Run("Cuisines deduplicated", func(t *testing.T) {
		got, err := db.Cuisines(ctx)
		if err != nil {
			t.Fatalf("Cuisines: %v", err)
		}
		// Italian, Cafe, North Indian - Cafe appears twice in the data
		if len(got) != 3 {
			t.Errorf("Cuisines = %v, want 3 distinct tags", got)
		}
	})

	t.Run("Stats", func(t *testing.T) {
		stats, err := db.Stats(ctx)
		if err != nil {
			t.Fatalf("Stats: %v", err)
		}
		if stats.TotalRecords != 3 || stats.Cities != 2 || stats.Cuisines != 3 {
			t.Errorf("Stats = %+v, want 3 records, 2 cities, 3 cuisines", stats)
		}
		if stats.PriceDistribution[models.PriceMidRange] != 2 {
			t.Errorf("mid-range count = %d, want 2", stats.PriceDistribution[models.PriceMidRange])
		}
	})
}

func TestPing(t *testing.T) {
	db := newTestDB(t)
	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}

func names(rs []models.Restaurant) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name
	}
	return out
}
