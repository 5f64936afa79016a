// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package database

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/gustus/internal/metrics"
	"github.com/tomtom215/gustus/internal/models"
)

// Count returns the total number of persisted restaurants.
func (db *DB) Count(ctx context.Context) (int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var count int
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM restaurants`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count restaurants: %w", err)
	}
	return count, nil
}

// Cities returns the distinct city list, sorted.
func (db *DB) Cities(ctx context.Context) ([]string, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	defer metrics.ObserveQuery("cities", time.Now())

	rows, err := db.conn.QueryContext(ctx, `SELECT DISTINCT city FROM restaurants ORDER BY city`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cities: %w", err)
	}
	defer closeWithLog(rows)

	var cities []string
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, fmt.Errorf("failed to scan city: %w", err)
		}
		cities = append(cities, city)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cities: %w", err)
	}
	return cities, nil
}

// Cuisines returns the distinct cuisine vocabulary, derived by splitting
// every stored cuisine string on commas, trimming and deduplicating the
// tags. Sorted ascending.
func (db *DB) Cuisines(ctx context.Context) ([]string, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	defer metrics.ObserveQuery("cuisines", time.Now())

	rows, err := db.conn.QueryContext(ctx, `SELECT cuisines FROM restaurants`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cuisines: %w", err)
	}
	defer closeWithLog(rows)

	vocab := make(map[string]struct{})
	for rows.Next() {
		var cuisines sql.NullString
		if err := rows.Scan(&cuisines); err != nil {
			return nil, fmt.Errorf("failed to scan cuisines: %w", err)
		}
		for _, tag := range strings.Split(cuisines.String, ",") {
			if trimmed := strings.TrimSpace(tag); trimmed != "" {
				vocab[trimmed] = struct{}{}
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cuisines: %w", err)
	}

	out := make([]string, 0, len(vocab))
	for tag := range vocab {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out, nil
}

// PriceDistribution returns the record count per price category.
func (db *DB) PriceDistribution(ctx context.Context) (map[string]int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT price_category, COUNT(*) FROM restaurants GROUP BY price_category`)
	if err != nil {
		return nil, fmt.Errorf("failed to query price distribution: %w", err)
	}
	defer closeWithLog(rows)

	dist := make(map[string]int)
	for rows.Next() {
		var (
			category sql.NullString
			count    int
		)
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("failed to scan price distribution: %w", err)
		}
		dist[category.String] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate price distribution: %w", err)
	}
	return dist, nil
}

// Stats summarizes the current snapshot: record count, city count,
// cuisine vocabulary size and price distribution.
func (db *DB) Stats(ctx context.Context) (models.StoreStats, error) {
	count, err := db.Count(ctx)
	if err != nil {
		return models.StoreStats{}, err
	}
	cities, err := db.Cities(ctx)
	if err != nil {
		return models.StoreStats{}, err
	}
	cuisines, err := db.Cuisines(ctx)
	if err != nil {
		return models.StoreStats{}, err
	}
	dist, err := db.PriceDistribution(ctx)
	if err != nil {
		return models.StoreStats{}, err
	}

	return models.StoreStats{
		TotalRecords:      count,
		Cities:            len(cities),
		Cuisines:          len(cuisines),
		PriceDistribution: dist,
	}, nil
}
