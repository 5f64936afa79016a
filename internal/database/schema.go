// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package database

import (
	"context"
	"fmt"
)

// initSchema creates the restaurants table and its secondary indexes.
// All columns are defined in the initial CREATE TABLE statement; the
// schema is recreated idempotently on every startup.
//
// The idx_restaurants_city and idx_restaurants_city_price indexes are a
// mandatory part of the design: the engine's candidate query filters on
// city and (city, price_category), and those lookups must not scan the
// full table.
func (db *DB) initSchema(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	queries := []string{
		`CREATE TABLE IF NOT EXISTS restaurants (
			id BIGINT PRIMARY KEY,
			name VARCHAR NOT NULL,
			city VARCHAR NOT NULL,
			cuisines VARCHAR,
			average_cost_for_two DOUBLE,
			aggregate_rating DOUBLE,
			votes INTEGER,
			price_category VARCHAR,
			popularity_score DOUBLE,
			cuisine_diversity INTEGER,
			has_online_delivery TINYINT,
			has_table_booking TINYINT,
			is_popular TINYINT,
			address VARCHAR,
			locality VARCHAR,
			online_order VARCHAR,
			book_table VARCHAR,
			rating_text VARCHAR,
			created_at TIMESTAMP DEFAULT current_timestamp
		)`,
		`CREATE INDEX IF NOT EXISTS idx_restaurants_city ON restaurants(city)`,
		`CREATE INDEX IF NOT EXISTS idx_restaurants_price ON restaurants(price_category)`,
		`CREATE INDEX IF NOT EXISTS idx_restaurants_city_price ON restaurants(city, price_category)`,
	}

	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}
	return nil
}
