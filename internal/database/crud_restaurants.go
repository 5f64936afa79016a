// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/gustus/internal/logging"
	"github.com/tomtom215/gustus/internal/metrics"
	"github.com/tomtom215/gustus/internal/models"
)

// restaurantColumns is the canonical column list for restaurant scans.
const restaurantColumns = `id, name, city, cuisines, average_cost_for_two, aggregate_rating,
	votes, price_category, popularity_score, cuisine_diversity,
	has_online_delivery, has_table_booking, is_popular,
	address, locality, online_order, book_table, rating_text, created_at`

// ReplaceAll atomically replaces the entire restaurant collection with
// the given batch. IDs are assigned monotonically in batch order
// starting at 1, and created_at is stamped with the replace time. The
// delete and all inserts run in one transaction, so concurrent readers
// see either the old snapshot or the new one in full.
//
// A full pipeline run always replaces; there is no incremental upsert.
func (db *DB) ReplaceAll(ctx context.Context, records []models.Restaurant) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer metrics.ObserveQuery("replace_all", start)

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin replace: %v", ErrStoreUnavailable, err)
	}
	defer rollbackQuietly(tx)

	if _, err := tx.ExecContext(ctx, `DELETE FROM restaurants`); err != nil {
		return fmt.Errorf("%w: clear snapshot: %v", ErrStoreUnavailable, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO restaurants (
		id, name, city, cuisines, average_cost_for_two, aggregate_rating,
		votes, price_category, popularity_score, cuisine_diversity,
		has_online_delivery, has_table_booking, is_popular,
		address, locality, online_order, book_table, rating_text, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("%w: prepare insert: %v", ErrStoreUnavailable, err)
	}
	defer closeWithLog(stmt)

	now := time.Now()
	for i := range records {
		r := &records[i]
		r.ID = int64(i + 1)
		r.CreatedAt = now

		_, err := stmt.ExecContext(ctx,
			r.ID, r.Name, r.City, r.Cuisines, r.AverageCostForTwo, r.AggregateRating,
			r.Votes, r.PriceCategory, r.PopularityScore, r.CuisineDiversity,
			r.HasOnlineDelivery, r.HasTableBooking, r.IsPopular,
			r.Address, r.Locality, r.OnlineOrder, r.BookTable, r.RatingText, r.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("%w: insert record %d: %v", ErrStoreUnavailable, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit replace: %v", ErrStoreUnavailable, err)
	}

	logging.Info().
		Int("records", len(records)).
		Dur("elapsed", time.Since(start)).
		Msg("Restaurant snapshot replaced")
	return nil
}

// CandidateFilter bounds a candidate retrieval for the recommendation
// engine. City and PriceCategory are exact matches; Cuisines, when
// non-empty, requires the stored cuisine string to contain at least one
// entry.
type CandidateFilter struct {
	City          string
	PriceCategory string
	MinRating     float64
	Cuisines      []string
	Limit         int
}

// Candidates retrieves up to filter.Limit restaurants matching the
// filter, pre-ranked by aggregate rating then votes, both descending.
// This pre-ranking cheaply bounds the candidate set before scoring; it
// is not the final order.
func (db *DB) Candidates(ctx context.Context, filter CandidateFilter) ([]models.Restaurant, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	defer metrics.ObserveQuery("candidates", time.Now())

	var sb strings.Builder
	sb.WriteString(`SELECT ` + restaurantColumns + ` FROM restaurants
		WHERE city = ? AND price_category = ? AND aggregate_rating >= ?`)
	args := []any{filter.City, filter.PriceCategory, filter.MinRating}

	if len(filter.Cuisines) > 0 {
		clauses := make([]string, len(filter.Cuisines))
		for i, cuisine := range filter.Cuisines {
			clauses[i] = "cuisines LIKE ?"
			args = append(args, "%"+cuisine+"%")
		}
		sb.WriteString(" AND (" + strings.Join(clauses, " OR ") + ")")
	}

	sb.WriteString(" ORDER BY aggregate_rating DESC, votes DESC LIMIT ?")
	args = append(args, filter.Limit)

	return db.queryRestaurants(ctx, sb.String(), args...)
}

// ByCity returns up to limit restaurants in the given city with at
// least the given rating.
func (db *DB) ByCity(ctx context.Context, city string, minRating float64, limit int) ([]models.Restaurant, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	defer metrics.ObserveQuery("by_city", time.Now())

	query := `SELECT ` + restaurantColumns + ` FROM restaurants
		WHERE city = ? AND aggregate_rating >= ?
		LIMIT ?`
	return db.queryRestaurants(ctx, query, city, minRating, limit)
}

// ByCityAndPrice returns restaurants in the given city and price
// category, ordered by popularity score descending.
func (db *DB) ByCityAndPrice(ctx context.Context, city, priceCategory string, minRating float64, limit int) ([]models.Restaurant, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	defer metrics.ObserveQuery("by_city_price", time.Now())

	query := `SELECT ` + restaurantColumns + ` FROM restaurants
		WHERE city = ? AND price_category = ? AND aggregate_rating >= ?
		ORDER BY popularity_score DESC
		LIMIT ?`
	return db.queryRestaurants(ctx, query, city, priceCategory, minRating, limit)
}

// Sample returns up to limit restaurants in insertion order.
func (db *DB) Sample(ctx context.Context, limit int) ([]models.Restaurant, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `SELECT ` + restaurantColumns + ` FROM restaurants ORDER BY id LIMIT ?`
	return db.queryRestaurants(ctx, query, limit)
}

// queryRestaurants executes a restaurant-shaped query and scans all rows.
func (db *DB) queryRestaurants(ctx context.Context, query string, args ...any) ([]models.Restaurant, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		metrics.QueryError("restaurants")
		return nil, fmt.Errorf("failed to query restaurants: %w", err)
	}
	defer closeWithLog(rows)

	var out []models.Restaurant
	for rows.Next() {
		r, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate restaurants: %w", err)
	}
	return out, nil
}

// scanRestaurant scans one row in restaurantColumns order. Nullable text
// columns scan through sql.NullString so legacy rows with NULLs load as
// empty strings.
func scanRestaurant(rows *sql.Rows) (models.Restaurant, error) {
	var (
		r        models.Restaurant
		cuisines sql.NullString
		priceCat sql.NullString
		address  sql.NullString
		locality sql.NullString
		online   sql.NullString
		book     sql.NullString
		ratingTx sql.NullString
	)

	err := rows.Scan(
		&r.ID, &r.Name, &r.City, &cuisines, &r.AverageCostForTwo, &r.AggregateRating,
		&r.Votes, &priceCat, &r.PopularityScore, &r.CuisineDiversity,
		&r.HasOnlineDelivery, &r.HasTableBooking, &r.IsPopular,
		&address, &locality, &online, &book, &ratingTx, &r.CreatedAt,
	)
	if err != nil {
		return models.Restaurant{}, fmt.Errorf("failed to scan restaurant: %w", err)
	}

	r.Cuisines = cuisines.String
	r.PriceCategory = priceCat.String
	r.Address = address.String
	r.Locality = locality.String
	r.OnlineOrder = online.String
	r.BookTable = book.String
	r.RatingText = ratingTx.String
	return r, nil
}

// rollbackQuietly rolls back a transaction during error cleanup; a
// rollback after successful commit is a no-op error and ignored.
func rollbackQuietly(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
		logging.Warn().Err(err).Msg("Error rolling back transaction")
	}
}

// closeWithLog closes a Close-able resource, logging any failure.
func closeWithLog(c interface{ Close() error }) {
	if err := c.Close(); err != nil {
		logging.Warn().Err(err).Msg("Error closing database resource")
	}
}
