// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package models

import "time"

// RawRecord is a single loose-typed restaurant listing as handed over by
// the loader. Values may be strings, numbers, booleans or absent; no
// invariants are guaranteed. Extra fields are tolerated and ignored.
type RawRecord map[string]any

// Price categories assigned by the feature deriver based on the average
// cost for two. PriceUnknown is assigned when the cost cannot be
// interpreted as a number at feature time.
const (
	PriceBudget   = "budget"
	PriceMidRange = "mid-range"
	PricePremium  = "premium"
	PriceUnknown  = "unknown"
)

// PriceCategories lists the three queryable price buckets in ascending
// cost order. PriceUnknown is deliberately excluded: it is a derivation
// fallback, not a valid query target.
var PriceCategories = []string{PriceBudget, PriceMidRange, PricePremium}

// Restaurant is a validated, feature-annotated restaurant record. It is
// produced by the cleaning stage (base fields), annotated in place by the
// feature deriver (derived fields), and persisted by the store, which
// assigns ID and CreatedAt.
//
// Invariants guaranteed downstream of cleaning: Name and City are
// non-empty, Cuisines is non-empty (defaulted to "Unknown"),
// AggregateRating is in [0,5], AverageCostForTwo and Votes are
// non-negative.
type Restaurant struct {
	// ID is the store-assigned identity, monotonically increasing in
	// insertion order within a snapshot. Zero before persistence.
	ID int64 `json:"id,omitempty"`

	Name     string `json:"name"`
	City     string `json:"city"`
	Cuisines string `json:"cuisines"`

	AverageCostForTwo float64 `json:"average_cost_for_two"`
	AggregateRating   float64 `json:"aggregate_rating"`
	Votes             int     `json:"votes"`

	// Derived features, populated by the feature deriver.

	// PriceCategory is one of the Price* constants.
	PriceCategory string `json:"price_category,omitempty"`

	// PopularityScore is a log-scaled blend of rating and votes in [0,1],
	// rounded to 4 decimal places.
	PopularityScore float64 `json:"popularity_score,omitempty"`

	// CuisineDiversity counts the distinct comma-separated cuisine tags.
	CuisineDiversity int `json:"cuisine_diversity,omitempty"`

	// Boolean features encoded as 0/1 to match the persisted schema.
	HasOnlineDelivery int `json:"has_online_delivery"`
	HasTableBooking   int `json:"has_table_booking"`
	IsPopular         int `json:"is_popular"`

	// Optional pass-through fields retained from the source dataset.
	Address  string `json:"address,omitempty"`
	Locality string `json:"locality,omitempty"`

	// Raw source flags kept verbatim for feature derivation and audit.
	OnlineOrder string `json:"online_order,omitempty"`
	BookTable   string `json:"book_table,omitempty"`
	RatingText  string `json:"rating_text,omitempty"`

	// CreatedAt is assigned by the store at insertion time.
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// CleaningReport aggregates per-record cleaning outcomes for one batch.
// Record-scoped parse and validation failures are counted here rather
// than propagated as errors.
type CleaningReport struct {
	OriginalRecords       int `json:"original_records"`
	DuplicatesRemoved     int `json:"duplicates_removed"`
	MissingValuesHandled  int `json:"missing_values_handled"`
	InvalidRecordsRemoved int `json:"invalid_records_removed"`
	FinalRecords          int `json:"final_records"`
}

// FeatureStats holds min/max/avg summary statistics for one derived
// numeric feature across a batch.
type FeatureStats struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

// FeatureSummary describes the derived features of one pipeline batch.
type FeatureSummary struct {
	PriceDistribution map[string]int `json:"price_distribution"`
	PopularityScore   FeatureStats   `json:"popularity_score"`
	CuisineDiversity  FeatureStats   `json:"cuisine_diversity"`
}
