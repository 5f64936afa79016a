// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package cleaning

import (
	"strings"

	"github.com/spf13/cast"

	"github.com/tomtom215/gustus/internal/logging"
	"github.com/tomtom215/gustus/internal/models"
)

// Canonical raw field names consumed by the cleaner. The loader maps
// upstream column aliases onto these before records reach the pipeline.
const (
	FieldName        = "name"
	FieldCity        = "city"
	FieldCuisines    = "cuisines"
	FieldCost        = "average_cost_for_two"
	FieldRating      = "aggregate_rating"
	FieldVotes       = "votes"
	FieldAddress     = "address"
	FieldLocality    = "locality"
	FieldOnlineOrder = "online_order"
	FieldBookTable   = "book_table"
	FieldRatingText  = "rating_text"
)

// unknownCuisines substitutes an absent or empty cuisines field.
const unknownCuisines = "Unknown"

// Config contains the normalizer tunables.
type Config struct {
	// DefaultCost substitutes a missing average_cost_for_two.
	DefaultCost float64

	// MinRating and MaxRating bound valid aggregate ratings.
	MinRating float64
	MaxRating float64
}

// DefaultConfig returns the standard cleaning configuration.
func DefaultConfig() Config {
	return Config{
		DefaultCost: 500,
		MinRating:   0.0,
		MaxRating:   5.0,
	}
}

// Cleaner normalizes a batch of raw listing records. It is constructed
// per batch; the report accumulates across stage calls and is finalized
// by Clean.
//
// Cleaner is not safe for concurrent use. The pipeline runs it on a
// single goroutine.
type Cleaner struct {
	cfg    Config
	report models.CleaningReport
}

// NewCleaner creates a cleaner with the given configuration.
func NewCleaner(cfg Config) *Cleaner {
	return &Cleaner{cfg: cfg}
}

// Report returns the cleaning report accumulated so far. Counts are
// complete once Clean has returned.
func (c *Cleaner) Report() models.CleaningReport {
	return c.report
}

// Clean runs the full normalization pipeline on a batch and converts the
// survivors into typed restaurant records. Record-scoped failures are
// counted, never returned.
func (c *Cleaner) Clean(records []models.RawRecord) []models.Restaurant {
	c.report = models.CleaningReport{OriginalRecords: len(records)}

	logging.Debug().Int("records", len(records)).Msg("Cleaning batch")

	out := c.RemoveDuplicates(records)
	out = c.HandleMissingValues(out)
	out = c.StandardizeText(out)
	out = c.RemoveInvalid(out)

	cleaned := c.finalize(out)
	c.report.FinalRecords = len(cleaned)

	logging.Info().
		Int("original", c.report.OriginalRecords).
		Int("duplicates_removed", c.report.DuplicatesRemoved).
		Int("missing_handled", c.report.MissingValuesHandled).
		Int("invalid_removed", c.report.InvalidRecordsRemoved).
		Int("final", c.report.FinalRecords).
		Msg("Cleaning complete")

	return cleaned
}

// dedupeKey identifies a restaurant for duplicate removal.
type dedupeKey struct {
	name string
	city string
}

// RemoveDuplicates drops records whose (name, city) pair, trimmed and
// lower-cased, was already seen earlier in the batch. Survivor order is
// preserved. Idempotent by construction.
func (c *Cleaner) RemoveDuplicates(records []models.RawRecord) []models.RawRecord {
	seen := make(map[dedupeKey]struct{}, len(records))
	unique := make([]models.RawRecord, 0, len(records))

	for _, rec := range records {
		key := dedupeKey{
			name: strings.ToLower(strings.TrimSpace(cast.ToString(rec[FieldName]))),
			city: strings.ToLower(strings.TrimSpace(cast.ToString(rec[FieldCity]))),
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, rec)
	}

	c.report.DuplicatesRemoved += len(records) - len(unique)
	return unique
}

// HandleMissingValues drops records lacking a usable name or city and
// fills defaults for the remaining optional fields: cuisines to
// "Unknown", rating and votes to 0, cost to the configured default.
func (c *Cleaner) HandleMissingValues(records []models.RawRecord) []models.RawRecord {
	kept := make([]models.RawRecord, 0, len(records))
	dropped := 0

	for _, rec := range records {
		if isFalsy(rec[FieldName]) || isFalsy(rec[FieldCity]) {
			dropped++
			continue
		}
		if isFalsy(rec[FieldCuisines]) {
			rec[FieldCuisines] = unknownCuisines
		}
		if isFalsy(rec[FieldRating]) {
			rec[FieldRating] = 0.0
		}
		if isFalsy(rec[FieldVotes]) {
			rec[FieldVotes] = 0
		}
		if isFalsy(rec[FieldCost]) {
			rec[FieldCost] = c.cfg.DefaultCost
		}
		kept = append(kept, rec)
	}

	c.report.MissingValuesHandled += dropped
	return kept
}

// StandardizeText trims the three text fields and title-cases the city.
// Cuisines keep their original casing so that downstream substring
// matching sees the source spelling.
func (c *Cleaner) StandardizeText(records []models.RawRecord) []models.RawRecord {
	for _, rec := range records {
		if !isFalsy(rec[FieldCity]) {
			rec[FieldCity] = models.TitleCase(strings.TrimSpace(cast.ToString(rec[FieldCity])))
		}
		if !isFalsy(rec[FieldName]) {
			rec[FieldName] = strings.TrimSpace(cast.ToString(rec[FieldName]))
		}
		if !isFalsy(rec[FieldCuisines]) {
			rec[FieldCuisines] = strings.TrimSpace(cast.ToString(rec[FieldCuisines]))
		}
	}
	return records
}

// RemoveInvalid converts the numeric fields in place and drops records
// that fail to parse or violate the valid ranges: rating outside
// [MinRating, MaxRating], negative cost, negative votes. Re-applying to
// already converted records changes nothing.
func (c *Cleaner) RemoveInvalid(records []models.RawRecord) []models.RawRecord {
	valid := make([]models.RawRecord, 0, len(records))

	for _, rec := range records {
		rating, err := parseRating(rec[FieldRating])
		if err != nil {
			continue
		}
		cost, err := parseCost(rec[FieldCost])
		if err != nil {
			continue
		}
		votes, err := parseVotes(rec[FieldVotes])
		if err != nil {
			continue
		}

		if rating < c.cfg.MinRating || rating > c.cfg.MaxRating {
			continue
		}
		if cost < 0 {
			continue
		}
		if votes < 0 {
			continue
		}

		rec[FieldRating] = rating
		rec[FieldCost] = cost
		rec[FieldVotes] = votes
		valid = append(valid, rec)
	}

	c.report.InvalidRecordsRemoved += len(records) - len(valid)
	return valid
}

// finalize converts fully normalized raw records into typed restaurant
// records. All fields have passed parsing and validation at this point,
// so conversion is infallible.
func (c *Cleaner) finalize(records []models.RawRecord) []models.Restaurant {
	out := make([]models.Restaurant, 0, len(records))

	for _, rec := range records {
		out = append(out, models.Restaurant{
			Name:              cast.ToString(rec[FieldName]),
			City:              cast.ToString(rec[FieldCity]),
			Cuisines:          cast.ToString(rec[FieldCuisines]),
			AverageCostForTwo: cast.ToFloat64(rec[FieldCost]),
			AggregateRating:   cast.ToFloat64(rec[FieldRating]),
			Votes:             cast.ToInt(rec[FieldVotes]),
			Address:           cast.ToString(rec[FieldAddress]),
			Locality:          cast.ToString(rec[FieldLocality]),
			OnlineOrder:       cast.ToString(rec[FieldOnlineOrder]),
			BookTable:         cast.ToString(rec[FieldBookTable]),
			RatingText:        cast.ToString(rec[FieldRatingText]),
		})
	}
	return out
}
