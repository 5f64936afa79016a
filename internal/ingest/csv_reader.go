// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tomtom215/gustus/internal/logging"
	"github.com/tomtom215/gustus/internal/models"
)

// RecordSource supplies raw listing records to the pipeline.
type RecordSource interface {
	// Load returns the full raw batch. Implementations must tolerate
	// arbitrary extra fields; only a systemic read failure is an error.
	Load(ctx context.Context) ([]models.RawRecord, error)
}

// columnAliases maps known source dataset column names onto the
// canonical field names the cleaner consumes. Lookup happens after
// trimming and lower-casing the header cell.
var columnAliases = map[string]string{
	"listed_in(city)":             "city",
	"approx_cost(for two people)": "average_cost_for_two",
	"rate":                        "aggregate_rating",
	"rating":                      "aggregate_rating",
	"restaurant_name":             "name",
	"restaurant name":             "name",
	"cuisine":                     "cuisines",
	"location":                    "locality",
	"cost":                        "average_cost_for_two",
}

// CSVReader reads raw records from a CSV listing dump with a header row.
type CSVReader struct {
	path string
}

// NewCSVReader creates a reader for the CSV file at path. The file is
// opened lazily on Load.
func NewCSVReader(path string) *CSVReader {
	return &CSVReader{path: path}
}

// Load reads the entire CSV file into raw records. Header cells are
// normalized and aliased to canonical field names; every value stays a
// string; typing is the cleaner's job. Rows with the wrong field count
// are skipped with a warning rather than failing the load.
func (r *CSVReader) Load(ctx context.Context) ([]models.RawRecord, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv %s: %w", r.path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			logging.Warn().Err(closeErr).Msg("Error closing csv file")
		}
	}()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // validated per row below

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	fields := canonicalHeader(header)

	var (
		records []models.RawRecord
		skipped int
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}
		if len(row) != len(fields) {
			skipped++
			continue
		}

		rec := make(models.RawRecord, len(fields))
		for i, field := range fields {
			rec[field] = row[i]
		}
		records = append(records, rec)
	}

	if skipped > 0 {
		logging.Warn().Int("rows", skipped).Msg("Skipped malformed csv rows")
	}
	logging.Info().Str("path", r.path).Int("records", len(records)).Msg("Raw records loaded")
	return records, nil
}

// canonicalHeader maps header cells to canonical field names.
func canonicalHeader(header []string) []string {
	fields := make([]string, len(header))
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		if canonical, ok := columnAliases[name]; ok {
			name = canonical
		}
		fields[i] = name
	}
	return fields
}

// StaticSource serves a fixed in-memory batch. It backs tests and the
// admin re-run path where records are provided directly.
type StaticSource []models.RawRecord

// Load returns the static batch unchanged.
func (s StaticSource) Load(_ context.Context) ([]models.RawRecord, error) {
	return s, nil
}
