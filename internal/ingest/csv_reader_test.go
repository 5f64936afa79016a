// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "listings.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing csv fixture: %v", err)
	}
	return path
}

func TestCSVReader_Load(t *testing.T) {
	csv := `name,listed_in(city),cuisines,rate,approx_cost(for two people),votes
Cafe A,Mumbai,"Italian, Cafe",4.1/5,"1,200",775
Cafe B,Delhi,Chinese,3.8/5,800,120
`
	reader := NewCSVReader(writeCSV(t, csv))

	records, err := reader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}

	first := records[0]
	if first["name"] != "Cafe A" {
		t.Errorf("name = %v, want Cafe A", first["name"])
	}
	if first["city"] != "Mumbai" {
		t.Errorf("aliased city = %v, want Mumbai", first["city"])
	}
	if first["aggregate_rating"] != "4.1/5" {
		t.Errorf("aliased rating = %v, want raw 4.1/5", first["aggregate_rating"])
	}
	if first["average_cost_for_two"] != "1,200" {
		t.Errorf("aliased cost = %v, want raw 1,200", first["average_cost_for_two"])
	}
	if first["votes"] != "775" {
		t.Errorf("votes = %v, want string 775", first["votes"])
	}
}

func TestCSVReader_HeaderNormalization(t *testing.T) {
	csv := ` Restaurant Name , LOCATION ,Rating
Spice Garden,Indiranagar,4.5
`
	reader := NewCSVReader(writeCSV(t, csv))

	records, err := reader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}

	rec := records[0]
	if rec["name"] != "Spice Garden" {
		t.Errorf("restaurant name alias: got %v", rec["name"])
	}
	if rec["locality"] != "Indiranagar" {
		t.Errorf("location alias: got %v", rec["locality"])
	}
	if rec["aggregate_rating"] != "4.5" {
		t.Errorf("rating alias: got %v", rec["aggregate_rating"])
	}
}

func TestCSVReader_SkipsMalformedRows(t *testing.T) {
	csv := `name,city
Cafe A,Mumbai
"Broken Row",Mumbai,extra,fields
Cafe B,Delhi
`
	reader := NewCSVReader(writeCSV(t, csv))

	records, err := reader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("len(records) = %d, want 2 (malformed row skipped)", len(records))
	}
}

func TestCSVReader_MissingFile(t *testing.T) {
	reader := NewCSVReader(filepath.Join(t.TempDir(), "absent.csv"))
	if _, err := reader.Load(context.Background()); err == nil {
		t.Error("Load on missing file should return an error")
	}
}

func TestCSVReader_CanceledContext(t *testing.T) {
	reader := NewCSVReader(writeCSV(t, "name,city\nA,B\n"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := reader.Load(ctx); err == nil {
		t.Error("Load with canceled context should return an error")
	}
}

func TestStaticSource(t *testing.T) {
	batch := StaticSource{{"name": "A"}, {"name": "B"}}

	records, err := batch.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("len(records) = %d, want 2", len(records))
	}
	if records[0]["name"] != "A" {
		t.Errorf("records[0] = %v, want name A", records[0])
	}
}

var _ RecordSource = (*CSVReader)(nil)
var _ RecordSource = StaticSource(nil)
