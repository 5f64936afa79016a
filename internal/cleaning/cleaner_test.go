// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package cleaning

import (
	"testing"

	"github.com/tomtom215/gustus/internal/models"
)

func record(name, city string, fields map[string]any) models.RawRecord {
	rec := models.RawRecord{FieldName: name, FieldCity: city}
	for k, v := range fields {
		rec[k] = v
	}
	return rec
}

func TestRemoveDuplicates(t *testing.T) {
	t.Run("case and whitespace insensitive", func(t *testing.T) {
		c := NewCleaner(DefaultConfig())
		records := []models.RawRecord{
			record("Cafe A", "mumbai", nil),
			record("  cafe a ", "Mumbai", nil),
			record("Cafe B", "mumbai", nil),
		}

		out := c.RemoveDuplicates(records)
		if len(out) != 2 {
			t.Fatalf("expected 2 survivors, got %d", len(out))
		}
		// First occurrence wins
		if out[0][FieldName] != "Cafe A" || out[0][FieldCity] != "mumbai" {
			t.Errorf("first survivor = %v, want original first record", out[0])
		}
		if c.Report().DuplicatesRemoved != 1 {
			t.Errorf("DuplicatesRemoved = %d, want 1", c.Report().DuplicatesRemoved)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		c := NewCleaner(DefaultConfig())
		records := []models.RawRecord{
			record("A", "X", nil),
			record("a", "x", nil),
			record("B", "Y", nil),
		}

		once := c.RemoveDuplicates(records)
		twice := c.RemoveDuplicates(once)
		if len(once) != len(twice) {
			t.Errorf("second pass removed %d more records", len(once)-len(twice))
		}
	})

	t.Run("records without keys share one slot", func(t *testing.T) {
		c := NewCleaner(DefaultConfig())
		records := []models.RawRecord{
			{FieldCuisines: "Italian"},
			{FieldCuisines: "Chinese"},
		}

		out := c.RemoveDuplicates(records)
		if len(out) != 1 {
			t.Errorf("expected keyless records to deduplicate to 1, got %d", len(out))
		}
	})
}

func TestHandleMissingValues(t *testing.T) {
	c := NewCleaner(DefaultConfig())
	records := []models.RawRecord{
		record("Cafe A", "Mumbai", nil),
		record("", "Mumbai", nil),
		record("Cafe C", "", nil),
	}

	out := c.HandleMissingValues(records)
	if len(out) != 1 {
		t.Fatalf("expected 1 survivor, got %d", len(out))
	}
	if c.Report().MissingValuesHandled != 2 {
		t.Errorf("MissingValuesHandled = %d, want 2", c.Report().MissingValuesHandled)
	}

	rec := out[0]
	if rec[FieldCuisines] != "Unknown" {
		t.Errorf("cuisines default = %v, want Unknown", rec[FieldCuisines])
	}
	if rec[FieldRating] != 0.0 {
		t.Errorf("rating default = %v, want 0", rec[FieldRating])
	}
	if rec[FieldVotes] != 0 {
		t.Errorf("votes default = %v, want 0", rec[FieldVotes])
	}
	if rec[FieldCost] != 500.0 {
		t.Errorf("cost default = %v, want 500", rec[FieldCost])
	}
}

func TestStandardizeText(t *testing.T) {
	c := NewCleaner(DefaultConfig())
	records := []models.RawRecord{
		record("  Spice Garden  ", "  new delhi  ", map[string]any{
			FieldCuisines: "  North Indian, Chinese  ",
		}),
	}

	out := c.StandardizeText(records)
	if got := out[0][FieldCity]; got != "New Delhi" {
		t.Errorf("city = %v, want New Delhi", got)
	}
	if got := out[0][FieldName]; got != "Spice Garden" {
		t.Errorf("name = %v, want trimmed", got)
	}
	// Cuisine casing is preserved, only trimmed
	if got := out[0][FieldCuisines]; got != "North Indian, Chinese" {
		t.Errorf("cuisines = %v, want trimmed original casing", got)
	}
}

func TestRemoveInvalid(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]any
		kept   bool
	}{
		{name: "valid record", fields: map[string]any{FieldRating: "4.1/5", FieldCost: "800", FieldVotes: "120"}, kept: true},
		{name: "rating above range", fields: map[string]any{FieldRating: 5.5, FieldCost: 800.0, FieldVotes: 120}, kept: false},
		{name: "negative numeric cost", fields: map[string]any{FieldRating: 4.0, FieldCost: -10.0, FieldVotes: 120}, kept: false},
		{name: "negative votes", fields: map[string]any{FieldRating: 4.0, FieldCost: 800.0, FieldVotes: -1}, kept: false},
		{name: "unparseable votes", fields: map[string]any{FieldRating: 4.0, FieldCost: 800.0, FieldVotes: "lots"}, kept: false},
		{name: "placeholder rating parses to zero", fields: map[string]any{FieldRating: "NEW/5", FieldCost: 800.0, FieldVotes: 0}, kept: true},
		{name: "empty rating string", fields: map[string]any{FieldRating: "", FieldCost: 800.0, FieldVotes: 120}, kept: false},
		{name: "empty cost string", fields: map[string]any{FieldRating: 4.0, FieldCost: "", FieldVotes: 120}, kept: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCleaner(DefaultConfig())
			out := c.RemoveInvalid([]models.RawRecord{record("A", "X", tt.fields)})
			if kept := len(out) == 1; kept != tt.kept {
				t.Errorf("kept = %v, want %v", kept, tt.kept)
			}
		})
	}
}

func TestClean(t *testing.T) {
	c := NewCleaner(DefaultConfig())
	records := []models.RawRecord{
		record("Cafe A", "mumbai", map[string]any{
			FieldRating: "4.1/5", FieldCost: "1,200", FieldVotes: "775",
			FieldCuisines: "Italian, Cafe",
		}),
		record("cafe a", "Mumbai", map[string]any{FieldRating: "3.0/5"}), // duplicate
		record("", "Mumbai", nil),                                       // missing name
		record("Cafe D", "mumbai", map[string]any{
			FieldRating: 9.0, FieldCost: 500.0, FieldVotes: 10, // rating out of range
		}),
	}

	cleaned := c.Clean(records)
	if len(cleaned) != 1 {
		t.Fatalf("expected 1 cleaned record, got %d", len(cleaned))
	}

	report := c.Report()
	if report.OriginalRecords != 4 {
		t.Errorf("OriginalRecords = %d, want 4", report.OriginalRecords)
	}
	if report.DuplicatesRemoved != 1 {
		t.Errorf("DuplicatesRemoved = %d, want 1", report.DuplicatesRemoved)
	}
	if report.MissingValuesHandled != 1 {
		t.Errorf("MissingValuesHandled = %d, want 1", report.MissingValuesHandled)
	}
	if report.InvalidRecordsRemoved != 1 {
		t.Errorf("InvalidRecordsRemoved = %d, want 1", report.InvalidRecordsRemoved)
	}
	if report.FinalRecords != 1 {
		t.Errorf("FinalRecords = %d, want 1", report.FinalRecords)
	}

	// Dropped counts are consistent with survivor count
	dropped := report.DuplicatesRemoved + report.MissingValuesHandled + report.InvalidRecordsRemoved
	if report.OriginalRecords-dropped != report.FinalRecords {
		t.Errorf("report counts inconsistent: %d - %d != %d",
			report.OriginalRecords, dropped, report.FinalRecords)
	}

	r := cleaned[0]
	if r.Name != "Cafe A" || r.City != "Mumbai" {
		t.Errorf("survivor identity = %q/%q, want Cafe A/Mumbai", r.Name, r.City)
	}
	if r.AggregateRating != 4.1 {
		t.Errorf("rating = %v, want 4.1", r.AggregateRating)
	}
	if r.AverageCostForTwo != 1200 {
		t.Errorf("cost = %v, want 1200", r.AverageCostForTwo)
	}
	if r.Votes != 775 {
		t.Errorf("votes = %v, want 775", r.Votes)
	}
}

func TestClean_PostInvariants(t *testing.T) {
	c := NewCleaner(DefaultConfig())
	records := []models.RawRecord{
		record("A", "x", map[string]any{FieldRating: "4.5/5", FieldVotes: "10"}),
		record("B", "y", nil),
		record("C", "z", map[string]any{FieldRating: "NEW", FieldCost: "1,000"}),
	}

	for _, r := range c.Clean(records) {
		if r.Name == "" || r.City == "" {
			t.Errorf("cleaned record has empty identity: %+v", r)
		}
		if r.Cuisines == "" {
			t.Errorf("cleaned record has empty cuisines: %+v", r)
		}
		if r.AggregateRating < 0 || r.AggregateRating > 5 {
			t.Errorf("rating out of range: %v", r.AggregateRating)
		}
		if r.AverageCostForTwo < 0 {
			t.Errorf("negative cost: %v", r.AverageCostForTwo)
		}
		if r.Votes < 0 {
			t.Errorf("negative votes: %v", r.Votes)
		}
	}
}
