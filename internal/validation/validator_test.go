// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package validation

import (
	"strings"
	"testing"

	"github.com/tomtom215/gustus/internal/models"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

func TestValidateStruct_UserQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   models.UserQuery
		wantErr bool
	}{
		{
			name:  "valid query",
			query: models.UserQuery{City: "Mumbai", PriceRange: "budget", MinRating: 4},
		},
		{
			name:  "price category case-insensitive",
			query: models.UserQuery{City: "Mumbai", PriceRange: "Mid-Range"},
		},
		{
			name:    "missing city",
			query:   models.UserQuery{PriceRange: "budget"},
			wantErr: true,
		},
		{
			name:    "missing price range",
			query:   models.UserQuery{City: "Mumbai"},
			wantErr: true,
		},
		{
			name:    "unknown price category",
			query:   models.UserQuery{City: "Mumbai", PriceRange: "luxury"},
			wantErr: true,
		},
		{
			name:    "unknown is not a queryable category",
			query:   models.UserQuery{City: "Mumbai", PriceRange: "unknown"},
			wantErr: true,
		},
		{
			name:    "rating above five",
			query:   models.UserQuery{City: "Mumbai", PriceRange: "premium", MinRating: 5.1},
			wantErr: true,
		},
		{
			name:    "negative rating",
			query:   models.UserQuery{City: "Mumbai", PriceRange: "premium", MinRating: -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.query)
			if tt.wantErr && err == nil {
				t.Errorf("ValidateStruct(%+v) expected error", tt.query)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateStruct(%+v) unexpected error: %v", tt.query, err)
			}
		})
	}
}

func TestValidateStruct_ErrorDetails(t *testing.T) {
	query := models.UserQuery{City: "Mumbai", PriceRange: "luxury"}

	err := ValidateStruct(&query)
	if err == nil {
		t.Fatal("expected validation error")
	}

	errs := err.Errors()
	if len(errs) != 1 {
		t.Fatalf("len(Errors()) = %d, want 1", len(errs))
	}
	if errs[0].Field() != "PriceRange" {
		t.Errorf("Field() = %q, want PriceRange", errs[0].Field())
	}
	if errs[0].Tag() != "pricecategory" {
		t.Errorf("Tag() = %q, want pricecategory", errs[0].Tag())
	}
	if !strings.Contains(errs[0].Error(), "budget") {
		t.Errorf("message %q should list the valid categories", errs[0].Error())
	}
}

func TestToAPIError(t *testing.T) {
	t.Run("single error", func(t *testing.T) {
		err := ValidateStruct(&models.UserQuery{City: "Mumbai"})
		if err == nil {
			t.Fatal("expected validation error")
		}

		apiErr := err.ToAPIError()
		if apiErr.Code != "VALIDATION_ERROR" {
			t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
		}
		if apiErr.Details["field"] != "PriceRange" {
			t.Errorf("Details[field] = %v, want PriceRange", apiErr.Details["field"])
		}
	})

	t.Run("multiple errors list all fields", func(t *testing.T) {
		err := ValidateStruct(&models.UserQuery{MinRating: 9})
		if err == nil {
			t.Fatal("expected validation error")
		}

		apiErr := err.ToAPIError()
		if apiErr.Code != "VALIDATION_ERROR" {
			t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
		}
		if _, ok := apiErr.Details["fields"]; !ok {
			t.Errorf("Details = %v, want aggregated fields list", apiErr.Details)
		}
	})
}
