// Gustus - Restaurant Data Pipeline and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/gustus/internal/logging"
	"github.com/tomtom215/gustus/internal/models"
	"github.com/tomtom215/gustus/internal/pipeline"
)

// maxRequestBody bounds JSON request bodies.
const maxRequestBody = 1 << 20 // 1 MiB

// Store is the read surface the handlers need. Satisfied by
// *database.DB.
type Store interface {
	Ping(ctx context.Context) error
	Count(ctx context.Context) (int, error)
	ByCity(ctx context.Context, city string, minRating float64, limit int) ([]models.Restaurant, error)
	ByCityAndPrice(ctx context.Context, city, priceCategory string, minRating float64, limit int) ([]models.Restaurant, error)
	Cities(ctx context.Context) ([]string, error)
	Cuisines(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) (models.StoreStats, error)
}

// Recommender answers preference queries. Satisfied by
// *recommend.Engine.
type Recommender interface {
	Recommend(ctx context.Context, query models.UserQuery, limit int) (models.RecommendationResponse, error)
}

// PipelineRunner controls batch runs. Satisfied by *pipeline.Pipeline.
type PipelineRunner interface {
	Run(ctx context.Context) (models.PipelineResult, error)
	LastResult() (models.PipelineResult, bool)
}

// Paging bounds page sizes on the browse endpoints.
type Paging struct {
	// DefaultPageSize applies when the caller omits the limit parameter.
	DefaultPageSize int

	// MaxPageSize caps caller-supplied limits.
	MaxPageSize int
}

// DefaultPaging returns the standard browse page bounds.
func DefaultPaging() Paging {
	return Paging{
		DefaultPageSize: 20,
		MaxPageSize:     100,
	}
}

// Handler implements all HTTP endpoints.
type Handler struct {
	store  Store
	engine Recommender
	runner PipelineRunner
	paging Paging
}

// NewHandler creates the endpoint handler set. Zero paging bounds fall
// back to the defaults.
func NewHandler(store Store, engine Recommender, runner PipelineRunner, paging Paging) *Handler {
	defaults := DefaultPaging()
	if paging.DefaultPageSize <= 0 {
		paging.DefaultPageSize = defaults.DefaultPageSize
	}
	if paging.MaxPageSize <= 0 {
		paging.MaxPageSize = defaults.MaxPageSize
	}
	if paging.MaxPageSize < paging.DefaultPageSize {
		paging.MaxPageSize = paging.DefaultPageSize
	}

	return &Handler{
		store:  store,
		engine: engine,
		runner: runner,
		paging: paging,
	}
}

// Health reports service liveness and store reachability.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.store.Ping(ctx); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, &APIResponse{
			Status:   "error",
			Data:     map[string]interface{}{"healthy": false},
			Metadata: Metadata{Timestamp: time.Now()},
			Error: &APIError{
				Code:    "DATABASE_ERROR",
				Message: "store unreachable",
			},
		})
		return
	}

	count, err := h.store.Count(ctx)
	if err != nil {
		count = -1
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"healthy": true,
		"records": count,
	})
}

// recommendationRequest is the POST /recommendations body.
type recommendationRequest struct {
	City       string   `json:"city"`
	PriceRange string   `json:"price_range"`
	Cuisine    []string `json:"cuisine,omitempty"`
	MinRating  float64  `json:"min_rating"`
	Limit      int      `json:"limit"`
}

// Recommendations handles POST /api/v1/recommendations.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	var req recommendationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON body", err)
		return
	}

	query := models.UserQuery{
		City:       req.City,
		PriceRange: req.PriceRange,
		Cuisine:    req.Cuisine,
		MinRating:  req.MinRating,
	}
	if apiErr := validateRequest(&query); apiErr != nil {
		respondJSON(w, http.StatusBadRequest, &APIResponse{
			Status:   "error",
			Metadata: Metadata{Timestamp: time.Now()},
			Error:    apiErr,
		})
		return
	}

	response, err := h.engine.Recommend(r.Context(), query, req.Limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "recommendation failed", err)
		return
	}

	respondSuccess(w, http.StatusOK, response)
}

// restaurantsRequest carries the GET /restaurants query parameters.
type restaurantsRequest struct {
	City          string  `validate:"required"`
	PriceCategory string  `validate:"omitempty,pricecategory"`
	MinRating     float64 `validate:"gte=0,lte=5"`
}

// Restaurants handles GET
// /api/v1/restaurants?city=&price_category=&min_rating=&limit=.
// With a price category the results are ordered by popularity score
// descending; without one they come back in store order. The limit
// parameter is clamped to the configured page bounds; malformed or
// missing values fall back to the default page size.
func (h *Handler) Restaurants(w http.ResponseWriter, r *http.Request) {
	req := restaurantsRequest{
		City:          r.URL.Query().Get("city"),
		PriceCategory: r.URL.Query().Get("price_category"),
		MinRating:     getFloatParam(r, "min_rating", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondJSON(w, http.StatusBadRequest, &APIResponse{
			Status:   "error",
			Metadata: Metadata{Timestamp: time.Now()},
			Error:    apiErr,
		})
		return
	}

	city := models.TitleCase(strings.TrimSpace(req.City))

	limit := getIntParam(r, "limit", h.paging.DefaultPageSize)
	if limit <= 0 {
		limit = h.paging.DefaultPageSize
	}
	if limit > h.paging.MaxPageSize {
		limit = h.paging.MaxPageSize
	}

	var (
		restaurants []models.Restaurant
		err         error
	)
	if req.PriceCategory != "" {
		price := strings.ToLower(strings.TrimSpace(req.PriceCategory))
		restaurants, err = h.store.ByCityAndPrice(r.Context(), city, price, req.MinRating, limit)
	} else {
		restaurants, err = h.store.ByCity(r.Context(), city, req.MinRating, limit)
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "restaurant lookup failed", err)
		return
	}
	if restaurants == nil {
		restaurants = []models.Restaurant{}
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"city":        city,
		"count":       len(restaurants),
		"restaurants": restaurants,
	})
}

// Cities handles GET /api/v1/cities.
func (h *Handler) Cities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.store.Cities(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "city listing failed", err)
		return
	}
	if cities == nil {
		cities = []string{}
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"count":  len(cities),
		"cities": cities,
	})
}

// Cuisines handles GET /api/v1/cuisines.
func (h *Handler) Cuisines(w http.ResponseWriter, r *http.Request) {
	cuisines, err := h.store.Cuisines(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "cuisine listing failed", err)
		return
	}
	if cuisines == nil {
		cuisines = []string{}
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"count":    len(cuisines),
		"cuisines": cuisines,
	})
}

// Stats handles GET /api/v1/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "stats computation failed", err)
		return
	}

	respondSuccess(w, http.StatusOK, stats)
}

// PipelineRun handles POST /api/v1/pipeline/run. A run already in
// flight yields 409; the previous snapshot stays intact on failure.
func (h *Handler) PipelineRun(w http.ResponseWriter, r *http.Request) {
	logging.Ctx(r.Context()).Info().Msg("Pipeline run requested")

	result, err := h.runner.Run(r.Context())
	if err != nil {
		if errors.Is(err, pipeline.ErrAlreadyRunning) {
			respondError(w, http.StatusConflict, "CONFLICT", "a pipeline run is already in progress", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "PIPELINE_ERROR", "pipeline run failed", err)
		return
	}

	respondSuccess(w, http.StatusOK, result)
}

// PipelineReport handles GET /api/v1/pipeline/report, returning the
// result of the most recent completed run.
func (h *Handler) PipelineReport(w http.ResponseWriter, r *http.Request) {
	result, ok := h.runner.LastResult()
	if !ok {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "no pipeline run has completed yet", nil)
		return
	}

	respondSuccess(w, http.StatusOK, result)
}

// decodeJSON decodes a bounded JSON request body, rejecting unknown
// fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
