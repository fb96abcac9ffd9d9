// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/sifter/internal/filter"
	"github.com/tomtom215/sifter/internal/logging"
	"github.com/tomtom215/sifter/internal/models"
	"github.com/tomtom215/sifter/internal/pipeline"
	"github.com/tomtom215/sifter/internal/pool"
)

// parseDiscovery reads the query shared by Feed and Search.
func (h *Handler) parseDiscovery(r *http.Request) (DiscoveryRequest, *models.APIError) {
	req := DiscoveryRequest{
		Query:     r.URL.Query().Get("q"),
		Limit:     getIntParam(r, "limit", h.pipeline.DefaultMaxResults()),
		Filter:    getBoolParam(r, "filter", h.filterEnabledDefault()),
		Threshold: getFloatParam(r, "threshold", h.filter.Threshold()),
	}
	return req, validateRequest(&req)
}

func (h *Handler) runPipeline(w http.ResponseWriter, r *http.Request, candidates []models.Item, opts pipeline.Options, start time.Time) {
	items := h.pipeline.ApplyFiltersAndRank(r.Context(), candidates, opts)
	respondSuccess(w, http.StatusOK, DiscoveryResponse{
		Items:      items,
		Count:      len(items),
		Candidates: len(candidates),
	}, start)
}

// Feed handles GET /feed: a random pool sample, oversampled so the
// pipeline has room to drop labeled and inauthentic items.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, apiErr := h.parseDiscovery(r)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	entries, err := h.pool.RandomSample(r.Context(), req.Limit*h.feedOversample())
	if err != nil {
		respondCoreError(w, r, err)
		return
	}

	h.runPipeline(w, r, models.Items(entries), pipeline.Options{
		MaxResults:         req.Limit,
		UseHeuristicFilter: req.Filter,
		Threshold:          req.Threshold,
	}, start)
}

// Search handles GET /search: pool search results through the pipeline.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, apiErr := h.parseDiscovery(r)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	entries, err := h.pool.SearchByTerms(r.Context(), pool.Tokenize(req.Query), req.Limit*h.feedOversample())
	if err != nil {
		respondCoreError(w, r, err)
		return
	}

	h.runPipeline(w, r, models.Items(entries), pipeline.Options{
		MaxResults:         req.Limit,
		UseHeuristicFilter: req.Filter,
		Threshold:          req.Threshold,
	}, start)
}

// Rank handles POST /rank over caller-supplied candidates.
func (h *Handler) Rank(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req RankRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	opts := pipeline.Options{
		MaxResults:         req.MaxResults,
		UseHeuristicFilter: h.filterEnabledDefault(),
		Threshold:          h.filter.Threshold(),
	}
	if req.UseHeuristicFilter != nil {
		opts.UseHeuristicFilter = *req.UseHeuristicFilter
	}
	if req.Threshold != nil {
		opts.Threshold = *req.Threshold
	}

	candidates := req.Candidates
	if candidates == nil {
		candidates = []models.Item{}
	}
	h.runPipeline(w, r, candidates, opts, start)
}

// ScoreItem handles POST /filter/score. When feedback cannot be read the item
// is scored on heuristics alone.
func (h *Handler) ScoreItem(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var item models.Item
	if err := decodeJSON(w, r, &item); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&item); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	patterns, err := filter.LoadPatterns(r.Context(), h.feedback)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Scoring without feedback patterns")
		patterns = filter.EmptyPatterns()
	}

	threshold := h.filter.Threshold()
	assessment := filter.Score(&item, patterns)
	respondSuccess(w, http.StatusOK, ScoreResponse{
		ID:        item.ID,
		Score:     assessment.Score,
		Reasons:   assessment.Reasons,
		Threshold: threshold,
		Authentic: assessment.IsAuthentic(threshold),
	}, start)
}
