// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/sifter/internal/models"
	"github.com/tomtom215/sifter/internal/pool"
)

const defaultPoolSearchLimit = 20

type poolAddResponse struct {
	Added int `json:"added"`
}

type poolSearchResponse struct {
	Entries []models.PoolEntry `json:"entries"`
	Count   int                `json:"count"`
}

// AddPoolItems handles POST /pool/items. The body is a JSON array of items;
// ids already pooled are skipped and count toward nothing.
func (h *Handler) AddPoolItems(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req PoolItemsRequest
	if err := decodeJSON(w, r, &req.Items); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	added, err := h.pool.InsertMany(r.Context(), req.Items)
	if err != nil {
		respondCoreError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, poolAddResponse{Added: added}, start)
}

// SearchPool handles GET /pool/search without filtering or ranking.
func (h *Handler) SearchPool(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := PoolSearchRequest{
		Query: r.URL.Query().Get("q"),
		Limit: getIntParam(r, "limit", defaultPoolSearchLimit),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	entries, err := h.pool.SearchByTerms(r.Context(), pool.Tokenize(req.Query), req.Limit)
	if err != nil {
		respondCoreError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, poolSearchResponse{Entries: entries, Count: len(entries)}, start)
}

// PoolStatus handles GET /pool/status.
func (h *Handler) PoolStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	status, err := h.pool.Status(r.Context())
	if err != nil {
		respondCoreError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, status, start)
}
