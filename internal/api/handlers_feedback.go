// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/sifter/internal/models"
)

type sentimentResponse struct {
	ID        string           `json:"id"`
	Sentiment models.Sentiment `json:"sentiment"`
}

type feedbackListResponse struct {
	Sentiment models.Sentiment        `json:"sentiment"`
	Records   []models.FeedbackRecord `json:"records"`
	Count     int                     `json:"count"`
}

// RecordFeedback handles POST /feedback. A repeated label for the same id
// replaces the previous one.
func (h *Handler) RecordFeedback(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req FeedbackRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	sentiment := models.Sentiment(req.Sentiment)
	if err := h.feedback.Upsert(r.Context(), req.ID, sentiment, req.Metadata); err != nil {
		respondCoreError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, sentimentResponse{ID: req.ID, Sentiment: sentiment}, start)
}

// GetFeedback handles GET /feedback/{id}. Unlabeled ids report "none".
func (h *Handler) GetFeedback(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := FeedbackIDRequest{ID: chi.URLParam(r, "id")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	sentiment, err := h.feedback.SentimentOf(r.Context(), req.ID)
	if err != nil {
		respondCoreError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, sentimentResponse{ID: req.ID, Sentiment: sentiment}, start)
}

// DeleteFeedback handles DELETE /feedback/{id}. Removing an absent label
// succeeds.
func (h *Handler) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := FeedbackIDRequest{ID: chi.URLParam(r, "id")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	if err := h.feedback.Remove(r.Context(), req.ID); err != nil {
		respondCoreError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, sentimentResponse{ID: req.ID, Sentiment: models.SentimentNone}, start)
}

// ListFeedback handles GET /feedback. With a sentiment it lists the matching
// records; without one it returns the label counts.
func (h *Handler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	sentiment := r.URL.Query().Get("sentiment")
	if sentiment == "" {
		counts, err := h.feedback.Counts(r.Context())
		if err != nil {
			respondCoreError(w, r, err)
			return
		}
		respondSuccess(w, http.StatusOK, counts, start)
		return
	}

	req := FeedbackListRequest{Sentiment: sentiment}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	records, err := h.feedback.RecordsBySentiment(r.Context(), models.Sentiment(req.Sentiment))
	if err != nil {
		respondCoreError(w, r, err)
		return
	}
	if records == nil {
		records = []models.FeedbackRecord{}
	}

	respondSuccess(w, http.StatusOK, feedbackListResponse{
		Sentiment: models.Sentiment(req.Sentiment),
		Records:   records,
		Count:     len(records),
	}, start)
}
