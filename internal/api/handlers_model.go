// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package api

import (
	"net/http"
	"time"
)

// TrainModel handles POST /model/train. Too few labels is a successful
// request with an unsuccessful result; a concurrent run answers 409.
func (h *Handler) TrainModel(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	result, err := h.recommender.Train(r.Context())
	if err != nil {
		respondCoreError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, result, start)
}

// ModelStatus handles GET /model/status.
func (h *Handler) ModelStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	status, err := h.recommender.Status(r.Context())
	if err != nil {
		respondCoreError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, status, start)
}
