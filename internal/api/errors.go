// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/sifter/internal/feedback"
	"github.com/tomtom215/sifter/internal/kv"
	"github.com/tomtom215/sifter/internal/pool"
	"github.com/tomtom215/sifter/internal/recommend"
)

// Error codes for API responses
const (
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeDatabase           = "DATABASE_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeTrainingInProgress = "TRAINING_IN_PROGRESS"
)

// classifyError maps a core error to an HTTP status, error code and client
// message. Unknown errors are reported as storage failures without detail.
func classifyError(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, feedback.ErrEmptyID),
		errors.Is(err, feedback.ErrInvalidSentiment),
		errors.Is(err, pool.ErrInvalidItem):
		return http.StatusBadRequest, ErrCodeValidation, err.Error()
	case errors.Is(err, feedback.ErrNotFound):
		return http.StatusNotFound, ErrCodeNotFound, err.Error()
	case errors.Is(err, recommend.ErrTrainingInProgress):
		return http.StatusConflict, ErrCodeTrainingInProgress, err.Error()
	case errors.Is(err, kv.ErrClosed):
		return http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "model store unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "request timed out"
	default:
		return http.StatusInternalServerError, ErrCodeDatabase, "a storage error occurred"
	}
}
