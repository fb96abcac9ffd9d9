// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/sifter/internal/metrics"
	"github.com/tomtom215/sifter/internal/models"
)

// StepFunc transforms a candidate list.
type StepFunc func(ctx context.Context, items []models.Item) ([]models.Item, error)

// Step is a named pipeline stage.
type Step struct {
	Name string
	Run  StepFunc
}

// bestEffort runs step and returns its output, or the input unchanged when
// the step fails.
func bestEffort(ctx context.Context, step Step, in []models.Item, logger zerolog.Logger) []models.Item {
	out, err := step.Run(ctx, in)
	if err != nil {
		metrics.RecordDegradedStep(step.Name)
		logger.Warn().
			Err(err).
			Str("step", step.Name).
			Int("items", len(in)).
			Msg("Pipeline step failed, passing items through")
		return in
	}
	return out
}

// newBreaker creates the breaker guarding one step. It opens after
// failures consecutive errors and stays open for timeout.
func newBreaker(name string, failures uint32, timeout time.Duration, logger zerolog.Logger) *gobreaker.CircuitBreaker[[]models.Item] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[[]models.Item](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// The caller giving up is not a dependency failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state change")
			metrics.RecordCircuitBreakerTransition(name, from.String(), to.String(), int(to))
		},
	})
}

// guarded runs fn through cb. An open breaker fails fast with
// gobreaker.ErrOpenState.
func guarded(cb *gobreaker.CircuitBreaker[[]models.Item], fn StepFunc) StepFunc {
	return func(ctx context.Context, items []models.Item) ([]models.Item, error) {
		return cb.Execute(func() ([]models.Item, error) {
			return fn(ctx, items)
		})
	}
}
