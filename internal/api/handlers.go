// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package api

import (
	"context"
	"time"

	"github.com/tomtom215/sifter/internal/config"
	"github.com/tomtom215/sifter/internal/feedback"
	"github.com/tomtom215/sifter/internal/filter"
	"github.com/tomtom215/sifter/internal/pipeline"
	"github.com/tomtom215/sifter/internal/pool"
	"github.com/tomtom215/sifter/internal/recommend"
)

// Pinger is a dependency the health check can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies are the components a Handler serves.
type Dependencies struct {
	DB          Pinger
	ModelStore  Pinger
	Feedback    *feedback.Store
	Pool        *pool.Pool
	Filter      *filter.Filter
	Recommender *recommend.Recommender
	Pipeline    *pipeline.Pipeline
	Config      *config.Config
	Version     string
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_health.go: health and readiness
//   - handlers_feedback.go: label CRUD
//   - handlers_pool.go: pool admission, raw search, status
//   - handlers_discovery.go: feed, search, rank, filter scoring
//   - handlers_model.go: training and model status
type Handler struct {
	db          Pinger
	modelStore  Pinger
	feedback    *feedback.Store
	pool        *pool.Pool
	filter      *filter.Filter
	recommender *recommend.Recommender
	pipeline    *pipeline.Pipeline
	config      *config.Config
	version     string
	startTime   time.Time
}

// NewHandler creates a handler over deps.
func NewHandler(deps Dependencies) *Handler {
	return &Handler{
		db:          deps.DB,
		modelStore:  deps.ModelStore,
		feedback:    deps.Feedback,
		pool:        deps.Pool,
		filter:      deps.Filter,
		recommender: deps.Recommender,
		pipeline:    deps.Pipeline,
		config:      deps.Config,
		version:     deps.Version,
		startTime:   time.Now(),
	}
}

// filterEnabledDefault is used when a request does not say whether to run
// the heuristic filter.
func (h *Handler) filterEnabledDefault() bool {
	return h.config != nil && h.config.Filter.Enabled
}

// feedOversample is how many pool entries are sampled per requested feed
// result.
func (h *Handler) feedOversample() int {
	if h.config == nil || h.config.Pool.FeedOversample < 1 {
		return 1
	}
	return h.config.Pool.FeedOversample
}
