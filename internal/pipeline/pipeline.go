// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package pipeline

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/sifter/internal/config"
	"github.com/tomtom215/sifter/internal/filter"
	"github.com/tomtom215/sifter/internal/metrics"
	"github.com/tomtom215/sifter/internal/models"
)

// Step names, also used as metric labels and breaker names.
const (
	StepExclude  = "exclude"
	StepFilter   = "filter"
	StepTruncate = "truncate"
	StepRank     = "rank"
)

// unscored is the rank given to items the model returned no score for.
const unscored = 0.5

// Feedback is the label data the pipeline reads. *feedback.Store
// implements it.
type Feedback interface {
	LabeledIDs(ctx context.Context) (map[string]struct{}, error)
	filter.FeedbackSource
}

// Scorer ranks items. ok is false when no model is available.
// *recommend.Recommender implements it.
type Scorer interface {
	ScoreBatch(ctx context.Context, items []models.Item) (scores []float64, ok bool, err error)
}

// Options control one pipeline run.
type Options struct {
	// MaxResults caps the output. Zero or less uses the configured default.
	MaxResults int

	// UseHeuristicFilter enables the authenticity filter.
	UseHeuristicFilter bool

	// Threshold is the minimum filter score.
	Threshold float64
}

// Pipeline applies exclusion, filtering, truncation and ranking.
type Pipeline struct {
	feedback   Feedback
	filter     *filter.Filter
	scorer     Scorer
	maxResults int
	logger     zerolog.Logger

	exclude StepFunc
	screen  func(threshold float64) StepFunc
	rank    StepFunc
}

// New wires a pipeline. scorer may be nil, which disables ranking.
func New(cfg *config.PipelineConfig, fb Feedback, f *filter.Filter, scorer Scorer, logger zerolog.Logger) *Pipeline {
	logger = logger.With().Str("component", "pipeline").Logger()

	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}
	timeout := cfg.BreakerTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxResults := cfg.DefaultMaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	p := &Pipeline{
		feedback:   fb,
		filter:     f,
		scorer:     scorer,
		maxResults: maxResults,
		logger:     logger,
	}

	p.exclude = guarded(newBreaker(StepExclude, failures, timeout, logger), p.excludeLabeled)
	filterBreaker := newBreaker(StepFilter, failures, timeout, logger)
	p.screen = func(threshold float64) StepFunc {
		return guarded(filterBreaker, func(ctx context.Context, items []models.Item) ([]models.Item, error) {
			return p.filterAuthentic(ctx, items, threshold)
		})
	}
	p.rank = guarded(newBreaker(StepRank, failures, timeout, logger), p.rankByModel)
	return p
}

// DefaultMaxResults returns the cap used when Options.MaxResults is unset.
func (p *Pipeline) DefaultMaxResults() int {
	return p.maxResults
}

// ApplyFiltersAndRank runs candidates through every step. It never fails:
// a failing step is skipped and its input kept.
func (p *Pipeline) ApplyFiltersAndRank(ctx context.Context, candidates []models.Item, opts Options) []models.Item {
	limit := opts.MaxResults
	if limit <= 0 {
		limit = p.maxResults
	}

	items := candidates
	if items == nil {
		items = []models.Item{}
	}

	items = bestEffort(ctx, Step{Name: StepExclude, Run: p.exclude}, items, p.logger)

	if opts.UseHeuristicFilter && len(items) > 0 {
		items = bestEffort(ctx, Step{Name: StepFilter, Run: p.screen(opts.Threshold)}, items, p.logger)
	}

	items = bestEffort(ctx, Step{Name: StepTruncate, Run: truncate(limit)}, items, p.logger)

	if p.scorer != nil && len(items) > 1 {
		items = bestEffort(ctx, Step{Name: StepRank, Run: p.rank}, items, p.logger)
	}

	metrics.RecordPipelineResults(len(items))
	p.logger.Debug().
		Int("candidates", len(candidates)).
		Int("results", len(items)).
		Bool("filtered", opts.UseHeuristicFilter).
		Msg("Pipeline complete")
	return items
}

func (p *Pipeline) excludeLabeled(ctx context.Context, items []models.Item) ([]models.Item, error) {
	labeled, err := p.feedback.LabeledIDs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Item, 0, len(items))
	for i := range items {
		if _, seen := labeled[items[i].ID]; !seen {
			out = append(out, items[i])
		}
	}
	return out, nil
}

func (p *Pipeline) filterAuthentic(ctx context.Context, items []models.Item, threshold float64) ([]models.Item, error) {
	patterns, err := filter.LoadPatterns(ctx, p.feedback)
	if err != nil {
		return nil, err
	}
	return p.filter.ApplyThreshold(items, patterns, threshold), nil
}

func truncate(limit int) StepFunc {
	return func(_ context.Context, items []models.Item) ([]models.Item, error) {
		if len(items) <= limit {
			return items, nil
		}
		return items[:limit:limit], nil
	}
}

// rankByModel sorts by model score, highest first. Equal scores keep their
// relative order.
func (p *Pipeline) rankByModel(ctx context.Context, items []models.Item) ([]models.Item, error) {
	scores, ok, err := p.scorer.ScoreBatch(ctx, items)
	if err != nil {
		return nil, err
	}
	if !ok {
		return items, nil
	}

	type ranked struct {
		item  models.Item
		score float64
	}
	rs := make([]ranked, len(items))
	for i := range items {
		s := unscored
		if i < len(scores) {
			s = scores[i]
		}
		rs[i] = ranked{item: items[i], score: s}
	}
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].score > rs[j].score })

	out := make([]models.Item, len(rs))
	for i := range rs {
		out[i] = rs[i].item
	}
	return out, nil
}
