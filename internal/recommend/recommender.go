// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/sifter/internal/filter"
	"github.com/tomtom215/sifter/internal/kv"
	"github.com/tomtom215/sifter/internal/metrics"
	"github.com/tomtom215/sifter/internal/models"
)

// ErrTrainingInProgress is returned when Train is called while another
// training run holds the lock.
var ErrTrainingInProgress = errors.New("training already in progress")

// Training outcomes, also used as metric labels.
const (
	resultTrained      = "trained"
	resultInsufficient = "insufficient_data"
	resultFailed       = "failed"
)

// TrainResult describes one training attempt.
type TrainResult struct {
	Success       bool       `json:"success"`
	Message       string     `json:"message"`
	PositiveCount int        `json:"positiveCount"`
	NegativeCount int        `json:"negativeCount"`
	Epochs        int        `json:"epochs,omitempty"`
	Loss          float64    `json:"loss,omitempty"`
	TrainedAt     *time.Time `json:"trainedAt,omitempty"`
}

// Status summarizes the stored model.
type Status struct {
	Available     bool               `json:"available"`
	TrainedAt     *time.Time         `json:"trainedAt,omitempty"`
	PositiveCount int                `json:"positiveCount"`
	NegativeCount int                `json:"negativeCount"`
	Bias          float64            `json:"bias"`
	Weights       map[string]float64 `json:"weights,omitempty"`
}

// Recommender trains and applies the preference model.
type Recommender struct {
	feedback filter.FeedbackSource
	store    kv.Store
	cache    *ArtifactCache
	cfg      TrainConfig
	now      func() time.Time
	logger   zerolog.Logger

	trainMu sync.Mutex
}

// New creates a recommender reading labels from feedback and persisting the
// model in store. Zero fields of cfg take their defaults.
func New(feedback filter.FeedbackSource, store kv.Store, cfg TrainConfig, logger zerolog.Logger) *Recommender {
	def := DefaultTrainConfig()
	if cfg.Epochs <= 0 {
		cfg.Epochs = def.Epochs
	}
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = def.LearningRate
	}
	if cfg.MinPerClass <= 0 {
		cfg.MinPerClass = def.MinPerClass
	}

	return &Recommender{
		feedback: feedback,
		store:    store,
		cache:    NewArtifactCache(store, logger),
		cfg:      cfg,
		now:      time.Now,
		logger:   logger.With().Str("component", "recommender").Logger(),
	}
}

// Cache exposes the artifact cache.
func (r *Recommender) Cache() *ArtifactCache {
	return r.cache
}

// Train fits a new model on all labeled feedback and replaces the stored
// artifact. With too few labels it returns an unsuccessful result and leaves
// any existing artifact in place.
func (r *Recommender) Train(ctx context.Context) (TrainResult, error) {
	if !r.trainMu.TryLock() {
		return TrainResult{}, ErrTrainingInProgress
	}
	defer r.trainMu.Unlock()

	start := time.Now()
	res, samples, err := r.train(ctx)

	outcome := resultTrained
	switch {
	case err != nil:
		outcome = resultFailed
	case !res.Success:
		outcome = resultInsufficient
	}
	metrics.RecordTraining(outcome, time.Since(start), samples, res.Loss)

	if err != nil {
		r.logger.Error().Err(err).Msg("Model training failed")
		return TrainResult{}, err
	}
	return res, nil
}

func (r *Recommender) train(ctx context.Context) (TrainResult, int, error) {
	positive, err := r.feedback.RecordsBySentiment(ctx, models.SentimentPositive)
	if err != nil {
		return TrainResult{}, 0, fmt.Errorf("load positive feedback: %w", err)
	}
	negative, err := r.feedback.RecordsBySentiment(ctx, models.SentimentNegative)
	if err != nil {
		return TrainResult{}, 0, fmt.Errorf("load negative feedback: %w", err)
	}

	res := TrainResult{PositiveCount: len(positive), NegativeCount: len(negative)}
	if len(positive) < r.cfg.MinPerClass || len(negative) < r.cfg.MinPerClass {
		res.Message = fmt.Sprintf("need at least %d liked and %d disliked items, have %d and %d",
			r.cfg.MinPerClass, r.cfg.MinPerClass, len(positive), len(negative))
		r.logger.Info().
			Int("positive", len(positive)).
			Int("negative", len(negative)).
			Msg("Not enough feedback to train")
		return res, 0, nil
	}

	patterns := filter.MinePatterns(positive, negative)
	xs := make([][]float64, 0, len(positive)+len(negative))
	ys := make([]float64, 0, len(positive)+len(negative))
	for _, set := range []struct {
		records []models.FeedbackRecord
		label   float64
	}{{positive, 1}, {negative, 0}} {
		for i := range set.records {
			item := set.records[i].AsItem()
			xs = append(xs, Features(&item, patterns))
			ys = append(ys, set.label)
		}
	}

	fitted, err := fit(ctx, xs, ys, r.cfg)
	if err != nil {
		return TrainResult{}, len(xs), fmt.Errorf("fit model: %w", err)
	}

	trainedAt := r.now().UTC()
	artifact := &Artifact{
		Version:       ArtifactVersion,
		Weights:       fitted.weights,
		Bias:          fitted.bias,
		TrainedAt:     trainedAt,
		PositiveCount: len(positive),
		NegativeCount: len(negative),
	}
	raw, err := encodeArtifact(artifact)
	if err != nil {
		return TrainResult{}, len(xs), err
	}
	if err := r.store.Set(ctx, ModelKey, raw); err != nil {
		return TrainResult{}, len(xs), fmt.Errorf("store model artifact: %w", err)
	}
	r.cache.Invalidate()

	r.logger.Info().
		Int("positive", len(positive)).
		Int("negative", len(negative)).
		Int("epochs", fitted.epochs).
		Float64("loss", fitted.loss).
		Msg("Model trained")

	res.Success = true
	res.Message = "model trained"
	res.Epochs = fitted.epochs
	res.Loss = fitted.loss
	res.TrainedAt = &trainedAt
	return res, len(xs), nil
}

// Score returns the probability that item is liked. ok is false when there
// is no usable model.
func (r *Recommender) Score(ctx context.Context, item *models.Item) (score float64, ok bool, err error) {
	scores, ok, err := r.ScoreBatch(ctx, []models.Item{*item})
	if err != nil || !ok {
		return 0, ok, err
	}
	return scores[0], true, nil
}

// ScoreBatch scores items with one model read and one pattern mining pass.
// The scores are aligned with items.
func (r *Recommender) ScoreBatch(ctx context.Context, items []models.Item) ([]float64, bool, error) {
	artifact, err := r.cache.GetOrLoad(ctx)
	if err != nil {
		return nil, false, err
	}
	if artifact == nil {
		return nil, false, nil
	}

	patterns, err := filter.LoadPatterns(ctx, r.feedback)
	if err != nil {
		return nil, false, err
	}

	scores := make([]float64, len(items))
	for i := range items {
		scores[i] = artifact.Predict(Features(&items[i], patterns))
	}
	return scores, true, nil
}

// IsAvailable reports whether a usable model is stored.
func (r *Recommender) IsAvailable(ctx context.Context) bool {
	artifact, err := r.cache.GetOrLoad(ctx)
	if err != nil {
		r.logger.Warn().Err(err).Msg("Model availability check failed")
		return false
	}
	return artifact != nil
}

// Status summarizes the stored model.
func (r *Recommender) Status(ctx context.Context) (Status, error) {
	artifact, err := r.cache.GetOrLoad(ctx)
	if err != nil {
		return Status{}, err
	}
	if artifact == nil {
		return Status{}, nil
	}
	trainedAt := artifact.TrainedAt
	return Status{
		Available:     true,
		TrainedAt:     &trainedAt,
		PositiveCount: artifact.PositiveCount,
		NegativeCount: artifact.NegativeCount,
		Bias:          artifact.Bias,
		Weights:       artifact.WeightsByName(),
	}, nil
}
