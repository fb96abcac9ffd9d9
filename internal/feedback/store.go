// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

// Package feedback records the user's positive and negative labels on items.
//
// Each item id carries at most one label. Labeling again replaces the
// previous label and metadata snapshot; removing deletes the record so the
// item reads as unlabeled ("none").
package feedback

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/sifter/internal/database"
	"github.com/tomtom215/sifter/internal/metrics"
	"github.com/tomtom215/sifter/internal/models"
	"github.com/tomtom215/sifter/internal/validation"
)

var (
	// ErrEmptyID is returned when an id is empty or only whitespace.
	ErrEmptyID = errors.New("feedback id must not be empty")

	// ErrInvalidSentiment is returned when a sentiment is not positive or negative.
	ErrInvalidSentiment = errors.New("sentiment must be positive or negative")

	// ErrNotFound is returned by Get for an unlabeled id.
	ErrNotFound = errors.New("feedback not found")
)

// Repository is the persistence the store needs. *database.DB implements it.
type Repository interface {
	UpsertFeedback(ctx context.Context, rec *models.FeedbackRecord) error
	DeleteFeedback(ctx context.Context, id string) (bool, error)
	GetFeedback(ctx context.Context, id string) (*models.FeedbackRecord, error)
	FeedbackBySentiment(ctx context.Context, sentiment models.Sentiment) ([]models.FeedbackRecord, error)
	FeedbackIDsBySentiment(ctx context.Context, sentiment models.Sentiment) ([]string, error)
	LabeledFeedbackIDs(ctx context.Context) ([]string, error)
	FeedbackSentiments(ctx context.Context, ids []string) (map[string]models.Sentiment, error)
	FeedbackCounts(ctx context.Context) (models.FeedbackCounts, error)
}

// Store is the feedback store.
type Store struct {
	repo   Repository
	now    func() time.Time
	logger zerolog.Logger
}

// NewStore creates a feedback store backed by repo.
func NewStore(repo Repository, logger zerolog.Logger) *Store {
	return &Store{
		repo:   repo,
		now:    time.Now,
		logger: logger.With().Str("component", "feedback").Logger(),
	}
}

// Upsert labels id, replacing any existing label and metadata.
func (s *Store) Upsert(ctx context.Context, id string, sentiment models.Sentiment, metadata models.Metadata) error {
	if err := validateID(id); err != nil {
		return err
	}
	if !sentiment.Valid() {
		return fmt.Errorf("%w: got %q", ErrInvalidSentiment, sentiment)
	}

	rec := &models.FeedbackRecord{
		ID:         id,
		Sentiment:  sentiment,
		Metadata:   metadata,
		RecordedAt: s.now().UTC(),
	}
	if err := s.repo.UpsertFeedback(ctx, rec); err != nil {
		return err
	}

	metrics.RecordFeedbackWrite("record")
	s.logger.Debug().Str("id", id).Str("sentiment", string(sentiment)).Msg("Feedback recorded")
	return nil
}

// Remove deletes the label for id. Removing an unlabeled id is a no-op.
func (s *Store) Remove(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	existed, err := s.repo.DeleteFeedback(ctx, id)
	if err != nil {
		return err
	}
	if existed {
		metrics.RecordFeedbackWrite("delete")
		s.logger.Debug().Str("id", id).Msg("Feedback removed")
	}
	return nil
}

// Get returns the record for id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*models.FeedbackRecord, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	rec, err := s.repo.GetFeedback(ctx, id)
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	}
	return rec, err
}

// IDsBySentiment returns the set of ids labeled with sentiment.
func (s *Store) IDsBySentiment(ctx context.Context, sentiment models.Sentiment) (map[string]struct{}, error) {
	if !sentiment.Valid() {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidSentiment, sentiment)
	}
	ids, err := s.repo.FeedbackIDsBySentiment(ctx, sentiment)
	if err != nil {
		return nil, err
	}
	return toSet(ids), nil
}

// RecordsBySentiment returns every record labeled with sentiment.
func (s *Store) RecordsBySentiment(ctx context.Context, sentiment models.Sentiment) ([]models.FeedbackRecord, error) {
	if !sentiment.Valid() {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidSentiment, sentiment)
	}
	return s.repo.FeedbackBySentiment(ctx, sentiment)
}

// LabeledIDs returns the set of ids carrying any label.
func (s *Store) LabeledIDs(ctx context.Context) (map[string]struct{}, error) {
	ids, err := s.repo.LabeledFeedbackIDs(ctx)
	if err != nil {
		return nil, err
	}
	return toSet(ids), nil
}

// SentimentOf returns the label for id, or SentimentNone.
func (s *Store) SentimentOf(ctx context.Context, id string) (models.Sentiment, error) {
	if err := validateID(id); err != nil {
		return "", err
	}
	rec, err := s.repo.GetFeedback(ctx, id)
	if database.IsNotFound(err) {
		return models.SentimentNone, nil
	}
	if err != nil {
		return "", err
	}
	return rec.Sentiment, nil
}

// SentimentOfBatch returns a label for every requested id, SentimentNone
// for unlabeled ones.
func (s *Store) SentimentOfBatch(ctx context.Context, ids []string) (map[string]models.Sentiment, error) {
	for _, id := range ids {
		if err := validateID(id); err != nil {
			return nil, err
		}
	}

	found, err := s.repo.FeedbackSentiments(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]models.Sentiment, len(ids))
	for _, id := range ids {
		if sentiment, ok := found[id]; ok {
			out[id] = sentiment
		} else {
			out[id] = models.SentimentNone
		}
	}
	return out, nil
}

// Counts returns how many ids carry each label.
func (s *Store) Counts(ctx context.Context) (models.FeedbackCounts, error) {
	return s.repo.FeedbackCounts(ctx)
}

func validateID(id string) error {
	if verr := validation.ValidateVar("id", id, "required,notblank"); verr != nil {
		return fmt.Errorf("%w: %s", ErrEmptyID, verr.Error())
	}
	return nil
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
