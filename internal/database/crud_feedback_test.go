// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package database

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/tomtom215/sifter/internal/models"
)

func record(id string, s models.Sentiment, at int64) *models.FeedbackRecord {
	return &models.FeedbackRecord{
		ID:        id,
		Sentiment: s,
		Metadata: models.Metadata{
			Title:       models.Ptr("Title " + id),
			ChannelName: models.Ptr("Channel"),
		},
		RecordedAt: time.Unix(0, at),
	}
}

func TestUpsertFeedback_ReplacesInPlace(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.UpsertFeedback(ctx, record("v1", models.SentimentPositive, 1)); err != nil {
		t.Fatalf("UpsertFeedback() error = %v", err)
	}

	replacement := &models.FeedbackRecord{
		ID:         "v1",
		Sentiment:  models.SentimentNegative,
		Metadata:   models.Metadata{Description: models.Ptr("new")},
		RecordedAt: time.Unix(0, 2),
	}
	if err := db.UpsertFeedback(ctx, replacement); err != nil {
		t.Fatalf("UpsertFeedback() error = %v", err)
	}

	got, err := db.GetFeedback(ctx, "v1")
	if err != nil {
		t.Fatalf("GetFeedback() error = %v", err)
	}
	if got.Sentiment != models.SentimentNegative {
		t.Errorf("Sentiment = %q, want negative", got.Sentiment)
	}
	if got.Metadata.Title != nil {
		t.Errorf("Title = %q, want nil after replace", *got.Metadata.Title)
	}
	if got.Metadata.Description == nil || *got.Metadata.Description != "new" {
		t.Errorf("Description = %v, want new", got.Metadata.Description)
	}
	if got.RecordedAt.UnixNano() != 2 {
		t.Errorf("RecordedAt = %d, want 2", got.RecordedAt.UnixNano())
	}

	counts, err := db.FeedbackCounts(ctx)
	if err != nil {
		t.Fatalf("FeedbackCounts() error = %v", err)
	}
	if counts != (models.FeedbackCounts{Positive: 0, Negative: 1}) {
		t.Errorf("counts = %+v, want one negative", counts)
	}
}

func TestGetAndDeleteFeedback(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	if _, err := db.GetFeedback(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetFeedback(missing) error = %v, want ErrNotFound", err)
	}

	if err := db.UpsertFeedback(ctx, record("v1", models.SentimentPositive, 1)); err != nil {
		t.Fatalf("UpsertFeedback() error = %v", err)
	}
	existed, err := db.DeleteFeedback(ctx, "v1")
	if err != nil || !existed {
		t.Errorf("DeleteFeedback(v1) = %v, %v; want true, nil", existed, err)
	}
	existed, err = db.DeleteFeedback(ctx, "v1")
	if err != nil || existed {
		t.Errorf("second DeleteFeedback(v1) = %v, %v; want false, nil", existed, err)
	}
	if _, err := db.GetFeedback(ctx, "v1"); !IsNotFound(err) {
		t.Errorf("GetFeedback after delete error = %v, want ErrNotFound", err)
	}
}

func TestFeedbackQueries(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	for i, r := range []*models.FeedbackRecord{
		record("p2", models.SentimentPositive, 3),
		record("n1", models.SentimentNegative, 2),
		record("p1", models.SentimentPositive, 1),
	} {
		if err := db.UpsertFeedback(ctx, r); err != nil {
			t.Fatalf("UpsertFeedback(%d) error = %v", i, err)
		}
	}

	pos, err := db.FeedbackIDsBySentiment(ctx, models.SentimentPositive)
	if err != nil {
		t.Fatalf("FeedbackIDsBySentiment() error = %v", err)
	}
	if !reflect.DeepEqual(pos, []string{"p1", "p2"}) {
		t.Errorf("positive ids = %v, want [p1 p2]", pos)
	}

	records, err := db.FeedbackBySentiment(ctx, models.SentimentPositive)
	if err != nil {
		t.Fatalf("FeedbackBySentiment() error = %v", err)
	}
	if len(records) != 2 || records[0].ID != "p1" || records[1].ID != "p2" {
		t.Errorf("records = %+v, want p1 then p2 by recorded_at", records)
	}
	if records[0].Metadata.Title == nil || *records[0].Metadata.Title != "Title p1" {
		t.Errorf("metadata not round-tripped: %+v", records[0].Metadata)
	}

	labeled, err := db.LabeledFeedbackIDs(ctx)
	if err != nil {
		t.Fatalf("LabeledFeedbackIDs() error = %v", err)
	}
	if !reflect.DeepEqual(labeled, []string{"n1", "p1", "p2"}) {
		t.Errorf("labeled = %v, want [n1 p1 p2]", labeled)
	}

	counts, err := db.FeedbackCounts(ctx)
	if err != nil {
		t.Fatalf("FeedbackCounts() error = %v", err)
	}
	if counts != (models.FeedbackCounts{Positive: 2, Negative: 1}) {
		t.Errorf("counts = %+v, want 2/1", counts)
	}
}

func TestFeedbackSentiments_Chunked(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.UpsertFeedback(ctx, record("id-3", models.SentimentPositive, 1)); err != nil {
		t.Fatalf("UpsertFeedback() error = %v", err)
	}
	if err := db.UpsertFeedback(ctx, record("id-1100", models.SentimentNegative, 2)); err != nil {
		t.Fatalf("UpsertFeedback() error = %v", err)
	}

	// Spans three chunks.
	query := make([]string, 1200)
	for i := range query {
		query[i] = fmt.Sprintf("id-%d", i)
	}

	got, err := db.FeedbackSentiments(ctx, query)
	if err != nil {
		t.Fatalf("FeedbackSentiments() error = %v", err)
	}
	want := map[string]models.Sentiment{
		"id-3":    models.SentimentPositive,
		"id-1100": models.SentimentNegative,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FeedbackSentiments() = %v, want %v", got, want)
	}

	empty, err := db.FeedbackSentiments(ctx, nil)
	if err != nil || len(empty) != 0 {
		t.Errorf("FeedbackSentiments(nil) = %v, %v; want empty", empty, err)
	}
}
