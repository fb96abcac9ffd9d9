// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package feedback

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/sifter/internal/config"
	"github.com/tomtom215/sifter/internal/database"
	"github.com/tomtom215/sifter/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.New(&config.DatabaseConfig{Driver: database.DriverSQLite, Path: database.MemoryPath})
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db, zerolog.Nop())
}

func TestStore_RoundTrip(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	meta := models.Metadata{Title: models.Ptr("Go concurrency"), ChannelName: models.Ptr("GopherCon")}
	if err := s.Upsert(ctx, "v1", models.SentimentPositive, meta); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	got, err := s.SentimentOf(ctx, "v1")
	if err != nil || got != models.SentimentPositive {
		t.Errorf("SentimentOf(v1) = %q, %v; want positive", got, err)
	}

	if err := s.Remove(ctx, "v1"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	got, err = s.SentimentOf(ctx, "v1")
	if err != nil || got != models.SentimentNone {
		t.Errorf("SentimentOf(v1) after Remove = %q, %v; want none", got, err)
	}

	if err := s.Remove(ctx, "never-labeled"); err != nil {
		t.Errorf("Remove() of unlabeled id error = %v", err)
	}
}

func TestStore_UpsertIsIdempotentAndLastWriteWins(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := s.Upsert(ctx, "v1", models.SentimentPositive, models.Metadata{}); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
	}
	counts, err := s.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts() error = %v", err)
	}
	if counts != (models.FeedbackCounts{Positive: 1}) {
		t.Errorf("counts after repeated upsert = %+v, want 1 positive", counts)
	}

	later := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return later }
	if err := s.Upsert(ctx, "v1", models.SentimentNegative, models.Metadata{Title: models.Ptr("new")}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	rec, err := s.Get(ctx, "v1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if rec.Sentiment != models.SentimentNegative || rec.Metadata.Title == nil || *rec.Metadata.Title != "new" {
		t.Errorf("record = %+v, want replaced negative with new title", rec)
	}
	if !rec.RecordedAt.Equal(later) {
		t.Errorf("RecordedAt = %v, want %v", rec.RecordedAt, later)
	}
}

func TestStore_SetsAndRecords(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	labels := map[string]models.Sentiment{
		"p1": models.SentimentPositive,
		"p2": models.SentimentPositive,
		"n1": models.SentimentNegative,
	}
	for id, sentiment := range labels {
		if err := s.Upsert(ctx, id, sentiment, models.Metadata{Title: models.Ptr(id)}); err != nil {
			t.Fatalf("Upsert(%s) error = %v", id, err)
		}
	}

	pos, err := s.IDsBySentiment(ctx, models.SentimentPositive)
	if err != nil {
		t.Fatalf("IDsBySentiment() error = %v", err)
	}
	if _, ok := pos["p1"]; !ok || len(pos) != 2 {
		t.Errorf("positive set = %v, want p1 and p2", pos)
	}

	neg, err := s.RecordsBySentiment(ctx, models.SentimentNegative)
	if err != nil {
		t.Fatalf("RecordsBySentiment() error = %v", err)
	}
	if len(neg) != 1 || neg[0].ID != "n1" || *neg[0].Metadata.Title != "n1" {
		t.Errorf("negative records = %+v", neg)
	}

	labeled, err := s.LabeledIDs(ctx)
	if err != nil {
		t.Fatalf("LabeledIDs() error = %v", err)
	}
	if len(labeled) != 3 {
		t.Errorf("labeled = %v, want 3 ids", labeled)
	}

	batch, err := s.SentimentOfBatch(ctx, []string{"p1", "n1", "unknown"})
	if err != nil {
		t.Fatalf("SentimentOfBatch() error = %v", err)
	}
	want := map[string]models.Sentiment{
		"p1":      models.SentimentPositive,
		"n1":      models.SentimentNegative,
		"unknown": models.SentimentNone,
	}
	for id, w := range want {
		if batch[id] != w {
			t.Errorf("batch[%s] = %q, want %q", id, batch[id], w)
		}
	}
	if len(batch) != len(want) {
		t.Errorf("batch has %d entries, want %d", len(batch), len(want))
	}

	empty, err := s.SentimentOfBatch(ctx, nil)
	if err != nil || len(empty) != 0 {
		t.Errorf("SentimentOfBatch(nil) = %v, %v; want empty", empty, err)
	}
}

func TestStore_UsageErrors(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"upsert empty id", func() error { return s.Upsert(ctx, "", models.SentimentPositive, models.Metadata{}) }, ErrEmptyID},
		{"upsert blank id", func() error { return s.Upsert(ctx, "  ", models.SentimentPositive, models.Metadata{}) }, ErrEmptyID},
		{"upsert none sentiment", func() error { return s.Upsert(ctx, "v1", models.SentimentNone, models.Metadata{}) }, ErrInvalidSentiment},
		{"upsert unknown sentiment", func() error { return s.Upsert(ctx, "v1", "meh", models.Metadata{}) }, ErrInvalidSentiment},
		{"remove empty id", func() error { return s.Remove(ctx, "") }, ErrEmptyID},
		{"sentimentOf empty id", func() error { _, err := s.SentimentOf(ctx, ""); return err }, ErrEmptyID},
		{"batch with blank id", func() error { _, err := s.SentimentOfBatch(ctx, []string{"a", " "}); return err }, ErrEmptyID},
		{"ids by none", func() error { _, err := s.IDsBySentiment(ctx, models.SentimentNone); return err }, ErrInvalidSentiment},
		{"get missing", func() error { _, err := s.Get(ctx, "missing"); return err }, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestStore_ConcurrentUpserts(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sentiment := models.SentimentPositive
			if i%2 == 1 {
				sentiment = models.SentimentNegative
			}
			if err := s.Upsert(ctx, fmt.Sprintf("v%d", i), sentiment, models.Metadata{}); err != nil {
				t.Errorf("Upsert() error = %v", err)
			}
		}(i)
	}
	wg.Wait()

	counts, err := s.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts() error = %v", err)
	}
	if counts != (models.FeedbackCounts{Positive: 10, Negative: 10}) {
		t.Errorf("counts = %+v, want 10/10", counts)
	}
}

// failingRepo fails every call with err.
type failingRepo struct{ err error }

func (r failingRepo) UpsertFeedback(context.Context, *models.FeedbackRecord) error { return r.err }
func (r failingRepo) DeleteFeedback(context.Context, string) (bool, error) { return false, r.err }
func (r failingRepo) GetFeedback(context.Context, string) (*models.FeedbackRecord, error) {
	return nil, r.err
}
func (r failingRepo) FeedbackBySentiment(context.Context, models.Sentiment) ([]models.FeedbackRecord, error) {
	return nil, r.err
}
func (r failingRepo) FeedbackIDsBySentiment(context.Context, models.Sentiment) ([]string, error) {
	return nil, r.err
}
func (r failingRepo) LabeledFeedbackIDs(context.Context) ([]string, error) { return nil, r.err }
func (r failingRepo) FeedbackSentiments(context.Context, []string) (map[string]models.Sentiment, error) {
	return nil, r.err
}
func (r failingRepo) FeedbackCounts(context.Context) (models.FeedbackCounts, error) {
	return models.FeedbackCounts{}, r.err
}

func TestStore_PropagatesStorageErrors(t *testing.T) {
	t.Parallel()
	boom := errors.New("disk on fire")
	s := NewStore(failingRepo{err: boom}, zerolog.Nop())
	ctx := context.Background()

	if err := s.Upsert(ctx, "v1", models.SentimentPositive, models.Metadata{}); !errors.Is(err, boom) {
		t.Errorf("Upsert() error = %v, want %v", err, boom)
	}
	if _, err := s.SentimentOf(ctx, "v1"); !errors.Is(err, boom) {
		t.Errorf("SentimentOf() error = %v, want %v", err, boom)
	}
	if _, err := s.SentimentOfBatch(ctx, []string{"v1"}); !errors.Is(err, boom) {
		t.Errorf("SentimentOfBatch() error = %v, want %v", err, boom)
	}
	if _, err := s.LabeledIDs(ctx); !errors.Is(err, boom) {
		t.Errorf("LabeledIDs() error = %v, want %v", err, boom)
	}
}
