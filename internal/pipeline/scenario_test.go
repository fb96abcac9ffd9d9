// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package pipeline_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/sifter/internal/config"
	"github.com/tomtom215/sifter/internal/database"
	"github.com/tomtom215/sifter/internal/feedback"
	"github.com/tomtom215/sifter/internal/filter"
	"github.com/tomtom215/sifter/internal/kv"
	"github.com/tomtom215/sifter/internal/models"
	"github.com/tomtom215/sifter/internal/pipeline"
	"github.com/tomtom215/sifter/internal/pool"
	"github.com/tomtom215/sifter/internal/recommend"
)

// TestScenario_SeededPool runs the pipeline against real stores: five pooled
// items, two of them labeled, no trained model.
func TestScenario_SeededPool(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	logger := zerolog.Nop()

	db, err := database.New(&config.DatabaseConfig{Driver: database.DriverSQLite, Path: database.MemoryPath})
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	contentPool := pool.New(db, pool.MaxPoolSize, logger)
	var seeded []models.Item
	for _, id := range []string{"v1", "v2", "v3", "v4", "v5"} {
		seeded = append(seeded, models.Item{ID: id, Title: "Video " + id, ChannelName: "Channel"})
	}
	added, err := contentPool.InsertMany(ctx, seeded)
	if err != nil || added != 5 {
		t.Fatalf("InsertMany() = %d, %v; want 5", added, err)
	}

	fb := feedback.NewStore(db, logger)
	if err := fb.Upsert(ctx, "v1", models.SentimentPositive, models.MetadataFromItem(&seeded[0])); err != nil {
		t.Fatal(err)
	}
	if err := fb.Upsert(ctx, "v2", models.SentimentNegative, models.MetadataFromItem(&seeded[1])); err != nil {
		t.Fatal(err)
	}

	rec := recommend.New(fb, kv.NewMemory(), recommend.DefaultTrainConfig(), logger)
	if rec.IsAvailable(ctx) {
		t.Fatal("model available before training")
	}

	p := pipeline.New(&config.PipelineConfig{DefaultMaxResults: 20, BreakerFailures: 5}, fb,
		filter.New(filter.DefaultThreshold, logger), rec, logger)

	got := p.ApplyFiltersAndRank(ctx, seeded, pipeline.Options{MaxResults: 10})

	var gotIDs []string
	for _, it := range got {
		gotIDs = append(gotIDs, it.ID)
	}
	if want := []string{"v3", "v4", "v5"}; !reflect.DeepEqual(gotIDs, want) {
		t.Errorf("ApplyFiltersAndRank() = %v, want %v", gotIDs, want)
	}
}

// TestScenario_TrainedModelRanks trains on real feedback and checks that the
// ranking step promotes the candidate resembling liked content.
func TestScenario_TrainedModelRanks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	logger := zerolog.Nop()

	db, err := database.New(&config.DatabaseConfig{Driver: database.DriverSQLite, Path: database.MemoryPath})
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	fb := feedback.NewStore(db, logger)
	label := func(id, title, channel string, s models.Sentiment) {
		t.Helper()
		meta := models.Metadata{Title: models.Ptr(title), ChannelName: models.Ptr(channel)}
		if err := fb.Upsert(ctx, id, s, meta); err != nil {
			t.Fatal(err)
		}
	}
	label("p1", "Woodworking joinery fundamentals", "Fine Woodshop", models.SentimentPositive)
	label("p2", "Hand cut dovetail joinery", "Fine Woodshop", models.SentimentPositive)
	label("n1", "INSANE PRANK GONE WRONG!!!", "Loud Pranks", models.SentimentNegative)
	label("n2", "SHOCKING PRANK YOU WON'T BELIEVE", "Loud Pranks", models.SentimentNegative)

	rec := recommend.New(fb, kv.NewMemory(), recommend.DefaultTrainConfig(), logger)
	res, err := rec.Train(ctx)
	if err != nil || !res.Success {
		t.Fatalf("Train() = %+v, %v", res, err)
	}

	p := pipeline.New(&config.PipelineConfig{DefaultMaxResults: 20, BreakerFailures: 5}, fb,
		filter.New(filter.DefaultThreshold, logger), rec, logger)

	in := []models.Item{
		{ID: "bad", Title: "PRANK GONE WRONG AGAIN!!!", ChannelName: "Loud Pranks"},
		{ID: "good", Title: "Mortise and tenon joinery", ChannelName: "Fine Woodshop"},
	}
	got := p.ApplyFiltersAndRank(ctx, in, pipeline.Options{MaxResults: 10})
	if len(got) != 2 || got[0].ID != "good" {
		t.Errorf("ranked = %+v, want good first", got)
	}
}
