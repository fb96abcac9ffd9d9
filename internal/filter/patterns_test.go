// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package filter

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/tomtom215/sifter/internal/models"
)

func TestExtractKeywords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "stop words and punctuation",
			text: "The Best Sourdough, Ever!",
			want: []string{"best", "sourdough", "ever", "the best", "best sourdough", "sourdough ever"},
		},
		{
			name: "short words still form bigrams",
			text: "Go is fun",
			want: []string{"fun", "go is", "is fun"},
		},
		{
			name: "short bigrams dropped",
			text: "a b",
			want: []string{},
		},
		{
			name: "duplicates collapse",
			text: "rust rust rust",
			want: []string{"rust", "rust rust"},
		},
		{
			name: "punctuation only",
			text: "--- !!!",
			want: []string{},
		},
		{
			name: "empty",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ExtractKeywords(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractKeywords(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func record(id, title, channel string) models.FeedbackRecord {
	return models.FeedbackRecord{
		ID: id,
		Metadata: models.Metadata{
			Title:       models.Ptr(title),
			ChannelName: models.Ptr(channel),
		},
	}
}

func TestMinePatterns(t *testing.T) {
	t.Parallel()

	positive := []models.FeedbackRecord{
		record("p1", "Sourdough starter guide", "Bake School"),
		{ID: "p2"}, // no metadata at all
	}
	negative := []models.FeedbackRecord{
		record("n1", "Prank compilation", "Loud Pranks"),
		record("n2", "Another prank", ""),
	}

	p := MinePatterns(positive, negative)

	for _, kw := range []string{"sourdough", "starter", "guide", "sourdough starter", "starter guide"} {
		if _, ok := p.PositiveKeywords[kw]; !ok {
			t.Errorf("PositiveKeywords missing %q", kw)
		}
	}
	for _, kw := range []string{"prank", "compilation", "another"} {
		if _, ok := p.NegativeKeywords[kw]; !ok {
			t.Errorf("NegativeKeywords missing %q", kw)
		}
	}
	if want := map[string]struct{}{"Bake School": {}}; !reflect.DeepEqual(p.PositiveChannels, want) {
		t.Errorf("PositiveChannels = %v, want %v", p.PositiveChannels, want)
	}
	if want := map[string]struct{}{"Loud Pranks": {}}; !reflect.DeepEqual(p.NegativeChannels, want) {
		t.Errorf("NegativeChannels = %v, want %v", p.NegativeChannels, want)
	}
}

func TestPatterns_MatchItem(t *testing.T) {
	t.Parallel()

	p := MinePatterns(
		[]models.FeedbackRecord{record("p", "sourdough bread", "Bake School")},
		[]models.FeedbackRecord{record("n", "bread prank", "Loud Pranks")},
	)

	item := &models.Item{ID: "x", Title: "Sourdough bread basics", ChannelName: "Bake School"}
	m := p.MatchItem(item)

	// keywords: sourdough, bread, basics, "sourdough bread", "bread basics"
	want := Match{Keywords: 5, PositiveHits: 3, NegativeHits: 1, PositiveChannel: true}
	if m != want {
		t.Errorf("MatchItem() = %+v, want %+v", m, want)
	}

	// Channel match is exact.
	item.ChannelName = "bake school"
	if m := p.MatchItem(item); m.PositiveChannel {
		t.Error("MatchItem() matched channel case-insensitively")
	}
}

type fakeSource struct {
	records map[models.Sentiment][]models.FeedbackRecord
	err     error
	calls   int
}

func (f *fakeSource) RecordsBySentiment(_ context.Context, s models.Sentiment) ([]models.FeedbackRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.records[s], nil
}

func TestLoadPatterns(t *testing.T) {
	t.Parallel()

	src := &fakeSource{records: map[models.Sentiment][]models.FeedbackRecord{
		models.SentimentPositive: {record("p", "woodworking joinery", "Shop")},
	}}

	p, err := LoadPatterns(context.Background(), src)
	if err != nil {
		t.Fatalf("LoadPatterns() error = %v", err)
	}
	if _, ok := p.PositiveKeywords["joinery"]; !ok {
		t.Error("PositiveKeywords missing joinery")
	}
	if len(p.NegativeKeywords) != 0 {
		t.Errorf("NegativeKeywords = %v, want empty", p.NegativeKeywords)
	}

	// A second load sees new feedback.
	src.records[models.SentimentNegative] = []models.FeedbackRecord{record("n", "drama reaction", "")}
	p, err = LoadPatterns(context.Background(), src)
	if err != nil {
		t.Fatalf("LoadPatterns() error = %v", err)
	}
	if _, ok := p.NegativeKeywords["drama"]; !ok {
		t.Error("second load did not pick up new negative feedback")
	}
	if src.calls != 4 {
		t.Errorf("source calls = %d, want 4", src.calls)
	}
}

func TestLoadPatterns_Error(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	if _, err := LoadPatterns(context.Background(), &fakeSource{err: boom}); !errors.Is(err, boom) {
		t.Errorf("LoadPatterns() error = %v, want %v", err, boom)
	}
}
