// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package filter

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tomtom215/sifter/internal/models"
)

const (
	minKeywordLength = 3
	minBigramLength  = 5
)

var stopWords = toSet([]string{
	"the", "and", "for", "are", "but", "not", "you", "all", "any", "can",
	"had", "her", "was", "one", "our", "out", "has", "him", "his", "how",
	"its", "may", "new", "now", "see", "who", "did", "get", "got", "let",
	"she", "too", "use", "this", "that", "with", "have", "from", "they",
	"will", "your", "what", "when", "make", "just", "over", "such", "into",
	"than", "them", "then", "some", "these", "would", "there", "their",
	"about", "which", "were", "been", "more", "also", "here", "video",
})

// Patterns are keyword and channel sets mined from labeled feedback.
type Patterns struct {
	PositiveKeywords map[string]struct{}
	NegativeKeywords map[string]struct{}
	PositiveChannels map[string]struct{}
	NegativeChannels map[string]struct{}
}

// EmptyPatterns returns patterns that match nothing.
func EmptyPatterns() *Patterns {
	return &Patterns{
		PositiveKeywords: map[string]struct{}{},
		NegativeKeywords: map[string]struct{}{},
		PositiveChannels: map[string]struct{}{},
		NegativeChannels: map[string]struct{}{},
	}
}

// FeedbackSource reads labeled records. *feedback.Store implements it.
type FeedbackSource interface {
	RecordsBySentiment(ctx context.Context, sentiment models.Sentiment) ([]models.FeedbackRecord, error)
}

// LoadPatterns mines patterns from the current feedback. Nothing is cached:
// every call reflects the store as it is now.
func LoadPatterns(ctx context.Context, src FeedbackSource) (*Patterns, error) {
	positive, err := src.RecordsBySentiment(ctx, models.SentimentPositive)
	if err != nil {
		return nil, fmt.Errorf("load positive feedback: %w", err)
	}
	negative, err := src.RecordsBySentiment(ctx, models.SentimentNegative)
	if err != nil {
		return nil, fmt.Errorf("load negative feedback: %w", err)
	}
	return MinePatterns(positive, negative), nil
}

// MinePatterns builds keyword and channel sets from labeled records.
func MinePatterns(positive, negative []models.FeedbackRecord) *Patterns {
	p := EmptyPatterns()
	collect(positive, p.PositiveKeywords, p.PositiveChannels)
	collect(negative, p.NegativeKeywords, p.NegativeChannels)
	return p
}

func collect(records []models.FeedbackRecord, keywords, channels map[string]struct{}) {
	for i := range records {
		m := records[i].Metadata
		for _, kw := range ExtractKeywords(deref(m.Title) + " " + deref(m.Description)) {
			keywords[kw] = struct{}{}
		}
		if m.ChannelName != nil && *m.ChannelName != "" {
			channels[*m.ChannelName] = struct{}{}
		}
	}
}

// ExtractKeywords returns the distinct keywords of text in first-seen order:
// lowercase words of at least three characters that are not stop words,
// plus every adjacent-word bigram of at least five characters.
func ExtractKeywords(text string) []string {
	raw := strings.Fields(strings.ToLower(text))
	words := make([]string, 0, len(raw))
	for _, w := range raw {
		if w = trimPunct(w); w != "" {
			words = append(words, w)
		}
	}

	seen := make(map[string]struct{}, 2*len(words))
	out := make([]string, 0, 2*len(words))
	add := func(k string) {
		if _, dup := seen[k]; dup {
			return
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}

	for _, w := range words {
		if utf8.RuneCountInString(w) < minKeywordLength {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		add(w)
	}
	for i := 0; i+1 < len(words); i++ {
		bigram := words[i] + " " + words[i+1]
		if utf8.RuneCountInString(bigram) >= minBigramLength {
			add(bigram)
		}
	}
	return out
}

// Match counts how many of the item's keywords fall in each keyword set.
type Match struct {
	Keywords        int
	PositiveHits    int
	NegativeHits    int
	PositiveChannel bool
	NegativeChannel bool
}

// MatchItem compares an item's keywords and channel against the patterns.
func (p *Patterns) MatchItem(item *models.Item) Match {
	keywords := ExtractKeywords(item.Title + " " + item.Description)
	m := Match{Keywords: len(keywords)}
	for _, kw := range keywords {
		if _, ok := p.PositiveKeywords[kw]; ok {
			m.PositiveHits++
		}
		if _, ok := p.NegativeKeywords[kw]; ok {
			m.NegativeHits++
		}
	}
	if item.ChannelName != "" {
		_, m.PositiveChannel = p.PositiveChannels[item.ChannelName]
		_, m.NegativeChannel = p.NegativeChannels[item.ChannelName]
	}
	return m
}

func trimPunct(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
