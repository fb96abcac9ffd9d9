// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package filter

import (
	"fmt"
	"math"
	"sync/atomic"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/tomtom215/sifter/internal/metrics"
	"github.com/tomtom215/sifter/internal/models"
)

// DefaultThreshold is the minimum score an authentic item needs.
const DefaultThreshold = 0.4

const (
	baseScore         = 0.5
	maxPatternShift   = 0.15
	patternStep       = 0.03
	channelMatchHits  = 2
	shortTitleRunes   = 10
	longTitleRunes    = 100
	officialBonus     = 0.05
	cleanTitleBonus   = 0.1
	shortTitlePenalty = 0.1
	longTitlePenalty  = 0.05
)

// Assessment is the outcome of scoring one item.
type Assessment struct {
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}

// IsAuthentic reports whether the assessment clears threshold.
func (a Assessment) IsAuthentic(threshold float64) bool {
	return a.Score >= threshold
}

// Score rates how authentic an item looks, in [0,1]. A nil patterns value
// disables the feedback adjustment.
func Score(item *models.Item, patterns *Patterns) Assessment {
	score := baseScore
	reasons := make([]string, 0, 4)
	adjust := func(delta float64, format string, args ...interface{}) {
		score += delta
		reasons = append(reasons, fmt.Sprintf(format, args...)+fmt.Sprintf(" (%+.2f)", delta))
	}

	switch cb := ClickbaitScore(item.Title); {
	case cb > 0.3:
		adjust(-0.4*cb, "clickbait title")
	case cb < 0.1:
		adjust(cleanTitleBonus, "clean title")
	}

	if q := DescriptionQuality(item.Description); q != 0.5 {
		adjust((q-0.5)*0.2, "description quality %.2f", q)
	}
	if e := EngagementScore(item); e != 0.5 {
		adjust((e-0.5)*0.2, "engagement %.2f", e)
	}

	if IsOfficialChannel(item.ChannelName) {
		adjust(officialBonus, "official channel")
	}

	switch n := utf8.RuneCountInString(item.Title); {
	case n < shortTitleRunes:
		adjust(-shortTitlePenalty, "title too short")
	case n > longTitleRunes:
		adjust(-longTitlePenalty, "title unusually long")
	}

	if patterns != nil {
		m := patterns.MatchItem(item)
		pos, neg := m.PositiveHits, m.NegativeHits
		if m.PositiveChannel {
			pos += channelMatchHits
		}
		if m.NegativeChannel {
			neg += channelMatchHits
		}
		switch {
		case pos > neg:
			adjust(math.Min(maxPatternShift, patternStep*float64(pos-neg)), "resembles liked content")
		case neg > pos:
			adjust(-math.Min(maxPatternShift, patternStep*float64(neg-pos)), "resembles disliked content")
		}
	}

	return Assessment{Score: clamp01(score), Reasons: reasons}
}

// Filter keeps the items whose authenticity score clears a threshold.
type Filter struct {
	threshold atomic.Uint64 // math.Float64bits
	logger    zerolog.Logger
}

// New creates a filter. A threshold outside [0,1] falls back to
// DefaultThreshold.
func New(threshold float64, logger zerolog.Logger) *Filter {
	if !validThreshold(threshold) {
		threshold = DefaultThreshold
	}
	f := &Filter{logger: logger.With().Str("component", "filter").Logger()}
	f.threshold.Store(math.Float64bits(threshold))
	return f
}

func validThreshold(t float64) bool {
	return t >= 0 && t <= 1
}

// Threshold returns the configured default threshold.
func (f *Filter) Threshold() float64 {
	return math.Float64frombits(f.threshold.Load())
}

// SetThreshold replaces the default threshold used by Apply and reported to
// callers. Values outside [0,1] are ignored and reported as false.
func (f *Filter) SetThreshold(threshold float64) bool {
	if !validThreshold(threshold) {
		return false
	}
	if old := math.Float64frombits(f.threshold.Swap(math.Float64bits(threshold))); old != threshold {
		f.logger.Info().Float64("from", old).Float64("to", threshold).Msg("Filter threshold changed")
	}
	return true
}

// Apply returns the items scoring at least the configured threshold, in
// their original order.
func (f *Filter) Apply(items []models.Item, patterns *Patterns) []models.Item {
	return f.ApplyThreshold(items, patterns, f.Threshold())
}

// ApplyThreshold is Apply with an explicit threshold.
func (f *Filter) ApplyThreshold(items []models.Item, patterns *Patterns, threshold float64) []models.Item {
	kept := make([]models.Item, 0, len(items))
	for i := range items {
		if Score(&items[i], patterns).IsAuthentic(threshold) {
			kept = append(kept, items[i])
		}
	}

	rejected := len(items) - len(kept)
	metrics.RecordFilterPass(len(items), rejected)
	if rejected > 0 {
		f.logger.Debug().
			Int("assessed", len(items)).
			Int("rejected", rejected).
			Float64("threshold", threshold).
			Msg("Filtered inauthentic items")
	}
	return kept
}
