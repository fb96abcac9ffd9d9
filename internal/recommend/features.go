// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package recommend

import (
	"math"
	"unicode/utf8"

	"github.com/tomtom215/sifter/internal/filter"
	"github.com/tomtom215/sifter/internal/models"
)

// FeatureNames is the order of the model's inputs and weights.
var FeatureNames = [...]string{
	"clickbait",
	"descriptionQuality",
	"engagement",
	"titleLengthNorm",
	"positiveKeywordOverlapRatio",
	"negativeKeywordOverlapRatio",
	"positiveChannelMatch",
	"negativeChannelMatch",
	"descriptionLengthNorm",
	"engagementLikeRatioNorm",
}

// NumFeatures is the length of every feature vector.
const NumFeatures = len(FeatureNames)

// Features computes the input vector for item. patterns may be nil.
func Features(item *models.Item, patterns *filter.Patterns) []float64 {
	if patterns == nil {
		patterns = filter.EmptyPatterns()
	}
	m := patterns.MatchItem(item)
	total := float64(max(1, m.Keywords))

	return []float64{
		filter.ClickbaitScore(item.Title),
		filter.DescriptionQuality(item.Description),
		filter.EngagementScore(item),
		math.Min(1, float64(utf8.RuneCountInString(item.Title))/100),
		math.Min(1, float64(m.PositiveHits)/total),
		math.Min(1, float64(m.NegativeHits)/total),
		indicator(m.PositiveChannel),
		indicator(m.NegativeChannel),
		math.Min(1, float64(utf8.RuneCountInString(item.Description))/500),
		filter.LikeRatioNorm(item),
	}
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
