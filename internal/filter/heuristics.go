// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package filter

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tomtom215/sifter/internal/models"
)

// ClickbaitPhrases are matched case-insensitively against titles.
var ClickbaitPhrases = []string{
	"you won't believe",
	"click here",
	"subscribe now",
	"one weird trick",
	"gone wrong",
	"shocking",
	"must see",
	"must watch",
	"insane",
	"not clickbait",
	"you need to see",
	"what happens next",
	"will shock you",
	"doctors hate",
}

var urlPattern = regexp.MustCompile(`(?i)https?://`)

// ClickbaitScore rates how clickbait-like a title is, in [0,1].
func ClickbaitScore(title string) float64 {
	score := 0.0

	if capsRatio(title) > 0.5 {
		score += 0.3
	}
	if emojiCount(title) > 2 {
		score += 0.2
	}

	lower := strings.ToLower(title)
	for _, phrase := range ClickbaitPhrases {
		if strings.Contains(lower, phrase) {
			score += 0.2
		}
	}

	if strings.Count(title, "!") > 2 || strings.Count(title, "?") > 2 {
		score += 0.1
	}
	return clamp01(score)
}

// DescriptionQuality rates a description in [0,1]; 0.5 is neutral.
func DescriptionQuality(description string) float64 {
	if strings.TrimSpace(description) == "" {
		return 0.3
	}

	quality := 0.5
	if utf8.RuneCountInString(description) > 200 {
		quality += 0.1
	}

	lower := strings.ToLower(description)
	if strings.Contains(lower, "subscribe") && strings.Contains(lower, "like") && strings.Contains(lower, "notification") {
		quality -= 0.2
	}
	if len(urlPattern.FindAllStringIndex(description, -1)) > 3 {
		quality -= 0.1
	}
	return clamp01(quality)
}

// EngagementScore rates the like-to-view ratio in [0,1]. Unknown counts
// are neutral (0.5).
func EngagementScore(item *models.Item) float64 {
	views, hasViews := item.Views()
	likes, hasLikes := item.Likes()

	switch {
	case !hasViews || !hasLikes:
		return 0.5
	case views == 0:
		return 0.3
	}

	ratio := likes / views
	switch {
	case ratio > 0.01:
		return 0.8
	case ratio > 0.005:
		return 0.6
	case ratio > 0.001:
		return 0.4
	default:
		return 0.2
	}
}

// LikeRatioNorm maps the like-to-view ratio onto [0,1], saturating at 1%.
// Unknown or zero-view counts give 0.5.
func LikeRatioNorm(item *models.Item) float64 {
	views, hasViews := item.Views()
	likes, hasLikes := item.Likes()
	if !hasViews || !hasLikes || views == 0 {
		return 0.5
	}
	return clamp01(likes / views * 100)
}

// IsOfficialChannel reports whether the channel name claims to be official.
func IsOfficialChannel(channel string) bool {
	lower := strings.ToLower(channel)
	return strings.Contains(lower, "official") && !strings.Contains(lower, "unofficial")
}

// capsRatio is the share of letters that are uppercase. No letters is 0.
func capsRatio(s string) float64 {
	letters, upper := 0, 0
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.IsUpper(r) {
			upper++
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(upper) / float64(letters)
}

func emojiCount(s string) int {
	n := 0
	for _, r := range s {
		if isEmoji(r) {
			n++
		}
	}
	return n
}

// isEmoji covers the pictographic blocks; modifiers and joiners are not
// counted.
func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF: // pictographs, emoticons, transport, supplemental
		return true
	case r >= 0x1F000 && r <= 0x1F2FF: // mahjong, cards, enclosed
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols, dingbats
		return true
	case r >= 0x2B00 && r <= 0x2BFF: // arrows, stars
		return true
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
