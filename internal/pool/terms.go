// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package pool

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinTermLength is the shortest search term, in characters, that is kept.
const MinTermLength = 2

// Tokenize splits a free-text query into lowercase search terms. Letters
// and digits form terms; everything else separates them. Short and
// repeated terms are dropped.
func Tokenize(query string) []string {
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return normalizeTerms(fields)
}

// normalizeTerms lowercases and trims terms, then drops short and
// repeated ones, keeping first-seen order.
func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if utf8.RuneCountInString(t) < MinTermLength {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
