// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package pool

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query string
		want  []string
	}{
		{"Go Concurrency Patterns", []string{"go", "concurrency", "patterns"}},
		{"rust, go & zig!", []string{"rust", "go", "zig"}},
		{"a b c", []string{}},
		{"go GO Go", []string{"go"}},
		{"   ", []string{}},
		{"café crème", []string{"café", "crème"}},
		{"top-10 lists", []string{"top", "10", "lists"}},
	}
	for _, tt := range tests {
		if got := Tokenize(tt.query); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestNormalizeTerms(t *testing.T) {
	t.Parallel()

	got := normalizeTerms([]string{" Go ", "x", "", "go", "ÉTÉ"})
	want := []string{"go", "été"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("normalizeTerms() = %v, want %v", got, want)
	}
}
