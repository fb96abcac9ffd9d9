// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package models

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Item is a candidate piece of content.
type Item struct {
	ID           string  `json:"id" validate:"required,notblank"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	ThumbnailRef string  `json:"thumbnailRef,omitempty"`
	ChannelName  string  `json:"channelName"`
	PublishedAt  string  `json:"publishedAt,omitempty"`
	ViewCount    *string `json:"viewCount,omitempty"`
	LikeCount    *string `json:"likeCount,omitempty"`
	CanonicalURL string  `json:"canonicalUrl,omitempty"`
}

// Views returns the parsed view count. ok is false when the count is
// absent or not a number.
func (i *Item) Views() (float64, bool) {
	return parseCount(i.ViewCount)
}

// Likes returns the parsed like count. ok is false when the count is
// absent or not a number.
func (i *Item) Likes() (float64, bool) {
	return parseCount(i.LikeCount)
}

func parseCount(s *string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(*s), 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// PoolEntry is an Item admitted to the content pool.
type PoolEntry struct {
	Item
	InsertedAt time.Time `json:"insertedAt"`
}

// PoolStatus summarizes the content pool.
type PoolStatus struct {
	Count                int        `json:"count"`
	MostRecentInsertedAt *time.Time `json:"mostRecentInsertedAt"`
}

// Ptr returns a pointer to v. Used for optional fields.
func Ptr[T any](v T) *T {
	return &v
}

// Items extracts the Items of a slice of pool entries, preserving order.
func Items(entries []PoolEntry) []Item {
	out := make([]Item, len(entries))
	for i := range entries {
		out[i] = entries[i].Item
	}
	return out
}
