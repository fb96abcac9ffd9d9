// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package models

import "time"

// Sentiment is a binary preference label. SentimentNone is only ever
// returned by lookups; it is never stored.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNone     Sentiment = "none"
)

// Valid reports whether s can be stored.
func (s Sentiment) Valid() bool {
	return s == SentimentPositive || s == SentimentNegative
}

// Metadata is the snapshot of item fields captured when a label is
// recorded. Every field is optional and may be stale relative to the live
// item.
type Metadata struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	ChannelName *string `json:"channelName,omitempty"`
	PublishedAt *string `json:"publishedAt,omitempty"`
	ViewCount   *string `json:"viewCount,omitempty"`
	LikeCount   *string `json:"likeCount,omitempty"`
	URL         *string `json:"url,omitempty"`
}

// MetadataFromItem snapshots the metadata fields of an item.
func MetadataFromItem(item *Item) Metadata {
	m := Metadata{
		Title:       Ptr(item.Title),
		Description: Ptr(item.Description),
		ChannelName: Ptr(item.ChannelName),
		ViewCount:   item.ViewCount,
		LikeCount:   item.LikeCount,
	}
	if item.PublishedAt != "" {
		m.PublishedAt = Ptr(item.PublishedAt)
	}
	if item.CanonicalURL != "" {
		m.URL = Ptr(item.CanonicalURL)
	}
	return m
}

// FeedbackRecord is the stored label for one item id.
type FeedbackRecord struct {
	ID         string    `json:"id"`
	Sentiment  Sentiment `json:"sentiment"`
	Metadata   Metadata  `json:"metadata"`
	RecordedAt time.Time `json:"recordedAt"`
}

// AsItem rebuilds an Item from the metadata snapshot so the record can be
// fed through the same scoring code as live items. Absent text fields
// become empty strings; absent counts stay absent.
func (r *FeedbackRecord) AsItem() Item {
	m := r.Metadata
	return Item{
		ID:           r.ID,
		Title:        deref(m.Title),
		Description:  deref(m.Description),
		ChannelName:  deref(m.ChannelName),
		PublishedAt:  deref(m.PublishedAt),
		ViewCount:    m.ViewCount,
		LikeCount:    m.LikeCount,
		CanonicalURL: deref(m.URL),
	}
}

// FeedbackCounts holds the number of stored labels per sentiment.
type FeedbackCounts struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
