// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package api

import "github.com/tomtom215/sifter/internal/models"

// maxResultsLimit bounds every limit and maxResults parameter.
const maxResultsLimit = 500

// FeedbackRequest is the body of POST /feedback.
type FeedbackRequest struct {
	ID        string          `json:"id" validate:"required,notblank,max=512"`
	Sentiment string          `json:"sentiment" validate:"required,oneof=positive negative"`
	Metadata  models.Metadata `json:"metadata"`
}

// FeedbackListRequest holds the query of GET /feedback.
type FeedbackListRequest struct {
	Sentiment string `json:"sentiment" validate:"required,oneof=positive negative"`
}

// FeedbackIDRequest holds the path parameter of /feedback/{id}.
type FeedbackIDRequest struct {
	ID string `json:"id" validate:"required,notblank,max=512"`
}

// PoolItemsRequest wraps the item array of POST /pool/items.
type PoolItemsRequest struct {
	Items []models.Item `json:"items" validate:"dive"`
}

// PoolSearchRequest holds the query of GET /pool/search.
type PoolSearchRequest struct {
	Query string `json:"q" validate:"max=500"`
	Limit int    `json:"limit" validate:"min=1,max=500"`
}

// DiscoveryRequest holds the query shared by GET /feed and GET /search.
// Query is only used by search.
type DiscoveryRequest struct {
	Query     string  `json:"q" validate:"max=500"`
	Limit     int     `json:"limit" validate:"min=1,max=500"`
	Filter    bool    `json:"filter"`
	Threshold float64 `json:"threshold" validate:"gte=0,lte=1"`
}

// RankRequest is the body of POST /rank. Omitted fields fall back to the
// configured defaults.
type RankRequest struct {
	Candidates         []models.Item `json:"candidates" validate:"max=5000,dive"`
	MaxResults         int           `json:"maxResults" validate:"min=0,max=500"`
	UseHeuristicFilter *bool         `json:"useHeuristicFilter"`
	Threshold          *float64      `json:"threshold" validate:"omitempty,gte=0,lte=1"`
}

// ScoreResponse is returned by POST /filter/score.
type ScoreResponse struct {
	ID        string   `json:"id"`
	Score     float64  `json:"score"`
	Reasons   []string `json:"reasons"`
	Threshold float64  `json:"threshold"`
	Authentic bool     `json:"authentic"`
}

// DiscoveryResponse is returned by the pipeline endpoints.
type DiscoveryResponse struct {
	Items      []models.Item `json:"items"`
	Count      int           `json:"count"`
	Candidates int           `json:"candidates"`
}
