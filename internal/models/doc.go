// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

/*
Package models defines the data structures shared across Sifter.

Key Components:

  - Item: a candidate piece of content supplied by the search collaborator
  - PoolEntry / PoolStatus: an Item admitted to the content pool
  - Sentiment / Metadata / FeedbackRecord: a user label with its metadata snapshot
  - APIResponse: standard response envelope for the HTTP layer

Identity:

Item.ID is the sole identity key across every store. The pool, the feedback
table and the recommender never compare items by any other field.

Optional counts:

ViewCount and LikeCount are numeric strings that may be absent. A nil pointer
means "unknown", which is distinct from "0".
*/
package models
