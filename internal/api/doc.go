// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

/*
Package api provides the HTTP JSON surface of Sifter.

The API is a thin layer over the core packages. Handlers decode and
validate requests, call the feedback store, content pool, filter,
recommender or pipeline, and wrap the result in models.APIResponse.

Endpoints (all under /api/v1):

  - GET    /health                feedback, pool and model store checks
  - POST   /feedback              record a like or dislike
  - GET    /feedback              list records by sentiment
  - GET    /feedback/{id}         sentiment of one item
  - DELETE /feedback/{id}         remove a label
  - POST   /pool/items            admit items into the content pool
  - GET    /pool/search           raw pool search
  - GET    /pool/status           pool size and freshness
  - GET    /feed                  random pool sample through the pipeline
  - GET    /search                pool search through the pipeline
  - POST   /rank                  pipeline over caller-supplied candidates
  - POST   /filter/score          authenticity assessment of one item
  - POST   /model/train           train the preference model
  - GET    /model/status          stored model summary

Prometheus metrics are served at /metrics outside the versioned tree.

Middleware order: request ID, real IP, recoverer, access log, CORS, then per
group rate limiting, security headers, Prometheus request metrics and
response compression.
*/
package api
