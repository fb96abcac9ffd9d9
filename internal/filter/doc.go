// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

/*
Package filter scores items for authenticity with fixed heuristics and
keyword patterns mined from the user's feedback.

Every item starts at 0.5. Adjustments:

  - clickbait title: -0.4 x clickbait score when above 0.3, +0.1 when below 0.1
  - description quality: (q - 0.5) x 0.2
  - engagement (like ratio): (e - 0.5) x 0.2
  - official channel: +0.05
  - title shorter than 10 characters: -0.1, longer than 100: -0.05
  - feedback patterns: up to +/-0.15, 0.03 per net keyword hit, channel hits count 2

The result is clamped to [0,1]. An item is authentic when its score is at
least the threshold (DefaultThreshold unless configured).

The sub-scores are exported because the recommender uses them as features.
Patterns are never cached: LoadPatterns mines them from the feedback store
on each call.
*/
package filter
