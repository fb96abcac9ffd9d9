// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

/*
Package pipeline turns raw candidates into the list shown to the user.

Steps, in order:

 1. exclude: drop every item that already has feedback
 2. filter: keep items whose heuristic score clears the threshold (optional)
 3. truncate: cut to MaxResults
 4. rank: order by the preference model, highest first, when one is trained

Every step is best effort. A step that fails is logged, counted in
sifter_pipeline_degraded_steps_total and skipped, so its input flows on
unchanged. Steps that depend on storage run behind a circuit breaker: after
repeated failures the step is skipped without calling the dependency until
the breaker timeout passes.
*/
package pipeline
