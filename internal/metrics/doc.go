// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

/*
Package metrics exposes Prometheus instrumentation for Sifter.

All collectors are registered with the default registry through promauto
and served at /metrics by the API router:

	curl http://localhost:8088/metrics

# Available Metrics

Database:
  - sifter_db_query_duration_seconds (histogram; operation, table)
  - sifter_db_query_errors_total (counter; operation, table, error_type)

HTTP API:
  - sifter_api_requests_total (counter; method, endpoint, status_code)
  - sifter_api_request_duration_seconds (histogram; method, endpoint)
  - sifter_api_active_requests (gauge)
  - sifter_api_rate_limit_hits_total (counter; endpoint)

Content pool and feedback:
  - sifter_pool_entries (gauge)
  - sifter_pool_admitted_total, sifter_pool_evicted_total (counters)
  - sifter_feedback_writes_total (counter; operation)

Filtering, model and pipeline:
  - sifter_filter_assessed_total, sifter_filter_rejected_total (counters)
  - sifter_model_training_duration_seconds (histogram)
  - sifter_model_training_runs_total (counter; result)
  - sifter_model_training_samples, sifter_model_training_loss (gauges)
  - sifter_model_cache_total (counter; result)
  - sifter_pipeline_degraded_steps_total (counter; step)
  - sifter_pipeline_results (histogram)
  - sifter_circuit_breaker_state (gauge; name)
  - sifter_circuit_breaker_transitions_total (counter; name, from, to)

Helper functions such as RecordDBQuery and RecordTraining keep label
handling in one place; callers should prefer them over touching the
collectors directly.
*/
package metrics
