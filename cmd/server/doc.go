// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

/*
Command server runs the Sifter HTTP API.

Startup order:

 1. Configuration: koanf defaults, then the YAML file (CONFIG_PATH or the
    default locations), then environment variables.
 2. Logging: zerolog with the configured level and format.
 3. Relational store: SQLite (default) or DuckDB, holding the content pool
    and feedback records. Migrations run on open.
 4. Model store: badger, redis or in-memory key/value store holding the
    trained preference model.
 5. Core: feedback store, content pool, heuristic filter, recommender and
    the filter and rank pipeline.
 6. Supervisor tree: the HTTP server, plus a config file watcher that
    applies threshold and log level changes without a restart.

SIGINT and SIGTERM cancel the tree; in-flight requests get the server
timeout to finish before the stores are closed.

Example:

	export DB_PATH=/var/lib/sifter/sifter.db
	export MODEL_STORE_BACKEND=badger
	export MODEL_STORE_PATH=/var/lib/sifter/model
	./sifter
*/
package main
