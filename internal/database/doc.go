// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

/*
Package database owns the relational store behind the content pool and the
feedback store.

Two database/sql drivers are supported and selected by config:

  - "sqlite" (modernc.org/sqlite, pure Go, the default)
  - "duckdb" (github.com/duckdb/duckdb-go/v2, cgo)

Both run the same schema and the same SQL. The schema is created through
versioned migrations tracked in schema_migrations, so an existing database
file is upgraded in place on startup.

# Tables

	pool_entries   one row per admitted item, keyed by id, with inserted_at
	               stored as unix nanoseconds
	feedback       one row per labeled item id, with a metadata snapshot

Searchable text is stored twice: as supplied and case-folded
(title_folded, description_folded). Matching runs against the folded
columns so case-insensitive search behaves the same on both drivers.

# Concurrency

SQLite is opened with a single connection; database/sql serializes access
and busy_timeout covers other processes touching the file. DuckDB uses a
small connection pool. Callers that need read-then-write atomicity (pool
admission plus eviction) get it from the transaction helpers here.

# Metrics

Every query is timed and reported through metrics.RecordDBQuery with an
operation and table label.
*/
package database
