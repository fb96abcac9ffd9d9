// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/sifter/internal/logging"
)

// Migration represents a versioned schema change.
type Migration struct {
	Version     int       // Unique version number (monotonically increasing)
	Name        string    // Human-readable migration name
	Description string    // What this migration does
	SQL         string    // Statement to execute
	AppliedAt   time.Time // Populated when read from schema_migrations
}

// applied_at is unix seconds so both drivers scan it the same way.
const schemaMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	applied_at BIGINT NOT NULL
);
`

// getMigrations returns all versioned migrations in order.
//
// Migrations MUST be append-only: never modify or remove one once a
// database has recorded it.
//
// feedback has no secondary index: DuckDB rejects ON CONFLICT DO UPDATE
// on indexed columns, and every feedback column is rewritten on upsert.
func getMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Name:        "create_pool_entries",
			Description: "Content pool keyed by item id",
			SQL: `CREATE TABLE IF NOT EXISTS pool_entries (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	thumbnail_ref TEXT NOT NULL,
	channel_name TEXT NOT NULL,
	published_at TEXT NOT NULL,
	view_count TEXT,
	like_count TEXT,
	canonical_url TEXT NOT NULL,
	title_folded TEXT NOT NULL,
	description_folded TEXT NOT NULL,
	inserted_at BIGINT NOT NULL
);`,
		},
		{
			Version:     2,
			Name:        "index_pool_inserted_at",
			Description: "Ordering index for eviction and newest-first reads",
			SQL:         `CREATE INDEX IF NOT EXISTS idx_pool_entries_inserted_at ON pool_entries (inserted_at);`,
		},
		{
			Version:     3,
			Name:        "create_feedback",
			Description: "One sentiment label per item id with a metadata snapshot",
			SQL: `CREATE TABLE IF NOT EXISTS feedback (
	id TEXT PRIMARY KEY,
	sentiment TEXT NOT NULL CHECK (sentiment IN ('positive', 'negative')),
	title TEXT,
	description TEXT,
	channel_name TEXT,
	published_at TEXT,
	view_count TEXT,
	like_count TEXT,
	url TEXT,
	recorded_at BIGINT NOT NULL
);`,
		},
	}
}

// runVersionedMigrations executes migrations that have not been applied yet.
// Each migration and its bookkeeping row commit together.
func (db *DB) runVersionedMigrations(ctx context.Context) error {
	if _, err := db.conn.ExecContext(ctx, schemaMigrationsTable); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := db.appliedVersions(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	newMigrations := 0
	for _, m := range getMigrations() {
		if applied[m.Version] {
			continue
		}

		err := db.withTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
				return fmt.Errorf("failed to execute migration v%d (%s): %w", m.Version, m.Name, err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO schema_migrations (version, name, description, applied_at) VALUES (?, ?, ?, ?)`,
				m.Version, m.Name, m.Description, time.Now().Unix()); err != nil {
				return fmt.Errorf("failed to record migration v%d: %w", m.Version, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		newMigrations++
	}

	if newMigrations > 0 {
		logging.Info().Int("count", newMigrations).Msg("Applied database migrations")
	}
	return nil
}

func (db *DB) appliedVersions(ctx context.Context) (map[int]bool, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer closeWithLog(rows, "rows")

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan migration row: %w", err)
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

// GetCurrentSchemaVersion returns the highest applied migration version.
func (db *DB) GetCurrentSchemaVersion(ctx context.Context) (int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var version int
	err := db.conn.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

// GetMigrationHistory returns all applied migrations in order.
func (db *DB) GetMigrationHistory(ctx context.Context) ([]Migration, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT version, name, COALESCE(description, ''), applied_at FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("failed to query migration history: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var history []Migration
	for rows.Next() {
		var m Migration
		var appliedAt int64
		if err := rows.Scan(&m.Version, &m.Name, &m.Description, &appliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan migration: %w", err)
		}
		m.AppliedAt = time.Unix(appliedAt, 0).UTC()
		history = append(history, m)
	}
	return history, rows.Err()
}
