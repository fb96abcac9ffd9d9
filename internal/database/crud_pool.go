// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/sifter/internal/models"
)

const poolColumns = `id, title, description, thumbnail_ref, channel_name, published_at,
	view_count, like_count, canonical_url, inserted_at`

// InsertPoolEntries admits entries whose id is not yet stored, then evicts
// the oldest rows until at most maxSize remain. maxSize <= 0 disables
// eviction. Both steps run in one transaction.
//
// Returns the number of rows admitted and evicted.
func (db *DB) InsertPoolEntries(ctx context.Context, entries []models.PoolEntry, maxSize int) (admitted, evicted int, err error) {
	if len(entries) == 0 {
		return 0, 0, nil
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { observe("INSERT", "pool_entries", start, err) }()

	err = db.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO pool_entries (`+poolColumns+`,
			title_folded, description_folded)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (id) DO NOTHING`)
		if err != nil {
			return fmt.Errorf("failed to prepare pool insert: %w", err)
		}
		defer closeWithLog(stmt, "prepared statement")

		for i := range entries {
			e := &entries[i]
			res, err := stmt.ExecContext(ctx,
				e.ID, e.Title, e.Description, e.ThumbnailRef, e.ChannelName, e.PublishedAt,
				nullable(e.ViewCount), nullable(e.LikeCount), e.CanonicalURL,
				e.InsertedAt.UnixNano(),
				strings.ToLower(e.Title), strings.ToLower(e.Description))
			if err != nil {
				return fmt.Errorf("failed to insert pool entry %s: %w", e.ID, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("failed to read rows affected: %w", err)
			}
			admitted += int(n)
		}

		if maxSize > 0 {
			evicted, err = evictOldest(ctx, tx, maxSize)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return admitted, evicted, nil
}

// evictOldest deletes every row older than the maxSize most recent ones.
// inserted_at is unique per row, so exactly maxSize rows survive.
func evictOldest(ctx context.Context, tx *sql.Tx, maxSize int) (int, error) {
	var cutoff int64
	err := tx.QueryRowContext(ctx,
		`SELECT inserted_at FROM pool_entries ORDER BY inserted_at DESC LIMIT 1 OFFSET ?`,
		maxSize).Scan(&cutoff)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to find eviction cutoff: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM pool_entries WHERE inserted_at <= ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to evict pool entries: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return int(n), nil
}

// MaxPoolInsertedAt returns the newest stored admission time in unix
// nanoseconds, or 0 for an empty pool.
func (db *DB) MaxPoolInsertedAt(ctx context.Context) (int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	var latest int64
	err := db.conn.QueryRowContext(ctx, `SELECT COALESCE(MAX(inserted_at), 0) FROM pool_entries`).Scan(&latest)
	observe("SELECT", "pool_entries", start, err)
	if err != nil {
		return 0, fmt.Errorf("failed to read newest admission time: %w", err)
	}
	return latest, nil
}

// PoolEntriesMatching returns every entry whose title or description
// contains at least one of the terms, oldest first. Terms must already be
// lower-cased.
func (db *DB) PoolEntriesMatching(ctx context.Context, terms []string) ([]models.PoolEntry, error) {
	if len(terms) == 0 {
		return nil, nil
	}

	clauses := make([]string, 0, len(terms))
	args := make([]interface{}, 0, 2*len(terms))
	for _, term := range terms {
		pattern := "%" + escapeLike(term) + "%"
		clauses = append(clauses, `title_folded LIKE ? ESCAPE '\' OR description_folded LIKE ? ESCAPE '\'`)
		args = append(args, pattern, pattern)
	}

	query := `SELECT ` + poolColumns + ` FROM pool_entries WHERE ` +
		strings.Join(clauses, " OR ") + ` ORDER BY inserted_at ASC`
	return db.queryPoolEntries(ctx, "SEARCH", query, args...)
}

// NewestPoolEntries returns up to limit entries, newest first.
func (db *DB) NewestPoolEntries(ctx context.Context, limit int) ([]models.PoolEntry, error) {
	if limit <= 0 {
		return nil, nil
	}
	return db.queryPoolEntries(ctx, "SELECT",
		`SELECT `+poolColumns+` FROM pool_entries ORDER BY inserted_at DESC LIMIT ?`, limit)
}

// RandomPoolEntries returns up to limit entries in random order.
func (db *DB) RandomPoolEntries(ctx context.Context, limit int) ([]models.PoolEntry, error) {
	if limit <= 0 {
		return nil, nil
	}
	return db.queryPoolEntries(ctx, "SAMPLE",
		`SELECT `+poolColumns+` FROM pool_entries ORDER BY RANDOM() LIMIT ?`, limit)
}

// PoolStatus returns the entry count and the newest admission time.
func (db *DB) PoolStatus(ctx context.Context) (models.PoolStatus, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	var count int
	var latest sql.NullInt64
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*), MAX(inserted_at) FROM pool_entries`).Scan(&count, &latest)
	observe("SELECT", "pool_entries", start, err)
	if err != nil {
		return models.PoolStatus{}, fmt.Errorf("failed to read pool status: %w", err)
	}

	status := models.PoolStatus{Count: count}
	if latest.Valid {
		t := time.Unix(0, latest.Int64).UTC()
		status.MostRecentInsertedAt = &t
	}
	return status, nil
}

// ClearPool deletes every pool entry and returns how many were removed.
func (db *DB) ClearPool(ctx context.Context) (int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	res, err := db.conn.ExecContext(ctx, `DELETE FROM pool_entries`)
	observe("DELETE", "pool_entries", start, err)
	if err != nil {
		return 0, fmt.Errorf("failed to clear pool: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return int(n), nil
}

func (db *DB) queryPoolEntries(ctx context.Context, operation, query string, args ...interface{}) (entries []models.PoolEntry, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { observe(operation, "pool_entries", start, err) }()

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pool entries: %w", err)
	}
	defer closeWithLog(rows, "rows")

	for rows.Next() {
		var e models.PoolEntry
		var views, likes sql.NullString
		var insertedAt int64
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.ThumbnailRef, &e.ChannelName,
			&e.PublishedAt, &views, &likes, &e.CanonicalURL, &insertedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pool entry: %w", err)
		}
		e.ViewCount = fromNullable(views)
		e.LikeCount = fromNullable(likes)
		e.InsertedAt = time.Unix(0, insertedAt).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pool entries: %w", err)
	}
	return entries, nil
}

// escapeLike escapes LIKE wildcards so a term matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullable(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
