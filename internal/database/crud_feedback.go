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

const feedbackColumns = `id, sentiment, title, description, channel_name, published_at,
	view_count, like_count, url, recorded_at`

// sentimentBatchSize bounds the IN list of a single lookup query.
const sentimentBatchSize = 500

// UpsertFeedback inserts a record or replaces the stored one for the same id.
func (db *DB) UpsertFeedback(ctx context.Context, rec *models.FeedbackRecord) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	m := rec.Metadata
	start := time.Now()
	_, err := db.conn.ExecContext(ctx, `INSERT INTO feedback (`+feedbackColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			sentiment = excluded.sentiment,
			title = excluded.title,
			description = excluded.description,
			channel_name = excluded.channel_name,
			published_at = excluded.published_at,
			view_count = excluded.view_count,
			like_count = excluded.like_count,
			url = excluded.url,
			recorded_at = excluded.recorded_at`,
		rec.ID, string(rec.Sentiment),
		nullable(m.Title), nullable(m.Description), nullable(m.ChannelName), nullable(m.PublishedAt),
		nullable(m.ViewCount), nullable(m.LikeCount), nullable(m.URL),
		rec.RecordedAt.UnixNano())
	observe("UPSERT", "feedback", start, err)
	if err != nil {
		return fmt.Errorf("failed to upsert feedback %s: %w", rec.ID, err)
	}
	return nil
}

// DeleteFeedback removes the record for id. Reports whether a row existed.
func (db *DB) DeleteFeedback(ctx context.Context, id string) (bool, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	res, err := db.conn.ExecContext(ctx, `DELETE FROM feedback WHERE id = ?`, id)
	observe("DELETE", "feedback", start, err)
	if err != nil {
		return false, fmt.Errorf("failed to delete feedback %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

// GetFeedback returns the record for id, or ErrNotFound.
func (db *DB) GetFeedback(ctx context.Context, id string) (*models.FeedbackRecord, error) {
	records, err := db.queryFeedback(ctx, `SELECT `+feedbackColumns+` FROM feedback WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return &records[0], nil
}

// FeedbackBySentiment returns every record with the given sentiment,
// oldest first.
func (db *DB) FeedbackBySentiment(ctx context.Context, sentiment models.Sentiment) ([]models.FeedbackRecord, error) {
	return db.queryFeedback(ctx,
		`SELECT `+feedbackColumns+` FROM feedback WHERE sentiment = ? ORDER BY recorded_at, id`,
		string(sentiment))
}

// FeedbackIDsBySentiment returns the ids labeled with the given sentiment.
func (db *DB) FeedbackIDsBySentiment(ctx context.Context, sentiment models.Sentiment) ([]string, error) {
	return db.queryIDs(ctx, `SELECT id FROM feedback WHERE sentiment = ? ORDER BY id`, string(sentiment))
}

// LabeledFeedbackIDs returns every id that has a feedback record.
func (db *DB) LabeledFeedbackIDs(ctx context.Context) ([]string, error) {
	return db.queryIDs(ctx, `SELECT id FROM feedback ORDER BY id`)
}

// FeedbackSentiments returns the stored sentiment for each id that has
// one. Unknown ids are absent from the result.
func (db *DB) FeedbackSentiments(ctx context.Context, ids []string) (map[string]models.Sentiment, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	out := make(map[string]models.Sentiment, len(ids))
	for lo := 0; lo < len(ids); lo += sentimentBatchSize {
		hi := lo + sentimentBatchSize
		if hi > len(ids) {
			hi = len(ids)
		}
		if err := db.sentimentChunk(ctx, ids[lo:hi], out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (db *DB) sentimentChunk(ctx context.Context, ids []string, out map[string]models.Sentiment) (err error) {
	start := time.Now()
	defer func() { observe("SELECT", "feedback", start, err) }()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, sentiment FROM feedback WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return fmt.Errorf("failed to query sentiments: %w", err)
	}
	defer closeWithLog(rows, "rows")

	for rows.Next() {
		var id, sentiment string
		if err := rows.Scan(&id, &sentiment); err != nil {
			return fmt.Errorf("failed to scan sentiment: %w", err)
		}
		out[id] = models.Sentiment(sentiment)
	}
	return rows.Err()
}

// FeedbackCounts returns how many records carry each sentiment.
func (db *DB) FeedbackCounts(ctx context.Context) (models.FeedbackCounts, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	var counts models.FeedbackCounts
	err := db.conn.QueryRowContext(ctx, `SELECT
		CAST(COALESCE(SUM(CASE WHEN sentiment = 'positive' THEN 1 ELSE 0 END), 0) AS BIGINT),
		CAST(COALESCE(SUM(CASE WHEN sentiment = 'negative' THEN 1 ELSE 0 END), 0) AS BIGINT)
		FROM feedback`).Scan(&counts.Positive, &counts.Negative)
	observe("SELECT", "feedback", start, err)
	if err != nil {
		return models.FeedbackCounts{}, fmt.Errorf("failed to count feedback: %w", err)
	}
	return counts, nil
}

func (db *DB) queryFeedback(ctx context.Context, query string, args ...interface{}) (records []models.FeedbackRecord, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { observe("SELECT", "feedback", start, err) }()

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer closeWithLog(rows, "rows")

	for rows.Next() {
		var rec models.FeedbackRecord
		var sentiment string
		var title, description, channel, published, views, likes, url sql.NullString
		var recordedAt int64
		if err := rows.Scan(&rec.ID, &sentiment, &title, &description, &channel, &published,
			&views, &likes, &url, &recordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		rec.Sentiment = models.Sentiment(sentiment)
		rec.Metadata = models.Metadata{
			Title:       fromNullable(title),
			Description: fromNullable(description),
			ChannelName: fromNullable(channel),
			PublishedAt: fromNullable(published),
			ViewCount:   fromNullable(views),
			LikeCount:   fromNullable(likes),
			URL:         fromNullable(url),
		}
		rec.RecordedAt = time.Unix(0, recordedAt).UTC()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feedback: %w", err)
	}
	return records, nil
}

func (db *DB) queryIDs(ctx context.Context, query string, args ...interface{}) (ids []string, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { observe("SELECT", "feedback", start, err) }()

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback ids: %w", err)
	}
	defer closeWithLog(rows, "rows")

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan feedback id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feedback ids: %w", err)
	}
	return ids, nil
}

// IsNotFound reports whether err is ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
