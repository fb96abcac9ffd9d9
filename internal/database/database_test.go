// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package database

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/sifter/internal/config"
	"github.com/tomtom215/sifter/internal/models"
)

// setupTestDB opens a private in-memory SQLite database with the full schema.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(&config.DatabaseConfig{
		Driver: DriverSQLite,
		Path:   MemoryPath,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return db
}

// entry builds a pool entry admitted at base+offset nanoseconds.
func entry(id string, offset int64) models.PoolEntry {
	return models.PoolEntry{
		Item: models.Item{
			ID:           id,
			Title:        "Title " + id,
			Description:  "Description of " + id,
			ChannelName:  "Channel",
			CanonicalURL: "https://example.com/watch?v=" + id,
		},
		InsertedAt: time.Unix(0, 1_700_000_000_000_000_000+offset),
	}
}

func entries(n int, startOffset int64) []models.PoolEntry {
	out := make([]models.PoolEntry, n)
	for i := range out {
		out[i] = entry(fmt.Sprintf("v%d", int64(i)+startOffset), int64(i)+startOffset)
	}
	return out
}

func ids(es []models.PoolEntry) []string {
	out := make([]string, len(es))
	for i := range es {
		out[i] = es[i].ID
	}
	return out
}

func TestNew_AppliesMigrations(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	version, err := db.GetCurrentSchemaVersion(ctx)
	if err != nil {
		t.Fatalf("GetCurrentSchemaVersion() error = %v", err)
	}
	want := len(getMigrations())
	if version != want {
		t.Errorf("schema version = %d, want %d", version, want)
	}

	history, err := db.GetMigrationHistory(ctx)
	if err != nil {
		t.Fatalf("GetMigrationHistory() error = %v", err)
	}
	if len(history) != want {
		t.Fatalf("history has %d entries, want %d", len(history), want)
	}
	for i, m := range history {
		if m.Version != i+1 {
			t.Errorf("history[%d].Version = %d, want %d", i, m.Version, i+1)
		}
		if m.AppliedAt.IsZero() {
			t.Errorf("history[%d].AppliedAt is zero", i)
		}
	}
}

func TestNew_ReopenFileKeepsDataAndSchema(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cfg := &config.DatabaseConfig{
		Driver:      DriverSQLite,
		Path:        filepath.Join(t.TempDir(), "nested", "sifter.db"),
		BusyTimeout: time.Second,
	}

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, _, err := db.InsertPoolEntries(ctx, entries(3, 0), 0); err != nil {
		t.Fatalf("InsertPoolEntries() error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := New(cfg)
	if err != nil {
		t.Fatalf("New() on existing file error = %v", err)
	}
	defer reopened.Close()

	status, err := reopened.PoolStatus(ctx)
	if err != nil {
		t.Fatalf("PoolStatus() error = %v", err)
	}
	if status.Count != 3 {
		t.Errorf("Count after reopen = %d, want 3", status.Count)
	}
	history, err := reopened.GetMigrationHistory(ctx)
	if err != nil {
		t.Fatalf("GetMigrationHistory() error = %v", err)
	}
	if len(history) != len(getMigrations()) {
		t.Errorf("migrations re-applied: history has %d entries", len(history))
	}
}

func TestNew_UnsupportedDriver(t *testing.T) {
	t.Parallel()

	_, err := New(&config.DatabaseConfig{Driver: "postgres", Path: MemoryPath})
	if err == nil {
		t.Fatal("New() should reject an unknown driver")
	}
}

func TestEscapeLike(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"plain":   "plain",
		"100%":    `100\%`,
		"a_b":     `a\_b`,
		`back\sl`: `back\\sl`,
	}
	for in, want := range tests {
		if got := escapeLike(in); got != want {
			t.Errorf("escapeLike(%q) = %q, want %q", in, got, want)
		}
	}
}
