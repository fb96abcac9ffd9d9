// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

// Package kv provides the small string key-value store that holds the
// trained recommendation model.
//
// Three backends share the Store interface:
//
//   - badger: embedded, persistent (default)
//   - redis: shared, for deployments with more than one replica
//   - memory: process-local, for tests and throwaway runs
//
// A Set replaces the whole value for a key in a single write, so readers
// never observe a partially written value.
package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/sifter/internal/config"
)

// Backend names accepted by Open.
const (
	BackendBadger = "badger"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("kv store closed")

// Store is a string key-value store.
type Store interface {
	// Get returns the value for key. found is false when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping reports whether the backend is usable.
	Ping(ctx context.Context) error

	Close() error
}

// Open creates the store selected by cfg.Backend.
func Open(cfg *config.ModelStoreConfig) (Store, error) {
	switch cfg.Backend {
	case BackendBadger:
		return OpenBadger(cfg.Path)
	case BackendRedis:
		return OpenRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case BackendMemory, "":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unsupported model store backend %q", cfg.Backend)
	}
}
