// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/sifter/internal/kv"
	"github.com/tomtom215/sifter/internal/metrics"
)

// ArtifactCache holds the decoded artifact between trainings. Concurrent
// misses share one store read.
type ArtifactCache struct {
	store  kv.Store
	logger zerolog.Logger
	group  singleflight.Group

	mu         sync.Mutex
	artifact   *Artifact // nil with loaded set means "no model"
	loaded     bool
	generation uint64
}

// NewArtifactCache creates an empty cache over store.
func NewArtifactCache(store kv.Store, logger zerolog.Logger) *ArtifactCache {
	return &ArtifactCache{
		store:  store,
		logger: logger.With().Str("component", "model_cache").Logger(),
	}
}

// GetOrLoad returns the cached artifact, reading the store on a miss. A nil
// artifact with a nil error means no usable model exists.
func (c *ArtifactCache) GetOrLoad(ctx context.Context) (*Artifact, error) {
	c.mu.Lock()
	if c.loaded {
		a := c.artifact
		c.mu.Unlock()
		metrics.RecordModelCache(true)
		return a, nil
	}
	gen := c.generation
	c.mu.Unlock()
	metrics.RecordModelCache(false)

	v, err, _ := c.group.Do(ModelKey, func() (interface{}, error) {
		a, err := c.load(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		// An Invalidate during the read means a newer artifact may exist.
		if c.generation == gen {
			c.artifact = a
			c.loaded = true
		}
		c.mu.Unlock()
		return a, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Artifact), nil
}

// Invalidate drops the cached artifact so the next GetOrLoad reads the store.
func (c *ArtifactCache) Invalidate() {
	c.mu.Lock()
	c.artifact = nil
	c.loaded = false
	c.generation++
	c.mu.Unlock()
	c.group.Forget(ModelKey)
}

func (c *ArtifactCache) load(ctx context.Context) (*Artifact, error) {
	raw, found, err := c.store.Get(ctx, ModelKey)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}
	if !found {
		return nil, nil
	}

	a, err := decodeArtifact(raw)
	if errors.Is(err, ErrInvalidArtifact) {
		c.logger.Warn().Err(err).Msg("Ignoring unusable model artifact")
		return nil, nil
	}
	return a, err
}
