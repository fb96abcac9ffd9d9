// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

// Package pool is the bounded local cache of candidate items.
//
// Items are admitted once per id and never updated. Each admitted entry is
// stamped with a strictly increasing insertedAt; when an admission batch
// pushes the pool past its bound, the oldest entries are evicted until the
// bound holds exactly. Reading an entry never refreshes its age.
package pool

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/sifter/internal/metrics"
	"github.com/tomtom215/sifter/internal/models"
	"github.com/tomtom215/sifter/internal/validation"
)

// MaxPoolSize is the default eviction bound.
const MaxPoolSize = 3000

// Scoring weights for SearchByTerms.
const (
	titleMatchWeight       = 2
	descriptionMatchWeight = 1
)

// ErrInvalidItem is returned when an item in a batch fails validation.
// The whole batch is rejected.
var ErrInvalidItem = errors.New("invalid item")

// Repository is the persistence the pool needs. *database.DB implements it.
type Repository interface {
	InsertPoolEntries(ctx context.Context, entries []models.PoolEntry, maxSize int) (admitted, evicted int, err error)
	MaxPoolInsertedAt(ctx context.Context) (int64, error)
	PoolEntriesMatching(ctx context.Context, terms []string) ([]models.PoolEntry, error)
	NewestPoolEntries(ctx context.Context, limit int) ([]models.PoolEntry, error)
	RandomPoolEntries(ctx context.Context, limit int) ([]models.PoolEntry, error)
	PoolStatus(ctx context.Context) (models.PoolStatus, error)
	ClearPool(ctx context.Context) (int, error)
}

// Pool is the content pool.
type Pool struct {
	repo    Repository
	maxSize int
	now     func() time.Time
	logger  zerolog.Logger

	// mu serializes admission so stamping and eviction see a consistent
	// pool. last is the most recently issued insertedAt in unix nanos.
	mu     sync.Mutex
	last   int64
	seeded bool
}

// New creates a pool over repo. maxSize <= 0 selects MaxPoolSize.
func New(repo Repository, maxSize int, logger zerolog.Logger) *Pool {
	if maxSize <= 0 {
		maxSize = MaxPoolSize
	}
	return &Pool{
		repo:    repo,
		maxSize: maxSize,
		now:     time.Now,
		logger:  logger.With().Str("component", "pool").Logger(),
	}
}

// MaxSize returns the eviction bound.
func (p *Pool) MaxSize() int {
	return p.maxSize
}

// InsertMany admits items whose id is not already pooled and returns how
// many were newly admitted. Repeated ids within the batch count once.
func (p *Pool) InsertMany(ctx context.Context, items []models.Item) (int, error) {
	if err := validateItems(items); err != nil {
		return 0, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.insertLocked(ctx, items)
}

// Replace clears the pool and admits items as a single batch.
func (p *Pool) Replace(ctx context.Context, items []models.Item) (int, error) {
	if err := validateItems(items); err != nil {
		return 0, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	removed, err := p.repo.ClearPool(ctx)
	if err != nil {
		return 0, err
	}
	p.logger.Info().Int("removed", removed).Int("incoming", len(items)).Msg("Replacing pool contents")
	return p.insertLocked(ctx, items)
}

// Clear removes every entry and returns how many were removed.
func (p *Pool) Clear(ctx context.Context) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	removed, err := p.repo.ClearPool(ctx)
	if err != nil {
		return 0, err
	}
	metrics.SetPoolSize(0)
	p.logger.Info().Int("removed", removed).Msg("Pool cleared")
	return removed, nil
}

func (p *Pool) insertLocked(ctx context.Context, items []models.Item) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	if err := p.seed(ctx); err != nil {
		return 0, err
	}

	seen := make(map[string]struct{}, len(items))
	entries := make([]models.PoolEntry, 0, len(items))
	for i := range items {
		if _, dup := seen[items[i].ID]; dup {
			continue
		}
		seen[items[i].ID] = struct{}{}
		entries = append(entries, models.PoolEntry{Item: items[i], InsertedAt: p.nextTimestamp()})
	}

	admitted, evicted, err := p.repo.InsertPoolEntries(ctx, entries, p.maxSize)
	if err != nil {
		return 0, err
	}

	metrics.RecordPoolAdmission(admitted, evicted)
	p.logger.Debug().
		Int("offered", len(items)).
		Int("admitted", admitted).
		Int("evicted", evicted).
		Msg("Pool admission batch")
	return admitted, nil
}

// seed loads the newest stored timestamp once so stamps stay monotonic
// across restarts.
func (p *Pool) seed(ctx context.Context) error {
	if p.seeded {
		return nil
	}
	latest, err := p.repo.MaxPoolInsertedAt(ctx)
	if err != nil {
		return err
	}
	if latest > p.last {
		p.last = latest
	}
	p.seeded = true
	return nil
}

// nextTimestamp returns a time strictly after every stamp issued so far.
func (p *Pool) nextTimestamp() time.Time {
	n := p.now().UnixNano()
	if n <= p.last {
		n = p.last + 1
	}
	p.last = n
	return time.Unix(0, n).UTC()
}

// SearchByTerms returns up to limit entries whose title or description
// contains any of terms, case-insensitively. Each term found in the title
// scores 2 and in the description 1; equal scores keep insertion order.
// Terms shorter than two characters are ignored; when none remain the
// newest limit entries are returned instead.
func (p *Pool) SearchByTerms(ctx context.Context, terms []string, limit int) ([]models.PoolEntry, error) {
	if limit <= 0 {
		return []models.PoolEntry{}, nil
	}

	terms = normalizeTerms(terms)
	if len(terms) == 0 {
		return p.nonNil(p.repo.NewestPoolEntries(ctx, limit))
	}

	candidates, err := p.repo.PoolEntriesMatching(ctx, terms)
	if err != nil {
		return nil, err
	}

	type scored struct {
		entry models.PoolEntry
		score int
	}
	ranked := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if s := matchScore(c.Title, c.Description, terms); s > 0 {
			ranked = append(ranked, scored{entry: c, score: s})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]models.PoolEntry, len(ranked))
	for i := range ranked {
		out[i] = ranked[i].entry
	}
	return out, nil
}

// RandomSample returns up to limit entries in random order.
func (p *Pool) RandomSample(ctx context.Context, limit int) ([]models.PoolEntry, error) {
	if limit <= 0 {
		return []models.PoolEntry{}, nil
	}
	return p.nonNil(p.repo.RandomPoolEntries(ctx, limit))
}

// Status returns the entry count and newest admission time.
func (p *Pool) Status(ctx context.Context) (models.PoolStatus, error) {
	status, err := p.repo.PoolStatus(ctx)
	if err != nil {
		return models.PoolStatus{}, err
	}
	metrics.SetPoolSize(status.Count)
	return status, nil
}

func (p *Pool) nonNil(entries []models.PoolEntry, err error) ([]models.PoolEntry, error) {
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.PoolEntry{}
	}
	return entries, nil
}

func matchScore(title, description string, terms []string) int {
	title = strings.ToLower(title)
	description = strings.ToLower(description)

	score := 0
	for _, term := range terms {
		if strings.Contains(title, term) {
			score += titleMatchWeight
		}
		if strings.Contains(description, term) {
			score += descriptionMatchWeight
		}
	}
	return score
}

func validateItems(items []models.Item) error {
	for i := range items {
		if verr := validation.ValidateStruct(&items[i]); verr != nil {
			return fmt.Errorf("%w at index %d: %s", ErrInvalidItem, i, verr.Error())
		}
	}
	return nil
}
