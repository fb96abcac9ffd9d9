// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

// Package config loads Sifter's configuration.
//
// Sources are layered with Koanf v2, highest priority last:
//
//  1. Built-in defaults (defaultConfig)
//  2. YAML config file (CONFIG_PATH, ./config.yaml, /etc/sifter/config.yaml)
//  3. Mapped environment variables (see envTransformFunc)
//
// The loaded Config is validated before it is returned.
package config

import "time"

// Config is the full application configuration.
type Config struct {
	Database   DatabaseConfig   `koanf:"database"`
	ModelStore ModelStoreConfig `koanf:"model_store"`
	Pool       PoolConfig       `koanf:"pool"`
	Filter     FilterConfig     `koanf:"filter"`
	Model      ModelConfig      `koanf:"model"`
	Pipeline   PipelineConfig   `koanf:"pipeline"`
	Server     ServerConfig     `koanf:"server"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// DatabaseConfig selects the relational store holding pool entries and
// feedback records.
//
// Environment Variables:
//   - DB_DRIVER: sqlite or duckdb (default: sqlite)
//   - DB_PATH: database file, or ":memory:" (default: /data/sifter.db)
//   - DB_BUSY_TIMEOUT: sqlite busy timeout (default: 5s)
type DatabaseConfig struct {
	Driver      string        `koanf:"driver"`
	Path        string        `koanf:"path"`
	BusyTimeout time.Duration `koanf:"busy_timeout"`
}

// ModelStoreConfig selects the key-value store holding the trained model.
//
// Environment Variables:
//   - MODEL_STORE_BACKEND: badger, redis or memory (default: badger)
//   - MODEL_STORE_PATH: badger directory (default: /data/model)
//   - REDIS_ADDR, REDIS_PASSWORD, REDIS_DB: redis connection
type ModelStoreConfig struct {
	Backend       string `koanf:"backend"`
	Path          string `koanf:"path"`
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`
}

// PoolConfig tunes the content pool.
type PoolConfig struct {
	// MaxSize is the eviction bound.
	// Default: 3000.
	MaxSize int `koanf:"max_size"`

	// FeedOversample multiplies the requested feed size when sampling the
	// pool, leaving room for exclusion and filtering.
	// Default: 3.
	FeedOversample int `koanf:"feed_oversample"`
}

// FilterConfig tunes the heuristic authenticity filter.
type FilterConfig struct {
	// Enabled is the default for requests that do not say otherwise.
	Enabled bool `koanf:"enabled"`

	// Threshold is the minimum score an item needs to be kept.
	// Default: 0.4.
	Threshold float64 `koanf:"threshold"`
}

// ModelConfig tunes logistic-regression training.
type ModelConfig struct {
	// Default: 500.
	Epochs int `koanf:"epochs"`

	// Default: 0.1.
	LearningRate float64 `koanf:"learning_rate"`

	// EarlyStopEpoch is the first epoch after which training may stop once
	// the mean log-loss drops below EarlyStopLoss. Zero disables early exit.
	// Default: 100.
	EarlyStopEpoch int `koanf:"early_stop_epoch"`

	// Default: 0.001.
	EarlyStopLoss float64 `koanf:"early_stop_loss"`

	// MinPerClass is the number of positive and of negative labels required.
	// Default: 2.
	MinPerClass int `koanf:"min_per_class"`
}

// PipelineConfig tunes the filter-and-rank pipeline.
type PipelineConfig struct {
	// DefaultMaxResults applies when a request omits maxResults.
	// Default: 20.
	DefaultMaxResults int `koanf:"default_max_results"`

	// BreakerFailures is the consecutive failure count that opens a step's
	// circuit breaker.
	// Default: 5.
	BreakerFailures uint32 `koanf:"breaker_failures"`

	// BreakerTimeout is how long an open breaker skips its step.
	// Default: 30s.
	BreakerTimeout time.Duration `koanf:"breaker_timeout"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// SecurityConfig holds HTTP hardening settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Load reads configuration from defaults, config file and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
