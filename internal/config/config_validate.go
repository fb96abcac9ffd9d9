// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/sifter/internal/logging"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateDatabase,
		c.validateModelStore,
		c.validatePool,
		c.validateFilter,
		c.validateModel,
		c.validatePipeline,
		c.validateServer,
		c.validateSecurity,
		c.validateLogging,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateDatabase() error {
	switch c.Database.Driver {
	case "sqlite", "duckdb":
	default:
		return fmt.Errorf("database.driver must be sqlite or duckdb, got %q", c.Database.Driver)
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Database.BusyTimeout < 0 {
		return fmt.Errorf("database.busy_timeout must be non-negative")
	}
	return nil
}

func (c *Config) validateModelStore() error {
	switch c.ModelStore.Backend {
	case "memory":
	case "badger":
		if strings.TrimSpace(c.ModelStore.Path) == "" {
			return fmt.Errorf("model_store.path is required for the badger backend")
		}
	case "redis":
		if strings.TrimSpace(c.ModelStore.RedisAddr) == "" {
			return fmt.Errorf("model_store.redis_addr is required for the redis backend")
		}
		if c.ModelStore.RedisDB < 0 {
			return fmt.Errorf("model_store.redis_db must be non-negative")
		}
	default:
		return fmt.Errorf("model_store.backend must be badger, redis or memory, got %q", c.ModelStore.Backend)
	}
	return nil
}

func (c *Config) validatePool() error {
	if c.Pool.MaxSize < 1 {
		return fmt.Errorf("pool.max_size must be at least 1")
	}
	if c.Pool.FeedOversample < 1 {
		return fmt.Errorf("pool.feed_oversample must be at least 1")
	}
	return nil
}

func (c *Config) validateFilter() error {
	if c.Filter.Threshold < 0 || c.Filter.Threshold > 1 {
		return fmt.Errorf("filter.threshold must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateModel() error {
	if c.Model.Epochs < 1 {
		return fmt.Errorf("model.epochs must be at least 1")
	}
	if c.Model.LearningRate <= 0 {
		return fmt.Errorf("model.learning_rate must be positive")
	}
	if c.Model.EarlyStopEpoch < 0 {
		return fmt.Errorf("model.early_stop_epoch must be non-negative")
	}
	if c.Model.EarlyStopLoss < 0 {
		return fmt.Errorf("model.early_stop_loss must be non-negative")
	}
	if c.Model.MinPerClass < 1 {
		return fmt.Errorf("model.min_per_class must be at least 1")
	}
	return nil
}

func (c *Config) validatePipeline() error {
	if c.Pipeline.DefaultMaxResults < 1 {
		return fmt.Errorf("pipeline.default_max_results must be at least 1")
	}
	if c.Pipeline.BreakerFailures < 1 {
		return fmt.Errorf("pipeline.breaker_failures must be at least 1")
	}
	if c.Pipeline.BreakerTimeout <= 0 {
		return fmt.Errorf("pipeline.breaker_timeout must be positive")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("security.rate_limit_reqs must be at least 1")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("security.rate_limit_window must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("logging.level must be a level name such as debug, info or warn, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
