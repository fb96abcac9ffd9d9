// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists config file locations in priority order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/sifter/config.yaml",
	"/etc/sifter/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:      "sqlite",
			Path:        "/data/sifter.db",
			BusyTimeout: 5 * time.Second,
		},
		ModelStore: ModelStoreConfig{
			Backend:   "badger",
			Path:      "/data/model",
			RedisAddr: "127.0.0.1:6379",
		},
		Pool: PoolConfig{
			MaxSize:        3000,
			FeedOversample: 3,
		},
		Filter: FilterConfig{
			Enabled:   true,
			Threshold: 0.4,
		},
		Model: ModelConfig{
			Epochs:         500,
			LearningRate:   0.1,
			EarlyStopEpoch: 100,
			EarlyStopLoss:  0.001,
			MinPerClass:    2,
		},
		Pipeline: PipelineConfig{
			DefaultMaxResults: 20,
			BreakerFailures:   5,
			BreakerTimeout:    30 * time.Second,
		},
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8088,
			Timeout: 30 * time.Second,
		},
		Security: SecurityConfig{
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf layers defaults, the config file and environment variables,
// then validates the result.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// ConfigFilePath returns the YAML file Load reads, or "" when none exists.
func ConfigFilePath() string {
	return findConfigFile()
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields turns comma-separated env values into string slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

var envMappings = map[string]string{
	"db_driver":       "database.driver",
	"db_path":         "database.path",
	"db_busy_timeout": "database.busy_timeout",

	"model_store_backend": "model_store.backend",
	"model_store_path":    "model_store.path",
	"redis_addr":          "model_store.redis_addr",
	"redis_password":      "model_store.redis_password",
	"redis_db":            "model_store.redis_db",

	"pool_max_size":        "pool.max_size",
	"pool_feed_oversample": "pool.feed_oversample",

	"filter_enabled":   "filter.enabled",
	"filter_threshold": "filter.threshold",

	"model_epochs":           "model.epochs",
	"model_learning_rate":    "model.learning_rate",
	"model_early_stop_epoch": "model.early_stop_epoch",
	"model_early_stop_loss":  "model.early_stop_loss",
	"model_min_per_class":    "model.min_per_class",

	"pipeline_default_max_results": "pipeline.default_max_results",
	"pipeline_breaker_failures":    "pipeline.breaker_failures",
	"pipeline_breaker_timeout":     "pipeline.breaker_timeout",

	"http_host":    "server.host",
	"http_port":    "server.port",
	"http_timeout": "server.timeout",

	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps known environment variables to config keys.
// Unmapped variables return "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// WatchConfigFile invokes callback whenever the file at path changes.
// The returned stop function ends the watch.
func WatchConfigFile(path string, callback func()) (stop func() error, err error) {
	provider := file.Provider(path)
	if err := provider.Watch(func(_ interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	}); err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	return provider.Unwatch, nil
}
