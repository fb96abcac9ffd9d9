// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/sifter/internal/config"
	"github.com/tomtom215/sifter/internal/logging"
)

// ThresholdSetter is the part of the filter a reload updates.
type ThresholdSetter interface {
	SetThreshold(threshold float64) bool
}

// ConfigLoader reads the full configuration.
type ConfigLoader func() (*config.Config, error)

// WatchFunc starts watching path and returns a function that stops it.
type WatchFunc func(path string, onChange func()) (stop func() error, err error)

// ConfigReloadService applies live-tunable settings when the config file
// changes: the filter's default threshold and the log level. Everything else
// needs a restart.
type ConfigReloadService struct {
	path   string
	load   ConfigLoader
	filter ThresholdSetter
	watch  WatchFunc
	// limiter spaces reloads so an editor's save burst applies once.
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// minReloadInterval is the shortest gap between two reloads.
const minReloadInterval = time.Second

// NewConfigReloadService watches path with config.WatchConfigFile.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewConfigReloadService(path string, load ConfigLoader, filter ThresholdSetter, logger zerolog.Logger) *ConfigReloadService {
	return &ConfigReloadService{
		path:    path,
		load:    load,
		filter:  filter,
		watch:   config.WatchConfigFile,
		limiter: rate.NewLimiter(rate.Every(minReloadInterval), 1),
		logger:  logger.With().Str("service", "config-reload").Logger(),
	}
}

// Serve implements suture.Service. Bursts of file events collapse into one
// reload, and reloads run at most once per minReloadInterval.
func (s *ConfigReloadService) Serve(ctx context.Context) error {
	changes := make(chan struct{}, 1)
	stop, err := s.watch(s.path, func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return fmt.Errorf("config reload: %w", err)
	}
	defer func() {
		if err := stop(); err != nil {
			s.logger.Debug().Err(err).Msg("Stopping config watch")
		}
	}()

	s.logger.Info().Str("path", s.path).Msg("Watching config file")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changes:
			if err := s.limiter.Wait(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return fmt.Errorf("config reload: %w", err)
			}
			s.reload()
		}
	}
}

func (s *ConfigReloadService) reload() {
	cfg, err := s.load()
	if err != nil {
		s.logger.Warn().Err(err).Msg("Config reload failed, keeping current settings")
		return
	}

	if !s.filter.SetThreshold(cfg.Filter.Threshold) {
		s.logger.Warn().Float64("threshold", cfg.Filter.Threshold).Msg("Ignoring invalid filter threshold")
	}
	if cfg.Logging.Level != "" {
		zerolog.SetGlobalLevel(logging.ParseLevel(cfg.Logging.Level))
	}
	s.logger.Info().Msg("Config reloaded")
}

func (s *ConfigReloadService) String() string {
	return "config-reload"
}
