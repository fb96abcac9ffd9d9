// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package main

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/sifter/internal/api"
	"github.com/tomtom215/sifter/internal/config"
	"github.com/tomtom215/sifter/internal/database"
	"github.com/tomtom215/sifter/internal/feedback"
	"github.com/tomtom215/sifter/internal/filter"
	"github.com/tomtom215/sifter/internal/kv"
	"github.com/tomtom215/sifter/internal/pipeline"
	"github.com/tomtom215/sifter/internal/pool"
	"github.com/tomtom215/sifter/internal/recommend"
)

// app holds the wired components and the resources main must close.
type app struct {
	db         *database.DB
	modelStore kv.Store
	filter     *filter.Filter
	handler    http.Handler
}

// newApp opens the stores and wires the core and the HTTP router.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func newApp(cfg *config.Config, logger zerolog.Logger) (*app, error) {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	modelStore, err := kv.Open(&cfg.ModelStore)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open model store: %w", err)
	}

	fb := feedback.NewStore(db, logger)
	contentPool := pool.New(db, cfg.Pool.MaxSize, logger)
	f := filter.New(cfg.Filter.Threshold, logger)
	rec := recommend.New(fb, modelStore, recommend.TrainConfigFrom(&cfg.Model), logger)
	p := pipeline.New(&cfg.Pipeline, fb, f, rec, logger)

	handler := api.NewHandler(api.Dependencies{
		DB:          db,
		ModelStore:  modelStore,
		Feedback:    fb,
		Pool:        contentPool,
		Filter:      f,
		Recommender: rec,
		Pipeline:    p,
		Config:      cfg,
		Version:     version,
	})
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(&cfg.Security)), logger)

	return &app{
		db:         db,
		modelStore: modelStore,
		filter:     f,
		handler:    router.SetupChi(),
	}, nil
}

// httpServer builds the server with the configured timeouts.
func (a *app) httpServer(cfg *config.ServerConfig) *http.Server {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:           http.TimeoutHandler(a.handler, timeout, `{"status":"error","error":{"code":"TIMEOUT","message":"request timed out"}}`),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout + 5*time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}

// Close releases the model store and the database.
func (a *app) Close() error {
	return errors.Join(a.modelStore.Close(), a.db.Close())
}
