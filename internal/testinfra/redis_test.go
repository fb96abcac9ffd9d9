// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

//go:build integration

package testinfra

import (
	"context"
	"testing"
	"time"
)

func TestRedisContainer_Integration(t *testing.T) {
	SkipIfNoDocker(t)
	ctx := context.Background()

	redis, err := NewRedisContainer(ctx, WithRedisStartTimeout(90*time.Second))
	if err != nil {
		t.Fatalf("NewRedisContainer() error = %v", err)
	}
	TerminateOnCleanup(t, redis.Container)

	if redis.Addr == "" {
		t.Fatal("Addr is empty")
	}
	state, err := redis.Container.State(ctx)
	if err != nil {
		t.Fatalf("State() error = %v", err)
	}
	if !state.Running {
		t.Errorf("State.Status = %q, want running", state.Status)
	}
}

func TestRedisOptions(t *testing.T) {
	cfg := &redisConfig{}
	WithRedisImage("redis:6")(cfg)
	WithRedisStartTimeout(time.Second)(cfg)

	if cfg.image != "redis:6" || cfg.startTimeout != time.Second {
		t.Errorf("options not applied: %+v", cfg)
	}
}
