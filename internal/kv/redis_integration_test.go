// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

//go:build integration

package kv

import (
	"context"
	"errors"
	"testing"

	"github.com/tomtom215/sifter/internal/testinfra"
)

func TestRedisStore_Integration(t *testing.T) {
	addr := testinfra.StartRedis(t)

	s, err := OpenRedis(addr, "", 0)
	if err != nil {
		t.Fatalf("OpenRedis() error = %v", err)
	}
	runStoreContract(t, s)

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Set(context.Background(), "k", "v"); !errors.Is(err, ErrClosed) {
		t.Errorf("Set() after Close error = %v, want ErrClosed", err)
	}
}

func TestOpenRedis_Unreachable(t *testing.T) {
	if _, err := OpenRedis("127.0.0.1:1", "", 0); err == nil {
		t.Fatal("OpenRedis() should fail for an unreachable server")
	}
}
