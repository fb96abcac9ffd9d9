// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

// Package testinfra provides container helpers for integration tests.
//
// Everything here is behind the integration build tag and uses
// testcontainers-go, so a plain `go test ./...` never needs Docker:
//
//	go test -tags integration ./internal/kv/...
//
// Tests call SkipIfNoDocker first so they skip cleanly on machines
// without a Docker daemon. The first run pulls container images.
package testinfra
