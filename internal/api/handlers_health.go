// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package api

import (
	"context"
	"net/http"
	"time"
)

const healthCheckTimeout = 2 * time.Second

// HealthStatus is the body of the health endpoints.
type HealthStatus struct {
	Status   string            `json:"status"`
	Version  string            `json:"version,omitempty"`
	Uptime   float64           `json:"uptimeSeconds"`
	Checks   map[string]string `json:"checks"`
	PoolSize *int              `json:"poolSize,omitempty"`
	Model    *bool             `json:"modelAvailable,omitempty"`
}

// Health reports dependency checks. It always answers 200; Status is
// "degraded" when a check fails.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	health := h.checkHealth(r.Context())

	if h.pool != nil {
		if st, err := h.pool.Status(r.Context()); err == nil {
			health.PoolSize = &st.Count
		}
	}
	if h.recommender != nil {
		available := h.recommender.IsAvailable(r.Context())
		health.Model = &available
	}

	respondSuccess(w, http.StatusOK, health, start)
}

// HealthLive is the liveness probe.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]string{"status": "alive"}, time.Now())
}

// HealthReady answers 503 until every dependency responds.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	health := h.checkHealth(r.Context())
	status := http.StatusOK
	if health.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	respondSuccess(w, status, health, start)
}

func (h *Handler) checkHealth(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	health := HealthStatus{
		Status:  "healthy",
		Version: h.version,
		Uptime:  time.Since(h.startTime).Seconds(),
		Checks:  make(map[string]string, 2),
	}
	for name, dep := range map[string]Pinger{"database": h.db, "model_store": h.modelStore} {
		if dep == nil {
			health.Checks[name] = "not configured"
			health.Status = "degraded"
			continue
		}
		if err := dep.Ping(ctx); err != nil {
			health.Checks[name] = "unreachable"
			health.Status = "degraded"
			continue
		}
		health.Checks[name] = "ok"
	}
	return health
}
