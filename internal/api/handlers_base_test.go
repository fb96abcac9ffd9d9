// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/sifter/internal/config"
	"github.com/tomtom215/sifter/internal/database"
	"github.com/tomtom215/sifter/internal/feedback"
	"github.com/tomtom215/sifter/internal/filter"
	"github.com/tomtom215/sifter/internal/kv"
	"github.com/tomtom215/sifter/internal/models"
	"github.com/tomtom215/sifter/internal/pipeline"
	"github.com/tomtom215/sifter/internal/pool"
	"github.com/tomtom215/sifter/internal/recommend"
)

// envelope mirrors models.APIResponse with the payload left raw.
type envelope struct {
	Status   string                  `json:"status"`
	Data     json.RawMessage         `json:"data"`
	Metadata models.ResponseMetadata `json:"metadata"`
	Error    *models.APIError        `json:"error"`
}

type testServer struct {
	handler  http.Handler
	feedback *feedback.Store
	pool     *pool.Pool
}

func testConfig() *config.Config {
	return &config.Config{
		Pool:     config.PoolConfig{MaxSize: 100, FeedOversample: 3},
		Filter:   config.FilterConfig{Enabled: false, Threshold: filter.DefaultThreshold},
		Pipeline: config.PipelineConfig{DefaultMaxResults: 20, BreakerFailures: 5, BreakerTimeout: time.Minute},
		Security: config.SecurityConfig{RateLimitDisabled: true},
	}
}

// newTestServer wires the full stack over an in-memory SQLite database and
// an in-memory model store.
func newTestServer(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()
	logger := zerolog.Nop()

	db, err := database.New(&config.DatabaseConfig{Driver: database.DriverSQLite, Path: database.MemoryPath})
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := kv.NewMemory()
	fb := feedback.NewStore(db, logger)
	contentPool := pool.New(db, cfg.Pool.MaxSize, logger)
	f := filter.New(cfg.Filter.Threshold, logger)
	rec := recommend.New(fb, store, recommend.DefaultTrainConfig(), logger)
	p := pipeline.New(&cfg.Pipeline, fb, f, rec, logger)

	h := NewHandler(Dependencies{
		DB:          db,
		ModelStore:  store,
		Feedback:    fb,
		Pool:        contentPool,
		Filter:      f,
		Recommender: rec,
		Pipeline:    p,
		Config:      cfg,
		Version:     "test",
	})
	router := NewRouter(h, NewChiMiddleware(ChiMiddlewareConfigFrom(&cfg.Security)), logger)

	return &testServer{handler: router.SetupChi(), feedback: fb, pool: contentPool}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") == "application/json" {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: decode envelope %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data %s: %v", env.Data, err)
	}
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}

func expectErrorCode(t *testing.T, env envelope, code string) {
	t.Helper()
	if env.Status != "error" || env.Error == nil || env.Error.Code != code {
		t.Fatalf("envelope = %+v, want error code %s", env, code)
	}
}

func videos(ids ...string) []models.Item {
	out := make([]models.Item, len(ids))
	for i, id := range ids {
		out[i] = models.Item{ID: id, Title: "Video " + id, ChannelName: "Channel"}
	}
	return out
}

func itemIDs(items []models.Item) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return out
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("down") }
