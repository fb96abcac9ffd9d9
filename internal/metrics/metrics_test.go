// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDBQuery(t *testing.T) {
	long := errors.New(strings.Repeat("x", 80))
	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("SELECT", "metrics_test", strings.Repeat("x", 50)))

	RecordDBQuery("SELECT", "metrics_test", 5*time.Millisecond, nil)
	RecordDBQuery("SELECT", "metrics_test", 5*time.Millisecond, long)

	after := testutil.ToFloat64(DBQueryErrors.WithLabelValues("SELECT", "metrics_test", strings.Repeat("x", 50)))
	if after-before != 1 {
		t.Errorf("error counter delta = %v, want 1 (message truncated to 50 chars)", after-before)
	}
}

func TestRecordPoolAdmission(t *testing.T) {
	admittedBefore := testutil.ToFloat64(PoolAdmitted)
	evictedBefore := testutil.ToFloat64(PoolEvicted)

	RecordPoolAdmission(3, 1)
	SetPoolSize(42)

	if got := testutil.ToFloat64(PoolAdmitted) - admittedBefore; got != 3 {
		t.Errorf("admitted delta = %v, want 3", got)
	}
	if got := testutil.ToFloat64(PoolEvicted) - evictedBefore; got != 1 {
		t.Errorf("evicted delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(PoolEntries); got != 42 {
		t.Errorf("pool entries = %v, want 42", got)
	}
}

func TestRecordTraining(t *testing.T) {
	trainedBefore := testutil.ToFloat64(ModelTrainingRuns.WithLabelValues("trained"))
	skippedBefore := testutil.ToFloat64(ModelTrainingRuns.WithLabelValues("insufficient_data"))

	RecordTraining("trained", 10*time.Millisecond, 12, 0.25)
	RecordTraining("insufficient_data", 0, 1, 9)

	if got := testutil.ToFloat64(ModelTrainingRuns.WithLabelValues("trained")) - trainedBefore; got != 1 {
		t.Errorf("trained delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(ModelTrainingRuns.WithLabelValues("insufficient_data")) - skippedBefore; got != 1 {
		t.Errorf("insufficient_data delta = %v, want 1", got)
	}
	// Unsuccessful runs must not overwrite the last model's gauges.
	if got := testutil.ToFloat64(ModelTrainingSamples); got != 12 {
		t.Errorf("samples = %v, want 12", got)
	}
	if got := testutil.ToFloat64(ModelTrainingLoss); got != 0.25 {
		t.Errorf("loss = %v, want 0.25", got)
	}
}

func TestRecordModelCache(t *testing.T) {
	hits := testutil.ToFloat64(ModelCacheLookups.WithLabelValues("hit"))
	misses := testutil.ToFloat64(ModelCacheLookups.WithLabelValues("miss"))

	RecordModelCache(true)
	RecordModelCache(false)
	RecordModelCache(false)

	if got := testutil.ToFloat64(ModelCacheLookups.WithLabelValues("hit")) - hits; got != 1 {
		t.Errorf("hit delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(ModelCacheLookups.WithLabelValues("miss")) - misses; got != 2 {
		t.Errorf("miss delta = %v, want 2", got)
	}
}

func TestRecordCircuitBreakerTransition(t *testing.T) {
	RecordCircuitBreakerTransition("metrics_test", "closed", "open", 2)

	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("metrics_test")); got != 2 {
		t.Errorf("state = %v, want 2", got)
	}
	if got := testutil.ToFloat64(CircuitBreakerTransitions.WithLabelValues("metrics_test", "closed", "open")); got < 1 {
		t.Errorf("transitions = %v, want >= 1", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after inc = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after dec = %v, want %v", got, before)
	}
}

func TestMetricGathering(t *testing.T) {
	RecordAPIRequest("GET", "/api/v1/health", "200", time.Millisecond)
	RecordFilterPass(4, 1)
	RecordFeedbackWrite("record")
	RecordDegradedStep("rank")
	RecordPipelineResults(3)
	SetAppInfo("test")

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Fatalf("GatherAndLint() error = %v", err)
	}
	for _, p := range problems {
		if strings.HasPrefix(p.Metric, namespace+"_") {
			t.Errorf("lint problem in %s: %s", p.Metric, p.Text)
		}
	}
}
