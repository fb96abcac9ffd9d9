// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package recommend

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/goccy/go-json"
)

const (
	// ModelKey is the key-value store key holding the artifact.
	ModelKey = "recommendation_model"

	// ArtifactVersion is the only artifact layout Score accepts.
	ArtifactVersion = 1

	// sigmoid input is clamped to keep exp finite and scores off 0 and 1.
	maxLogit = 20
)

// ErrInvalidArtifact marks a stored model that cannot be used.
var ErrInvalidArtifact = errors.New("invalid model artifact")

// Artifact is a trained model.
type Artifact struct {
	Version       int       `json:"version"`
	Weights       []float64 `json:"weights"`
	Bias          float64   `json:"bias"`
	TrainedAt     time.Time `json:"trainedAt"`
	PositiveCount int       `json:"positiveCount"`
	NegativeCount int       `json:"negativeCount"`
}

// Validate checks that the artifact matches the current feature layout.
func (a *Artifact) Validate() error {
	if a.Version != ArtifactVersion {
		return fmt.Errorf("%w: version %d", ErrInvalidArtifact, a.Version)
	}
	if len(a.Weights) != NumFeatures {
		return fmt.Errorf("%w: %d weights, want %d", ErrInvalidArtifact, len(a.Weights), NumFeatures)
	}
	for _, w := range append([]float64{a.Bias}, a.Weights...) {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("%w: non-finite parameter", ErrInvalidArtifact)
		}
	}
	return nil
}

// Predict returns the probability that x is liked.
func (a *Artifact) Predict(x []float64) float64 {
	return sigmoid(logit(a.Weights, a.Bias, x))
}

// WeightsByName pairs each weight with its feature name.
func (a *Artifact) WeightsByName() map[string]float64 {
	out := make(map[string]float64, len(a.Weights))
	for i, w := range a.Weights {
		if i < NumFeatures {
			out[FeatureNames[i]] = w
		}
	}
	return out
}

func encodeArtifact(a *Artifact) (string, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("encode artifact: %w", err)
	}
	return string(data), nil
}

// decodeArtifact parses and validates a stored value.
func decodeArtifact(raw string) (*Artifact, error) {
	var a Artifact
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

func logit(weights []float64, bias float64, x []float64) float64 {
	z := bias
	for i := range weights {
		z += weights[i] * x[i]
	}
	return math.Max(-maxLogit, math.Min(maxLogit, z))
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
