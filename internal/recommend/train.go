// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package recommend

import (
	"context"
	"math"

	"github.com/tomtom215/sifter/internal/config"
)

// TrainConfig tunes gradient descent.
type TrainConfig struct {
	Epochs         int
	LearningRate   float64
	EarlyStopEpoch int // 0 disables early stopping
	EarlyStopLoss  float64
	MinPerClass    int
}

// DefaultTrainConfig returns the standard training parameters.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		Epochs:         500,
		LearningRate:   0.1,
		EarlyStopEpoch: 100,
		EarlyStopLoss:  1e-3,
		MinPerClass:    2,
	}
}

// TrainConfigFrom maps the model section of the service configuration.
func TrainConfigFrom(cfg *config.ModelConfig) TrainConfig {
	return TrainConfig{
		Epochs:         cfg.Epochs,
		LearningRate:   cfg.LearningRate,
		EarlyStopEpoch: cfg.EarlyStopEpoch,
		EarlyStopLoss:  cfg.EarlyStopLoss,
		MinPerClass:    cfg.MinPerClass,
	}
}

// fitResult is the outcome of gradient descent.
type fitResult struct {
	weights []float64
	bias    float64
	loss    float64
	epochs  int
}

// fit runs batch gradient descent from zero weights. Each epoch applies the
// mean gradient over all examples. It stops early once the mean log-loss
// falls below EarlyStopLoss after EarlyStopEpoch epochs, and checks ctx
// between epochs.
func fit(ctx context.Context, xs [][]float64, ys []float64, cfg TrainConfig) (fitResult, error) {
	weights := make([]float64, NumFeatures)
	bias := 0.0
	n := float64(len(xs))

	gradW := make([]float64, NumFeatures)
	res := fitResult{weights: weights}

	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return fitResult{}, err
		}

		for j := range gradW {
			gradW[j] = 0
		}
		gradB, loss := 0.0, 0.0

		for i, x := range xs {
			p := sigmoid(logit(weights, bias, x))
			diff := p - ys[i]
			for j := range gradW {
				gradW[j] += diff * x[j]
			}
			gradB += diff
			loss += logLoss(p, ys[i])
		}

		for j := range weights {
			weights[j] -= cfg.LearningRate * gradW[j] / n
		}
		bias -= cfg.LearningRate * gradB / n

		res.loss = loss / n
		res.epochs = epoch
		if cfg.EarlyStopEpoch > 0 && epoch > cfg.EarlyStopEpoch && res.loss < cfg.EarlyStopLoss {
			break
		}
	}

	res.bias = bias
	return res, nil
}

// logLoss is the binary cross-entropy of prediction p for label y.
func logLoss(p, y float64) float64 {
	const eps = 1e-15
	p = math.Max(eps, math.Min(1-eps, p))
	return -(y*math.Log(p) + (1-y)*math.Log(1-p))
}
