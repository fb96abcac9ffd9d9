// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

/*
Package recommend learns a personal preference model from liked and disliked
items and scores candidates with it.

# Model

A logistic regression over ten fixed features (see FeatureNames):

	p = sigmoid(bias + sum(weights[i] * x[i]))

Three features reuse the heuristic sub-scores of package filter; the
keyword and channel features compare the candidate with patterns mined from
the same feedback the model was trained on.

# Training

Train reads every labeled record, requires a minimum number of positive and
negative examples, and fits the weights with batch gradient descent from a
zero start. The trained Artifact is written to the key-value store under
ModelKey as one JSON value, so readers see either the old or the new model.
The in-memory cache is invalidated before Train returns. A second Train
while one is running fails with ErrTrainingInProgress.

# Scoring

Score returns ok=false when no usable model exists. Stored values that do
not decode, have the wrong version or the wrong number of weights are
treated as absent.

# Thread Safety

Recommender and ArtifactCache are safe for concurrent use.
*/
package recommend
