// Package model defines the contracts between the cross-validation layer and
// concrete classifiers.
package model

import (
	"github.com/MalayAgr/Kaggle-Space-Titanic/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Classifier is a binary classifier.
//
// Shape contracts, for X with n rows:
//   - Fit takes X (n × features) and y (n × 1) holding 0/1 labels.
//   - Predict returns an n × 1 matrix of predicted 0/1 labels.
//   - PredictProba returns an n × 2 matrix; column 0 is P(y=0) and column 1
//     is P(y=1), the positive-class probability.
type Classifier interface {
	// Fit trains the classifier. opts carries extra fit-time arguments such
	// as a validation set for early stopping.
	Fit(X, y mat.Matrix, opts ...FitOption) error

	// Predict returns class labels.
	Predict(X mat.Matrix) (mat.Matrix, error)

	// PredictProba returns class probabilities.
	PredictProba(X mat.Matrix) (mat.Matrix, error)
}

// FitConfig collects the extra arguments passed to Classifier.Fit.
type FitConfig struct {
	// XVal and YVal form an evaluation set, used by classifiers that stop
	// early on validation loss.
	XVal mat.Matrix
	YVal mat.Matrix

	// SampleWeight has one weight per training row, or is nil.
	SampleWeight []float64

	// Extra holds classifier-specific arguments by name.
	Extra map[string]any
}

// FitOption is a functional option for Classifier.Fit.
type FitOption func(*FitConfig)

// NewFitConfig applies opts to an empty FitConfig.
func NewFitConfig(opts ...FitOption) *FitConfig {
	cfg := &FitConfig{Extra: make(map[string]any)}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithEvalSet sets the evaluation set.
func WithEvalSet(X, y mat.Matrix) FitOption {
	return func(c *FitConfig) {
		c.XVal = X
		c.YVal = y
	}
}

// WithSampleWeight sets per-row training weights.
func WithSampleWeight(w []float64) FitOption {
	return func(c *FitConfig) {
		c.SampleWeight = w
	}
}

// WithFitParam sets a classifier-specific argument.
func WithFitParam(name string, value any) FitOption {
	return func(c *FitConfig) {
		c.Extra[name] = value
	}
}

// Fitter is the training half of Classifier.
type Fitter interface {
	Fit(X, y mat.Matrix, opts ...FitOption) error
}

// Predictor is the inference half of Classifier.
type Predictor interface {
	Predict(X mat.Matrix) (mat.Matrix, error)
	PredictProba(X mat.Matrix) (mat.Matrix, error)
}

// PositiveProba extracts the positive-class column of a PredictProba result.
func PositiveProba(proba mat.Matrix) ([]float64, error) {
	r, c := proba.Dims()
	if c != 2 {
		return nil, errors.NewDimensionError("PositiveProba", 2, c, 1)
	}
	out := make([]float64, r)
	for i := 0; i < r; i++ {
		out[i] = proba.At(i, 1)
	}
	return out, nil
}
