package models

import (
	"math/rand"

	"github.com/MalayAgr/Kaggle-Space-Titanic/core/frame"
	"github.com/MalayAgr/Kaggle-Space-Titanic/core/model"
	"github.com/MalayAgr/Kaggle-Space-Titanic/sklearn/linear_model"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// majorityClassifier predicts the majority training label for every row
// and the training share of positives as the probability.
type majorityClassifier struct {
	label    float64
	positive float64
}

func (c *majorityClassifier) Fit(X, y mat.Matrix, _ ...model.FitOption) error {
	labels := mat.Col(nil, 0, y)
	ones := floats.Sum(labels)
	c.positive = ones / float64(len(labels))
	if 2*ones > float64(len(labels)) {
		c.label = 1
	}
	return nil
}

func (c *majorityClassifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	r, _ := X.Dims()
	out := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		out.Set(i, 0, c.label)
	}
	return out, nil
}

func (c *majorityClassifier) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	r, _ := X.Dims()
	out := mat.NewDense(r, 2, nil)
	for i := 0; i < r; i++ {
		out.Set(i, 0, 1-c.positive)
		out.Set(i, 1, c.positive)
	}
	return out, nil
}

type majorityEstimator struct {
	built int
}

func (e *majorityEstimator) InitClassifier(model.Params) (model.Classifier, error) {
	e.built++
	return &majorityClassifier{}, nil
}

// constantClassifier returns value as the positive probability everywhere.
type constantClassifier struct {
	value float64
}

func (c *constantClassifier) Fit(mat.Matrix, mat.Matrix, ...model.FitOption) error { return nil }

func (c *constantClassifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	r, _ := X.Dims()
	return mat.NewDense(r, 1, nil), nil
}

func (c *constantClassifier) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	r, _ := X.Dims()
	out := mat.NewDense(r, 2, nil)
	for i := 0; i < r; i++ {
		out.Set(i, 0, 1-c.value)
		out.Set(i, 1, c.value)
	}
	return out, nil
}

// sequenceEstimator hands out classifiers whose probability encodes the
// order they were built in: the k-th classifier (0-based) predicts (k+1)/10.
type sequenceEstimator struct {
	built int
}

func (e *sequenceEstimator) InitClassifier(model.Params) (model.Classifier, error) {
	e.built++
	return &constantClassifier{value: float64(e.built) / 10}, nil
}

// panicClassifier panics in Fit.
type panicClassifier struct{ constantClassifier }

func (c *panicClassifier) Fit(mat.Matrix, mat.Matrix, ...model.FitOption) error {
	panic("fit exploded")
}

type panicEstimator struct{}

func (panicEstimator) InitClassifier(model.Params) (model.Classifier, error) {
	return &panicClassifier{}, nil
}

// logRegEstimator wraps the reference logistic regression.
type logRegEstimator struct{}

func (logRegEstimator) InitClassifier(params model.Params) (model.Classifier, error) {
	return linear_model.NewLogisticRegressionFromParams(params)
}

// syntheticFrames builds a linearly separable-ish problem with n training
// rows, folds assigned round-robin then shuffled with seed, and nTest test
// rows carrying a PassengerId column.
func syntheticFrames(n, nTest int, seed int64) (*frame.Frame, *frame.Frame) {
	rng := rand.New(rand.NewSource(seed))

	x1 := make([]float64, n)
	x2 := make([]float64, n)
	label := make([]float64, n)
	folds := make([]float64, n)
	for i := 0; i < n; i++ {
		x1[i] = rng.NormFloat64()
		x2[i] = rng.NormFloat64()
		if x1[i]+0.5*x2[i]+0.3*rng.NormFloat64() > 0 {
			label[i] = 1
		}
		folds[i] = float64(i % NFolds)
	}
	rng.Shuffle(n, func(i, j int) { folds[i], folds[j] = folds[j], folds[i] })

	tx1 := make([]float64, nTest)
	tx2 := make([]float64, nTest)
	ids := make([]float64, nTest)
	for i := 0; i < nTest; i++ {
		tx1[i] = rng.NormFloat64()
		tx2[i] = rng.NormFloat64()
		ids[i] = float64(i)
	}

	train := frame.MustFromColumns(
		[]string{"x1", "x2", "Transported", "kfold"},
		[][]float64{x1, x2, label, folds},
	)
	test := frame.MustFromColumns(
		[]string{"PassengerId", "x1", "x2"},
		[][]float64{ids, tx1, tx2},
	)
	return train, test
}
