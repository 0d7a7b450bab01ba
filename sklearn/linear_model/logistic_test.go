package linear_model

import (
	"math"
	"testing"

	"github.com/MalayAgr/Kaggle-Space-Titanic/core/model"
	"github.com/MalayAgr/Kaggle-Space-Titanic/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func separable() (*mat.Dense, *mat.Dense) {
	// Class 0: points around (1, 1)
	// Class 1: points around (3, 3)
	X := mat.NewDense(6, 2, []float64{
		0.5, 0.5,
		1.0, 1.5,
		1.5, 1.0,
		3.0, 2.5,
		2.5, 3.0,
		3.5, 3.5,
	})
	y := mat.NewDense(6, 1, []float64{0, 0, 0, 1, 1, 1})
	return X, y
}

// TestLogisticRegression_FitPredict_Binary tests binary classification
func TestLogisticRegression_FitPredict_Binary(t *testing.T) {
	X, y := separable()
	lr := NewLogisticRegression(WithLRMaxIter(1000), WithLRTol(1e-4))
	require.NoError(t, lr.Fit(X, y))

	predictions, err := lr.Predict(X)
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		assert.Equal(t, y.At(i, 0), predictions.At(i, 0), "sample %d", i)
	}

	XTest := mat.NewDense(2, 2, []float64{
		1.0, 1.0, // Should be class 0
		3.0, 3.0, // Should be class 1
	})
	testPreds, err := lr.Predict(XTest)
	require.NoError(t, err)
	assert.Equal(t, 0.0, testPreds.At(0, 0))
	assert.Equal(t, 1.0, testPreds.At(1, 0))

	score, err := lr.Score(X, y)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

// TestLogisticRegression_PredictProba tests probability predictions
func TestLogisticRegression_PredictProba(t *testing.T) {
	X, y := separable()
	lr := NewLogisticRegression(WithLRMaxIter(500))
	require.NoError(t, lr.Fit(X, y))

	proba, err := lr.PredictProba(X)
	require.NoError(t, err)
	r, c := proba.Dims()
	assert.Equal(t, 6, r)
	assert.Equal(t, 2, c)

	for i := 0; i < r; i++ {
		assert.InDelta(t, 1.0, proba.At(i, 0)+proba.At(i, 1), 1e-12)
		assert.True(t, proba.At(i, 1) >= 0 && proba.At(i, 1) <= 1)
	}
	assert.Less(t, proba.At(0, 1), proba.At(5, 1))

	pos, err := model.PositiveProba(proba)
	require.NoError(t, err)
	assert.Len(t, pos, 6)
}

func TestLogisticRegression_NotFitted(t *testing.T) {
	lr := NewLogisticRegression()
	_, err := lr.Predict(mat.NewDense(1, 2, []float64{1, 1}))
	var notFitted *errors.NotFittedError
	assert.True(t, errors.As(err, &notFitted))
}

func TestLogisticRegression_InvalidInput(t *testing.T) {
	X, y := separable()

	tests := []struct {
		name string
		fit  func(lr *LogisticRegression) error
	}{
		{"row mismatch", func(lr *LogisticRegression) error {
			return lr.Fit(X, mat.NewDense(5, 1, nil))
		}},
		{"multi-column y", func(lr *LogisticRegression) error {
			return lr.Fit(X, mat.NewDense(6, 2, nil))
		}},
		{"non-binary labels", func(lr *LogisticRegression) error {
			return lr.Fit(X, mat.NewDense(6, 1, []float64{0, 1, 2, 0, 1, 2}))
		}},
		{"sample weight length", func(lr *LogisticRegression) error {
			return lr.Fit(X, y, model.WithSampleWeight([]float64{1, 1}))
		}},
		{"eval set width", func(lr *LogisticRegression) error {
			return lr.Fit(X, y,
				model.WithEvalSet(mat.NewDense(2, 3, nil), mat.NewDense(2, 1, nil)),
				model.WithFitParam(EarlyStoppingRounds, 5))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.fit(NewLogisticRegression()))
		})
	}

	t.Run("predict feature mismatch", func(t *testing.T) {
		lr := NewLogisticRegression()
		require.NoError(t, lr.Fit(X, y))
		_, err := lr.PredictProba(mat.NewDense(1, 3, nil))
		var dimErr *errors.DimensionError
		assert.True(t, errors.As(err, &dimErr))
	})
}

func TestLogisticRegression_EarlyStopping(t *testing.T) {
	X, y := separable()
	// validation labels are the inverse of the training labels, so the
	// validation loss gets worse as training improves
	yFlipped := mat.NewDense(6, 1, []float64{1, 1, 1, 0, 0, 0})

	lr := NewLogisticRegression(WithLRMaxIter(1000), WithLRTol(1e-12))
	require.NoError(t, lr.Fit(X, y,
		model.WithEvalSet(X, yFlipped),
		model.WithFitParam(EarlyStoppingRounds, 3),
	))
	assert.True(t, lr.StoppedEarly())
	assert.Less(t, lr.NIter(), 1000)
}

func TestLogisticRegression_ConvergenceWarning(t *testing.T) {
	var warned []error
	errors.SetWarningHandler(func(w error) { warned = append(warned, w) })
	defer errors.SetWarningHandler(nil)

	X, y := separable()
	lr := NewLogisticRegression(WithLRMaxIter(1))
	require.NoError(t, lr.Fit(X, y))
	assert.Equal(t, 1, lr.NIter())

	require.Len(t, warned, 1)
	var conv *errors.ConvergenceWarning
	assert.True(t, errors.As(warned[0], &conv))
}

func TestLogisticRegression_FromParams(t *testing.T) {
	lr, err := NewLogisticRegressionFromParams(model.Params{
		"C":        0.5,
		"max_iter": float64(300),
		"tol":      1e-6,
	})
	require.NoError(t, err)
	p := lr.Params()
	assert.Equal(t, 0.5, p["C"])
	assert.Equal(t, 300, p["max_iter"])
	assert.Equal(t, 1e-6, p["tol"])
	assert.Equal(t, true, p["fit_intercept"])

	_, err = NewLogisticRegressionFromParams(model.Params{"C": -1.0})
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))

	_, err = NewLogisticRegressionFromParams(model.Params{"max_iter": 0})
	assert.True(t, errors.As(err, &valErr))
}

func TestLogisticRegression_Reproducible(t *testing.T) {
	X, y := separable()
	a := NewLogisticRegression(WithLRRandomState(7), WithLRMaxIter(50))
	b := NewLogisticRegression(WithLRRandomState(7), WithLRMaxIter(50))
	require.NoError(t, a.Fit(X, y))
	require.NoError(t, b.Fit(X, y))
	assert.Equal(t, a.Coef(), b.Coef())
	assert.Equal(t, a.Intercept(), b.Intercept())
}

func TestLogisticRegression_LargeInput(t *testing.T) {
	// enough rows to split the decision function across goroutines
	n := 6000
	X := mat.NewDense(n, 1, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		v := math.Sin(float64(i))
		X.Set(i, 0, v)
		if v > 0 {
			y.Set(i, 0, 1)
		}
	}

	lr := NewLogisticRegression(WithLRMaxIter(300))
	require.NoError(t, lr.Fit(X, y))
	score, err := lr.Score(X, y)
	require.NoError(t, err)
	assert.Greater(t, score, 0.95)
}
