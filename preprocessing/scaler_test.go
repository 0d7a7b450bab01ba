package preprocessing

import (
	"math"
	"testing"

	"github.com/MalayAgr/Kaggle-Space-Titanic/core/frame"
	"github.com/MalayAgr/Kaggle-Space-Titanic/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestStandardScaler(t *testing.T) {
	tests := []struct {
		name      string
		withMean  bool
		withStd   bool
		wantMean  []float64
		wantScale []float64
	}{
		{"default", true, true, []float64{2, 10}, []float64{math.Sqrt(2.0 / 3.0), 1}},
		{"no mean", false, true, []float64{0, 0}, []float64{math.Sqrt(2.0 / 3.0), 1}},
		{"no std", true, false, []float64{2, 10}, []float64{1, 1}},
	}

	// second column is constant, so its scale stays 1
	X := mat.NewDense(3, 2, []float64{
		1, 10,
		2, 10,
		3, 10,
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStandardScaler(tt.withMean, tt.withStd)
			out, err := s.FitTransform(X)
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.wantMean, s.Mean, 1e-12)
			assert.InDeltaSlice(t, tt.wantScale, s.Scale, 1e-12)

			back, err := s.InverseTransform(out)
			require.NoError(t, err)
			assert.True(t, mat.EqualApprox(X, back, 1e-12))
		})
	}
}

func TestStandardScalerErrors(t *testing.T) {
	s := NewStandardScalerDefault()
	_, err := s.Transform(mat.NewDense(1, 1, nil))
	var notFitted *errors.NotFittedError
	assert.True(t, errors.As(err, &notFitted))

	require.NoError(t, s.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})))
	_, err = s.Transform(mat.NewDense(1, 3, nil))
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
	assert.Contains(t, s.String(), "n_features=2")

	err = s.Fit(mat.NewDense(2, 1, []float64{1, math.NaN()}))
	var instability *errors.NumericalInstabilityError
	assert.True(t, errors.As(err, &instability))
}

func TestScaleColumns(t *testing.T) {
	train := frame.MustFromColumns(
		[]string{"Age", "Transported"},
		[][]float64{{10, 20, 30}, {0, 1, 1}},
	)
	test := frame.MustFromColumns(
		[]string{"Age", "PassengerId"},
		[][]float64{{20, 40}, {1, 2}},
	)

	outTrain, outTest, err := ScaleColumns(train, test, "Age")
	require.NoError(t, err)

	age, _ := outTrain.Col("Age")
	std := math.Sqrt(200.0 / 3.0)
	assert.InDeltaSlice(t, []float64{-10 / std, 0, 10 / std}, age, 1e-12)
	testAge, _ := outTest.Col("Age")
	assert.InDeltaSlice(t, []float64{0, 20 / std}, testAge, 1e-12)

	// labels and inputs untouched
	label, _ := outTrain.Col("Transported")
	assert.Equal(t, []float64{0, 1, 1}, label)
	orig, _ := train.Col("Age")
	assert.Equal(t, []float64{10, 20, 30}, orig)

	_, _, err = ScaleColumns(train, test, "Transported")
	assert.Error(t, err, "test frame has no label column")
}

func TestFillNaN(t *testing.T) {
	train := frame.MustFromColumns([]string{"Age"}, [][]float64{{10, math.NaN(), 30}})
	test := frame.MustFromColumns([]string{"Age"}, [][]float64{{math.NaN()}})

	outTrain, outTest, err := FillNaN(train, test, "Age")
	require.NoError(t, err)
	age, _ := outTrain.Col("Age")
	assert.Equal(t, []float64{10, 20, 30}, age)
	testAge, _ := outTest.Col("Age")
	assert.Equal(t, []float64{20}, testAge)

	n, _ := train.CountNaN("Age")
	assert.Equal(t, 1, n)
}
