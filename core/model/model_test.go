package model

import (
	"testing"

	"github.com/MalayAgr/Kaggle-Space-Titanic/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestParamsGetters(t *testing.T) {
	p := Params{
		"max_iter": 100,
		"depth":    float64(4),
		"lr":       0.1,
		"frac":     2.5,
		"solver":   "gd",
		"balanced": true,
	}

	assert.Equal(t, 100, p.GetInt("max_iter", 0))
	assert.Equal(t, 4, p.GetInt("depth", 0))
	assert.Equal(t, 7, p.GetInt("frac", 7), "non-integral float falls back")
	assert.Equal(t, 7, p.GetInt("missing", 7))
	assert.Equal(t, 0.1, p.GetFloat("lr", 0))
	assert.Equal(t, 100.0, p.GetFloat("max_iter", 0))
	assert.Equal(t, 1.0, p.GetFloat("solver", 1))
	assert.Equal(t, "gd", p.GetString("solver", ""))
	assert.Equal(t, "x", p.GetString("lr", "x"))
	assert.True(t, p.GetBool("balanced", false))
	assert.Equal(t, []string{"balanced", "depth", "frac", "lr", "max_iter", "solver"}, p.Keys())
}

func TestParamsCopy(t *testing.T) {
	p := Params{"C": 1.0}
	q := p.Copy()
	q["C"] = 2.0
	assert.Equal(t, 1.0, p["C"])
}

func TestFitConfig(t *testing.T) {
	X := mat.NewDense(2, 1, []float64{1, 2})
	y := mat.NewDense(2, 1, []float64{0, 1})

	cfg := NewFitConfig(
		WithEvalSet(X, y),
		WithSampleWeight([]float64{1, 2}),
		WithFitParam("early_stopping_rounds", 10),
	)
	assert.Same(t, X, cfg.XVal)
	assert.Same(t, y, cfg.YVal)
	assert.Equal(t, []float64{1, 2}, cfg.SampleWeight)
	assert.Equal(t, 10, cfg.Extra["early_stopping_rounds"])

	empty := NewFitConfig()
	assert.Nil(t, empty.XVal)
	assert.NotNil(t, empty.Extra)
}

func TestPositiveProba(t *testing.T) {
	proba := mat.NewDense(3, 2, []float64{
		0.9, 0.1,
		0.4, 0.6,
		0.0, 1.0,
	})
	got, err := PositiveProba(proba)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.6, 1.0}, got)

	_, err = PositiveProba(mat.NewDense(3, 1, nil))
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
}

func TestStateManager(t *testing.T) {
	s := NewStateManager()
	assert.False(t, s.IsFitted())

	var notFitted *errors.NotFittedError
	assert.True(t, errors.As(s.RequireFitted("LogisticRegression", "Predict", 3), &notFitted))

	s.SetFitted(3, 100)
	assert.True(t, s.IsFitted())
	assert.Equal(t, 3, s.NFeatures())
	assert.NoError(t, s.RequireFitted("LogisticRegression", "Predict", 3))

	var dimErr *errors.DimensionError
	assert.True(t, errors.As(s.RequireFitted("LogisticRegression", "Predict", 4), &dimErr))

	s.Reset()
	assert.False(t, s.IsFitted())
}
