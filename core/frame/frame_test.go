package frame

import (
	"math"
	"testing"

	"github.com/MalayAgr/Kaggle-Space-Titanic/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func sample(t *testing.T) *Frame {
	t.Helper()
	f, err := FromColumns(
		[]string{"Age", "Transported", "kfold"},
		[][]float64{
			{20, 30, 40, 50},
			{1, 0, 1, 0},
			{0, 1, 0, 1},
		},
	)
	require.NoError(t, err)
	return f
}

func TestFromColumns(t *testing.T) {
	f := sample(t)
	r, c := f.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, []string{"Age", "Transported", "kfold"}, f.Columns())
	assert.True(t, f.HasColumn("kfold"))
	assert.False(t, f.HasColumn("preds"))

	age, err := f.Col("Age")
	require.NoError(t, err)
	assert.Equal(t, []float64{20, 30, 40, 50}, age)

	t.Run("ragged columns", func(t *testing.T) {
		_, err := FromColumns([]string{"a", "b"}, [][]float64{{1, 2}, {1}})
		var dimErr *errors.DimensionError
		assert.True(t, errors.As(err, &dimErr))
	})

	t.Run("duplicate names", func(t *testing.T) {
		_, err := FromColumns([]string{"a", "a"}, [][]float64{{1}, {2}})
		var valErr *errors.ValidationError
		assert.True(t, errors.As(err, &valErr))
	})

	t.Run("empty", func(t *testing.T) {
		_, err := FromColumns(nil, nil)
		assert.True(t, errors.Is(err, errors.ErrEmptyData))
	})
}

func TestColMissing(t *testing.T) {
	f := sample(t)
	_, err := f.Col("preds")
	var valueErr *errors.ValueError
	require.True(t, errors.As(err, &valueErr))
	assert.Contains(t, err.Error(), `column "preds" not found`)
}

func TestAddColAndSetRows(t *testing.T) {
	f := sample(t)
	require.NoError(t, f.AddCol("preds", math.NaN()))
	assert.Equal(t, []string{"Age", "Transported", "kfold", "preds"}, f.Columns())

	n, err := f.CountNaN("preds")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	require.NoError(t, f.SetRows("preds", []int{1, 3}, []float64{0.25, 0.75}))
	preds, _ := f.Col("preds")
	assert.True(t, math.IsNaN(preds[0]))
	assert.Equal(t, 0.25, preds[1])
	assert.Equal(t, 0.75, preds[3])

	// existing columns are untouched by the grow
	age, _ := f.Col("Age")
	assert.Equal(t, []float64{20, 30, 40, 50}, age)

	assert.Error(t, f.AddCol("preds", 0))
	assert.Error(t, f.SetRows("preds", []int{9}, []float64{1}))
	assert.Error(t, f.SetRows("preds", []int{1}, []float64{1, 2}))
}

func TestDropAndSelect(t *testing.T) {
	f := sample(t)
	X, err := f.Drop("Transported", "kfold")
	require.NoError(t, err)
	assert.Equal(t, []string{"Age"}, X.Columns())
	r, c := X.Matrix().Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 1, c)

	_, err = f.Drop("PassengerId")
	assert.Error(t, err)

	_, err = f.Drop("Age", "Transported", "kfold")
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	s, err := f.Select("kfold", "Age")
	require.NoError(t, err)
	assert.Equal(t, []string{"kfold", "Age"}, s.Columns())
	assert.Equal(t, 20.0, s.Matrix().At(0, 1))
}

func TestRowsAndWhere(t *testing.T) {
	f := sample(t)
	rows, err := f.Where("kfold", func(v float64) bool { return v == 1 })
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, rows)

	sub, err := f.Rows(rows)
	require.NoError(t, err)
	age, _ := sub.Col("Age")
	assert.Equal(t, []float64{30, 50}, age)

	_, err = f.Rows(nil)
	assert.Error(t, err)
	_, err = f.Rows([]int{7})
	assert.Error(t, err)
}

func TestCloneIsDeep(t *testing.T) {
	f := sample(t)
	g := f.Clone()
	require.NoError(t, g.SetCol("Age", []float64{0, 0, 0, 0}))
	require.NoError(t, g.AddCol("preds", 0))

	age, _ := f.Col("Age")
	assert.Equal(t, []float64{20, 30, 40, 50}, age)
	assert.False(t, f.HasColumn("preds"))
}

func TestNewValidatesDims(t *testing.T) {
	_, err := New([]string{"a", "b"}, mat.NewDense(2, 3, nil))
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))

	col, err := MustFromColumns([]string{"a"}, [][]float64{{1, 2}}).ColVec("a")
	require.NoError(t, err)
	assert.Equal(t, 2.0, col.At(1, 0))
}
