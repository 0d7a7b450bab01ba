package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/MalayAgr/Kaggle-Space-Titanic/config"
	"github.com/MalayAgr/Kaggle-Space-Titanic/models"
	"github.com/MalayAgr/Kaggle-Space-Titanic/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyntheticDatasets(t *testing.T) {
	train, test, ids, err := syntheticDatasets(config.GetDefaultConfig().Columns, 50, 8, 1)
	require.NoError(t, err)

	assert.Equal(t, 50, train.NRows())
	assert.Equal(t, 8, test.NRows())
	assert.Len(t, ids, 8)
	assert.Equal(t, "0001_01", ids[0])
	assert.True(t, test.HasColumn("PassengerId"))
	assert.False(t, test.HasColumn("Transported"))

	folds, err := train.Col("kfold")
	require.NoError(t, err)
	counts := make([]int, models.NFolds)
	for _, f := range folds {
		counts[int(f)]++
	}
	assert.Equal(t, []int{10, 10, 10, 10, 10}, counts)
}

func TestRootCommand(t *testing.T) {
	var out bytes.Buffer
	rootCommand.SetOut(&out)
	rootCommand.SetArgs([]string{"--trials", "2", "--rows", "100"})
	require.NoError(t, rootCommand.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 26)
	assert.Equal(t, "PassengerId,Transported", lines[0])
	assert.Regexp(t, `^0001_01,(true|false)$`, lines[1])
}

func TestSyntheticDatasetsColumns(t *testing.T) {
	cols := config.ColumnsConfig{Label: "Survived", Fold: "fold", Preds: "oof", ID: "Id"}
	train, test, _, err := syntheticDatasets(cols, 20, 5, 1)
	require.NoError(t, err)

	assert.True(t, train.HasColumn("Survived"))
	assert.True(t, train.HasColumn("fold"))
	assert.False(t, train.HasColumn("Transported"))
	assert.True(t, test.HasColumn("Id"))
	assert.False(t, test.HasColumn("PassengerId"))
}

func TestSyntheticDatasetsTooFewRows(t *testing.T) {
	cols := config.GetDefaultConfig().Columns
	tests := []struct {
		name          string
		nTrain, nTest int
	}{
		{"fewer rows than folds", 3, 1},
		{"empty test frame", 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() {
				_, _, _, err = syntheticDatasets(cols, tt.nTrain, tt.nTest, 1)
			})
			var valErr *errors.ValidationError
			assert.True(t, errors.As(err, &valErr))
		})
	}
}

func TestRootCommandCustomColumns(t *testing.T) {
	t.Setenv("SPACETITANIC_COLUMNS_LABEL", "Survived")
	t.Setenv("SPACETITANIC_COLUMNS_ID", "Id")

	var out bytes.Buffer
	rootCommand.SetOut(&out)
	rootCommand.SetArgs([]string{"--trials", "2", "--rows", "60"})
	require.NoError(t, rootCommand.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 16)
	assert.Equal(t, "Id,Survived", lines[0])
}

func TestRootCommandTooFewRows(t *testing.T) {
	var out bytes.Buffer
	rootCommand.SetOut(&out)
	rootCommand.SetArgs([]string{"--trials", "2", "--rows", "3"})
	require.NotPanics(t, func() {
		assert.Error(t, rootCommand.Execute())
	})
	assert.Empty(t, out.String())
}
