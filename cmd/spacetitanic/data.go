package main

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/MalayAgr/Kaggle-Space-Titanic/config"
	"github.com/MalayAgr/Kaggle-Space-Titanic/core/frame"
	"github.com/MalayAgr/Kaggle-Space-Titanic/models"
	"github.com/MalayAgr/Kaggle-Space-Titanic/pkg/errors"
)

var numericColumns = []string{"Age", "RoomService", "Spa", "VRDeck"}

// syntheticDatasets generates Spaceship Titanic shaped frames: CryoSleep
// passengers spend nothing and are mostly transported, high spenders mostly
// are not. About 2% of Age values are missing. The label, fold and id
// columns are named after cols.
func syntheticDatasets(cols config.ColumnsConfig, nTrain, nTest int, seed int64) (train, test *frame.Frame, ids []string, err error) {
	if nTrain < models.NFolds {
		return nil, nil, nil, errors.NewValidationError("rows", fmt.Sprintf("need at least %d training rows", models.NFolds), nTrain)
	}
	if nTest < 1 {
		return nil, nil, nil, errors.NewValidationError("rows", "test frame would be empty", nTest)
	}
	rng := rand.New(rand.NewSource(seed))

	gen := func(n int) [][]float64 {
		cols := make([][]float64, len(numericColumns)+2)
		for j := range cols {
			cols[j] = make([]float64, n)
		}
		for i := 0; i < n; i++ {
			cryo := 0.0
			if rng.Float64() < 0.35 {
				cryo = 1
			}
			age := math.Max(0, 29+14*rng.NormFloat64())
			if rng.Float64() < 0.02 {
				age = math.NaN()
			}
			cols[0][i] = age
			for j := 1; j < len(numericColumns); j++ {
				if cryo == 0 {
					cols[j][i] = math.Max(0, 300*rng.NormFloat64()+200)
				}
			}
			cols[len(numericColumns)][i] = cryo

			spend := cols[1][i] + cols[2][i] + cols[3][i]
			logit := 1.8*cryo - spend/600 + 0.4 + 0.5*rng.NormFloat64()
			if logit > 0 {
				cols[len(numericColumns)+1][i] = 1
			}
		}
		return cols
	}

	names := append(append([]string{}, numericColumns...), "CryoSleep")

	trainCols := gen(nTrain)
	folds := make([]float64, nTrain)
	for i, k := range rng.Perm(nTrain) {
		folds[k] = float64(i % models.NFolds)
	}
	train, err = frame.FromColumns(
		append(append([]string{}, names...), cols.Label, cols.Fold),
		append(trainCols, folds),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	testCols := gen(nTest)
	passenger := make([]float64, nTest)
	ids = make([]string, nTest)
	for i := range passenger {
		passenger[i] = float64(i + 1)
		ids[i] = fmt.Sprintf("%04d_01", i+1)
	}
	test, err = frame.FromColumns(
		append([]string{cols.ID}, names...),
		append([][]float64{passenger}, testCols[:len(names)]...),
	)
	if err != nil {
		return nil, nil, nil, err
	}
	return train, test, ids, nil
}
