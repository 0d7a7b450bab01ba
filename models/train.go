package models

import (
	"fmt"
	"math"

	"github.com/MalayAgr/Kaggle-Space-Titanic/core/frame"
	"github.com/MalayAgr/Kaggle-Space-Titanic/core/model"
	"github.com/MalayAgr/Kaggle-Space-Titanic/metrics"
	"github.com/MalayAgr/Kaggle-Space-Titanic/pkg/errors"
	"github.com/MalayAgr/Kaggle-Space-Titanic/pkg/log"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// FoldResult is the outcome of one fold.
type FoldResult struct {
	// TestPreds is the positive-class probability for every test row.
	TestPreds []float64
	// Accuracy is the held-out classification accuracy.
	Accuracy float64
}

// Result is the outcome of a full cross-validation run.
type Result struct {
	// OOF holds one out-of-fold positive-class probability per training row.
	OOF []float64
	// TestPreds is the element-wise mean of the per-fold test predictions.
	TestPreds []float64
	// Accuracy is the mean of FoldAccuracies.
	Accuracy       float64
	FoldAccuracies []float64
}

// Prediction is one row of a submission.
type Prediction struct {
	PassengerID string
	Transported bool
}

// Submission pairs ids with TestPreds thresholded at threshold.
func (r *Result) Submission(ids []string, threshold float64) ([]Prediction, error) {
	if len(ids) != len(r.TestPreds) {
		return nil, errors.NewDimensionError("Result.Submission", len(r.TestPreds), len(ids), 0)
	}
	if threshold <= 0 || threshold >= 1 {
		return nil, errors.NewValidationError("threshold", "must be in (0, 1)", threshold)
	}
	labels := metrics.Threshold(r.TestPreds, threshold)
	return lo.Map(ids, func(id string, i int) Prediction {
		return Prediction{PassengerID: id, Transported: labels[i] == 1}
	}), nil
}

func (m *CVModel) trainOptions(opts []TrainOption) trainOptions {
	to := trainOptions{verbose: m.opts.verbose}
	for _, opt := range opts {
		opt(&to)
	}
	return to
}

// Train runs the 5 folds over a copy of df and returns the out-of-fold
// predictions, the averaged test predictions and the mean accuracy.
//
// df must hold the label and fold columns, with every fold index an
// integer in [0, NFolds) and every fold non-empty. The ID column is dropped
// from test when present. Neither input frame is modified.
func (m *CVModel) Train(df, test *frame.Frame, params model.Params, opts ...TrainOption) (*Result, error) {
	to := m.trainOptions(opts)
	cols := m.opts.columns

	if err := m.validateFolds(df); err != nil {
		m.logger.Error("invalid fold assignment", err, log.ErrorCodeKey, log.ErrorInvalidFolds)
		return nil, err
	}

	work := df.Clone()
	var err error
	if work.HasColumn(cols.Preds) {
		err = work.SetCol(cols.Preds, nanSlice(work.NRows()))
	} else {
		err = work.AddCol(cols.Preds, math.NaN())
	}
	if err != nil {
		return nil, err
	}

	if test.HasColumn(cols.ID) {
		if test, err = test.Drop(cols.ID); err != nil {
			return nil, err
		}
	}

	drop := []string{cols.Label, cols.Preds, cols.Fold}
	stacked := mat.NewDense(NFolds, test.NRows(), nil)
	accs := make([]float64, NFolds)

	for fold := 0; fold < NFolds; fold++ {
		res, err := m.trainFold(work, test, fold, params, drop, to)
		if err != nil {
			return nil, err
		}
		accs[fold] = res.Accuracy
		stacked.SetRow(fold, res.TestPreds)

		if to.onFold != nil {
			if err := to.onFold(fold, res.Accuracy); err != nil {
				return nil, err
			}
		}
	}

	acc := floats.Sum(accs) / NFolds
	if to.verbose {
		m.logger.Info(fmt.Sprintf("Overall accuracy = %.4f", acc),
			log.AccuracyKey, acc, log.NFoldsKey, NFolds)
	}

	testPreds := make([]float64, test.NRows())
	col := make([]float64, NFolds)
	for j := range testPreds {
		testPreds[j] = stat.Mean(mat.Col(col, j, stacked), nil)
	}

	oof, err := work.Col(cols.Preds)
	if err != nil {
		return nil, err
	}
	if missing := lo.CountBy(oof, math.IsNaN); missing > 0 {
		return nil, errors.NewModelError("CVModel.Train",
			fmt.Sprintf("%d rows received no out-of-fold prediction", missing), nil)
	}

	return &Result{
		OOF:            oof,
		TestPreds:      testPreds,
		Accuracy:       acc,
		FoldAccuracies: accs,
	}, nil
}

// TrainFold trains one fold. Rows of df whose fold index differs from fold
// are used for fitting, the others are scored and get their positive-class
// probability written into df's preds column, which must already exist.
// The drop columns are excluded from the features. test must hold every
// feature column.
func (m *CVModel) TrainFold(df, test *frame.Frame, fold int, params model.Params, drop []string, opts ...TrainOption) (*FoldResult, error) {
	if fold < 0 || fold >= NFolds {
		return nil, errors.NewValidationError("fold", fmt.Sprintf("must be in [0, %d)", NFolds), fold)
	}
	return m.trainFold(df, test, fold, params, drop, m.trainOptions(opts))
}

func (m *CVModel) trainFold(df, test *frame.Frame, fold int, params model.Params, drop []string, to trainOptions) (*FoldResult, error) {
	cols := m.opts.columns
	selector := float64(fold)

	trainIdx, err := df.Where(cols.Fold, func(v float64) bool { return v != selector })
	if err != nil {
		return nil, errors.NewFoldError(fold, "split", err)
	}
	valIdx, _ := df.Where(cols.Fold, func(v float64) bool { return v == selector })
	if len(trainIdx) == 0 || len(valIdx) == 0 {
		return nil, errors.NewFoldError(fold, "split", errors.ErrEmptyData)
	}

	XTrain, yTrain, err := splitXY(df, trainIdx, cols.Label, drop)
	if err != nil {
		return nil, errors.NewFoldError(fold, "split", err)
	}
	XVal, yVal, err := splitXY(df, valIdx, cols.Label, drop)
	if err != nil {
		return nil, errors.NewFoldError(fold, "split", err)
	}
	XTest, err := test.Select(XTrain.Columns()...)
	if err != nil {
		return nil, errors.NewFoldError(fold, "split", err)
	}

	var clf model.Classifier
	err = errors.SafeExecute("InitClassifier", func() (err error) {
		clf, err = m.estimator.InitClassifier(params.Copy())
		return err
	})
	if err == nil && clf == nil {
		err = errors.NewValueError("InitClassifier", "returned a nil classifier")
	}
	if err != nil {
		return nil, errors.NewFoldError(fold, "init", err)
	}

	var fitOpts []model.FitOption
	if fp, ok := m.estimator.(FitParameterizer); ok {
		data := FitData{
			XTrain: mat.DenseCopyOf(XTrain.Matrix()),
			YTrain: mat.DenseCopyOf(yTrain),
			XVal:   mat.DenseCopyOf(XVal.Matrix()),
			YVal:   mat.DenseCopyOf(yVal),
		}
		err = errors.SafeExecute("ExtraFitParameters", func() (err error) {
			fitOpts, err = fp.ExtraFitParameters(data, params.Copy())
			return err
		})
		if err != nil {
			return nil, errors.NewFoldError(fold, "fit_params", err)
		}
	}

	if err := errors.SafeExecute("Classifier.Fit", func() error {
		return clf.Fit(XTrain.Matrix(), yTrain, fitOpts...)
	}); err != nil {
		return nil, errors.NewFoldError(fold, "fit", err)
	}

	var valPred mat.Matrix
	if err := errors.SafeExecute("Classifier.Predict", func() (err error) {
		valPred, err = clf.Predict(XVal.Matrix())
		return err
	}); err != nil {
		return nil, errors.NewFoldError(fold, "predict", err)
	}
	acc, err := metrics.AccuracyMatrix(yVal, valPred)
	if err != nil {
		return nil, errors.NewFoldError(fold, "score", err)
	}
	if to.verbose {
		m.logger.Info(fmt.Sprintf("Fold %d - Accuracy = %.4f", fold+1, acc),
			log.FoldKey, fold+1, log.AccuracyKey, acc, log.SamplesKey, len(valIdx))
	}

	valProba, err := m.positiveProba(clf, XVal.Matrix())
	if err != nil {
		return nil, errors.NewFoldError(fold, "predict_proba", err)
	}
	if err := df.SetRows(cols.Preds, valIdx, valProba); err != nil {
		return nil, errors.NewFoldError(fold, "predict_proba", err)
	}

	testProba, err := m.positiveProba(clf, XTest.Matrix())
	if err != nil {
		return nil, errors.NewFoldError(fold, "predict_proba", err)
	}

	return &FoldResult{TestPreds: testProba, Accuracy: acc}, nil
}

func (m *CVModel) positiveProba(clf model.Classifier, X mat.Matrix) ([]float64, error) {
	var proba mat.Matrix
	if err := errors.SafeExecute("Classifier.PredictProba", func() (err error) {
		proba, err = clf.PredictProba(X)
		return err
	}); err != nil {
		return nil, err
	}
	out, err := model.PositiveProba(proba)
	if err != nil {
		return nil, err
	}
	if r, _ := X.Dims(); len(out) != r {
		return nil, errors.NewDimensionError("Classifier.PredictProba", r, len(out), 0)
	}
	return out, nil
}

// splitXY selects rows and separates the features from the label.
func splitXY(df *frame.Frame, rows []int, label string, drop []string) (*frame.Frame, *mat.Dense, error) {
	sub, err := df.Rows(rows)
	if err != nil {
		return nil, nil, err
	}
	y, err := sub.ColVec(label)
	if err != nil {
		return nil, nil, err
	}
	X, err := sub.Drop(drop...)
	if err != nil {
		return nil, nil, err
	}
	return X, y, nil
}

// validateFolds checks that the fold column is a clean partition into
// NFolds non-empty folds and that the label column exists.
func (m *CVModel) validateFolds(df *frame.Frame) error {
	cols := m.opts.columns
	if !df.HasColumn(cols.Label) {
		return errors.NewValueError("CVModel.Train", fmt.Sprintf("column %q not found", cols.Label))
	}
	folds, err := df.Col(cols.Fold)
	if err != nil {
		return err
	}

	counts := make([]int, NFolds)
	for i, v := range folds {
		if v != math.Trunc(v) || v < 0 || v >= NFolds {
			return errors.NewValidationError(cols.Fold,
				fmt.Sprintf("row %d: fold index must be an integer in [0, %d)", i, NFolds), v)
		}
		counts[int(v)]++
	}
	for fold, n := range counts {
		if n == 0 {
			return errors.NewValidationError(cols.Fold, fmt.Sprintf("fold %d has no rows", fold), counts)
		}
	}
	return nil
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
