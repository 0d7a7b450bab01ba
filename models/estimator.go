package models

import (
	"github.com/MalayAgr/Kaggle-Space-Titanic/core/frame"
	"github.com/MalayAgr/Kaggle-Space-Titanic/core/model"
	"github.com/c-bata/goptuna"
	"gonum.org/v1/gonum/mat"
)

// Estimator is implemented by every concrete model. It is the only required
// hook: InitClassifier builds a fresh, unfitted classifier for one fold.
// Implementations must treat params as read-only.
type Estimator interface {
	InitClassifier(params model.Params) (model.Classifier, error)
}

// Searcher is implemented by estimators that define their own search
// objective. The objective receives the CVModel so it can run Train on the
// preprocessed frames and return a score to maximize.
type Searcher interface {
	Objective(trial goptuna.Trial, cv *CVModel, train, test *frame.Frame) (float64, error)
}

// ParamSuggester is implemented by estimators that only describe their
// search space. HyperparameterSearch then maximizes the mean
// cross-validation accuracy of the suggested params (see CVObjective).
//
//	func (m *logReg) SuggestParams(trial goptuna.Trial) model.Params {
//		return model.Params{
//			"C": lo.Must(trial.SuggestLogFloat("C", 1e-3, 10)),
//		}
//	}
type ParamSuggester interface {
	SuggestParams(trial goptuna.Trial) model.Params
}

// Preprocessor is implemented by estimators that transform the datasets
// before training or searching. Without it the stored frames are used as is.
type Preprocessor interface {
	PreprocessDatasets(train, test *frame.Frame) (*frame.Frame, *frame.Frame, error)
}

// FitData is the fold split handed to FitParameterizer. The matrices are
// copies; changing them has no effect on training.
type FitData struct {
	XTrain *mat.Dense
	YTrain *mat.Dense
	XVal   *mat.Dense
	YVal   *mat.Dense
}

// FitParameterizer is implemented by estimators whose classifier needs
// extra Fit arguments per fold, typically a validation set for early
// stopping.
type FitParameterizer interface {
	ExtraFitParameters(data FitData, params model.Params) ([]model.FitOption, error)
}
