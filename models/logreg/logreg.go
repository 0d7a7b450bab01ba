// Package logreg registers the logistic regression model with the
// cross-validation layer.
package logreg

import (
	"github.com/MalayAgr/Kaggle-Space-Titanic/core/frame"
	"github.com/MalayAgr/Kaggle-Space-Titanic/core/model"
	"github.com/MalayAgr/Kaggle-Space-Titanic/models"
	"github.com/MalayAgr/Kaggle-Space-Titanic/preprocessing"
	"github.com/MalayAgr/Kaggle-Space-Titanic/sklearn/linear_model"
	"github.com/c-bata/goptuna"
	"github.com/samber/lo"
)

// Name is the registry key.
const Name = "logreg"

// DefaultEarlyStoppingRounds is used when params carry no early_stopping_rounds.
const DefaultEarlyStoppingRounds = 10

// Estimator builds a LogisticRegression per fold. The numeric columns in
// Scale are mean-imputed and standardized before training.
type Estimator struct {
	Scale []string
}

var (
	_ models.Estimator        = (*Estimator)(nil)
	_ models.ParamSuggester   = (*Estimator)(nil)
	_ models.Preprocessor     = (*Estimator)(nil)
	_ models.FitParameterizer = (*Estimator)(nil)
)

// InitClassifier implements models.Estimator.
func (e *Estimator) InitClassifier(params model.Params) (model.Classifier, error) {
	return linear_model.NewLogisticRegressionFromParams(params)
}

// SuggestParams implements models.ParamSuggester.
func (e *Estimator) SuggestParams(trial goptuna.Trial) model.Params {
	return model.Params{
		"C":             lo.Must(trial.SuggestLogFloat("C", 1e-3, 10)),
		"learning_rate": lo.Must(trial.SuggestLogFloat("learning_rate", 1e-2, 1)),
		"max_iter":      lo.Must(trial.SuggestDiscreteFloat("max_iter", 100, 500, 100)),
	}
}

// PreprocessDatasets implements models.Preprocessor.
func (e *Estimator) PreprocessDatasets(train, test *frame.Frame) (*frame.Frame, *frame.Frame, error) {
	train, test, err := preprocessing.FillNaN(train, test, e.Scale...)
	if err != nil {
		return nil, nil, err
	}
	return preprocessing.ScaleColumns(train, test, e.Scale...)
}

// ExtraFitParameters implements models.FitParameterizer. The held-out fold
// is used as the early stopping set.
func (e *Estimator) ExtraFitParameters(data models.FitData, params model.Params) ([]model.FitOption, error) {
	rounds := params.GetInt(linear_model.EarlyStoppingRounds, DefaultEarlyStoppingRounds)
	return []model.FitOption{
		model.WithEvalSet(data.XVal, data.YVal),
		model.WithFitParam(linear_model.EarlyStoppingRounds, rounds),
	}, nil
}

// Register adds the model to r. scale lists the columns to standardize.
func Register(r *models.Registry, scale ...string) error {
	return r.Register(Name, models.NewFactory(Name, func() models.Estimator {
		return &Estimator{Scale: scale}
	}))
}
