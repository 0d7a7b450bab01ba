// Package models is the cross-validation and hyperparameter-search layer
// shared by every competition model.
//
// A concrete model supplies an Estimator (how to build a classifier from
// params) and optionally a search objective, a preprocessing step and extra
// fit arguments. CVModel runs the fixed 5-fold scheme around it: per-fold
// training, out-of-fold prediction collection, test prediction averaging
// and a TPE search with successive-halving pruning.
//
//	models.DefaultRegistry.MustRegister("logreg", models.NewFactory("logreg", newLogReg))
//
//	f, _ := models.Lookup("logreg")
//	cv, err := f(train, test)
//	params, err := cv.HyperparameterSearch(50)
//	res, err := cv.Train(train, test, params)
package models

import (
	"github.com/MalayAgr/Kaggle-Space-Titanic/core/frame"
	"github.com/MalayAgr/Kaggle-Space-Titanic/pkg/errors"
	"github.com/MalayAgr/Kaggle-Space-Titanic/pkg/log"
)

// CVModel runs cross-validated training and hyperparameter search for one
// Estimator over a fixed train and test frame.
type CVModel struct {
	name      string
	estimator Estimator
	train     *frame.Frame
	test      *frame.Frame

	opts         options
	logger       log.Logger
	optimizerLog *log.Verbosity
}

// New creates a CVModel. train and test are stored as given; Train works on
// copies.
func New(name string, est Estimator, train, test *frame.Frame, opts ...Option) (*CVModel, error) {
	if est == nil {
		return nil, errors.NewValidationError("estimator", "must not be nil", name)
	}
	if train == nil || test == nil {
		return nil, errors.NewModelError("models.New", "train and test frames are required", errors.ErrEmptyData)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.GetLogger()
	}

	logger := o.logger.With(log.ModelNameKey, name)
	return &CVModel{
		name:         name,
		estimator:    est,
		train:        train,
		test:         test,
		opts:         o,
		logger:       logger,
		optimizerLog: log.NewVerbosity(logger.With(log.ComponentKey, "goptuna"), log.LevelInfo),
	}, nil
}

// Name returns the registered model name.
func (m *CVModel) Name() string {
	return m.name
}

// Estimator returns the wrapped estimator.
func (m *CVModel) Estimator() Estimator {
	return m.estimator
}

// Columns returns the column names in use.
func (m *CVModel) Columns() Columns {
	return m.opts.columns
}

// OptimizerVerbosity returns the level switch of the optimizer's logger.
// HyperparameterSearch raises it to warn while trials run.
func (m *CVModel) OptimizerVerbosity() *log.Verbosity {
	return m.optimizerLog
}

// PreprocessDatasets returns the frames used for training and search: the
// estimator's Preprocessor output when it has one, the stored frames
// otherwise.
func (m *CVModel) PreprocessDatasets() (*frame.Frame, *frame.Frame, error) {
	p, ok := m.estimator.(Preprocessor)
	if !ok {
		return m.train, m.test, nil
	}
	train, test, err := p.PreprocessDatasets(m.train, m.test)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "%s: preprocessing failed", m.name)
	}
	return train, test, nil
}
