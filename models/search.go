package models

import (
	"time"

	"github.com/MalayAgr/Kaggle-Space-Titanic/core/frame"
	"github.com/MalayAgr/Kaggle-Space-Titanic/core/model"
	"github.com/MalayAgr/Kaggle-Space-Titanic/pkg/errors"
	"github.com/MalayAgr/Kaggle-Space-Titanic/pkg/log"
	"github.com/c-bata/goptuna"
	"github.com/c-bata/goptuna/successivehalving"
	"github.com/c-bata/goptuna/tpe"
)

type objectiveFunc func(trial goptuna.Trial, train, test *frame.Frame) (float64, error)

// objective resolves the search objective of the estimator: its own
// Objective when it is a Searcher, the cross-validation objective over its
// suggested params when it is a ParamSuggester.
func (m *CVModel) objective() (objectiveFunc, error) {
	switch est := m.estimator.(type) {
	case Searcher:
		return func(trial goptuna.Trial, train, test *frame.Frame) (float64, error) {
			return est.Objective(trial, m, train, test)
		}, nil
	case ParamSuggester:
		return func(trial goptuna.Trial, train, test *frame.Frame) (float64, error) {
			return m.CVObjective(est, trial, train, test)
		}, nil
	}
	return nil, errors.NewNotImplementedError("Objective")
}

// CVObjective trains the folds quietly with the params suggested for trial
// and returns the mean accuracy. After each fold the running mean accuracy
// is reported to the pruner, and a pruned trial returns goptuna.ErrTrialPruned
// unwrapped so the study records it as pruned.
func (m *CVModel) CVObjective(s ParamSuggester, trial goptuna.Trial, train, test *frame.Frame) (float64, error) {
	params := s.SuggestParams(trial)

	var sum float64
	res, err := m.Train(train, test, params, Quiet(), OnFold(func(fold int, acc float64) error {
		sum += acc
		return trial.ShouldPrune(fold, sum/float64(fold+1))
	}))
	if err != nil {
		return 0, err
	}
	return res.Accuracy, nil
}

func (m *CVModel) newStudy() (*goptuna.Study, error) {
	pruner, err := successivehalving.NewPruner(
		successivehalving.OptionSetReductionFactor(m.opts.reductionFactor),
		successivehalving.OptionSetMinResource(m.opts.minResource),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create pruner")
	}

	study, err := goptuna.CreateStudy(m.name,
		goptuna.StudyOptionDirection(goptuna.StudyDirectionMaximize),
		goptuna.StudyOptionSampler(tpe.NewSampler(tpe.SamplerOptionSeed(m.opts.seed))),
		goptuna.StudyOptionPruner(pruner),
		goptuna.StudyOptionLogger(m.optimizerLog),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create study")
	}
	return study, nil
}

// HyperparameterSearch maximizes the estimator's objective over nTrials
// sequential trials and returns the best trial's params.
//
// The sampler is TPE seeded with the configured seed, so a deterministic
// objective yields the same params on every run. The optimizer's own
// logging is limited to warnings while the trials run.
func (m *CVModel) HyperparameterSearch(nTrials int) (model.Params, error) {
	if nTrials <= 0 {
		return nil, errors.NewValidationError("n_trials", "must be positive", nTrials)
	}
	objective, err := m.objective()
	if err != nil {
		return nil, err
	}

	train, test, err := m.PreprocessDatasets()
	if err != nil {
		return nil, err
	}

	study, err := m.newStudy()
	if err != nil {
		return nil, err
	}

	restore := m.optimizerLog.Suppress(log.LevelWarn)
	defer restore()

	start := time.Now()
	err = study.Optimize(func(trial goptuna.Trial) (value float64, err error) {
		defer errors.Recover(&err, "Objective")
		return objective(trial, train, test)
	}, nTrials)
	if err != nil {
		m.logger.Error("hyperparameter search failed", err, log.OperationKey, log.OperationSearch)
		return nil, errors.Wrapf(err, "%s: hyperparameter search failed", m.name)
	}

	best, err := study.GetBestParams()
	if err != nil {
		return nil, errors.Wrapf(err, "%s: no completed trial", m.name)
	}
	bestValue, err := study.GetBestValue()
	if err != nil {
		return nil, errors.Wrapf(err, "%s: no completed trial", m.name)
	}

	if m.opts.verbose {
		m.logger.Info("hyperparameter search finished",
			log.NTrialsKey, nTrials,
			log.BestValueKey, bestValue,
			log.HyperParamsKey, best,
			log.RandomSeedKey, m.opts.seed,
			log.DurationMsKey, time.Since(start).Milliseconds(),
		)
	}
	return model.Params(best), nil
}

// SearchAndTrain runs HyperparameterSearch and then Train on the
// preprocessed datasets with the best params.
func (m *CVModel) SearchAndTrain(nTrials int) (*Result, model.Params, error) {
	params, err := m.HyperparameterSearch(nTrials)
	if err != nil {
		return nil, nil, err
	}
	train, test, err := m.PreprocessDatasets()
	if err != nil {
		return nil, nil, err
	}
	res, err := m.Train(train, test, params)
	if err != nil {
		return nil, nil, err
	}
	return res, params, nil
}
