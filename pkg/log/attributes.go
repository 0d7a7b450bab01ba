package log

// Model and operation context.
const (
	// ModelNameKey identifies the registered model name.
	// Examples: "logreg", "lgbm"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "train", "search"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of model lifecycle.
	PhaseKey = "ml.phase"
)

// Data shape.
const (
	SamplesKey  = "data.samples"
	FeaturesKey = "data.features"
)

// Metrics.
const (
	// AccuracyKey records classification accuracy in [0.0, 1.0].
	AccuracyKey = "metrics.accuracy"

	// LossKey records a loss value during training.
	LossKey = "metrics.loss"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// IterationKey records the current iteration number of an iterative solver.
	IterationKey = "training.iteration"
)

// Cross-validation and search.
const (
	// FoldKey is the 1-based fold number, matching the console output of
	// per-fold accuracy.
	FoldKey = "cv.fold"

	// NFoldsKey is the number of folds.
	NFoldsKey = "cv.n_folds"

	// StageKey is the fold step that failed ("fit", "predict", ...).
	StageKey = "cv.stage"

	// TrialKey is the optimizer's trial number.
	TrialKey = "search.trial"

	// NTrialsKey is the number of requested trials.
	NTrialsKey = "search.n_trials"

	// BestValueKey is the best objective value found.
	BestValueKey = "search.best_value"

	// HyperParamsKey contains model hyperparameters.
	HyperParamsKey = "model.hyperparams"

	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"
)

// Error context.
const (
	ErrorCodeKey  = "error.code"
	SuggestionKey = "error.suggestion"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationTrain   = "train"
	OperationSearch  = "search"

	PhaseTraining      = "training"
	PhaseValidation    = "validation"
	PhasePreprocessing = "preprocessing"

	ErrorInvalidFolds = "INVALID_FOLDS"
	ErrorNotFitted    = "NOT_FITTED"
)
