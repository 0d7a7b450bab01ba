package models

import (
	"github.com/MalayAgr/Kaggle-Space-Titanic/config"
	"github.com/MalayAgr/Kaggle-Space-Titanic/pkg/log"
)

// NFolds is the number of cross-validation folds. Fold indices are 0..NFolds-1.
const NFolds = 5

// Columns names the well-known columns of the train and test frames.
type Columns struct {
	Label string // 0/1 target, train only
	Fold  string // fold index, train only
	Preds string // out-of-fold predictions, added by Train
	ID    string // row identifier, dropped from the test frame
}

// DefaultColumns returns the Spaceship Titanic column names.
func DefaultColumns() Columns {
	return Columns{
		Label: "Transported",
		Fold:  "kfold",
		Preds: "preds",
		ID:    "PassengerId",
	}
}

type options struct {
	columns         Columns
	verbose         bool
	logger          log.Logger
	seed            int64
	reductionFactor int
	minResource     int
}

func defaultOptions() options {
	return options{
		columns:         DefaultColumns(),
		verbose:         true,
		seed:            42,
		reductionFactor: 3,
		minResource:     1,
	}
}

// Option configures a CVModel.
type Option func(*options)

// WithVerbose toggles the per-fold and overall accuracy log lines.
func WithVerbose(verbose bool) Option {
	return func(o *options) {
		o.verbose = verbose
	}
}

// WithLogger sets the logger. Defaults to the process-wide logger.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSeed sets the seed of the search sampler.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithColumns overrides the well-known column names.
func WithColumns(columns Columns) Option {
	return func(o *options) {
		o.columns = columns
	}
}

// WithPruner configures the successive-halving pruner used by the search.
func WithPruner(reductionFactor, minResource int) Option {
	return func(o *options) {
		o.reductionFactor = reductionFactor
		o.minResource = minResource
	}
}

// WithConfig applies a loaded configuration.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) {
		o.verbose = cfg.Verbose
		o.seed = cfg.Search.Seed
		o.reductionFactor = cfg.Search.ReductionFactor
		o.minResource = cfg.Search.MinResource
		o.columns = Columns{
			Label: cfg.Columns.Label,
			Fold:  cfg.Columns.Fold,
			Preds: cfg.Columns.Preds,
			ID:    cfg.Columns.ID,
		}
	}
}

type trainOptions struct {
	verbose bool
	onFold  func(fold int, accuracy float64) error
}

// TrainOption configures a single Train or TrainFold call.
type TrainOption func(*trainOptions)

// Quiet disables accuracy logging for one call.
func Quiet() TrainOption {
	return func(o *trainOptions) {
		o.verbose = false
	}
}

// OnFold registers a callback run after each fold with the 0-based fold
// index and its accuracy. A non-nil error aborts Train and is returned
// unchanged.
func OnFold(fn func(fold int, accuracy float64) error) TrainOption {
	return func(o *trainOptions) {
		o.onFold = fn
	}
}
