package models

import (
	"slices"
	"sync"

	"github.com/MalayAgr/Kaggle-Space-Titanic/core/frame"
	"github.com/MalayAgr/Kaggle-Space-Titanic/pkg/errors"
	"github.com/MalayAgr/Kaggle-Space-Titanic/pkg/log"
	"github.com/samber/lo"
)

// Factory builds a named CVModel over a train and test frame.
type Factory func(train, test *frame.Frame, opts ...Option) (*CVModel, error)

// NewFactory returns a Factory that builds a CVModel called name around a
// fresh estimator from newEstimator.
func NewFactory(name string, newEstimator func() Estimator) Factory {
	return func(train, test *frame.Frame, opts ...Option) (*CVModel, error) {
		return New(name, newEstimator(), train, test, opts...)
	}
}

// Registry maps model names to factories. Entries are added by explicit
// Register calls at startup and never removed. It is safe for concurrent
// use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Factory
	logger  log.Logger
}

// NewRegistry creates an empty registry. Duplicate registrations are
// reported on logger; nil means the process-wide logger.
func NewRegistry(logger log.Logger) *Registry {
	return &Registry{
		entries: make(map[string]Factory),
		logger:  logger,
	}
}

// DefaultRegistry is the process-wide registry used by Register and Lookup.
var DefaultRegistry = NewRegistry(nil)

// Register adds f under name. Registering an existing name replaces the
// previous factory and logs a warning.
func (r *Registry) Register(name string, f Factory) error {
	if name == "" {
		return errors.NewValidationError("name", "must not be empty", name)
	}
	if f == nil {
		return errors.NewValidationError("factory", "must not be nil", name)
	}

	r.mu.Lock()
	_, dup := r.entries[name]
	r.entries[name] = f
	r.mu.Unlock()

	if dup {
		w := errors.NewDuplicateRegistrationWarning(name)
		r.log().Warn(w.Error(), log.ModelNameKey, name)
	}
	return nil
}

// MustRegister is Register that panics on error. Intended for package
// initialisation with literal names.
func (r *Registry) MustRegister(name string, f Factory) {
	if err := r.Register(name, f); err != nil {
		panic(err)
	}
}

// Lookup returns the factory registered under name.
func (r *Registry) Lookup(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.entries[name]
	return f, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := lo.Keys(r.entries)
	r.mu.RUnlock()
	slices.Sort(names)
	return names
}

// Build looks up name and calls its factory.
func (r *Registry) Build(name string, train, test *frame.Frame, opts ...Option) (*CVModel, error) {
	f, ok := r.Lookup(name)
	if !ok {
		return nil, errors.NewValueError("Registry.Build", "unknown model "+name)
	}
	return f(train, test, opts...)
}

func (r *Registry) log() log.Logger {
	if r.logger != nil {
		return r.logger
	}
	return log.GetLogger()
}

// Register adds f to DefaultRegistry.
func Register(name string, f Factory) error {
	return DefaultRegistry.Register(name, f)
}

// Lookup reads DefaultRegistry.
func Lookup(name string) (Factory, bool) {
	return DefaultRegistry.Lookup(name)
}
