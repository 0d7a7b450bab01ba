package model

import (
	"sync"

	"github.com/MalayAgr/Kaggle-Space-Titanic/pkg/errors"
)

// StateManager manages the fitted state of a model in a thread-safe manner.
type StateManager struct {
	mu sync.RWMutex

	fitted    bool
	nFeatures int
	nSamples  int
}

// NewStateManager creates a new StateManager instance.
func NewStateManager() *StateManager {
	return &StateManager{}
}

// IsFitted returns whether the model has been fitted.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fitted
}

// SetFitted marks the model as fitted and records the training dimensions.
func (s *StateManager) SetFitted(nFeatures, nSamples int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = true
	s.nFeatures = nFeatures
	s.nSamples = nSamples
}

// Reset resets the fitted state.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = false
	s.nFeatures = 0
	s.nSamples = 0
}

// NFeatures returns the number of features seen during fitting.
func (s *StateManager) NFeatures() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nFeatures
}

// RequireFitted returns a NotFittedError for modelName.method if the model
// has not been fitted, and a DimensionError if nFeatures differs from the
// number of features seen during Fit.
func (s *StateManager) RequireFitted(modelName, method string, nFeatures int) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.fitted {
		return errors.NewNotFittedError(modelName, method)
	}
	if nFeatures != s.nFeatures {
		return errors.NewDimensionError(modelName+"."+method, s.nFeatures, nFeatures, 1)
	}
	return nil
}
