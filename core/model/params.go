package model

import (
	"math"
	"sort"
)

// Params maps hyperparameter names to values. It is built either by the
// caller or by the hyperparameter search, and treated as read-only once it
// is handed to a classifier constructor.
//
//	model.Params{
//		"C":        0.5,
//		"max_iter": 200,
//	}
type Params map[string]any

// Copy returns a shallow copy.
func (p Params) Copy() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Keys returns the parameter names in sorted order.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetInt returns an integer parameter, or def when the name is absent or
// the value is not integral. Integral float64 values are accepted since the
// optimizer reports every numeric suggestion as float64.
func (p Params) GetInt(name string, def int) int {
	switch v := p[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case int32:
		return int(v)
	case float64:
		if v == math.Trunc(v) {
			return int(v)
		}
	}
	return def
}

// GetFloat returns a float parameter, or def when absent or non-numeric.
func (p Params) GetFloat(name string, def float64) float64 {
	switch v := p[name].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return def
}

// GetString returns a string parameter, or def.
func (p Params) GetString(name string, def string) string {
	if v, ok := p[name].(string); ok {
		return v
	}
	return def
}

// GetBool returns a bool parameter, or def.
func (p Params) GetBool(name string, def bool) bool {
	if v, ok := p[name].(bool); ok {
		return v
	}
	return def
}
