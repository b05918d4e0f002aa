// Package params validates the loosely typed configuration mappings handed to
// lensing strategies.
//
// A strategy declares the keys it requires and the keys it accepts with a
// default value. Parse checks a user supplied mapping against that declaration
// and returns a resolved copy in which every declared key is present.
package params

import (
	"sort"

	"github.com/pkg/errors"
)

// ErrConfig is returned for every configuration problem: missing required keys,
// unknown keys, values of the wrong type or invalid combinations of values.
var ErrConfig = errors.New("invalid configuration")

// Config is a configuration mapping, usually decoded from YAML.
type Config map[string]any

type parseOptions struct {
	allowUnregistered bool
}

// Option customises Parse.
type Option func(o *parseOptions)

// AllowUnregistered keeps keys that are neither required nor optional instead of
// rejecting them.
func AllowUnregistered() Option {
	return func(o *parseOptions) {
		o.allowUnregistered = true
	}
}

// Parse resolves config against the required keys and the optional keys with
// their defaults. The label is used in error messages, usually the strategy name.
//
// A nil config is treated as empty. The input mapping is never modified.
// Unknown keys are rejected unless AllowUnregistered is given.
func Parse(config Config, required []string, optional map[string]any, label string, opts ...Option) (Config, error) {
	pOpts := &parseOptions{}
	for _, opt := range opts {
		opt(pOpts)
	}

	for _, key := range required {
		if _, ok := config[key]; !ok {
			return nil, errors.Wrapf(ErrConfig, "%s: missing required field %q", label, key)
		}
	}

	if !pOpts.allowUnregistered {
		known := make(map[string]struct{}, len(required)+len(optional))
		for _, key := range required {
			known[key] = struct{}{}
		}

		for key := range optional {
			known[key] = struct{}{}
		}

		for _, key := range config.Keys() {
			if _, ok := known[key]; !ok {
				return nil, errors.Wrapf(ErrConfig, "%s: %q is not a valid field", label, key)
			}
		}
	}

	resolved := config.Clone()
	for key, def := range optional {
		if _, ok := resolved[key]; !ok {
			resolved[key] = def
		}
	}

	return resolved, nil
}

// Clone returns a shallow copy of c. The copy of a nil Config is empty, not nil.
func (c Config) Clone() Config {
	out := make(Config, len(c))
	for k, v := range c {
		out[k] = v
	}

	return out
}

// Keys returns the keys of c in lexical order.
func (c Config) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// IsSet reports whether key is present with a non-nil value.
func (c Config) IsSet(key string) bool {
	v, ok := c[key]

	return ok && v != nil
}

// Float returns the value of key as a float64. Any numeric type produced by a
// YAML or JSON decoder is accepted.
func (c Config) Float(key string) (float64, error) {
	v, ok := c[key]
	if !ok || v == nil {
		return 0, errors.Wrapf(ErrConfig, "field %q is not set", key)
	}

	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	default:
		return 0, errors.Wrapf(ErrConfig, "field %q must be a number, got %T", key, v)
	}
}

// String returns the value of key as a string.
func (c Config) String(key string) (string, error) {
	v, ok := c[key]
	if !ok || v == nil {
		return "", errors.Wrapf(ErrConfig, "field %q is not set", key)
	}

	s, ok := v.(string)
	if !ok {
		return "", errors.Wrapf(ErrConfig, "field %q must be a string, got %T", key, v)
	}

	return s, nil
}

// Bool returns the value of key as a bool.
func (c Config) Bool(key string) (bool, error) {
	v, ok := c[key]
	if !ok || v == nil {
		return false, errors.Wrapf(ErrConfig, "field %q is not set", key)
	}

	b, ok := v.(bool)
	if !ok {
		return false, errors.Wrapf(ErrConfig, "field %q must be a boolean, got %T", key, v)
	}

	return b, nil
}
