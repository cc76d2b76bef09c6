package env

import (
	"fmt"
	"os"
	"unicode/utf8"
)

// LookupFunc matches the signature of os.LookupEnv.
type LookupFunc func(name string) (string, bool)

// Getter reads a single named variable.
type Getter interface {
	Get(name string) (string, bool, error)
}

// Env resolves variables through a LookupFunc.
type Env struct {
	lookup LookupFunc
}

// New returns an Env backed by the process environment.
func New() *Env {
	return &Env{lookup: os.LookupEnv}
}

// FromMap returns an Env backed by a fixed set of variables, primarily for tests.
func FromMap(vars map[string]string) *Env {
	snapshot := make(map[string]string, len(vars))
	for k, v := range vars {
		snapshot[k] = v
	}
	return &Env{
		lookup: func(name string) (string, bool) {
			v, ok := snapshot[name]
			return v, ok
		},
	}
}

// Get returns the value of name and whether it is present. A variable that
// is undefined or empty is absent.
func (e *Env) Get(name string) (string, bool, error) {
	value, ok := e.lookup(name)
	if !ok || value == "" {
		return "", false, nil
	}
	if !utf8.ValidString(value) {
		return "", false, fmt.Errorf("%s: %w", name, ErrMalformedValue)
	}
	return value, true, nil
}
