package config

import (
	"fmt"

	"github.com/eugenenazirov/coveralls-ci/internal/env"
)

type resolver func(r *Record, e env.Getter) error

var resolvers = map[Provider]resolver{
	CircleCI:      namedResolver(CircleCI),
	Actions:       namedResolver(Actions),
	AppVeyor:      namedResolver(AppVeyor),
	BuildKite:     namedResolver(BuildKite),
	Travis:        namedResolver(Travis),
	Semaphore:     namedResolver(Semaphore),
	Jenkins:       namedResolver(Jenkins),
	EnvAutoDetect: resolveAutoDetect,
}

// Resolve builds a fresh Record for provider p from environment variables:
// the provider specific variables first, then the common variables.
func Resolve(p Provider, e env.Getter) (Record, error) {
	resolve, ok := resolvers[p]
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrUnknownProvider, p)
	}

	var r Record
	if err := resolve(&r, e); err != nil {
		return Record{}, fmt.Errorf("resolve %s environment: %w", p, err)
	}
	if err := apply(&r, e, commonBindings); err != nil {
		return Record{}, fmt.Errorf("resolve common environment: %w", err)
	}
	return r, nil
}

// namedResolver reports the provider's fixed service identity and reads its
// own variable set.
func namedResolver(p Provider) resolver {
	bindings := providerBindings[p]
	return func(r *Record, e env.Getter) error {
		r.Set(FieldServiceName, p.ServiceName())
		return apply(r, e, bindings)
	}
}

// resolveAutoDetect takes the service identity from CI_NAME or
// COVERALLS_SERVICE_NAME but only ever reads the generic variables.
// Unrecognized service names are kept as given.
func resolveAutoDetect(r *Record, e env.Getter) error {
	return apply(r, e, envBindings)
}

func apply(r *Record, e env.Getter, bindings []Binding) error {
	for _, b := range bindings {
		for _, name := range b.Vars {
			value, ok, err := e.Get(name)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if b.Transform != nil {
				value = b.Transform(value)
			}
			r.Set(b.Field, value)
		}
	}
	return nil
}
