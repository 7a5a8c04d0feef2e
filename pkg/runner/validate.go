package runner

import (
	"github.com/multiprof/multiprof/pkg/profile"
)

// Validate checks a configuration string against the registry and returns
// the set of requested options.
//
// A code appearing more than once yields *AmbiguousConfigError; a code with
// no registered back end yields *BadOptionError. Duplicates are detected
// over the whole string before unknown codes are considered, and the first
// unknown code in configuration order is the one reported. Validation has
// no side effects.
func (reg Registry) Validate(configuration string) (map[profile.Option]bool, error) {
	requested := make(map[profile.Option]bool, len(configuration))
	for _, code := range configuration {
		opt := profile.Option(code)
		if requested[opt] {
			return nil, &AmbiguousConfigError{Config: configuration}
		}
		requested[opt] = true
	}

	for _, code := range configuration {
		opt := profile.Option(code)
		if _, ok := reg.Lookup(opt); !ok {
			return nil, &BadOptionError{Option: opt}
		}
	}

	return requested, nil
}
