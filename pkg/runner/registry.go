package runner

import (
	"fmt"

	"github.com/multiprof/multiprof/internal/profilers"
	"github.com/multiprof/multiprof/pkg/profile"
)

// Entry binds an option code to the constructor of its back end.
type Entry struct {
	Option profile.Option
	New    profile.Constructor
}

// Registry is the ordered catalog of available profilers. Slice order is
// canonical: the runner executes back ends in registry order regardless of
// the order codes appear in a configuration string.
type Registry []Entry

// NewRegistry builds a registry from entries, rejecting duplicate codes.
func NewRegistry(entries ...Entry) (Registry, error) {
	seen := make(map[profile.Option]bool, len(entries))
	for _, e := range entries {
		if seen[e.Option] {
			return nil, fmt.Errorf("duplicate profiler code %q in registry", e.Option)
		}
		seen[e.Option] = true
	}
	return Registry(entries), nil
}

// Default returns the standard registry in its canonical execution order:
// memory, flame graph, code heat, and function-level profiling.
func Default() Registry {
	return Registry{
		{Option: 'm', New: profilers.NewMemory},
		{Option: 'c', New: profilers.NewFlameGraph},
		{Option: 'h', New: profilers.NewCodeHeat},
		{Option: 'p', New: profilers.NewFunctions},
	}
}

// Lookup returns the entry registered under opt.
func (reg Registry) Lookup(opt profile.Option) (Entry, bool) {
	for _, e := range reg {
		if e.Option == opt {
			return e, true
		}
	}
	return Entry{}, false
}

// Options returns the registered codes in execution order.
func (reg Registry) Options() []profile.Option {
	opts := make([]profile.Option, 0, len(reg))
	for _, e := range reg {
		opts = append(opts, e.Option)
	}
	return opts
}
