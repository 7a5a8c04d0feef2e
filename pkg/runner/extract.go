package runner

import (
	"github.com/multiprof/multiprof/pkg/profile"
)

// NoResult is returned by Run when no profiler recorded a return value for
// the target, distinguishing the absence of a result from a nil result.
var NoResult any = noResult{}

type noResult struct{}

func (noResult) String() string {
	return "<no result>"
}

// ExtractResult strips the reserved result field from every record and
// returns the first value found in stats order, which the runner guarantees
// to be registry order. Presence of the field decides, not its value: a
// recorded nil result is still a result.
//
// The boolean reports whether any record carried a result; when it is
// false the returned value is NoResult.
func ExtractResult(stats *profile.Stats) (any, bool) {
	result := NoResult
	found := false
	for _, opt := range stats.Options() {
		rec, ok := stats.Get(opt)
		if !ok {
			continue
		}
		if v, present := rec.Get(profile.ResultKey); present && !found {
			result = v
			found = true
		}
		rec.Delete(profile.ResultKey)
	}
	return result, found
}
