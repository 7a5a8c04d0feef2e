// Package baseline captures the resident set size of the current process
// before any profiled work runs, so memory profilers can report deltas
// against a stable reference point.
//
// The measurement is taken at most once per process. Repeated runs in the
// same process compare against the same baseline, which keeps cumulative
// memory growth visible across calls.
package baseline

import (
	"fmt"
	"os"
	"sync"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/multiprof/multiprof/internal/safe"
)

// Provider reports the baseline resident set size in bytes.
type Provider interface {
	BaselineRSS() (int64, error)
}

// Lazy measures the current process RSS on first use and caches the result.
type Lazy struct {
	once sync.Once
	rss  int64
	err  error
}

// BaselineRSS returns the cached baseline, measuring it on the first call.
// A measurement error is cached too and returned on every subsequent call.
func (l *Lazy) BaselineRSS() (int64, error) {
	l.once.Do(func() {
		l.rss, l.err = measureRSS()
	})
	return l.rss, l.err
}

func measureRSS() (int64, error) {
	proc, err := process.NewProcess(int32(os.Getpid())) // #nosec G115 - PIDs fit in int32 on supported platforms
	if err != nil {
		return 0, fmt.Errorf("failed to open current process: %w", err)
	}

	mem, err := proc.MemoryInfo()
	if err != nil {
		return 0, fmt.Errorf("failed to read memory info: %w", err)
	}

	return safe.Uint64ToInt64(mem.RSS), nil
}

var shared = &Lazy{}

// Shared returns the process-wide provider used by the memory profiler.
func Shared() *Lazy {
	return shared
}

// Static returns a provider that always reports rss. It is meant for tests.
func Static(rss int64) Provider {
	return staticProvider(rss)
}

type staticProvider int64

func (s staticProvider) BaselineRSS() (int64, error) {
	return int64(s), nil
}
