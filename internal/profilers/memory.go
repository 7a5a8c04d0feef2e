package profilers

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/multiprof/multiprof/internal/baseline"
	"github.com/multiprof/multiprof/internal/procref"
	"github.com/multiprof/multiprof/internal/safe"
	"github.com/multiprof/multiprof/pkg/profile"
)

// memoryProfiler reports resident set size and heap statistics. For call
// targets it measures the profiler's own process around the invocation,
// corrected against the baseline captured before any profiled work ran.
// For process targets it snapshots the referenced process.
type memoryProfiler struct {
	target   profile.Target
	baseline baseline.Provider
	logger   zerolog.Logger
}

func (p *memoryProfiler) Run(ctx context.Context) (*profile.Record, error) {
	switch p.target.Kind() {
	case profile.TargetCall:
		return p.runCall()
	case profile.TargetProcess:
		return p.runProcess(ctx)
	default:
		return nil, fmt.Errorf("unsupported target kind %d", p.target.Kind())
	}
}

func (p *memoryProfiler) runCall() (*profile.Record, error) {
	base, err := p.baseline.BaselineRSS()
	if err != nil {
		return nil, fmt.Errorf("failed to measure baseline RSS: %w", err)
	}

	proc, err := process.NewProcess(int32(os.Getpid())) // #nosec G115 - PIDs fit in int32 on supported platforms
	if err != nil {
		return nil, fmt.Errorf("failed to open current process: %w", err)
	}

	var before runtime.MemStats
	runtime.ReadMemStats(&before)

	result, callErr := p.target.Call().Invoke()
	if callErr != nil {
		return nil, fmt.Errorf("profiled call failed: %w", callErr)
	}

	var after runtime.MemStats
	runtime.ReadMemStats(&after)

	mem, err := proc.MemoryInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to read memory info: %w", err)
	}
	rss := safe.Uint64ToInt64(mem.RSS)

	liveBefore := safe.Uint64ToInt64(before.Mallocs - before.Frees)
	liveAfter := safe.Uint64ToInt64(after.Mallocs - after.Frees)

	rec := profile.NewRecord()
	rec.Set("baseline_rss_bytes", base)
	rec.Set("rss_bytes", rss)
	rec.Set("rss_delta_bytes", rss-base)
	rec.Set("heap_alloc_delta_bytes", safe.Uint64ToInt64(after.HeapAlloc)-safe.Uint64ToInt64(before.HeapAlloc))
	rec.Set("total_alloc_delta_bytes", safe.Uint64ToInt64(after.TotalAlloc)-safe.Uint64ToInt64(before.TotalAlloc))
	rec.Set("objects_delta", liveAfter-liveBefore)
	rec.Set("gc_runs", int64(after.NumGC-before.NumGC))
	rec.Set(profile.ResultKey, result)

	return rec, nil
}

func (p *memoryProfiler) runProcess(ctx context.Context) (*profile.Record, error) {
	ref, err := procref.Parse(p.target.ProcessRef())
	if err != nil {
		return nil, err
	}

	pid, err := ref.PID()
	if err != nil {
		return nil, err
	}

	p.logger.Debug().Int32("pid", pid).Str("ref", ref.String()).Msg("Resolved process target")

	proc, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("failed to open process %d: %w", pid, err)
	}

	mem, err := proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read memory info for process %d: %w", pid, err)
	}

	rec := profile.NewRecord()
	rec.Set("pid", int64(pid))
	if name, err := proc.NameWithContext(ctx); err == nil {
		rec.Set("process_name", name)
	}
	rec.Set("rss_bytes", safe.Uint64ToInt64(mem.RSS))
	rec.Set("vms_bytes", safe.Uint64ToInt64(mem.VMS))

	return rec, nil
}
