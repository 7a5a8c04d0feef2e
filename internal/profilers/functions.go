package profilers

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/multiprof/multiprof/pkg/profile"
)

// maxFunctions caps the size of the reported function table.
const maxFunctions = 20

// functionsProfiler reduces a CPU profile to a flat per-function table with
// flat and cumulative sample counts. Acquisition matches the flame profiler;
// only the reduction differs.
type functionsProfiler struct {
	target   profile.Target
	fetchSec int
	logger   zerolog.Logger
}

func (p *functionsProfiler) Run(ctx context.Context) (*profile.Record, error) {
	switch p.target.Kind() {
	case profile.TargetCall:
		return p.runCall()
	case profile.TargetProcess:
		return p.runProcess(ctx)
	default:
		return nil, fmt.Errorf("unsupported target kind %d", p.target.Kind())
	}
}

func (p *functionsProfiler) runCall() (*profile.Record, error) {
	prof, result, elapsed, err := captureCPUProfile(p.target.Call())
	if err != nil {
		return nil, err
	}

	stats := topFunctions(prof, maxFunctions)
	samples := totalCount(prof, sampleIndex(prof, "samples", 0))

	p.logger.Debug().
		Int64("samples", samples).
		Int("functions", len(stats)).
		Msg("Function table reduced")

	rec := profile.NewRecord()
	rec.Set("duration_ms", float64(elapsed)/float64(time.Millisecond))
	rec.Set("sample_count", samples)
	rec.Set("functions", stats)
	rec.Set(profile.ResultKey, result)

	return rec, nil
}

func (p *functionsProfiler) runProcess(ctx context.Context) (*profile.Record, error) {
	url, err := processProfileURL(p.target, p.fetchSec)
	if err != nil {
		return nil, err
	}

	p.logger.Debug().Str("url", url).Msg("Fetching CPU profile")

	prof, err := fetchProfile(ctx, url, fetchTimeout(p.fetchSec))
	if err != nil {
		return nil, err
	}

	stats := topFunctions(prof, maxFunctions)
	samples := totalCount(prof, sampleIndex(prof, "samples", 0))

	rec := profile.NewRecord()
	rec.Set("duration_ms", float64(prof.DurationNanos)/float64(time.Millisecond))
	rec.Set("sample_count", samples)
	rec.Set("functions", stats)

	return rec, nil
}
