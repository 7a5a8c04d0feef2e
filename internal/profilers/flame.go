package profilers

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/multiprof/multiprof/pkg/profile"
)

// flameProfiler samples CPU stacks and collapses them into folded
// flamegraph form. Call targets are profiled around the invocation;
// process targets are sampled remotely through their debug endpoint.
type flameProfiler struct {
	target   profile.Target
	fetchSec int
	logger   zerolog.Logger
}

func (p *flameProfiler) Run(ctx context.Context) (*profile.Record, error) {
	switch p.target.Kind() {
	case profile.TargetCall:
		return p.runCall()
	case profile.TargetProcess:
		return p.runProcess(ctx)
	default:
		return nil, fmt.Errorf("unsupported target kind %d", p.target.Kind())
	}
}

func (p *flameProfiler) runCall() (*profile.Record, error) {
	prof, result, elapsed, err := captureCPUProfile(p.target.Call())
	if err != nil {
		return nil, err
	}

	folded := foldStacks(prof)
	samples := totalCount(prof, sampleIndex(prof, "samples", 0))

	p.logger.Debug().
		Int64("samples", samples).
		Int("unique_stacks", len(folded)).
		Msg("CPU profile collected")

	rec := profile.NewRecord()
	rec.Set("duration_ms", float64(elapsed)/float64(time.Millisecond))
	rec.Set("sample_count", samples)
	rec.Set("unique_stacks", int64(len(folded)))
	rec.Set("stacks", folded)
	rec.Set(profile.ResultKey, result)

	return rec, nil
}

func (p *flameProfiler) runProcess(ctx context.Context) (*profile.Record, error) {
	url, err := processProfileURL(p.target, p.fetchSec)
	if err != nil {
		return nil, err
	}

	p.logger.Debug().Str("url", url).Msg("Fetching CPU profile")

	prof, err := fetchProfile(ctx, url, fetchTimeout(p.fetchSec))
	if err != nil {
		return nil, err
	}

	folded := foldStacks(prof)
	samples := totalCount(prof, sampleIndex(prof, "samples", 0))

	rec := profile.NewRecord()
	rec.Set("duration_ms", float64(prof.DurationNanos)/float64(time.Millisecond))
	rec.Set("sample_count", samples)
	rec.Set("unique_stacks", int64(len(folded)))
	rec.Set("stacks", folded)

	return rec, nil
}
