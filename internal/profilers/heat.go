package profilers

import (
	"context"
	"fmt"

	pprofile "github.com/google/pprof/profile"
	"github.com/rs/zerolog"

	"github.com/multiprof/multiprof/pkg/profile"
)

// maxHeatSites caps the number of allocation sites reported per run.
const maxHeatSites = 20

// heatProfiler attributes heap allocations to source lines. Call targets
// get a delta of the allocation profile around the invocation; process
// targets get a heap snapshot from their debug endpoint.
type heatProfiler struct {
	target profile.Target
	logger zerolog.Logger
}

func (p *heatProfiler) Run(ctx context.Context) (*profile.Record, error) {
	switch p.target.Kind() {
	case profile.TargetCall:
		return p.runCall()
	case profile.TargetProcess:
		return p.runProcess(ctx)
	default:
		return nil, fmt.Errorf("unsupported target kind %d", p.target.Kind())
	}
}

func (p *heatProfiler) runCall() (*profile.Record, error) {
	prof, result, err := captureAllocsDelta(p.target.Call())
	if err != nil {
		return nil, err
	}

	rec := p.reduce(prof)
	rec.Set(profile.ResultKey, result)

	return rec, nil
}

func (p *heatProfiler) runProcess(ctx context.Context) (*profile.Record, error) {
	url, err := processHeapURL(p.target)
	if err != nil {
		return nil, err
	}

	p.logger.Debug().Str("url", url).Msg("Fetching heap profile")

	prof, err := fetchProfile(ctx, url, fetchTimeout(0))
	if err != nil {
		return nil, err
	}

	return p.reduce(prof), nil
}

func (p *heatProfiler) reduce(prof *pprofile.Profile) *profile.Record {
	bytesIdx, objectsIdx := allocIndices(prof)
	sites := lineHeat(prof, maxHeatSites)

	p.logger.Debug().
		Int("sites", len(sites)).
		Msg("Allocation sites reduced")

	rec := profile.NewRecord()
	rec.Set("total_alloc_bytes", totalCount(prof, bytesIdx))
	rec.Set("total_alloc_objects", totalCount(prof, objectsIdx))
	rec.Set("sites", sites)

	return rec
}
