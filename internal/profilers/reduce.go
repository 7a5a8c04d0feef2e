package profilers

import (
	"fmt"
	"sort"
	"strings"

	pprofile "github.com/google/pprof/profile"
	"github.com/zeebo/xxh3"
)

// FoldedStack is one unique call stack in collapsed flamegraph form.
type FoldedStack struct {
	Stack string `json:"stack"`
	Hash  string `json:"hash"`
	Count int64  `json:"count"`
}

// LineHeat is the allocation weight attributed to one source line.
type LineHeat struct {
	File         string `json:"file"`
	Line         int64  `json:"line"`
	Function     string `json:"function"`
	AllocBytes   int64  `json:"alloc_bytes"`
	AllocObjects int64  `json:"alloc_objects"`
}

// FunctionStat aggregates flat and cumulative sample counts for a function.
type FunctionStat struct {
	Function string  `json:"function"`
	Flat     int64   `json:"flat"`
	FlatPct  float64 `json:"flat_pct"`
	Cum      int64   `json:"cum"`
	CumPct   float64 `json:"cum_pct"`
}

// foldStacks collapses profile samples into unique stacks with counts.
// Folded format: frame1;frame2;frame3 from outermost (root) to innermost
// (leaf). pprof records locations leaf first, so frames are reversed.
// Stacks are ordered by count descending, ties broken by stack text.
func foldStacks(prof *pprofile.Profile) []FoldedStack {
	idx := sampleIndex(prof, "samples", 0)

	counts := make(map[string]int64)
	for _, s := range prof.Sample {
		count := valueAt(s, idx)
		if count == 0 {
			continue
		}

		frames := frameNames(s)
		if len(frames) == 0 {
			continue
		}

		var b strings.Builder
		for i := len(frames) - 1; i >= 0; i-- {
			b.WriteString(frames[i])
			if i > 0 {
				b.WriteString(";")
			}
		}
		counts[b.String()] += count
	}

	folded := make([]FoldedStack, 0, len(counts))
	for stack, count := range counts {
		folded = append(folded, FoldedStack{
			Stack: stack,
			Hash:  fmt.Sprintf("%016x", xxh3.HashString(stack)),
			Count: count,
		})
	}
	sort.Slice(folded, func(i, j int) bool {
		if folded[i].Count != folded[j].Count {
			return folded[i].Count > folded[j].Count
		}
		return folded[i].Stack < folded[j].Stack
	})

	return folded
}

// lineHeat attributes allocation samples to their innermost source line and
// returns the hottest sites by allocated bytes, capped at maxSites.
func lineHeat(prof *pprofile.Profile, maxSites int) []LineHeat {
	bytesIdx, objectsIdx := allocIndices(prof)

	type site struct {
		file     string
		line     int64
		function string
	}
	siteBytes := make(map[site]int64)
	siteObjects := make(map[site]int64)

	for _, s := range prof.Sample {
		allocBytes := valueAt(s, bytesIdx)
		allocObjects := valueAt(s, objectsIdx)
		if allocBytes <= 0 && allocObjects <= 0 {
			continue
		}

		line := leafLine(s)
		if line == nil {
			continue
		}

		k := site{
			file:     line.Function.Filename,
			line:     line.Line,
			function: line.Function.Name,
		}
		siteBytes[k] += allocBytes
		siteObjects[k] += allocObjects
	}

	sites := make([]LineHeat, 0, len(siteBytes))
	for k, b := range siteBytes {
		sites = append(sites, LineHeat{
			File:         k.file,
			Line:         k.line,
			Function:     k.function,
			AllocBytes:   b,
			AllocObjects: siteObjects[k],
		})
	}
	sort.Slice(sites, func(i, j int) bool {
		if sites[i].AllocBytes != sites[j].AllocBytes {
			return sites[i].AllocBytes > sites[j].AllocBytes
		}
		if sites[i].File != sites[j].File {
			return sites[i].File < sites[j].File
		}
		return sites[i].Line < sites[j].Line
	})
	if maxSites > 0 && len(sites) > maxSites {
		sites = sites[:maxSites]
	}

	return sites
}

// topFunctions reduces a CPU profile to a flat function table. Flat counts
// samples where the function is the leaf frame; cumulative counts samples
// where it appears anywhere on the stack, once per sample.
func topFunctions(prof *pprofile.Profile, max int) []FunctionStat {
	idx := sampleIndex(prof, "samples", 0)

	flat := make(map[string]int64)
	cum := make(map[string]int64)
	var total int64

	for _, s := range prof.Sample {
		count := valueAt(s, idx)
		if count == 0 {
			continue
		}
		total += count

		frames := frameNames(s)
		if len(frames) == 0 {
			continue
		}

		flat[frames[0]] += count

		seen := make(map[string]bool, len(frames))
		for _, fn := range frames {
			if seen[fn] {
				continue
			}
			seen[fn] = true
			cum[fn] += count
		}
	}

	stats := make([]FunctionStat, 0, len(cum))
	for fn, c := range cum {
		stat := FunctionStat{Function: fn, Flat: flat[fn], Cum: c}
		if total > 0 {
			stat.FlatPct = float64(stat.Flat) / float64(total) * 100
			stat.CumPct = float64(stat.Cum) / float64(total) * 100
		}
		stats = append(stats, stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Flat != stats[j].Flat {
			return stats[i].Flat > stats[j].Flat
		}
		if stats[i].Cum != stats[j].Cum {
			return stats[i].Cum > stats[j].Cum
		}
		return stats[i].Function < stats[j].Function
	})
	if max > 0 && len(stats) > max {
		stats = stats[:max]
	}

	return stats
}

// sampleIndex returns the index of the named sample type, or fallback when
// the profile does not carry it.
func sampleIndex(prof *pprofile.Profile, name string, fallback int) int {
	for i, st := range prof.SampleType {
		if st.Type == name {
			return i
		}
	}
	return fallback
}

// allocIndices finds the alloc_space and alloc_objects sample type indices,
// falling back to the first two sample types if not found.
func allocIndices(prof *pprofile.Profile) (bytesIdx, objectsIdx int) {
	bytesIdx = -1
	objectsIdx = -1
	for i, st := range prof.SampleType {
		switch st.Type {
		case "alloc_space":
			bytesIdx = i
		case "alloc_objects":
			objectsIdx = i
		}
	}
	if bytesIdx < 0 && len(prof.SampleType) > 0 {
		bytesIdx = 0
	}
	if objectsIdx < 0 && len(prof.SampleType) > 1 {
		objectsIdx = 1
	}
	return bytesIdx, objectsIdx
}

// totalCount sums the sample values at the given index.
func totalCount(prof *pprofile.Profile, idx int) int64 {
	var total int64
	for _, s := range prof.Sample {
		total += valueAt(s, idx)
	}
	return total
}

func valueAt(s *pprofile.Sample, idx int) int64 {
	if idx < 0 || idx >= len(s.Value) {
		return 0
	}
	return s.Value[idx]
}

// frameNames extracts function names from a sample, innermost first.
func frameNames(s *pprofile.Sample) []string {
	frames := make([]string, 0, len(s.Location))
	for _, loc := range s.Location {
		for _, line := range loc.Line {
			if line.Function != nil && line.Function.Name != "" {
				frames = append(frames, line.Function.Name)
			}
		}
	}
	return frames
}

// leafLine returns the innermost line of the sample that carries function
// info, or nil when the sample has no symbolized frames.
func leafLine(s *pprofile.Sample) *pprofile.Line {
	for _, loc := range s.Location {
		for i := range loc.Line {
			if loc.Line[i].Function != nil {
				return &loc.Line[i]
			}
		}
	}
	return nil
}
