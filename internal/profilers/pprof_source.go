package profilers

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"runtime/pprof"
	"time"

	pprofile "github.com/google/pprof/profile"

	"github.com/multiprof/multiprof/internal/procref"
	"github.com/multiprof/multiprof/pkg/profile"
)

// captureCPUProfile runs the call under the runtime CPU profiler and parses
// the captured profile. Only one CPU profile can be active per process, so
// the profiler is always stopped before returning.
func captureCPUProfile(call *profile.Call) (*pprofile.Profile, any, time.Duration, error) {
	var buf bytes.Buffer
	if err := pprof.StartCPUProfile(&buf); err != nil {
		return nil, nil, 0, fmt.Errorf("failed to start CPU profile: %w", err)
	}

	start := time.Now()
	result, callErr := call.Invoke()
	elapsed := time.Since(start)
	pprof.StopCPUProfile()

	if callErr != nil {
		return nil, nil, elapsed, fmt.Errorf("profiled call failed: %w", callErr)
	}

	prof, err := pprofile.Parse(&buf)
	if err != nil {
		return nil, nil, elapsed, fmt.Errorf("failed to parse CPU profile: %w", err)
	}

	return prof, result, elapsed, nil
}

// captureAllocsDelta snapshots the cumulative allocation profile around the
// call and returns the difference, so only allocations made by the call
// remain.
func captureAllocsDelta(call *profile.Call) (*pprofile.Profile, any, error) {
	before, err := allocsSnapshot()
	if err != nil {
		return nil, nil, err
	}

	result, callErr := call.Invoke()
	if callErr != nil {
		return nil, nil, fmt.Errorf("profiled call failed: %w", callErr)
	}

	after, err := allocsSnapshot()
	if err != nil {
		return nil, nil, err
	}

	delta, err := profileDelta(before, after)
	if err != nil {
		return nil, nil, err
	}

	return delta, result, nil
}

// allocsSnapshot captures the cumulative allocation profile. The runtime
// publishes allocation records at GC boundaries, so a collection is forced
// first to make consecutive snapshots subtract cleanly.
func allocsSnapshot() (*pprofile.Profile, error) {
	runtime.GC()

	var buf bytes.Buffer
	if err := pprof.Lookup("allocs").WriteTo(&buf, 0); err != nil {
		return nil, fmt.Errorf("failed to write allocs profile: %w", err)
	}

	prof, err := pprofile.Parse(&buf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse allocs profile: %w", err)
	}

	return prof, nil
}

// profileDelta subtracts before from after. Samples that cancel out are
// dropped by the merge.
func profileDelta(before, after *pprofile.Profile) (*pprofile.Profile, error) {
	before.Scale(-1)

	merged, err := pprofile.Merge([]*pprofile.Profile{after, before})
	if err != nil {
		return nil, fmt.Errorf("failed to merge allocation profiles: %w", err)
	}

	return merged, nil
}

// fetchTimeout returns the HTTP timeout for a profile fetch that samples
// for the given number of seconds. Snapshot endpoints pass zero.
func fetchTimeout(seconds int) time.Duration {
	return time.Duration(seconds+30) * time.Second
}

// fetchProfile downloads and parses a pprof profile from a debug endpoint.
// The timeout must cover the endpoint's sampling window.
func fetchProfile(ctx context.Context, url string, timeout time.Duration) (*pprofile.Profile, error) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build profile request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("profile endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	// pprof endpoints may gzip their responses.
	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer func() { _ = gzReader.Close() }()
		reader = gzReader
	}

	prof, err := pprofile.Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pprof profile: %w", err)
	}

	return prof, nil
}

// processProfileURL builds the CPU profile URL for a process target.
func processProfileURL(target profile.Target, seconds int) (string, error) {
	base, err := processBaseURL(target)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/debug/pprof/profile?seconds=%d", base, seconds), nil
}

// processHeapURL builds the heap profile URL for a process target.
func processHeapURL(target profile.Target) (string, error) {
	base, err := processBaseURL(target)
	if err != nil {
		return "", err
	}
	return base + "/debug/pprof/heap", nil
}

func processBaseURL(target profile.Target) (string, error) {
	ref, err := procref.Parse(target.ProcessRef())
	if err != nil {
		return "", err
	}
	return ref.BaseURL()
}
