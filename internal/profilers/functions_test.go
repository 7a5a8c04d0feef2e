package profilers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/multiprof/multiprof/internal/testutil"
	"github.com/multiprof/multiprof/pkg/profile"
)

func TestFunctionsProfilerCall(t *testing.T) {
	suite := NewSuite(testutil.NewTestLogger(t), Config{})

	rec, err := suite.Functions(profile.NewCall(spin, nil, nil)).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if _, ok := rec.Get(profile.ResultKey); !ok {
		t.Error("record has no result")
	}

	dur, ok := rec.Get("duration_ms")
	if !ok {
		t.Fatal("record has no duration_ms")
	}
	if dur.(float64) <= 0 {
		t.Errorf("got duration_ms %v, want > 0", dur)
	}

	statsVal, ok := rec.Get("functions")
	if !ok {
		t.Fatal("record has no functions")
	}
	if _, isTable := statsVal.([]FunctionStat); !isTable {
		t.Errorf("functions field has type %T, want []FunctionStat", statsVal)
	}
}

func TestFunctionsProfilerProcessFetch(t *testing.T) {
	var pb bytes.Buffer
	if err := cpuProfileFixture().Write(&pb); err != nil {
		t.Fatal(err)
	}

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write(pb.Bytes())
	}))
	defer srv.Close()

	target := profile.NewProcess(strings.TrimPrefix(srv.URL, "http://"))
	suite := NewSuite(testutil.NewTestLogger(t), Config{})

	rec, err := suite.Functions(target).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if gotPath != "/debug/pprof/profile" {
		t.Errorf("got path %q, want /debug/pprof/profile", gotPath)
	}

	count, ok := rec.Get("sample_count")
	if !ok {
		t.Fatal("record has no sample_count")
	}
	if count != int64(12) {
		t.Errorf("got sample_count %v, want 12", count)
	}

	statsVal, ok := rec.Get("functions")
	if !ok {
		t.Fatal("record has no functions")
	}
	stats := statsVal.([]FunctionStat)
	if len(stats) != 3 {
		t.Fatalf("got %d functions, want 3", len(stats))
	}
	if stats[0].Function != "main.work" || stats[0].Flat != 7 || stats[0].Cum != 10 {
		t.Errorf("unexpected top function %+v", stats[0])
	}

	if _, ok := rec.Get(profile.ResultKey); ok {
		t.Error("process records must not carry a result")
	}
}
