package run

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/multiprof/multiprof/pkg/profile"
	"github.com/multiprof/multiprof/pkg/sdk"
)

func TestNewRunCmd(t *testing.T) {
	cmd := NewRunCmd()

	if cmd == nil {
		t.Fatal("NewRunCmd() returned nil")
	}
	if !strings.HasPrefix(cmd.Use, "run") {
		t.Errorf("Use = %q, want run prefix", cmd.Use)
	}

	for _, name := range []string{"options", "config", "host", "port", "fetch-seconds", "output-file", "verbose", "log-level"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("--%s flag not defined", name)
		}
	}

	// Test args validation
	if err := cmd.Args(cmd, []string{}); err == nil {
		t.Error("Command should require a target argument")
	}
	if err := cmd.Args(cmd, []string{"1234"}); err != nil {
		t.Errorf("Command should accept one target, got error: %v", err)
	}
	if err := cmd.Args(cmd, []string{"1234", "5678"}); err == nil {
		t.Error("Command should not accept more than one target")
	}
}

func TestRunCmd_RequiresOptions(t *testing.T) {
	cmd := NewRunCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"1234"})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "options") {
		t.Fatalf("Execute() error = %v, want missing --options failure", err)
	}
}

func TestRunCmd_RejectsBadTarget(t *testing.T) {
	t.Setenv("MULTIPROF_CONFIG", t.TempDir())

	cmd := NewRunCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--options", "m", "not-a-target"})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "neither a PID nor a host:port") {
		t.Fatalf("Execute() error = %v, want process reference error", err)
	}
}

func TestRunCmd_RejectsAmbiguousOptions(t *testing.T) {
	t.Setenv("MULTIPROF_CONFIG", t.TempDir())

	cmd := NewRunCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--options", "mm", strconv.Itoa(os.Getpid())})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), `"mm" is ambiguous`) {
		t.Fatalf("Execute() error = %v, want ambiguous configuration error", err)
	}
}

func TestRunCmd_ProfilesOwnProcessToFile(t *testing.T) {
	t.Setenv("MULTIPROF_CONFIG", t.TempDir())

	out := filepath.Join(t.TempDir(), "stats.json")
	var buf bytes.Buffer

	cmd := NewRunCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"--options", "m", "--output-file", out, strconv.Itoa(os.Getpid())})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read stats file: %v", err)
	}
	if !strings.Contains(string(data), `"rss_bytes"`) {
		t.Errorf("stats file missing memory fields: %s", data)
	}
	if !strings.Contains(buf.String(), "Stats written to") {
		t.Errorf("command output = %q, want written confirmation", buf.String())
	}
}

func TestRunCmd_ProfilesAttachEndpoint(t *testing.T) {
	t.Setenv("MULTIPROF_CONFIG", t.TempDir())

	target, err := sdk.New(sdk.Config{ServiceName: "run-test"})
	if err != nil {
		t.Fatalf("failed to start attach endpoint: %v", err)
	}
	defer target.Close()

	out := filepath.Join(t.TempDir(), "stats.json")

	cmd := NewRunCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--options", "h", "--output-file", out, target.Addr()})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read stats file: %v", err)
	}
	if !strings.Contains(string(data), `"total_alloc_bytes"`) {
		t.Errorf("stats file missing heap fields: %s", data)
	}
}

func TestFileSink_PreservesSectionOrder(t *testing.T) {
	recM := profile.NewRecord()
	recM.Set("rss_bytes", 1)
	recC := profile.NewRecord()
	recC.Set("sample_count", 2)

	stats := profile.NewStats()
	stats.Set('m', recM)
	stats.Set('c', recC)

	path := filepath.Join(t.TempDir(), "stats.json")
	sink := &fileSink{path: path}
	if err := sink.Send(context.Background(), stats); err != nil {
		t.Fatalf("Send() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read stats file: %v", err)
	}

	mIdx := bytes.Index(data, []byte(`"m"`))
	cIdx := bytes.Index(data, []byte(`"c"`))
	if mIdx < 0 || cIdx < 0 || mIdx > cIdx {
		t.Errorf("stats file does not preserve section order: %s", data)
	}
}

func TestFileSink_UnwritablePath(t *testing.T) {
	stats := profile.NewStats()

	sink := &fileSink{path: filepath.Join(t.TempDir(), "missing", "stats.json")}
	err := sink.Send(context.Background(), stats)
	if err == nil || !strings.Contains(err.Error(), "failed to write stats file") {
		t.Fatalf("Send() error = %v, want write failure", err)
	}
}
