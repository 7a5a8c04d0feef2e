package sdk

import (
	"fmt"
	"net/http"
	"testing"

	pprofile "github.com/google/pprof/profile"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				ServiceName: "test-service",
			},
			wantErr: false,
		},
		{
			name:    "missing service name",
			config:  Config{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sdk, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if sdk != nil {
				defer sdk.Close()
			}
		})
	}
}

func TestSDK_ServesHeapProfile(t *testing.T) {
	sdk, err := New(Config{ServiceName: "test-service"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer sdk.Close()

	resp, err := http.Get(fmt.Sprintf("http://%s/debug/pprof/heap", sdk.Addr()))
	if err != nil {
		t.Fatalf("failed to fetch heap profile: %v", err)
	}
	defer resp.Body.Close() // nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("heap endpoint status = %d, want 200", resp.StatusCode)
	}

	prof, err := pprofile.Parse(resp.Body)
	if err != nil {
		t.Fatalf("heap endpoint did not serve a parseable profile: %v", err)
	}
	if len(prof.SampleType) == 0 {
		t.Error("heap profile has no sample types")
	}
}

func TestSDK_Close(t *testing.T) {
	sdk, err := New(Config{ServiceName: "test-service"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := sdk.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	// The endpoint must stop accepting requests once closed.
	if _, err := http.Get(fmt.Sprintf("http://%s/debug/pprof/heap", sdk.Addr())); err == nil {
		t.Error("endpoint still serving after Close()")
	}
}
