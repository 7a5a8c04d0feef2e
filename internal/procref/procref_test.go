package procref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:  "pid",
			input: "12345",
		},
		{
			name:  "host and port",
			input: "localhost:6060",
		},
		{
			name:  "bare port",
			input: ":6060",
		},
		{
			name:  "ipv6 address",
			input: "[::1]:6060",
		},
		{
			name:    "empty",
			input:   "",
			wantErr: "empty process reference",
		},
		{
			name:    "bare word",
			input:   "myapp",
			wantErr: `process reference "myapp" is neither a PID nor a host:port address`,
		},
		{
			name:    "zero pid",
			input:   "0",
			wantErr: `invalid PID "0"`,
		},
		{
			name:    "pid overflow",
			input:   "99999999999999999999",
			wantErr: `invalid PID "99999999999999999999"`,
		},
		{
			name:    "non numeric port",
			input:   "localhost:http",
			wantErr: `invalid port in process address "localhost:http"`,
		},
		{
			name:    "port out of range",
			input:   "localhost:70000",
			wantErr: `invalid port in process address "localhost:70000"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestParsePID(t *testing.T) {
	ref, err := Parse("12345")
	require.NoError(t, err)

	assert.True(t, ref.IsPID())
	assert.Equal(t, "12345", ref.String())

	pid, err := ref.PID()
	require.NoError(t, err)
	assert.Equal(t, int32(12345), pid)

	_, err = ref.BaseURL()
	require.Error(t, err)
	assert.Equal(t, "process 12345 has no debug endpoint address", err.Error())
}

func TestParseAddr(t *testing.T) {
	ref, err := Parse("localhost:6060")
	require.NoError(t, err)

	assert.False(t, ref.IsPID())
	assert.Equal(t, "localhost:6060", ref.String())

	url, err := ref.BaseURL()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:6060", url)
}

func TestParseBarePortDefaultsToLocalhost(t *testing.T) {
	ref, err := Parse(":6060")
	require.NoError(t, err)

	assert.Equal(t, "localhost:6060", ref.String())

	url, err := ref.BaseURL()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:6060", url)
}

func TestParseIPv6AddrBracketsBaseURL(t *testing.T) {
	ref, err := Parse("[::1]:6060")
	require.NoError(t, err)

	url, err := ref.BaseURL()
	require.NoError(t, err)
	assert.Equal(t, "http://[::1]:6060", url)
}

func TestPIDRefusesRemoteHost(t *testing.T) {
	ref, err := Parse("example.com:9090")
	require.NoError(t, err)

	_, err = ref.PID()
	require.Error(t, err)
	assert.Equal(t, `cannot resolve PID for remote host "example.com"`, err.Error())
}
