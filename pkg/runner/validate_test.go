package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multiprof/multiprof/pkg/profile"
)

func TestValidate(t *testing.T) {
	reg := stubRegistry('m', 'c', 'h', 'p')

	tests := []struct {
		name    string
		config  string
		want    []profile.Option
		wantErr string
	}{
		{
			name:   "single option",
			config: "m",
			want:   []profile.Option{'m'},
		},
		{
			name:   "two options",
			config: "mc",
			want:   []profile.Option{'m', 'c'},
		},
		{
			name:   "configuration order is irrelevant",
			config: "pm",
			want:   []profile.Option{'m', 'p'},
		},
		{
			name:   "full registry",
			config: "mchp",
			want:   []profile.Option{'m', 'c', 'h', 'p'},
		},
		{
			name:   "empty configuration",
			config: "",
			want:   nil,
		},
		{
			name:    "duplicate code",
			config:  "mm",
			wantErr: `profiler configuration "mm" is ambiguous`,
		},
		{
			name:    "duplicate separated by other codes",
			config:  "mcm",
			wantErr: `profiler configuration "mcm" is ambiguous`,
		},
		{
			name:    "unknown code",
			config:  "x",
			wantErr: `unknown profiler option "x"`,
		},
		{
			name:    "unknown code after known ones",
			config:  "mcx",
			wantErr: `unknown profiler option "x"`,
		},
		{
			name:    "duplicate detected before unknown",
			config:  "xx",
			wantErr: `profiler configuration "xx" is ambiguous`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requested, err := reg.Validate(tt.config)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				assert.Nil(t, requested)
				return
			}
			require.NoError(t, err)
			assert.Len(t, requested, len(tt.want))
			for _, opt := range tt.want {
				assert.True(t, requested[opt], "option %q missing from requested set", opt)
			}
		})
	}
}

func TestValidateErrorTypes(t *testing.T) {
	reg := stubRegistry('m', 'c')

	_, err := reg.Validate("cc")
	var ambiguous *AmbiguousConfigError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, "cc", ambiguous.Config)

	_, err = reg.Validate("z")
	var bad *BadOptionError
	require.ErrorAs(t, err, &bad)
	assert.Equal(t, profile.Option('z'), bad.Option)
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	_, err := NewRegistry(stubEntry('m'), stubEntry('c'), stubEntry('m'))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate profiler code "m"`)
}

func TestRegistryLookup(t *testing.T) {
	reg := stubRegistry('m', 'c')

	entry, ok := reg.Lookup('c')
	require.True(t, ok)
	assert.Equal(t, profile.Option('c'), entry.Option)

	_, ok = reg.Lookup('z')
	assert.False(t, ok)
}

func TestDefaultRegistryOrder(t *testing.T) {
	assert.Equal(t, []profile.Option{'m', 'c', 'h', 'p'}, Default().Options())
}
