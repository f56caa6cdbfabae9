package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "Test1 OK",
			args: []string{"-a", "http://127.0.0.1:9090", "-s", "memory", "-l", "250", "-t", "10"},
			expected: &Config{
				BackendURL:       "http://127.0.0.1:9090",
				StorageKind:      "memory",
				SimulatedLatency: 250 * time.Millisecond,
				RequestTimeout:   10 * time.Second,
			},
		},
		{
			name:     "Test2 unrelated flags are ignored",
			args:     []string{"-c", "cfg.json", "-m", "remote"},
			expected: &Config{IdentityMode: "remote"},
		},
		{name: "Test3 incorrect timeout", args: []string{"-t", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config, tt.args) })
				return
			}

			require.NotPanics(t, func() { parseFlags(config, tt.args) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}

func TestParseFlags_KeepsSubUnitDurationsWhenAbsent(t *testing.T) {
	config := &Config{RequestTimeout: 1500 * time.Millisecond}

	parseFlags(config, nil)

	assert.Equal(t, 1500*time.Millisecond, config.RequestTimeout)
}
