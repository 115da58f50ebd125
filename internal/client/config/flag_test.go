package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	// Test cases
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-a", "127.0.0.1:9090", "-i", "10", "-y", "60", "-k", "500", "-w", "5",
				"-f", "local.db", "-m", "5", "-x", "merge", "-l", "debug"},
			expected: &Config{
				ServerEndpointAddr:  "127.0.0.1:9090",
				OnlineCheckInterval: 10 * time.Second,
				SyncInterval:        time.Minute,
				TickInterval:        500 * time.Millisecond,
				RequestTimeout:      5 * time.Second,
				LocalDBFile:         "local.db",
				MaxReplayAttempts:   5,
				ConflictStrategy:    StrategyMerge,
				LogLevel:            "debug",
			},
		},
		{
			name: "unknown flags are ignored",
			args: []string{"cmd", "-c", "conf.json", "-a", "h:1"},
			expected: func() *Config {
				c := &Config{}
				c.LoadDefaults()
				c.ServerEndpointAddr = "h:1"
				return c
			}(),
		},
		{name: "incorrect check interval", args: []string{"cmd", "-a", "127.0.0.1:9090", "-i", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origArgs := os.Args
			t.Cleanup(func() { os.Args = origArgs })
			os.Args = tt.args

			config := &Config{}
			config.LoadDefaults()

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
