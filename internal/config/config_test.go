package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	type want struct {
		runAddress    string
		authSecret    string
		sweepInterval time.Duration
	}

	tests := []struct {
		name  string
		env   map[string]string
		flags []string
		want  want
	}{
		{
			name:  "defaults",
			env:   map[string]string{},
			flags: []string{},
			want: want{
				runAddress:    "localhost:8080",
				sweepInterval: time.Minute,
			},
		},
		{
			name: "env only",
			env: map[string]string{
				"RUN_ADDRESS":            "localhost:9999",
				"AUTH_SECRET":            "env-secret",
				"OVERDUE_SWEEP_INTERVAL": "30s",
			},
			flags: []string{},
			want: want{
				runAddress:    "localhost:9999",
				authSecret:    "env-secret",
				sweepInterval: 30 * time.Second,
			},
		},
		{
			name: "flags only",
			env:  map[string]string{},
			flags: []string{
				"-a", "localhost:7777",
				"-s", "flag-secret",
				"-i", "5m",
			},
			want: want{
				runAddress:    "localhost:7777",
				authSecret:    "flag-secret",
				sweepInterval: 5 * time.Minute,
			},
		},
		{
			name: "env overrides flags",
			env: map[string]string{
				"RUN_ADDRESS":            "env:9000",
				"AUTH_SECRET":            "env-secret",
				"OVERDUE_SWEEP_INTERVAL": "10s",
			},
			flags: []string{
				"-a", "flag:8000",
				"-s", "flag-secret",
				"-i", "1h",
			},
			want: want{
				runAddress:    "env:9000",
				authSecret:    "env-secret",
				sweepInterval: 10 * time.Second,
			},
		},
		{
			name: "zero interval disables sweep",
			env:  map[string]string{},
			flags: []string{
				"-i", "0s",
			},
			want: want{
				runAddress:    "localhost:8080",
				sweepInterval: 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)

			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			os.Args = append([]string{"test"}, tt.flags...)

			cfg, err := Parse()
			require.NoError(t, err)

			assert.Equal(t, tt.want.runAddress, cfg.RunAddress)
			assert.Equal(t, tt.want.authSecret, cfg.AuthSecret)
			assert.Equal(t, tt.want.sweepInterval, cfg.OverdueSweepInterval)
		})
	}
}
