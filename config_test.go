package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 24, cfg.QualityHorizon)
	assert.Equal(t, 32, cfg.TopHorizon)
	assert.Equal(t, 3, cfg.TopCount)
	assert.Zero(t, cfg.Workers)
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
version: 1
quality_horizon: 20
workers: 4
verbose: true
`))
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.QualityHorizon)
	assert.Equal(t, 32, cfg.TopHorizon, "unset keys keep defaults")
	assert.Equal(t, 3, cfg.TopCount)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"version", "version: 2\n", "unsupported config version: 2"},
		{"yaml", "version: [1\n", "parse"},
		{"horizon too long", "version: 1\ntop_horizon: 65\n", "top_horizon 65 outside 1..64"},
		{"horizon zero", "version: 1\nquality_horizon: -3\n", "quality_horizon -3 outside"},
		{"top count", "version: 1\ntop_count: -1\n", "top_count -1 must be at least 1"},
		{"workers", "version: 1\nworkers: -2\n", "workers -2 must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			assert.ErrorContains(t, err, tt.want)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
