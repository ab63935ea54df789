package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellpipe/internal/table"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimal = `
inputs:
  treatments: data/treatments.csv
  headers: data/headers.csv
  production: data/production.csv
output:
  path: out/features.csv
`

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, minimal))
	require.NoError(t, err)

	assert.Equal(t, "well_features", cfg.Output.Table)
	assert.Equal(t, "forward", cfg.Normalize.FillDirection)
	assert.Equal(t, table.FillForward, cfg.FillDirection())
	assert.Equal(t, "kmeans", cfg.Clustering.Algorithm)
	assert.Equal(t, 4, cfg.Clustering.K)
	assert.Equal(t, 0.75, cfg.Clustering.Eps)
	assert.Equal(t, 4, cfg.Clustering.MinPoints)
	assert.Equal(t, "cluster", cfg.Clustering.Label)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Clustering.Enabled)
}

func TestLoadConfigFull(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
inputs:
  treatments: t.csv
  headers: h.csv
  production: p.csv
output:
  path: features.csv
  table: wv_wells
  sinks:
    postgres: postgres://localhost/wells
normalize:
  fill_direction: backward
  fill_columns: [water]
  zero_columns: [oil, gas]
features:
  hours_product: hours
  neighbor_distance: true
clustering:
  enabled: true
  algorithm: dbscan
  eps: 1.5
  min_points: 3
  columns: [cum_oil, cum_gas, total_depth]
`))
	require.NoError(t, err)

	assert.Equal(t, "wv_wells", cfg.Output.Table)
	assert.Equal(t, "postgres://localhost/wells", cfg.Output.Sinks.Postgres)
	assert.Equal(t, table.FillBackward, cfg.FillDirection())
	assert.Equal(t, []string{"oil", "gas"}, cfg.Normalize.ZeroColumns)
	assert.Equal(t, "hours", cfg.Features.HoursProduct)
	assert.True(t, cfg.Features.NeighborDistance)
	assert.Equal(t, "dbscan", cfg.Clustering.Algorithm)
	assert.Equal(t, 1.5, cfg.Clustering.Eps)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing input",
			mutate:  func(c *Config) { c.Inputs.Production = "" },
			wantErr: "inputs",
		},
		{
			name:    "missing output path",
			mutate:  func(c *Config) { c.Output.Path = "" },
			wantErr: "output",
		},
		{
			name:    "bad fill direction",
			mutate:  func(c *Config) { c.Normalize.FillDirection = "sideways" },
			wantErr: "fill_direction",
		},
		{
			name: "bad algorithm",
			mutate: func(c *Config) {
				c.Clustering.Enabled = true
				c.Clustering.Algorithm = "spectral"
				c.Clustering.Columns = []string{"cum_oil"}
			},
			wantErr: "algorithm",
		},
		{
			name:    "clustering without columns",
			mutate:  func(c *Config) { c.Clustering.Enabled = true },
			wantErr: "columns",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, minimal))
			require.NoError(t, err)
			tt.mutate(cfg)
			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
