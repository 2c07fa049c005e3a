package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/fixnet/internal/fixed"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAndValidate(t *testing.T) {
	path := writeConfig(t, `
weights_dir: weights
input_dir: inputs
output_dir: out
policy: legacy
workers: 4
per_channel: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "weights", cfg.WeightsDir)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.PerChannel)
	assert.Equal(t, "*.txt", cfg.InputsGlob)
	assert.Equal(t, 5, cfg.TopK)

	p, err := cfg.ArithmeticPolicy()
	require.NoError(t, err)
	assert.Equal(t, fixed.Legacy(), p)
}

func TestLoad_UnknownKey(t *testing.T) {
	_, err := Load(writeConfig(t, "weights_dir: w\nbatch_size: 3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch_size")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyOverrides(t *testing.T) {
	cfg := &Config{WeightsDir: "w", InputDir: "in", OutputDir: "out", Workers: 2, Policy: "legacy"}
	cfg.ApplyOverrides(Overrides{OutputDir: "other", Workers: 8, PerChannel: true})

	assert.Equal(t, "w", cfg.WeightsDir)
	assert.Equal(t, "other", cfg.OutputDir)
	assert.Equal(t, 8, cfg.Workers)
	assert.True(t, cfg.PerChannel)
	assert.Equal(t, "legacy", cfg.Policy)
}

func TestValidate_Errors(t *testing.T) {
	base := func() *Config {
		return &Config{WeightsDir: "w", InputDir: "in", OutputDir: "out"}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no weights", func(c *Config) { c.WeightsDir = "" }},
		{"no input", func(c *Config) { c.InputDir = "" }},
		{"no output", func(c *Config) { c.OutputDir = "" }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"negative op workers", func(c *Config) { c.OpWorkers = -2 }},
		{"negative top k", func(c *Config) { c.TopK = -1 }},
		{"bad policy", func(c *Config) { c.Policy = "round-half-up" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	var nilCfg *Config
	assert.Error(t, nilCfg.Validate())

	cfg := base()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, fixed.PolicyCanonical, cfg.Policy)
	assert.Equal(t, 1, cfg.Workers)
}

func TestLoadTopology(t *testing.T) {
	cfg := &Config{}
	topo, err := cfg.LoadTopology()
	require.NoError(t, err)
	assert.Equal(t, "alexnet", topo.Name)

	cfg.Topology = filepath.Join(t.TempDir(), "none.yaml")
	_, err = cfg.LoadTopology()
	assert.Error(t, err)
}
