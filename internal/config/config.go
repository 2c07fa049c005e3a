package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/fixnet/internal/fixed"
	"github.com/born-ml/fixnet/internal/topology"
)

// Config captures the runtime knobs for a batch run.
type Config struct {
	WeightsDir string `yaml:"weights_dir"`
	InputDir   string `yaml:"input_dir"`
	OutputDir  string `yaml:"output_dir"`
	InputsGlob string `yaml:"inputs_glob"`
	ClassIndex string `yaml:"class_index"`
	Topology   string `yaml:"topology"` // YAML file; empty selects the built-in AlexNet
	Policy     string `yaml:"policy"`
	Workers    int    `yaml:"workers"`     // Inputs processed concurrently
	OpWorkers  int    `yaml:"op_workers"`  // Goroutines per operator
	PerChannel bool   `yaml:"per_channel"` // Also write one file per channel
	TopK       int    `yaml:"top_k"`
}

// Overrides captures CLI supplied values.
type Overrides struct {
	WeightsDir string
	InputDir   string
	OutputDir  string
	InputsGlob string
	ClassIndex string
	Topology   string
	Policy     string
	Workers    int
	OpWorkers  int
	PerChannel bool
	TopK       int
}

// Load reads a Config from YAML. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg := &Config{}
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.WeightsDir != "" {
		c.WeightsDir = o.WeightsDir
	}
	if o.InputDir != "" {
		c.InputDir = o.InputDir
	}
	if o.OutputDir != "" {
		c.OutputDir = o.OutputDir
	}
	if o.InputsGlob != "" {
		c.InputsGlob = o.InputsGlob
	}
	if o.ClassIndex != "" {
		c.ClassIndex = o.ClassIndex
	}
	if o.Topology != "" {
		c.Topology = o.Topology
	}
	if o.Policy != "" {
		c.Policy = o.Policy
	}
	if o.Workers > 0 {
		c.Workers = o.Workers
	}
	if o.OpWorkers > 0 {
		c.OpWorkers = o.OpWorkers
	}
	if o.PerChannel {
		c.PerChannel = true
	}
	if o.TopK > 0 {
		c.TopK = o.TopK
	}
}

// Validate verifies the config is runnable and fills defaults.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.WeightsDir == "" {
		return errors.New("weights_dir must be set")
	}
	if c.InputDir == "" {
		return errors.New("input_dir must be set")
	}
	if c.OutputDir == "" {
		return errors.New("output_dir must be set")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0 (got %d)", c.Workers)
	}
	if c.OpWorkers < 0 {
		return fmt.Errorf("op_workers must be >= 0 (got %d)", c.OpWorkers)
	}
	if c.TopK < 0 {
		return fmt.Errorf("top_k must be >= 0 (got %d)", c.TopK)
	}
	if _, err := fixed.ParsePolicy(c.Policy); err != nil {
		return err
	}
	if c.Policy == "" {
		c.Policy = fixed.PolicyCanonical
	}
	if c.InputsGlob == "" {
		c.InputsGlob = "*.txt"
	}
	if c.Workers == 0 {
		c.Workers = 1
	}
	if c.TopK == 0 {
		c.TopK = 5
	}
	return nil
}

// ArithmeticPolicy returns the configured policy preset.
func (c *Config) ArithmeticPolicy() (fixed.Policy, error) {
	return fixed.ParsePolicy(c.Policy)
}

// LoadTopology returns the configured topology, AlexNet when none is set.
func (c *Config) LoadTopology() (topology.Topology, error) {
	if c.Topology == "" {
		return topology.AlexNet(), nil
	}
	return topology.Load(c.Topology)
}
