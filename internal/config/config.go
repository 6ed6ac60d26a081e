// Package config holds traceprep configuration: defaults for the trace
// filter, the sampler and the fold splitter, loadable from a yaml file with
// environment-variable overrides for the seeds.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all traceprep configuration.
type Config struct {
	Filter FilterConfig `yaml:"filter"`
	Sample SampleConfig `yaml:"sample"`
	Split  SplitConfig  `yaml:"split"`
}

// FilterConfig configures the write filter.
type FilterConfig struct {
	// WriteOp is the op_unit code treated as a write.
	WriteOp int `yaml:"write_op"`
	// StripQueryID drops the query_id column from filter output by default.
	StripQueryID bool `yaml:"strip_query_id"`
}

// SampleConfig configures the sampler.
type SampleConfig struct {
	// Seed for the sampling random source. Sampling is always seeded so runs
	// are reproducible.
	Seed int64 `yaml:"seed"`
}

// SplitConfig configures the fold splitter.
type SplitConfig struct {
	// Folds is the number of cross-validation folds.
	Folds int `yaml:"folds"`
	// Seed for shuffling query ids. Zero keeps the shuffle unseeded.
	Seed int64 `yaml:"seed"`
	// PipelinePrefix is prepended to fold file names when the split runs as
	// part of the pipeline command.
	PipelinePrefix string `yaml:"pipeline_prefix"`
}

// DefaultConfig returns the configuration used when no config file is given.
func DefaultConfig() *Config {
	return &Config{
		Filter: FilterConfig{
			WriteOp: 2,
		},
		Sample: SampleConfig{
			Seed: 1,
		},
		Split: SplitConfig{
			Folds:          5,
			PipelinePrefix: "pipeline_",
		},
	}
}

// Load reads configuration from path, applies environment overrides and
// validates the result. An empty path yields the defaults (still subject to
// environment overrides).
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path as yaml.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks the configuration for values no run could use.
func (c *Config) Validate() error {
	if c.Filter.WriteOp < 0 {
		return fmt.Errorf("filter.write_op must be non-negative, got %d", c.Filter.WriteOp)
	}
	if c.Split.Folds < 2 {
		return fmt.Errorf("split.folds must be at least 2, got %d", c.Split.Folds)
	}
	return nil
}

// applyEnvOverrides lets the environment override the seeds, so scripted
// runs can pin or vary reproducibility without editing the config file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("TRACEPREP_SAMPLE_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Sample.Seed = seed
		}
	}
	if v := os.Getenv("TRACEPREP_SPLIT_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Split.Seed = seed
		}
	}
}
