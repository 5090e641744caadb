// Package config loads the YAML configuration for the query engine's
// HTTP server and its default sampling/sketch behavior.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Sampling SamplingConfig `yaml:"sampling"`
	Sketches SketchesConfig `yaml:"sketches"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	ReadTimeoutSec  int    `yaml:"read_timeout_sec"`
	WriteTimeoutSec int    `yaml:"write_timeout_sec"`
}

// SamplingConfig holds sampling defaults not exposed through the query
// grammar itself. Every SAMPLE clause shape pins its own rate or size
// explicitly, so the one default left for this layer is the per-stratum
// reservoir capacity STRATIFIED sampling uses internally.
type SamplingConfig struct {
	DefaultStratumSize int `yaml:"default_stratum_size"`
}

// SketchesConfig holds the default shapes for standalone sketches
// registered through the sketch store.
type SketchesConfig struct {
	CountMinDepth int `yaml:"count_min_depth"`
	CountMinWidth int `yaml:"count_min_width"`
	BloomBits     int `yaml:"bloom_bits"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeoutSec:  15,
			WriteTimeoutSec: 15,
		},
		Sampling: SamplingConfig{
			DefaultStratumSize: 100,
		},
		Sketches: SketchesConfig{
			CountMinDepth: 5,
			CountMinWidth: 2048,
			BloomBits:     10000,
		},
	}
}

// Load reads and parses the YAML configuration file at path, filling any
// field the file leaves unset from Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}
