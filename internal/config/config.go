// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Loaders accept context.Context as the first parameter.
// - Failures wrap ErrConfiguration so callers can match them with errors.Is.
package config

import (
	"runtime"
)

// Config contains process configuration for the matching service.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// WorkerCount sets the number of pipeline workers.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the in-memory row task queue.
	QueueSize int `koanf:"queue_size"`

	// ParallelThreshold is the smallest batch the pipeline spreads across workers.
	ParallelThreshold int `koanf:"parallel_threshold"`

	// MaxBulkPairs caps len(talents)*len(jobs) for /match_bulk and len(jobs) for /rank_and_filter.
	MaxBulkPairs int `koanf:"max_bulk_pairs"`

	// ModelConfig points at the model YAML loaded at startup.
	ModelConfig string `koanf:"model_config"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":8080",
		WorkerCount:       runtime.NumCPU(),
		QueueSize:         1024,
		ParallelThreshold: 64,
		MaxBulkPairs:      10_000,
		ModelConfig:       "config/model_rule_based.yaml",
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return invalid("addr must not be empty")
	case c.WorkerCount < 0:
		return invalid("worker_count must not be negative")
	case c.QueueSize < 0:
		return invalid("queue_size must not be negative")
	case c.ParallelThreshold < 1:
		return invalid("parallel_threshold must be at least 1")
	case c.MaxBulkPairs < 1:
		return invalid("max_bulk_pairs must be at least 1")
	}
	return nil
}
