// Package config defines pipeline configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Loading layers defaults, an optional YAML file, and environment variables.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Default configuration constants. Seed, population size and quantile step
// are part of the artifact's provenance contract; changing a default
// changes every table generated without explicit overrides.
const (
	DefaultSeed           = 4242
	DefaultPopulationSize = 200_000
	DefaultQuantileStep   = 0.1
	DefaultVersionTag     = "v4-2pl-empirical-cdf"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Catalog is the path to the question catalog YAML file.
	Catalog string `koanf:"catalog"`

	// Output is the path the calibration artifact is written to.
	Output string `koanf:"output"`

	// MetricsTextfile, when non-empty, is the path the pipeline writes
	// Prometheus textfile-collector output to on exit.
	MetricsTextfile string `koanf:"metrics_textfile"`

	// Seed seeds the population simulation's random streams.
	Seed int64 `koanf:"seed"`

	// PopulationSize sets the number of simulated respondents.
	PopulationSize int `koanf:"population_size"`

	// QuantileStep sets the percentile resolution of the output table,
	// in percentage points.
	QuantileStep float64 `koanf:"quantile_step"`

	// WorkerCount sets the number of simulation workers.
	WorkerCount int `koanf:"worker_count"`

	// VersionTag is the artifact format tag consumers use to detect
	// incompatible table layouts.
	VersionTag string `koanf:"version_tag"`
}

// New creates a Config populated with defaults.
func New() *Config {
	c := &Config{
		LogLevel:        "info",
		Catalog:         "questions.yaml",
		Output:          "calibration.json",
		MetricsTextfile: "",
		Seed:            DefaultSeed,
		PopulationSize:  DefaultPopulationSize,
		QuantileStep:    DefaultQuantileStep,
		WorkerCount:     runtime.NumCPU(),
		VersionTag:      DefaultVersionTag,
	}
	return c
}
