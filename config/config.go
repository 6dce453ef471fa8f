// Package config implements the recognized configuration options of
// spec.md §6, loaded from YAML the way jhkimqd-chaos-utils's own
// pkg/config loads its framework config: a Config struct with
// Default(), Load(path) falling back to defaults when the file is
// absent, and Save(path).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/anisomesh/anisomesh/schedule"
)

// DefaultGLSLThreadCount/DefaultCUDAThreadCount are spec.md §6's
// documented per-backend evaluator/smoother workgroup thread counts.
const (
	DefaultGLSLThreadCount = 16
	DefaultCUDAThreadCount = 32
)

// Metric holds the metric-field generation knobs of spec.md §6.
type Metric struct {
	Scaling              float64 `yaml:"scaling"`
	AspectRatio          float64 `yaml:"aspectRatio"`
	DiscretizationDepth  int     `yaml:"discretizationDepth"`
}

// Threads holds the per-backend workgroup thread counts of spec.md §6.
type Threads struct {
	GLSLEvaluatorThreadCount int `yaml:"glslEvaluatorThreadCount"`
	CUDAEvaluatorThreadCount int `yaml:"cudaEvaluatorThreadCount"`
	GLSLSmootherThreadCount  int `yaml:"glslSmootherThreadCount"`
	CUDASmootherThreadCount  int `yaml:"cudaSmootherThreadCount"`
}

// Config is the top-level recognized configuration document.
type Config struct {
	Metric   Metric            `yaml:"metric"`
	Threads  Threads           `yaml:"threads"`
	Schedule schedule.Schedule `yaml:"schedule"`
}

// Default returns the documented defaults (spec.md §6): 16 GLSL / 32 CUDA
// workgroup threads for both evaluator and smoother, a neutral metric
// field, and schedule.DefaultSchedule.
func Default() *Config {
	return &Config{
		Metric: Metric{
			Scaling:             1,
			AspectRatio:         1,
			DiscretizationDepth: 16,
		},
		Threads: Threads{
			GLSLEvaluatorThreadCount: DefaultGLSLThreadCount,
			CUDAEvaluatorThreadCount: DefaultCUDAThreadCount,
			GLSLSmootherThreadCount:  DefaultGLSLThreadCount,
			CUDASmootherThreadCount:  DefaultCUDAThreadCount,
		},
		Schedule: schedule.DefaultSchedule(),
	}
}

// Load reads a YAML document at path, starting from Default() and
// overlaying whatever the document sets. A missing file is not an
// error: Load returns Default() unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
