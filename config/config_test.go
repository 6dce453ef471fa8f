package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anisomesh/anisomesh/config"
)

func TestDefaultMatchesDocumentedThreadCounts(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, 16, cfg.Threads.GLSLEvaluatorThreadCount)
	assert.Equal(t, 32, cfg.Threads.CUDAEvaluatorThreadCount)
	assert.Equal(t, 16, cfg.Threads.GLSLSmootherThreadCount)
	assert.Equal(t, 32, cfg.Threads.CUDASmootherThreadCount)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")

	cfg := config.Default()
	cfg.Metric.Scaling = 4.5
	cfg.Schedule.GlobalPassCount = 3
	require.NoError(t, cfg.Save(path))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4.5, loaded.Metric.Scaling)
	assert.Equal(t, 3, loaded.Schedule.GlobalPassCount)
}
