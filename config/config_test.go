package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inTempDir runs the test from an empty directory, so that no .env file is
// picked up.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	inTempDir(t)
	t.Setenv(EnvConfigFile, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, runtime.NumCPU(), cfg.Engine.Workers)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Layers(t *testing.T) {
	dir := inTempDir(t)
	path := filepath.Join(dir, "rewards.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
  encoding: json
engine:
  workers: 3
output:
  dir: /tmp/reports
debug:
  rows: 50
`), 0o644))

	t.Run("file", func(t *testing.T) {
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Encoding)
		assert.Equal(t, 3, cfg.Engine.Workers)
		assert.Equal(t, 100000, cfg.Engine.ProgressEvery, "unset keys keep their default")
		assert.Equal(t, "/tmp/reports", cfg.Output.Dir)
		assert.Equal(t, 50, cfg.Debug.Rows)
		assert.Equal(t, "debug-output.json", cfg.Debug.RowsFile)
	})

	t.Run("file from the environment", func(t *testing.T) {
		t.Setenv(EnvConfigFile, path)
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.Engine.Workers)
	})

	t.Run("environment wins over the file", func(t *testing.T) {
		t.Setenv(EnvWorkers, "12")
		t.Setenv(EnvLogLevel, "warn")
		t.Setenv(EnvOutputDir, "out")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 12, cfg.Engine.Workers)
		assert.Equal(t, "warn", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Encoding)
		assert.Equal(t, "out", cfg.Output.Dir)
	})

	t.Run("dotenv file", func(t *testing.T) {
		// godotenv never overrides a variable that is already set.
		t.Setenv(EnvDebugRows, "")
		os.Unsetenv(EnvDebugRows)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvDebugRows+"=7\n"), 0o644))
		t.Cleanup(func() { os.Remove(filepath.Join(dir, ".env")) })
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 7, cfg.Debug.Rows)
	})
}

func TestLoad_Errors(t *testing.T) {
	dir := inTempDir(t)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("engine: [1, 2"), 0o644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "failed to parse config")

	t.Setenv(EnvWorkers, "many")
	_, err = Load("")
	assert.ErrorContains(t, err, EnvWorkers)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"json logs", func(c *Config) { c.Log.Encoding = "json" }, true},
		{"unknown level", func(c *Config) { c.Log.Level = "verbose" }, false},
		{"unknown encoding", func(c *Config) { c.Log.Encoding = "xml" }, false},
		{"no workers", func(c *Config) { c.Engine.Workers = 0 }, false},
		{"negative progress", func(c *Config) { c.Engine.ProgressEvery = -1 }, false},
		{"negative debug rows", func(c *Config) { c.Debug.Rows = -5 }, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(cfg)
			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
