// Package config loads the settings of the rewards tool.
//
// Settings come from defaults, then an optional YAML file, then environment
// variables (a .env file in the working directory is loaded first). Command
// line flags override all of them.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvConfigFile  = "REWARDS_CONFIG"
	EnvLogLevel    = "REWARDS_LOG_LEVEL"
	EnvLogEncoding = "REWARDS_LOG_ENCODING"
	EnvWorkers     = "REWARDS_WORKERS"
	EnvOutputDir   = "REWARDS_OUTPUT_DIR"
	EnvDebugRows   = "REWARDS_DEBUG_ROWS"
)

// Config represents the tool configuration.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Engine EngineConfig `yaml:"engine"`
	Output OutputConfig `yaml:"output"`
	Debug  DebugConfig  `yaml:"debug"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level    string `yaml:"level"`    // debug, info, warn or error
	Encoding string `yaml:"encoding"` // json or console
}

// EngineConfig holds aggregation settings.
type EngineConfig struct {
	// Workers is the number of coins ranked concurrently at finalization.
	Workers int `yaml:"workers"`
	// ProgressEvery logs progress every that many rows, 0 disables it.
	ProgressEvery int `yaml:"progress_every"`
}

// OutputConfig holds report locations.
type OutputConfig struct {
	// Dir receives one <extract>.json report per processed extract.
	Dir string `yaml:"dir"`
}

// DebugConfig holds the partial run settings.
type DebugConfig struct {
	// Rows stops each extract after that many rows when positive.
	Rows int `yaml:"rows"`
	// RowsFile receives the decoded rows of a partial run.
	RowsFile string `yaml:"rows_file"`
	// MetricsFile receives the report of a partial run.
	MetricsFile string `yaml:"metrics_file"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "info", Encoding: "console"},
		Engine: EngineConfig{Workers: runtime.NumCPU(), ProgressEvery: 100000},
		Output: OutputConfig{Dir: "."},
		Debug: DebugConfig{
			RowsFile:    "debug-output.json",
			MetricsFile: "rewards-metrics.json",
		},
	}
}

// Load builds the configuration from the defaults, the YAML file at path
// (skipped when path is empty, REWARDS_CONFIG is used instead if set), and
// the environment.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %q: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv() error {
	c.Log.Level = getEnv(EnvLogLevel, c.Log.Level)
	c.Log.Encoding = getEnv(EnvLogEncoding, c.Log.Encoding)
	c.Output.Dir = getEnv(EnvOutputDir, c.Output.Dir)

	var err error
	if c.Engine.Workers, err = getEnvInt(EnvWorkers, c.Engine.Workers); err != nil {
		return err
	}
	if c.Debug.Rows, err = getEnvInt(EnvDebugRows, c.Debug.Rows); err != nil {
		return err
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level must be one of debug, info, warn, error: got %q", c.Log.Level)
	}
	switch c.Log.Encoding {
	case "json", "console":
	default:
		return fmt.Errorf("log encoding must be json or console: got %q", c.Log.Encoding)
	}
	if c.Engine.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}
	if c.Engine.ProgressEvery < 0 {
		return fmt.Errorf("progress_every must not be negative")
	}
	if c.Debug.Rows < 0 {
		return fmt.Errorf("debug rows must not be negative")
	}
	return nil
}

// getEnv returns the value of key, or fallback when it is unset or empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvInt is getEnv for integers.
func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
