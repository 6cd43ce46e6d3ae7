// Package config holds the tagwalk runtime settings. Values come from
// defaults, an optional YAML or JSON file, the environment (including a
// .env file), and finally command-line flags, in that order.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	yaml "go.yaml.in/yaml/v3"

	"tagwalk/internal/format"
	"tagwalk/internal/logging"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Environment variables read by ApplyEnv.
const (
	EnvTable     = "TAGWALK_TABLE"
	EnvLogLevel  = "TAGWALK_LOG_LEVEL"
	EnvLogFormat = "TAGWALK_LOG_FORMAT"
	EnvOutput    = "TAGWALK_OUTPUT"
	EnvParallel  = "TAGWALK_PARALLEL"
)

// Config is the full set of settings shared by the CLI and the MCP server.
type Config struct {
	Table     string `json:"table,omitempty" yaml:"table,omitempty"`
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty"`
	Output    string `json:"output,omitempty" yaml:"output,omitempty"`
	Parallel  int    `json:"parallel,omitempty" yaml:"parallel,omitempty"`
}

// Defaults returns the settings used when nothing else is configured.
func Defaults() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: logging.FormatText,
		Output:    format.ASCII.String(),
		Parallel:  1,
	}
}

// Load reads a config file (YAML or JSON) over Defaults. Keys absent from
// the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" && strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		ext = ".json"
	}
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config yaml: %w", err)
		}
	}
	return cfg, nil
}

// ApplyEnv loads a .env file from the working directory when one exists,
// then overrides fields from TAGWALK_* variables that are set.
func (c *Config) ApplyEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	if v, ok := os.LookupEnv(EnvTable); ok {
		c.Table = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvLogFormat); ok {
		c.LogFormat = v
	}
	if v, ok := os.LookupEnv(EnvOutput); ok {
		c.Output = v
	}
	if v, ok := os.LookupEnv(EnvParallel); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, EnvParallel, v)
		}
		c.Parallel = n
	}
	return nil
}

// Validate checks every field that has a closed set of values.
func (c Config) Validate() error {
	var errs []error
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		errs = append(errs, err)
	}
	if _, err := format.ParseMode(c.Output); err != nil {
		errs = append(errs, err)
	}
	if c.Parallel < 0 {
		errs = append(errs, fmt.Errorf("parallel %d is negative", c.Parallel))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
