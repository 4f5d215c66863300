package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/skymkmk/domain-list-to-srs/common/utils"
	"github.com/skymkmk/domain-list-to-srs/log"

	"gopkg.in/yaml.v3"
)

// Config is the converter configuration. Values come from an optional
// yaml file, then the environment, then command line flags.
type Config struct {
	DataPath    string       `yaml:"data-path"`
	OutputPath  string       `yaml:"output-path"`
	Concurrency int          `yaml:"concurrency"`
	Force       bool         `yaml:"force"`
	LogLevel    log.LogLevel `yaml:"log-level"`
	LogFile     string       `yaml:"log-file"`
}

// Environment variables understood by ApplyEnv.
const (
	EnvDataPath    = "DATA_PATH"
	EnvOutputPath  = "OUTPUT_PATH"
	EnvConcurrency = "CONCURRENCY"
	EnvLogLevel    = "LOG_LEVEL"
)

func DefaultConfig() *Config {
	return &Config{
		LogLevel: log.INFO,
	}
}

// Parse parses a yaml config on top of the defaults.
func Parse(buf []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ParseWithPath reads and parses the config file at path.
func ParseWithPath(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(buf)
}

// ApplyEnv overrides fields with the variables found by lookup, usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(key string) (string, bool)) error {
	if v, ok := lookup(EnvDataPath); ok {
		c.DataPath = utils.EmptyOr(v, c.DataPath)
	}
	if v, ok := lookup(EnvOutputPath); ok {
		c.OutputPath = utils.EmptyOr(v, c.OutputPath)
	}
	if v, ok := lookup(EnvConcurrency); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvConcurrency, err)
		}
		c.Concurrency = n
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		level, err := log.ParseLevel(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		c.LogLevel = level
	}
	return nil
}

func (c *Config) Validate() error {
	if c.DataPath == "" {
		return errors.New("data path is required")
	}
	if c.OutputPath == "" {
		return errors.New("output path is required")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("invalid concurrency: %d", c.Concurrency)
	}
	data, err := filepath.Abs(c.DataPath)
	if err != nil {
		return err
	}
	output, err := filepath.Abs(c.OutputPath)
	if err != nil {
		return err
	}
	if contains(output, data) {
		return fmt.Errorf("output path %s must not contain data path %s", c.OutputPath, c.DataPath)
	}
	return nil
}

// contains reports whether parent is sub or one of its ancestors. Both
// paths are absolute.
func contains(parent, sub string) bool {
	rel, err := filepath.Rel(parent, sub)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
