// Package config provides configuration loading for umdgraph.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/danpilch/umdgraph/pkg/chart"
	"github.com/danpilch/umdgraph/pkg/history"
)

// envPrefix is prepended to every environment override.
const envPrefix = "UMDGRAPH_"

// Config represents the umdgraph configuration file.
type Config struct {
	// Sampling controls how often and from where metrics are read.
	Sampling SamplingConfig `yaml:"sampling"`

	// Chart controls projection and rendering.
	Chart ChartConfig `yaml:"chart"`

	// Log controls logrus output.
	Log LogConfig `yaml:"log"`
}

// SamplingConfig holds sampler settings.
type SamplingConfig struct {
	// Interval is a duration string (e.g. "2s") between samples.
	Interval string `yaml:"interval"`
	// Capacity is the number of samples kept per metric.
	Capacity int `yaml:"capacity"`
	// Source is the registered metric source name.
	Source string `yaml:"source"`
}

// ChartConfig holds chart settings.
type ChartConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	CPUPolicy string `yaml:"cpu_policy"`
	RAMPolicy string `yaml:"ram_policy"`
	// Format is the stream output format: table, json, tsv or plain.
	Format string `yaml:"format"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns a Config populated with defaults.
func Default() *Config {
	return &Config{
		Sampling: SamplingConfig{
			Interval: "2s",
			Capacity: history.DefaultCapacity,
			Source:   "host",
		},
		Chart: ChartConfig{
			Width:     50,
			Height:    8,
			CPUPolicy: chart.Linear().String(),
			RAMPolicy: chart.WindowedClamp(80, 100).String(),
			Format:    "table",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".umdgraph", "config.yaml")
	}
	return filepath.Join(dir, "umdgraph", "config.yaml")
}

// Load reads a YAML config file on top of the defaults. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadEnvFiles loads .env files into the environment without overriding
// variables that are already set. Missing files are ignored.
func LoadEnvFiles(paths ...string) {
	if len(paths) == 0 {
		_ = godotenv.Load()
		return
	}
	for _, p := range paths {
		_ = godotenv.Load(p)
	}
}

// ApplyEnv overrides fields from UMDGRAPH_* environment variables.
func (c *Config) ApplyEnv() error {
	if v, ok := lookup("INTERVAL"); ok {
		c.Sampling.Interval = v
	}
	if v, ok := lookup("CAPACITY"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sCAPACITY: %w", envPrefix, err)
		}
		c.Sampling.Capacity = n
	}
	if v, ok := lookup("SOURCE"); ok {
		c.Sampling.Source = v
	}
	if v, ok := lookup("CPU_POLICY"); ok {
		c.Chart.CPUPolicy = v
	}
	if v, ok := lookup("RAM_POLICY"); ok {
		c.Chart.RAMPolicy = v
	}
	if v, ok := lookup("FORMAT"); ok {
		c.Chart.Format = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := lookup("LOG_FORMAT"); ok {
		c.Log.Format = v
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if _, err := c.IntervalDuration(); err != nil {
		return err
	}
	if c.Sampling.Capacity < 2 {
		return fmt.Errorf("capacity must be at least 2, got %d", c.Sampling.Capacity)
	}
	if c.Sampling.Source == "" {
		return fmt.Errorf("source must not be empty")
	}
	if c.Chart.Width < 1 || c.Chart.Height < 1 {
		return fmt.Errorf("chart size must be positive, got %dx%d", c.Chart.Width, c.Chart.Height)
	}
	if _, _, err := c.Policies(); err != nil {
		return err
	}
	switch c.Chart.Format {
	case "table", "json", "tsv", "plain":
	default:
		return fmt.Errorf("unknown format %q", c.Chart.Format)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

// IntervalDuration parses the sampling interval.
func (c *Config) IntervalDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Sampling.Interval)
	if err != nil {
		return 0, fmt.Errorf("invalid interval %q: %w", c.Sampling.Interval, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("interval must be positive, got %s", d)
	}
	return d, nil
}

// Policies parses the CPU and RAM scaling policies.
func (c *Config) Policies() (cpu, ram chart.Policy, err error) {
	cpu, err = chart.ParsePolicy(c.Chart.CPUPolicy)
	if err != nil {
		return cpu, ram, fmt.Errorf("cpu_policy: %w", err)
	}
	ram, err = chart.ParsePolicy(c.Chart.RAMPolicy)
	if err != nil {
		return cpu, ram, fmt.Errorf("ram_policy: %w", err)
	}
	return cpu, ram, nil
}

// NewLogger builds a logrus logger writing to w.
func (l LogConfig) NewLogger(w io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(l.Level)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(level)
	if l.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger, nil
}
