// Package config loads the server configuration. Values come from
// built-in defaults, then an optional YAML file, then MAPKEEPER_*
// environment variables. The server binary applies command-line
// flags last.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "MAPKEEPER_"

// Config is the complete server configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
	Stats   StatsConfig   `yaml:"stats"`
}

// ServerConfig configures the network frontend
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// Workers is the number of requests served at once
	Workers  int    `yaml:"workers"`
	Frontend string `yaml:"frontend"`
}

// StorageConfig configures the storage engine
type StorageConfig struct {
	Engine  string `yaml:"engine"`
	DataDir string `yaml:"data_dir"`
	// PageSize is the bbolt page size. Zero
	// uses the operating system page size.
	PageSize int  `yaml:"page_size"`
	NoSync   bool `yaml:"no_sync"`
	// SyncInterval is how often the engine is flushed
	// to disk when NoSync is set
	SyncInterval time.Duration `yaml:"sync_interval"`
	OpenTimeout  time.Duration `yaml:"open_timeout"`
}

// LoggingConfig configures the process logger
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// StatsConfig configures latency reporting
type StatsConfig struct {
	// ReportInterval is how often stats are logged.
	// Zero disables reporting.
	ReportInterval time.Duration `yaml:"report_interval"`
	// Window is the number of calls each
	// moving average covers
	Window int `yaml:"window"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:     "",
			Port:     9090,
			Workers:  32,
			Frontend: "grpc",
		},
		Storage: StorageConfig{
			Engine:       "bbolt",
			DataDir:      "data",
			SyncInterval: time.Second,
			OpenTimeout:  5 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Stats: StatsConfig{
			ReportInterval: time.Minute,
			Window:         1000,
		},
	}
}

// Load builds a configuration from the defaults, the file at path
// if path is not empty, and the environment
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		if err := config.LoadFromFile(path); err != nil {
			return nil, err
		}
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadFromFile overlays the YAML file at path. Keys
// missing from the file keep their current values.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)

	if err != nil {
		return fmt.Errorf("could not read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("could not parse config file %s: %w", path, err)
	}

	return nil
}

// LoadFromEnv overlays MAPKEEPER_* environment variables
func (c *Config) LoadFromEnv() error {
	overrides := []struct {
		name  string
		apply func(string) error
	}{
		{"HOST", setString(&c.Server.Host)},
		{"PORT", setInt(&c.Server.Port)},
		{"WORKERS", setInt(&c.Server.Workers)},
		{"FRONTEND", setString(&c.Server.Frontend)},
		{"ENGINE", setString(&c.Storage.Engine)},
		{"DATA_DIR", setString(&c.Storage.DataDir)},
		{"PAGE_SIZE", setInt(&c.Storage.PageSize)},
		{"NO_SYNC", setBool(&c.Storage.NoSync)},
		{"SYNC_INTERVAL", setDuration(&c.Storage.SyncInterval)},
		{"OPEN_TIMEOUT", setDuration(&c.Storage.OpenTimeout)},
		{"LOG_LEVEL", setString(&c.Logging.Level)},
		{"LOG_FORMAT", setString(&c.Logging.Format)},
		{"STATS_INTERVAL", setDuration(&c.Stats.ReportInterval)},
		{"STATS_WINDOW", setInt(&c.Stats.Window)},
	}

	for _, override := range overrides {
		value, ok := os.LookupEnv(EnvPrefix + override.name)

		if !ok || value == "" {
			continue
		}

		if err := override.apply(value); err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, override.name, err)
		}
	}

	return nil
}

func setString(target *string) func(string) error {
	return func(value string) error {
		*target = value

		return nil
	}
}

func setInt(target *int) func(string) error {
	return func(value string) error {
		i, err := strconv.Atoi(value)

		if err != nil {
			return err
		}

		*target = i

		return nil
	}
}

func setBool(target *bool) func(string) error {
	return func(value string) error {
		b, err := strconv.ParseBool(value)

		if err != nil {
			return err
		}

		*target = b

		return nil
	}
}

func setDuration(target *time.Duration) func(string) error {
	return func(value string) error {
		d, err := time.ParseDuration(value)

		if err != nil {
			return err
		}

		*target = d

		return nil
	}
}

// Validate checks the configuration for values the server can't use
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535, got %d", c.Server.Port)
	}

	if c.Server.Workers <= 0 {
		return fmt.Errorf("server.workers must be positive, got %d", c.Server.Workers)
	}

	switch c.Server.Frontend {
	case "grpc", "rest":
	default:
		return fmt.Errorf("server.frontend must be grpc or rest, got %q", c.Server.Frontend)
	}

	if c.Storage.Engine == "" {
		return fmt.Errorf("storage.engine is required")
	}

	if c.Storage.Engine == "bbolt" && c.Storage.DataDir == "" {
		return fmt.Errorf("storage.data_dir is required for the bbolt engine")
	}

	if c.Storage.PageSize < 0 {
		return fmt.Errorf("storage.page_size must not be negative, got %d", c.Storage.PageSize)
	}

	if c.Storage.NoSync && c.Storage.SyncInterval <= 0 {
		return fmt.Errorf("storage.sync_interval must be positive when storage.no_sync is set")
	}

	if c.Stats.ReportInterval < 0 {
		return fmt.Errorf("stats.report_interval must not be negative")
	}

	if c.Stats.Window <= 0 {
		return fmt.Errorf("stats.window must be positive, got %d", c.Stats.Window)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}

	return nil
}

// Address returns the host:port the server listens on
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// SaveToFile writes the configuration as YAML
func (c *Config) SaveToFile(path string) error {
	data, err := yaml.Marshal(c)

	if err != nil {
		return fmt.Errorf("could not encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("could not write config file %s: %w", path, err)
	}

	return nil
}
