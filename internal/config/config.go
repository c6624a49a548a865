package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

// ConfigPathEnv names the variable holding an optional YAML config file.
const ConfigPathEnv = "TRACKER_CONFIG_PATH"

// Config defines server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Uploads UploadConfig  `yaml:"uploads"`
	Log     LogConfig     `yaml:"log"`
	MCP     MCPConfig     `yaml:"mcp"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type ServerConfig struct {
	Host string `yaml:"host" env:"TRACKER_SERVER_HOST"`
	Port int    `yaml:"port" env:"TRACKER_SERVER_PORT"`
}

type StorageConfig struct {
	Driver   string `yaml:"driver" env:"TRACKER_STORAGE_DRIVER"`
	DataFile string `yaml:"data_file" env:"TRACKER_DATA_FILE"`
	LogsDir  string `yaml:"logs_dir" env:"TRACKER_LOGS_DIR"`
	DBPath   string `yaml:"db_path" env:"TRACKER_DB_PATH"`
}

type UploadConfig struct {
	Dir      string `yaml:"dir" env:"TRACKER_UPLOAD_DIR"`
	MaxBytes int64  `yaml:"max_bytes" env:"TRACKER_UPLOAD_MAX_BYTES"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"TRACKER_LOG_LEVEL"`
	Path  string `yaml:"path" env:"TRACKER_LOG_PATH"`
}

type MCPConfig struct {
	Enabled bool `yaml:"enabled" env:"TRACKER_MCP_ENABLED"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled" env:"TRACKER_METRICS_ENABLED"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 5000,
		},
		Storage: StorageConfig{
			Driver:   DriverJSON,
			DataFile: "activity_data.json",
			LogsDir:  "activity_logs",
			DBPath:   "tracker.db",
		},
		Uploads: UploadConfig{
			Dir:      "uploads",
			MaxBytes: 16 << 20,
		},
		Log: LogConfig{
			Level: "info",
		},
		MCP: MCPConfig{
			Enabled: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
// An explicit path takes precedence over TRACKER_CONFIG_PATH.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(ConfigPathEnv)
	}
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports configuration values the server cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid server port %d", c.Server.Port))
	}
	switch c.Storage.Driver {
	case DriverJSON:
		if c.Storage.DataFile == "" || c.Storage.LogsDir == "" {
			errs = append(errs, errors.New("json storage requires data_file and logs_dir"))
		}
	case DriverSQLite:
		if c.Storage.DBPath == "" {
			errs = append(errs, errors.New("sqlite storage requires db_path"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage driver %q", c.Storage.Driver))
	}
	if c.Uploads.Dir == "" {
		errs = append(errs, errors.New("uploads dir is required"))
	}
	if c.Uploads.MaxBytes < 0 {
		errs = append(errs, errors.New("uploads max_bytes must not be negative"))
	}
	return errors.Join(errs...)
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
