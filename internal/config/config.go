package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines dashboard configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Dataset   DatasetConfig   `yaml:"dataset"`
	Generator GeneratorConfig `yaml:"generator"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatasetConfig points at a providers YAML file. An empty path selects the
// embedded reference dataset.
type DatasetConfig struct {
	Path string `yaml:"path"`
}

type GeneratorConfig struct {
	FromYear     int `yaml:"from_year"`
	ToYear       int `yaml:"to_year"`
	ProjectCount int `yaml:"project_count"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 3000,
		},
		Generator: GeneratorConfig{
			FromYear:     2015,
			ToYear:       time.Now().Year(),
			ProjectCount: 50,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("HOUSINGDASH_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if path := os.Getenv("HOUSINGDASH_DATASET_PATH"); path != "" {
		cfg.Dataset.Path = path
	}
	if host := os.Getenv("HOUSINGDASH_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if level := os.Getenv("HOUSINGDASH_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	ints := []struct {
		env string
		dst *int
	}{
		{"HOUSINGDASH_SERVER_PORT", &cfg.Server.Port},
		{"HOUSINGDASH_FROM_YEAR", &cfg.Generator.FromYear},
		{"HOUSINGDASH_TO_YEAR", &cfg.Generator.ToYear},
		{"HOUSINGDASH_PROJECT_COUNT", &cfg.Generator.ProjectCount},
	}
	for _, v := range ints {
		s := os.Getenv(v.env)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", v.env, err)
		}
		*v.dst = n
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges that would make generation or serving fail.
func (c Config) Validate() error {
	if c.Generator.FromYear > c.Generator.ToYear {
		return fmt.Errorf("generator from_year %d is after to_year %d", c.Generator.FromYear, c.Generator.ToYear)
	}
	if c.Generator.ProjectCount < 0 {
		return fmt.Errorf("generator project_count %d is negative", c.Generator.ProjectCount)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	return nil
}

// Addr returns the server listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SlogLevel maps the configured level name to a slog level. Unknown names
// fall back to info.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
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
