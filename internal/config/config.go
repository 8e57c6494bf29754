// Package config loads the reviews tool configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"go-review-analytics/internal/pipeline"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where the CLI and API look when no --config is given.
const DefaultConfigPath = "reviews.yaml"

// Config holds all configuration
type Config struct {
	Data   DataConfig   `yaml:"data"`
	Query  QueryConfig  `yaml:"query"`
	Export ExportConfig `yaml:"export"`
	Server ServerConfig `yaml:"server"`
}

// DataConfig locates the review source and maps its header.
type DataConfig struct {
	Path      string           `yaml:"path"`
	Fallbacks []string         `yaml:"fallbacks"`
	Columns   pipeline.Columns `yaml:"columns"`
}

// QueryConfig holds defaults for interactive queries.
type QueryConfig struct {
	TopLocations    int `yaml:"top_locations"`
	LocationPreview int `yaml:"location_preview"`
}

// ExportConfig holds export destinations.
type ExportConfig struct {
	Dir      string `yaml:"dir"`
	BaseName string `yaml:"base_name"`
	DB       string `yaml:"db"` // optional SQLite export history
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr         string `yaml:"addr"`
	ReadTimeout  string `yaml:"read_timeout"`
	WriteTimeout string `yaml:"write_timeout"`
}

// ErrInvalidConfig is returned when config validation fails
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads config from path, falling back to defaults when the file does not exist.
// Values present in the file override the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Default fallbacks only apply to the default data path.
	defaultFallbacks := cfg.Data.Fallbacks
	cfg.Data.Fallbacks = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if cfg.Data.Fallbacks == nil && cfg.Data.Path == DefaultConfig().Data.Path {
		cfg.Data.Fallbacks = defaultFallbacks
	}
	cfg.Data.Columns = cfg.Data.Columns.Merge(pipeline.DefaultColumns())

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that config values are usable.
func Validate(cfg *Config) error {
	if cfg.Data.Path == "" {
		return fmt.Errorf("%w: data.path must not be empty", ErrInvalidConfig)
	}
	if cfg.Query.TopLocations <= 0 {
		return fmt.Errorf("%w: query.top_locations must be positive, got %d",
			ErrInvalidConfig, cfg.Query.TopLocations)
	}
	if cfg.Query.LocationPreview <= 0 {
		return fmt.Errorf("%w: query.location_preview must be positive, got %d",
			ErrInvalidConfig, cfg.Query.LocationPreview)
	}
	if cfg.Export.Dir == "" || cfg.Export.BaseName == "" {
		return fmt.Errorf("%w: export.dir and export.base_name must not be empty", ErrInvalidConfig)
	}
	if cfg.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr must not be empty", ErrInvalidConfig)
	}
	return nil
}

// ResolveDataPath returns the first existing file among data.path and its fallbacks.
// When none exists, data.path is returned so the loader reports it as not found.
func (c *Config) ResolveDataPath() string {
	for _, p := range append([]string{c.Data.Path}, c.Data.Fallbacks...) {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return c.Data.Path
}
