package config

import (
	"time"

	"go-review-analytics/internal/pipeline"
)

// Server timeouts used when the configured values are empty or invalid.
const (
	DefaultReadTimeout  = 15 * time.Second
	DefaultWriteTimeout = 30 * time.Second
)

// DefaultConfig returns configuration with sensible defaults.
// These defaults are used when no config file exists or when
// the config file is missing specific fields.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Path:      "data/Disneyland_reviews.csv",
			Fallbacks: []string{"data/disneyland_reviews.csv"},
			Columns:   pipeline.DefaultColumns(),
		},
		Query: QueryConfig{
			TopLocations:    10,
			LocationPreview: 5,
		},
		Export: ExportConfig{
			Dir:      "exports",
			BaseName: "park_reviews_summary",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  "15s",
			WriteTimeout: "30s",
		},
	}
}
