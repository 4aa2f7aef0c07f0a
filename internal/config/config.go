// Package config provides multi-source configuration loading for the
// MG2 container service and CLI.
package config

import "time"

// Mode selects where container blobs live.
type Mode string

const (
	// ModeLocal stores compressed meshes on the local filesystem.
	ModeLocal Mode = "local"
	// ModeCloud stores compressed meshes in a cloud object store.
	ModeCloud Mode = "cloud"
)

// Config is the merged configuration for a container service instance.
type Config struct {
	Mode     Mode     `json:"mode" yaml:"mode"`
	LogLevel string   `json:"log_level" yaml:"log_level"`
	Codec    Codec    `json:"codec" yaml:"codec"`
	Storage  Storage  `json:"storage" yaml:"storage"`
	Cache    Cache    `json:"cache" yaml:"cache"`
	Metrics  Metrics  `json:"metrics" yaml:"metrics"`
}

// Codec carries the default MG2 encode parameters.
type Codec struct {
	// DefaultVertexPrecision is loaded and validated (it must be
	// positive). No caller in this module reads it: a mesh submitted
	// without a positive vertex precision is rejected by validation.
	DefaultVertexPrecision float32 `json:"default_vertex_precision" yaml:"default_vertex_precision"`
	// GridDivisions is loaded and validated (each axis >= 1). The
	// encoder does not read it and always uses mg2.EncoderDivisions
	// (64x64x64); the decoder takes divisions from the HEAD chunk.
	GridDivisions [3]uint32 `json:"grid_divisions" yaml:"grid_divisions"`
}

// Storage selects and configures the container blob backend.
type Storage struct {
	Backend   string            `json:"backend" yaml:"backend"` // "local", "s3", "azure", "gcs"
	LocalPath string            `json:"local_path" yaml:"local_path"`
	Bucket    string            `json:"bucket" yaml:"bucket"`
	Region    string            `json:"region" yaml:"region"`
	Prefix    string            `json:"prefix" yaml:"prefix"`
	Options   map[string]string `json:"options" yaml:"options"`
}

// Cache configures the in-process decode cache.
type Cache struct {
	Enabled bool          `json:"enabled" yaml:"enabled"`
	MaxCost int64         `json:"max_cost" yaml:"max_cost"`
	TTL     time.Duration `json:"ttl" yaml:"ttl"`
}

// Metrics configures Prometheus instrumentation.
type Metrics struct {
	Enabled   bool   `json:"enabled" yaml:"enabled"`
	Namespace string `json:"namespace" yaml:"namespace"`
}

func defaultConfig() *Config {
	return &Config{
		Mode:     ModeLocal,
		LogLevel: "info",
		Codec: Codec{
			DefaultVertexPrecision: 1e-3,
			GridDivisions:          [3]uint32{64, 64, 64},
		},
		Storage: Storage{
			Backend:   "local",
			LocalPath: "./data/containers",
			Options:   make(map[string]string),
		},
		Cache: Cache{
			Enabled: true,
			MaxCost: 64 << 20, // 64MB of cached decoded meshes
			TTL:     10 * time.Minute,
		},
		Metrics: Metrics{
			Enabled:   true,
			Namespace: "mg2container",
		},
	}
}
