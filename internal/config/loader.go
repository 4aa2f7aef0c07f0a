package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader loads configuration from multiple sources, merging them by
// priority (higher wins).
type Loader struct {
	sources []Source
}

// Source represents a configuration source.
type Source interface {
	Load() (*Config, error)
	Priority() int
	Name() string
}

// FileSource loads configuration from a YAML or JSON file.
type FileSource struct {
	Path     string
	priority int
}

// EnvSource loads configuration from environment variables under a
// prefix, e.g. MG2_MODE, MG2_STORAGE_BACKEND.
type EnvSource struct {
	Prefix   string
	priority int
}

// NewLoader creates an empty Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// AddSource registers a configuration source.
func (l *Loader) AddSource(s Source) {
	l.sources = append(l.sources, s)
}

// NewFileSource creates a high-priority file-backed source.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path, priority: 100}
}

// NewEnvSource creates a medium-priority environment-backed source.
func NewEnvSource(prefix string) *EnvSource {
	return &EnvSource{Prefix: prefix, priority: 50}
}

// Load merges the default configuration with every registered source,
// highest priority last so it wins.
func (l *Loader) Load() (*Config, error) {
	sorted := append([]Source{}, l.sources...)
	for i := 0; i < len(sorted)-1; i++ {
		for j := 0; j < len(sorted)-i-1; j++ {
			if sorted[j].Priority() > sorted[j+1].Priority() {
				sorted[j], sorted[j+1] = sorted[j+1], sorted[j]
			}
		}
	}

	cfg := defaultConfig()
	for _, src := range sorted {
		override, err := src.Load()
		if err != nil {
			return nil, fmt.Errorf("config source %s: %w", src.Name(), err)
		}
		cfg = merge(cfg, override)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Codec.DefaultVertexPrecision <= 0 {
		return fmt.Errorf("codec.default_vertex_precision must be positive, got %v", cfg.Codec.DefaultVertexPrecision)
	}
	for i, d := range cfg.Codec.GridDivisions {
		if d < 1 {
			return fmt.Errorf("codec.grid_divisions[%d] must be >= 1, got %d", i, d)
		}
	}
	switch cfg.Storage.Backend {
	case "local", "s3", "azure", "gcs":
	default:
		return fmt.Errorf("storage.backend %q is not one of local|s3|azure|gcs", cfg.Storage.Backend)
	}
	return nil
}

func merge(base, override *Config) *Config {
	if override == nil {
		return base
	}
	merged := *base

	if override.Mode != "" {
		merged.Mode = override.Mode
	}
	if override.LogLevel != "" {
		merged.LogLevel = override.LogLevel
	}
	if override.Codec.DefaultVertexPrecision != 0 {
		merged.Codec.DefaultVertexPrecision = override.Codec.DefaultVertexPrecision
	}
	if override.Codec.GridDivisions != [3]uint32{} {
		merged.Codec.GridDivisions = override.Codec.GridDivisions
	}
	if override.Storage.Backend != "" {
		merged.Storage.Backend = override.Storage.Backend
	}
	if override.Storage.LocalPath != "" {
		merged.Storage.LocalPath = override.Storage.LocalPath
	}
	if override.Storage.Bucket != "" {
		merged.Storage.Bucket = override.Storage.Bucket
	}
	if override.Storage.Region != "" {
		merged.Storage.Region = override.Storage.Region
	}
	if override.Storage.Prefix != "" {
		merged.Storage.Prefix = override.Storage.Prefix
	}
	if len(override.Storage.Options) > 0 {
		merged.Storage.Options = override.Storage.Options
	}
	if override.Cache.MaxCost != 0 {
		merged.Cache.MaxCost = override.Cache.MaxCost
	}
	if override.Cache.TTL != 0 {
		merged.Cache.TTL = override.Cache.TTL
	}
	if override.Metrics.Namespace != "" {
		merged.Metrics.Namespace = override.Metrics.Namespace
	}
	merged.Cache.Enabled = override.Cache.Enabled || base.Cache.Enabled
	merged.Metrics.Enabled = override.Metrics.Enabled || base.Metrics.Enabled

	return &merged
}

// FileSource implementation.

func (fs *FileSource) Load() (*Config, error) {
	f, err := os.Open(fs.Path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	lower := strings.ToLower(fs.Path)
	if strings.HasSuffix(lower, ".yml") || strings.HasSuffix(lower, ".yaml") {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse yaml config: %w", err)
		}
	} else if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse json config: %w", err)
	}
	return &cfg, nil
}

func (fs *FileSource) Priority() int { return fs.priority }
func (fs *FileSource) Name() string  { return fmt.Sprintf("file:%s", fs.Path) }

// EnvSource implementation.

func (es *EnvSource) Load() (*Config, error) {
	cfg := &Config{}
	cfg.Mode = Mode(os.Getenv(es.Prefix + "MODE"))
	cfg.LogLevel = os.Getenv(es.Prefix + "LOG_LEVEL")
	cfg.Storage.Backend = os.Getenv(es.Prefix + "STORAGE_BACKEND")
	cfg.Storage.Bucket = os.Getenv(es.Prefix + "STORAGE_BUCKET")
	cfg.Storage.Region = os.Getenv(es.Prefix + "STORAGE_REGION")
	cfg.Storage.LocalPath = os.Getenv(es.Prefix + "STORAGE_LOCAL_PATH")

	if v := os.Getenv(es.Prefix + "DEFAULT_VERTEX_PRECISION"); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.Codec.DefaultVertexPrecision = float32(f)
		}
	}
	return cfg, nil
}

func (es *EnvSource) Priority() int { return es.priority }
func (es *EnvSource) Name() string  { return fmt.Sprintf("env:%s", es.Prefix) }
