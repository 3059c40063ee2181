// Package config loads and serves the process-wide configuration. The size
// limit is served live: Reload replaces the whole snapshot and every read sees
// the latest value.
package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultMaxUploadSizeBytes = 100 * 1024 * 1024
	defaultServerURL          = "http://127.0.0.1:8080"
	defaultTimeout            = 2 * time.Minute

	envServerURL     = "FILEDROP_SERVER_URL"
	envMaxUploadSize = "FILEDROP_MAX_UPLOAD_SIZE"
)

// Config holds the complete application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Uploads UploadsConfig `yaml:"uploads"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds remote endpoint configuration.
type ServerConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// UploadsConfig holds upload validation configuration.
type UploadsConfig struct {
	MaxSizeBytes  int64    `yaml:"maxSizeBytes"`
	Extensions    []string `yaml:"extensions"`
	AllowMultiple bool     `yaml:"allowMultiple"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig holds the default configuration values.
var DefaultConfig = Config{
	Server: ServerConfig{
		URL:     defaultServerURL,
		Timeout: defaultTimeout,
	},
	Uploads: UploadsConfig{
		MaxSizeBytes: defaultMaxUploadSizeBytes,
	},
	Logging: LoggingConfig{
		Level: "info",
	},
}

// Source serves configuration snapshots. It satisfies ingest.LimitSource.
type Source struct {
	mu   sync.RWMutex
	path string
	cfg  Config
}

// Load reads the configuration file at path, applies environment overrides and
// returns a live source. A missing file is not an error, defaults apply.
func Load(path string) (*Source, error) {
	source := &Source{path: path}
	if err := source.Reload(); err != nil {
		return nil, err
	}
	return source, nil
}

// Static returns a source with a fixed size limit. Intended for tests and for
// callers that do not use a configuration file.
func Static(maxUploadSizeBytes int64) *Source {
	cfg := DefaultConfig
	cfg.Uploads.MaxSizeBytes = maxUploadSizeBytes
	return &Source{cfg: cfg}
}

// Reload re-reads the configuration file and replaces the current snapshot.
func (s *Source) Reload() error {
	cfg := DefaultConfig

	if s.path != "" {
		data, err := os.ReadFile(s.path)
		switch {
		case os.IsNotExist(err):
			// fall through to defaults
		case err != nil:
			return fmt.Errorf("read config %s: %w", s.path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return fmt.Errorf("parse config %s: %w", s.path, err)
			}
		}
	}

	applyEnvOverrides(&cfg)

	if cfg.Uploads.MaxSizeBytes <= 0 {
		return fmt.Errorf("invalid max upload size: %d", cfg.Uploads.MaxSizeBytes)
	}

	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the current configuration.
func (s *Source) Snapshot() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// MaxUploadSizeBytes returns the current upload size limit.
func (s *Source) MaxUploadSizeBytes() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Uploads.MaxSizeBytes
}

func applyEnvOverrides(cfg *Config) {
	if url := os.Getenv(envServerURL); url != "" {
		cfg.Server.URL = url
	}
	if raw := os.Getenv(envMaxUploadSize); raw != "" {
		if size, err := strconv.ParseInt(raw, 10, 64); err == nil && size > 0 {
			cfg.Uploads.MaxSizeBytes = size
		}
	}
}
