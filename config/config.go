// Package config loads pipeline settings from an optional TOML file,
// with environment-variable overrides for the paths and endpoints.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	// LibraryPath is the iTunes export to ingest.
	LibraryPath string `koanf:"library_path"`

	Elasticsearch Service        `koanf:"elasticsearch"`
	Kibana        Service        `koanf:"kibana"`
	Snapshot      SnapshotConfig `koanf:"snapshot"`
}

// Service holds the endpoint and connection-retry policy for one of the
// external services. RetryInterval is in seconds.
type Service struct {
	URL           string `koanf:"url"`
	MaxRetries    int    `koanf:"max_retries"`
	RetryInterval int    `koanf:"retry_interval"`
}

func (s Service) Interval() time.Duration {
	return time.Duration(s.RetryInterval) * time.Second
}

type SnapshotConfig struct {
	Path string `koanf:"path"`
}

// Load reads the default config file locations, in order of priority
// (last wins): ~/.config/insights/config.toml, then ./config.toml.
// Missing files are fine; defaults cover everything.
func Load() (*Config, error) {
	return LoadFrom(configPaths()...)
}

// LoadFrom is Load with explicit file paths, for tests.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("error loading config from '%s': %w", path, err)
			}
		}
	}

	cfg := &Config{
		LibraryPath: "iTunes Music Library.xml",
		Elasticsearch: Service{
			URL:           "http://localhost:9200",
			MaxRetries:    5,
			RetryInterval: 10,
		},
		Kibana: Service{
			URL:           "http://localhost:5601",
			MaxRetries:    60,
			RetryInterval: 5,
		},
		Snapshot: SnapshotConfig{Path: "catalog.db"},
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Environment wins over files, so a compose setup can point the
	// pipeline at its containers without a config file.
	if v := os.Getenv("INSIGHTS_LIBRARY"); v != "" {
		cfg.LibraryPath = v
	}
	if v := os.Getenv("INSIGHTS_ELASTICSEARCH_URL"); v != "" {
		cfg.Elasticsearch.URL = v
	}
	if v := os.Getenv("INSIGHTS_KIBANA_URL"); v != "" {
		cfg.Kibana.URL = v
	}

	return cfg, nil
}

func configPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "insights", "config.toml"))
	}
	paths = append(paths, "config.toml")
	return paths
}
