package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// StagehandDir is the per-user directory holding the database and the
	// optional config file.
	StagehandDir = ".stagehand"

	configFileName = "config.yaml"
	dbFileName     = "stagehand.db"
)

// Config holds the runtime settings of the CLI. Everything has a working
// default; the config file and environment only override.
type Config struct {
	DBPath  string `yaml:"db_path"`
	NoColor bool   `yaml:"no_color"`
}

// Load builds the effective configuration. Precedence, lowest to highest:
// built-in defaults, ~/.stagehand/config.yaml, then environment variables
// (STAGEHAND_DB, STAGEHAND_CONFIG for an alternate config file, NO_COLOR).
func Load() (*Config, error) {
	cfg := &Config{}

	path := os.Getenv("STAGEHAND_CONFIG")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		path = filepath.Join(home, StagehandDir, configFileName)
	}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// No config file is the common case.
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if env := os.Getenv("STAGEHAND_DB"); env != "" {
		cfg.DBPath = env
	}
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, StagehandDir, dbFileName)
	}

	if os.Getenv("NO_COLOR") != "" {
		cfg.NoColor = true
	}
	return cfg, nil
}

// EnsureDBDir creates the parent directory of the configured database path.
func (c *Config) EnsureDBDir() error {
	if c.DBPath == ":memory:" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}
	return nil
}
