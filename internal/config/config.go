package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gpa-tracker/internal/storage"
	"gpa-tracker/internal/storage/sqlite"
	"gpa-tracker/pkg/fsutils"

	"github.com/spf13/viper"
)

// Backend kinds accepted in the "backend" setting.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds the settings shared by the CLI and the web server.
type Config struct {
	DataDir    string    `mapstructure:"data_dir"`
	Backend    string    `mapstructure:"backend"`
	StorageKey string    `mapstructure:"storage_key"`
	LogLevel   string    `mapstructure:"log_level"`
	Web        WebConfig `mapstructure:"web"`
}

type WebConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load reads configuration. With an explicit path that file must exist;
// otherwise gpa.yaml (or .json/.toml) in the working directory is used if
// present, and the defaults apply to anything left unset.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("data_dir", ".gpa_data")
	v.SetDefault("backend", BackendJSON)
	v.SetDefault("storage_key", "gpa-courses")
	v.SetDefault("log_level", "info")
	v.SetDefault("web.addr", "127.0.0.1:8081")

	if path != "" {
		if !fsutils.FileExists(path) {
			return nil, fmt.Errorf("config file %s not found", path)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("gpa")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that have no usable fallback.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendJSON, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q (want %s, %s or %s)", c.Backend, BackendJSON, BackendSQLite, BackendMemory)
	}
	if c.Backend != BackendMemory && strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data_dir is required for the %s backend", c.Backend)
	}
	if strings.TrimSpace(c.StorageKey) == "" {
		return fmt.Errorf("storage_key cannot be empty")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// NewLogger builds the text logger used by both commands.
func (c *Config) NewLogger() *slog.Logger {
	level, err := c.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// OpenBackend opens the configured blob store. The caller closes it.
func (c *Config) OpenBackend() (storage.BlobStore, error) {
	switch c.Backend {
	case BackendMemory:
		return storage.NewMemoryStore(), nil
	case BackendSQLite:
		if err := fsutils.CreateDir(c.DataDir); err != nil {
			return nil, fmt.Errorf("failed to create data directory '%s': %w", c.DataDir, err)
		}
		return sqlite.Open(filepath.Join(c.DataDir, "gpa.db"))
	default:
		return storage.NewJSONStore(c.DataDir)
	}
}
