// Package config loads the optional user configuration file.
//
// Configuration lives at ~/.config/treeline/config.toml (or
// $XDG_CONFIG_HOME/treeline/config.toml) and sets defaults for the CLI
// and the HTTP service. Every value has a built-in default, so a missing
// file is not an error. Flags always override file values.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/treelinehq/treeline/pkg/errors"
)

const appName = "treeline"

// EnvConfigPath overrides the config file location when set.
const EnvConfigPath = "TREELINE_CONFIG"

// Cache backends selectable in the config file.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the root of the configuration file.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Render RenderConfig `toml:"render"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is one of "file", "redis", or "none".
	Backend string `toml:"backend"`

	// Dir is the file cache directory. Empty means the XDG default
	// (~/.cache/treeline).
	Dir string `toml:"dir"`

	// RedisAddr is the host:port of the Redis server.
	RedisAddr string `toml:"redis_addr"`

	// RedisPassword authenticates against the Redis server if set.
	RedisPassword string `toml:"redis_password"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `toml:"addr"`
}

// RenderConfig sets rendering defaults.
type RenderConfig struct {
	// Formats are the output formats produced when none are requested.
	Formats []string `toml:"formats"`

	// CellWidth and CellHeight are the SVG grid cell size in pixels.
	CellWidth  int `toml:"cell_width"`
	CellHeight int `toml:"cell_height"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Cache:  CacheConfig{Backend: BackendFile, RedisAddr: "localhost:6379"},
		Server: ServerConfig{Addr: ":8080"},
		Render: RenderConfig{Formats: []string{"svg"}},
	}
}

// Load reads the configuration file, layering it over the defaults.
// A missing file yields the defaults; a malformed file is an error.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads a specific configuration file over the defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Path returns the config file location, honoring TREELINE_CONFIG and
// the XDG base directory spec.
func Path() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone, "":
	default:
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid cache backend: %q (must be file, redis, or none)", c.Cache.Backend)
	}
	return nil
}
