// Package config loads the transferflow configuration file.
//
// Configuration lives in a TOML file at ~/.config/transferflow/config.toml
// (override with TRANSFERFLOW_CONFIG). Every field has a working default, so
// the file is optional; flags override file values where both exist.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Defaults applied when the config file is absent or a field is unset.
const (
	DefaultServerAddr = ":8080"
	DefaultLevel      = "league"
	DefaultFlowType   = "net"
	DefaultMetric     = "sum"
)

// Config is the root configuration.
type Config struct {
	Defaults Defaults `toml:"defaults"`
	Cache    Cache    `toml:"cache"`
	Server   Server   `toml:"server"`
}

// Defaults sets the transform options used when flags are omitted.
type Defaults struct {
	Level    string `toml:"level"`
	FlowType string `toml:"flow"`
	Metric   string `toml:"metric"`
}

// Cache configures the transform result cache.
// When RedisAddr is set it takes precedence over the file cache directory.
type Cache struct {
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
}

// Server configures the HTTP API.
type Server struct {
	Addr     string `toml:"addr"`
	MongoURI string `toml:"mongo_uri"` // enables the result archive when set
}

// Path returns the config file location: TRANSFERFLOW_CONFIG if set,
// otherwise ~/.config/transferflow/config.toml.
func Path() (string, error) {
	if env := os.Getenv("TRANSFERFLOW_CONFIG"); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", "transferflow", "config.toml"), nil
}

// CacheDir returns the configured cache directory, defaulting to
// ~/.cache/transferflow.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	return filepath.Join(base, "transferflow"), nil
}

// Load reads the config file at path and fills unset fields with defaults.
// A missing file is not an error: the returned config carries pure defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// LoadDefault loads the config from the default location.
func LoadDefault() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

func (c *Config) applyDefaults() {
	if c.Defaults.Level == "" {
		c.Defaults.Level = DefaultLevel
	}
	if c.Defaults.FlowType == "" {
		c.Defaults.FlowType = DefaultFlowType
	}
	if c.Defaults.Metric == "" {
		c.Defaults.Metric = DefaultMetric
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
}
