package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Defaults.Level != DefaultLevel {
		t.Errorf("Defaults.Level = %q, want %q", cfg.Defaults.Level, DefaultLevel)
	}
	if cfg.Defaults.FlowType != DefaultFlowType {
		t.Errorf("Defaults.FlowType = %q, want %q", cfg.Defaults.FlowType, DefaultFlowType)
	}
	if cfg.Defaults.Metric != DefaultMetric {
		t.Errorf("Defaults.Metric = %q, want %q", cfg.Defaults.Metric, DefaultMetric)
	}
	if cfg.Server.Addr != DefaultServerAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultServerAddr)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[defaults]
level = "country"
flow = "bidirectional"

[cache]
dir = "/tmp/tf-cache"
redis_addr = "localhost:6379"

[server]
addr = ":9090"
mongo_uri = "mongodb://localhost:27017"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Defaults.Level != "country" {
		t.Errorf("Defaults.Level = %q, want country", cfg.Defaults.Level)
	}
	if cfg.Defaults.FlowType != "bidirectional" {
		t.Errorf("Defaults.FlowType = %q, want bidirectional", cfg.Defaults.FlowType)
	}
	// Unset fields still receive defaults.
	if cfg.Defaults.Metric != DefaultMetric {
		t.Errorf("Defaults.Metric = %q, want %q", cfg.Defaults.Metric, DefaultMetric)
	}
	if cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("Cache.RedisAddr = %q, want localhost:6379", cfg.Cache.RedisAddr)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Server.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("Server.MongoURI = %q", cfg.Server.MongoURI)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() accepted invalid TOML")
	}
}

func TestPathEnvOverride(t *testing.T) {
	t.Setenv("TRANSFERFLOW_CONFIG", "/custom/config.toml")

	path, err := Path()
	if err != nil {
		t.Fatalf("Path() error = %v", err)
	}
	if path != "/custom/config.toml" {
		t.Errorf("Path() = %q, want /custom/config.toml", path)
	}
}

func TestCacheDir(t *testing.T) {
	cfg := &Config{Cache: Cache{Dir: "/explicit/cache"}}
	dir, err := cfg.CacheDir()
	if err != nil {
		t.Fatalf("CacheDir() error = %v", err)
	}
	if dir != "/explicit/cache" {
		t.Errorf("CacheDir() = %q, want /explicit/cache", dir)
	}

	// Without an explicit dir, the user cache dir is used.
	unset := &Config{}
	dir, err = unset.CacheDir()
	if err != nil {
		t.Fatalf("CacheDir() error = %v", err)
	}
	if filepath.Base(dir) != "transferflow" {
		t.Errorf("CacheDir() = %q, want a transferflow subdirectory", dir)
	}
}
