package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/graphscribe/graphscribe/pkg/errors"
)

func TestLoadConfigDefaults(t *testing.T) {
	// Point the implicit lookup at an empty directory.
	cwd, _ := os.Getwd()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(cwd)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Listen != ":8080" {
		t.Errorf("Listen = %q, want %q", cfg.Listen, ":8080")
	}
	if cfg.Store.Backend != "memory" {
		t.Errorf("Store.Backend = %q, want %q", cfg.Store.Backend, "memory")
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, "file")
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graphscribe.toml")
	content := `
listen = ":9000"

[store]
backend = "mongo"
mongo_uri = "mongodb://localhost:27017"

[cache]
backend = "redis"
redis_addr = "localhost:6379"
ttl_hours = 6
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Listen != ":9000" {
		t.Errorf("Listen = %q, want %q", cfg.Listen, ":9000")
	}
	if cfg.Store.Backend != "mongo" {
		t.Errorf("Store.Backend = %q, want %q", cfg.Store.Backend, "mongo")
	}
	if cfg.Store.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("Store.MongoURI = %q", cfg.Store.MongoURI)
	}
	if cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("Cache.RedisAddr = %q", cfg.Cache.RedisAddr)
	}
	if got := cfg.CacheTTL(); got != 6*time.Hour {
		t.Errorf("CacheTTL() = %v, want %v", got, 6*time.Hour)
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("LoadConfig() with explicit missing path should fail")
	}
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
	}
}

func TestLoadConfigBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graphscribe.toml")
	if err := os.WriteFile(path, []byte("listen = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfig(path)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
	}
}

func TestCacheTTLDefault(t *testing.T) {
	cfg := Config{}
	if got := cfg.CacheTTL(); got != 24*time.Hour {
		t.Errorf("CacheTTL() = %v, want %v", got, 24*time.Hour)
	}
}
