package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/graphscribe/graphscribe/pkg/errors"
)

// Config holds the settings read from graphscribe.toml. It is only used by
// the serve command; the local commands take everything from flags.
type Config struct {
	Listen string      `toml:"listen"`
	Store  StoreConfig `toml:"store"`
	Cache  CacheConfig `toml:"cache"`
}

// StoreConfig selects the snapshot store backend.
type StoreConfig struct {
	// Backend is "memory" or "mongo".
	Backend  string `toml:"backend"`
	MongoURI string `toml:"mongo_uri"`
}

// CacheConfig selects the transcript cache backend.
type CacheConfig struct {
	// Backend is "file", "redis", or "none".
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
	TTLHours  int    `toml:"ttl_hours"`
}

// DefaultConfig returns the configuration used when no file is present:
// an in-memory store and a file cache under the XDG cache directory.
func DefaultConfig() Config {
	return Config{
		Listen: ":8080",
		Store:  StoreConfig{Backend: "memory"},
		Cache:  CacheConfig{Backend: "file", TTLHours: 24},
	}
}

// LoadConfig reads a TOML config file and overlays it on the defaults.
// An empty path falls back to graphscribe.toml in the working directory;
// a missing file is not an error and yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(".", appName+".toml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return cfg, nil
}

// CacheTTL returns the configured cache entry lifetime.
func (c Config) CacheTTL() time.Duration {
	if c.Cache.TTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.Cache.TTLHours) * time.Hour
}
