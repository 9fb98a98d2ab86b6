package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	apperrors "github.com/matzehuels/landscape/pkg/errors"
)

// Config holds the CLI configuration, loaded from an optional TOML file.
// Flags override config values; config values override defaults. There is
// no process-wide default path state: every command resolves its paths
// through this struct.
type Config struct {
	// DumpPath is the default directory for dump artifacts.
	DumpPath string `toml:"dump_path"`
	// DumpSuffix is the default artifact filename suffix.
	DumpSuffix string `toml:"dump_suffix"`

	Cache   CacheConfig   `toml:"cache"`
	Archive ArchiveConfig `toml:"archive"`
	Server  ServerConfig  `toml:"server"`
}

// CacheConfig selects the distance-matrix cache backend.
type CacheConfig struct {
	// Backend is one of "file" (default), "redis" or "none".
	Backend string `toml:"backend"`
	// RedisAddr is the host:port of the Redis instance for the redis backend.
	RedisAddr string `toml:"redis_addr"`
}

// ArchiveConfig locates the MongoDB snapshot archive.
type ArchiveConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// ServerConfig configures the inspection API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		DumpPath: ".",
		Cache: CacheConfig{
			Backend:   "file",
			RedisAddr: "localhost:6379",
		},
		Archive: ArchiveConfig{
			URI:      "mongodb://localhost:27017",
			Database: appName,
		},
		Server: ServerConfig{
			Addr: "localhost:8710",
		},
	}
}

// LoadConfig reads the TOML config at path, or at the default location
// (~/.config/landscape/config.toml) when path is empty. A missing file
// yields the defaults; a malformed file or invalid values are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if explicit {
			return cfg, apperrors.New(apperrors.ErrCodeInvalidConfig,
				"config file %s does not exist", path)
		}
		return cfg, nil
	}
	if err != nil {
		return cfg, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	switch cfg.Cache.Backend {
	case "file", "redis", "none":
	default:
		return apperrors.New(apperrors.ErrCodeInvalidConfig,
			"cache backend must be file, redis or none, got %q", cfg.Cache.Backend)
	}
	return apperrors.ValidateSuffix(cfg.DumpSuffix)
}
