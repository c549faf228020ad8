// Package config loads modorder settings from a TOML file and MODORDER_*
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/matzehuels/modorder/pkg/cache"
	"github.com/matzehuels/modorder/pkg/errors"
	"github.com/matzehuels/modorder/pkg/profile"
)

const (
	// AppName is used for directories and the environment prefix.
	AppName = "modorder"
	// ConfigFileName is the config file name inside ConfigDir.
	ConfigFileName = "config.toml"
	// EnvPrefix prefixes environment overrides, e.g. MODORDER_CACHE_BACKEND.
	EnvPrefix = "MODORDER"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the merged configuration.
type Config struct {
	ModsDir    string `mapstructure:"mods_dir"`
	Profile    string `mapstructure:"profile"`
	ProfileDir string `mapstructure:"profile_dir"`

	Cache  CacheConfig  `mapstructure:"cache"`
	Mongo  MongoConfig  `mapstructure:"mongo"`
	Server ServerConfig `mapstructure:"server"`

	// Source is the config file that was read, or empty.
	Source string `mapstructure:"-"`
}

// CacheConfig selects and configures the resolution cache.
type CacheConfig struct {
	Backend   string        `mapstructure:"backend"`
	Dir       string        `mapstructure:"dir"`
	RedisAddr string        `mapstructure:"redis_addr"`

	// TTL is how long resolutions stay cached. Zero falls back to
	// cache.DefaultTTL; results are never cached without expiry.
	TTL time.Duration `mapstructure:"ttl"`
}

// MongoConfig enables the MongoDB profile store when URI is set.
type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

// ServerConfig configures `modorder serve`.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ModsDir:    "mods",
		Profile:    profile.DefaultName,
		ProfileDir: filepath.Join(DataDir(), "profiles"),
		Cache: CacheConfig{
			Backend: CacheFile,
			Dir:     CacheDir(),
			TTL:     cache.DefaultTTL,
		},
		Mongo:  MongoConfig{Database: AppName},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Load reads configuration. An explicit path must exist; otherwise the file
// in ConfigDir is used when present. Environment variables override the file
// and the file overrides defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	d := Default()
	v.SetDefault("mods_dir", d.ModsDir)
	v.SetDefault("profile", d.Profile)
	v.SetDefault("profile_dir", d.ProfileDir)
	v.SetDefault("cache.backend", d.Cache.Backend)
	v.SetDefault("cache.dir", d.Cache.Dir)
	v.SetDefault("cache.redis_addr", d.Cache.RedisAddr)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("mongo.uri", d.Mongo.URI)
	v.SetDefault("mongo.database", d.Mongo.Database)
	v.SetDefault("server.addr", d.Server.Addr)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	source := ""
	if path != "" {
		if !fileExists(path) {
			return nil, errors.New(errors.ErrCodeNotFound, "config file not found: %s", path)
		}
		source = path
	} else if p := filepath.Join(ConfigDir(), ConfigFileName); fileExists(p) {
		source = p
	}

	if source != "" {
		v.SetConfigFile(source)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", source)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Source = source

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that viper cannot.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache.ttl cannot be negative")
	}
	return errors.ValidateProfileName(c.Profile)
}

// ConfigDir returns $XDG_CONFIG_HOME/modorder, defaulting to ~/.config/modorder.
func ConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// CacheDir returns $XDG_CACHE_HOME/modorder, defaulting to ~/.cache/modorder.
func CacheDir() string {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

// DataDir returns $XDG_DATA_HOME/modorder, defaulting to ~/.local/share/modorder.
func DataDir() string {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return filepath.Join(dir, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppName)
	}
	return filepath.Join(home, fallback, AppName)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
