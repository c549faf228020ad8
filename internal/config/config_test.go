package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/modorder/pkg/errors"
)

// isolate points every XDG directory at a temp dir so the user's real
// config never leaks into a test.
func isolate(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(root, "cache"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	return root
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaults(t *testing.T) {
	root := isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Source != "" {
		t.Errorf("Source = %q, want empty", cfg.Source)
	}
	if cfg.Profile != "default" {
		t.Errorf("Profile = %q, want default", cfg.Profile)
	}
	if cfg.Cache.Backend != CacheFile {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, CacheFile)
	}
	if want := filepath.Join(root, "cache", AppName); cfg.Cache.Dir != want {
		t.Errorf("Cache.Dir = %q, want %q", cfg.Cache.Dir, want)
	}
	if want := filepath.Join(root, "data", AppName, "profiles"); cfg.ProfileDir != want {
		t.Errorf("ProfileDir = %q, want %q", cfg.ProfileDir, want)
	}
	if cfg.Cache.TTL != 7*24*time.Hour {
		t.Errorf("Cache.TTL = %v, want 168h", cfg.Cache.TTL)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Mongo.Database != AppName {
		t.Errorf("Mongo.Database = %q, want %q", cfg.Mongo.Database, AppName)
	}
}

func TestLoadFromConfigDir(t *testing.T) {
	root := isolate(t)
	path := filepath.Join(root, "config", AppName, ConfigFileName)
	writeFile(t, path, `
mods_dir = "/games/skyrim/mods"
profile = "survival"

[cache]
backend = "none"
ttl = "2h"

[server]
addr = "127.0.0.1:9000"
`)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Source != path {
		t.Errorf("Source = %q, want %q", cfg.Source, path)
	}
	if cfg.ModsDir != "/games/skyrim/mods" {
		t.Errorf("ModsDir = %q", cfg.ModsDir)
	}
	if cfg.Profile != "survival" {
		t.Errorf("Profile = %q, want survival", cfg.Profile)
	}
	if cfg.Cache.Backend != CacheNone {
		t.Errorf("Cache.Backend = %q, want none", cfg.Cache.Backend)
	}
	if cfg.Cache.TTL != 2*time.Hour {
		t.Errorf("Cache.TTL = %v, want 2h", cfg.Cache.TTL)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	// Unset keys keep defaults
	if cfg.Mongo.Database != AppName {
		t.Errorf("Mongo.Database = %q, want default", cfg.Mongo.Database)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	root := isolate(t)
	path := filepath.Join(root, "custom.toml")
	writeFile(t, path, "profile = \"fromfile\"\n[cache]\nbackend = \"file\"\n")

	t.Setenv("MODORDER_PROFILE", "fromenv")
	t.Setenv("MODORDER_CACHE_BACKEND", "redis")
	t.Setenv("MODORDER_CACHE_REDIS_ADDR", "localhost:6379")
	t.Setenv("MODORDER_MONGO_URI", "mongodb://localhost:27017")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Profile != "fromenv" {
		t.Errorf("Profile = %q, want fromenv", cfg.Profile)
	}
	if cfg.Cache.Backend != CacheRedis || cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("Cache = %+v, want redis at localhost:6379", cfg.Cache)
	}
	if cfg.Mongo.URI != "mongodb://localhost:27017" {
		t.Errorf("Mongo.URI = %q", cfg.Mongo.URI)
	}
}

func TestLoadErrors(t *testing.T) {
	root := isolate(t)

	if _, err := Load(filepath.Join(root, "missing.toml")); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing explicit file: error = %v, want NOT_FOUND", err)
	}

	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "mods_dir = \n"},
		{"backend", "[cache]\nbackend = \"memcached\"\n"},
		{"redis-without-addr", "[cache]\nbackend = \"redis\"\n"},
		{"profile", "profile = \"../up\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(root, tt.name+".toml")
			writeFile(t, path, tt.content)
			if _, err := Load(path); err == nil {
				t.Errorf("Load(%s) should fail", tt.name)
			}
		})
	}
}

func TestXDGDirsDefaultToHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		got, want string
	}{
		{ConfigDir(), filepath.Join(home, ".config", AppName)},
		{CacheDir(), filepath.Join(home, ".cache", AppName)},
		{DataDir(), filepath.Join(home, ".local", "share", AppName)},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("dir = %q, want %q", tt.got, tt.want)
		}
	}
}
