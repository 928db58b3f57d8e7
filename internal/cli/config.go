package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/subnetplan/pkg/store"
)

// configFile is the name of the optional config file inside the config
// directory. All fields are optional; missing values fall back to defaults.
const configFile = "config.toml"

// Config holds CLI and server settings loaded from config.toml.
type Config struct {
	Defaults DefaultsConfig `toml:"defaults"`
	Server   ServerConfig   `toml:"server"`
	Store    StoreConfig    `toml:"store"`
	Render   RenderConfig   `toml:"render"`
}

// DefaultsConfig seeds new partitions.
type DefaultsConfig struct {
	CIDR  string `toml:"cidr"`  // base block used by 'new' without arguments
	Azure bool   `toml:"azure"` // start new plans with the Azure policy
}

// ServerConfig configures the HTTP API started by 'subnetplan serve'.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// StoreConfig selects the plan storage backend for the server.
type StoreConfig struct {
	Backend  string `toml:"backend"` // memory (default), file, redis, mongo
	Dir      string `toml:"dir"`     // file backend: storage directory
	Redis    string `toml:"redis"`   // redis backend: host:port
	MongoURI string `toml:"mongo_uri"`
}

// RenderConfig sets visualization defaults.
type RenderConfig struct {
	Format   string `toml:"format"` // svg (default), png, dot
	Detailed bool   `toml:"detailed"`
}

// defaultConfig returns the configuration used when no config file exists.
func defaultConfig() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Store:  StoreConfig{Backend: "memory"},
		Render: RenderConfig{Format: "svg"},
	}
}

// loadConfig reads config.toml from the config directory, applying defaults
// for anything not set. A missing file is not an error.
func loadConfig() (Config, error) {
	cfg := defaultConfig()

	dir, err := configDir()
	if err != nil {
		return cfg, nil
	}
	path := filepath.Join(dir, configFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// newStore creates the plan storage backend selected by the config.
func newStore(ctx context.Context, cfg StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return store.NewMemory(), nil
	case "file":
		dir := cfg.Dir
		if dir == "" {
			base, err := configDir()
			if err != nil {
				return nil, err
			}
			dir = filepath.Join(base, "plans")
		}
		return store.NewFile(dir)
	case "redis":
		return store.NewRedis(ctx, store.RedisConfig{Addr: cfg.Redis})
	case "mongo":
		return store.NewMongo(ctx, store.MongoConfig{URI: cfg.MongoURI})
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
