package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Store.Backend != "memory" {
		t.Errorf("backend = %q", cfg.Store.Backend)
	}
	if cfg.Render.Format != "svg" {
		t.Errorf("format = %q", cfg.Render.Format)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	content := `
[defaults]
cidr = "10.0.0.0/8"
azure = true

[server]
addr = ":9090"

[store]
backend = "file"
dir = "/tmp/plans"

[render]
format = "png"
detailed = true
`
	appDir := filepath.Join(dir, appName)
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(appDir, configFile), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Defaults.CIDR != "10.0.0.0/8" || !cfg.Defaults.Azure {
		t.Errorf("defaults = %+v", cfg.Defaults)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Store.Backend != "file" || cfg.Store.Dir != "/tmp/plans" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Render.Format != "png" || !cfg.Render.Detailed {
		t.Errorf("render = %+v", cfg.Render)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	appDir := filepath.Join(dir, appName)
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(appDir, configFile), []byte("not [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := loadConfig(); err == nil {
		t.Fatal("invalid config accepted")
	}
}

func TestNewStoreBackends(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	ctx := context.Background()

	mem, err := newStore(ctx, StoreConfig{Backend: "memory"})
	if err != nil {
		t.Fatalf("memory: %v", err)
	}
	mem.Close()

	file, err := newStore(ctx, StoreConfig{Backend: "file", Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	file.Close()

	if _, err := newStore(ctx, StoreConfig{Backend: "bogus"}); err == nil {
		t.Fatal("unknown backend accepted")
	}
}
