package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/marmos91/indexfs/internal/bytesize"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: "debug"

disks:
  - name: main
  - name: small
    total_blocks: 8
    block_size: 8Ki
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("Expected level normalized to DEBUG, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Expected default format 'text', got %q", cfg.Logging.Format)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("Expected default shutdown_timeout 30s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.API.Port != 8080 {
		t.Errorf("Expected API port 8080, got %d", cfg.API.Port)
	}
	if len(cfg.Disks) != 2 {
		t.Fatalf("Expected 2 disks, got %d", len(cfg.Disks))
	}
	if cfg.Disks[0].TotalBlocks != 64 || cfg.Disks[0].BlockSize != 4096 {
		t.Errorf("Expected default geometry 64x4096, got %dx%d", cfg.Disks[0].TotalBlocks, cfg.Disks[0].BlockSize)
	}
	if cfg.Disks[1].TotalBlocks != 8 || cfg.Disks[1].BlockSize != 8*bytesize.KiB {
		t.Errorf("Expected 8x8Ki, got %dx%d", cfg.Disks[1].TotalBlocks, cfg.Disks[1].BlockSize)
	}
}

func TestLoad_NumericBlockSizeAndDurations(t *testing.T) {
	path := writeConfig(t, `
shutdown_timeout: 5s
api:
  read_timeout: 2s
disks:
  - name: main
    block_size: 1024
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("Expected 5s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.API.ReadTimeout != 2*time.Second {
		t.Errorf("Expected 2s read timeout, got %v", cfg.API.ReadTimeout)
	}
	if cfg.Disks[0].BlockSize != 1024 {
		t.Errorf("Expected block size 1024, got %d", cfg.Disks[0].BlockSize)
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("Expected no error when loading default config, got: %v", err)
	}
	if len(cfg.Disks) != 1 || cfg.Disks[0].Name != DefaultDiskName {
		t.Errorf("Expected a single %q disk, got %+v", DefaultDiskName, cfg.Disks)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("INDEXFS_LOGGING_LEVEL", "WARN")
	t.Setenv("INDEXFS_API_PORT", "9001")

	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Logging.Level != "WARN" {
		t.Errorf("Expected env level WARN, got %q", cfg.Logging.Level)
	}
	if cfg.API.Port != 9001 {
		t.Errorf("Expected env port 9001, got %d", cfg.API.Port)
	}
}

func TestLoad_InvalidBlockSize(t *testing.T) {
	path := writeConfig(t, `
disks:
  - name: main
    block_size: lots
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Expected error for unparseable block_size")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "logging: [unterminated\n")
	_, err := Load(path)
	if err == nil {
		t.Fatal("Expected error for malformed YAML")
	}
	if !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestMustLoad_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	_, err := MustLoad(missing)
	if err == nil {
		t.Fatal("Expected error for missing config file")
	}
	if !strings.Contains(err.Error(), "ifs config init --config") {
		t.Errorf("Expected init hint in error, got: %v", err)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := GetDefaultConfig()
	cfg.Disks = append(cfg.Disks, DiskConfig{Name: "big", TotalBlocks: 256, BlockSize: 16 * bytesize.KiB})

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read saved config: %v", err)
	}
	if !strings.Contains(string(data), "block_size: 16Ki") {
		t.Errorf("Expected human-readable block size in saved config:\n%s", data)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to reload saved config: %v", err)
	}
	if len(loaded.Disks) != 2 || loaded.Disks[1].BlockSize != 16*bytesize.KiB {
		t.Errorf("Round trip lost disks: %+v", loaded.Disks)
	}
}

func TestGetConfigDir_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	if got := GetConfigDir(); got != filepath.Join(dir, "indexfs") {
		t.Errorf("Expected XDG config dir, got %q", got)
	}
	if DefaultConfigExists() {
		t.Error("Expected no default config in fresh XDG dir")
	}
}
