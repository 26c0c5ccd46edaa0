package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rubiojr/sieve/pkg/profiles"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Locale != DefaultLocale || cfg.Listen != DefaultListen {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if !strings.HasSuffix(cfg.DataFile, filepath.Join("sieve", "data.json")) {
		t.Errorf("unexpected data file %q", cfg.DataFile)
	}
	if cfg.ProfileMode() != profiles.Static {
		t.Errorf("dynamic categories should be off by default")
	}
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
dynamic_categories = true

[labels]
chess = "国际象棋"
music = "Music"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Locale != DefaultLocale || cfg.Listen != DefaultListen || cfg.DataFile == "" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.ProfileMode() != profiles.Dynamic {
		t.Errorf("expected dynamic profile mode")
	}

	labels := cfg.CategoryLabels()
	if labels.Label("chess") != "国际象棋" || labels.Label("music") != "Music" {
		t.Errorf("label overrides not applied: %v", labels)
	}
	if labels.Label("food") != "美食" {
		t.Errorf("default labels lost: %q", labels.Label("food"))
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("locale = "), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected an error for invalid TOML")
	}
}

func TestSaveTemplateConfig(t *testing.T) {
	cfg := &Config{DataFile: "/srv/sieve/data.json.zst"}
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	if err := cfg.SaveTemplateConfig(path); err != nil {
		t.Fatalf("SaveTemplateConfig: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("loading template: %v", err)
	}
	if loaded.DataFile != "/srv/sieve/data.json.zst" {
		t.Errorf("data file placeholder not replaced: %q", loaded.DataFile)
	}
	if loaded.Listen != DefaultListen || loaded.Locale != "zh" {
		t.Errorf("unexpected template values: %+v", loaded)
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	cfg := &Config{
		DataFile: "/tmp/data.json",
		Locale:   "en",
		Listen:   ":9000",
		Labels:   map[string]string{"chess": "Chess"},
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := cfg.SaveConfig(path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Locale != "en" || loaded.Listen != ":9000" || loaded.Labels["chess"] != "Chess" {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestGetDefaultConfigPathHonoursXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path, err := GetDefaultConfigPath()
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, "sieve", "config.toml") {
		t.Errorf("unexpected config path %q", path)
	}
}
