package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func TestInitConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordlook", "config.toml")

	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to be created: %v", err)
	}
	if cfg.CLI.DefaultLimit != 10 || cfg.CLI.MaxQueryLen != 0 || cfg.Dict.CachePath != "zasospika.json" || !cfg.Dict.Persist {
		t.Errorf("unexpected defaults: %+v", cfg)
	}

	reloaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if *reloaded != *DefaultConfig() {
		t.Errorf("saved defaults did not round trip: %+v", reloaded)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[dict]
cache_path = "/tmp/dict.msgpack"
persist = false

[cli]
default_limit = 5
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Dict.CachePath != "/tmp/dict.msgpack" || cfg.Dict.Persist {
		t.Errorf("dict section not applied: %+v", cfg.Dict)
	}
	if cfg.CLI.DefaultLimit != 5 || cfg.CLI.ResultOffset != 1 {
		t.Errorf("cli section not merged with defaults: %+v", cfg.CLI)
	}
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[source]
sheet_id = "other-sheet"
timeout_seconds = "slow"

[cli]
default_limit = 3
max_query_len = 12
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Source.SheetID != "other-sheet" {
		t.Errorf("expected sheet id to survive partial parse, got %q", cfg.Source.SheetID)
	}
	if cfg.Source.TimeoutSeconds != 30 {
		t.Errorf("expected default timeout for bad value, got %d", cfg.Source.TimeoutSeconds)
	}
	if cfg.CLI.DefaultLimit != 3 || cfg.CLI.MaxQueryLen != 12 {
		t.Errorf("expected limit 3 and max query len 12, got %+v", cfg.CLI)
	}
}

func TestLoadConfigGarbageFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[[[not toml"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvSheetID, "env-sheet")
	t.Setenv(EnvToken, "env-token")

	cfg := DefaultConfig()
	ApplyEnv(cfg)

	if cfg.Source.SheetID != "env-sheet" || cfg.Source.Token != "env-token" {
		t.Errorf("env not applied: %+v", cfg.Source)
	}
	if cfg.Source.GID != "0" {
		t.Errorf("unset env must keep config value, got %q", cfg.Source.GID)
	}
}

func TestApplyEnvReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(EnvURL, "")
	os.Unsetenv(EnvURL)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvURL+"=https://example.com/sheet.csv\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	ApplyEnv(cfg)

	if cfg.Source.URL != "https://example.com/sheet.csv" {
		t.Errorf("expected URL from .env, got %q", cfg.Source.URL)
	}
}
