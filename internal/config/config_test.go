package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/valuate/internal/model"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range []string{"VALUATE_THEME", "VALUATE_SEED", "VALUATE_SAMPLES", "VALUATE_EXPORT_DIR", "VALUATE_ADDR"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return dir
}

func TestPathUsesXDG(t *testing.T) {
	dir := isolate(t)
	want := filepath.Join(dir, "valuate", "config.toml")
	if got := Path(); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Defaults != model.DefaultInputs() {
		t.Errorf("Defaults = %+v", cfg.Defaults)
	}
	if Exists() {
		t.Error("Exists() = true before Save")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	isolate(t)

	cfg := DefaultConfig()
	cfg.Defaults.AnnualRevenue = 12.5
	cfg.Defaults.IndustryMultiple = 7
	cfg.Simulation.Seed = 42
	cfg.Appearance.Theme = "tokyo-night"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	isolate(t)
	if err := Save(DefaultConfig()); err != nil {
		t.Fatal(err)
	}

	t.Setenv("VALUATE_THEME", "terminal")
	t.Setenv("VALUATE_SEED", "7")
	t.Setenv("VALUATE_SAMPLES", "250")
	t.Setenv("VALUATE_ADDR", ":9000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Appearance.Theme != "terminal" {
		t.Errorf("Theme = %q", cfg.Appearance.Theme)
	}
	if cfg.Simulation.Seed != 7 || cfg.Simulation.Samples != 250 {
		t.Errorf("Simulation = %+v", cfg.Simulation)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
}

func TestLoadRejectsInvalidDefaults(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "valuate", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[defaults]\ngrowth_rate_percent = 500.0\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Load()
	if !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestLoadDotEnvMissingIsFine(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("LoadDotEnv(missing) = %v", err)
	}
}

func TestLoadDotEnvSetsVariables(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("VALUATE_EXPORT_DIR=/tmp/reports\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("VALUATE_EXPORT_DIR") })

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Export.Dir != "/tmp/reports" {
		t.Errorf("Export.Dir = %q", cfg.Export.Dir)
	}
}

func TestValidateRejectsUnknownTheme(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Appearance.Theme = "solarized"
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate accepted unknown theme")
	}
}
