package config

import (
	"os"
	"path/filepath"
	"testing"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"

	"fancyfolders/internal/generator"
)

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	yaml := `assets_dir: /opt/fancyfolders/assets
font_dirs:
  - /opt/fonts
workers: 3
tuning:
  inner_shadow_blur: 5
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AssetsDir != "/opt/fancyfolders/assets" || cfg.Workers != 3 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if len(cfg.FontDirs) != 1 || cfg.FontDirs[0] != "/opt/fonts" {
		t.Fatalf("unexpected font dirs: %v", cfg.FontDirs)
	}
	if cfg.Tuning.InnerShadowBlur != 5 {
		t.Fatalf("tuning override lost: %+v", cfg.Tuning)
	}
	if cfg.Tuning.OuterHighlightBlur != generator.DefaultOuterHighlightBlur || cfg.Tuning.LUTSize != 4 {
		t.Fatalf("untouched tuning should keep defaults: %+v", cfg.Tuning)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected default log level, got %q", cfg.LogLevel)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("workers: 3\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("FANCYFOLDERS_WORKERS", "7")
	t.Setenv("FANCYFOLDERS_TUNING_LUT_SIZE", "8")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Workers != 7 || cfg.Tuning.LUTSize != 8 {
		t.Fatalf("environment should win: workers=%d lut=%d", cfg.Workers, cfg.Tuning.LUTSize)
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	homedir.DisableCache = true
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("missing default file should not fail: %v", err)
	}
	if cfg.Tuning != generator.DefaultTuning() {
		t.Fatalf("expected default tuning, got %+v", cfg.Tuning)
	}
	if cfg.AssetsDir != "assets" {
		t.Fatalf("unexpected assets dir %q", cfg.AssetsDir)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestSetLogLevel(t *testing.T) {
	if err := SetLogLevel("debug"); err != nil || Log.GetLevel() != logrus.DebugLevel {
		t.Fatalf("debug level not applied: %v", err)
	}
	if err := SetLogLevel("chatty"); err == nil {
		t.Fatal("expected an error for an unknown level")
	}
	_ = SetLogLevel("info")
}
