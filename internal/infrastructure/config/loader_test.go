package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	defaults, err := DefaultConfig()
	if err != nil {
		t.Fatalf("DefaultConfig error: %v", err)
	}
	if diff := cmp.Diff(defaults, cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("Load must not create the config file")
	}
	if cfg.Audit.Enabled {
		t.Fatal("audit should be disabled by default")
	}
	if len(cfg.Rules.TokenPrefixes) == 0 || cfg.Rules.VersionChannels[0] != "latest" {
		t.Fatalf("unexpected default rules %+v", cfg.Rules)
	}
}

func TestLoadHydratesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "audit:\n  enabled: true\nrules:\n  version_channels: [stable]\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !cfg.Audit.Enabled || cfg.Audit.Path == "" {
		t.Fatalf("audit settings not hydrated: %+v", cfg.Audit)
	}
	if diff := cmp.Diff([]string{"stable"}, cfg.Rules.VersionChannels); diff != "" {
		t.Fatalf("explicit channels must be kept (-want +got):\n%s", diff)
	}
	if len(cfg.Rules.ShellKeywords) == 0 || cfg.Logging.Level == "" {
		t.Fatalf("missing fields not hydrated: %+v", cfg)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("rules: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileLoader(path).Load(context.Background()); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestPathHonorsEnvOverride(t *testing.T) {
	custom := filepath.Join(t.TempDir(), "custom.yaml")
	t.Setenv(EnvConfigPath, custom)
	if got := NewFileLoader("").Path(); got != custom {
		t.Fatalf("Path()=%s want %s", got, custom)
	}
	explicit := filepath.Join(t.TempDir(), "explicit.yaml")
	if got := NewFileLoader(explicit).Path(); got != explicit {
		t.Fatalf("explicit path should win, got %s", got)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	loader := NewFileLoader(path)
	cfg, err := DefaultConfig()
	if err != nil {
		t.Fatal(err)
	}
	cfg.Catalog.ManifestsDir = "actions"
	cfg.Batch.Workers = 4
	if err := loader.Save(cfg); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if !loader.Exists() {
		t.Fatal("expected config file after Save")
	}
	loaded, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
