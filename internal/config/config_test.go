package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Player01osu/paper-engine/internal/index"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "debug: true\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug {
		t.Error("debug not parsed")
	}
	if cfg.Server.Host != "localhost" || cfg.Server.Port != 42069 {
		t.Errorf("server defaults: %+v", cfg.Server)
	}
	policy, err := cfg.Ingest.Policy()
	if err != nil {
		t.Fatal(err)
	}
	if policy != index.DupeFail {
		t.Errorf("default policy: got %q", policy)
	}
	if len(cfg.Watch.Extensions) == 0 {
		t.Error("extension defaults missing")
	}
}

func TestLoadExpandsRelativeSnapshotPath(t *testing.T) {
	path := writeConfig(t, "storage:\n  snapshot_path: ./cache/index.pec\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(filepath.Dir(path), "cache/index.pec")
	if cfg.Storage.SnapshotPath != want {
		t.Errorf("snapshot path: got %q, want %q", cfg.Storage.SnapshotPath, want)
	}
}

func TestLoadRejectsBadPolicy(t *testing.T) {
	path := writeConfig(t, "ingest:\n  default_dupe_policy: clobber\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown dupe policy")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestWatchRecursiveDefault(t *testing.T) {
	path := writeConfig(t, "watch:\n  directories: [\"/tmp/papers\"]\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Watch.RecursiveOrDefault() {
		t.Error("recursive should default to true when directories are set")
	}
}
