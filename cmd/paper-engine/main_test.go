package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"single word", []string{"transformer"}, "transformer"},
		{"multiple words", []string{"attention", "models"}, "attention models"},
		{"quoted phrase", []string{"attention models"}, "attention models"},
		{"empty", []string{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildQuery(tt.args); got != tt.want {
				t.Errorf("buildQuery(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestLoadConfigPrefersCwdFallback(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("debug: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(oldWD) }()

	cfg, loadedPath, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug {
		t.Error("fallback config not loaded")
	}
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if loadedPath != filepath.Join(cwd, "config.yaml") {
		t.Errorf("loaded path: %q", loadedPath)
	}
}

func TestLoadConfigExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, loadedPath, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port: got %d", cfg.Server.Port)
	}
	if loadedPath != path {
		t.Errorf("loaded path: got %q, want %q", loadedPath, path)
	}
}
