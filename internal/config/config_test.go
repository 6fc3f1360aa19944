package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL == "" || cfg.Model == "" {
		t.Error("defaults must fill base URL and model")
	}
	if cfg.APIKey != "" {
		t.Error("no secret may have a built-in default")
	}
	if cfg.Renderer != "two-stage" {
		t.Errorf("default renderer = %q", cfg.Renderer)
	}
	if cfg.ComposeTimeout() != 60*time.Second {
		t.Errorf("compose timeout = %v", cfg.ComposeTimeout())
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "debrief.yaml")
	body := "model: test-model\ntemperature: 0.9\nrenderer: legacy\ncompose_timeout_secs: 30\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model != "test-model" || cfg.Temperature != 0.9 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Renderer != "legacy" {
		t.Errorf("renderer = %q", cfg.Renderer)
	}
	if cfg.ComposeTimeout() != 30*time.Second {
		t.Errorf("compose timeout = %v", cfg.ComposeTimeout())
	}
	// Untouched fields keep their defaults.
	if cfg.BaseURL != Default().BaseURL {
		t.Errorf("base URL should stay default, got %q", cfg.BaseURL)
	}
}

func TestLoad_JSONFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "debrief.json")
	if err := os.WriteFile(path, []byte(`{"model":"json-model"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model != "json-model" {
		t.Errorf("model = %q", cfg.Model)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "debrief.yaml")
	if err := os.WriteFile(path, []byte("model: from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DEBRIEF_MODEL", "from-env")
	t.Setenv("DEBRIEF_API_KEY", "sk-env")
	t.Setenv("DEBRIEF_JSON_MODE", "false")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model != "from-env" {
		t.Errorf("env should beat file: %q", cfg.Model)
	}
	if cfg.APIKey != "sk-env" {
		t.Errorf("api key = %q", cfg.APIKey)
	}
	if cfg.JSONMode {
		t.Error("DEBRIEF_JSON_MODE=false not applied")
	}
}

func TestLoad_RejectsUnknownRenderer(t *testing.T) {
	t.Setenv("DEBRIEF_RENDERER", "three-stage")
	if _, err := Load(""); err == nil {
		t.Error("unknown renderer should fail")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing explicit config file should fail")
	}
}
