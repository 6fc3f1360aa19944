// Package config carries the externally overridable settings for the
// brief pipeline: generation-service endpoint and model, sampling,
// attribution headers, timeouts and the renderer variant. Defaults are
// built in; a YAML/JSON file and DEBRIEF_* environment variables
// override them in that order. No secret has a hardcoded default.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// Config is the full pipeline configuration.
type Config struct {
	BaseURL     string  `json:"base_url" yaml:"base_url"`
	APIKey      string  `json:"api_key" yaml:"api_key"`
	Model       string  `json:"model" yaml:"model"`
	Temperature float64 `json:"temperature" yaml:"temperature"`
	JSONMode    bool    `json:"json_mode" yaml:"json_mode"`

	// Attribution headers some gateways (e.g. OpenRouter) use for
	// ranking and dashboards.
	Referer string `json:"referer" yaml:"referer"`
	Title   string `json:"title" yaml:"title"`

	// Renderer selects the document strategy: "two-stage" (default)
	// or "legacy" (deprecated single-stage generation).
	Renderer string `json:"renderer" yaml:"renderer"`

	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// Timeouts are plain seconds so they read naturally in YAML/JSON.
	RequestTimeoutSecs int `json:"request_timeout_secs" yaml:"request_timeout_secs"`
	SynthTimeoutSecs   int `json:"synth_timeout_secs" yaml:"synth_timeout_secs"`
	ComposeTimeoutSecs int `json:"compose_timeout_secs" yaml:"compose_timeout_secs"`
}

// RequestTimeout bounds one generation HTTP request.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSecs) * time.Second
}

// SynthTimeout bounds the synthesis stage including retries.
func (c Config) SynthTimeout() time.Duration {
	return time.Duration(c.SynthTimeoutSecs) * time.Second
}

// ComposeTimeout bounds one browser composition.
func (c Config) ComposeTimeout() time.Duration {
	return time.Duration(c.ComposeTimeoutSecs) * time.Second
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:            "https://openrouter.ai/api/v1",
		Model:              "anthropic/claude-sonnet-4",
		Temperature:        0.3,
		JSONMode:           true,
		Renderer:           "two-stage",
		MaxRetries:         2,
		RequestTimeoutSecs: 120,
		SynthTimeoutSecs:   480,
		ComposeTimeoutSecs: 60,
	}
}

// Load builds the effective configuration: defaults, then the optional
// file at path (skipped when path is empty), then environment
// overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := unmarshal(data, filepath.Ext(path), &cfg); err != nil {
			return cfg, err
		}
	}

	applyEnv(&cfg)

	if cfg.Renderer != "two-stage" && cfg.Renderer != "legacy" {
		return cfg, fmt.Errorf("config: unknown renderer %q (want two-stage or legacy)", cfg.Renderer)
	}
	return cfg, nil
}

func unmarshal(data []byte, ext string, cfg *Config) error {
	ext = strings.ToLower(ext)
	if ext == ".json" || (ext == "" && strings.HasPrefix(strings.TrimSpace(string(data)), "{")) {
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse config json: %w", err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config yaml: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	setStr := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setStr(&cfg.BaseURL, "DEBRIEF_BASE_URL")
	setStr(&cfg.APIKey, "DEBRIEF_API_KEY")
	setStr(&cfg.Model, "DEBRIEF_MODEL")
	setStr(&cfg.Referer, "DEBRIEF_REFERER")
	setStr(&cfg.Title, "DEBRIEF_TITLE")
	setStr(&cfg.Renderer, "DEBRIEF_RENDERER")

	if v := os.Getenv("DEBRIEF_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Temperature = f
		}
	}
	if v := os.Getenv("DEBRIEF_JSON_MODE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.JSONMode = b
		}
	}
	if v := os.Getenv("DEBRIEF_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
}
