package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultConfig()
	if cfg.Vision != want.Vision || cfg.Capture != want.Capture {
		t.Errorf("got %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadFromOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
vision:
  model: google/gemini-2.5-flash
  timeout_seconds: 10
capture:
  fast_max_dimension: 800
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Vision.Model != "google/gemini-2.5-flash" {
		t.Errorf("model = %q", cfg.Vision.Model)
	}
	if cfg.VisionTimeout() != 10*time.Second {
		t.Errorf("timeout = %v, want 10s", cfg.VisionTimeout())
	}
	if cfg.Capture.FastMaxDimension != 800 {
		t.Errorf("fast_max_dimension = %d", cfg.Capture.FastMaxDimension)
	}
	// Unset fields keep their defaults.
	if cfg.Vision.BaseURL != DefaultConfig().Vision.BaseURL {
		t.Errorf("base_url = %q, want default", cfg.Vision.BaseURL)
	}
	if cfg.Vision.MaxTokens != DefaultConfig().Vision.MaxTokens {
		t.Errorf("max_tokens = %d, want default", cfg.Vision.MaxTokens)
	}
}

func TestLoadFromRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("vision: [not a mapping"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("malformed YAML loaded without error")
	}
}

func TestAPIKeyFromEnvironment(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "sk-test-123")
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIKey != "sk-test-123" {
		t.Errorf("APIKey = %q, want value from environment", cfg.APIKey)
	}
}

func TestAPIKeyNeverReadFromConfigFile(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("apikey: sk-from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIKey == "sk-from-file" {
		t.Error("API key was read from the config file")
	}
}

func TestMissingAPIKeyIsNotAnError(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("capture-only configuration should load: %v", err)
	}
	if cfg.APIKey != "" {
		t.Errorf("APIKey = %q, want empty", cfg.APIKey)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(c *Config) {}, ""},
		{"empty base url", func(c *Config) { c.Vision.BaseURL = "" }, "base_url"},
		{"empty model", func(c *Config) { c.Vision.Model = "" }, "model"},
		{"zero timeout", func(c *Config) { c.Vision.TimeoutSeconds = 0 }, "timeout_seconds"},
		{"negative timeout", func(c *Config) { c.Vision.TimeoutSeconds = -5 }, "timeout_seconds"},
		{"zero max tokens", func(c *Config) { c.Vision.MaxTokens = 0 }, "max_tokens"},
		{"tiny fast dimension", func(c *Config) { c.Capture.FastMaxDimension = 32 }, "fast_max_dimension"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}
