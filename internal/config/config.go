// Package config loads the screenlens configuration: a YAML file for
// tunables plus environment (optionally .env-assisted) for the vision API
// credential. The credential never appears in config files, logs, or tool
// responses.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const apiKeyEnv = "OPENROUTER_API_KEY"

// Vision configures the description bridge.
type Vision struct {
	// BaseURL of the OpenRouter-compatible chat completions endpoint.
	BaseURL string `yaml:"base_url"`
	// Model is the vision-capable model identifier.
	Model string `yaml:"model"`
	// TimeoutSeconds bounds each describe call. On timeout the in-flight
	// request is abandoned, never retried.
	TimeoutSeconds int `yaml:"timeout_seconds"`
	// MaxTokens caps the length of the returned description.
	MaxTokens int `yaml:"max_tokens"`
}

// Capture configures the capture engine defaults.
type Capture struct {
	// FastMaxDimension bounds the longest image edge in fast mode.
	FastMaxDimension int `yaml:"fast_max_dimension"`
}

// Config is the effective screenlens configuration.
type Config struct {
	Vision  Vision  `yaml:"vision"`
	Capture Capture `yaml:"capture"`

	// APIKey comes from the environment only.
	APIKey string `yaml:"-"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Vision: Vision{
			BaseURL:        "https://openrouter.ai/api/v1/chat/completions",
			Model:          "anthropic/claude-sonnet-4",
			TimeoutSeconds: 45,
			MaxTokens:      1024,
		},
		Capture: Capture{
			FastMaxDimension: 1280,
		},
	}
}

// DefaultConfigPath returns the standard config file location.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "screenlens", "config.yaml"), nil
}

// Load reads the config file from the standard location (missing file means
// defaults), merges the API key from the environment, and validates.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads a specific config file. A missing file is not an error.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Defaults apply.
	default:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg.APIKey = loadAPIKey()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadAPIKey reads the credential from the environment, consulting a .env
// file in the working directory or next to the executable when the variable
// is not already set.
func loadAPIKey() string {
	if key := os.Getenv(apiKeyEnv); key != "" {
		return key
	}

	envPaths := []string{".env"}
	if execPath, err := os.Executable(); err == nil {
		envPaths = append(envPaths, filepath.Join(filepath.Dir(execPath), ".env"))
	}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}
	return os.Getenv(apiKeyEnv)
}

// Validate checks tunable ranges. The API key is deliberately not required:
// capture-only operation works without one.
func (c *Config) Validate() error {
	if c.Vision.BaseURL == "" {
		return fmt.Errorf("vision.base_url must not be empty")
	}
	if c.Vision.Model == "" {
		return fmt.Errorf("vision.model must not be empty")
	}
	if c.Vision.TimeoutSeconds <= 0 {
		return fmt.Errorf("vision.timeout_seconds must be positive, got %d", c.Vision.TimeoutSeconds)
	}
	if c.Vision.MaxTokens <= 0 {
		return fmt.Errorf("vision.max_tokens must be positive, got %d", c.Vision.MaxTokens)
	}
	if c.Capture.FastMaxDimension < 64 {
		return fmt.Errorf("capture.fast_max_dimension must be at least 64, got %d", c.Capture.FastMaxDimension)
	}
	return nil
}

// VisionTimeout returns the describe timeout as a duration.
func (c *Config) VisionTimeout() time.Duration {
	return time.Duration(c.Vision.TimeoutSeconds) * time.Second
}
