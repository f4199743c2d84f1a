// Package config holds the tracker's runtime configuration: an optional
// YAML file overridden by environment variables.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied when neither the config file nor the environment says
// otherwise.
const (
	DefaultModel      = "openai/gpt-4o-mini"
	DefaultStorageDir = "project_data"
	DefaultConfigFile = "tracker.yaml"
)

// Config is the full tracker configuration.
type Config struct {
	LLM     LLMConfig     `yaml:"llm"`
	Storage StorageConfig `yaml:"storage"`
}

// LLMConfig configures the model call.
type LLMConfig struct {
	// Model is "provider/model", e.g. "openai/gpt-4o-mini" or
	// "gemini/gemini-2.0-flash". A bare model name means OpenAI.
	Model string `yaml:"model"`
	// BaseURL overrides the provider endpoint (OpenAI-compatible servers).
	BaseURL string `yaml:"base_url"`
	// APIKey overrides the provider's environment credential.
	APIKey string `yaml:"api_key"`
	// Timeout is a Go duration string for the whole call, default 2m.
	Timeout string `yaml:"timeout"`
}

// StorageConfig configures on-disk persistence.
type StorageConfig struct {
	// Dir is the directory holding one JSON document per project.
	Dir string `yaml:"dir"`
}

// Load reads the YAML file at path (missing is fine, malformed is not) and
// applies environment overrides on top.
func Load(path string) (*Config, error) {
	cfg := &Config{
		LLM:     LLMConfig{Model: DefaultModel},
		Storage: StorageConfig{Dir: DefaultStorageDir},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if cfg.LLM.Model == "" {
		cfg.LLM.Model = DefaultModel
	}
	if cfg.Storage.Dir == "" {
		cfg.Storage.Dir = DefaultStorageDir
	}
	return cfg, nil
}

// applyEnvOverrides keeps the tool's environment contract: LLM_MODEL and
// ACTION_ITEM_DIR beat whatever the file says.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("ACTION_ITEM_DIR"); v != "" {
		cfg.Storage.Dir = v
	}
}
