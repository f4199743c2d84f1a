package llm

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/LazyWizBrains/Stateful-Action-Tracker/internal/config"
)

// Provider identifies an LLM backend.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// envKeys maps each provider to its credential environment variable.
var envKeys = map[Provider]string{
	ProviderOpenAI: "OPENAI_API_KEY",
	ProviderGemini: "GEMINI_API_KEY",
}

// SplitModel splits a "provider/model" string. A bare model name defaults
// to the OpenAI provider.
func SplitModel(model string) (Provider, string) {
	if provider, name, ok := strings.Cut(model, "/"); ok {
		return Provider(strings.ToLower(provider)), name
	}
	return ProviderOpenAI, model
}

// NewFromConfig builds the client for the configured model. A missing API
// key only warns here: the call itself will fail and be handled by the
// caller as "no response for this run".
func NewFromConfig(cfg config.LLMConfig, log *zap.Logger) (Client, error) {
	provider, model := SplitModel(cfg.Model)

	timeout := 2 * time.Minute
	if cfg.Timeout != "" {
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid llm timeout %q: %w", cfg.Timeout, err)
		}
		timeout = d
	}

	envKey, ok := envKeys[provider]
	if !ok {
		return nil, fmt.Errorf("unsupported LLM provider %q", provider)
	}

	key := cfg.APIKey
	if key == "" {
		key = os.Getenv(envKey)
	}
	if key == "" {
		log.Warn("no API key configured; the model call will fail",
			zap.String("provider", string(provider)),
			zap.String("env", envKey),
			zap.String("model", model))
	}

	if provider == ProviderGemini {
		return NewGeminiClient(key, model), nil
	}
	return NewOpenAIClient(OpenAIConfig{
		APIKey:  key,
		BaseURL: cfg.BaseURL,
		Model:   model,
		Timeout: timeout,
	}), nil
}
