package llm

import (
	"testing"

	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/LazyWizBrains/Stateful-Action-Tracker/internal/config"
)

func TestMain(m *testing.M) {
	// go.opencensus.io (pulled in by the genai SDK) starts a worker
	// goroutine in its package init that never exits.
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

func TestSplitModel(t *testing.T) {
	cases := []struct {
		in       string
		provider Provider
		model    string
	}{
		{"openai/gpt-4o-mini", ProviderOpenAI, "gpt-4o-mini"},
		{"gemini/gemini-2.0-flash", ProviderGemini, "gemini-2.0-flash"},
		{"OpenAI/gpt-4o", ProviderOpenAI, "gpt-4o"},
		{"gpt-4o-mini", ProviderOpenAI, "gpt-4o-mini"},
		{"anthropic/claude", Provider("anthropic"), "claude"},
	}
	for _, tc := range cases {
		provider, model := SplitModel(tc.in)
		if provider != tc.provider || model != tc.model {
			t.Errorf("SplitModel(%q) = (%q, %q), want (%q, %q)",
				tc.in, provider, model, tc.provider, tc.model)
		}
	}
}

func TestNewFromConfig_OpenAI(t *testing.T) {
	client, err := NewFromConfig(config.LLMConfig{Model: "openai/gpt-4o-mini", APIKey: "k"}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := client.(*OpenAIClient); !ok {
		t.Errorf("expected *OpenAIClient, got %T", client)
	}
}

func TestNewFromConfig_Gemini(t *testing.T) {
	client, err := NewFromConfig(config.LLMConfig{Model: "gemini/gemini-2.0-flash", APIKey: "k"}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := client.(*GeminiClient); !ok {
		t.Errorf("expected *GeminiClient, got %T", client)
	}
}

func TestNewFromConfig_KeyFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")

	client, err := NewFromConfig(config.LLMConfig{Model: "openai/gpt-4o-mini"}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.(*OpenAIClient).apiKey != "env-key" {
		t.Error("environment credential not picked up")
	}
}

func TestNewFromConfig_MissingKeyOnlyWarns(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := NewFromConfig(config.LLMConfig{Model: "openai/gpt-4o-mini"}, zap.NewNop()); err != nil {
		t.Errorf("a missing key must not fail construction: %v", err)
	}
}

func TestNewFromConfig_UnsupportedProvider(t *testing.T) {
	if _, err := NewFromConfig(config.LLMConfig{Model: "anthropic/claude"}, zap.NewNop()); err == nil {
		t.Error("expected an error for an unsupported provider")
	}
}

func TestNewFromConfig_BadTimeout(t *testing.T) {
	if _, err := NewFromConfig(config.LLMConfig{Model: "openai/gpt-4o-mini", Timeout: "soon"}, zap.NewNop()); err == nil {
		t.Error("expected an error for an unparsable timeout")
	}
}
