package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newServerClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	c := NewOpenAIClient(OpenAIConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Model:   "gpt-4o-mini",
	})
	t.Cleanup(func() {
		c.httpClient.CloseIdleConnections()
		srv.Close()
	})
	return c
}

func completionBody(content string) string {
	return `{"choices": [{"message": {"role": "assistant", "content": ` + mustJSON(content) + `}}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestCompleteWithSystem_Success(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest

	c := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionBody("  [{\"task\": \"Ship it\"}]  ")))
	})

	reply, err := c.CompleteWithSystem(context.Background(), "You track action items.", "Notes here")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != `[{"task": "Ship it"}]` {
		t.Errorf("reply not trimmed: %q", reply)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("unexpected auth header: %q", gotAuth)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Role != "user" {
		t.Errorf("unexpected messages: %+v", gotReq.Messages)
	}
	if gotReq.Model != "gpt-4o-mini" {
		t.Errorf("unexpected model: %q", gotReq.Model)
	}
}

func TestCompleteWithSystem_HTTPError(t *testing.T) {
	c := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "quota exceeded"}}`, http.StatusTooManyRequests)
	})

	_, err := c.CompleteWithSystem(context.Background(), "sys", "user")
	if err == nil || !strings.Contains(err.Error(), "status 429") {
		t.Errorf("expected status error, got %v", err)
	}
}

func TestCompleteWithSystem_APIErrorBody(t *testing.T) {
	c := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": {"message": "model not found", "type": "invalid_request_error"}}`))
	})

	_, err := c.CompleteWithSystem(context.Background(), "sys", "user")
	if err == nil || !strings.Contains(err.Error(), "model not found") {
		t.Errorf("expected API error, got %v", err)
	}
}

func TestCompleteWithSystem_EmptyChoices(t *testing.T) {
	c := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	})

	_, err := c.CompleteWithSystem(context.Background(), "sys", "user")
	if err == nil || !strings.Contains(err.Error(), "no completion") {
		t.Errorf("expected empty-choice error, got %v", err)
	}
}

func TestCompleteWithSystem_MissingKey(t *testing.T) {
	c := NewOpenAIClient(OpenAIConfig{Model: "gpt-4o-mini"})

	_, err := c.CompleteWithSystem(context.Background(), "sys", "user")
	if err == nil || !strings.Contains(err.Error(), "API key") {
		t.Errorf("expected key error, got %v", err)
	}
}

func TestNewOpenAIClient_Defaults(t *testing.T) {
	c := NewOpenAIClient(OpenAIConfig{APIKey: "k", Model: "m"})
	if c.baseURL != defaultOpenAIBaseURL {
		t.Errorf("unexpected base URL: %q", c.baseURL)
	}

	c = NewOpenAIClient(OpenAIConfig{APIKey: "k", Model: "m", BaseURL: "http://localhost:1234/v1/"})
	if c.baseURL != "http://localhost:1234/v1" {
		t.Errorf("trailing slash not trimmed: %q", c.baseURL)
	}
}
