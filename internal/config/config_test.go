package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultModel, cfg.LLM.Model)
	assert.Equal(t, DefaultStorageDir, cfg.Storage.Dir)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.yaml")
	content := `
llm:
  model: gemini/gemini-2.0-flash
  timeout: 90s
storage:
  dir: /tmp/tracker-data
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gemini/gemini-2.0-flash", cfg.LLM.Model)
	assert.Equal(t, "90s", cfg.LLM.Timeout)
	assert.Equal(t, "/tmp/tracker-data", cfg.Storage.Dir)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm:\n  model: openai/gpt-4o\nstorage:\n  dir: file-dir\n"), 0o644))

	t.Setenv("LLM_MODEL", "gemini/gemini-2.0-flash")
	t.Setenv("ACTION_ITEM_DIR", "env-dir")
	t.Setenv("LLM_BASE_URL", "http://localhost:8080/v1")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gemini/gemini-2.0-flash", cfg.LLM.Model)
	assert.Equal(t, "env-dir", cfg.Storage.Dir)
	assert.Equal(t, "http://localhost:8080/v1", cfg.LLM.BaseURL)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm: [not: a mapping"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, cfg.LLM.Model)
}
