package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "application.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":5001", cfg.Memory.Addr)
	assert.Equal(t, 10, cfg.Memory.DefaultMemoryLimit)
	assert.Equal(t, 20, cfg.Memory.DefaultSearchLimit)
	assert.Equal(t, "http://localhost:5002", cfg.Master.AnswerURL)
	assert.Equal(t, 30*time.Second, cfg.Master.HTTPTimeout)
}

func TestLoadConfigYAMLThenEnv(t *testing.T) {
	path := writeConfig(t, `
memory:
  addr: ":7001"
  database_path: "/tmp/other.db"
master:
  memory_url: "http://memory:7001"
  http_timeout: 5s
models:
  - name: "GPT-4o mini"
    model_id: "gpt-4o-mini"
    provider: "openai"
`)
	t.Setenv("MEMORY_ADDR", ":9001")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("LLM_MODEL", "gpt-4o-mini")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9001", cfg.Memory.Addr, "env overrides yaml")
	assert.Equal(t, "/tmp/other.db", cfg.Memory.DatabasePath)
	assert.Equal(t, "http://memory:7001", cfg.Master.MemoryURL)
	assert.Equal(t, 5*time.Second, cfg.Master.HTTPTimeout)
	assert.Equal(t, "sk-test", cfg.Answer.APIKey(ProviderOpenAI))
	assert.Empty(t, cfg.Answer.APIKey(ProviderAnthropic))

	model, ok := cfg.ModelConfig()
	require.True(t, ok)
	assert.Equal(t, ProviderOpenAI, model.Provider)
}

func TestLoadConfigRejectsUnknownProvider(t *testing.T) {
	path := writeConfig(t, `
models:
  - name: "mystery"
    model_id: "m-1"
    provider: "carrier-pigeon"
`)
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carrier-pigeon")
}

func TestLoadConfigRejectsBadYAML(t *testing.T) {
	path := writeConfig(t, "memory: [unterminated")
	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestPathFromEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	assert.Equal(t, DefaultPath, PathFromEnv())

	t.Setenv("CONFIG_PATH", "/etc/holomentor.yaml")
	assert.Equal(t, "/etc/holomentor.yaml", PathFromEnv())
}
