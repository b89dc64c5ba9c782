package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DefaultsOnly(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")

	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://api.deepseek.com", s.LLM.BaseURL)
	assert.Equal(t, "deepseek-chat", s.LLM.Model)
	assert.Equal(t, 2*time.Minute, s.LLM.Timeout.Std())
	assert.Equal(t, BackendFile, s.Checkpoint.Backend)
	assert.Equal(t, "checkpoints", s.Checkpoint.Dir)
	assert.Equal(t, "info", s.Log.Level)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")
	path := writeConfig(t, "config.yaml", `
llm:
  model: deepseek-reasoner
  timeout: 45s
checkpoint:
  backend: sqlite
  path: /var/lib/chatgraph/threads.db
log:
  level: debug
  format: json
`)

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "deepseek-reasoner", s.LLM.Model)
	assert.Equal(t, 45*time.Second, s.LLM.Timeout.Std())
	assert.Equal(t, BackendSQLite, s.Checkpoint.Backend)
	assert.Equal(t, "/var/lib/chatgraph/threads.db", s.Checkpoint.Path)
	assert.Equal(t, "debug", s.Log.Level)
	assert.Equal(t, "json", s.Log.Format)

	// Untouched sections keep their defaults.
	assert.Equal(t, "https://api.deepseek.com", s.LLM.BaseURL)
}

func TestLoad_JSONFile(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")
	path := writeConfig(t, "config.json",
		`{"github": {"timeout": 10, "base_url": "https://ghe.example.com/api/v3"}}`)

	s, err := Load(path)
	require.NoError(t, err)

	// Numeric durations are seconds.
	assert.Equal(t, 10*time.Second, s.GitHub.Timeout.Std())
	assert.Equal(t, "https://ghe.example.com/api/v3", s.GitHub.BaseURL)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "sk-from-env")
	t.Setenv("GITHUB_TOKEN", "ghp-from-env")
	t.Setenv("CHATGRAPH_CHECKPOINT_BACKEND", BackendMemory)
	path := writeConfig(t, "config.yaml", `
llm:
  api_key: sk-from-file
checkpoint:
  backend: file
`)

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sk-from-env", s.LLM.APIKey)
	assert.Equal(t, "ghp-from-env", s.GitHub.Token)
	assert.Equal(t, BackendMemory, s.Checkpoint.Backend)
}

func TestLoad_MissingAPIKeyFails(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "")

	_, err := Load("")
	require.ErrorContains(t, err, "api key is required")
}

func TestLoad_UnknownBackendFails(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")
	t.Setenv("CHATGRAPH_CHECKPOINT_BACKEND", "redis")

	_, err := Load("")
	require.ErrorContains(t, err, `unknown checkpoint backend "redis"`)
}

func TestLoad_BadDurationFails(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")
	path := writeConfig(t, "config.yaml", `
llm:
  timeout: soon
`)

	_, err := Load(path)
	require.ErrorContains(t, err, "parse duration")
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := writeConfig(t, "config.toml", "x = 1")

	_, err := Load(path)
	require.ErrorContains(t, err, "unsupported config file extension")
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	s := Settings{
		Checkpoint: CheckpointSettings{Backend: "redis"},
		Log:        LogSettings{Level: "loud", Format: "xml"},
		LLM:        LLMSettings{MaxRetries: -1},
	}

	err := s.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "api key")
	assert.ErrorContains(t, err, "max_retries")
	assert.ErrorContains(t, err, "checkpoint backend")
	assert.ErrorContains(t, err, "log level")
	assert.ErrorContains(t, err, "log format")
}
