// Package config loads chatgraph settings from YAML or JSON files with
// environment-variable overrides for secrets and deployment knobs.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Checkpoint backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// LLMSettings configures the completion client.
type LLMSettings struct {
	BaseURL     string        `yaml:"base_url" json:"base_url"`
	APIKey      string        `yaml:"api_key" json:"api_key"`
	Model       string        `yaml:"model" json:"model"`
	Temperature float64  `yaml:"temperature" json:"temperature"`
	Timeout     Duration `yaml:"timeout" json:"timeout"`
	MaxRetries  int      `yaml:"max_retries" json:"max_retries"`
}

// GitHubSettings configures the GitHub API client.
type GitHubSettings struct {
	Token   string   `yaml:"token" json:"token"`
	BaseURL string   `yaml:"base_url" json:"base_url"`
	Timeout Duration `yaml:"timeout" json:"timeout"`
}

// CheckpointSettings selects and configures the checkpoint backend.
type CheckpointSettings struct {
	// Backend is one of "file", "sqlite", or "memory".
	Backend string `yaml:"backend" json:"backend"`
	// Dir is the checkpoint directory for the file backend.
	Dir string `yaml:"dir" json:"dir"`
	// Path is the database path for the sqlite backend.
	Path string `yaml:"path" json:"path"`
}

// LogSettings configures logging.
type LogSettings struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `yaml:"level" json:"level"`
	// Format is "text" or "json".
	Format string `yaml:"format" json:"format"`
}

// Settings is the full application configuration.
type Settings struct {
	LLM        LLMSettings        `yaml:"llm" json:"llm"`
	GitHub     GitHubSettings     `yaml:"github" json:"github"`
	Checkpoint CheckpointSettings `yaml:"checkpoint" json:"checkpoint"`
	Log        LogSettings        `yaml:"log" json:"log"`
}

// Default returns settings with production defaults. Secrets are expected
// via environment variables.
func Default() Settings {
	return Settings{
		LLM: LLMSettings{
			BaseURL:     "https://api.deepseek.com",
			Model:       "deepseek-chat",
			Temperature: 0.7,
			Timeout:     Duration(2 * time.Minute),
			MaxRetries:  3,
		},
		GitHub: GitHubSettings{
			BaseURL: "https://api.github.com",
			Timeout: Duration(30 * time.Second),
		},
		Checkpoint: CheckpointSettings{
			Backend: BackendFile,
			Dir:     "checkpoints",
			Path:    "threads.db",
		},
		Log: LogSettings{
			Level:  "info",
			Format: "text",
		},
	}
}

// applyEnv overlays environment variables onto the settings.
func (s *Settings) applyEnv() {
	if v := os.Getenv("DEEPSEEK_API_KEY"); v != "" {
		s.LLM.APIKey = v
	}
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		s.GitHub.Token = v
	}
	if v := os.Getenv("CHATGRAPH_LLM_BASE_URL"); v != "" {
		s.LLM.BaseURL = v
	}
	if v := os.Getenv("CHATGRAPH_LLM_MODEL"); v != "" {
		s.LLM.Model = v
	}
	if v := os.Getenv("CHATGRAPH_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.LLM.MaxRetries = n
		}
	}
	if v := os.Getenv("CHATGRAPH_CHECKPOINT_BACKEND"); v != "" {
		s.Checkpoint.Backend = v
	}
	if v := os.Getenv("CHATGRAPH_CHECKPOINT_DIR"); v != "" {
		s.Checkpoint.Dir = v
	}
	if v := os.Getenv("CHATGRAPH_CHECKPOINT_PATH"); v != "" {
		s.Checkpoint.Path = v
	}
	if v := os.Getenv("CHATGRAPH_LOG_LEVEL"); v != "" {
		s.Log.Level = v
	}
	if v := os.Getenv("CHATGRAPH_LOG_FORMAT"); v != "" {
		s.Log.Format = v
	}
}

// Validate checks the settings for values that would fail at runtime.
func (s *Settings) Validate() error {
	var errs []error

	if s.LLM.APIKey == "" {
		errs = append(errs, errors.New("llm api key is required (set DEEPSEEK_API_KEY)"))
	}
	if s.LLM.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("llm max_retries must be >= 0, got %d", s.LLM.MaxRetries))
	}

	switch s.Checkpoint.Backend {
	case BackendFile:
		if s.Checkpoint.Dir == "" {
			errs = append(errs, errors.New("checkpoint dir is required for file backend"))
		}
	case BackendSQLite:
		if s.Checkpoint.Path == "" {
			errs = append(errs, errors.New("checkpoint path is required for sqlite backend"))
		}
	case BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown checkpoint backend %q", s.Checkpoint.Backend))
	}

	switch s.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", s.Log.Level))
	}
	switch s.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", s.Log.Format))
	}

	return errors.Join(errs...)
}
