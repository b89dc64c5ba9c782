package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load builds settings from defaults, an optional config file, and
// environment overrides, in that order of precedence (env wins).
// An empty path skips the file layer.
func Load(path string) (Settings, error) {
	s := Default()

	if path != "" {
		if err := mergeFile(&s, path); err != nil {
			return Settings{}, err
		}
	}

	s.applyEnv()

	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return s, nil
}

// mergeFile overlays a config file onto s, auto-detecting format by
// extension. Supported extensions: .yaml, .yml, .json
func mergeFile(s *Settings, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, s); err != nil {
			return fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, s); err != nil {
			return fmt.Errorf("parse json: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config file extension: %s", ext)
	}
	return nil
}
