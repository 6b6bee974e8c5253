package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/docscan/docscan/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the project-level config file read from the extraction root.
const FileName = ".docscan.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .docscan.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .docscan.yaml from projectPath.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(projectPath string) (domain.ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.ProjectConfig{}, err
	}

	var cfg domain.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", FileName, err)
	}

	return normalize(cfg), nil
}

// normalize trims directory names so they compare equal to walked entries.
func normalize(cfg domain.ProjectConfig) domain.ProjectConfig {
	dirs := make([]string, 0, len(cfg.ExcludeDirs))
	for _, d := range cfg.ExcludeDirs {
		dirs = append(dirs, strings.Trim(strings.TrimSpace(d), "/"))
	}
	if len(dirs) > 0 {
		cfg.ExcludeDirs = dirs
	}
	cfg.Language = strings.ToLower(strings.TrimSpace(cfg.Language))
	return cfg
}
