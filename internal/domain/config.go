package domain

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// DefaultListingLimit caps the per-file listing of an aggregate structure.
const DefaultListingLimit = 20

// ProjectConfig holds project-level configuration loaded from .docscan.yaml.
type ProjectConfig struct {
	Language         string   `yaml:"language"          json:"language,omitempty"`
	ExcludeDirs      []string `yaml:"exclude_dirs"      json:"exclude_dirs,omitempty"`
	Ignore           []string `yaml:"ignore"            json:"ignore,omitempty"`
	RespectGitignore bool     `yaml:"respect_gitignore" json:"respect_gitignore,omitempty"`
	ListingLimit     int      `yaml:"listing_limit"     json:"listing_limit,omitempty"`
}

// DefaultConfig returns a zero-value config that changes nothing.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{}
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	if c.Language != "" {
		if _, err := ParseLanguage(c.Language); err != nil {
			return err
		}
	}

	if c.ListingLimit < 0 {
		return fmt.Errorf("listing_limit must be >= 0 (got %d)", c.ListingLimit)
	}

	for i, d := range c.ExcludeDirs {
		name := strings.Trim(strings.TrimSpace(d), "/")
		if name == "" {
			return fmt.Errorf("exclude_dirs[%d] must not be empty", i)
		}
		if strings.Contains(name, "/") {
			return fmt.Errorf("exclude_dirs[%d] = %q must be a directory name, not a path (use ignore for patterns)", i, d)
		}
	}

	for i, p := range c.Ignore {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("ignore[%d] must not be empty", i)
		}
		if _, err := glob.Compile(p, '/'); err != nil {
			return fmt.Errorf("ignore[%d] = %q is not a valid pattern: %w", i, p, err)
		}
	}

	return nil
}

// EffectiveLanguage resolves the configured language, letting a non-empty
// override win.
func (c ProjectConfig) EffectiveLanguage(override string) (Language, error) {
	if override != "" {
		return ParseLanguage(override)
	}
	return ParseLanguage(c.Language)
}

// EffectiveListingLimit returns the configured cap or the default.
func (c ProjectConfig) EffectiveListingLimit() int {
	if c.ListingLimit > 0 {
		return c.ListingLimit
	}
	return DefaultListingLimit
}
