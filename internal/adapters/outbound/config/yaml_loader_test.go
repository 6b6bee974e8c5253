package config_test

import (
	"os"
	"path/filepath"
	"testing"

	appconfig "github.com/docscan/docscan/internal/adapters/outbound/config"
	"github.com/docscan/docscan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, appconfig.FileName), []byte(content), 0644))
}

func TestYAMLLoader_MissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
language: Angular
exclude_dirs:
  - e2e/
  - storybook
ignore:
  - "**/*.spec.ts"
respect_gitignore: true
listing_limit: 50
`)
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "angular", cfg.Language)
	assert.Equal(t, []string{"e2e", "storybook"}, cfg.ExcludeDirs)
	assert.Equal(t, []string{"**/*.spec.ts"}, cfg.Ignore)
	assert.True(t, cfg.RespectGitignore)
	assert.Equal(t, 50, cfg.EffectiveListingLimit())

	lang, err := cfg.EffectiveLanguage("")
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageAngular, lang)
}

func TestYAMLLoader_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{{{invalid yaml`)
	loader := appconfig.New()

	_, err := loader.Load(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing .docscan.yaml")
}

func TestYAMLLoader_UnknownLanguage(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `language: cobol`)
	loader := appconfig.New()

	_, err := loader.Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid .docscan.yaml")
	assert.ErrorIs(t, err, domain.ErrUnknownLanguage)
}

func TestYAMLLoader_ExcludeDirMustBeAName(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
exclude_dirs:
  - src/generated
`)
	loader := appconfig.New()

	_, err := loader.Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a path")
}

func TestYAMLLoader_NegativeListingLimit(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `listing_limit: -1`)
	loader := appconfig.New()

	_, err := loader.Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing_limit")
}

func TestYAMLLoader_EmptyFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "")
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Empty(t, cfg.Language)
	assert.Equal(t, domain.DefaultListingLimit, cfg.EffectiveListingLimit())
}
