package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appconfig "github.com/texspell/texspell/internal/adapters/outbound/config"
	"github.com/texspell/texspell/internal/domain"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, appconfig.FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(appconfig.EnvBaseURL, "")
	t.Setenv(appconfig.EnvLanguage, "")
	t.Setenv(appconfig.EnvConverter, "")
}

func loader(t *testing.T) *appconfig.YAMLLoader {
	return appconfig.New().WithEnvFile(filepath.Join(t.TempDir(), "absent.env"))
}

func TestYAMLLoader_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := loader(t).Load(filepath.Join(t.TempDir(), appconfig.FileName))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_RequiredFileMissing(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	_, err := loader(t).RequireFile().Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), path)
}

func TestYAMLLoader_RequiredFilePresent(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), "language: fr\n")
	cfg, err := loader(t).RequireFile().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fr", cfg.Language)
}

func TestYAMLLoader_ValidYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), `
base_url: https://lt.example.org
language: fr
converter: opendetex
converter_args: ["-l"]
timeout: 5s
max_replacements: 2
disabled_rules:
  - WHITESPACE_RULE
picky: true
`)

	cfg, err := loader(t).Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://lt.example.org", cfg.BaseURL)
	assert.Equal(t, "fr", cfg.Language)
	assert.Equal(t, "opendetex", cfg.Converter)
	assert.Equal(t, []string{"-l"}, cfg.ConverterArgs)
	assert.Equal(t, 2, cfg.MaxReplacements)
	assert.Equal(t, []string{"WHITESPACE_RULE"}, cfg.DisabledRules)
	assert.True(t, cfg.Picky)
	// Unset keys keep their defaults.
	assert.Equal(t, domain.DefaultContextLines, cfg.ContextLines)
}

func TestYAMLLoader_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), `{{{invalid yaml`)

	_, err := loader(t).Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}

func TestYAMLLoader_InvalidValues(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), `base_url: localhost`)

	_, err := loader(t).Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_url")
}

func TestYAMLLoader_EmptyFileReturnsDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), "")

	cfg, err := loader(t).Load(path)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_EnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(appconfig.EnvBaseURL, "http://checker:8010")
	t.Setenv(appconfig.EnvLanguage, "de-DE")
	path := writeConfig(t, t.TempDir(), "base_url: http://ignored:1\nlanguage: fr\n")

	cfg, err := loader(t).Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://checker:8010", cfg.BaseURL)
	assert.Equal(t, "de-DE", cfg.Language)
}

func TestYAMLLoader_DotEnvFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv(appconfig.EnvConverter)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("TEXSPELL_CONVERTER=pandoc-plain\n"), 0644))
	t.Cleanup(func() { os.Unsetenv(appconfig.EnvConverter) })

	cfg, err := appconfig.New().WithEnvFile(envFile).Load(filepath.Join(dir, appconfig.FileName))
	require.NoError(t, err)
	assert.Equal(t, "pandoc-plain", cfg.Converter)
}
