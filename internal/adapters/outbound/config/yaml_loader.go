package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/texspell/texspell/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = ".texspell.yaml"

// Environment variables that override the file.
const (
	EnvBaseURL   = "TEXSPELL_BASE_URL"
	EnvLanguage  = "TEXSPELL_LANGUAGE"
	EnvConverter = "TEXSPELL_CONVERTER"
)

// YAMLLoader implements domain.ConfigLoader by reading .texspell.yaml, then
// a .env file, then the process environment.
type YAMLLoader struct {
	envFile     string
	requireFile bool
}

// New creates a YAMLLoader that reads .env from the working directory.
func New() *YAMLLoader { return &YAMLLoader{envFile: ".env"} }

// WithEnvFile returns a loader reading variables from path instead of .env.
func (l *YAMLLoader) WithEnvFile(path string) *YAMLLoader {
	cp := *l
	cp.envFile = path
	return &cp
}

// RequireFile returns a loader for which a missing config file is an error.
// Use it when the user named the file explicitly.
func (l *YAMLLoader) RequireFile() *YAMLLoader {
	cp := *l
	cp.requireFile = true
	return &cp
}

// Load reads the config at path. A missing file yields DefaultConfig, with
// environment overrides still applied, unless the loader requires the file.
func (l *YAMLLoader) Load(path string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return domain.Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !l.requireFile:
	case errors.Is(err, os.ErrNotExist):
		return domain.Config{}, fmt.Errorf("config file %s: %w", path, os.ErrNotExist)
	default:
		return domain.Config{}, err
	}

	// .env never overrides variables already set in the environment.
	if l.envFile != "" {
		if err := godotenv.Load(l.envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return domain.Config{}, fmt.Errorf("loading %s: %w", l.envFile, err)
		}
	}
	cfg = applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

func applyEnv(cfg domain.Config) domain.Config {
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvLanguage); v != "" {
		cfg.Language = v
	}
	if v := os.Getenv(EnvConverter); v != "" {
		cfg.Converter = v
	}
	return cfg
}
