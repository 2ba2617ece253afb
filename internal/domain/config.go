package domain

import (
	"fmt"
	"net/url"
	"time"
)

const (
	DefaultBaseURL         = "http://localhost:8081"
	DefaultLanguage        = "en-US"
	DefaultConverter       = "detex"
	DefaultTimeout         = "30s"
	DefaultMaxReplacements = 5
	DefaultContextLines    = 1
)

// Config holds the tool configuration loaded from .texspell.yaml.
type Config struct {
	BaseURL         string   `yaml:"base_url"         json:"base_url"`
	Language        string   `yaml:"language"         json:"language"`
	Converter       string   `yaml:"converter"        json:"converter"`
	ConverterArgs   []string `yaml:"converter_args"   json:"converter_args,omitempty"`
	Timeout         string   `yaml:"timeout"          json:"timeout"`
	MaxReplacements int      `yaml:"max_replacements" json:"max_replacements"`
	ContextLines    int      `yaml:"context_lines"    json:"context_lines"`
	DisabledRules   []string `yaml:"disabled_rules"   json:"disabled_rules,omitempty"`
	Picky           bool     `yaml:"picky"            json:"picky,omitempty"`
	MotherTongue    string   `yaml:"mother_tongue"    json:"mother_tongue,omitempty"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		BaseURL:         DefaultBaseURL,
		Language:        DefaultLanguage,
		Converter:       DefaultConverter,
		Timeout:         DefaultTimeout,
		MaxReplacements: DefaultMaxReplacements,
		ContextLines:    DefaultContextLines,
	}
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base_url %q must be an absolute http(s) URL", c.BaseURL)
	}

	if c.Language == "" {
		return fmt.Errorf("language must not be empty")
	}

	if c.Converter == "" {
		return fmt.Errorf("converter must not be empty")
	}

	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}

	if c.MaxReplacements < 0 {
		return fmt.Errorf("max_replacements must be >= 0 (got %d)", c.MaxReplacements)
	}
	if c.ContextLines < 0 {
		return fmt.Errorf("context_lines must be >= 0 (got %d)", c.ContextLines)
	}

	return nil
}

// TimeoutDuration parses Timeout. An empty value means no timeout.
func (c Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("timeout %q: %w", c.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout must not be negative (got %s)", c.Timeout)
	}
	return d, nil
}
