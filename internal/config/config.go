package config

import (
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Version string  `yaml:"version"`
	Exclude Exclude `yaml:"exclude"`
}

type Exclude struct {
	Patterns  []string `yaml:"patterns"`
	Separator string   `yaml:"separator"` // Optional, defaults to /
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Exclude.Separator == "" {
		c.Exclude.Separator = "/"
	}
	if utf8.RuneCountInString(c.Exclude.Separator) != 1 {
		return fmt.Errorf("exclude.separator must be a single character, got %q", c.Exclude.Separator)
	}
	return nil
}

// Separator returns the path separator of the target paths as a rune.
func (c *Config) Separator() rune {
	r, _ := utf8.DecodeRuneInString(c.Exclude.Separator)
	return r
}
