// Package config loads textvec.yaml configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the textvec CLI.
type Config struct {
	Corpus     CorpusConfig     `yaml:"corpus"`
	Vectorizer VectorizerConfig `yaml:"vectorizer"`
	Output     OutputConfig     `yaml:"output"`
}

// CorpusConfig controls document loading.
type CorpusConfig struct {
	Includes  []string `yaml:"includes"`
	Excludes  []string `yaml:"excludes"`
	Lines     bool     `yaml:"lines"`     // one document per file line
	Lowercase bool     `yaml:"lowercase"` // normalize case and whitespace
}

// VectorizerConfig selects and parameterizes the transformer.
type VectorizerConfig struct {
	Method    string `yaml:"method"` // "bow" or "tfidf"
	K         int    `yaml:"k"`      // max vocabulary size; 0 = unbounded (tfidf only)
	Normalize bool   `yaml:"normalize"`
}

// OutputConfig controls matrix serialization.
type OutputConfig struct {
	Format    string `yaml:"format"` // "csv" or "json"
	Precision int    `yaml:"precision"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Corpus: CorpusConfig{
			Includes: []string{"**/*.txt", "**/*.md", "**/*.html", "**/*.htm"},
			Excludes: []string{"**/.git/**", "**/node_modules/**", "**/vendor/**"},
		},
		Vectorizer: VectorizerConfig{
			Method: "tfidf",
			K:      10000,
		},
		Output: OutputConfig{
			Format:    "csv",
			Precision: 6,
		},
	}
}

// Load reads a YAML config file, applying defaults for unset fields. A
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	switch c.Vectorizer.Method {
	case "bow", "tfidf":
	default:
		return fmt.Errorf("config: unknown vectorizer method %q", c.Vectorizer.Method)
	}
	switch c.Output.Format {
	case "csv", "json":
	default:
		return fmt.Errorf("config: unknown output format %q", c.Output.Format)
	}
	if c.Vectorizer.K < 0 {
		return fmt.Errorf("config: k must be >= 0, got %d", c.Vectorizer.K)
	}
	return nil
}
