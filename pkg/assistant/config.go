package assistant

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"cryptoassist-api/pkg/confkit"
)

const (
	DefaultFormat          = "markdown"
	DefaultFallbackMessage = "Unable to generate a response right now."
	defaultTemperature     = 0.7
	defaultTopP            = 0.9
)

// Config controls how questions are turned into completion calls.
type Config struct {
	// Model overrides the completion client's model when set.
	Model           string  `yaml:"model"`
	Temperature     float64 `yaml:"-"`
	TopP            float64 `yaml:"-"`
	Format          string  `yaml:"format"`
	MaxNews         int     `yaml:"max_news"`
	PromptTemplate  string  `yaml:"prompt_template"`
	FallbackMessage string  `yaml:"fallback_message"`

	TemperatureRaw *float64 `yaml:"temperature"`
	TopPRaw        *float64 `yaml:"top_p"`
}

// DefaultConfig returns the sampling settings used when no file is given.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig reads configuration from disk.
func LoadConfig(path string) (*Config, error) {
	confkit.LoadDotenvOnce()
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open assistant config: %w", err)
	}
	defer file.Close()
	cfg, err := LoadConfigFromReader(file)
	if err != nil {
		return nil, err
	}
	if cfg.PromptTemplate != "" {
		cfg.PromptTemplate = confkit.ResolvePath(confkit.BaseDir(path), cfg.PromptTemplate)
	}
	return cfg, nil
}

// LoadConfigFromReader constructs a Config from a reader.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read assistant config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal assistant config: %w", err)
	}
	cfg.Model = strings.TrimSpace(os.ExpandEnv(cfg.Model))
	cfg.PromptTemplate = strings.TrimSpace(os.ExpandEnv(cfg.PromptTemplate))
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	c.Temperature = defaultTemperature
	if c.TemperatureRaw != nil {
		c.Temperature = *c.TemperatureRaw
	}
	c.TopP = defaultTopP
	if c.TopPRaw != nil {
		c.TopP = *c.TopPRaw
	}
	if strings.TrimSpace(c.Format) == "" {
		c.Format = DefaultFormat
	}
	if c.MaxNews <= 0 {
		c.MaxNews = DefaultMaxNews
	}
	if strings.TrimSpace(c.FallbackMessage) == "" {
		c.FallbackMessage = DefaultFallbackMessage
	}
}

// Validate ensures configuration sanity.
func (c *Config) Validate() error {
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("assistant config: temperature must be between 0 and 2, got %v", c.Temperature)
	}
	if c.TopP <= 0 || c.TopP > 1 {
		return fmt.Errorf("assistant config: top_p must be in (0, 1], got %v", c.TopP)
	}
	if c.MaxNews <= 0 {
		return errors.New("assistant config: max_news must be positive")
	}
	return nil
}
