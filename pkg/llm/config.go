package llm

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"cryptoassist-api/pkg/confkit"
)

// Completion modes supported by the client.
const (
	// ModeGenerate posts to the runtime's native /api/generate endpoint.
	ModeGenerate = "generate"
	// ModeChat uses the OpenAI-compatible /v1/chat/completions endpoint.
	ModeChat = "chat"
)

const (
	defaultBaseURL  = "http://localhost:11434"
	defaultModel    = "llama3:8b"
	defaultLogLevel = "info"

	envBaseURL = "OLLAMA_HOST"
	envModel   = "OLLAMA_MODEL"
	envAPIKey  = "LLM_API_KEY"
	envTimeout = "LLM_TIMEOUT"
	envMode    = "LLM_MODE"
)

// Config holds runtime settings for the completion client.
type Config struct {
	BaseURL  string `yaml:"base_url"`
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	Mode     string `yaml:"mode"`
	LogLevel string `yaml:"log_level"`
	// Timeout of zero leaves the transport defaults in place.
	Timeout time.Duration `yaml:"-"`

	timeoutRaw string
}

// LoadConfig reads configuration from disk.
func LoadConfig(path string) (*Config, error) {
	confkit.LoadDotenvOnce()
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open llm config: %w", err)
	}
	defer file.Close()
	return LoadConfigFromReader(file)
}

// LoadConfigFromReader constructs a Config from a reader.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	var raw struct {
		BaseURL  string `yaml:"base_url"`
		APIKey   string `yaml:"api_key"`
		Model    string `yaml:"model"`
		Mode     string `yaml:"mode"`
		LogLevel string `yaml:"log_level"`
		Timeout  string `yaml:"timeout"`
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read llm config: %w", err)
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal llm config: %w", err)
	}

	cfg := &Config{
		BaseURL:    raw.BaseURL,
		APIKey:     raw.APIKey,
		Model:      raw.Model,
		Mode:       raw.Mode,
		LogLevel:   raw.LogLevel,
		timeoutRaw: raw.Timeout,
	}
	cfg.applyEnvOverrides()
	cfg.applyDefaults()
	if err := cfg.parseTimeout(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns the configuration used when no file is provided:
// a local runtime serving llama3:8b through /api/generate.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyEnvOverrides()
	cfg.applyDefaults()
	if err := cfg.parseTimeout(); err != nil {
		cfg.Timeout = 0
	}
	return cfg
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("llm config: base_url is required")
	}
	if strings.TrimSpace(c.Model) == "" {
		return errors.New("llm config: model is required")
	}
	switch c.Mode {
	case ModeGenerate, ModeChat:
	default:
		return fmt.Errorf("llm config: mode must be %s or %s, got %q", ModeGenerate, ModeChat, c.Mode)
	}
	if c.Timeout < 0 {
		return errors.New("llm config: timeout cannot be negative")
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func (c *Config) applyDefaults() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if !strings.Contains(c.BaseURL, "://") {
		// OLLAMA_HOST is commonly given as host:port.
		c.BaseURL = "http://" + c.BaseURL
	}
	if strings.TrimSpace(c.Model) == "" {
		c.Model = defaultModel
	}
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	if c.Mode == "" {
		c.Mode = ModeGenerate
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = defaultLogLevel
	}
}

func (c *Config) applyEnvOverrides() {
	c.BaseURL = expandAndOverride(c.BaseURL, envBaseURL)
	c.Model = expandAndOverride(c.Model, envModel)
	c.APIKey = expandAndOverride(c.APIKey, envAPIKey)
	c.Mode = expandAndOverride(c.Mode, envMode)
	c.timeoutRaw = expandAndOverride(c.timeoutRaw, envTimeout)
}

func (c *Config) parseTimeout() error {
	raw := strings.TrimSpace(c.timeoutRaw)
	if raw == "" {
		c.Timeout = 0
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("llm config: invalid timeout %q: %w", raw, err)
	}
	if d <= 0 {
		return fmt.Errorf("llm config: timeout must be positive, got %s", d)
	}
	c.Timeout = d
	return nil
}

func expandAndOverride(current, envKey string) string {
	current = os.ExpandEnv(current)
	if envVal := os.Getenv(envKey); envVal != "" {
		return envVal
	}
	return current
}
