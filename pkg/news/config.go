package news

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"cryptoassist-api/pkg/confkit"
)

// Config lists the news providers available to the application.
type Config struct {
	Default   string                     `yaml:"default"`
	Providers map[string]*ProviderConfig `yaml:"providers"`
}

// ProviderConfig configures one news provider.
type ProviderConfig struct {
	Type    string `yaml:"type"`
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	// Filter replaces DefaultFilter for callers that do not pass one.
	Filter string `yaml:"filter"`

	TimeoutRaw string        `yaml:"timeout"`
	Timeout    time.Duration `yaml:"-"`
}

// ProviderBuilder constructs a Provider from configuration.
type ProviderBuilder func(name string, cfg *ProviderConfig) (Provider, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]ProviderBuilder)
)

// RegisterProvider registers a provider constructor under typeName.
func RegisterProvider(typeName string, builder ProviderBuilder) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[registryKey(typeName)] = builder
}

func lookupBuilder(typeName string) (ProviderBuilder, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	builder, ok := registry[registryKey(typeName)]
	return builder, ok
}

func registryKey(typeName string) string {
	return strings.ToLower(strings.TrimSpace(typeName))
}

// LoadConfig reads configuration from disk.
func LoadConfig(path string) (*Config, error) {
	confkit.LoadDotenvOnce()
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open news config: %w", err)
	}
	defer file.Close()
	return LoadConfigFromReader(file)
}

// LoadConfigFromReader constructs a Config from r.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read news config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal news config: %w", err)
	}
	if err := cfg.normalise(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalise() error {
	c.Default = strings.TrimSpace(c.Default)
	if c.Providers == nil {
		c.Providers = make(map[string]*ProviderConfig)
	}
	for name, p := range c.Providers {
		if p == nil {
			p = &ProviderConfig{}
			c.Providers[name] = p
		}
		p.Type = strings.TrimSpace(os.ExpandEnv(p.Type))
		p.BaseURL = strings.TrimSpace(os.ExpandEnv(p.BaseURL))
		p.Filter = strings.TrimSpace(p.Filter)
		p.TimeoutRaw = strings.TrimSpace(os.ExpandEnv(p.TimeoutRaw))
		if p.TimeoutRaw == "" {
			continue
		}
		d, err := time.ParseDuration(p.TimeoutRaw)
		if err != nil {
			return fmt.Errorf("news provider %s: invalid timeout %q: %w", name, p.TimeoutRaw, err)
		}
		if d <= 0 {
			return fmt.Errorf("news provider %s: timeout must be positive, got %s", name, d)
		}
		p.Timeout = d
	}
	return nil
}

// Validate ensures the configuration is structurally sound.
func (c *Config) Validate() error {
	if len(c.Providers) == 0 {
		return fmt.Errorf("news config: providers cannot be empty")
	}
	if c.Default != "" {
		if _, ok := c.Providers[c.Default]; !ok {
			return fmt.Errorf("news config: default provider %q not defined", c.Default)
		}
	}
	for name, p := range c.Providers {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("news config: provider name cannot be empty")
		}
		if p.Type == "" {
			return fmt.Errorf("news config: provider %s must specify type", name)
		}
		if _, ok := lookupBuilder(p.Type); !ok {
			return fmt.Errorf("news config: provider %s has unsupported type %q", name, p.Type)
		}
	}
	return nil
}

// DefaultName returns the default provider name, or the alphabetically first
// provider when none is configured.
func (c *Config) DefaultName() string {
	if c.Default != "" {
		return c.Default
	}
	names := make([]string, 0, len(c.Providers))
	for name := range c.Providers {
		names = append(names, name)
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)
	return names[0]
}

// BuildProviders instantiates every configured provider.
func (c *Config) BuildProviders() (map[string]Provider, error) {
	result := make(map[string]Provider, len(c.Providers))
	for name, p := range c.Providers {
		builder, ok := lookupBuilder(p.Type)
		if !ok {
			return nil, fmt.Errorf("news provider %s: unsupported type %q", name, p.Type)
		}
		provider, err := builder(name, p)
		if err != nil {
			return nil, fmt.Errorf("news provider %s: %w", name, err)
		}
		result[name] = provider
	}
	return result, nil
}
