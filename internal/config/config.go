package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/rest"

	assistantpkg "cryptoassist-api/pkg/assistant"
	"cryptoassist-api/pkg/confkit"
	llmpkg "cryptoassist-api/pkg/llm"
	marketpkg "cryptoassist-api/pkg/market"
	newspkg "cryptoassist-api/pkg/news"
)

type Dashboard struct {
	// ListingLimit is how many coins the selector offers.
	ListingLimit int    `json:",default=50"`
	NewsLimit    int    `json:",default=5"`
	Title        string `json:",optional"`
}

const defaultTitle = "AI Crypto Assistant"

type Config struct {
	rest.RestConf
	// Env indicates the running environment: test | dev | prod
	Env       string    `json:",default=dev"`
	Dashboard Dashboard `json:",optional"`

	Market    confkit.Section[marketpkg.Config]    `json:",optional"`
	News      confkit.Section[newspkg.Config]      `json:",optional"`
	LLM       confkit.Section[llmpkg.Config]       `json:",optional"`
	Assistant confkit.Section[assistantpkg.Config] `json:",optional"`

	mainPath string
	baseDir  string
}

func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func Load(path string) (*Config, error) {
	confkit.LoadDotenvOnce()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %s: %w", path, err)
	}

	var cfg Config
	if err := conf.Load(absPath, &cfg, conf.UseEnv()); err != nil {
		return nil, fmt.Errorf("load config %s: %w", absPath, err)
	}

	cfg.mainPath = absPath
	cfg.baseDir = filepath.Dir(absPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.hydrateSections(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Env)) {
	case "", "test", "dev", "prod":
		if strings.TrimSpace(c.Env) == "" {
			c.Env = "dev"
		}
	default:
		return errors.New("config: env must be one of test|dev|prod")
	}
	if err := c.validateDashboard(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Market.File) == "" {
		return errors.New("config: market section file is required")
	}
	if strings.TrimSpace(c.News.File) == "" {
		return errors.New("config: news section file is required")
	}
	return nil
}

func (c *Config) validateDashboard() error {
	if c.Dashboard.ListingLimit == 0 {
		c.Dashboard.ListingLimit = marketpkg.DefaultListingLimit
	}
	if c.Dashboard.NewsLimit == 0 {
		c.Dashboard.NewsLimit = 5
	}
	if strings.TrimSpace(c.Dashboard.Title) == "" {
		c.Dashboard.Title = defaultTitle
	}
	if c.Dashboard.ListingLimit < 0 {
		return errors.New("config: dashboard.listingLimit must be positive")
	}
	if c.Dashboard.NewsLimit < 0 {
		return errors.New("config: dashboard.newsLimit must be positive")
	}
	return nil
}

func (c *Config) hydrateSections() error {
	base := c.baseDir

	if err := c.Market.Hydrate(base, marketpkg.LoadConfig); err != nil {
		return fmt.Errorf("load market config: %w", err)
	}
	if err := c.News.Hydrate(base, newspkg.LoadConfig); err != nil {
		return fmt.Errorf("load news config: %w", err)
	}
	if err := c.LLM.Hydrate(base, llmpkg.LoadConfig); err != nil {
		return fmt.Errorf("load llm config: %w", err)
	}
	if err := c.Assistant.Hydrate(base, assistantpkg.LoadConfig); err != nil {
		return fmt.Errorf("load assistant config: %w", err)
	}
	return nil
}

// LLMConfig returns the hydrated llm section or the local-runtime defaults.
func (c *Config) LLMConfig() *llmpkg.Config {
	if c.LLM.Value != nil {
		return c.LLM.Value
	}
	return llmpkg.DefaultConfig()
}

// AssistantConfig returns the hydrated assistant section or its defaults.
func (c *Config) AssistantConfig() *assistantpkg.Config {
	if c.Assistant.Value != nil {
		return c.Assistant.Value
	}
	return assistantpkg.DefaultConfig()
}

func (c *Config) MainPath() string {
	return c.mainPath
}

func (c *Config) BaseDir() string {
	return c.baseDir
}
