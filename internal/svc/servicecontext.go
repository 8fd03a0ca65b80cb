package svc

import (
	"errors"
	"fmt"
	"log"

	"cryptoassist-api/internal/config"
	assistantpkg "cryptoassist-api/pkg/assistant"
	"cryptoassist-api/pkg/confkit"
	llmpkg "cryptoassist-api/pkg/llm"
	marketpkg "cryptoassist-api/pkg/market"
	_ "cryptoassist-api/pkg/market/coinmarketcap"
	newspkg "cryptoassist-api/pkg/news"
	_ "cryptoassist-api/pkg/news/cryptopanic"
)

type ServiceContext struct {
	Config config.Config

	MarketConfig    *marketpkg.Config
	MarketProviders map[string]marketpkg.Provider
	Market          marketpkg.Provider

	NewsConfig    *newspkg.Config
	NewsProviders map[string]newspkg.Provider
	News          newspkg.Provider

	LLMConfig *llmpkg.Config
	LLM       *llmpkg.Client
	Assistant *assistantpkg.Assistant
}

// NewServiceContext builds every dependency once and exits the process when
// one cannot be built. A missing credential is reported with its env var.
func NewServiceContext(c config.Config) *ServiceContext {
	svc, err := New(c)
	if err != nil {
		var credErr *confkit.CredentialError
		if errors.As(err, &credErr) {
			log.Fatalf("missing credential for %s: set %s", credErr.Provider, credErr.EnvVar)
		}
		log.Fatalf("failed to build service context: %v", err)
	}
	return svc
}

// New is NewServiceContext without the process exit.
func New(c config.Config) (*ServiceContext, error) {
	svc := &ServiceContext{Config: c}

	if !c.Market.Configured() {
		return nil, errors.New("market config not loaded")
	}
	marketProviders, err := c.Market.Value.BuildProviders()
	if err != nil {
		return nil, err
	}
	svc.MarketConfig = c.Market.Value
	svc.MarketProviders = marketProviders
	svc.Market = marketProviders[c.Market.Value.DefaultName()]

	if !c.News.Configured() {
		return nil, errors.New("news config not loaded")
	}
	newsProviders, err := c.News.Value.BuildProviders()
	if err != nil {
		return nil, err
	}
	svc.NewsConfig = c.News.Value
	svc.NewsProviders = newsProviders
	svc.News = newsProviders[c.News.Value.DefaultName()]

	svc.LLMConfig = c.LLMConfig()
	client, err := llmpkg.NewClient(svc.LLMConfig)
	if err != nil {
		return nil, fmt.Errorf("build llm client: %w", err)
	}
	svc.LLM = client

	assistant, err := assistantpkg.New(client, c.AssistantConfig())
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("build assistant: %w", err)
	}
	svc.Assistant = assistant
	return svc, nil
}

// Close releases idle connections held by the completion client.
func (s *ServiceContext) Close() error {
	if s == nil || s.LLM == nil {
		return nil
	}
	return s.LLM.Close()
}
