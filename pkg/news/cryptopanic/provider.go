package cryptopanic

import "cryptoassist-api/pkg/news"

func init() {
	news.RegisterProvider(ProviderType, func(name string, cfg *news.ProviderConfig) (news.Provider, error) {
		client, err := NewClient(
			WithAPIKey(cfg.APIKey),
			WithBaseURL(cfg.BaseURL),
			WithDefaultFilter(cfg.Filter),
			WithTimeout(cfg.Timeout),
		)
		if err != nil {
			return nil, err
		}
		return client, nil
	})
}
