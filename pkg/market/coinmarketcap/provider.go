package coinmarketcap

import "cryptoassist-api/pkg/market"

func init() {
	market.RegisterProvider(ProviderType, func(name string, cfg *market.ProviderConfig) (market.Provider, error) {
		opts := []Option{WithAPIKey(cfg.APIKey)}
		if cfg.BaseURL != "" {
			opts = append(opts, WithBaseURL(cfg.BaseURL))
		}
		if cfg.Timeout > 0 {
			opts = append(opts, WithTimeout(cfg.Timeout))
		}
		client, err := NewClient(opts...)
		if err != nil {
			return nil, err
		}
		return client, nil
	})
}
