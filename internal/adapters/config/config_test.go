package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.News.ResultLimit != 6 {
		t.Errorf("Expected default result limit 6, got %d", cfg.News.ResultLimit)
	}
	if cfg.News.AdapterTimeout != 8*time.Second {
		t.Errorf("Expected default adapter timeout 8s, got %s", cfg.News.AdapterTimeout)
	}
	if len(cfg.News.DenyDomains) == 0 {
		t.Error("Expected default deny domains")
	}
	if len(cfg.News.RemovedTitles) != 1 || cfg.News.RemovedTitles[0] != "[Removed]" {
		t.Errorf("Unexpected removed titles: %v", cfg.News.RemovedTitles)
	}
	if !cfg.News.EnglishOnly {
		t.Error("English-only filter should default to on")
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("FINNHUB_API_KEY", "fh-key")
	t.Setenv("NEWS_RESULT_LIMIT", "10")
	t.Setenv("NEWS_TRUSTED_SOURCES", "Reuters,Bloomberg")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Providers.FinnhubAPIKey != "fh-key" {
		t.Errorf("Expected finnhub key from env, got %q", cfg.Providers.FinnhubAPIKey)
	}
	if cfg.News.ResultLimit != 10 {
		t.Errorf("Expected result limit 10, got %d", cfg.News.ResultLimit)
	}
	if len(cfg.News.TrustedSources) != 2 {
		t.Errorf("Expected 2 trusted sources, got %v", cfg.News.TrustedSources)
	}

	providers := cfg.Providers.EnabledProviders()
	if len(providers) == 0 || providers[0] != "finnhub" {
		t.Errorf("Expected finnhub first in registration order, got %v", providers)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Providers: ProvidersConfig{YahooRSSEnabled: true},
			News: NewsConfig{
				AdapterTimeout: time.Second,
				AdapterRetries: 1,
				ResultLimit:    6,
				Lookback:       time.Hour,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}, wantErr: false},
		{name: "no providers", mutate: func(c *Config) { c.Providers.YahooRSSEnabled = false }, wantErr: true},
		{name: "zero limit", mutate: func(c *Config) { c.News.ResultLimit = 0 }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.News.AdapterTimeout = 0 }, wantErr: true},
		{name: "zero retries", mutate: func(c *Config) { c.News.AdapterRetries = 0 }, wantErr: true},
		{name: "zero lookback", mutate: func(c *Config) { c.News.Lookback = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
