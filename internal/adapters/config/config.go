package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config represents application configuration.
// It is loaded once at startup and never mutated afterwards.
type Config struct {
	Server    ServerConfig    `envconfig:"SERVER"`
	Providers ProvidersConfig `envconfig:"PROVIDERS"`
	News      NewsConfig      `envconfig:"NEWS"`
	Logging   LoggingConfig   `envconfig:"LOGGING"`
}

// ServerConfig represents the HTTP surface
type ServerConfig struct {
	Addr         string        `envconfig:"SERVER_ADDR" default:":8080"`
	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
}

// ProvidersConfig represents upstream news provider credentials and switches
type ProvidersConfig struct {
	FinnhubAPIKey   string `envconfig:"FINNHUB_API_KEY" required:"false"`
	AlphaAPIKey     string `envconfig:"ALPHA_API_KEY" required:"false"`
	NewsAPIKey      string `envconfig:"NEWSAPI_API_KEY" required:"false"`
	CoinDeskEnabled bool   `envconfig:"COINDESK_ENABLED" default:"true"`
	YahooRSSEnabled bool   `envconfig:"YAHOO_RSS_ENABLED" default:"true"`
	FinnhubBaseURL  string `envconfig:"FINNHUB_BASE_URL" default:"https://finnhub.io/api/v1"`
	AlphaBaseURL    string `envconfig:"ALPHA_BASE_URL" default:"https://www.alphavantage.co"`
	NewsAPIBaseURL  string `envconfig:"NEWSAPI_BASE_URL" default:"https://newsapi.org"`
	CoinDeskBaseURL string `envconfig:"COINDESK_BASE_URL" default:"https://www.coindesk.com"`
	YahooRSSBaseURL string `envconfig:"YAHOO_RSS_BASE_URL" default:"https://feeds.finance.yahoo.com"`
}

// NewsConfig represents aggregation, filtering and ranking parameters
type NewsConfig struct {
	AdapterTimeout time.Duration `envconfig:"NEWS_ADAPTER_TIMEOUT" default:"8s"`
	AdapterRetries int           `envconfig:"NEWS_ADAPTER_RETRIES" default:"1"`
	ResultLimit    int           `envconfig:"NEWS_RESULT_LIMIT" default:"6"`
	Lookback       time.Duration `envconfig:"NEWS_LOOKBACK" default:"720h"`
	DenyDomains    []string      `envconfig:"NEWS_DENY_DOMAINS" default:"reddit.com,twitter.com,x.com,facebook.com,instagram.com,tiktok.com,youtube.com,medium.com,blogspot.com,wordpress.com,tumblr.com,github.com,gitlab.com,pastebin.com"`
	TrustedSources []string      `envconfig:"NEWS_TRUSTED_SOURCES" required:"false"`
	RemovedTitles  []string      `envconfig:"NEWS_REMOVED_TITLES" default:"[Removed]"`
	EnglishOnly    bool          `envconfig:"NEWS_ENGLISH_ONLY" default:"true"`
	LexiconFile    string        `envconfig:"NEWS_LEXICON_FILE" required:"false"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	File   string `envconfig:"LOG_FILE" required:"false"`
	Format string `envconfig:"LOG_FORMAT" default:"console"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if len(c.Providers.EnabledProviders()) == 0 {
		return fmt.Errorf("at least one news provider must be enabled")
	}

	if c.News.ResultLimit < 1 {
		return fmt.Errorf("result limit must be at least 1")
	}
	if c.News.AdapterTimeout <= 0 {
		return fmt.Errorf("adapter timeout must be positive")
	}
	if c.News.AdapterRetries < 1 {
		return fmt.Errorf("adapter retries must be at least 1")
	}
	if c.News.Lookback <= 0 {
		return fmt.Errorf("lookback must be positive")
	}

	return nil
}

// EnabledProviders returns provider names in registration order
func (c *ProvidersConfig) EnabledProviders() []string {
	var providers []string
	if c.FinnhubAPIKey != "" {
		providers = append(providers, "finnhub")
	}
	if c.AlphaAPIKey != "" {
		providers = append(providers, "alphavantage")
	}
	if c.NewsAPIKey != "" {
		providers = append(providers, "newsapi")
	}
	if c.CoinDeskEnabled {
		providers = append(providers, "coindesk")
	}
	if c.YahooRSSEnabled {
		providers = append(providers, "yahoo")
	}
	return providers
}
