package news

import (
	"net/http"

	"github.com/selivandex/news-sentiment/internal/adapters/config"
)

// NewAdapters builds the enabled adapters in registration order.
// Registration order is the tie-break for everything downstream.
func NewAdapters(cfg *config.Config, client *http.Client) []Adapter {
	p := cfg.Providers
	var adapters []Adapter

	if p.FinnhubAPIKey != "" {
		adapters = append(adapters, NewFinnhubAdapter(p.FinnhubAPIKey, p.FinnhubBaseURL, cfg.News.Lookback, client))
	}
	if p.AlphaAPIKey != "" {
		adapters = append(adapters, NewAlphaVantageAdapter(p.AlphaAPIKey, p.AlphaBaseURL, client))
	}
	if p.NewsAPIKey != "" {
		adapters = append(adapters, NewNewsAPIAdapter(p.NewsAPIKey, p.NewsAPIBaseURL, client))
	}
	if p.CoinDeskEnabled {
		adapters = append(adapters, NewCoinDeskAdapter(p.CoinDeskBaseURL, client))
	}
	if p.YahooRSSEnabled {
		adapters = append(adapters, NewYahooRSSAdapter(p.YahooRSSBaseURL, client))
	}

	for i, a := range adapters {
		adapters[i] = WithRetry(a, cfg.News.AdapterRetries, defaultRetryDelay)
	}

	return adapters
}
