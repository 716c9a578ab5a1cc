package news

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/selivandex/news-sentiment/pkg/logger"
	"github.com/selivandex/news-sentiment/pkg/models"
)

// alphaSentimentBound is where Alpha Vantage labels scores fully Bullish/Bearish
const alphaSentimentBound = 0.35

// AlphaVantageAdapter fetches the NEWS_SENTIMENT feed, which carries
// provider-computed sentiment per article and per ticker
type AlphaVantageAdapter struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

// NewAlphaVantageAdapter creates new Alpha Vantage adapter
func NewAlphaVantageAdapter(apiKey, baseURL string, client *http.Client) *AlphaVantageAdapter {
	if client == nil {
		client = newHTTPClient()
	}
	return &AlphaVantageAdapter{
		client:  client,
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (a *AlphaVantageAdapter) Name() string {
	return "alphavantage"
}

func (a *AlphaVantageAdapter) Supports(models.AssetClass) bool {
	return true
}

type alphaTickerSentiment struct {
	Ticker string `json:"ticker"`
	Score  string `json:"ticker_sentiment_score"`
}

type alphaFeedItem struct {
	OverallScore    *float64               `json:"overall_sentiment_score"`
	Title           string                 `json:"title"`
	URL             string                 `json:"url"`
	Source          string                 `json:"source"`
	Summary         string                 `json:"summary"`
	TimePublished   string                 `json:"time_published"`
	TickerSentiment []alphaTickerSentiment `json:"ticker_sentiment"`
}

func alphaTicker(q models.Query) string {
	if q.IsCrypto() {
		return "CRYPTO:" + q.Symbol
	}
	return q.Symbol
}

func (a *AlphaVantageAdapter) Fetch(ctx context.Context, q models.Query) ([]models.Article, error) {
	ticker := alphaTicker(q)

	params := url.Values{}
	params.Set("function", "NEWS_SENTIMENT")
	params.Set("tickers", ticker)
	params.Set("apikey", a.apiKey)

	body, err := getBody(ctx, a.client, a.Name(), a.baseURL+"/query?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	raw, err := DecodeEnvelope(body)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		// Rate-limit and error notices come back as 200 objects without a feed
		logger.Warn("Alpha Vantage returned no feed",
			zap.String("ticker", ticker),
		)
	}

	items, skipped := decodeItems[alphaFeedItem](raw)
	articles := make([]models.Article, 0, len(items))
	for _, item := range items {
		published, _ := ParseTimestamp(item.TimePublished)
		articles = append(articles, models.Article{
			Title:             strings.TrimSpace(item.Title),
			URL:               strings.TrimSpace(item.URL),
			Source:            item.Source,
			Summary:           cleanText(item.Summary),
			PublishedAt:       published,
			Provider:          a.Name(),
			ProviderSentiment: alphaSentiment(item, ticker),
		})
	}

	logger.Debug("fetched Alpha Vantage news",
		zap.String("ticker", ticker),
		zap.Int("count", len(articles)),
		zap.Int("skipped", skipped),
	)

	return articles, nil
}

// alphaSentiment prefers the ticker-specific score over the overall one
func alphaSentiment(item alphaFeedItem, ticker string) *models.ProviderSentiment {
	for _, ts := range item.TickerSentiment {
		if !strings.EqualFold(ts.Ticker, ticker) {
			continue
		}
		score, err := decimal.NewFromString(strings.TrimSpace(ts.Score))
		if err != nil {
			break
		}
		return &models.ProviderSentiment{Value: score.InexactFloat64(), Bound: alphaSentimentBound}
	}

	if item.OverallScore != nil {
		return &models.ProviderSentiment{Value: *item.OverallScore, Bound: alphaSentimentBound}
	}

	return nil
}
