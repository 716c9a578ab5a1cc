package news

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/news-sentiment/pkg/logger"
	"github.com/selivandex/news-sentiment/pkg/models"
)

// FinnhubAdapter fetches company news (stocks) or the crypto category feed
type FinnhubAdapter struct {
	now      func() time.Time
	client   *http.Client
	apiKey   string
	baseURL  string
	lookback time.Duration
}

// NewFinnhubAdapter creates new Finnhub adapter
func NewFinnhubAdapter(apiKey, baseURL string, lookback time.Duration, client *http.Client) *FinnhubAdapter {
	if client == nil {
		client = newHTTPClient()
	}
	return &FinnhubAdapter{
		now:      time.Now,
		client:   client,
		apiKey:   apiKey,
		baseURL:  strings.TrimRight(baseURL, "/"),
		lookback: lookback,
	}
}

func (f *FinnhubAdapter) Name() string {
	return "finnhub"
}

func (f *FinnhubAdapter) Supports(models.AssetClass) bool {
	return true
}

type finnhubItem struct {
	Headline string `json:"headline"`
	URL      string `json:"url"`
	Source   string `json:"source"`
	Summary  string `json:"summary"`
	Datetime int64  `json:"datetime"`
}

func (f *FinnhubAdapter) Fetch(ctx context.Context, q models.Query) ([]models.Article, error) {
	params := url.Values{}
	params.Set("token", f.apiKey)

	endpoint := "/company-news"
	if q.IsCrypto() {
		endpoint = "/news"
		params.Set("category", "crypto")
	} else {
		to := f.now().UTC()
		params.Set("symbol", q.Symbol)
		params.Set("from", to.Add(-f.lookback).Format("2006-01-02"))
		params.Set("to", to.Format("2006-01-02"))
	}

	body, err := getBody(ctx, f.client, f.Name(), f.baseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	raw, err := DecodeEnvelope(body)
	if err != nil {
		return nil, err
	}

	items, skipped := decodeItems[finnhubItem](raw)
	articles := make([]models.Article, 0, len(items))
	for _, item := range items {
		articles = append(articles, models.Article{
			Title:       strings.TrimSpace(item.Headline),
			URL:         strings.TrimSpace(item.URL),
			Source:      item.Source,
			Summary:     cleanText(item.Summary),
			PublishedAt: UnixTimestamp(item.Datetime),
			Provider:    f.Name(),
		})
	}

	logger.Debug("fetched Finnhub news",
		zap.String("symbol", q.Symbol),
		zap.Int("count", len(articles)),
		zap.Int("skipped", skipped),
	)

	return articles, nil
}
