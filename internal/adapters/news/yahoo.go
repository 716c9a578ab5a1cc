package news

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/selivandex/news-sentiment/pkg/logger"
	"github.com/selivandex/news-sentiment/pkg/models"
)

// YahooRSSAdapter reads the per-symbol Yahoo Finance headline RSS feed
type YahooRSSAdapter struct {
	client  *http.Client
	baseURL string
}

// NewYahooRSSAdapter creates new Yahoo Finance RSS adapter
func NewYahooRSSAdapter(baseURL string, client *http.Client) *YahooRSSAdapter {
	if client == nil {
		client = newHTTPClient()
	}
	return &YahooRSSAdapter{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (y *YahooRSSAdapter) Name() string {
	return "yahoo"
}

func (y *YahooRSSAdapter) Supports(models.AssetClass) bool {
	return true
}

func yahooSymbol(q models.Query) string {
	if q.IsCrypto() {
		return q.Symbol + "-USD"
	}
	return q.Symbol
}

func (y *YahooRSSAdapter) Fetch(ctx context.Context, q models.Query) ([]models.Article, error) {
	params := url.Values{}
	params.Set("s", yahooSymbol(q))
	params.Set("region", "US")
	params.Set("lang", "en-US")

	body, err := getBody(ctx, y.client, y.Name(), y.baseURL+"/rss/2.0/headline?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	// gofeed.Parser is not safe for concurrent use; build one per call
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", y.Name(), ErrUnexpectedPayload, err)
	}

	articles := make([]models.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		a := models.Article{
			Title:    strings.TrimSpace(item.Title),
			URL:      strings.TrimSpace(item.Link),
			Source:   "Yahoo Finance",
			Summary:  cleanText(item.Description),
			Provider: y.Name(),
		}
		if item.PublishedParsed != nil {
			a.PublishedAt = item.PublishedParsed.UTC()
		} else if t, ok := ParseTimestamp(item.Published); ok {
			a.PublishedAt = t
		}
		articles = append(articles, a)
	}

	logger.Debug("fetched Yahoo Finance RSS",
		zap.String("symbol", params.Get("s")),
		zap.Int("count", len(articles)),
	)

	return articles, nil
}
