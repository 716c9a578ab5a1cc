package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/selivandex/news-sentiment/pkg/logger"
	"github.com/selivandex/news-sentiment/pkg/models"
)

const newsAPIPageSize = 50

// NewsAPIAdapter searches the NewsAPI /v2/everything index
type NewsAPIAdapter struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

// NewNewsAPIAdapter creates new NewsAPI adapter
func NewNewsAPIAdapter(apiKey, baseURL string, client *http.Client) *NewsAPIAdapter {
	if client == nil {
		client = newHTTPClient()
	}
	return &NewsAPIAdapter{
		client:  client,
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (n *NewsAPIAdapter) Name() string {
	return "newsapi"
}

func (n *NewsAPIAdapter) Supports(models.AssetClass) bool {
	return true
}

type newsAPIItem struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// newsAPISearchTerm widens a stock ticker with the company name when known
func newsAPISearchTerm(q models.Query) string {
	if !q.IsCrypto() && q.Name != "" && !strings.EqualFold(q.Name, q.Symbol) {
		return fmt.Sprintf("%s OR %q", q.Symbol, q.Name)
	}
	return q.SearchTerm()
}

func (n *NewsAPIAdapter) Fetch(ctx context.Context, q models.Query) ([]models.Article, error) {
	params := url.Values{}
	params.Set("q", newsAPISearchTerm(q))
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", fmt.Sprintf("%d", newsAPIPageSize))

	header := http.Header{}
	header.Set("X-Api-Key", n.apiKey)

	body, err := getBody(ctx, n.client, n.Name(), n.baseURL+"/v2/everything?"+params.Encode(), header)
	if err != nil {
		return nil, err
	}

	raw, err := DecodeEnvelope(body)
	if err != nil {
		return nil, err
	}

	items, skipped := decodeItems[newsAPIItem](raw)
	articles := make([]models.Article, 0, len(items))
	for _, item := range items {
		published, _ := ParseTimestamp(item.PublishedAt)
		articles = append(articles, models.Article{
			Title:       strings.TrimSpace(item.Title),
			URL:         strings.TrimSpace(item.URL),
			Source:      item.Source.Name,
			Summary:     cleanText(item.Description),
			PublishedAt: published,
			Provider:    n.Name(),
		})
	}

	logger.Debug("fetched NewsAPI articles",
		zap.String("query", params.Get("q")),
		zap.Int("count", len(articles)),
		zap.Int("skipped", skipped),
	)

	return articles, nil
}
