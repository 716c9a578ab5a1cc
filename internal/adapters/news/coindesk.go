package news

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/selivandex/news-sentiment/pkg/logger"
	"github.com/selivandex/news-sentiment/pkg/models"
)

const coindeskFeedPath = "/arc/outboundfeeds/news/?outputType=json&size=%d"

const coindeskFeedSize = 40

// CoinDeskAdapter reads the CoinDesk outbound feed. The feed is not
// searchable, so relevance is left to the aggregator.
type CoinDeskAdapter struct {
	client  *http.Client
	baseURL string
}

// NewCoinDeskAdapter creates new CoinDesk adapter
func NewCoinDeskAdapter(baseURL string, client *http.Client) *CoinDeskAdapter {
	if client == nil {
		client = newHTTPClient()
	}
	return &CoinDeskAdapter{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (c *CoinDeskAdapter) Name() string {
	return "coindesk"
}

func (c *CoinDeskAdapter) Supports(class models.AssetClass) bool {
	return class == models.AssetCrypto
}

type coindeskStory struct {
	Type      string `json:"type"`
	Canonical string `json:"canonical_url"`
	Headlines struct {
		Basic string `json:"basic"`
	} `json:"headlines"`
	Description struct {
		Basic string `json:"basic"`
	} `json:"description"`
	DisplayDate string `json:"display_date"`
}

func (c *CoinDeskAdapter) Fetch(ctx context.Context, q models.Query) ([]models.Article, error) {
	body, err := getBody(ctx, c.client, c.Name(), c.baseURL+fmt.Sprintf(coindeskFeedPath, coindeskFeedSize), nil)
	if err != nil {
		return nil, err
	}

	raw, err := DecodeEnvelope(body)
	if err != nil {
		return nil, err
	}

	stories, skipped := decodeItems[coindeskStory](raw)
	articles := make([]models.Article, 0, len(stories))
	for _, story := range stories {
		// Skip non-story types
		if story.Type != "story" {
			continue
		}

		published, _ := ParseTimestamp(story.DisplayDate)
		articles = append(articles, models.Article{
			Title:       strings.TrimSpace(story.Headlines.Basic),
			URL:         c.absoluteURL(story.Canonical),
			Source:      "CoinDesk",
			Summary:     cleanText(story.Description.Basic),
			PublishedAt: published,
			Provider:    c.Name(),
		})
	}

	logger.Debug("fetched CoinDesk news",
		zap.String("symbol", q.Symbol),
		zap.Int("count", len(articles)),
		zap.Int("skipped", skipped),
	)

	return articles, nil
}

func (c *CoinDeskAdapter) absoluteURL(canonical string) string {
	canonical = strings.TrimSpace(canonical)
	if canonical == "" || strings.HasPrefix(canonical, "http://") || strings.HasPrefix(canonical, "https://") {
		return canonical
	}
	if !strings.HasPrefix(canonical, "/") {
		canonical = "/" + canonical
	}
	return c.baseURL + canonical
}
