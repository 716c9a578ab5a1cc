package ranking

import (
	"sort"

	"github.com/selivandex/news-sentiment/pkg/models"
)

// DefaultLimit is the digest size when none is configured
const DefaultLimit = 6

// Select orders articles by analysis quality, then recency, and keeps the first k.
// The sort is stable so equal keys keep aggregator order. k <= 0 means DefaultLimit.
func Select(articles []models.Article, k int) []models.Article {
	if k <= 0 {
		k = DefaultLimit
	}

	ranked := make([]models.Article, len(articles))
	copy(ranked, articles)

	sort.SliceStable(ranked, func(i, j int) bool {
		gi, gj := ranked[i].HasGenuineSignal(), ranked[j].HasGenuineSignal()
		if gi != gj {
			return gi
		}
		return ranked[i].PublishedAt.After(ranked[j].PublishedAt)
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}

	return ranked
}
