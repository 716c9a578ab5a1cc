// Package aggregator merges adapter outcomes into one canonical,
// deduplicated and filtered article list.
package aggregator

import (
	"strings"

	"go.uber.org/zap"

	"github.com/selivandex/news-sentiment/internal/adapters/config"
	"github.com/selivandex/news-sentiment/internal/adapters/news"
	"github.com/selivandex/news-sentiment/pkg/logger"
	"github.com/selivandex/news-sentiment/pkg/models"
)

// Options configures the filters. All lists are read-only after New.
type Options struct {
	DenyDomains    []string
	TrustedSources []string
	RemovedTitles  []string
	EnglishOnly    bool
}

// Aggregator merges and filters articles from all adapters
type Aggregator struct {
	removed     map[string]struct{} // exact sentinel titles
	deny        []string
	trusted     []string
	englishOnly bool
}

// New creates new aggregator
func New(opts Options) *Aggregator {
	removed := make(map[string]struct{}, len(opts.RemovedTitles))
	for _, title := range opts.RemovedTitles {
		if title = strings.TrimSpace(title); title != "" {
			removed[title] = struct{}{}
		}
	}

	return &Aggregator{
		removed:     removed,
		deny:        normalizeDomains(opts.DenyDomains),
		trusted:     normalizeTrusted(opts.TrustedSources),
		englishOnly: opts.EnglishOnly,
	}
}

// NewFromConfig creates an aggregator from news configuration
func NewFromConfig(cfg config.NewsConfig) *Aggregator {
	return New(Options{
		DenyDomains:    cfg.DenyDomains,
		TrustedSources: cfg.TrustedSources,
		RemovedTitles:  cfg.RemovedTitles,
		EnglishOnly:    cfg.EnglishOnly,
	})
}

// Merge flattens fulfilled outcomes in registration order and applies,
// in sequence: structural filter, URL dedup, domain denylist, relevance
// (skipped when it would empty the set), the optional trust allowlist and
// finally the headline fold, so only surviving articles hide a repeat.
func (a *Aggregator) Merge(outcomes []news.Outcome, q models.Query) []models.Article {
	merged := Flatten(outcomes)
	total := len(merged)

	merged = a.structural(merged)
	afterStructural := len(merged)

	merged = Dedup(merged)
	afterDedup := len(merged)

	merged = a.denylisted(merged)
	afterDeny := len(merged)

	merged = a.relevant(merged, q)
	afterRelevance := len(merged)

	merged = a.trustedOnly(merged)
	afterTrust := len(merged)

	merged = FoldHeadlines(merged)

	logger.Debug("aggregated articles",
		zap.String("symbol", q.Symbol),
		zap.Int("total", total),
		zap.Int("structural", afterStructural),
		zap.Int("dedup", afterDedup),
		zap.Int("denylist", afterDeny),
		zap.Int("relevance", afterRelevance),
		zap.Int("trusted", afterTrust),
		zap.Int("final", len(merged)),
	)

	return merged
}

// Flatten concatenates articles of fulfilled outcomes in the given order
func Flatten(outcomes []news.Outcome) []models.Article {
	var articles []models.Article
	for _, o := range outcomes {
		if !o.Fulfilled() {
			continue
		}
		articles = append(articles, o.Articles...)
	}
	return articles
}

func (a *Aggregator) structural(articles []models.Article) []models.Article {
	kept := make([]models.Article, 0, len(articles))
	for _, article := range articles {
		if article.Title == "" || article.URL == "" {
			continue
		}
		if _, removed := a.removed[strings.TrimSpace(article.Title)]; removed {
			continue
		}
		if a.englishOnly && !isMostlyLatin(article.Title) {
			continue
		}
		kept = append(kept, article)
	}
	return kept
}

// Dedup keeps the first article per URL
func Dedup(articles []models.Article) []models.Article {
	seen := make(map[string]struct{}, len(articles))
	kept := make([]models.Article, 0, len(articles))

	for _, article := range articles {
		if _, dup := seen[article.URL]; dup {
			continue
		}
		seen[article.URL] = struct{}{}
		kept = append(kept, article)
	}

	return kept
}

// FoldHeadlines drops later articles that repeat an earlier headline verbatim
// (ignoring case and punctuation) under another URL
func FoldHeadlines(articles []models.Article) []models.Article {
	seen := make(map[string]struct{}, len(articles))
	kept := make([]models.Article, 0, len(articles))

	for _, article := range articles {
		key := normalizeTitle(article.Title)
		if key != "" {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}
		kept = append(kept, article)
	}

	return kept
}

func (a *Aggregator) denylisted(articles []models.Article) []models.Article {
	if len(a.deny) == 0 {
		return articles
	}

	kept := make([]models.Article, 0, len(articles))
	for _, article := range articles {
		if matchesDomain(hostOf(article.URL), a.deny) {
			continue
		}
		kept = append(kept, article)
	}
	return kept
}

func (a *Aggregator) relevant(articles []models.Article, q models.Query) []models.Article {
	keywords := q.Keywords()

	kept := make([]models.Article, 0, len(articles))
	for _, article := range articles {
		if mentionsAny(article.Title, keywords) || mentionsAny(article.Summary, keywords) {
			kept = append(kept, article)
		}
	}

	if len(kept) == 0 && len(articles) > 0 {
		// A loosely relevant digest beats an empty one
		logger.Info("relevance filter would drop every article, skipping it",
			zap.String("symbol", q.Symbol),
			zap.Int("articles", len(articles)),
		)
		return articles
	}

	return kept
}

func (a *Aggregator) trustedOnly(articles []models.Article) []models.Article {
	if len(a.trusted) == 0 {
		return articles
	}

	kept := make([]models.Article, 0, len(articles))
	for _, article := range articles {
		if a.isTrusted(article) {
			kept = append(kept, article)
		}
	}
	return kept
}
