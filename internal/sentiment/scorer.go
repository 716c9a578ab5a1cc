package sentiment

import (
	"math"

	"github.com/selivandex/news-sentiment/pkg/models"
)

// Scorer assigns per-article signals and aggregates them into a 0-100 score
type Scorer struct {
	analyzer *Analyzer
}

// NewScorer creates new scorer
func NewScorer(analyzer *Analyzer) *Scorer {
	if analyzer == nil {
		analyzer = NewAnalyzer(nil)
	}
	return &Scorer{analyzer: analyzer}
}

// Score annotates every article and returns the aggregate over all of them
func (s *Scorer) Score(articles []models.Article) ([]models.Article, int) {
	scored := s.Annotate(articles)
	return scored, Aggregate(scored)
}

// Annotate returns a copy of articles with NormalizedSentiment and Signal set.
// Provider sentiment wins over the lexicon when present.
func (s *Scorer) Annotate(articles []models.Article) []models.Article {
	scored := make([]models.Article, len(articles))
	for i, a := range articles {
		signal, kind := s.signal(a)
		a.NormalizedSentiment = &signal
		a.Signal = kind
		scored[i] = a
	}
	return scored
}

func (s *Scorer) signal(a models.Article) (float64, models.SignalKind) {
	if a.ProviderSentiment != nil {
		return NormalizeProvider(*a.ProviderSentiment), models.SignalProvider
	}

	score, hits := s.analyzer.AnalyzeSentiment(a.Title + " " + a.Summary)
	if hits == 0 {
		return 0.0, models.SignalDefault
	}
	return score, models.SignalLexicon
}

// NormalizeProvider maps a provider value linearly from [-Bound, Bound] onto [-1, 1]
func NormalizeProvider(ps models.ProviderSentiment) float64 {
	if ps.Bound <= 0 {
		return clamp(ps.Value, -1.0, 1.0)
	}
	return clamp(ps.Value/ps.Bound, -1.0, 1.0)
}

// Aggregate maps the mean signal onto 0-100: all -1 gives 0, all neutral 50, all +1 100.
// No articles yields the neutral baseline.
func Aggregate(articles []models.Article) int {
	n := len(articles)
	if n == 0 {
		return models.NeutralScore
	}

	var sum float64
	for _, a := range articles {
		if a.NormalizedSentiment != nil {
			sum += *a.NormalizedSentiment
		}
	}

	score := int(math.Round((sum + float64(n)) / float64(2*n) * 100))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
