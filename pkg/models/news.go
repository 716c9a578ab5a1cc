package models

import "time"

// ProviderSentiment is a sentiment value in the provider's own scale.
// Bound is the magnitude the provider treats as maximally bullish or bearish.
type ProviderSentiment struct {
	Value float64 `json:"value"`
	Bound float64 `json:"bound"`
}

// SignalKind tells how an article's normalized sentiment was obtained
type SignalKind string

const (
	SignalProvider SignalKind = "provider"
	SignalLexicon  SignalKind = "lexicon"
	SignalDefault  SignalKind = "default" // nothing matched, neutral fallback
)

// Article is a canonical news item after provider normalization
type Article struct {
	PublishedAt         time.Time          `json:"publishedAt"`
	Title               string             `json:"title"`
	URL                 string             `json:"url"`
	Source              string             `json:"source"`
	Summary             string             `json:"summary,omitempty"`
	Provider            string             `json:"provider"`
	ProviderSentiment   *ProviderSentiment `json:"-"`
	NormalizedSentiment *float64           `json:"sentiment,omitempty"`
	Signal              SignalKind         `json:"signal,omitempty"`
}

// HasGenuineSignal reports whether sentiment came from real evidence
// rather than the neutral default
func (a *Article) HasGenuineSignal() bool {
	return a.Signal == SignalProvider || a.Signal == SignalLexicon
}

// Mood is the coarse label derived from an aggregate score
type Mood string

const (
	MoodBullish Mood = "Bullish"
	MoodBearish Mood = "Bearish"
	MoodNeutral Mood = "Neutral"
)

// Mood thresholds; scores strictly above/below them leave Neutral
const (
	BullishAbove = 60
	BearishBelow = 40
	NeutralScore = 50
)

// MoodFromScore maps a 0-100 score onto a mood
func MoodFromScore(score int) Mood {
	switch {
	case score > BullishAbove:
		return MoodBullish
	case score < BearishBelow:
		return MoodBearish
	default:
		return MoodNeutral
	}
}

// SourceStatus is the settled state of one adapter call
type SourceStatus string

const (
	SourceFulfilled SourceStatus = "fulfilled"
	SourceFailed    SourceStatus = "failed"
)

// SourceReport describes how one adapter contributed to a result
type SourceReport struct {
	Name     string       `json:"name"`
	Status   SourceStatus `json:"status"`
	Articles int          `json:"articles"`
	Error    string       `json:"error,omitempty"`
}

// AggregateResult is the pipeline output for one query
type AggregateResult struct {
	GeneratedAt      time.Time      `json:"generatedAt"`
	Asset            string         `json:"asset"`
	AssetClass       AssetClass     `json:"assetClass"`
	IsCrypto         bool           `json:"isCrypto"`
	Mood             Mood           `json:"mood"`
	Summary          string         `json:"summary"`
	PriceCorrelation string         `json:"priceCorrelation"`
	Articles         []Article      `json:"articles"`
	Sources          []SourceReport `json:"sources"`
	SentimentScore   int            `json:"sentimentScore"`
}
