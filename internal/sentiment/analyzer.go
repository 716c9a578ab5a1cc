package sentiment

import (
	"strings"
	"unicode"
)

// inflections are stripped when a token is not in the lexicon as-is,
// so "surges", "dropped" and "beating" hit their stems
var inflections = []string{"ing", "ed", "es", "s", "d"}

// Analyzer performs keyword-based sentiment analysis
type Analyzer struct {
	lexicon *Lexicon
}

// NewAnalyzer creates new sentiment analyzer; nil uses the default lexicon
func NewAnalyzer(lexicon *Lexicon) *Analyzer {
	if lexicon == nil {
		lexicon = DefaultLexicon()
	}
	return &Analyzer{lexicon: lexicon}
}

// Version returns the lexicon version in use
func (a *Analyzer) Version() string {
	return a.lexicon.Version
}

// AnalyzeSentiment returns a score in [-1.0, 1.0] and the number of keyword hits.
// The score is (positive weight - negative weight) / norm, clamped.
func (a *Analyzer) AnalyzeSentiment(text string) (float64, int) {
	if text == "" {
		return 0.0, 0
	}

	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var score float64
	matchCount := 0

	for _, word := range words {
		if weight, ok := a.lookup(a.lexicon.Positive, word); ok {
			score += weight
			matchCount++
		}

		if weight, ok := a.lookup(a.lexicon.Negative, word); ok {
			score -= weight
			matchCount++
		}
	}

	if matchCount == 0 {
		return 0.0, 0
	}

	return clamp(score/a.lexicon.Norm, -1.0, 1.0), matchCount
}

func (a *Analyzer) lookup(words map[string]float64, word string) (float64, bool) {
	if weight, ok := words[word]; ok {
		return weight, true
	}

	for _, suffix := range inflections {
		stem, found := strings.CutSuffix(word, suffix)
		if !found || len(stem) < 3 {
			continue
		}
		if weight, ok := words[stem]; ok {
			return weight, true
		}
	}

	return 0, false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
