package sentiment

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultLexiconVersion identifies the built-in word lists
const DefaultLexiconVersion = "2024.1"

// defaultNorm scales net keyword weight into [-1, 1]: two strong hits saturate
const defaultNorm = 2.0

// Lexicon holds weighted positive and negative keyword sets
type Lexicon struct {
	Positive map[string]float64 `yaml:"positive"`
	Negative map[string]float64 `yaml:"negative"`
	Version  string             `yaml:"version"`
	Norm     float64            `yaml:"norm"`
}

// DefaultLexicon returns the built-in market news lexicon
func DefaultLexicon() *Lexicon {
	return &Lexicon{
		Version:  DefaultLexiconVersion,
		Norm:     defaultNorm,
		Positive: buildPositiveWords(),
		Negative: buildNegativeWords(),
	}
}

// LoadLexicon reads a YAML lexicon file. Missing version and norm fall back to defaults.
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon: %w", err)
	}

	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon: %w", err)
	}

	if len(lex.Positive) == 0 || len(lex.Negative) == 0 {
		return nil, fmt.Errorf("lexicon %s must define positive and negative words", path)
	}
	if lex.Norm <= 0 {
		lex.Norm = defaultNorm
	}
	if lex.Version == "" {
		lex.Version = "custom"
	}

	lex.Positive = lowerKeys(lex.Positive)
	lex.Negative = lowerKeys(lex.Negative)

	return &lex, nil
}

func lowerKeys(words map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(words))
	for w, weight := range words {
		out[strings.ToLower(strings.TrimSpace(w))] = weight
	}
	return out
}

// buildPositiveWords returns positive keywords for stock and crypto news
func buildPositiveWords() map[string]float64 {
	return map[string]float64{
		// General positive
		"bullish":      1.0,
		"bull":         0.9,
		"rally":        0.9,
		"surge":        0.8,
		"soar":         0.8,
		"jump":         0.6,
		"gain":         0.6,
		"profit":       0.6,
		"beat":         0.7,
		"strong":       0.5,
		"record":       0.5,
		"rise":         0.5,
		"grow":         0.5,
		"growth":       0.5,
		"increase":     0.5,
		"positive":     0.5,
		"optimistic":   0.5,
		"outperform":   0.6,
		"upgrade":      0.6,
		"recovery":     0.5,
		"breakthrough": 0.6,
		"partnership":  0.5,
		"innovation":   0.5,
		"dividend":     0.4,
		"buyback":      0.5,

		// Crypto specific
		"adoption":      0.6,
		"halving":       0.6,
		"breakout":      0.7,
		"ath":           0.8, // all-time high
		"institutional": 0.5,
		"etf":           0.6,
		"approved":      0.6,
		"approval":      0.6,
		"accumulation":  0.5,
	}
}

// buildNegativeWords returns negative keywords for stock and crypto news
func buildNegativeWords() map[string]float64 {
	return map[string]float64{
		// General negative
		"bearish":     1.0,
		"bear":        0.9,
		"crash":       1.0,
		"plunge":      0.8,
		"slump":       0.7,
		"tumble":      0.7,
		"fall":        0.6,
		"drop":        0.6,
		"decline":     0.6,
		"loss":        0.7,
		"weak":        0.5,
		"miss":        0.6,
		"negative":    0.5,
		"pessimistic": 0.5,
		"downgrade":   0.6,
		"fear":        0.6,
		"panic":       0.8,
		"selloff":     0.7,
		"correction":  0.6,
		"layoff":      0.6,
		"recall":      0.5,
		"warning":     0.5,

		// Legal and security
		"hack":          1.0,
		"exploit":       1.0,
		"scam":          1.0,
		"fraud":         1.0,
		"lawsuit":       0.7,
		"probe":         0.6,
		"investigation": 0.6,
		"ban":           0.8,
		"crackdown":     0.7,
		"bankruptcy":    1.0,
		"default":       0.7,

		// Crypto specific
		"dump":         0.9,
		"rug":          1.0,
		"ponzi":        1.0,
		"liquidation":  0.8,
		"capitulation": 0.8,
		"fud":          0.7,
		"bubble":       0.6,
		"overvalued":   0.6,
	}
}
