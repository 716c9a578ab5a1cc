package models

import (
	"errors"
	"strings"
)

// ErrEmptyAsset is returned when a query is built from a blank asset string
var ErrEmptyAsset = errors.New("asset is required")

// AssetClass drives adapter endpoint selection and keyword expansion
type AssetClass string

const (
	AssetStock  AssetClass = "stock"
	AssetCrypto AssetClass = "crypto"
)

// cryptoNames maps known crypto tickers to the full name used in news search
var cryptoNames = map[string]string{
	"BTC":   "Bitcoin",
	"ETH":   "Ethereum",
	"SOL":   "Solana",
	"BNB":   "BNB",
	"MATIC": "Polygon",
	"ADA":   "Cardano",
	"UNI":   "Uniswap",
	"XRP":   "Ripple",
	"DOGE":  "Dogecoin",
	"AVAX":  "Avalanche",
	"ATOM":  "Cosmos",
	"DOT":   "Polkadot",
	"LINK":  "Chainlink",
	"LTC":   "Litecoin",
}

// stockNames maps popular stock tickers to company names for relevance matching
var stockNames = map[string]string{
	"AAPL":  "Apple",
	"MSFT":  "Microsoft",
	"GOOGL": "Alphabet",
	"GOOG":  "Alphabet",
	"AMZN":  "Amazon",
	"META":  "Meta",
	"TSLA":  "Tesla",
	"NVDA":  "Nvidia",
	"NFLX":  "Netflix",
	"AMD":   "AMD",
	"INTC":  "Intel",
	"JPM":   "JPMorgan",
	"DIS":   "Disney",
	"COIN":  "Coinbase",
}

// Query is the immutable input of one pipeline run
type Query struct {
	Symbol string     // upper-case ticker
	Name   string     // full asset name, empty when unknown
	Class  AssetClass // derived from the known ticker/name sets
}

// NewQuery normalizes a raw ticker or asset name into a Query.
// Known assets may be given by full name ("bitcoin" resolves to BTC, "apple" to AAPL).
// Tickers win over names; unknown input is taken as a stock ticker.
func NewQuery(raw string) (Query, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Query{}, ErrEmptyAsset
	}

	symbol := strings.ToUpper(raw)
	if name, ok := cryptoNames[symbol]; ok {
		return Query{Symbol: symbol, Name: name, Class: AssetCrypto}, nil
	}
	if ticker, ok := tickerByName(cryptoNames, raw); ok {
		return Query{Symbol: ticker, Name: cryptoNames[ticker], Class: AssetCrypto}, nil
	}

	if name, ok := stockNames[symbol]; ok {
		return Query{Symbol: symbol, Name: name, Class: AssetStock}, nil
	}
	if ticker, ok := tickerByName(stockNames, raw); ok {
		return Query{Symbol: ticker, Name: stockNames[ticker], Class: AssetStock}, nil
	}

	return Query{Symbol: symbol, Class: AssetStock}, nil
}

// tickerByName finds the ticker whose name equals raw, ignoring case.
// Shared names (GOOG, GOOGL) resolve to the shortest, then smallest, ticker.
func tickerByName(names map[string]string, raw string) (string, bool) {
	best := ""
	for ticker, name := range names {
		if !strings.EqualFold(name, raw) {
			continue
		}
		if best == "" || len(ticker) < len(best) || (len(ticker) == len(best) && ticker < best) {
			best = ticker
		}
	}
	return best, best != ""
}

// IsCrypto reports whether the query targets a crypto asset
func (q Query) IsCrypto() bool {
	return q.Class == AssetCrypto
}

// SearchTerm returns the free-text term for keyword-search providers.
// Crypto uses the lower-case full name since bare tickers often return nothing.
func (q Query) SearchTerm() string {
	if q.IsCrypto() && q.Name != "" {
		return strings.ToLower(q.Name)
	}
	return q.Symbol
}

// Keywords returns lower-case terms an article must mention to be relevant
func (q Query) Keywords() []string {
	keywords := []string{strings.ToLower(q.Symbol)}
	if q.Name != "" && !strings.EqualFold(q.Name, q.Symbol) {
		keywords = append(keywords, strings.ToLower(q.Name))
	}
	return keywords
}
