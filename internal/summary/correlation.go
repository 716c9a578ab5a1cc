package summary

import (
	"github.com/shopspring/decimal"

	"github.com/selivandex/news-sentiment/pkg/models"
)

// Correlation notes, one per price/sentiment direction pair
const (
	NoPriceData     = "No price data given."
	BothPositive    = "Price is rising and news sentiment is positive: the move is backed by the news."
	BothNegative    = "Price is falling and news sentiment is negative: the news supports the decline."
	PriceUpSentDown = "Price is rising while news sentiment is negative: the rally may lack support."
	PriceDownSentUp = "Price is falling while news sentiment is positive: the dip may not reflect the news."
)

// Correlate compares price direction with sentiment direction.
// A zero change counts as rising and a score of 50 as positive.
func Correlate(priceChange *decimal.Decimal, score int) string {
	if priceChange == nil {
		return NoPriceData
	}

	priceUp := !priceChange.IsNegative()
	sentimentUp := score >= models.NeutralScore

	switch {
	case priceUp && sentimentUp:
		return BothPositive
	case !priceUp && !sentimentUp:
		return BothNegative
	case priceUp:
		return PriceUpSentDown
	default:
		return PriceDownSentUp
	}
}
