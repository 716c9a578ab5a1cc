package summary

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/selivandex/news-sentiment/pkg/models"
)

func TestExplain_Empty(t *testing.T) {
	got := Explain("AAPL", nil, 90, models.MoodBullish)
	if got != "No significant news found for AAPL. Sentiment is neutral." {
		t.Errorf("Unexpected empty message %q", got)
	}
	if strings.Contains(got, "Bullish") {
		t.Error("Empty input must never produce a non-neutral verdict")
	}
}

func TestExplain_CitesLeadingArticle(t *testing.T) {
	selected := []models.Article{
		{Title: "Apple beats estimates", Source: "Reuters", URL: "a"},
		{Title: "Other", Source: "CNBC", URL: "b"},
	}

	got := Explain("AAPL", selected, 72, models.MoodBullish)
	for _, part := range []string{"Bullish", "AAPL", "72/100", "Reuters", `"Apple beats estimates"`, "optimistic"} {
		if !strings.Contains(got, part) {
			t.Errorf("Expected %q in %q", part, got)
		}
	}
	if strings.Contains(got, "CNBC") {
		t.Errorf("Only the leading article should be cited: %q", got)
	}
}

func TestExplain_FallsBackToProviderName(t *testing.T) {
	got := Explain("BTC", []models.Article{{Title: "t", URL: "u", Provider: "coindesk"}}, 30, models.MoodBearish)
	if !strings.Contains(got, "led by coindesk") || !strings.Contains(got, "worried") {
		t.Errorf("Unexpected explanation %q", got)
	}
}

func TestCorrelate(t *testing.T) {
	up := decimal.RequireFromString("2.5")
	down := decimal.RequireFromString("-1.2")
	flat := decimal.Zero

	tests := []struct {
		name  string
		price *decimal.Decimal
		score int
		want  string
	}{
		{name: "no price", price: nil, score: 80, want: NoPriceData},
		{name: "both positive", price: &up, score: 70, want: BothPositive},
		{name: "both negative", price: &down, score: 20, want: BothNegative},
		{name: "price up sentiment down", price: &up, score: 30, want: PriceUpSentDown},
		{name: "price down sentiment up", price: &down, score: 65, want: PriceDownSentUp},
		{name: "flat price neutral sentiment", price: &flat, score: 50, want: BothPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Correlate(tt.price, tt.score); got != tt.want {
				t.Errorf("Correlate() = %q, want %q", got, tt.want)
			}
		})
	}
}
