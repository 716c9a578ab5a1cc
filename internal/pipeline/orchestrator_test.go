package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/selivandex/news-sentiment/internal/adapters/news"
	"github.com/selivandex/news-sentiment/internal/aggregator"
	"github.com/selivandex/news-sentiment/internal/sentiment"
	"github.com/selivandex/news-sentiment/internal/summary"
	"github.com/selivandex/news-sentiment/pkg/models"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type fakeAdapter struct {
	err      error
	name     string
	only     models.AssetClass // empty supports every class
	articles []models.Article
	delay    time.Duration
	calls    atomic.Int32
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) Supports(class models.AssetClass) bool {
	return f.only == "" || f.only == class
}

func (f *fakeAdapter) Fetch(ctx context.Context, q models.Query) ([]models.Article, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.delay):
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.articles, nil
}

func newTestOrchestrator(timeout time.Duration, adapters ...news.Adapter) *Orchestrator {
	agg := aggregator.New(aggregator.Options{
		DenyDomains:   []string{"reddit.com"},
		RemovedTitles: []string{"[Removed]"},
		EnglishOnly:   true,
	})
	o := New(adapters, agg, sentiment.NewScorer(nil), Options{AdapterTimeout: timeout})
	o.now = func() time.Time { return t0 }
	return o
}

func request(t *testing.T, raw string) Request {
	t.Helper()
	q, err := models.NewQuery(raw)
	if err != nil {
		t.Fatalf("NewQuery: %v", err)
	}
	return Request{Query: q}
}

func TestRun_ScoresRanksAndSummarizes(t *testing.T) {
	scored := &fakeAdapter{name: "alphavantage", articles: []models.Article{{
		Title:             "Apple beats earnings expectations",
		URL:               "https://reuters.com/apple-earnings",
		Source:            "Reuters",
		PublishedAt:       t0.Add(-2 * time.Hour),
		ProviderSentiment: &models.ProviderSentiment{Value: 0.35, Bound: 0.35},
	}}}
	plain := &fakeAdapter{name: "newsapi", articles: []models.Article{{
		Title:       "Apple opens new store in Mumbai",
		URL:         "https://bloomberg.com/apple-store",
		Source:      "Bloomberg",
		PublishedAt: t0.Add(-time.Hour),
	}}}

	o := newTestOrchestrator(time.Second, scored, plain)
	res, err := o.Run(context.Background(), request(t, "aapl"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Asset != "AAPL" || res.AssetClass != models.AssetStock || res.IsCrypto {
		t.Errorf("Unexpected asset fields %q %q %v", res.Asset, res.AssetClass, res.IsCrypto)
	}
	if !res.GeneratedAt.Equal(t0) {
		t.Errorf("Expected generatedAt %v, got %v", t0, res.GeneratedAt)
	}
	if len(res.Articles) != 2 {
		t.Fatalf("Expected 2 articles, got %d", len(res.Articles))
	}
	// provider-scored article leads despite being older
	if res.Articles[0].Source != "Reuters" || res.Articles[1].Signal != models.SignalDefault {
		t.Errorf("Unexpected ranking %+v", res.Articles)
	}
	if res.SentimentScore != 75 || res.Mood != models.MoodBullish {
		t.Errorf("Expected 75 Bullish, got %d %s", res.SentimentScore, res.Mood)
	}
	if !strings.HasPrefix(res.Summary, "Bullish sentiment for AAPL (score 75/100), led by Reuters") {
		t.Errorf("Unexpected summary %q", res.Summary)
	}
	if res.PriceCorrelation != summary.NoPriceData {
		t.Errorf("Expected no price data note, got %q", res.PriceCorrelation)
	}
	if len(res.Sources) != 2 || res.Sources[0].Name != "alphavantage" || res.Sources[0].Articles != 1 {
		t.Errorf("Unexpected sources %+v", res.Sources)
	}
}

func TestRun_PriceCorrelation(t *testing.T) {
	a := &fakeAdapter{name: "a", articles: []models.Article{{
		Title:             "Apple stock slides",
		URL:               "https://a.com/1",
		PublishedAt:       t0,
		ProviderSentiment: &models.ProviderSentiment{Value: -1, Bound: 1},
	}}}
	o := newTestOrchestrator(time.Second, a)

	req := request(t, "AAPL")
	change := decimal.RequireFromString("1.5")
	req.PriceChange = &change

	res, err := o.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.SentimentScore != 0 || res.Mood != models.MoodBearish {
		t.Errorf("Expected 0 Bearish, got %d %s", res.SentimentScore, res.Mood)
	}
	if res.PriceCorrelation != summary.PriceUpSentDown {
		t.Errorf("Expected %q, got %q", summary.PriceUpSentDown, res.PriceCorrelation)
	}
}

func TestRun_AllAdaptersFail(t *testing.T) {
	o := newTestOrchestrator(time.Second,
		&fakeAdapter{name: "a", err: errors.New("connection refused")},
		&fakeAdapter{name: "b", err: &news.StatusError{Provider: "b", Code: 503}},
	)

	res, err := o.Run(context.Background(), request(t, "AAPL"))
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("Expected ErrUpstreamUnavailable, got %v", err)
	}
	if res != nil {
		t.Errorf("Expected no result, got %+v", res)
	}
}

func TestRun_NoAdapterSupportsClass(t *testing.T) {
	crypto := &fakeAdapter{name: "coindesk", only: models.AssetCrypto}
	o := newTestOrchestrator(time.Second, crypto)

	_, err := o.Run(context.Background(), request(t, "AAPL"))
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("Expected ErrUpstreamUnavailable, got %v", err)
	}
	if crypto.calls.Load() != 0 {
		t.Errorf("Unsupported adapter should not be called")
	}
}

func TestRun_PartialFailure(t *testing.T) {
	ok := &fakeAdapter{name: "ok", articles: []models.Article{
		{Title: "Bitcoin steadies near highs", URL: "https://a.com/1", PublishedAt: t0},
	}}
	bad := &fakeAdapter{name: "bad", err: errors.New("HTTP 500")}
	skipped := &fakeAdapter{name: "stocks-only", only: models.AssetStock}

	o := newTestOrchestrator(time.Second, bad, skipped, ok)
	res, err := o.Run(context.Background(), request(t, "BTC"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !res.IsCrypto || res.AssetClass != models.AssetCrypto {
		t.Errorf("Expected crypto result, got %+v", res)
	}
	if len(res.Articles) != 1 {
		t.Errorf("Expected 1 article, got %d", len(res.Articles))
	}
	if skipped.calls.Load() != 0 {
		t.Errorf("Stock-only adapter should not be dispatched for crypto")
	}

	if len(res.Sources) != 2 {
		t.Fatalf("Expected 2 source reports, got %+v", res.Sources)
	}
	if res.Sources[0].Status != models.SourceFailed || res.Sources[0].Error == "" {
		t.Errorf("Expected failed report first, got %+v", res.Sources[0])
	}
	if res.Sources[1].Status != models.SourceFulfilled || res.Sources[1].Articles != 1 {
		t.Errorf("Expected fulfilled report, got %+v", res.Sources[1])
	}
}

func TestRun_EmptyNewsIsNeutral(t *testing.T) {
	o := newTestOrchestrator(time.Second,
		&fakeAdapter{name: "a"},
		&fakeAdapter{name: "b", articles: []models.Article{{Title: "[Removed]", URL: "https://removed.com"}}},
	)

	res, err := o.Run(context.Background(), request(t, "AAPL"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.SentimentScore != models.NeutralScore || res.Mood != models.MoodNeutral {
		t.Errorf("Expected neutral, got %d %s", res.SentimentScore, res.Mood)
	}
	if res.Articles == nil || len(res.Articles) != 0 {
		t.Errorf("Expected empty non-nil articles, got %#v", res.Articles)
	}
	if res.Summary != "No significant news found for AAPL. Sentiment is neutral." {
		t.Errorf("Unexpected summary %q", res.Summary)
	}
}

func TestRun_SlowAdapterTimesOut(t *testing.T) {
	slow := &fakeAdapter{name: "slow", delay: 2 * time.Second, articles: []models.Article{
		{Title: "Apple late story", URL: "https://slow.com/1", PublishedAt: t0},
	}}
	fast := &fakeAdapter{name: "fast", articles: []models.Article{
		{Title: "Apple quick story", URL: "https://fast.com/1", PublishedAt: t0},
	}}

	o := newTestOrchestrator(50*time.Millisecond, slow, fast)

	start := time.Now()
	res, err := o.Run(context.Background(), request(t, "AAPL"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Run waited %v for a timed-out adapter", elapsed)
	}

	if len(res.Articles) != 1 || res.Articles[0].URL != "https://fast.com/1" {
		t.Errorf("Expected only the fast article, got %+v", res.Articles)
	}
	if res.Sources[0].Status != models.SourceFailed {
		t.Errorf("Expected slow adapter reported failed, got %+v", res.Sources[0])
	}
}

func TestRun_MergeFollowsRegistrationOrder(t *testing.T) {
	// first adapter finishes last but still wins the duplicate
	first := &fakeAdapter{name: "first", delay: 30 * time.Millisecond, articles: []models.Article{
		{Title: "Apple first version", URL: "https://same.com/story", PublishedAt: t0},
	}}
	second := &fakeAdapter{name: "second", articles: []models.Article{
		{Title: "Apple second version", URL: "https://same.com/story", PublishedAt: t0},
	}}

	o := newTestOrchestrator(time.Second, first, second)
	res, err := o.Run(context.Background(), request(t, "AAPL"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Articles) != 1 || res.Articles[0].Title != "Apple first version" {
		t.Errorf("Expected first registered copy, got %+v", res.Articles)
	}
}

func TestRun_BoundedOutput(t *testing.T) {
	articles := make([]models.Article, 20)
	for i := range articles {
		articles[i] = models.Article{
			Title:       fmt.Sprintf("Apple headline %d", i),
			URL:         fmt.Sprintf("https://a.com/%d", i),
			PublishedAt: t0.Add(time.Duration(i) * time.Minute),
		}
	}

	o := newTestOrchestrator(time.Second, &fakeAdapter{name: "bulk", articles: articles})
	res, err := o.Run(context.Background(), request(t, "AAPL"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Articles) != 6 {
		t.Fatalf("Expected 6 articles, got %d", len(res.Articles))
	}
	if res.Articles[0].URL != "https://a.com/19" {
		t.Errorf("Expected newest first, got %s", res.Articles[0].URL)
	}
}

func TestRun_PanickingAdapterIsFailure(t *testing.T) {
	o := newTestOrchestrator(time.Second,
		panicAdapter{},
		&fakeAdapter{name: "ok", articles: []models.Article{{Title: "Apple news", URL: "https://a.com/1", PublishedAt: t0}}},
	)

	res, err := o.Run(context.Background(), request(t, "AAPL"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Sources[0].Status != models.SourceFailed {
		t.Errorf("Expected panic reported as failure, got %+v", res.Sources[0])
	}
}

func TestExecute_StateTrail(t *testing.T) {
	tests := []struct {
		name     string
		adapters []news.Adapter
		want     []State
	}{
		{
			name: "all fulfilled",
			adapters: []news.Adapter{
				&fakeAdapter{name: "a", articles: []models.Article{{Title: "Apple", URL: "https://a.com", PublishedAt: t0}}},
			},
			want: []State{StateIdle, StateDispatched, StateAllFulfilled, StateAggregated, StateScored, StateSelected, StateDone},
		},
		{
			name: "partial failure",
			adapters: []news.Adapter{
				&fakeAdapter{name: "a", err: errors.New("down")},
				&fakeAdapter{name: "b"},
			},
			want: []State{StateIdle, StateDispatched, StatePartialFailure, StateAggregated, StateScored, StateSelected, StateDone},
		},
		{
			name:     "all failed",
			adapters: []news.Adapter{&fakeAdapter{name: "a", err: errors.New("down")}},
			want:     []State{StateIdle, StateDispatched, StateFailed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestOrchestrator(time.Second, tt.adapters...)
			req := request(t, "AAPL")
			exec := newExecution(req.Query)

			_, _ = o.execute(context.Background(), exec, req)

			if fmt.Sprint(exec.trail) != fmt.Sprint(tt.want) {
				t.Errorf("Expected trail %v, got %v", tt.want, exec.trail)
			}
		})
	}
}

func TestRun_ConcurrentRequests(t *testing.T) {
	a := &fakeAdapter{name: "a", articles: []models.Article{
		{Title: "Apple and Bitcoin headlines", URL: "https://a.com/1", PublishedAt: t0},
	}}
	o := newTestOrchestrator(time.Second, a)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			raw := "AAPL"
			if i%2 == 1 {
				raw = "BTC"
			}
			q, _ := models.NewQuery(raw)
			_, errs[i] = o.Run(context.Background(), Request{Query: q})
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("request %d: %v", i, err)
		}
	}
	if a.calls.Load() != 8 {
		t.Errorf("Expected 8 calls, got %d", a.calls.Load())
	}
}

type panicAdapter struct{}

func (panicAdapter) Name() string                    { return "panicky" }
func (panicAdapter) Supports(models.AssetClass) bool { return true }
func (panicAdapter) Fetch(context.Context, models.Query) ([]models.Article, error) {
	panic("nil map")
}

func TestFanOut_FailureDoesNotCancelSiblings(t *testing.T) {
	failing := &fakeAdapter{name: "failing", err: errors.New("HTTP 502")}
	slow := &fakeAdapter{name: "slow", delay: 40 * time.Millisecond, articles: []models.Article{
		{Title: "Apple late but fine", URL: "https://a.com/1", PublishedAt: t0},
	}}

	o := newTestOrchestrator(time.Second, failing, slow)
	outcomes := o.fanOut(context.Background(), []news.Adapter{failing, slow}, request(t, "AAPL").Query)

	if len(outcomes) != 2 {
		t.Fatalf("Expected 2 outcomes, got %d", len(outcomes))
	}
	if outcomes[0].Fulfilled() || outcomes[0].Adapter != "failing" {
		t.Errorf("Expected failed first slot, got %+v", outcomes[0])
	}
	if !outcomes[1].Fulfilled() || len(outcomes[1].Articles) != 1 {
		t.Errorf("Expected slow sibling to complete, got %+v", outcomes[1])
	}
}
