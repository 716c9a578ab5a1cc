package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/selivandex/news-sentiment/internal/adapters/config"
	"github.com/selivandex/news-sentiment/internal/adapters/news"
	"github.com/selivandex/news-sentiment/internal/aggregator"
	"github.com/selivandex/news-sentiment/internal/ranking"
	"github.com/selivandex/news-sentiment/internal/sentiment"
	"github.com/selivandex/news-sentiment/internal/summary"
	"github.com/selivandex/news-sentiment/pkg/logger"
	"github.com/selivandex/news-sentiment/pkg/models"
)

var (
	// ErrUpstreamUnavailable means every adapter failed, so there is nothing to report
	ErrUpstreamUnavailable = errors.New("all news sources failed")

	// ErrInternal wraps an unexpected fault inside the pipeline
	ErrInternal = errors.New("internal pipeline error")
)

const defaultAdapterTimeout = 8 * time.Second

// Request is one pipeline invocation
type Request struct {
	PriceChange *decimal.Decimal // optional, enables the correlation note
	Query       models.Query
}

// Options tunes the orchestrator
type Options struct {
	Limit          int
	AdapterTimeout time.Duration
}

// Orchestrator fans out to the adapters and drives aggregation, scoring,
// selection and synthesis. It holds only read-only collaborators and is
// safe for concurrent use.
type Orchestrator struct {
	now        func() time.Time
	aggregator *aggregator.Aggregator
	scorer     *sentiment.Scorer
	adapters   []news.Adapter
	limit      int
	timeout    time.Duration
}

// New creates new orchestrator. Adapter order is the registration order.
func New(adapters []news.Adapter, agg *aggregator.Aggregator, scorer *sentiment.Scorer, opts Options) *Orchestrator {
	if opts.Limit <= 0 {
		opts.Limit = ranking.DefaultLimit
	}
	if opts.AdapterTimeout <= 0 {
		opts.AdapterTimeout = defaultAdapterTimeout
	}
	if scorer == nil {
		scorer = sentiment.NewScorer(nil)
	}

	return &Orchestrator{
		now:        time.Now,
		aggregator: agg,
		scorer:     scorer,
		adapters:   adapters,
		limit:      opts.Limit,
		timeout:    opts.AdapterTimeout,
	}
}

// NewFromConfig wires the orchestrator from configuration
func NewFromConfig(cfg *config.Config, adapters []news.Adapter) (*Orchestrator, error) {
	lexicon := sentiment.DefaultLexicon()
	if cfg.News.LexiconFile != "" {
		loaded, err := sentiment.LoadLexicon(cfg.News.LexiconFile)
		if err != nil {
			return nil, err
		}
		lexicon = loaded
	}

	logger.Info("sentiment lexicon loaded",
		zap.String("version", lexicon.Version),
		zap.Int("positive", len(lexicon.Positive)),
		zap.Int("negative", len(lexicon.Negative)),
	)

	return New(
		adapters,
		aggregator.NewFromConfig(cfg.News),
		sentiment.NewScorer(sentiment.NewAnalyzer(lexicon)),
		Options{Limit: cfg.News.ResultLimit, AdapterTimeout: cfg.News.AdapterTimeout},
	), nil
}

// Run executes the pipeline for one request
func (o *Orchestrator) Run(ctx context.Context, req Request) (*models.AggregateResult, error) {
	exec := newExecution(req.Query)
	return o.execute(ctx, exec, req)
}

func (o *Orchestrator) execute(ctx context.Context, exec *execution, req Request) (result *models.AggregateResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			exec.advance(StateFailed)
			logger.Error("pipeline panic",
				zap.String("symbol", req.Query.Symbol),
				zap.Any("panic", r),
			)
			result, err = nil, fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	q := req.Query

	eligible := o.eligibleAdapters(q.Class)
	if len(eligible) == 0 {
		exec.advance(StateFailed)
		return nil, fmt.Errorf("%w: no source supports %s assets", ErrUpstreamUnavailable, q.Class)
	}

	exec.advance(StateDispatched)
	outcomes := o.fanOut(ctx, eligible, q)

	reports, failed := o.report(q, outcomes)
	if failed == len(outcomes) {
		exec.advance(StateFailed)
		logger.Error("every news source failed",
			zap.String("symbol", q.Symbol),
			zap.Int("sources", len(outcomes)),
		)
		return nil, ErrUpstreamUnavailable
	}
	if failed > 0 {
		exec.advance(StatePartialFailure)
	} else {
		exec.advance(StateAllFulfilled)
	}

	merged := o.aggregator.Merge(outcomes, q)
	exec.advance(StateAggregated)

	scored := o.scorer.Annotate(merged)
	exec.advance(StateScored)

	selected := ranking.Select(scored, o.limit)
	exec.advance(StateSelected)

	score := sentiment.Aggregate(selected)
	if len(selected) == 0 {
		score = models.NeutralScore
	}
	mood := models.MoodFromScore(score)

	result = &models.AggregateResult{
		GeneratedAt:      o.now().UTC(),
		Asset:            q.Symbol,
		AssetClass:       q.Class,
		IsCrypto:         q.IsCrypto(),
		SentimentScore:   score,
		Mood:             mood,
		Summary:          summary.Explain(q.Symbol, selected, score, mood),
		PriceCorrelation: summary.Correlate(req.PriceChange, score),
		Articles:         selected,
		Sources:          reports,
	}
	exec.advance(StateDone)

	logger.Info("news digest ready",
		zap.String("symbol", q.Symbol),
		zap.Int("score", score),
		zap.String("mood", string(mood)),
		zap.Int("articles", len(selected)),
		zap.Int("failed_sources", failed),
	)

	return result, nil
}

func (o *Orchestrator) eligibleAdapters(class models.AssetClass) []news.Adapter {
	eligible := make([]news.Adapter, 0, len(o.adapters))
	for _, a := range o.adapters {
		if a.Supports(class) {
			eligible = append(eligible, a)
		}
	}
	return eligible
}

// fanOut calls every adapter concurrently with its own timeout and waits for all.
// Each goroutine owns one slot, so outcomes keep registration order. Failures are
// settled into the slot's Outcome and never returned to the group, so a failing
// adapter cannot cancel or short-circuit its siblings.
func (o *Orchestrator) fanOut(ctx context.Context, adapters []news.Adapter, q models.Query) []news.Outcome {
	outcomes := make([]news.Outcome, len(adapters))

	var g errgroup.Group
	for i, a := range adapters {
		g.Go(func() error {
			actx, cancel := context.WithTimeout(ctx, o.timeout)
			defer cancel()

			outcomes[i] = news.Run(actx, a, q)
			return nil
		})
	}
	_ = g.Wait() // always nil, see above

	return outcomes
}

func (o *Orchestrator) report(q models.Query, outcomes []news.Outcome) ([]models.SourceReport, int) {
	reports := make([]models.SourceReport, 0, len(outcomes))
	failed := 0

	for _, out := range outcomes {
		r := models.SourceReport{Name: out.Adapter, Articles: len(out.Articles), Status: models.SourceFulfilled}
		if !out.Fulfilled() {
			failed++
			r.Status = models.SourceFailed
			r.Articles = 0
			r.Error = out.Err.Error()

			logger.Warn("news source failed",
				zap.String("adapter", out.Adapter),
				zap.String("symbol", q.Symbol),
				zap.Error(out.Err),
			)
		}
		reports = append(reports, r)
	}

	return reports, failed
}
