package news

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/news-sentiment/pkg/logger"
	"github.com/selivandex/news-sentiment/pkg/models"
)

const defaultRetryDelay = 300 * time.Millisecond

// retryAdapter wraps an Adapter with exponential backoff.
// Adapters themselves never retry.
type retryAdapter struct {
	Adapter
	attempts  int
	baseDelay time.Duration
}

// WithRetry wraps an adapter so transient failures are retried.
// attempts <= 1 returns the adapter unchanged.
func WithRetry(a Adapter, attempts int, baseDelay time.Duration) Adapter {
	if attempts <= 1 {
		return a
	}
	if baseDelay <= 0 {
		baseDelay = defaultRetryDelay
	}
	return &retryAdapter{
		Adapter:   a,
		attempts:  attempts,
		baseDelay: baseDelay,
	}
}

func (r *retryAdapter) Fetch(ctx context.Context, q models.Query) ([]models.Article, error) {
	var lastErr error
	for attempt := 0; attempt < r.attempts; attempt++ {
		articles, err := r.Adapter.Fetch(ctx, q)
		if err == nil {
			return articles, nil
		}
		lastErr = err

		if !isRetryable(err) || attempt == r.attempts-1 {
			break
		}

		delay := r.baseDelay << attempt
		logger.Warn("adapter request failed, retrying",
			zap.String("adapter", r.Name()),
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", r.attempts),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	return nil, fmt.Errorf("%s failed after retries: %w", r.Name(), lastErr)
}

// isRetryable reports whether err is a transient transport or upstream fault
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrUnexpectedPayload) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Retryable()
	}

	return true
}
