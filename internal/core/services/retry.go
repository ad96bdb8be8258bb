package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/cenkalti/backoff/v5"
)

// RetryPolicy bounds the automatic retry of posting transactions that abort on contention.
type RetryPolicy struct {
	MaxRetries      uint
	InitialInterval time.Duration
	MaxInterval     time.Duration
	// AttemptTimeout caps every single transaction attempt. Zero disables it.
	AttemptTimeout time.Duration
}

// DefaultRetryPolicy returns the policy used when none is configured.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:      3,
		InitialInterval: 20 * time.Millisecond,
		MaxInterval:     250 * time.Millisecond,
		AttemptTimeout:  5 * time.Second,
	}
}

// run executes op until it succeeds, fails with a non-concurrency error, or the
// retries are used up. Only ErrConcurrency is retried.
func (p RetryPolicy) run(ctx context.Context, op func(ctx context.Context) error) error {
	b := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		b.MaxInterval = p.MaxInterval
	}

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attemptCtx := ctx
		if p.AttemptTimeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, p.AttemptTimeout)
			defer cancel()
		}

		err := op(attemptCtx)
		switch {
		case err == nil:
			return struct{}{}, nil
		case errors.Is(err, apperrors.ErrConcurrency):
			return struct{}{}, err
		case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
			// The attempt ran out of time while the caller is still waiting.
			return struct{}{}, fmt.Errorf("%w: attempt timed out: %v", apperrors.ErrConcurrency, err)
		default:
			return struct{}{}, backoff.Permanent(err)
		}
	}, backoff.WithBackOff(b), backoff.WithMaxTries(p.MaxRetries+1))
	return err
}
