package hub

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	internal_errors "github.com/no-thing-project/hub-frontend/shared/errors"
)

// RetryPolicy absorbs transient rate limiting: only 429 responses are
// retried, with deterministic exponential delays (base, 2x, 4x, ...) up to
// MaxRetries extra attempts. Everything else fails immediately.
type RetryPolicy struct {
	BaseDelay  time.Duration
	MaxRetries uint64
}

// DefaultRetryPolicy matches the documented backend rate-limit window:
// 1s, 2s, 4s, then give up.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{BaseDelay: time.Second, MaxRetries: 3}
}

func (p RetryPolicy) backoff(ctx context.Context) backoff.BackOffContext {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.BaseDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = p.BaseDelay << p.MaxRetries
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, p.MaxRetries), ctx)
}

// retryWithData runs op under the policy. A rate-limited failure that
// survives every retry is converted to the user-visible rate-limit-exceeded
// error; a canceled context aborts the wait and surfaces the context
// sentinel.
func retryWithData[T any](ctx context.Context, p RetryPolicy, op func() (T, error)) (T, error) {
	wrapped := func() (T, error) {
		v, err := op()
		if err != nil && internal_errors.Classify(err) != internal_errors.KindRateLimited {
			return v, backoff.Permanent(err)
		}
		return v, err
	}

	v, err := backoff.RetryWithData(wrapped, p.backoff(ctx))
	if err != nil && internal_errors.Classify(err) == internal_errors.KindRateLimited {
		return v, internal_errors.RateLimitExceeded()
	}
	return v, err
}

// retry is retryWithData for operations without a result.
func retry(ctx context.Context, p RetryPolicy, op func() error) error {
	_, err := retryWithData(ctx, p, func() (struct{}, error) {
		return struct{}{}, op()
	})
	return err
}
