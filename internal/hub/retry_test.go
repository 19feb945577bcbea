package hub

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internal_errors "github.com/no-thing-project/hub-frontend/shared/errors"
)

func testRetryPolicy() RetryPolicy {
	return RetryPolicy{BaseDelay: time.Millisecond, MaxRetries: 3}
}

func rateLimited() error {
	return &internal_errors.ErrorWithStatusCode{Message: "slow down", StatusCode: http.StatusTooManyRequests}
}

func TestRetryWithData(t *testing.T) {
	t.Run("succeeds first try", func(t *testing.T) {
		calls := 0
		v, err := retryWithData(context.Background(), testRetryPolicy(), func() (int, error) {
			calls++
			return 42, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 42, v)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries rate limiting until it clears", func(t *testing.T) {
		calls := 0
		v, err := retryWithData(context.Background(), testRetryPolicy(), func() (string, error) {
			calls++
			if calls < 3 {
				return "", rateLimited()
			}
			return "ok", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "ok", v)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max retries with rate limit error", func(t *testing.T) {
		calls := 0
		_, err := retryWithData(context.Background(), testRetryPolicy(), func() (int, error) {
			calls++
			return 0, rateLimited()
		})
		require.Error(t, err)
		assert.Equal(t, 4, calls, "initial attempt plus three retries")
		assert.Equal(t, internal_errors.KindRateLimited, internal_errors.Classify(err))
		assert.Contains(t, err.Error(), "rate limit exceeded")
	})

	t.Run("non rate limit errors fail immediately", func(t *testing.T) {
		calls := 0
		boom := errors.New("boom")
		_, err := retryWithData(context.Background(), testRetryPolicy(), func() (int, error) {
			calls++
			return 0, boom
		})
		require.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})

	t.Run("server errors are not retried either", func(t *testing.T) {
		calls := 0
		_, err := retryWithData(context.Background(), testRetryPolicy(), func() (int, error) {
			calls++
			return 0, &internal_errors.ErrorWithStatusCode{Message: "oops", StatusCode: http.StatusInternalServerError}
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("cancellation aborts the backoff wait", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		policy := RetryPolicy{BaseDelay: time.Minute, MaxRetries: 3}

		done := make(chan error, 1)
		go func() {
			_, err := retryWithData(ctx, policy, func() (int, error) {
				return 0, rateLimited()
			})
			done <- err
		}()

		cancel()
		select {
		case err := <-done:
			assert.Equal(t, internal_errors.KindCancelled, internal_errors.Classify(err))
		case <-time.After(5 * time.Second):
			t.Fatal("retry did not abort on cancellation")
		}
	})
}

func TestRetry(t *testing.T) {
	t.Run("propagates success and failure", func(t *testing.T) {
		require.NoError(t, retry(context.Background(), testRetryPolicy(), func() error { return nil }))

		boom := errors.New("boom")
		assert.ErrorIs(t, retry(context.Background(), testRetryPolicy(), func() error { return boom }), boom)
	})
}

func TestDefaultRetryPolicy(t *testing.T) {
	p := DefaultRetryPolicy()
	assert.Equal(t, time.Second, p.BaseDelay)
	assert.Equal(t, uint64(3), p.MaxRetries)
}
