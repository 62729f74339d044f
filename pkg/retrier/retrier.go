// Package retrier wraps github.com/sethvargo/go-retry with a bounded,
// linearly increasing backoff policy.
package retrier

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
)

// Policy describes how many times a failed call is retried and how long to
// wait in between. The n-th retry waits n*BaseDelay.
type Policy struct {
	MaxRetries uint64
	BaseDelay  time.Duration
}

// Attempts returns the maximum number of calls the policy allows.
func (p Policy) Attempts() int {
	return int(p.MaxRetries) + 1
}

// Backoff returns a fresh backoff schedule. Each Do call needs its own.
func (p Policy) Backoff() retry.Backoff {
	var n int64
	linear := retry.BackoffFunc(func() (time.Duration, bool) {
		n++
		return time.Duration(n) * p.BaseDelay, false
	})
	return retry.WithMaxRetries(p.MaxRetries, linear)
}

// Retryable marks err as worth another attempt. Unmarked errors stop Do immediately.
func Retryable(err error) error {
	return retry.RetryableError(err)
}

// AttemptFunc is one try; attempt is 1-based.
type AttemptFunc func(ctx context.Context, attempt int) error

// Do calls fn until it succeeds, returns an unmarked error, the policy is
// exhausted, or ctx is done. It returns the number of attempts made. On
// exhaustion the last error is returned without the retryable marker; when
// ctx ends first, ctx.Err() is returned.
func (p Policy) Do(ctx context.Context, fn AttemptFunc) (int, error) {
	attempts := 0
	err := retry.Do(ctx, p.Backoff(), func(ctx context.Context) error {
		attempts++
		return fn(ctx, attempts)
	})
	return attempts, err
}
