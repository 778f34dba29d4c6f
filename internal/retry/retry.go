// Package retry provides a small bounded-attempt runner with linear
// backoff. It is policy-agnostic: every call site supplies its own
// attempt budget, base delay, and optional per-attempt timeout.
package retry

import (
	"context"
	"time"
)

// Policy bounds a retried operation.
type Policy struct {
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts int

	// BaseDelay is the backoff unit. The wait before attempt n+1 is
	// BaseDelay * n (linear).
	BaseDelay time.Duration

	// Timeout, when positive, boxes each attempt with its own deadline.
	// An expired attempt counts as a failed attempt and is retried.
	Timeout time.Duration
}

// Do runs op sequentially until it succeeds or the policy is exhausted.
// The last error is returned unchanged. A cancelled parent context stops
// the loop immediately.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		result, err := runOnce(ctx, p, op)
		if err == nil {
			return result, nil
		}
		lastErr = err

		// The parent being cancelled is not a failure to retry.
		if ctx.Err() != nil {
			return zero, lastErr
		}

		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(p.BaseDelay * time.Duration(attempt)):
		}
	}

	return zero, lastErr
}

func runOnce[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	if p.Timeout <= 0 {
		return op(ctx)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()
	return op(attemptCtx)
}
