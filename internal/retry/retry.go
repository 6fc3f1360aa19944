// Package retry provides bounded exponential-backoff execution for
// non-deterministic operations, including a validated variant that
// treats contract violations in an operation's output exactly like
// transient transport faults: discard and regenerate, never repair.
package retry

import (
	"context"
	"time"
)

// Policy bounds a retry loop. MaxRetries counts attempts beyond the
// first, so MaxRetries=2 means at most three calls. Delay doubles
// after every failed attempt starting from InitialDelay.
type Policy struct {
	MaxRetries   int
	InitialDelay time.Duration
}

// DefaultPolicy matches the synthesis contract: two retries past the
// first attempt, backoff 1s then 2s.
func DefaultPolicy() Policy {
	return Policy{MaxRetries: 2, InitialDelay: time.Second}
}

// Do runs fn until it succeeds or the policy is exhausted, sleeping
// between attempts. The last error is returned unwrapped so callers
// can classify it. Context cancellation cuts the wait short and
// returns the context error.
func Do[T any](ctx context.Context, p Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	delay := p.InitialDelay
	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, delay); err != nil {
				return zero, err
			}
			delay *= 2
		}

		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err
	}
	return zero, lastErr
}

// DoValidated runs generate and then validate as one retryable unit:
// a generate failure and a validate failure trigger the same backoff
// and a brand-new generate call. Prior output is never patched.
func DoValidated[R, T any](
	ctx context.Context,
	p Policy,
	generate func(ctx context.Context) (R, error),
	validate func(R) (T, error),
) (T, error) {
	return Do(ctx, p, func(ctx context.Context) (T, error) {
		var zero T
		raw, err := generate(ctx)
		if err != nil {
			return zero, err
		}
		return validate(raw)
	})
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
