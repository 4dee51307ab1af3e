package usecase

import (
	"context"
	"time"

	"CorpFin360/internal/engine"
)

// withRetry runs fn up to `attempts` times with linear backoff, retrying only
// transient predictor failures. Validation and invalid-output errors pass
// through on the first attempt. A successful retry is indistinguishable from
// a first-attempt success to the caller.
func withRetry[T any](ctx context.Context, attempts int, backoff time.Duration, onRetry func(attempt int), fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if attempts < 1 {
		attempts = 1
	}
	if backoff <= 0 {
		backoff = 50 * time.Millisecond
	}
	var err error
	for i := 1; i <= attempts; i++ {
		var out T
		out, err = fn(ctx)
		if err == nil {
			return out, nil
		}
		if !engine.IsRetryable(err) || i == attempts {
			return zero, err
		}
		if onRetry != nil {
			onRetry(i)
		}
		select {
		case <-time.After(time.Duration(i) * backoff):
		case <-ctx.Done():
			return zero, engine.WrapError(engine.ErrPredictorUnavailable, "predictor call cancelled", ctx.Err())
		}
	}
	return zero, err
}
