package usecase

import (
	"context"
	"testing"
	"time"

	"CorpFin360/internal/engine"
)

func TestWithRetryTransientThenSuccess(t *testing.T) {
	calls := 0
	out, err := withRetry(context.Background(), 3, time.Millisecond, nil, func(ctx context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, engine.NewError(engine.ErrPredictorUnavailable, "connection refused")
		}
		return 42, nil
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if out != 42 || calls != 2 {
		t.Fatalf("out=%d calls=%d", out, calls)
	}
}

func TestWithRetryPermanentNotRetried(t *testing.T) {
	calls := 0
	_, err := withRetry(context.Background(), 3, time.Millisecond, nil, func(ctx context.Context) (int, error) {
		calls++
		return 0, engine.NewError(engine.ErrPredictorOutputInvalid, "garbage payload")
	})
	if engine.KindOf(err) != engine.ErrPredictorOutputInvalid {
		t.Fatalf("expected output invalid, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("permanent error retried %d times", calls)
	}
}

func TestWithRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	retries := 0
	_, err := withRetry(context.Background(), 3, time.Millisecond, func(int) { retries++ }, func(ctx context.Context) (int, error) {
		calls++
		return 0, engine.NewError(engine.ErrPredictorUnavailable, "still down")
	})
	if engine.KindOf(err) != engine.ErrPredictorUnavailable {
		t.Fatalf("expected unavailable, got %v", err)
	}
	if calls != 3 || retries != 2 {
		t.Fatalf("calls=%d retries=%d", calls, retries)
	}
}

func TestWithRetryContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := withRetry(ctx, 3, time.Minute, nil, func(ctx context.Context) (int, error) {
		return 0, engine.NewError(engine.ErrPredictorUnavailable, "down")
	})
	if engine.KindOf(err) != engine.ErrPredictorUnavailable {
		t.Fatalf("expected unavailable, got %v", err)
	}
}
