package resilience_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/andinpos/site-gateway/internal/infra/resilience"
)

func TestRetryWithBackoff_FirstAttemptWins(t *testing.T) {
	cfg := resilience.Config{MaxRetries: 3, InitialBackoff: 10 * time.Millisecond}

	calls := 0
	err := resilience.RetryWithBackoff(context.Background(), cfg, func() error {
		calls++
		return nil
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("a successful call must not retry, got %d calls", calls)
	}
}

func TestRetryWithBackoff_RecoversWithinBudget(t *testing.T) {
	cfg := resilience.Config{MaxRetries: 3, InitialBackoff: time.Millisecond}

	calls := 0
	err := resilience.RetryWithBackoff(context.Background(), cfg, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected recovery on attempt 3, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestRetryWithBackoff_ReturnsLastError(t *testing.T) {
	cfg := resilience.Config{MaxRetries: 2, InitialBackoff: time.Millisecond}

	calls := 0
	wantErr := errors.New("attempt 3 failed")
	err := resilience.RetryWithBackoff(context.Background(), cfg, func() error {
		calls++
		if calls == 3 {
			return wantErr
		}
		return errors.New("earlier failure")
	})

	if calls != 3 {
		t.Fatalf("MaxRetries=2 means 3 attempts, got %d", calls)
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("expected the final attempt's error, got %v", err)
	}
}

func TestRetryWithBackoff_CancelledBeforeStart(t *testing.T) {
	cfg := resilience.Config{MaxRetries: 5, InitialBackoff: time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := resilience.RetryWithBackoff(ctx, cfg, func() error {
		calls++
		return errors.New("should not matter")
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 0 {
		t.Errorf("cancelled context must not invoke fn, got %d calls", calls)
	}
}

func TestRetryWithBackoff_CancelledDuringBackoff(t *testing.T) {
	cfg := resilience.Config{MaxRetries: 5, InitialBackoff: time.Second}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	calls := 0
	start := time.Now()
	err := resilience.RetryWithBackoff(ctx, cfg, func() error {
		calls++
		return errors.New("fail")
	})

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call before the deadline hit the backoff wait, got %d", calls)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("cancellation did not interrupt backoff, waited %v", elapsed)
	}
}

func TestCircuitBreaker_PassesThroughWhenClosed(t *testing.T) {
	cb := resilience.NewCircuitBreaker("test")

	got, err := cb.Execute(func() (any, error) {
		return "ok", nil
	})

	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if got != "ok" {
		t.Errorf("expected result passthrough, got %v", got)
	}
}

func TestCircuitBreaker_OpensAfterFailureRun(t *testing.T) {
	cb := resilience.NewCircuitBreaker("test-open")

	boom := errors.New("backend down")
	for i := 0; i < 10; i++ {
		cb.Execute(func() (any, error) { return nil, boom })
	}

	_, err := cb.Execute(func() (any, error) { return "ok", nil })
	if err == nil {
		t.Fatal("expected open breaker to reject the call")
	}
	if errors.Is(err, boom) {
		t.Errorf("expected a breaker error, got the function's own error: %v", err)
	}
}
