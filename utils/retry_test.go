package utils

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetrySucceedsAfterFailures(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, Logger: NewDiscardLogger()}
	calls := 0
	err := r.Do(context.Background(), "flaky", func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do: unexpected error %v", err)
	}
	if calls != 3 {
		t.Errorf("calls: got %d, want 3", calls)
	}
}

func TestRetryWrapsLastError(t *testing.T) {
	sentinel := errors.New("down")
	r := &RetryConfig{MaxAttempts: 2, BaseDelay: time.Millisecond, Logger: NewDiscardLogger()}
	err := r.Do(context.Background(), "always", func() error { return sentinel })
	if !errors.Is(err, sentinel) {
		t.Errorf("error chain: got %v, want wrapping %v", err, sentinel)
	}
}

func TestRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &RetryConfig{MaxAttempts: 5, BaseDelay: time.Hour, Logger: NewDiscardLogger()}
	calls := 0
	err := r.Do(ctx, "cancelled", func() error {
		calls++
		return errors.New("fail")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error: got %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls: got %d, want 1", calls)
	}
}

func TestRetryZeroAttemptsRunsOnce(t *testing.T) {
	r := &RetryConfig{}
	calls := 0
	_ = r.Do(context.Background(), "once", func() error {
		calls++
		return errors.New("x")
	})
	if calls != 1 {
		t.Errorf("calls: got %d, want 1", calls)
	}
}
