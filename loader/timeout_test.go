package loader

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWithTimeout_Completes(t *testing.T) {
	l := WithTimeout(Func(func(_ context.Context, key string) (string, error) {
		return key + "!", nil
	}), time.Second)

	got, err := l.Load(context.Background(), "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hi!" {
		t.Errorf("got %q, want hi!", got)
	}
}

func TestWithTimeout_Expires(t *testing.T) {
	l := WithTimeout(Func(func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}), 10*time.Millisecond)

	_, err := l.Load(context.Background(), "slow")
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", err)
	}
}

func TestWithTimeout_ParentCanceled(t *testing.T) {
	l := WithTimeout(Func(func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Load(ctx, "x")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestWithTimeout_DefaultApplied(t *testing.T) {
	l := WithTimeout(Func(func(_ context.Context, _ string) (int, error) { return 0, nil }), 0)
	tl, ok := l.(*timeoutLoader[string, int])
	if !ok {
		t.Fatalf("unexpected loader type %T", l)
	}
	if tl.timeout != DefaultTimeout {
		t.Errorf("expected default timeout %v, got %v", DefaultTimeout, tl.timeout)
	}
}
