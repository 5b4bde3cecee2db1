package health

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jonwraymond/memocache/cache"
	"github.com/jonwraymond/memocache/loader"
)

type fixedSize int

func (f fixedSize) Len() int { return int(f) }

func TestSizeChecker_Levels(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		config  SizeConfig
		want    Status
		wantErr error
	}{
		{"below warning", 5, SizeConfig{Warning: 10, Critical: 20}, StatusHealthy, nil},
		{"at warning", 10, SizeConfig{Warning: 10, Critical: 20}, StatusDegraded, nil},
		{"at critical", 20, SizeConfig{Warning: 10, Critical: 20}, StatusUnhealthy, ErrTooLarge},
		{"levels disabled", 1_000_000, SizeConfig{}, StatusHealthy, nil},
		{"critical only", 3, SizeConfig{Critical: 3}, StatusUnhealthy, ErrTooLarge},
		{"critical raised to warning", 10, SizeConfig{Warning: 10, Critical: 5}, StatusUnhealthy, ErrTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewSizeChecker(fixedSize(tt.size), tt.config).Check(context.Background())
			if r.Status != tt.want {
				t.Errorf("Status = %v, want %v (%s)", r.Status, tt.want, r.Message)
			}
			if !errors.Is(r.Error, tt.wantErr) {
				t.Errorf("Error = %v, want %v", r.Error, tt.wantErr)
			}
			if r.Details["entries"] != tt.size {
				t.Errorf("entries detail = %v, want %d", r.Details["entries"], tt.size)
			}
			if r.Timestamp.IsZero() {
				t.Error("expected a timestamp")
			}
		})
	}
}

func TestSizeChecker_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewSizeChecker(fixedSize(0), SizeConfig{}).Check(ctx)
	if r.Status != StatusUnhealthy || !errors.Is(r.Error, context.Canceled) {
		t.Errorf("expected unhealthy with context.Canceled, got %v / %v", r.Status, r.Error)
	}
}

func TestSizeChecker_Cache(t *testing.T) {
	ctx := context.Background()
	c := cache.New(cache.WithName("users"))
	check := NewSizeChecker(c, SizeConfig{Warning: 2, Critical: 4})

	if check.Name() != "cache.size.users" {
		t.Errorf("Name() = %q, want cache.size.users", check.Name())
	}

	l := loader.Func(func(_ context.Context, id int) (string, error) {
		return fmt.Sprint(id), nil
	})
	want := []Status{StatusHealthy, StatusDegraded, StatusDegraded, StatusUnhealthy}
	for i, status := range want {
		if _, err := cache.Get(ctx, c, l, i); err != nil {
			t.Fatalf("Get(%d) failed: %v", i, err)
		}
		if got := check.Check(ctx).Status; got != status {
			t.Errorf("after %d entries: Status = %v, want %v", i+1, got, status)
		}
	}

	c.Clear(ctx)
	if got := check.Check(ctx).Status; got != StatusHealthy {
		t.Errorf("after Clear: Status = %v, want healthy", got)
	}
}

func TestSizeChecker_UnnamedTarget(t *testing.T) {
	if got := NewSizeChecker(fixedSize(0), SizeConfig{}).Name(); got != "cache.size" {
		t.Errorf("Name() = %q, want cache.size", got)
	}
}

func TestStatus_String(t *testing.T) {
	tests := map[Status]string{
		StatusHealthy:   "healthy",
		StatusDegraded:  "degraded",
		StatusUnhealthy: "unhealthy",
		Status(99):      "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}
