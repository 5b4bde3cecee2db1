package health

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultGroupTimeout bounds a Group check when no timeout is given.
const DefaultGroupTimeout = 10 * time.Second

// Group runs several checkers, typically one SizeChecker per cache, and
// reports the worst status among them.
type Group struct {
	name    string
	timeout time.Duration

	mu       sync.RWMutex
	checkers []Checker
}

// NewGroup creates an empty Group. A non-positive timeout uses
// DefaultGroupTimeout.
func NewGroup(name string, timeout time.Duration) *Group {
	if timeout <= 0 {
		timeout = DefaultGroupTimeout
	}
	return &Group{name: name, timeout: timeout}
}

// Add registers checkers. A checker whose Name is already registered replaces
// the earlier one.
func (g *Group) Add(checkers ...Checker) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, c := range checkers {
		replaced := false
		for i, existing := range g.checkers {
			if existing.Name() == c.Name() {
				g.checkers[i] = c
				replaced = true
				break
			}
		}
		if !replaced {
			g.checkers = append(g.checkers, c)
		}
	}
}

// Name returns the group name.
func (g *Group) Name() string {
	return g.name
}

// CheckAll runs every checker in parallel and returns the results by checker
// name. Checks still running at the timeout are reported unhealthy with
// ErrCheckTimeout.
func (g *Group) CheckAll(ctx context.Context) map[string]Result {
	g.mu.RLock()
	checkers := append([]Checker(nil), g.checkers...)
	g.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	results := make([]Result, len(checkers))
	var eg errgroup.Group
	for i, c := range checkers {
		eg.Go(func() error {
			results[i] = run(ctx, c)
			return nil
		})
	}
	_ = eg.Wait()

	out := make(map[string]Result, len(checkers))
	for i, c := range checkers {
		out[c.Name()] = results[i]
	}
	return out
}

// Check reports the worst status of all checkers, with each checker's status
// and message in Details.
func (g *Group) Check(ctx context.Context) Result {
	results := g.CheckAll(ctx)

	status := StatusHealthy
	details := make(map[string]any, len(results))
	for name, r := range results {
		status = max(status, r.Status)
		details[name] = map[string]any{
			"status":  r.Status.String(),
			"message": r.Message,
		}
	}

	r := result(status, fmt.Sprintf("%d of %d checks %s", count(results, status), len(results), status), nil)
	if status == StatusHealthy {
		r.Message = "all checks passed"
	}
	r.Details = details
	return r
}

func count(results map[string]Result, status Status) int {
	n := 0
	for _, r := range results {
		if r.Status == status {
			n++
		}
	}
	return n
}

func run(ctx context.Context, c Checker) Result {
	done := make(chan Result, 1)
	go func() {
		done <- c.Check(ctx)
	}()

	select {
	case r := <-done:
		return r
	case <-ctx.Done():
		return result(StatusUnhealthy, "check timed out", ErrCheckTimeout)
	}
}

var _ Checker = (*Group)(nil)
