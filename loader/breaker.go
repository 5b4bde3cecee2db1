package loader

import (
	"context"
	"errors"
	"sync"
	"time"
)

// BreakerState is the state of a Breaker.
type BreakerState int

const (
	// BreakerClosed passes loads through.
	BreakerClosed BreakerState = iota
	// BreakerOpen rejects loads with ErrBreakerOpen.
	BreakerOpen
	// BreakerHalfOpen lets a limited number of trial loads through.
	BreakerHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// BreakerConfig configures a Breaker.
type BreakerConfig struct {
	// MaxFailures is the number of consecutive failed loads that opens the
	// breaker. Default: 5
	MaxFailures int

	// Cooldown is how long the breaker stays open before letting trial loads through.
	// Default: 30 seconds
	Cooldown time.Duration

	// HalfOpenLoads is the number of loads allowed while half-open. Default: 1
	HalfOpenLoads int

	// IsFailure decides whether a load error counts against the breaker.
	// Default: every non-nil error except context cancellation.
	IsFailure func(err error) bool

	// OnStateChange is called with the breaker lock held.
	OnStateChange func(from, to BreakerState)

	now func() time.Time
}

func (c BreakerConfig) withDefaults() BreakerConfig {
	if c.MaxFailures <= 0 {
		c.MaxFailures = 5
	}
	if c.Cooldown <= 0 {
		c.Cooldown = 30 * time.Second
	}
	if c.HalfOpenLoads <= 0 {
		c.HalfOpenLoads = 1
	}
	if c.IsFailure == nil {
		c.IsFailure = func(err error) bool {
			return err != nil && !errors.Is(err, context.Canceled)
		}
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Breaker tracks load failures and stops calling a failing source.
// A Breaker may be shared by several loaders guarding the same backend.
type Breaker struct {
	cfg BreakerConfig

	mu       sync.Mutex
	state    BreakerState
	failures int
	openedAt time.Time
	trials   int
}

// NewBreaker creates a closed Breaker.
func NewBreaker(cfg BreakerConfig) *Breaker {
	return &Breaker{cfg: cfg.withDefaults()}
}

// State reports the current state, moving an expired open breaker to
// half-open.
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stateLocked()
}

// Reset closes the breaker and forgets recorded failures.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = 0
	b.transition(BreakerClosed)
}

func (b *Breaker) allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.stateLocked() {
	case BreakerOpen:
		return ErrBreakerOpen
	case BreakerHalfOpen:
		if b.trials >= b.cfg.HalfOpenLoads {
			return ErrBreakerOpen
		}
		b.trials++
	}
	return nil
}

func (b *Breaker) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	failed := b.cfg.IsFailure(err)
	switch b.state {
	case BreakerClosed:
		if !failed {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.cfg.MaxFailures {
			b.open()
		}
	case BreakerHalfOpen:
		if failed {
			b.open()
			return
		}
		b.failures = 0
		b.transition(BreakerClosed)
	}
}

func (b *Breaker) stateLocked() BreakerState {
	if b.state == BreakerOpen && b.cfg.now().Sub(b.openedAt) >= b.cfg.Cooldown {
		b.transition(BreakerHalfOpen)
	}
	return b.state
}

func (b *Breaker) open() {
	b.openedAt = b.cfg.now()
	b.transition(BreakerOpen)
}

func (b *Breaker) transition(to BreakerState) {
	from := b.state
	b.state = to
	b.trials = 0
	if from != to && b.cfg.OnStateChange != nil {
		b.cfg.OnStateChange(from, to)
	}
}

type breakerLoader[K, V any] struct {
	next    Loader[K, V]
	breaker *Breaker
}

// WithBreaker returns a Loader that calls next only while b admits it.
// Rejected loads fail with ErrBreakerOpen; since the cache never stores
// errors, the key loads again once the breaker closes.
func WithBreaker[K, V any](next Loader[K, V], b *Breaker) Loader[K, V] {
	return &breakerLoader[K, V]{next: next, breaker: b}
}

func (l *breakerLoader[K, V]) Load(ctx context.Context, key K) (V, error) {
	if err := l.breaker.allow(); err != nil {
		var zero V
		return zero, err
	}
	v, err := l.next.Load(ctx, key)
	l.breaker.record(err)
	return v, err
}

func (l *breakerLoader[K, V]) Name() string {
	return NameOf(l.next)
}
