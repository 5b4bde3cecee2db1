package loader

import "errors"

// Sentinel errors for loader decorators.
var (
	// ErrTimeout is returned when a load exceeds the configured timeout.
	ErrTimeout = errors.New("loader: load timed out")

	// ErrMaxRetriesExceeded is returned when all retry attempts failed.
	// The last load error is wrapped alongside it.
	ErrMaxRetriesExceeded = errors.New("loader: max retries exceeded")
)

// ErrBreakerOpen is returned without calling the wrapped loader while its
// breaker is open.
var ErrBreakerOpen = errors.New("loader: breaker open")
