package cache

import "errors"

// Sentinel errors for cache operations.
var (
	ErrNilCache     = errors.New("cache: cache is nil")
	ErrNilLoader    = errors.New("cache: loader is nil")
	ErrTypeMismatch = errors.New("cache: stored value has a different type")
)
