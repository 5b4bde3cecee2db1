package health

import "errors"

// ErrTooLarge is attached to unhealthy results from SizeChecker.
var ErrTooLarge = errors.New("health: cache exceeds critical size")

// ErrCheckTimeout is attached to results of checks that did not finish
// within a Group's timeout.
var ErrCheckTimeout = errors.New("health: check timed out")
