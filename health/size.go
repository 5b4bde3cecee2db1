package health

import (
	"context"
	"fmt"
)

// Sizer is anything that reports an entry count, such as *cache.Cache.
type Sizer interface {
	Len() int
}

// namedSizer is satisfied by *cache.Cache.
type namedSizer interface {
	Name() string
}

// SizeConfig configures SizeChecker.
type SizeConfig struct {
	// Warning is the entry count at which the cache is reported degraded.
	// Zero disables the warning level.
	Warning int

	// Critical is the entry count at which the cache is reported unhealthy.
	// Zero disables the critical level.
	Critical int
}

// SizeChecker reports the health of a cache from its entry count.
type SizeChecker struct {
	target Sizer
	config SizeConfig
}

// NewSizeChecker creates a SizeChecker for target.
// A Critical level below Warning is raised to Warning.
func NewSizeChecker(target Sizer, config SizeConfig) *SizeChecker {
	if config.Warning < 0 {
		config.Warning = 0
	}
	if config.Critical < 0 {
		config.Critical = 0
	}
	if config.Critical > 0 && config.Critical < config.Warning {
		config.Critical = config.Warning
	}
	return &SizeChecker{target: target, config: config}
}

// Name returns "cache.size", suffixed with the cache name when known.
func (s *SizeChecker) Name() string {
	if n, ok := s.target.(namedSizer); ok && n.Name() != "" {
		return "cache.size." + n.Name()
	}
	return "cache.size"
}

// Check compares the current entry count with the configured levels.
func (s *SizeChecker) Check(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return result(StatusUnhealthy, "context cancelled", err)
	}

	n := s.target.Len()
	details := map[string]any{
		"entries":  n,
		"warning":  s.config.Warning,
		"critical": s.config.Critical,
	}

	var r Result
	switch {
	case s.config.Critical > 0 && n >= s.config.Critical:
		r = result(StatusUnhealthy, fmt.Sprintf("cache size critical: %d entries", n), ErrTooLarge)
	case s.config.Warning > 0 && n >= s.config.Warning:
		r = result(StatusDegraded, fmt.Sprintf("cache size high: %d entries", n), nil)
	default:
		r = result(StatusHealthy, fmt.Sprintf("cache size normal: %d entries", n), nil)
	}
	r.Details = details
	return r
}

var _ Checker = (*SizeChecker)(nil)
