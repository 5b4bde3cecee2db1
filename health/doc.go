// Package health reports whether a cache is within its expected size.
//
// Caches in this module never evict, so growth is the main operational risk.
// SizeChecker turns an entry count into a Status that a host application can
// expose on its own health endpoint:
//
//	c := cache.New(cache.WithName("users"))
//	check := health.NewSizeChecker(c, health.SizeConfig{
//	    Warning:  100_000,
//	    Critical: 1_000_000,
//	})
//	if r := check.Check(ctx); r.Status != health.StatusHealthy {
//	    log.Printf("%s: %s", check.Name(), r.Message)
//	}
//
// A process with several caches registers their checkers in a Group, which is
// itself a Checker reporting the worst status.
package health
