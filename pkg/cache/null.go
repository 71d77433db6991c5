package cache

import (
	"context"
	"time"
)

// NullCache stores nothing: every Get is a miss, so each labelsheet run
// renders its artifact afresh. It stands in for a real backend when the
// user passes --no-cache, when the config selects backend = "none", and
// when Redis cannot be reached.
type NullCache struct {
	// Reason says why caching is off, for logs.
	Reason string
}

// NewNullCache returns a NullCache with no recorded reason.
func NewNullCache() Cache {
	return &NullCache{Reason: "disabled"}
}

// Disabled returns a NullCache that records why caching was turned off,
// such as "--no-cache" or the Redis dial error.
func Disabled(reason string) *NullCache {
	return &NullCache{Reason: reason}
}

func (c *NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (c *NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (c *NullCache) Delete(context.Context, string) error { return nil }

func (c *NullCache) Close() error { return nil }

// String reports the backend for status output, e.g. "none (--no-cache)".
func (c *NullCache) String() string {
	return "none (" + c.Reason + ")"
}

var _ Cache = (*NullCache)(nil)
