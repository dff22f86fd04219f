package ratelimit

import (
	"context"
	"time"
)

// Limits caps requests per key. Zero disables a window.
type Limits struct {
	RequestsPerMinute int
	RequestsPerHour   int
}

// Enabled reports whether any window is limited.
func (l Limits) Enabled() bool {
	return l.RequestsPerMinute > 0 || l.RequestsPerHour > 0
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, limits Limits) (bool, error)
	Reset(ctx context.Context, key string) error
}

type window struct {
	duration time.Duration
	limit    int
}

func (l Limits) windows() []window {
	return []window{
		{time.Minute, l.RequestsPerMinute},
		{time.Hour, l.RequestsPerHour},
	}
}
