// Package ratelimit throttles outbound calls to third-party dependencies so
// a burst of sessions cannot burn through the SerpAPI or model quotas.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

type DependencyLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	defaults Config
}

type Config struct {
	RequestsPerSecond float64
	BurstSize         int
}

func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 5,
		BurstSize:         10,
	}
}

func NewDependencyLimiter(config Config) *DependencyLimiter {
	return &DependencyLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: config,
	}
}

func NewDependencyLimiterWithDefaults() *DependencyLimiter {
	return NewDependencyLimiter(DefaultConfig())
}

func (l *DependencyLimiter) getLimiter(dependency string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[dependency]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, exists = l.limiters[dependency]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Limit(l.defaults.RequestsPerSecond), l.defaults.BurstSize)
	l.limiters[dependency] = limiter
	return limiter
}

func (l *DependencyLimiter) SetDependencyLimit(dependency string, rps float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.limiters[dependency] = rate.NewLimiter(rate.Limit(rps), burst)
}

// Wait blocks until the dependency's limiter admits one call or the context
// is cancelled.
func (l *DependencyLimiter) Wait(ctx context.Context, dependency string) error {
	return l.getLimiter(dependency).Wait(ctx)
}
