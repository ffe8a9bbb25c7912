package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitWithinBurst(t *testing.T) {
	limiter := NewDependencyLimiterWithDefaults()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// The default burst of 10 admits these immediately.
	for i := 0; i < 10; i++ {
		require.NoError(t, limiter.Wait(ctx, "serpapi"))
	}
}

func TestDependenciesAreIndependent(t *testing.T) {
	limiter := NewDependencyLimiter(Config{RequestsPerSecond: 1, BurstSize: 1})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, limiter.Wait(ctx, "serpapi"))
	// Exhausting serpapi's bucket must not touch openai's.
	require.NoError(t, limiter.Wait(ctx, "openai"))
}

func TestWaitHonorsContext(t *testing.T) {
	limiter := NewDependencyLimiter(Config{RequestsPerSecond: 0.001, BurstSize: 1})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	require.NoError(t, limiter.Wait(ctx, "serpapi"))
	err := limiter.Wait(ctx, "serpapi")
	assert.Error(t, err, "an empty bucket blocks until the context gives up")
}

func TestSetDependencyLimitOverridesDefaults(t *testing.T) {
	limiter := NewDependencyLimiter(Config{RequestsPerSecond: 0.001, BurstSize: 1})
	limiter.SetDependencyLimit("openai", 100, 5)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for i := 0; i < 5; i++ {
		require.NoError(t, limiter.Wait(ctx, "openai"))
	}
}
