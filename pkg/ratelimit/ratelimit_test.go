package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(start time.Time) (*MemoryStore, *time.Time) {
	now := start
	store := NewMemoryStore()
	store.now = func() time.Time { return now }
	return store, &now
}

func TestLimiter_AllowsUpToMaxWithinWindow(t *testing.T) {
	store, _ := newTestStore(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	limiter := New(store, 3, 60*time.Second)

	for i := 0; i < 3; i++ {
		res, err := limiter.Check(context.Background(), "ip:1.2.3.4")
		require.NoError(t, err)
		assert.True(t, res.Allowed, "call %d should be allowed", i+1)
		assert.Equal(t, 2-i, res.Remaining)
	}

	res, err := limiter.Check(context.Background(), "ip:1.2.3.4")
	require.NoError(t, err)
	assert.False(t, res.Allowed, "4th call within window must be rejected")
	assert.Equal(t, 0, res.Remaining)
}

func TestLimiter_ResetsAfterFullWindow(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store, now := newTestStore(start)
	limiter := New(store, 3, 60*time.Second)

	for i := 0; i < 4; i++ {
		_, err := limiter.Check(context.Background(), "k")
		require.NoError(t, err)
	}

	*now = start.Add(61 * time.Second)

	res, err := limiter.Check(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 2, res.Remaining, "reset bucket consumes one token: max-1 left")
}

func TestLimiter_GradualRefill(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store, now := newTestStore(start)
	limiter := New(store, 3, 60*time.Second)

	for i := 0; i < 3; i++ {
		_, err := limiter.Check(context.Background(), "k")
		require.NoError(t, err)
	}

	// 20s into a 60s window refills floor(20000*3/60000) = 1 token.
	*now = start.Add(20 * time.Second)

	res, err := limiter.Check(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)

	res, err = limiter.Check(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	store, _ := newTestStore(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	limiter := New(store, 1, 60*time.Second)

	res, err := limiter.Check(context.Background(), "a")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = limiter.Check(context.Background(), "a")
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	res, err = limiter.Check(context.Background(), "b")
	require.NoError(t, err)
	assert.True(t, res.Allowed, "exhausting key a must not affect key b")
}
