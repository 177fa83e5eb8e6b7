package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Result reports the outcome of a single limiter check.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Store holds the token buckets. Implementations must serialize concurrent
// takes on the same key internally; callers never do read-then-write
// themselves. A shared external store can replace the in-memory one without
// changing call sites.
type Store interface {
	Take(ctx context.Context, key string, maxRequests int, window time.Duration) (Result, error)
}

// Limiter is a token-bucket rate limiter bound to one max/window policy.
type Limiter struct {
	store  Store
	max    int
	window time.Duration
}

func New(store Store, maxRequests int, window time.Duration) *Limiter {
	return &Limiter{
		store:  store,
		max:    maxRequests,
		window: window,
	}
}

func (l *Limiter) Check(ctx context.Context, key string) (Result, error) {
	return l.store.Take(ctx, key, l.max, l.window)
}

// ==================== IN-MEMORY STORE ====================

type bucket struct {
	tokens     int
	lastRefill time.Time
}

// MemoryStore keeps buckets in a mutex-guarded map. Suitable for a single
// process; production with multiple replicas swaps in a shared store.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

func (m *MemoryStore) Take(ctx context.Context, key string, maxRequests int, window time.Duration) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()

	b, ok := m.buckets[key]
	if !ok {
		b = &bucket{tokens: maxRequests, lastRefill: now}
		m.buckets[key] = b
	}

	elapsed := now.Sub(b.lastRefill)
	if elapsed >= window {
		// Window fully elapsed: reset to full.
		b.tokens = maxRequests
		b.lastRefill = now
	} else if elapsed > 0 {
		tokensToAdd := int(elapsed.Milliseconds() * int64(maxRequests) / window.Milliseconds())
		if tokensToAdd > 0 {
			b.tokens += tokensToAdd
			if b.tokens > maxRequests {
				b.tokens = maxRequests
			}
			b.lastRefill = now
		}
	}

	resetAt := b.lastRefill.Add(window)

	if b.tokens <= 0 {
		return Result{Allowed: false, Remaining: 0, ResetAt: resetAt}, nil
	}

	b.tokens--
	return Result{Allowed: true, Remaining: b.tokens, ResetAt: resetAt}, nil
}
