package ratelimit

import (
	"context"
	"sync"
	"time"

	"sokoni/pkg/logger"
)

type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// RateLimiter is a per-user token bucket keyed by action name.
type RateLimiter struct {
	buckets  map[string]*bucket
	rate     float64
	capacity float64
	mu       sync.Mutex
}

// NewRateLimiter allows capacity immediate actions, refilled at rate
// tokens per second.
func NewRateLimiter(rate float64, capacity float64) *RateLimiter {
	return &RateLimiter{
		buckets:  make(map[string]*bucket),
		rate:     rate,
		capacity: capacity,
	}
}

func (rl *RateLimiter) Allow(userID, action string) bool {
	key := userID + ":" + action

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[key]
	now := time.Now()
	if !ok {
		b = &bucket{tokens: rl.capacity, lastRefill: now}
		rl.buckets[key] = b
	}

	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens += elapsed * rl.rate
	if b.tokens > rl.capacity {
		b.tokens = rl.capacity
	}
	b.lastRefill = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// StartCleanupRoutine drops buckets idle longer than maxIdle.
func (rl *RateLimiter) StartCleanupRoutine(ctx context.Context, interval, maxIdle time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.cleanup(maxIdle)
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (rl *RateLimiter) cleanup(maxIdle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	removed := 0
	for key, b := range rl.buckets {
		if b.lastRefill.Before(cutoff) {
			delete(rl.buckets, key)
			removed++
		}
	}
	if removed > 0 {
		logger.Debug("Rate limiter cleanup removed %d idle buckets", removed)
	}
}
