package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketExhaustion(t *testing.T) {
	bucket := NewTokenBucket(3, 1, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, _ := bucket.Allow()
		assert.True(t, allowed)
	}

	allowed, retryAfter := bucket.Allow()
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))
}

func TestRateLimiterIsolatesUsersAndActions(t *testing.T) {
	rl := NewRateLimiter()

	for i := 0; i < 30; i++ {
		allowed, _ := rl.Allow(1, "send_message")
		assert.True(t, allowed)
	}
	allowed, _ := rl.Allow(1, "send_message")
	assert.False(t, allowed)

	// Other users and other actions are unaffected.
	allowed, _ = rl.Allow(2, "send_message")
	assert.True(t, allowed)
	allowed, _ = rl.Allow(1, "create_chat")
	assert.True(t, allowed)
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter()
	rl.Allow(1, "send_message")

	rl.mutex.Lock()
	for _, bucket := range rl.buckets {
		bucket.lastRefill = time.Now().Add(-2 * time.Hour)
	}
	rl.mutex.Unlock()

	rl.Cleanup()

	rl.mutex.RLock()
	defer rl.mutex.RUnlock()
	assert.Empty(t, rl.buckets)
}
