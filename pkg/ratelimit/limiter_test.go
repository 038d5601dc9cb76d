package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketAllow(t *testing.T) {
	t.Run("allows up to capacity", func(t *testing.T) {
		tb := NewTokenBucket(3, time.Minute)

		assert.True(t, tb.Allow())
		assert.True(t, tb.Allow())
		assert.True(t, tb.Allow())
		assert.False(t, tb.Allow())
	})

	t.Run("refills after the period", func(t *testing.T) {
		tb := NewTokenBucket(1, 50*time.Millisecond)

		assert.True(t, tb.Allow())
		assert.False(t, tb.Allow())

		time.Sleep(60 * time.Millisecond)
		assert.True(t, tb.Allow())
	})
}

func TestTokenBucketWait(t *testing.T) {
	tb := NewTokenBucket(1, 50*time.Millisecond)

	assert.True(t, tb.Allow())

	start := time.Now()
	tb.Wait()
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 20*time.Millisecond)
	assert.Less(t, elapsed, 500*time.Millisecond)
}

func TestTokenBucketReset(t *testing.T) {
	tb := NewTokenBucket(2, time.Minute)

	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())

	tb.Reset()
	assert.True(t, tb.Allow())
}

func TestTokenBucketConcurrentAccess(t *testing.T) {
	tb := NewTokenBucket(100, time.Minute)

	done := make(chan int, 10)
	for i := 0; i < 10; i++ {
		go func() {
			allowed := 0
			for j := 0; j < 20; j++ {
				if tb.Allow() {
					allowed++
				}
			}
			done <- allowed
		}()
	}

	total := 0
	for i := 0; i < 10; i++ {
		total += <-done
	}

	// 200 attempts against 100 tokens
	assert.Equal(t, 100, total)
}
