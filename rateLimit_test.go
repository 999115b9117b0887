package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock drives the limiter without wall-clock waits: sleeping advances
// simulated time.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

func newFakeLimiter() (*RateLimiter, *fakeClock) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	limiter := NewRateLimiter()
	limiter.now = clock.Now
	limiter.sleep = clock.Sleep

	return limiter, clock
}

func TestThrottleBackToBack(t *testing.T) {
	limiter, clock := newFakeLimiter()

	limiter.Throttle("openlibrary")
	require.Empty(t, clock.sleeps)

	first := clock.now

	limiter.Throttle("openlibrary")
	require.Len(t, clock.sleeps, 1)
	assert.Equal(t, time.Second, clock.sleeps[0])

	// Start times end up a full interval apart.
	assert.GreaterOrEqual(t, clock.now.Sub(first), MIN_SOURCE_INTERVAL)
}

func TestThrottlePartialElapse(t *testing.T) {
	limiter, clock := newFakeLimiter()

	limiter.Throttle("openlibrary")
	clock.now = clock.now.Add(400 * time.Millisecond)
	limiter.Throttle("openlibrary")

	require.Len(t, clock.sleeps, 1)
	assert.Equal(t, 600*time.Millisecond, clock.sleeps[0])
}

func TestThrottleAfterInterval(t *testing.T) {
	limiter, clock := newFakeLimiter()

	limiter.Throttle("openlibrary")
	clock.now = clock.now.Add(2 * time.Second)
	limiter.Throttle("openlibrary")

	assert.Empty(t, clock.sleeps)
}

func TestThrottleDistinctSources(t *testing.T) {
	limiter, clock := newFakeLimiter()

	// No enforced gap between different sources.
	limiter.Throttle("openlibrary")
	limiter.Throttle("googlebooks")
	limiter.Throttle("europeana")

	assert.Empty(t, clock.sleeps)
}
