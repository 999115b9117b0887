package main

import (
	"sync"
	"time"
)

// Minimum spacing between calls to a rate-limited source.
const MIN_SOURCE_INTERVAL = time.Second

// RateLimiter enforces a minimum interval between successive calls to the
// same source.  Candidates are resolved sequentially, so in practice there
// is no contention, but the mutex keeps the bookkeeping correct regardless
// of who calls.
type RateLimiter struct {
	mu    sync.Mutex
	last  map[string]time.Time
	now   func() time.Time
	sleep func(time.Duration)
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		last:  map[string]time.Time{},
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// Throttle blocks until at least MIN_SOURCE_INTERVAL has passed since the
// previous Throttle call for this source.  Different sources never delay
// each other.
func (r *RateLimiter) Throttle(source string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if last, ok := r.last[source]; ok {
		if wait := MIN_SOURCE_INTERVAL - r.now().Sub(last); wait > 0 {
			sugar.Debugf("Throttle %s for %v", source, wait)
			r.sleep(wait)
		}
	}

	r.last[source] = r.now()
}
