// Package ratelimit provides a process-wide call budget for rate-limited
// upstreams. Exhaustion is a normal outcome callers degrade on, not an error
package ratelimit

import (
	"sync"

	"golang.org/x/time/rate"
)

// Stats is a snapshot of budget decisions
type Stats struct {
	Allowed int64
	Denied  int64
}

// Budget wraps a token bucket with decision counters. Construct with New;
// instances are safe for concurrent use
type Budget struct {
	mu      sync.Mutex
	lim     *rate.Limiter
	allowed int64
	denied  int64
}

// New builds a Budget allowing perSec calls per second with the given burst
func New(perSec float64, burst int) *Budget {
	return &Budget{lim: rate.NewLimiter(rate.Limit(perSec), burst)}
}

// Allow consumes one token if available and records the decision
func (b *Budget) Allow() bool {
	ok := b.lim.Allow()
	b.mu.Lock()
	if ok {
		b.allowed++
	} else {
		b.denied++
	}
	b.mu.Unlock()
	return ok
}

// Snapshot returns a copy of the counters
func (b *Budget) Snapshot() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Stats{Allowed: b.allowed, Denied: b.denied}
}

// Reset zeroes the counters; the underlying bucket keeps its fill level
func (b *Budget) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.allowed, b.denied = 0, 0
}
