// Per-client token buckets for one rate limit tier.

// Package ratelimit admits HTTP requests through per-tier, per-client
// token buckets.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Idle clients are dropped once their bucket has refilled and they have
// not been seen for a while.
const (
	evictEvery     = 5 * time.Minute
	evictIdleAfter = 10 * time.Minute
)

// Result is the outcome of one admission check. It feeds the X-RateLimit
// response headers and, on rejection, the Retry-After header.
type Result struct {
	Allowed    bool
	Tier       string
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

// Limiter admits requests for one tier. Each client key gets its own token
// bucket refilling at perWindow tokens per window.
type Limiter struct {
	tier      string
	perWindow int
	window    time.Duration
	burst     int
	refill    rate.Limit

	mu      sync.Mutex
	clients map[string]*clientBucket
	stop    chan struct{}
}

type clientBucket struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

// NewLimiter creates a limiter that admits perWindow requests per window
// for each client key, with the given burst.
func NewLimiter(tier string, perWindow int, window time.Duration, burst int) *Limiter {
	l := &Limiter{
		tier:      tier,
		perWindow: perWindow,
		window:    window,
		burst:     burst,
		refill:    rate.Limit(float64(perWindow) / window.Seconds()),
		clients:   make(map[string]*clientBucket),
		stop:      make(chan struct{}),
	}
	go l.evictLoop()
	return l
}

// Allow admits or rejects one request for key.
func (l *Limiter) Allow(key string) Result {
	now := time.Now()

	l.mu.Lock()
	c := l.clients[key]
	if c == nil {
		c = &clientBucket{bucket: rate.NewLimiter(l.refill, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	l.mu.Unlock()

	res := Result{
		Allowed: c.bucket.AllowN(now, 1),
		Tier:    l.tier,
		Limit:   l.perWindow,
	}

	tokens := c.bucket.TokensAt(now)
	if tokens > 0 {
		res.Remaining = int(tokens)
	}
	// Reset is when the bucket is full again at the current refill rate.
	missing := float64(l.burst) - tokens
	res.ResetAt = now.Add(time.Duration(missing / float64(l.refill) * float64(time.Second)))
	if !res.Allowed {
		// Round up so clients never retry before a token exists.
		perToken := time.Duration(float64(time.Second) / float64(l.refill))
		res.RetryAfter = max(perToken, time.Second)
	}
	return res
}

func (l *Limiter) evictLoop() {
	ticker := time.NewTicker(evictEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.evictIdle(time.Now())
		case <-l.stop:
			return
		}
	}
}

// evictIdle drops clients whose bucket has fully refilled and that have
// not sent a request since the idle cutoff.
func (l *Limiter) evictIdle(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, c := range l.clients {
		if now.Sub(c.lastSeen) > evictIdleAfter && c.bucket.TokensAt(now) >= float64(l.burst) {
			delete(l.clients, key)
		}
	}
}

// Close stops the eviction goroutine.
func (l *Limiter) Close() {
	close(l.stop)
}
