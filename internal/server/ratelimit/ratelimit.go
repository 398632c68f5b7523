// Package ratelimit provides per-client request limiting using token buckets.
package ratelimit

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Config holds rate limiting configuration.
type Config struct {
	Enabled           bool
	RequestsPerSecond float64       // steady refill rate per client
	Burst             int           // bucket capacity per client
	IdleTTL           time.Duration // clients idle this long are forgotten; 0 keeps them forever
	CleanupInterval   time.Duration // how often idle clients are swept; defaults to IdleTTL
	ExemptPaths       []string      // exact paths never limited
}

// DefaultExemptPaths are the operational endpoints that are never limited.
var DefaultExemptPaths = []string{"/health", "/metrics"}

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// RetryAfterSeconds is RetryAfter rounded up to whole seconds, at least 1 when denied.
func (i Info) RetryAfterSeconds() int {
	if i.Allowed {
		return 0
	}
	return max(1, int(math.Ceil(i.RetryAfter.Seconds())))
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter manages rate limiting for multiple clients.
type Limiter struct {
	config  Config
	exempt  map[string]bool
	now     func() time.Time
	mu      sync.Mutex
	clients map[string]*client

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
	stopOnce      sync.Once
}

// NewLimiter creates a new rate limiter with the given configuration.
// A cleanup goroutine runs while the limiter is enabled with an IdleTTL; call Stop to end it.
func NewLimiter(config Config) *Limiter {
	l := &Limiter{
		config:  config,
		exempt:  make(map[string]bool, len(config.ExemptPaths)),
		now:     time.Now,
		clients: make(map[string]*client),
	}
	for _, p := range config.ExemptPaths {
		l.exempt[p] = true
	}

	interval := config.CleanupInterval
	if interval <= 0 {
		interval = config.IdleTTL
	}
	if config.Enabled && config.IdleTTL > 0 && interval > 0 {
		l.cleanupTicker = time.NewTicker(interval)
		l.cleanupStop = make(chan struct{})
		go l.cleanup()
	}

	return l
}

// Exempt reports whether requests to path bypass the limiter.
func (l *Limiter) Exempt(path string) bool {
	return l.exempt[path]
}

// Allow checks whether a request from clientID to path may proceed and consumes a token if so.
func (l *Limiter) Allow(clientID, path string) (bool, Info) {
	if !l.config.Enabled || l.Exempt(path) {
		return true, Info{Allowed: true}
	}

	now := l.now()
	lim := l.clientLimiter(clientID, now)

	if lim.AllowN(now, 1) {
		return true, Info{
			Allowed:   true,
			Limit:     l.config.Burst,
			Remaining: int(lim.TokensAt(now)),
		}
	}

	// Reserve only to learn the wait, then give the token back.
	reservation := lim.ReserveN(now, 1)
	retryAfter := reservation.DelayFrom(now)
	reservation.CancelAt(now)

	return false, Info{
		Allowed:    false,
		Limit:      l.config.Burst,
		Remaining:  0,
		RetryAfter: retryAfter,
	}
}

// Clients returns the number of clients currently tracked.
func (l *Limiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

func (l *Limiter) clientLimiter(clientID string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[clientID]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rate.Limit(l.config.RequestsPerSecond), l.config.Burst)}
		l.clients[clientID] = c
	}
	c.lastSeen = now
	return c.limiter
}

func (l *Limiter) cleanup() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.evictIdle()
		case <-l.cleanupStop:
			return
		}
	}
}

// evictIdle forgets clients not seen within IdleTTL.
func (l *Limiter) evictIdle() {
	cutoff := l.now().Add(-l.config.IdleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()

	for id, c := range l.clients {
		if c.lastSeen.Before(cutoff) {
			delete(l.clients, id)
		}
	}
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.cleanupTicker != nil {
			l.cleanupTicker.Stop()
		}
		if l.cleanupStop != nil {
			close(l.cleanupStop)
		}
	})
}
