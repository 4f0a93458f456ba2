package auth

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LoginLimiter throttles failed login attempts per (client IP, username)
// pair. Each pair gets a token bucket that refills over the configured
// window; only failures consume tokens, and a successful login clears the
// pair's bucket entirely.
type LoginLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewLoginLimiter creates a limiter allowing maxAttempts failures per window.
func NewLoginLimiter(maxAttempts int, window time.Duration) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(window / time.Duration(maxAttempts)),
		burst:    maxAttempts,
	}
}

// Allow reports whether another login attempt is permitted for the pair.
func (l *LoginLimiter) Allow(clientIP, username string) bool {
	return l.get(clientIP+"|"+username).Tokens() >= 1
}

// RecordFailure consumes one token for the pair after a failed attempt.
func (l *LoginLimiter) RecordFailure(clientIP, username string) {
	l.get(clientIP + "|" + username).Allow()
}

// RecordSuccess resets the pair after a successful login.
func (l *LoginLimiter) RecordSuccess(clientIP, username string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.limiters, clientIP+"|"+username)
}

func (l *LoginLimiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = lim
	}
	return lim
}
