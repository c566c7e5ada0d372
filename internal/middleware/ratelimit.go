package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterConfig configures the rate limiter
type RateLimiterConfig struct {
	// PerMinute is the sustained number of requests allowed per key.
	PerMinute int

	// BurstSize is the maximum number of requests allowed in a burst
	BurstSize int

	// CleanupInterval is how often idle keys are forgotten.
	CleanupInterval time.Duration

	// KeyFunc extracts the rate limit key from the request
	// Default: client IP address
	KeyFunc func(r *http.Request) string
}

// AuthRateLimiterConfig limits login and registration attempts.
func AuthRateLimiterConfig(perMinute int) RateLimiterConfig {
	return RateLimiterConfig{
		PerMinute:       perMinute,
		BurstSize:       5,
		CleanupInterval: time.Minute,
		KeyFunc:         GetClientIP,
	}
}

// APIRateLimiterConfig is the general JSON API limit.
func APIRateLimiterConfig(perMinute int) RateLimiterConfig {
	return RateLimiterConfig{
		PerMinute:       perMinute,
		BurstSize:       50,
		CleanupInterval: time.Minute,
		KeyFunc:         GetClientIP,
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per key.
type RateLimiter struct {
	config   RateLimiterConfig
	limit    rate.Limit
	visitors map[string]*visitor
	mu       sync.Mutex
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewRateLimiter creates a rate limiter and starts its cleanup goroutine.
// Call Stop to release it.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = GetClientIP
	}
	if config.PerMinute <= 0 {
		config.PerMinute = 60
	}
	if config.BurstSize <= 0 {
		config.BurstSize = 1
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = time.Minute
	}

	rl := &RateLimiter{
		config:   config,
		limit:    rate.Every(time.Minute / time.Duration(config.PerMinute)),
		visitors: make(map[string]*visitor),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// Allow reports whether a request for key may proceed now.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.config.BurstSize)}
		rl.visitors[key] = v
	}
	v.lastSeen = time.Now()
	rl.mu.Unlock()

	return v.limiter.Allow()
}

// cleanup forgets keys that have been idle for a full interval.
func (rl *RateLimiter) cleanup() {
	defer close(rl.done)

	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-rl.config.CleanupInterval)
			rl.mu.Lock()
			for key, v := range rl.visitors {
				if v.lastSeen.Before(cutoff) {
					delete(rl.visitors, key)
				}
			}
			rl.mu.Unlock()
		case <-rl.stop:
			return
		}
	}
}

// Stop stops the cleanup goroutine and waits for it to exit.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
	<-rl.done
}

// Middleware returns an HTTP middleware that applies rate limiting
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(rl.config.KeyFunc(r)) {
			w.Header().Set("Retry-After", "1")
			respondTooManyRequests(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetClientIP extracts the client IP from the request
// It checks X-Forwarded-For and X-Real-IP headers first (for proxied requests)
func GetClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
