package server

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterConfig tunes the per-client token buckets.
type RateLimiterConfig struct {
	// RequestsPerMinute is both the bucket size and its refill per minute.
	RequestsPerMinute int
	// IdleTTL is how long an unseen client keeps its bucket.
	IdleTTL time.Duration
	// SweepInterval is the period of the background eviction.
	SweepInterval time.Duration
}

// DefaultRateLimiterConfig allows 60 requests per minute per client.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerMinute: 60,
		IdleTTL:           2 * time.Minute,
		SweepInterval:     5 * time.Minute,
	}
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client address. Buckets idle for
// longer than IdleTTL are swept by a goroutine that runs until Stop.
type RateLimiter struct {
	cfg RateLimiterConfig

	mu      sync.Mutex
	buckets map[string]*bucket

	done     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter starts a limiter; zero fields of cfg take their defaults.
func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	def := DefaultRateLimiterConfig()
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = def.RequestsPerMinute
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = def.IdleTTL
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = def.SweepInterval
	}

	rl := &RateLimiter{
		cfg:     cfg,
		buckets: make(map[string]*bucket),
		done:    make(chan struct{}),
	}
	go rl.sweep()
	return rl
}

// Allow reports whether client may issue a request now.
func (rl *RateLimiter) Allow(client string) bool {
	_, ok := rl.reserve(client, time.Now())
	return ok
}

// reserve takes a token for client at now. When none is left it returns
// the wait until the next one.
func (rl *RateLimiter) reserve(client string, now time.Time) (time.Duration, bool) {
	rl.mu.Lock()
	b, found := rl.buckets[client]
	if !found {
		every := time.Minute / time.Duration(rl.cfg.RequestsPerMinute)
		b = &bucket{limiter: rate.NewLimiter(rate.Every(every), rl.cfg.RequestsPerMinute)}
		rl.buckets[client] = b
	}
	b.lastSeen = now
	rl.mu.Unlock()

	r := b.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return delay, false
	}
	return 0, true
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(rl.cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			rl.evictExpired(now)
		case <-rl.done:
			return
		}
	}
}

func (rl *RateLimiter) evictExpired(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for client, b := range rl.buckets {
		if now.Sub(b.lastSeen) > rl.cfg.IdleTTL {
			delete(rl.buckets, client)
		}
	}
}

func (rl *RateLimiter) clientCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.buckets)
}

// Stop ends the sweeper. Further calls are no-ops.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

// RateLimitMiddleware answers 429 with a Retry-After hint once a client
// has used up its bucket.
func RateLimitMiddleware(rl *RateLimiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wait, ok := rl.reserve(getClientIP(r), time.Now())
		if ok {
			next(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Retry-After", strconv.Itoa(max(1, int(wait.Round(time.Second)/time.Second))))
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(ErrorResponse{
			Error:   http.StatusText(http.StatusTooManyRequests),
			Message: "Rate limit exceeded. Please try again later.",
		})
	}
}

// getClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then
// the host part of RemoteAddr.
func getClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return strings.Trim(r.RemoteAddr, "[]")
}
