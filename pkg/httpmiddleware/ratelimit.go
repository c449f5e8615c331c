package httpmiddleware

import (
	"context"
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimitConfig configures the per-key sliding window rate limiter.
type RateLimitConfig struct {
	// Max is the request budget per window.
	Max int
	// Window is the sliding window duration.
	Window time.Duration
	// KeyFunc derives the limiter key from a request. Defaults to the
	// client IP when nil.
	KeyFunc func(*http.Request) string
}

// bucket holds the counts of two adjacent windows for one key. The sliding
// window estimate weights the previous window by how much of it still
// overlaps the trailing window ending now.
type bucket struct {
	prevCount float64
	prevStart time.Time
	currCount float64
	currStart time.Time
}

type limiter struct {
	cfg     RateLimitConfig
	mu      sync.Mutex
	buckets map[string]*bucket
}

func newLimiter(cfg RateLimitConfig) *limiter {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = clientIP
	}
	return &limiter{
		cfg:     cfg,
		buckets: make(map[string]*bucket),
	}
}

// allow records a request for key and reports whether it fits the budget,
// along with the remaining budget and when the current window resets.
func (l *limiter) allow(key string, now time.Time) (remaining int, resetAt time.Time, allowed bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{currStart: now}
		l.buckets[key] = b
	}

	// Rotate once the current window has elapsed.
	if now.Sub(b.currStart) >= l.cfg.Window {
		b.prevCount = b.currCount
		b.prevStart = b.currStart
		b.currCount = 0
		b.currStart = now.Truncate(l.cfg.Window)
		if now.Sub(b.prevStart) >= 2*l.cfg.Window {
			b.prevCount = 0
		}
	}

	elapsed := now.Sub(b.currStart)
	overlap := 1.0 - elapsed.Seconds()/l.cfg.Window.Seconds()
	if overlap < 0 {
		overlap = 0
	}
	estimate := b.prevCount*overlap + b.currCount
	resetAt = b.currStart.Add(l.cfg.Window)

	if estimate >= float64(l.cfg.Max) {
		return 0, resetAt, false
	}

	b.currCount++
	estimate++

	remaining = int(float64(l.cfg.Max) - estimate)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, resetAt, true
}

// evict drops buckets whose windows have fully aged out.
func (l *limiter) evict(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, b := range l.buckets {
		if now.Sub(b.currStart) >= 2*l.cfg.Window {
			delete(l.buckets, key)
		}
	}
}

func (l *limiter) startEviction(ctx context.Context) {
	interval := 2 * l.cfg.Window
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				l.evict(now)
			}
		}
	}()
}

// RateLimit returns a middleware enforcing a per-key sliding window limit.
// Over-budget requests get a 429 with a JSON body; every response carries
// X-RateLimit-Limit, X-RateLimit-Remaining, and X-RateLimit-Reset.
//
// Stale keys are never evicted; use RateLimitWithCleanup for long-running
// servers.
func RateLimit(cfg RateLimitConfig) Middleware {
	return limitMiddleware(newLimiter(cfg))
}

// RateLimitWithCleanup is RateLimit plus a background goroutine evicting
// idle keys every two windows. The goroutine stops when ctx is cancelled.
func RateLimitWithCleanup(ctx context.Context, cfg RateLimitConfig) Middleware {
	l := newLimiter(cfg)
	l.startEviction(ctx)
	return limitMiddleware(l)
}

func limitMiddleware(l *limiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			remaining, resetAt, allowed := l.allow(l.cfg.KeyFunc(r), time.Now())

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.cfg.Max))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

			if !allowed {
				retryAfter := time.Until(resetAt)
				if retryAfter < 0 {
					retryAfter = 0
				}
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"code":    429,
					"message": "rate limit exceeded",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP extracts the caller's address: first X-Forwarded-For hop, then
// X-Real-IP, then RemoteAddr.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i > 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
