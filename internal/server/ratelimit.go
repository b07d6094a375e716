package server

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	// RateLimitMax is the request budget per client per window.
	RateLimitMax = 60

	// RateLimitWindow is the fixed window length.
	RateLimitWindow = 60 * time.Second
)

// rateWindow tracks one client's request count until resetAt.
type rateWindow struct {
	count   int
	resetAt time.Time
}

// RateLimiter is a fixed-window request counter keyed by client IP.
//
// An elapsed window is replaced wholesale rather than merged, so a burst that
// straddles the boundary can see up to 2x the budget. No smoothing, no
// per-route differentiation: one global budget per client.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*rateWindow
	limit   int
	window  time.Duration
}

// NewRateLimiter creates a RateLimiter allowing limit requests per window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*rateWindow),
		limit:   limit,
		window:  window,
	}
}

// Allow records a request for key and reports whether it fits the current
// window, along with the remaining budget and the window's reset instant.
func (l *RateLimiter) Allow(key string) (allowed bool, remaining int, resetAt time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.windows[key]
	if !ok || now.After(w.resetAt) {
		w = &rateWindow{resetAt: now.Add(l.window)}
		l.windows[key] = w
	}

	w.count++
	remaining = l.limit - w.count
	if remaining < 0 {
		remaining = 0
	}
	return w.count <= l.limit, remaining, w.resetAt
}

// RateLimit is [Middleware] enforcing the limiter per client IP.
//
// The X-RateLimit-{Limit,Remaining,Reset} headers are emitted on every
// response, including the request that trips the limit. Static upload serving
// is exempt. trustProxy controls whether X-Forwarded-For may override the
// connection address; leave it off unless a proxy in front strips the header
// from client traffic.
func RateLimit(limiter *RateLimiter, trustProxy bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/uploads/") {
				next.ServeHTTP(w, r)
				return
			}

			key := clientKey(r, trustProxy)
			allowed, remaining, resetAt := limiter.Allow(key)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

			if !allowed {
				writeError(w, http.StatusTooManyRequests, codeRateLimited)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientKey extracts the client IP from the request. The first
// X-Forwarded-For hop wins only when the caller trusts the proxy to have set
// it; otherwise the header is attacker-controlled and the connection address
// is used.
func clientKey(r *http.Request, trustProxy bool) string {
	if fwd := r.Header.Get("X-Forwarded-For"); trustProxy && fwd != "" {
		if ip := strings.TrimSpace(strings.Split(fwd, ",")[0]); ip != "" {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
