package ratelimit

import (
	"context"
	"math"
	"net"
	"net/http"
	"strconv"
)

// Limiter decides whether a client may make another request.
type Limiter interface {
	Allow(ctx context.Context, clientID string) Decision
}

// Recorder counts rejected requests. *metrics.Recorder implements it.
type Recorder interface {
	RateLimited(route string)
}

// Middleware rejects requests over the limit with 429 Too Many Requests.
// Clients are identified by r.RemoteAddr. Behind a reverse proxy, run a
// middleware that resolves it from trusted proxy headers first.
func Middleware(limiter Limiter, route string, recorder Recorder, onLimited http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := limiter.Allow(r.Context(), clientIP(r))

			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
			if decision.Allowed {
				next.ServeHTTP(w, r)
				return
			}

			if recorder != nil {
				recorder.RateLimited(route)
			}
			seconds := int(math.Ceil(decision.RetryAfter.Seconds()))
			w.Header().Set("Retry-After", strconv.Itoa(max(seconds, 1)))
			onLimited(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
