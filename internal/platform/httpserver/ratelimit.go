package httpserver

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	votinghttp "ovation/contexts/event-voting/voting-engine/transport/http"
)

// ipRateLimiter keeps one token bucket per client IP. Buckets refill at
// burst tokens per window, so a caller gets at most burst vote requests
// inside any window once the bucket drains.
type ipRateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*ipBucket
	limit   rate.Limit
	burst   int
}

type ipBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPRateLimiter(burst int, window time.Duration) *ipRateLimiter {
	return &ipRateLimiter{
		buckets: make(map[string]*ipBucket),
		limit:   rate.Limit(float64(burst) / window.Seconds()),
		burst:   burst,
	}
}

func (l *ipRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	bucket, ok := l.buckets[ip]
	if !ok {
		bucket = &ipBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[ip] = bucket
	}
	bucket.lastSeen = now

	if len(l.buckets) > 10000 {
		l.evictStale(now)
	}
	return bucket.limiter.Allow()
}

// evictStale drops buckets idle for over an hour. Caller holds l.mu.
func (l *ipRateLimiter) evictStale(now time.Time) {
	for ip, bucket := range l.buckets {
		if now.Sub(bucket.lastSeen) > time.Hour {
			delete(l.buckets, ip)
		}
	}
}

func (s *Server) rateLimited(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := resolveClientIP(r)
		if !s.voteLimiter.Allow(ip) {
			writeJSON(w, http.StatusTooManyRequests, votinghttp.ErrorResponse{
				Code:    "rate_limited",
				Message: "too many vote requests, try again later",
			})
			return
		}
		next(w, r)
	}
}
