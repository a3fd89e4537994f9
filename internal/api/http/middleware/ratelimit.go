package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/dtroode/studypartner-auth/internal/api/http/response"
	"github.com/dtroode/studypartner-auth/internal/logger"
)

const (
	clientIdleTTL = 10 * time.Minute
	sweepInterval = time.Minute
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP. Buckets idle for longer
// than clientIdleTTL are dropped.
type RateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*client
	limit     rate.Limit
	burst     int
	retry     string
	lastSweep time.Time
	now       func() time.Time
	logger    *logger.Logger
}

// NewRateLimiter allows perMinute requests per client with the given burst.
func NewRateLimiter(perMinute, burst int, logger *logger.Logger) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	retry := int(math.Ceil(60 / float64(perMinute)))
	if retry < 1 {
		retry = 1
	}
	return &RateLimiter{
		clients: make(map[string]*client),
		limit:   rate.Limit(float64(perMinute) / 60),
		burst:   burst,
		retry:   strconv.Itoa(retry),
		now:     time.Now,
		logger:  logger,
	}
}

// Allow consumes one token from key's bucket.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= sweepInterval {
		for k, c := range l.clients {
			if now.Sub(c.lastSeen) > clientIdleTTL {
				delete(l.clients, k)
			}
		}
		l.lastSweep = now
	}

	c, ok := l.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now

	return c.limiter.AllowN(now, 1)
}

// Handle answers 429 once the client's bucket is empty.
func (l *RateLimiter) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !l.Allow(ip) {
			l.logger.Warn("Rate limiter: request throttled", "client_ip", ip, "path", r.URL.Path)
			w.Header().Set("Retry-After", l.retry)
			response.JSON(w, http.StatusTooManyRequests, response.Envelope{
				Success: false,
				Message: "too many requests",
				Code:    "rate_limited",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP keys on the socket address, or on the forwarded one when the
// router runs chi's RealIP for a trusted proxy.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
