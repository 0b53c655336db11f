package middleware

import (
	apperrors "househunt/pkg/errors"
	httputil "househunt/pkg/http"
	"househunt/pkg/logger"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

// KeyFunc derives the bucket a request is charged to. An empty key bypasses the limiter.
type KeyFunc func(r *http.Request) string

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per key and evicts idle buckets.
type RateLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	window   time.Duration
	clients  map[string]*clientEntry
	log      *logger.Logger
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter allows requests events per window for every key, refilling evenly.
func NewRateLimiter(requests int, window time.Duration, log *logger.Logger) *RateLimiter {
	if requests <= 0 {
		requests = 1
	}
	rl := &RateLimiter{
		limit:   rate.Every(window / time.Duration(requests)),
		burst:   requests,
		window:  window,
		clients: make(map[string]*clientEntry),
		log:     log,
		stopCh:  make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(limiterIdleTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-max(limiterIdleTTL, rl.window))
			rl.mu.Lock()
			for key, entry := range rl.clients {
				if entry.lastSeen.Before(cutoff) {
					delete(rl.clients, key)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

func (rl *RateLimiter) Allow(key string) bool {
	if key == "" {
		return true
	}

	rl.mu.Lock()
	entry, ok := rl.clients[key]
	if !ok {
		entry = &clientEntry{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = entry
	}
	entry.lastSeen = time.Now()
	rl.mu.Unlock()

	return entry.limiter.Allow()
}

// RateLimit charges requests selected by keyFunc against limiter.
func RateLimit(limiter *RateLimiter, keyFunc KeyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)

			if !limiter.Allow(key) {
				limiter.log.Warn("Rate limit exceeded",
					"request_id", RequestIDFromContext(r.Context()),
					"key", key,
					"path", r.URL.Path,
				)
				retryAfter := int(max(time.Second, time.Duration(float64(time.Second)/float64(limiter.limit))).Seconds())
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				_ = httputil.WriteError(w, apperrors.RateLimited("Too many requests, please try again later"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CredentialKey limits the routes that accept credentials or mint tokens, keyed
// by client IP. All other requests pass through.
func CredentialKey(r *http.Request) string {
	if r.Method != http.MethodPost {
		return ""
	}
	switch r.URL.Path {
	case "/users", "/users/login", "/jwt":
		return "ip:" + httputil.ClientIP(r)
	default:
		return ""
	}
}
