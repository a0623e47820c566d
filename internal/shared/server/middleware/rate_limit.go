package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"cv-builder/internal/shared/server/respond"
)

const (
	defaultRateLimitGroup = "DEFAULT"
	// RenderGroup covers endpoints that lay out a PDF.
	RenderGroup = "RENDER"

	// DefaultMaxBuckets bounds the number of client buckets a limiter keeps.
	DefaultMaxBuckets = 10000
	// DefaultBucketIdle is how long an untouched bucket survives a prune.
	DefaultBucketIdle = 10 * time.Minute
)

// RateLimitRule is a token bucket: Rate tokens per second up to Burst.
// A rule with a non-positive Rate or Burst does not limit.
type RateLimitRule struct {
	Rate  float64
	Burst int
}

func (r RateLimitRule) enabled() bool {
	return r.Rate > 0 && r.Burst > 0
}

// RateLimitConfig selects a rule per request. Requests whose group has no
// rule pass through.
type RateLimitConfig struct {
	Rules        map[string]RateLimitRule
	DefaultGroup string
	GroupFor     func(*gin.Context) string
	Limiter      *RateLimiter
}

// RateLimiter holds one bucket per client and group.
type RateLimiter struct {
	// MaxBuckets caps the bucket map. When full, idle buckets are pruned and,
	// failing that, the stalest bucket is evicted.
	MaxBuckets int
	// Idle is the age after which a bucket is dropped by a prune.
	Idle time.Duration

	mu      sync.Mutex
	buckets map[string]*rateBucket
	now     func() time.Time
}

type rateBucket struct {
	tokens float64
	last   time.Time
}

// refill credits tokens earned since the last visit.
func (b *rateBucket) refill(now time.Time, rule RateLimitRule) {
	if elapsed := now.Sub(b.last).Seconds(); elapsed > 0 {
		b.tokens = math.Min(float64(rule.Burst), b.tokens+elapsed*rule.Rate)
		b.last = now
	}
}

// take spends one token, or reports how long until one is available.
func (b *rateBucket) take(rule RateLimitRule) (bool, time.Duration) {
	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}
	wait := math.Max(0, (1-b.tokens)/rule.Rate)
	return false, time.Duration(math.Ceil(wait*1000)) * time.Millisecond
}

// NewRateLimiter constructs a limiter. A nil clock uses time.Now.
func NewRateLimiter(now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		MaxBuckets: DefaultMaxBuckets,
		Idle:       DefaultBucketIdle,
		buckets:    make(map[string]*rateBucket),
		now:        now,
	}
}

// RateLimit rejects requests past their group's rule with 429 and a
// Retry-After header. Clients are keyed by IP.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limiter == nil {
		cfg.Limiter = NewRateLimiter(nil)
	}
	if cfg.DefaultGroup == "" {
		cfg.DefaultGroup = defaultRateLimitGroup
	}
	return func(c *gin.Context) {
		group := cfg.DefaultGroup
		if cfg.GroupFor != nil {
			if g := strings.TrimSpace(cfg.GroupFor(c)); g != "" {
				group = g
			}
		}
		rule, ok := cfg.Rules[group]
		if !ok {
			c.Next()
			return
		}

		client := strings.TrimSpace(c.ClientIP())
		if client == "" {
			client = "anonymous"
		}
		allowed, retryAfter := cfg.Limiter.Allow(client+"|"+group, rule)
		if allowed {
			c.Next()
			return
		}

		retryMs := retryAfter.Milliseconds()
		if retryMs <= 0 {
			retryMs = 1000
		}
		c.Header("Retry-After", strconv.FormatInt((retryMs+999)/1000, 10))
		respond.Error(c, http.StatusTooManyRequests, "rate_limited", "Too many requests", gin.H{
			"group":        group,
			"retryAfterMs": retryMs,
		})
	}
}

// Allow spends a token from key's bucket.
func (l *RateLimiter) Allow(key string, rule RateLimitRule) (bool, time.Duration) {
	if l == nil || !rule.enabled() {
		return true, 0
	}
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	bucket, ok := l.buckets[key]
	if !ok {
		l.makeRoom(now)
		bucket = &rateBucket{tokens: float64(rule.Burst), last: now}
		l.buckets[key] = bucket
	}
	bucket.refill(now, rule)
	return bucket.take(rule)
}

// Len reports how many buckets are held.
func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// makeRoom keeps the map under MaxBuckets. Caller holds l.mu.
func (l *RateLimiter) makeRoom(now time.Time) {
	limit := l.MaxBuckets
	if limit <= 0 || len(l.buckets) < limit {
		return
	}
	idle := l.Idle
	if idle <= 0 {
		idle = DefaultBucketIdle
	}
	var stalestKey string
	var stalest time.Time
	for key, b := range l.buckets {
		if now.Sub(b.last) > idle {
			delete(l.buckets, key)
			continue
		}
		if stalestKey == "" || b.last.Before(stalest) {
			stalestKey, stalest = key, b.last
		}
	}
	if len(l.buckets) >= limit && stalestKey != "" {
		delete(l.buckets, stalestKey)
	}
}
