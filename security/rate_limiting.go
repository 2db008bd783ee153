package security

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"

	"bazaar-system/models"
)

type RateLimiter struct {
	redis  *redis.Client
	limit  int64
	window time.Duration
}

func NewRateLimiter(redisClient *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		limit:  int64(limit),
		window: window,
	}
}

// allow counts a hit for the key and reports whether it is still within the
// window budget.
func (r *RateLimiter) allow(ctx context.Context, key string) (bool, error) {
	count, err := r.redis.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		r.redis.Expire(ctx, key, r.window)
	}
	return count <= r.limit, nil
}

// Middleware rate limits by user id for authenticated requests, by IP
// otherwise. A redis outage fails open.
func (r *RateLimiter) Middleware() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		identifier := e.RealIP()
		if e.Auth != nil {
			identifier = fmt.Sprintf("user:%s", e.Auth.Id)
		}

		key := fmt.Sprintf("ratelimit:%s", identifier)
		ok, err := r.allow(e.Request.Context(), key)
		if err == nil && !ok {
			return e.JSON(http.StatusTooManyRequests,
				models.Fail("Rate limit exceeded. Please try again later.", ""))
		}

		return e.Next()
	}
}

// AntiBotMiddleware rejects obvious scraping user agents and throttles
// per-IP request bursts on the public application endpoints.
func (r *RateLimiter) AntiBotMiddleware() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		userAgent := e.Request.Header.Get("User-Agent")
		if isSuspiciousUserAgent(userAgent) {
			return e.JSON(http.StatusForbidden, models.Fail("Access denied", ""))
		}

		key := fmt.Sprintf("antibot:%s", e.RealIP())
		ok, err := r.allow(e.Request.Context(), key)
		if err == nil && !ok {
			return e.JSON(http.StatusTooManyRequests, models.Fail("Too many requests", ""))
		}

		return e.Next()
	}
}

func isSuspiciousUserAgent(ua string) bool {
	suspicious := []string{"bot", "crawler", "spider", "scraper"}
	for _, pattern := range suspicious {
		if strings.Contains(strings.ToLower(ua), pattern) {
			return true
		}
	}
	return false
}
