package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	appErrors "github.com/educore-id/educore-api/pkg/errors"
	"github.com/educore-id/educore-api/pkg/response"
)

// counter is the slice of the Redis API the limiter needs.
type counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, ttl time.Duration) *redis.BoolCmd
}

// Limiter implements a fixed-window request limiter backed by Redis.
// Windows are keyed per client IP; counters expire with the window.
type Limiter struct {
	client    counter
	requests  int
	window    time.Duration
	onLimited func()
}

// New constructs a Limiter. A nil client disables limiting. onLimited,
// when non-nil, is invoked once per rejected request.
func New(client *redis.Client, requests int, window time.Duration, onLimited func()) *Limiter {
	if requests <= 0 {
		requests = 120
	}
	if window <= 0 {
		window = time.Minute
	}
	l := &Limiter{requests: requests, window: window, onLimited: onLimited}
	if client != nil {
		l.client = client
	}
	return l
}

// Middleware enforces the limit, responding 429 once the window is exhausted.
// Redis unavailability fails open: blocking all traffic on a cache outage
// would be worse than briefly losing the limit.
func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil || l.client == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), time.Now().Unix()/int64(l.window.Seconds()))

		count, err := l.client.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			l.client.Expire(ctx, key, l.window)
		}

		if count > int64(l.requests) {
			if l.onLimited != nil {
				l.onLimited()
			}
			response.Error(c, appErrors.New("RATE_LIMITED", http.StatusTooManyRequests, "too many requests"))
			c.Abort()
			return
		}

		c.Next()
	}
}
