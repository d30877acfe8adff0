package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitMiddleware creates a fixed-window per-client limiter for the
// public authentication endpoints. Counting rides on Redis INCR so parallel
// instances share one budget; if Redis is unreachable the request is let
// through rather than locking everyone out.
func RateLimitMiddleware(client *redis.Client, perMinute int) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		if perMinute <= 0 {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		window := time.Now().Unix() / 60
		key := fmt.Sprintf("rl:auth:%s:%d", c.ClientIP(), window)

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			client.Expire(ctx, key, time.Minute)
		}

		if count > int64(perMinute) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "rate_limited",
				"message": "Too many requests. Please slow down.",
			})
			c.Abort()
			return
		}

		c.Next()
	})
}
