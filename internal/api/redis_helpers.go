package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"resumeBuilder/internal/api/middleware"
)

type redisRateCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

func incrWithTTL(ctx context.Context, client redisRateCounter, key string, ttl time.Duration) (int64, error) {
	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		_ = client.Expire(ctx, key, ttl).Err()
	}
	return count, nil
}

// sessionCreateLimit 限制单个 IP 在 window 内创建会话的次数。Redis 不可用时放行。
func sessionCreateLimit(client redisRateCounter, limit int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		bucket := time.Now().Unix() / int64(window.Seconds())
		key := fmt.Sprintf("rate:session_create:%s:%d", c.ClientIP(), bucket)
		count, err := incrWithTTL(c.Request.Context(), client, key, window)
		if err != nil {
			middleware.LoggerFromContext(c).Warn("session rate counter unavailable", slog.Any("error", err))
			c.Next()
			return
		}
		if count > limit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many sessions, try again later"})
			return
		}
		c.Next()
	}
}
