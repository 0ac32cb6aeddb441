package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/clipvault/backend/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// UploadRateLimit caps the number of video uploads per client IP and day.
// Keys reset at midnight for predictable behavior; Redis failures never
// block an upload.
func UploadRateLimit(redisClient *redis.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()

		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		today := time.Now().Format("2006-01-02")
		key := fmt.Sprintf("upload_limit:%s:%s", clientIP, today)

		count, err := redisClient.Get(ctx, key).Int()
		if err == redis.Nil {
			// First upload today; expire the counter at midnight
			now := time.Now()
			midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
			if err := redisClient.Set(ctx, key, 1, midnight.Sub(now)).Err(); err != nil {
				c.Next()
				return
			}
		} else if err != nil {
			c.Next()
			return
		} else if count >= cfg.UploadsPerDay {
			ttl, _ := redisClient.TTL(ctx, key).Result()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"message":             "too many uploads today, please try again tomorrow",
				"retry_after_hours":   int(ttl.Hours()),
				"uploads_today":       count,
				"max_uploads_per_day": cfg.UploadsPerDay,
			})
			c.Abort()
			return
		} else {
			redisClient.Incr(ctx, key)
		}

		c.Next()
	}
}
